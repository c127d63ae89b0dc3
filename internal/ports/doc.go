// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [CatalogClient]: fetches pages of books from the remote catalog
//   - [FavoritesRepository]: loads and saves the favorites set
//   - [ResultsView]: receives controller state for rendering
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters implement them with Open Library over
// HTTP, JSON files, badger, SQLite, Redis and the terminal.
package ports
