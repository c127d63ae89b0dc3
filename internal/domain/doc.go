// Package domain contains the core entities and value objects for bookcat.
//
// It is the innermost layer: no HTTP, storage or logging dependencies, only
// the rules that the pagination controller and the favorites store share.
//
// # Entities
//
//   - [Book]: an immutable catalog record identified by its key
//   - [Session]: one live query with its accumulated pages and pagination cursor
//
// # Derived values
//
//   - [AuthorFacet]: sorted distinct author names over a session cache
//   - [Visibility]: per-book author filter decision over a session cache
package domain
