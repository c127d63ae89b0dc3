package ports

import (
	"context"

	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// FavoritesKey names the stored favorites list in every backend.
const FavoritesKey = "book_catalog_favorites"

// FavoritesRepository persists the favorites set as one ordered list under a
// fixed storage key.
type FavoritesRepository interface {
	// Load retrieves the saved list.
	// Returns an empty list and nil error if nothing was saved yet.
	// Returns an error for read failures and for data that cannot be decoded;
	// callers treat both as an empty set.
	Load(ctx context.Context) ([]domain.Book, error)

	// Save replaces the stored list with books. Implementations must not
	// leave a partially written list behind.
	Save(ctx context.Context, books []domain.Book) error
}
