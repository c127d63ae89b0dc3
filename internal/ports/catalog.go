package ports

import (
	"context"

	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// CatalogClient fetches pages of books from the remote catalog.
// Pages hold at most domain.PageSize books; a shorter page is the last one.
type CatalogClient interface {
	// Search returns one page of results for a non-empty query.
	// Returns domain.ErrEmptyQuery for an empty query, a *domain.NetworkError
	// when the catalog cannot be reached or answers with a failure status,
	// and domain.ErrMalformedResponse when the answer cannot be decoded.
	Search(ctx context.Context, query string, page int) ([]domain.Book, error)

	// Popular returns one page of the popular list.
	Popular(ctx context.Context, page int) ([]domain.Book, error)
}
