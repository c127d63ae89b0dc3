package ports

import "github.com/qwerty0zero/book-catalog/internal/domain"

// ResultsView renders controller state. The controller calls it while
// holding its own lock, so implementations must not call back into the
// controller synchronously.
type ResultsView interface {
	// ShowLoading announces a fetch; continuation is true for a next-page load.
	ShowLoading(continuation bool)

	// ReplaceResults renders the first page of a new session.
	ReplaceResults(books []domain.Book)

	// AppendResults renders a further page of the current session.
	AppendResults(books []domain.Book)

	// ShowEmpty renders an informational empty state.
	ShowEmpty(reason domain.EmptyReason)

	// ShowError renders a failed fetch.
	ShowError(message string, retryable bool)

	// SetAuthorFacet replaces the author choices offered for filtering.
	SetAuthorFacet(authors []string)

	// SetVisibility applies an author filter decision to the rendered books,
	// one entry per cached book in cache order.
	SetVisibility(visible []bool)
}
