package domain

import "slices"

// PageSize is the number of books the catalog returns per page. A shorter
// page means there are no further pages.
const PageSize = 20

// DefaultTitle is used when the catalog omits a title.
const DefaultTitle = "Unknown title"

// Book is a catalog record. Identity is Key; the other fields are display
// data and never participate in equality checks.
//
// The JSON layout is also the persisted favorites layout.
type Book struct {
	Key     string   `json:"key" validate:"required"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Year    *int     `json:"year"`
	CoverID *int     `json:"coverId"`
}

// HasAuthor reports whether name is one of the book's authors.
func (b Book) HasAuthor(name string) bool {
	return slices.Contains(b.Authors, name)
}

// Keys returns the keys of books in order.
func Keys(books []Book) []string {
	keys := make([]string, len(books))
	for i, b := range books {
		keys[i] = b.Key
	}
	return keys
}
