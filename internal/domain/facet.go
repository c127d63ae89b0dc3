package domain

import "sort"

// AuthorFacet returns the distinct author names present in books, sorted
// lexicographically. It returns nil for no authors.
func AuthorFacet(books []Book) []string {
	seen := make(map[string]struct{})
	var authors []string
	for _, b := range books {
		for _, a := range b.Authors {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			authors = append(authors, a)
		}
	}
	sort.Strings(authors)
	return authors
}

// Visibility decides, for each book, whether it passes the author filter.
// An empty author shows everything.
func Visibility(books []Book, author string) []bool {
	visible := make([]bool, len(books))
	for i, b := range books {
		visible[i] = author == "" || b.HasAuthor(author)
	}
	return visible
}

// CountVisible counts the true entries in a visibility slice.
func CountVisible(visible []bool) int {
	n := 0
	for _, v := range visible {
		if v {
			n++
		}
	}
	return n
}
