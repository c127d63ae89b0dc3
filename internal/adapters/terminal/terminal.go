// Package terminal renders the catalog on a line-oriented terminal: a
// results panel driven by the controller, and a favorites panel and badge
// driven by the favorites sync signal.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// FavoriteSet is the read side of the favorites store.
type FavoriteSet interface {
	Contains(ctx context.Context, key string) bool
	List(ctx context.Context) []domain.Book
	Count(ctx context.Context) int
}

// Signal is a payload-less broadcast, such as app.SyncBus.
type Signal interface {
	Subscribe(fn func()) (unsubscribe func())
}

const (
	markFavorite = "★"
	markNone     = " "
)

func mark(favorite bool) string {
	if favorite {
		return markFavorite
	}
	return markNone
}

// describe formats a book as "Title by A, B (1965)".
func describe(b domain.Book) string {
	var sb strings.Builder
	sb.WriteString(b.Title)
	if len(b.Authors) > 0 {
		sb.WriteString(" by ")
		sb.WriteString(strings.Join(b.Authors, ", "))
	}
	if b.Year != nil {
		fmt.Fprintf(&sb, " (%d)", *b.Year)
	}
	return sb.String()
}
