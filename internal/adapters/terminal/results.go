package terminal

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
)

// CoverFunc returns the cover image URL for a book, or "".
type CoverFunc func(b domain.Book) string

// ResultsPanel implements ports.ResultsView by printing to a writer. Books
// are numbered from 1 in cache order; numbers stay stable while a filter
// hides some of them.
type ResultsPanel struct {
	mu     sync.Mutex
	out    io.Writer
	favs   FavoriteSet
	covers CoverFunc

	books   []domain.Book
	visible []bool
	authors []string
	// marked holds the favorite state each book was last drawn with.
	marked map[string]bool
}

// NewResultsPanel creates a panel. covers may be nil.
func NewResultsPanel(out io.Writer, favs FavoriteSet, covers CoverFunc) *ResultsPanel {
	return &ResultsPanel{
		out:    out,
		favs:   favs,
		covers: covers,
		marked: make(map[string]bool),
	}
}

// Bind redraws favorite marks whenever signal fires. It returns the
// unsubscribe function.
func (p *ResultsPanel) Bind(ctx context.Context, signal Signal) func() {
	return signal.Subscribe(func() { p.RefreshMarks(ctx) })
}

func (p *ResultsPanel) ShowLoading(continuation bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if continuation {
		fmt.Fprintln(p.out, domain.MsgLoadingMore)
		return
	}
	fmt.Fprintln(p.out, domain.MsgLoading)
}

func (p *ResultsPanel) ReplaceResults(books []domain.Book) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.books = slices.Clone(books)
	p.visible = nil
	clear(p.marked)
	p.drawRange(0, len(p.books))
}

func (p *ResultsPanel) AppendResults(books []domain.Book) {
	p.mu.Lock()
	defer p.mu.Unlock()
	start := len(p.books)
	p.books = append(p.books, books...)
	if p.visible != nil {
		for range books {
			p.visible = append(p.visible, true)
		}
	}
	p.drawRange(start, len(p.books))
}

func (p *ResultsPanel) ShowEmpty(reason domain.EmptyReason) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if reason == domain.NoResultsForQuery {
		p.books = nil
		p.visible = nil
	}
	fmt.Fprintln(p.out, reason.Message())
}

func (p *ResultsPanel) ShowError(message string, retryable bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if retryable {
		fmt.Fprintf(p.out, "%s Type :retry to try again.\n", message)
		return
	}
	fmt.Fprintln(p.out, message)
}

func (p *ResultsPanel) SetAuthorFacet(authors []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authors = authors
	if len(authors) == 0 {
		return
	}
	fmt.Fprintf(p.out, "Authors: %s\n", strings.Join(authors, "; "))
}

func (p *ResultsPanel) SetVisibility(visible []bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = slices.Clone(visible)
	if domain.CountVisible(visible) == 0 {
		return
	}
	p.drawRange(0, len(p.books))
}

// Render replaces the panel content with books and draws those marked in
// visible. A nil visible draws everything.
func (p *ResultsPanel) Render(books []domain.Book, visible []bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.books = slices.Clone(books)
	p.visible = slices.Clone(visible)
	clear(p.marked)
	p.drawRange(0, len(p.books))
}

// Book returns the book drawn with number n.
func (p *ResultsPanel) Book(n int) (domain.Book, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > len(p.books) {
		return domain.Book{}, false
	}
	return p.books[n-1], true
}

// Authors returns the author facet last received.
func (p *ResultsPanel) Authors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.authors)
}

// RefreshMarks re-reads favorite membership and redraws the visible books
// whose mark changed.
func (p *ResultsPanel) RefreshMarks(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.books {
		if !p.shown(i) {
			continue
		}
		fav := p.favs.Contains(ctx, b.Key)
		if drawn, ok := p.marked[b.Key]; ok && drawn == fav {
			continue
		}
		p.drawLine(i, fav)
	}
}

// drawRange prints the visible books in [from, to). Must be called with p.mu held.
func (p *ResultsPanel) drawRange(from, to int) {
	ctx := context.Background()
	for i := from; i < to; i++ {
		if !p.shown(i) {
			continue
		}
		p.drawLine(i, p.favs.Contains(ctx, p.books[i].Key))
	}
}

func (p *ResultsPanel) drawLine(i int, fav bool) {
	b := p.books[i]
	p.marked[b.Key] = fav
	fmt.Fprintf(p.out, "%3d. %s %s\n", i+1, mark(fav), describe(b))
	if p.covers != nil {
		if url := p.covers(b); url != "" {
			fmt.Fprintf(p.out, "       %s\n", url)
		}
	}
}

func (p *ResultsPanel) shown(i int) bool {
	return p.visible == nil || (i < len(p.visible) && p.visible[i])
}

var _ ports.ResultsView = (*ResultsPanel)(nil)
