package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// FavoritesPanel prints the favorites list each time it changes.
type FavoritesPanel struct {
	mu   sync.Mutex
	out  io.Writer
	favs FavoriteSet
}

// NewFavoritesPanel creates a panel over favs.
func NewFavoritesPanel(out io.Writer, favs FavoriteSet) *FavoritesPanel {
	return &FavoritesPanel{out: out, favs: favs}
}

// Bind re-renders the panel whenever signal fires.
func (p *FavoritesPanel) Bind(ctx context.Context, signal Signal) func() {
	return signal.Subscribe(func() { p.Render(ctx) })
}

// Render prints the current favorites.
func (p *FavoritesPanel) Render(ctx context.Context) {
	books := p.favs.List(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(books) == 0 {
		fmt.Fprintln(p.out, "No favorites yet.")
		return
	}
	fmt.Fprintf(p.out, "Favorites (%d):\n", len(books))
	for i, b := range books {
		fmt.Fprintf(p.out, "%3d. %s %s\n", i+1, markFavorite, describe(b))
	}
}

// Badge tracks the favorites count for the prompt.
type Badge struct {
	favs  FavoriteSet
	count atomic.Int64
}

// NewBadge creates a badge and reads the initial count.
func NewBadge(ctx context.Context, favs FavoriteSet) *Badge {
	b := &Badge{favs: favs}
	b.Refresh(ctx)
	return b
}

// Bind refreshes the count whenever signal fires.
func (b *Badge) Bind(ctx context.Context, signal Signal) func() {
	return signal.Subscribe(func() { b.Refresh(ctx) })
}

// Refresh re-reads the count from the store.
func (b *Badge) Refresh(ctx context.Context) {
	b.count.Store(int64(b.favs.Count(ctx)))
}

// Count returns the last count read.
func (b *Badge) Count() int {
	return int(b.count.Load())
}

// String renders the badge, e.g. "★3".
func (b *Badge) String() string {
	return fmt.Sprintf("%s%d", markFavorite, b.Count())
}
