package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcher_NotifiesOnSave(t *testing.T) {
	dir := t.TempDir()
	repo := NewFavoritesFileRepository(dir)

	var calls atomic.Int32
	w := NewWatcher(repo.Path(), 20*time.Millisecond, func(context.Context) { calls.Add(1) }, log.NewNoopLogger())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("store = \"file\""), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("onChange called %d times for unrelated file", n)
	}

	if err := repo.Save(context.Background(), []domain.Book{{Key: "/works/OL1W", Title: "One"}}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return calls.Load() > 0 })

	// The write and rename of one save collapse into a single call.
	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("onChange called %d times, want 1", n)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", FavoritesFileName), 0, func(context.Context) {}, log.NewNoopLogger())
	w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	w.Stop()
	w.Stop()
}
