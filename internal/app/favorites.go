package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// Favorites owns the favorites set. Storage is read once, lazily, into an
// in-memory mirror; every mutation writes the whole set back before
// returning. Membership changes are announced on the SyncBus.
type Favorites struct {
	mu       sync.Mutex
	repo     ports.FavoritesRepository
	bus      *SyncBus
	logger   ports.Logger
	validate *validator.Validate

	loaded bool
	books  []domain.Book
	keys   map[string]struct{}
	// dirty is set when the mirror holds changes storage does not.
	dirty bool
}

// NewFavorites creates a store over repo that signals changes on bus.
func NewFavorites(repo ports.FavoritesRepository, bus *SyncBus, logger ports.Logger) *Favorites {
	return &Favorites{
		repo:     repo,
		bus:      bus,
		logger:   logger,
		validate: newBookValidator(),
		keys:     make(map[string]struct{}),
	}
}

func newBookValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// List returns the favorites in insertion order.
func (f *Favorites) List(ctx context.Context) []domain.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded(ctx)
	return slices.Clone(f.books)
}

// Contains reports whether key is a favorite.
func (f *Favorites) Contains(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded(ctx)
	_, ok := f.keys[key]
	return ok
}

// Count returns the number of favorites.
func (f *Favorites) Count(ctx context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded(ctx)
	return len(f.books)
}

// Add inserts book unless its key is already present. The sync signal is
// published only when the set changed. A returned error wrapping
// domain.ErrStoragePersist means the book was added in memory but not saved.
func (f *Favorites) Add(ctx context.Context, book domain.Book) error {
	if err := f.validate.Struct(book); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBook, err)
	}

	f.mu.Lock()
	f.ensureLoaded(ctx)
	if _, ok := f.keys[book.Key]; ok {
		f.mu.Unlock()
		return nil
	}
	f.books = append(f.books, book)
	f.keys[book.Key] = struct{}{}
	err := f.persist(ctx)
	f.mu.Unlock()

	f.bus.Publish()
	return err
}

// Remove deletes key if present, with the same signalling and persistence
// rules as Add.
func (f *Favorites) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	f.ensureLoaded(ctx)
	if _, ok := f.keys[key]; !ok {
		f.mu.Unlock()
		return nil
	}
	f.books = slices.DeleteFunc(f.books, func(b domain.Book) bool { return b.Key == key })
	delete(f.keys, key)
	err := f.persist(ctx)
	f.mu.Unlock()

	f.bus.Publish()
	return err
}

// Toggle removes book if it is a favorite and adds it otherwise.
// It reports whether the book is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, book domain.Book) (bool, error) {
	if f.Contains(ctx, book.Key) {
		return false, f.Remove(ctx, book.Key)
	}
	err := f.Add(ctx, book)
	if err != nil && !errors.Is(err, domain.ErrStoragePersist) {
		return false, err
	}
	return true, err
}

// Flush retries persistence after an earlier failure. It is a no-op when
// storage is already up to date.
func (f *Favorites) Flush(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return nil
	}
	return f.persist(ctx)
}

// Reload re-reads storage, replacing the mirror. It is used when another
// process changed the stored set. The sync signal is published only when
// membership differs from the mirror. Unsaved local changes are kept.
func (f *Favorites) Reload(ctx context.Context) {
	f.mu.Lock()
	if f.dirty {
		f.mu.Unlock()
		f.logger.Warn("favorites reload skipped, local changes not yet persisted")
		return
	}
	before := domain.Keys(f.books)
	f.loaded = false
	f.ensureLoaded(ctx)
	changed := !slices.Equal(before, domain.Keys(f.books))
	count := len(f.books)
	f.mu.Unlock()

	if changed {
		f.logger.Info("favorites changed in storage", log.Int("count", count))
		f.bus.Publish()
	}
}

// ensureLoaded fills the mirror on first use. Missing or unreadable data
// yields an empty set. Must be called with f.mu held.
func (f *Favorites) ensureLoaded(ctx context.Context) {
	if f.loaded {
		return
	}
	f.loaded = true
	f.books = nil
	f.keys = make(map[string]struct{})

	books, err := f.repo.Load(ctx)
	if err != nil {
		f.logger.Warn("favorites storage unreadable, starting empty", log.Err(err))
		return
	}
	for _, b := range books {
		if b.Key == "" {
			continue
		}
		if _, dup := f.keys[b.Key]; dup {
			continue
		}
		f.keys[b.Key] = struct{}{}
		f.books = append(f.books, b)
	}
}

// persist writes the mirror through to storage. Must be called with f.mu held.
func (f *Favorites) persist(ctx context.Context) error {
	if err := f.repo.Save(ctx, slices.Clone(f.books)); err != nil {
		f.dirty = true
		f.logger.Error("failed to persist favorites", log.Err(err), log.Int("count", len(f.books)))
		return fmt.Errorf("%w: %w", domain.ErrStoragePersist, err)
	}
	f.dirty = false
	return nil
}
