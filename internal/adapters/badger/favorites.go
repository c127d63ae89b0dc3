// Package badger stores the favorites list in an embedded Badger database.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
)

var favoritesKey = []byte(ports.FavoritesKey)

// FavoritesRepository implements ports.FavoritesRepository on Badger.
type FavoritesRepository struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*FavoritesRepository, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &FavoritesRepository{db: db}, nil
}

// Close closes the database.
func (r *FavoritesRepository) Close() error {
	return r.db.Close()
}

// Load returns the stored list, or an empty list when nothing was saved.
func (r *FavoritesRepository) Load(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(favoritesKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &books)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return books, nil
}

// Save replaces the stored list in one transaction.
func (r *FavoritesRepository) Save(ctx context.Context, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(favoritesKey, data)
	})
}

var _ ports.FavoritesRepository = (*FavoritesRepository)(nil)
