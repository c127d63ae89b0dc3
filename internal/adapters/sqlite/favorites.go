// Package sqlite stores the favorites list in a SQLite key/value table.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// FavoritesRepository implements ports.FavoritesRepository on SQLite.
type FavoritesRepository struct {
	db *sql.DB
}

// Open opens the database at path, sets pragmas and creates the schema.
func Open(path string) (*FavoritesRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}
	return &FavoritesRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *FavoritesRepository) Close() error {
	return r.db.Close()
}

// Load returns the stored list, or an empty list when nothing was saved.
func (r *FavoritesRepository) Load(ctx context.Context) ([]domain.Book, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, ports.FavoritesKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	var books []domain.Book
	if err := json.Unmarshal([]byte(value), &books); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return books, nil
}

// Save replaces the stored list with a single upsert.
func (r *FavoritesRepository) Save(ctx context.Context, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		ports.FavoritesKey, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

var _ ports.FavoritesRepository = (*FavoritesRepository)(nil)
