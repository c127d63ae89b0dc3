// Package fs holds the file-backed favorites repository and the watcher
// that notices when another process rewrites it.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
)

// FavoritesFileName is the favorites file inside the state directory.
const FavoritesFileName = ports.FavoritesKey + ".json"

// FavoritesFileRepository implements ports.FavoritesRepository using a JSON file.
type FavoritesFileRepository struct {
	dir string
}

// NewFavoritesFileRepository creates a new FavoritesFileRepository for the given directory.
func NewFavoritesFileRepository(dir string) *FavoritesFileRepository {
	return &FavoritesFileRepository{dir: dir}
}

// Load reads the saved list from disk.
// Returns an empty list and nil error if no favorites file exists.
func (r *FavoritesFileRepository) Load(ctx context.Context) ([]domain.Book, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Save writes the list atomically: a temp file is written, then renamed over
// the old one.
func (r *FavoritesFileRepository) Save(ctx context.Context, books []domain.Book) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}
	if books == nil {
		books = []domain.Book{}
	}

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the favorites file.
func (r *FavoritesFileRepository) Path() string {
	return filepath.Join(r.dir, FavoritesFileName)
}

var _ ports.FavoritesRepository = (*FavoritesFileRepository)(nil)
