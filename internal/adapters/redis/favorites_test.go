package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// Needs a live server: BOOKCAT_TEST_REDIS_URL=redis://localhost:6379/15
func dialTestRepo(t *testing.T) *FavoritesRepository {
	t.Helper()
	url := os.Getenv("BOOKCAT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BOOKCAT_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	repo, err := Dial(ctx, url)
	require.NoError(t, err)
	repo.key = "bookcat_test:" + t.Name()
	t.Cleanup(func() {
		repo.client.Del(ctx, repo.key)
		repo.Close()
	})
	return repo
}

func TestFavoritesRepository_RoundTrip(t *testing.T) {
	repo := dialTestRepo(t)
	ctx := context.Background()

	books, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	want := []domain.Book{{Key: "/works/OL893415W", Title: "Dune", Authors: []string{"Frank Herbert"}}}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFavoritesRepository_CorruptValue(t *testing.T) {
	repo := dialTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.client.Set(ctx, repo.key, "oops", 0).Err())

	_, err := repo.Load(ctx)
	assert.Error(t, err)
}

func TestDial_BadURL(t *testing.T) {
	_, err := Dial(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
