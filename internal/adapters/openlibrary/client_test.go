package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

type recorder struct {
	mu      sync.Mutex
	queries []url.Values
}

func (r *recorder) add(v url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, v)
}

func newTestServer(t *testing.T, status int, body string) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		rec.add(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL + "/"}, srv.Client(), log.NewNoopLogger())
	return client, rec
}

func TestClient_SearchRequestAndNormalization(t *testing.T) {
	body := `{"numFound": 2, "docs": [
		{"key": "/works/OL27448W", "title": "The Lord of the Rings", "author_name": ["J.R.R. Tolkien"], "first_publish_year": 1954, "cover_i": 14625765},
		{"key": "/works/OL1W"}
	]}`
	client, rec := newTestServer(t, http.StatusOK, body)

	books, err := client.Search(context.Background(), "  tolkien  ", 3)
	require.NoError(t, err)
	require.Len(t, books, 2)

	require.Len(t, rec.queries, 1)
	q := rec.queries[0]
	assert.Equal(t, "tolkien", q.Get("q"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "key,title,author_name,first_publish_year,cover_i", q.Get("fields"))
	assert.Empty(t, q.Get("sort"))

	lotr := books[0]
	assert.Equal(t, "/works/OL27448W", lotr.Key)
	assert.Equal(t, "The Lord of the Rings", lotr.Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, lotr.Authors)
	require.NotNil(t, lotr.Year)
	assert.Equal(t, 1954, *lotr.Year)
	require.NotNil(t, lotr.CoverID)
	assert.Equal(t, 14625765, *lotr.CoverID)

	bare := books[1]
	assert.Equal(t, domain.DefaultTitle, bare.Title)
	assert.NotNil(t, bare.Authors)
	assert.Empty(t, bare.Authors)
	assert.Nil(t, bare.Year)
	assert.Nil(t, bare.CoverID)
}

func TestClient_PopularRequest(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"docs": []}`)

	books, err := client.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, books)

	q := rec.queries[0]
	assert.Equal(t, "subject:fiction", q.Get("q"))
	assert.Equal(t, "rating", q.Get("sort"))
	assert.Equal(t, "1", q.Get("page"))
}

func TestClient_MissingDocsIsEmptyPage(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"numFound": 0}`)

	books, err := client.Search(context.Background(), "zzzz", 1)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestClient_EmptyQuery(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{}`)

	_, err := client.Search(context.Background(), " \t ", 1)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Empty(t, rec.queries)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		network bool
		malform bool
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: "down", network: true},
		{name: "not found", status: http.StatusNotFound, body: "", network: true},
		{name: "html body", status: http.StatusOK, body: "<html></html>", malform: true},
		{name: "truncated json", status: http.StatusOK, body: `{"docs": [`, malform: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, tt.status, tt.body)

			_, err := client.Search(context.Background(), "dune", 1)
			require.Error(t, err)
			assert.Equal(t, tt.network, domain.IsNetwork(err))
			assert.Equal(t, tt.malform, errors.Is(err, domain.ErrMalformedResponse))

			if tt.network {
				var ne *domain.NetworkError
				require.ErrorAs(t, err, &ne)
				assert.Equal(t, tt.status, ne.Status)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: base}, nil, log.NewNoopLogger())
	_, err := client.Search(context.Background(), "dune", 1)

	var ne *domain.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.Status)
	msg, retryable := domain.Classify(err)
	assert.Equal(t, domain.MsgNetworkError, msg)
	assert.True(t, retryable)
}

func TestClient_CancelledContext(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Popular(ctx, 1)
	require.Error(t, err)
	assert.Empty(t, rec.queries)
}

func TestCoverURL(t *testing.T) {
	id := 14625765
	zero := 0

	assert.Equal(t, "https://covers.openlibrary.org/b/id/14625765-M.jpg", CoverURL("", &id, ""))
	assert.Equal(t, "https://covers.openlibrary.org/b/id/14625765-L.jpg", CoverURL(DefaultCoversURL+"/", &id, CoverLarge))
	assert.Equal(t, "", CoverURL(DefaultCoversURL, nil, CoverSmall))
	assert.Equal(t, "", CoverURL(DefaultCoversURL, &zero, CoverSmall))

	assert.Equal(t, CoverSmall, ParseCoverSize("s"))
	assert.Equal(t, CoverLarge, ParseCoverSize(" L "))
	assert.Equal(t, CoverMedium, ParseCoverSize("xl"))
}
