// Package openlibrary implements ports.CatalogClient against the Open Library
// search API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

const (
	// DefaultBaseURL is the public Open Library host.
	DefaultBaseURL = "https://openlibrary.org"

	searchPath = "/search.json"
	// searchFields limits the response to what Book needs.
	searchFields = "key,title,author_name,first_publish_year,cover_i"
	// popularQuery and popularSort select the popular list.
	popularQuery = "subject:fiction"
	popularSort  = "rating"

	defaultTimeout = 15 * time.Second
)

// Config contains configuration for the Open Library client.
type Config struct {
	// BaseURL is the catalog host, without a trailing slash.
	BaseURL string
	// Timeout is applied to the default HTTP client only.
	Timeout time.Duration
	// RateLimit is the sustained request rate per second.
	RateLimit float64
	// RateBurst is the number of requests allowed at once.
	RateBurst int
}

// Client provides access to the Open Library search API.
type Client struct {
	baseURL     string
	httpClient  ports.HTTPClient
	rateLimiter *rate.Limiter
	logger      ports.Logger
}

// NewClient creates a client. A nil httpClient gets a plain *http.Client
// with cfg.Timeout.
func NewClient(cfg Config, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(limit, cfg.RateBurst),
		logger:      logger,
	}
}

// Search returns one page of works matching query.
func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, params, page)
}

// Popular returns one page of the popular fiction list.
func (c *Client) Popular(ctx context.Context, page int) ([]domain.Book, error) {
	params := url.Values{}
	params.Set("q", popularQuery)
	params.Set("sort", popularSort)
	return c.fetch(ctx, params, page)
}

func (c *Client) fetch(ctx context.Context, params url.Values, page int) ([]domain.Book, error) {
	if page < 1 {
		page = 1
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("rate limit: %w", err)}
	}

	params.Set("limit", strconv.Itoa(domain.PageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("fields", searchFields)
	searchURL := c.baseURL + searchPath + "?" + params.Encode()

	c.logger.Debug("querying catalog",
		log.String("url", searchURL),
		log.Int("page", page),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.NetworkError{Status: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	books := make([]domain.Book, 0, len(body.Docs))
	for _, d := range body.Docs {
		books = append(books, normalize(d))
	}

	c.logger.Debug("catalog results",
		log.Int("page", page),
		log.Int("count", len(books)),
		log.Int("found", body.NumFound),
	)
	return books, nil
}

// normalize maps a raw doc onto a Book, filling defaults for missing fields.
func normalize(d doc) domain.Book {
	b := domain.Book{
		Key:     d.Key,
		Title:   strings.TrimSpace(d.Title),
		Authors: []string{},
	}
	if b.Title == "" {
		b.Title = domain.DefaultTitle
	}
	for _, a := range d.AuthorName {
		if a = strings.TrimSpace(a); a != "" {
			b.Authors = append(b.Authors, a)
		}
	}
	if d.FirstPublishYear != 0 {
		year := d.FirstPublishYear
		b.Year = &year
	}
	if d.CoverI > 0 {
		cover := d.CoverI
		b.CoverID = &cover
	}
	return b
}
