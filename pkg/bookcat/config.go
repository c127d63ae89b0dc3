package bookcat

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the settings of a Browser.
type Config struct {
	// CatalogURL is the Open Library host.
	// Default: https://openlibrary.org
	CatalogURL string

	// CoversURL is the base of cover image URLs.
	// Default: https://covers.openlibrary.org/b/id
	CoversURL string

	// HTTPTimeout bounds each catalog request.
	// Default: 15 seconds
	HTTPTimeout time.Duration

	// RateLimit is the sustained catalog request rate per second.
	// Default: 5
	RateLimit float64

	// RateBurst is the number of catalog requests allowed at once.
	// Default: 5
	RateBurst int

	// Debounce is the quiet interval before typed input is submitted.
	// Default: 500 milliseconds
	Debounce time.Duration

	// Store selects the favorites backend: file, badger, sqlite or redis.
	// Default: file
	Store string

	// StateDir holds the favorites file or database. Required unless the
	// store is redis or a repository is supplied.
	StateDir string

	// RedisURL is required for the redis store.
	RedisURL string

	// Watch reloads favorites when the file store is changed by another
	// process. Ignored by other stores.
	Watch bool
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.CatalogURL == "" {
		c.CatalogURL = "https://openlibrary.org"
	}
	if c.CoversURL == "" {
		c.CoversURL = "https://covers.openlibrary.org/b/id"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 5
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 5
	}
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.Store == "" {
		c.Store = StoreFile
	}
	c.CatalogURL = strings.TrimRight(c.CatalogURL, "/")
	c.CoversURL = strings.TrimRight(c.CoversURL, "/")
}

// validate checks the configuration. hasRepo reports whether a repository
// was supplied through WithRepository, in which case storage settings are
// not needed.
func (c Config) validate(hasRepo bool) error {
	if hasRepo {
		return nil
	}
	switch c.Store {
	case StoreFile, StoreBadger, StoreSQLite:
		if c.StateDir == "" {
			return fmt.Errorf("bookcat: state dir is required for the %s store", c.Store)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("bookcat: redis url is required for the redis store")
		}
	default:
		return fmt.Errorf("bookcat: unknown store %q", c.Store)
	}
	return nil
}

// Favorites backends.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)
