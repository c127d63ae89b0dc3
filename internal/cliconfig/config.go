package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for the public Open Library service.
const (
	DefaultCatalogURL = "https://openlibrary.org"
	DefaultCoversURL  = "https://covers.openlibrary.org/b/id"
)

// Favorites storage backends.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

var stores = []string{StoreFile, StoreBadger, StoreSQLite, StoreRedis}

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds CLI configuration for bookcat.
type Config struct {
	CatalogURL string
	CoversURL  string

	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int
	Debounce    time.Duration

	Store    string
	StateDir string
	RedisURL string
	Watch    bool

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		CatalogURL:  DefaultCatalogURL,
		CoversURL:   DefaultCoversURL,
		HTTPTimeout: 15 * time.Second,
		RateLimit:   5,
		RateBurst:   5,
		Debounce:    500 * time.Millisecond,
		Store:       StoreFile,
		StateDir:    "", // Derived from the home directory during Validate
		Watch:       true,
		LogLevel:    "info",
	}
}

// DefaultStateDir returns ~/.bookcat, or .bookcat when the home directory
// is unknown.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bookcat")
	}
	return ".bookcat"
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		c.CatalogURL = DefaultCatalogURL
	}
	if c.CoversURL == "" {
		c.CoversURL = DefaultCoversURL
	}
	// Ensure no trailing slash
	c.CatalogURL = strings.TrimRight(c.CatalogURL, "/")
	c.CoversURL = strings.TrimRight(c.CoversURL, "/")

	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = StoreFile
	}
	if !contains(stores, c.Store) {
		return fmt.Errorf("unknown store %q (want one of %s)", c.Store, strings.Join(stores, ", "))
	}
	if c.Store == StoreRedis && c.RedisURL == "" {
		return fmt.Errorf("redis-url is required for the redis store")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rate burst must be positive")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if !contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if positive.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setFloat(flag, f, dst)
	return nil
}

// setBoolFromString parses a string with strconv.ParseBool.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
