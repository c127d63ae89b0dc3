package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	CatalogURL  string  `toml:"catalog_url"`
	CoversURL   string  `toml:"covers_url"`
	HTTPTimeout string  `toml:"http_timeout"`
	RateLimit   float64 `toml:"rate_limit"`
	RateBurst   int     `toml:"rate_burst"`
	Debounce    string  `toml:"debounce"`
	Store       string  `toml:"store"`
	StateDir    string  `toml:"state_dir"`
	RedisURL    string  `toml:"redis_url"`
	Watch       *bool   `toml:"watch"`
	LogLevel    string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.bookcat/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bookcat", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("catalog-url", fc.CatalogURL, &cfg.CatalogURL)
	s.setString("covers-url", fc.CoversURL, &cfg.CoversURL)
	s.setString("store", fc.Store, &cfg.Store)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("redis-url", fc.RedisURL, &cfg.RedisURL)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setFloat("rate-limit", fc.RateLimit, &cfg.RateLimit)
	s.setInt("rate-burst", fc.RateBurst, &cfg.RateBurst)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
