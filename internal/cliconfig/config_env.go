package cliconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable bookcat reads.
const EnvPrefix = "BOOKCAT_"

// EnvConfig holds raw BOOKCAT_* values. Everything stays a string so empty
// variables are told apart from zero values and parse errors name the flag.
type EnvConfig struct {
	CatalogURL  string `env:"CATALOG_URL"`
	CoversURL   string `env:"COVERS_URL"`
	HTTPTimeout string `env:"HTTP_TIMEOUT"`
	RateLimit   string `env:"RATE_LIMIT"`
	RateBurst   string `env:"RATE_BURST"`
	Debounce    string `env:"DEBOUNCE"`
	Store       string `env:"STORE"`
	StateDir    string `env:"STATE_DIR"`
	RedisURL    string `env:"REDIS_URL"`
	Watch       string `env:"WATCH"`
	LogLevel    string `env:"LOG_LEVEL"`
}

// LoadEnvConfig reads BOOKCAT_* variables. A nil environ reads the process
// environment.
func LoadEnvConfig(environ map[string]string) (EnvConfig, error) {
	var ec EnvConfig
	err := env.ParseWithOptions(&ec, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return ec, fmt.Errorf("parse environment: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies BOOKCAT_* variables from the process environment.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	ec, err := LoadEnvConfig(nil)
	if err != nil {
		return err
	}
	return applyEnv(cfg, ec, changed)
}

func applyEnv(cfg *Config, ec EnvConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("catalog-url", ec.CatalogURL, &cfg.CatalogURL)
	s.setString("covers-url", ec.CoversURL, &cfg.CoversURL)
	s.setString("store", ec.Store, &cfg.Store)
	s.setString("state-dir", ec.StateDir, &cfg.StateDir)
	s.setString("redis-url", ec.RedisURL, &cfg.RedisURL)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", ec.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", ec.Debounce, &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setFloatFromString("rate-limit", ec.RateLimit, &cfg.RateLimit); err != nil {
		return err
	}
	if err := s.setIntFromString("rate-burst", ec.RateBurst, &cfg.RateBurst); err != nil {
		return err
	}
	if err := s.setBoolFromString("watch", ec.Watch, &cfg.Watch); err != nil {
		return err
	}

	return nil
}
