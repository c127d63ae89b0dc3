package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/qwerty0zero/book-catalog/internal/cliconfig"
	"github.com/qwerty0zero/book-catalog/pkg/bookcat"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

const helpDescription = `
Search and browse the Open Library catalog from your terminal.

Highlights:
  - Pages load on demand; an author filter narrows what is already loaded.
  - Favorites persist locally (file, badger or sqlite) or in redis.
  - Several bookcat processes sharing a state directory stay in sync.
  - Configure via file, env (BOOKCAT_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  bookcat search tolkien --pages 2 --author "J.R.R. Tolkien"
  bookcat popular
  bookcat browse --store sqlite
  bookcat favorites list
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return bookcat.Version
}

// cli carries the resolved configuration to every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
	in      io.Reader
	out     io.Writer
}

func main() {
	c := &cli{
		cfg: cliconfig.DefaultConfig(),
		in:  os.Stdin,
		out: os.Stdout,
	}
	c.log = cliconfig.Logger(c.cfg.LogLevel)

	root := newRootCommand(c)
	if err := root.Execute(); err != nil {
		c.log.Error().Err(err).Msg("bookcat")
		os.Exit(1)
	}
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookcat",
		Short:         "Search and browse the Open Library catalog",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	// Flags
	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.bookcat/config.toml)")
	f.StringVar(&c.cfg.CatalogURL, "catalog-url", c.cfg.CatalogURL, "catalog base URL")
	f.StringVar(&c.cfg.CoversURL, "covers-url", c.cfg.CoversURL, "cover image base URL")
	f.DurationVar(&c.cfg.HTTPTimeout, "timeout", c.cfg.HTTPTimeout, "HTTP timeout")
	f.Float64Var(&c.cfg.RateLimit, "rate-limit", c.cfg.RateLimit, "catalog requests per second")
	f.IntVar(&c.cfg.RateBurst, "rate-burst", c.cfg.RateBurst, "catalog requests allowed at once")
	f.DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "quiet interval before typed input is searched")
	f.StringVar(&c.cfg.Store, "store", c.cfg.Store, "favorites store: file, badger, sqlite or redis")
	f.StringVar(&c.cfg.StateDir, "state-dir", c.cfg.StateDir, "directory for favorites (default: $HOME/.bookcat)")
	f.StringVar(&c.cfg.RedisURL, "redis-url", c.cfg.RedisURL, "redis URL for the redis store")
	f.BoolVar(&c.cfg.Watch, "watch", c.cfg.Watch, "reload favorites changed by other processes (file store)")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		newSearchCommand(c),
		newPopularCommand(c),
		newBrowseCommand(c),
		newFavoritesCommand(c),
	)
	return root
}

// loadConfig resolves configuration: flags > env > file > defaults.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	// Apply environment variables (BOOKCAT_*)
	// These override file config but are overridden by flags (checked via changed map)
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.log = cliconfig.Logger(c.cfg.LogLevel)
	logCfg := c.cfg
	if logCfg.RedisURL != "" {
		logCfg.RedisURL = "*****"
	}
	c.log.Debug().Interface("config", logCfg).Msg("configuration")
	return nil
}

// newBrowser builds a browser from the resolved configuration.
func (c *cli) newBrowser(view func(favs *bookcat.Favorites) bookcat.ResultsView) (*bookcat.Browser, error) {
	opts := []bookcat.Option{
		bookcat.WithLogger(log.NewZerologAdapterWithLogger(c.log)),
	}
	if view != nil {
		opts = append(opts, bookcat.WithView(view))
	}

	b, err := bookcat.New(bookcat.Config{
		CatalogURL:  c.cfg.CatalogURL,
		CoversURL:   c.cfg.CoversURL,
		HTTPTimeout: c.cfg.HTTPTimeout,
		RateLimit:   c.cfg.RateLimit,
		RateBurst:   c.cfg.RateBurst,
		Debounce:    c.cfg.Debounce,
		Store:       c.cfg.Store,
		StateDir:    c.cfg.StateDir,
		RedisURL:    c.cfg.RedisURL,
		Watch:       c.cfg.Watch,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("create browser: %w", err)
	}
	return b, nil
}
