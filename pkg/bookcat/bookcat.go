package bookcat

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/qwerty0zero/book-catalog/internal/adapters/badger"
	"github.com/qwerty0zero/book-catalog/internal/adapters/fs"
	"github.com/qwerty0zero/book-catalog/internal/adapters/openlibrary"
	"github.com/qwerty0zero/book-catalog/internal/adapters/redis"
	"github.com/qwerty0zero/book-catalog/internal/adapters/sqlite"
	"github.com/qwerty0zero/book-catalog/internal/app"
	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// Browser is a catalog browser that can be embedded in other applications.
// Use New() to create an instance and Start() before submitting queries.
type Browser struct {
	config    Config
	lifecycle *app.Lifecycle
	logger    ports.Logger

	catalog    ports.CatalogClient
	repo       ports.FavoritesRepository
	closer     io.Closer
	bus        *app.SyncBus
	favorites  *app.Favorites
	controller *app.Controller
	watcher    *fs.Watcher

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Browser with the given configuration.
// The instance is created in StateStopped; call Start() before use.
// Returns an error if configuration is invalid or storage cannot be opened.
func New(cfg Config, opts ...Option) (*Browser, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.validate(o.repo != nil); err != nil {
		return nil, err
	}

	logger := o.logger
	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	catalog := o.catalog
	if catalog == nil {
		catalog = openlibrary.NewClient(openlibrary.Config{
			BaseURL:   cfg.CatalogURL,
			Timeout:   cfg.HTTPTimeout,
			RateLimit: cfg.RateLimit,
			RateBurst: cfg.RateBurst,
		}, o.httpClient, logger)
	}

	b := &Browser{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		logger:    logger,
		catalog:   catalog,
		repo:      o.repo,
		bus:       app.NewSyncBus(),
	}

	if b.repo == nil {
		if err := b.openRepository(); err != nil {
			return nil, err
		}
	}

	b.favorites = app.NewFavorites(b.repo, b.bus, logger)

	var view ports.ResultsView = discardView{}
	if o.view != nil {
		view = o.view(b.favorites)
	}
	b.controller = app.NewController(app.ControllerConfig{Debounce: cfg.Debounce}, catalog, view, logger)

	return b, nil
}

// openRepository opens the backend selected by Config.Store.
func (b *Browser) openRepository() error {
	cfg := b.config
	switch cfg.Store {
	case StoreBadger:
		repo, err := badger.Open(filepath.Join(cfg.StateDir, "badger"))
		if err != nil {
			return err
		}
		b.repo, b.closer = repo, repo
	case StoreSQLite:
		repo, err := sqlite.Open(filepath.Join(cfg.StateDir, "bookcat.db"))
		if err != nil {
			return err
		}
		b.repo, b.closer = repo, repo
	case StoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		repo, err := redis.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		b.repo, b.closer = repo, repo
	default:
		repo := fs.NewFavoritesFileRepository(cfg.StateDir)
		b.repo = repo
		if cfg.Watch {
			b.watcher = fs.NewWatcher(repo.Path(), 0, b.reloadFavorites, b.logger)
		}
	}

	b.logger.Debug("favorites store opened", log.String("store", cfg.Store))
	return nil
}

func (b *Browser) reloadFavorites(ctx context.Context) {
	b.favorites.Reload(ctx)
}

// Start warms the favorites mirror and, for the file store, starts
// watching the favorites file. Returns immediately.
// Returns ErrAlreadyRunning if already started.
func (b *Browser) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)

	if b.watcher != nil {
		if err := b.watcher.Start(runCtx); err != nil {
			cancel()
			b.logger.Error("failed to watch favorites", log.Err(err))
			_ = b.lifecycle.TransitionTo(app.StateStopped, "watch failed")
			return err
		}
	}
	b.cancel = cancel

	b.lifecycle.Go(func() {
		n := b.favorites.Count(runCtx)
		b.logger.Info("favorites loaded", log.Int("count", n))
	})

	return b.lifecycle.TransitionTo(app.StateRunning, "started")
}

// Stop cancels a pending debounced query, waits for outstanding fetches,
// stops the watcher and retries any unsaved favorites.
// Returns ErrNotRunning if not started, ErrShutdownTimeout if fetches
// outlive the shutdown timeout.
func (b *Browser) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		return domain.ErrNotRunning
	}

	b.controller.Close()
	if b.watcher != nil {
		b.watcher.Stop()
	}

	waitErr := b.controller.Wait(app.ShutdownTimeout)
	if err := b.lifecycle.WaitWithTimeout(app.ShutdownTimeout); waitErr == nil {
		waitErr = err
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	if err := b.favorites.Flush(context.Background()); err != nil {
		b.logger.Error("favorites still not persisted", log.Err(err))
	}

	_ = b.lifecycle.TransitionTo(app.StateStopped, "stopped")
	return waitErr
}

// Close stops the browser if it is running and closes storage it opened.
func (b *Browser) Close() error {
	if b.Status() == StateRunning {
		_ = b.Stop()
	}
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

// Status returns the current lifecycle state.
func (b *Browser) Status() State {
	return convertState(b.lifecycle.State())
}

// Controller returns the session controller.
func (b *Browser) Controller() *Controller {
	return b.controller
}

// Favorites returns the favorites store.
func (b *Browser) Favorites() *Favorites {
	return b.favorites
}

// Bus returns the favorites sync bus. Subscribe to learn about changes.
func (b *Browser) Bus() *SyncBus {
	return b.bus
}

// CoverURL returns the cover image URL for book in size S, M or L, or ""
// when the book has no cover.
func (b *Browser) CoverURL(book Book, size string) string {
	return openlibrary.CoverURL(b.config.CoversURL, book.CoverID, openlibrary.ParseCoverSize(size))
}
