package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// ControllerConfig contains configuration for the result controller.
type ControllerConfig struct {
	// Debounce is the quiet interval QueueQuery waits for.
	Debounce time.Duration
}

// Controller owns the live search session: it sequences catalog fetches,
// accumulates pages into the session cache, tracks exhaustion, derives the
// author facet and drives the results view.
//
// Every handler takes c.mu for its whole run, view calls included, so
// handlers are serialized. Fetches run on their own goroutines and rejoin
// through complete, where responses from older generations are dropped.
type Controller struct {
	mu      sync.Mutex
	catalog ports.CatalogClient
	view    ports.ResultsView
	logger  ports.Logger

	debounce *Debouncer
	fetches  sync.WaitGroup

	session    *domain.Session
	generation uint64
	filter     string
	// facet is the author facet last sent to the view.
	facet []string
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Query      string
	Mode       domain.Mode
	Page       int
	Books      []domain.Book
	Exhausted  bool
	InFlight   bool
	Generation uint64
	Filter     string
	Authors    []string
}

// NewController creates a controller with no session. Call SubmitQuery
// (an empty query browses the popular list) to start one.
func NewController(cfg ControllerConfig, catalog ports.CatalogClient, view ports.ResultsView, logger ports.Logger) *Controller {
	return &Controller{
		catalog:  catalog,
		view:     view,
		logger:   logger,
		debounce: NewDebouncer(cfg.Debounce),
	}
}

// SubmitQuery discards the current session and starts a new one for the
// trimmed query, loading its first page immediately. A response still
// pending for the discarded session will be ignored.
func (c *Controller) SubmitQuery(ctx context.Context, raw string) {
	c.debounce.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.restart(ctx, domain.NormalizeQuery(raw))
}

// QueueQuery is SubmitQuery for free-typed input: it waits for the
// debounce interval and only the last call within it is submitted.
func (c *Controller) QueueQuery(ctx context.Context, raw string) {
	c.debounce.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.restart(ctx, domain.NormalizeQuery(raw))
	})
}

// LoadMore fetches the next page of the current session. It does nothing,
// and returns false, when the session is exhausted, a fetch is already in
// flight, or nothing has been loaded yet.
func (c *Controller) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || !c.session.CanLoadMore() {
		return false
	}
	c.startLoad(ctx, c.session, false)
	return true
}

// Retry repeats the last failed action: the first page when nothing is
// cached, the next page otherwise. It reports whether a fetch started.
func (c *Controller) Retry(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.session == nil:
		c.restart(ctx, "")
		return true
	case c.session.InFlight:
		return false
	case len(c.session.Cache) == 0:
		c.restart(ctx, c.session.Query)
		return true
	case !c.session.CanLoadMore():
		return false
	}
	c.startLoad(ctx, c.session, false)
	return true
}

// ApplyFilter shows only cached books by author; an empty author clears the
// filter. It never fetches. The returned slice holds one decision per
// cached book in cache order.
func (c *Controller) ApplyFilter(author string) []bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = author
	return c.applyFilter()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Filter:  c.filter,
		Authors: slices.Clone(c.facet),
	}
	if s := c.session; s != nil {
		snap.Query = s.Query
		snap.Mode = s.Mode()
		snap.Page = s.Page
		snap.Books = s.Books()
		snap.Exhausted = s.Exhausted
		snap.InFlight = s.InFlight
		snap.Generation = s.Generation
	}
	return snap
}

// Mode returns the browsing mode of the current session.
func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.ModePopular
	}
	return c.session.Mode()
}

// Wait blocks until every fetch started so far has completed.
// Returns domain.ErrShutdownTimeout if the timeout expires first.
func (c *Controller) Wait(timeout time.Duration) error {
	return waitTimeout(&c.fetches, timeout)
}

// Close cancels a pending debounced query.
func (c *Controller) Close() {
	c.debounce.Stop()
}

// restart replaces the session. Must be called with c.mu held.
func (c *Controller) restart(ctx context.Context, query string) {
	c.generation++
	c.session = domain.NewSession(query, c.generation)
	c.filter = ""

	c.logger.Info("session started",
		log.String("query", query),
		log.String("mode", c.session.Mode().String()),
		log.Uint64("generation", c.generation),
	)
	c.startLoad(ctx, c.session, true)
}

// startLoad marks the session busy and fetches its next page in the
// background. Must be called with c.mu held.
func (c *Controller) startLoad(ctx context.Context, s *domain.Session, fresh bool) {
	s.InFlight = true
	c.view.ShowLoading(!fresh)

	query, page, gen := s.Query, s.Page, s.Generation
	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()

		books, err := c.fetch(ctx, query, page)
		c.complete(s, gen, fresh, books, err)
	}()
}

func (c *Controller) fetch(ctx context.Context, query string, page int) ([]domain.Book, error) {
	if domain.ModeFor(query) == domain.ModePopular {
		return c.catalog.Popular(ctx, page)
	}
	return c.catalog.Search(ctx, query, page)
}

// complete merges a finished fetch into the session it was started for.
func (c *Controller) complete(s *domain.Session, gen uint64, fresh bool, books []domain.Book, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Cleared on every path, stale sessions included.
	defer func() { s.InFlight = false }()

	if c.session == nil || c.session.Generation != gen {
		c.logger.Debug("discarding stale response",
			log.String("query", s.Query),
			log.Uint64("generation", gen),
			log.Uint64("current", c.generation),
		)
		return
	}

	if err != nil {
		message, retryable := domain.Classify(err)
		c.logger.Error("fetch failed",
			log.Err(err),
			log.String("query", s.Query),
			log.Int("page", s.Page),
			log.Bool("retryable", retryable),
		)
		if fresh {
			c.publishFacet(nil)
		}
		c.view.ShowError(message, retryable)
		return
	}

	s.Accept(books)
	c.logger.Info("page loaded",
		log.String("query", s.Query),
		log.Int("page", s.Page-1),
		log.Int("count", len(books)),
		log.Int("cached", len(s.Cache)),
		log.Bool("exhausted", s.Exhausted),
	)

	if fresh && len(books) == 0 {
		c.publishFacet(nil)
		c.view.ShowEmpty(domain.NoResultsForQuery)
		return
	}

	c.publishFacet(domain.AuthorFacet(s.Cache))
	if fresh {
		c.view.ReplaceResults(books)
	} else {
		c.view.AppendResults(books)
	}
	if c.filter != "" {
		c.applyFilter()
	}
}

// applyFilter pushes the filter decision for the whole cache to the view.
// Must be called with c.mu held.
func (c *Controller) applyFilter() []bool {
	s := c.session
	if s == nil || len(s.Cache) == 0 {
		// Before the first page arrives there is nothing to say yet.
		if s != nil && !s.InFlight && s.Page > 1 {
			c.view.ShowEmpty(domain.NoResultsForQuery)
		}
		return []bool{}
	}

	visible := domain.Visibility(s.Cache, c.filter)
	c.view.SetVisibility(visible)
	if domain.CountVisible(visible) == 0 {
		c.view.ShowEmpty(domain.NoMatchesForFilter)
	}
	return visible
}

// publishFacet sends the facet to the view when it differs from the last
// one sent. Must be called with c.mu held.
func (c *Controller) publishFacet(authors []string) {
	if slices.Equal(c.facet, authors) {
		return
	}
	c.facet = authors
	c.view.SetAuthorFacet(slices.Clone(authors))
}
