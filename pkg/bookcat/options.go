package bookcat

import (
	"github.com/qwerty0zero/book-catalog/internal/app"
	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// Types shared with the internal packages.
type (
	// Book is one catalog work.
	Book = domain.Book

	// EmptyReason tells "nothing found" apart from "filter hides everything".
	EmptyReason = domain.EmptyReason

	// ResultsView receives the results of the live session.
	ResultsView = ports.ResultsView

	// CatalogClient fetches pages of books.
	CatalogClient = ports.CatalogClient

	// FavoritesRepository persists the favorites list.
	FavoritesRepository = ports.FavoritesRepository

	// HTTPClient is satisfied by *http.Client.
	HTTPClient = ports.HTTPClient

	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// Controller drives the live search session.
	Controller = app.Controller

	// Favorites is the favorites store.
	Favorites = app.Favorites

	// SyncBus broadcasts favorites changes.
	SyncBus = app.SyncBus
)

// Option configures optional behavior of a Browser.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	catalog      ports.CatalogClient
	repo         ports.FavoritesRepository
	view         func(favs *Favorites) ResultsView
	eventHandler EventHandler
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithHTTPClient sets the HTTP client used for catalog requests.
// If not provided, a client with Config.HTTPTimeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCatalog replaces the Open Library client.
func WithCatalog(catalog CatalogClient) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithRepository supplies the favorites repository, bypassing Config.Store.
// The caller keeps ownership and closes it.
func WithRepository(repo FavoritesRepository) Option {
	return func(o *options) {
		o.repo = repo
	}
}

// WithView builds the results view. The function receives the favorites
// store so the view can mark favorite books. Without a view, results are
// discarded; use Controller().Snapshot() to read them.
func WithView(fn func(favs *Favorites) ResultsView) Option {
	return func(o *options) {
		o.view = fn
	}
}

// WithEventHandler sets a handler for lifecycle events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// discardView drops every notification.
type discardView struct{}

func (discardView) ShowLoading(bool)             {}
func (discardView) ReplaceResults([]Book)        {}
func (discardView) AppendResults([]Book)         {}
func (discardView) ShowEmpty(domain.EmptyReason) {}
func (discardView) ShowError(string, bool)       {}
func (discardView) SetAuthorFacet([]string)      {}
func (discardView) SetVisibility([]bool)         {}
