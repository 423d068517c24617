// Package lonja is the content and stock backend for a bilingual
// seafood-market site built with Go and Echo. It stores three content
// collections (recipes, sea-notes, health articles) in SQLite, merges
// and filters them for the public feed, drives the CMS admin listing
// and editor, and folds the raw product catalog into the editable
// stock-management view with a locally persisted availability snapshot.
package lonja

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// App is the central lonja application. It wires together the content
// store, the catalog, the snapshot store, middleware, and routes.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Snapshots SnapshotStore
	Catalog   *Catalog
	Log       *zap.Logger

	writeLimiter *WriteLimiter
	customRoutes []func(*App)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default production zap logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// New creates a lonja App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()
	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the stores, catalog, middleware, and routes, then
// starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Log == nil {
		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("lonja: init logger: %w", err)
		}
		a.Log = log
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("lonja: init store: %w", err)
	}
	a.Store = store

	snapshots, err := OpenSnapshotStore(a.Config.SnapshotPath)
	if err != nil {
		return fmt.Errorf("lonja: init snapshot store: %w", err)
	}
	a.Snapshots = snapshots

	catalog, err := NewCatalog(a.Config.CatalogPath, a.Config.IngredientsPath, a.Log.Named("catalog"))
	if err != nil {
		return fmt.Errorf("lonja: load catalog: %w", err)
	}
	a.Catalog = catalog
	if a.Config.WatchCatalog {
		if err := catalog.Watch(); err != nil {
			return fmt.Errorf("lonja: watch catalog: %w", err)
		}
	}

	a.writeLimiter = NewWriteLimiter(a.Config.WriteLimitMax, a.Config.WriteLimitWindow)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Uploaded images and other static assets.
	e.Static("/public", a.Config.StaticDir)

	e.GET("/healthz", a.handleHealthz)
	if a.Config.MetricsEnabled {
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// Public content surface.
	e.GET("/api/feed", a.handleFeed)
	e.GET("/api/species", a.handleSpecies)
	e.GET("/api/content/:type/:slug", a.handleContentBySlug)

	// CMS admin surface.
	e.GET("/api/content", a.handleContentList)
	e.PUT("/api/content", a.handleContentUpdate)
	e.DELETE("/api/content", a.handleContentDelete)

	// Stock management.
	e.GET("/api/stock", a.handleStock)
	e.POST("/api/stock/save", a.handleStockSave)
	e.GET("/api/stock/snapshot", a.handleStockSnapshot)

	// Image admin.
	e.GET("/api/images", a.handleImageList)
	e.POST("/api/images", a.handleImageUpload)
	e.DELETE("/api/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Snapshots != nil {
		a.Snapshots.Close()
	}
	if a.Catalog != nil {
		a.Catalog.Close()
	}
	return nil
}
