package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/xcstrings/pkg/logger"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	catalogs                *store.Registry
	refreshSchedule         string
	refresher               *DiscoveryRefresher
	middlewares             []Middleware
	handlers                []Handler
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := xcstrings.New(
//	    xcstrings.WithCatalogs(registry),
//	    xcstrings.WithMiddleware(middlewares.RequestID()),
//	    xcstrings.WithHealthChecks(),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		errorHandler: DefaultErrorHandler,
		notFoundHandler: func(c Context) error {
			return ErrNotFound("route not found")
		},
		methodNotAllowedHandler: func(c Context) error {
			return newHTTPError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil)
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.catalogs != nil {
		a.handlers = append(a.handlers, NewCatalogHandler(a.catalogs))
		if a.healthConfig != nil {
			a.healthConfig.checks["catalogs"] = catalogsReady(a.catalogs)
		}
		if a.refreshSchedule != "" && a.catalogs.Mode() == store.ModeDiscovery {
			r, err := NewDiscoveryRefresher(a.catalogs, a.refreshSchedule, a.logger)
			if err != nil {
				panic(fmt.Sprintf("discovery refresh: %v", err))
			}
			a.refresher = r
		}
	}

	a.setupRoutes()
	return a
}

// catalogsReady opens the default catalog in pinned mode, or scans the search
// root in discovery mode.
func catalogsReady(reg *store.Registry) CheckFunc {
	return func(ctx context.Context) error {
		if reg.Mode() == store.ModePinned {
			_, err := reg.Default(ctx)
			return err
		}
		_, err := reg.Paths(ctx)
		return err
	}
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP lets the App be used directly as an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
// A configured discovery refresher starts before serving and stops during
// shutdown; the catalog registry is closed last.
//
// Example:
//
//	err := app.Run("127.0.0.1:8787", xcstrings.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	startupHooks := cfg.startupHooks
	shutdownHooks := cfg.shutdownHooks

	if a.refresher != nil {
		startupHooks = append([]func(context.Context) error{a.refresher.Start}, startupHooks...)
		shutdownHooks = append(shutdownHooks, a.refresher.Stop)
	}
	if a.catalogs != nil {
		catalogs := a.catalogs
		shutdownHooks = append(shutdownHooks, func(context.Context) error { return catalogs.Close() })
	}

	log := cfg.logger
	if log == nil {
		log = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          log,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    startupHooks,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
		onListen:        cfg.onListen,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Register health check endpoints
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, livenessHandler())
		a.router.Get(a.healthConfig.readinessPath, readinessHandler(a.healthConfig.checks, a.logger))
	}

	// Register handlers
	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", "error", herr.Error())
	}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        healthChecks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}
