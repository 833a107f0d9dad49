package internal

import (
	"log/slog"

	"github.com/dmitrymomot/xcstrings/pkg/logger"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithCatalogs serves the catalogs of reg through the JSON API under /api.
// With health checks enabled, readiness also verifies the catalogs.
func WithCatalogs(reg *store.Registry) Option {
	return func(a *App) {
		a.catalogs = reg
	}
}

// WithDiscoveryRefresh rescans the search root on the given schedule while
// the app runs. It has no effect in pinned mode or without WithCatalogs.
// Panics on an invalid schedule; validate user input with ParseSchedule.
//
// Example:
//
//	xcstrings.WithDiscoveryRefresh("@every 5m")
func WithDiscoveryRefresh(schedule string) Option {
	return func(a *App) {
		a.refreshSchedule = schedule
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
// Defaults to DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		if h != nil {
			a.notFoundHandler = h
		}
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		if h != nil {
			a.methodNotAllowedHandler = h
		}
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(healthChecks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, catalog).
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
