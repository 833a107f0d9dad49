// Package internal provides the HTTP layer of the xcstrings catalog server.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/xcstrings" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: owns the chi router, middleware, health endpoints and graceful shutdown
//   - Context: request/response access and JSON helpers; it is also a context.Context
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a Router
//   - HandlerFunc: a route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - HTTPError: an error carrying status, stable error code and catalog location
//
// # Catalog API
//
// WithCatalogs mounts CatalogHandler under /api. Every route selects its
// catalog with the path query parameter or the X-Catalog-Path header and
// falls back to the registry's default catalog:
//
//	reg, _ := store.NewRegistry(store.WithDefaultPath("Localizable.xcstrings"))
//	app := internal.New(
//	    internal.WithCatalogs(reg),
//	    internal.WithHealthChecks(),
//	)
//	_ = app.Run("127.0.0.1:8787")
//
// Keys containing slashes are addressed percent-encoded: /api/translations/a%2Fb/en.
//
// # Errors
//
// Handlers return errors; ToHTTPError maps them onto HTTPError and
// DefaultErrorHandler renders them as
//
//	{"code":"not_found","message":"...","location":"greeting/fr","request_id":"..."}
//
// Catalog error kinds map to 404 not_found, 409 conflict, 422 validation_error,
// 500 parse_error and 500 io_error. A missing catalog path is 400 path_required.
// File system paths and parser output stay in the logs.
//
// # Discovery Refresh
//
// In discovery mode WithDiscoveryRefresh rescans the search root on a cron
// schedule (robfig/cron). The scheduler starts with Run and stops during
// shutdown before the registry is closed.
//
// # Health Checks
//
// WithHealthChecks registers /health/live and /health/ready. With catalogs
// configured, readiness opens the default catalog (pinned mode) or scans the
// search root (discovery mode).
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then stops the HTTP server and runs
// shutdown hooks in order:
//
//	err := app.Run(":8787",
//	    internal.ShutdownTimeout(10*time.Second),
//	    internal.ShutdownHook(func(ctx context.Context) error { return nil }),
//	)
package internal
