package xcstrings

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/pkg/logger"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc is a readiness check.
	CheckFunc = internal.CheckFunc

	// HTTPError is the error rendered as a JSON body by the default error handler.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResponseWriter wraps http.ResponseWriter and tracks status and size.
	ResponseWriter = internal.ResponseWriter

	// RequestIDKey is the context key holding the request ID.
	RequestIDKey = internal.RequestIDKey

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Stable error codes returned to API clients.
const (
	CodeNotFound         = internal.CodeNotFound
	CodeConflict         = internal.CodeConflict
	CodeValidation       = internal.CodeValidation
	CodeParse            = internal.CodeParse
	CodeIO               = internal.CodeIO
	CodePathRequired     = internal.CodePathRequired
	CodeBadRequest       = internal.CodeBadRequest
	CodeMethodNotAllowed = internal.CodeMethodNotAllowed
	CodeTimeout          = internal.CodeTimeout
	CodeInternal         = internal.CodeInternal
)

// CatalogPathHeader selects a catalog when the path query parameter is absent.
const CatalogPathHeader = internal.CatalogPathHeader

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	reg, err := store.NewRegistry(store.WithDefaultPath("Localizable.xcstrings"))
//	if err != nil {
//	    return err
//	}
//	app := xcstrings.New(
//	    xcstrings.WithCatalogs(reg),
//	    xcstrings.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    xcstrings.WithHealthChecks(),
//	)
//
//	err = app.Run("127.0.0.1:8787", xcstrings.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewCatalogHandler returns the JSON API over reg, for mounting on an App
// configured without WithCatalogs.
func NewCatalogHandler(reg *store.Registry) Handler {
	return internal.NewCatalogHandler(reg)
}

// ParseSchedule validates a discovery refresh schedule: a standard 5-field
// cron expression or a descriptor such as "@every 5m" or "@hourly".
func ParseSchedule(expr string) error {
	_, err := internal.ParseSchedule(expr)
	return err
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithCatalogs serves the catalogs of reg through the JSON API under /api.
// With health checks enabled, readiness also verifies the catalogs.
func WithCatalogs(reg *store.Registry) Option {
	return internal.WithCatalogs(reg)
}

// WithDiscoveryRefresh rescans the search root on the given schedule while
// the app runs. Panics on an invalid schedule; check input with ParseSchedule.
func WithDiscoveryRefresh(schedule string) Option {
	return internal.WithDiscoveryRefresh(schedule)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	xcstrings.WithHealthChecks(
//	    xcstrings.WithReadinessCheck("mirror", mirrorCheck),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, catalog).
//
// Example:
//
//	xcstrings.New(
//	    xcstrings.WithLogger("api", middlewares.RequestIDExtractor(), logger.CatalogExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger. Defaults to the app logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound but before
// serving requests. If any hook fails, the server stops and returns the error.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	xcstrings.ShutdownHook(func(context.Context) error {
//	    logger.Flush(2 * time.Second)
//	    return nil
//	})
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// OnListen is called with the bound address once the listener is ready.
func OnListen(fn func(addr string)) RunOption {
	return internal.OnListen(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// WithErrorCode sets the stable error code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithLocation sets the logical location of the error, e.g. "greeting/fr".
func WithLocation(loc string) HTTPErrorOption {
	return internal.WithLocation(loc)
}

// WithError attaches the underlying error for logging.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrConflict creates a 409 error.
func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

// ErrUnprocessable creates a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable creates a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// ToHTTPError maps any error to the HTTPError rendered for it.
// Catalog errors keep their kind and location; anything else becomes a
// generic 500 without leaking its text.
func ToHTTPError(err error) *HTTPError {
	return internal.ToHTTPError(err)
}

// DefaultErrorHandler renders err as a JSON error body.
func DefaultErrorHandler(c Context, err error) error {
	return internal.DefaultErrorHandler(c, err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	id := xcstrings.ContextValue[string](c, xcstrings.RequestIDKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// QueryDefault parses a query parameter as T, returning defaultValue when it
// is absent or malformed.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}
