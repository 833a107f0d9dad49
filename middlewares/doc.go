// Package middlewares provides HTTP middleware for the xcstrings catalog server.
//
// # Request ID
//
// RequestID assigns an ID to each request. An ID from X-Request-ID or
// X-Correlation-ID is reused; otherwise a UUIDv7 is generated. The ID is
// echoed in the response and included in every error body as request_id.
//
//	app := xcstrings.New(
//	    xcstrings.WithLogger("api", middlewares.RequestIDExtractor()),
//	    xcstrings.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Logging
//
// Logging writes one line per request with status, size and duration.
// Health probes are usually skipped:
//
//	middlewares.Logging(middlewares.WithLoggingSkipPaths("/health/"))
//
// # Recover
//
// Recover turns panics into a PanicError, rendered as 500 internal_error.
//
// # Timeout
//
// Timeout attaches a deadline to the request context and returns a
// TimeoutError, rendered as 503 timeout, when the handler overruns it.
// The handler goroutine keeps running; use the context to stop early.
//
// # Recommended Middleware Order
//
//	xcstrings.WithMiddleware(
//	    middlewares.RequestID(),            // ID for all subsequent logging
//	    middlewares.Logging(),              // sees the final status
//	    middlewares.Recover(),              // catches panics from timeout and handlers
//	    middlewares.Timeout(10*time.Second),
//	)
package middlewares
