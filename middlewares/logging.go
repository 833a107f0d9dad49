package middlewares

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/xcstrings/internal"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	SkipPaths []string // Path prefixes not logged, e.g. health probes
}

// LoggingOption configures LoggingConfig.
type LoggingOption func(*LoggingConfig)

// WithLoggingSkipPaths excludes requests whose path starts with any prefix.
func WithLoggingSkipPaths(prefixes ...string) LoggingOption {
	return func(cfg *LoggingConfig) {
		cfg.SkipPaths = append(cfg.SkipPaths, prefixes...)
	}
}

// Logging returns middleware that logs one line per request after it
// completes: method, path, status, response size and duration.
// 5xx responses log at error level, 4xx at warn, the rest at info.
func Logging(opts ...LoggingOption) internal.Middleware {
	cfg := &LoggingConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.SkipPaths {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			start := time.Now()
			err := next(c)

			status, size := 0, int64(0)
			if rw := c.ResponseWriter(); rw != nil {
				status, size = rw.Status(), rw.Size()
			}
			if err != nil {
				status = internal.ToHTTPError(err).Code
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("size", size),
				slog.Duration("duration", time.Since(start)),
			}
			if q := c.Query("path"); q != "" {
				attrs = append(attrs, slog.String("catalog", q))
			}

			switch {
			case status >= 500:
				c.LogError("request completed", attrs...)
			case status >= 400:
				c.LogWarn("request completed", attrs...)
			default:
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
