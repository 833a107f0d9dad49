package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/xcstrings/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// Timeout returns middleware that enforces a request timeout.
// The request context is replaced by one with the deadline, so catalog reads
// and writes that have not taken their lock yet give up with
// context.DeadlineExceeded. When the deadline passes first, a TimeoutError
// is returned to the error handler.
//
// The handler goroutine keeps running after a timeout. A write that already
// holds the catalog lock completes and is persisted.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			c.SetContext(ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", cfg.Timeout.String())
					return &TimeoutError{Duration: cfg.Timeout}
				}
				return ctx.Err()
			}
		}
	}
}
