package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// MinLevel is the lowest level kept as a Sentry log; errors always
	// create issues. Levels below warn are raised to warn.
	MinLevel slog.Level
}

func newSentryHandler(cfg SentryConfig) (slog.Handler, error) {
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background()), nil
}

// Flush waits up to timeout for buffered Sentry events to be sent. It is a
// no-op when Sentry was never enabled.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
