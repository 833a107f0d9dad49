package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	level      slog.Level
	format     Format
	writer     io.Writer
	extractors []ContextExtractor
	attrs      []slog.Attr
	sentry     *SentryConfig
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level written.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat selects JSON (default) or text output.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithWriter redirects output; the default is stderr so command output on
// stdout stays machine-readable.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// WithAttrs adds attributes to every record.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithSentry enables Sentry reporting when cfg.DSN is set.
func WithSentry(cfg SentryConfig) Option {
	return func(c *config) {
		if cfg.DSN != "" {
			c.sentry = &cfg
		}
	}
}

// New builds a logger.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	var primary slog.Handler
	if cfg.format == FormatText {
		primary = slog.NewTextHandler(cfg.writer, hopts)
	} else {
		primary = slog.NewJSONHandler(cfg.writer, hopts)
	}

	handler := primary
	if cfg.sentry != nil {
		if sh, err := newSentryHandler(*cfg.sentry); err != nil {
			slog.New(primary).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			handler = newFanout(primary, sh)
		}
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(NewContextHandler(handler, cfg.extractors...))
}

// NewNope returns a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseFormat accepts json and text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	}
	return FormatJSON, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
