package discovery

import (
	"log/slog"
	"strings"
)

// DefaultExtension is the catalog file extension.
const DefaultExtension = ".xcstrings"

// DefaultSkipDirs lists directory names never descended into.
var DefaultSkipDirs = []string{
	"node_modules",
	"build",
	"DerivedData",
	"Pods",
	"Carthage",
	"target",
	"vendor",
	"dist",
	".build",
}

type config struct {
	skip       map[string]struct{}
	extensions []string
	logger     *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		skip:       make(map[string]struct{}, len(DefaultSkipDirs)),
		extensions: []string{DefaultExtension},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, d := range DefaultSkipDirs {
		cfg.skip[strings.ToLower(d)] = struct{}{}
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures Find.
type Option func(*config)

// WithSkipDirs adds directory names to skip, compared case-insensitively.
func WithSkipDirs(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.skip[strings.ToLower(n)] = struct{}{}
		}
	}
}

// WithExtensions replaces the matched file extensions.
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		c.extensions = c.extensions[:0]
		for _, e := range exts {
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			c.extensions = append(c.extensions, strings.ToLower(e))
		}
	}
}

// WithLogger logs skipped unreadable paths at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
