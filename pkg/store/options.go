package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/xcstrings/pkg/discovery"
)

// CommitHook runs after a write has been persisted, outside the store lock,
// with the bytes that were written. Errors are logged and otherwise ignored.
type CommitHook func(ctx context.Context, path string, data []byte) error

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCommitHook adds a hook run after every successful write.
func WithCommitHook(h CommitHook) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// DefaultHookTimeout bounds each commit hook call.
const DefaultHookTimeout = 30 * time.Second

// WithHookTimeout bounds each commit hook call. Non-positive values are
// ignored.
func WithHookTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.hookTimeout = d
		}
	}
}

// WithSourceLanguage sets the source language of a catalog created from a
// missing file. Existing files keep theirs.
func WithSourceLanguage(lang string) Option {
	return func(s *Store) {
		if lang != "" {
			s.sourceLanguage = lang
		}
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultPath pins the registry to one catalog, served when callers pass
// no path. Relative paths resolve against the working directory.
func WithDefaultPath(path string) RegistryOption {
	return func(r *Registry) {
		r.defaultPath = path
	}
}

// WithSearchRoot sets the directory scanned for catalogs and used to resolve
// relative paths. It defaults to the default path's directory, or the
// working directory when there is none.
func WithSearchRoot(root string) RegistryOption {
	return func(r *Registry) {
		r.root = root
	}
}

// WithRegistryLogger sets the logger used by the registry and passed to the
// stores it opens.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStoreOptions applies options to every store the registry opens.
func WithStoreOptions(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// WithDiscoveryOptions configures catalog discovery.
func WithDiscoveryOptions(opts ...discovery.Option) RegistryOption {
	return func(r *Registry) {
		r.discoveryOpts = append(r.discoveryOpts, opts...)
	}
}
