package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/xcstrings/pkg/discovery"
	"github.com/dmitrymomot/xcstrings/pkg/logger"
)

// Mode tells how a registry selects catalogs.
type Mode int

const (
	// ModeDiscovery serves any catalog under the search root.
	ModeDiscovery Mode = iota
	// ModePinned serves one configured catalog by default.
	ModePinned
)

func (m Mode) String() string {
	if m == ModePinned {
		return "pinned"
	}
	return "discovery"
}

// Registry caches one Store per canonical catalog path. Concurrent first
// requests for the same path open it once.
type Registry struct {
	defaultPath   string
	root          string
	logger        *slog.Logger
	storeOpts     []Option
	discoveryOpts []discovery.Option

	group singleflight.Group

	mu         sync.RWMutex
	stores     map[string]*Store
	discovered []string
	scanned    bool
	closed     bool
}

// NewRegistry builds a registry. With WithDefaultPath it runs in pinned mode.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		logger: logger.NewNope(),
		stores: make(map[string]*Store),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.defaultPath != "" {
		p, err := filepath.Abs(r.defaultPath)
		if err != nil {
			return nil, err
		}
		r.defaultPath = canonical(p)
	}

	switch {
	case r.root != "":
		root, err := filepath.Abs(r.root)
		if err != nil {
			return nil, err
		}
		r.root = canonical(root)
	case r.defaultPath != "":
		r.root = filepath.Dir(r.defaultPath)
	default:
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		r.root = canonical(wd)
	}

	return r, nil
}

// canonical resolves symlinks when the path exists and returns it unchanged
// otherwise, so catalogs not created yet keep a stable key.
func canonical(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}

// Mode reports the registry mode.
func (r *Registry) Mode() Mode {
	if r.defaultPath != "" {
		return ModePinned
	}
	return ModeDiscovery
}

// Root returns the search root.
func (r *Registry) Root() string {
	return r.root
}

// DefaultPath returns the pinned catalog path, empty in discovery mode.
func (r *Registry) DefaultPath() string {
	return r.defaultPath
}

// Resolve maps a caller-supplied path to the canonical registry key.
func (r *Registry) Resolve(path string) (string, error) {
	if path == "" {
		if r.defaultPath == "" {
			return "", ErrPathRequired
		}
		return r.defaultPath, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	return canonical(path), nil
}

// Store returns the store for path, opening it on first use. An empty path
// selects the default catalog.
func (r *Registry) Store(ctx context.Context, path string) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrClosed
	}
	s, ok := r.stores[key]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	ch := r.group.DoChan(key, func() (any, error) {
		r.mu.RLock()
		s, ok := r.stores[key]
		r.mu.RUnlock()
		if ok {
			return s, nil
		}

		opts := append([]Option{WithLogger(r.logger)}, r.storeOpts...)
		s, err := Open(key, opts...)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			return nil, ErrClosed
		}
		if existing, ok := r.stores[key]; ok {
			return existing, nil
		}
		r.stores[key] = s
		r.logger.Debug("catalog opened", slog.String("catalog", key))
		return s, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Store), nil
	}
}

// Default returns the pinned catalog's store.
func (r *Registry) Default(ctx context.Context) (*Store, error) {
	return r.Store(ctx, "")
}

// Paths lists the catalogs the registry serves: the pinned path, or the
// discovered ones. Discovery runs on first call.
func (r *Registry) Paths(ctx context.Context) ([]string, error) {
	if r.defaultPath != "" {
		return []string{r.defaultPath}, nil
	}
	r.mu.RLock()
	scanned, paths := r.scanned, slices.Clone(r.discovered)
	r.mu.RUnlock()
	if scanned {
		return paths, nil
	}
	return r.Refresh(ctx)
}

// Refresh rescans the search root. In pinned mode it only reports whether the
// default catalog still exists.
func (r *Registry) Refresh(ctx context.Context) ([]string, error) {
	if r.defaultPath != "" {
		if _, err := os.Stat(r.defaultPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return []string{r.defaultPath}, nil
	}

	opts := append([]discovery.Option{discovery.WithLogger(r.logger)}, r.discoveryOpts...)
	paths, err := discovery.Find(ctx, r.root, opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.discovered = paths
	r.scanned = true
	r.mu.Unlock()

	r.logger.Debug("catalogs discovered", slog.String("root", r.root), slog.Int("count", len(paths)))
	return slices.Clone(paths), nil
}

// Opened lists the paths of stores opened so far, sorted.
func (r *Registry) Opened() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.stores))
	for p := range r.stores {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Close drops every cached store. Later calls return ErrClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	clear(r.stores)
	return nil
}
