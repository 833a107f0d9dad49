package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Find returns every catalog file below root.
func Find(ctx context.Context, root string, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("discovery: stat root: %w", err)
	}
	if !info.IsDir() {
		if cfg.matches(abs) {
			return []string{canonical(abs)}, nil
		}
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			cfg.logger.DebugContext(ctx, "skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != abs {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != abs && cfg.skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !cfg.matches(d.Name()) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		}
		seen[canonical(path)] = struct{}{}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

func (c *config) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := c.skip[strings.ToLower(name)]
	return ok
}

func (c *config) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(c.extensions, ext)
}

// canonical resolves symlinks, falling back to the cleaned path.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
