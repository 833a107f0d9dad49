package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
	"github.com/dmitrymomot/xcstrings/pkg/logger"
)

// Store serialises access to one catalog file.
type Store struct {
	path           string
	sourceLanguage string
	logger         *slog.Logger
	hooks          []CommitHook

	// write persists bytes to path; replaced in tests to inject failures.
	write func(path string, data []byte) error

	mu  sync.RWMutex
	cat *catalog.Catalog
	// hooksDone is closed once the hooks of the latest commit have run.
	// Guarded by mu.
	hooksDone chan struct{}

	hookTimeout time.Duration
}

// Info describes a store's catalog.
type Info struct {
	Path           string   `json:"path"`
	Version        string   `json:"version"`
	SourceLanguage string   `json:"sourceLanguage"`
	Keys           int      `json:"keys"`
	Languages      []string `json:"languages"`
}

// Open loads the catalog at path. A missing file yields an empty catalog
// that is written on the first mutation.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	s := &Store{
		path:           path,
		sourceLanguage: catalog.DefaultSourceLanguage,
		logger:         logger.NewNope(),
		write:          writeFileAtomic,
		hookTimeout:    DefaultHookTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	cat, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cat = cat
	return s, nil
}

func (s *Store) load() (*catalog.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("catalog file missing, starting empty", slog.String("path", s.path))
		return catalog.New(s.sourceLanguage), nil
	}
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.ErrIO, Msg: "cannot read catalog", Err: err}
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("catalog loaded", slog.String("path", s.path), slog.Int("keys", len(cat.Entries)))
	return cat, nil
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current catalog. It must not be modified; use Clone
// to derive a working copy.
func (s *Store) Snapshot() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// view runs fn against the current snapshot under the read lock.
func (s *Store) view(ctx context.Context, fn func(c *catalog.Catalog) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.cat)
}

// update applies fn to a working copy and commits it. Cancellation is only
// observed before the write lock is taken; once started, the commit runs to
// completion. The lock is released right after the swap; hooks then run in
// commit order, each commit waiting for the previous commit's hooks.
func (s *Store) update(ctx context.Context, op string, fn func(c *catalog.Catalog) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = logger.WithCatalog(context.WithoutCancel(ctx), s.path)

	s.mu.Lock()
	work := s.cat.Clone()
	if err := fn(work); err != nil {
		s.mu.Unlock()
		return err
	}
	data, err := catalog.Marshal(work)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.write(s.path, data); err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "catalog write failed", slog.String("op", op), slog.String("error", err.Error()))
		return &catalog.Error{Kind: catalog.ErrIO, Msg: "cannot write catalog", Err: err}
	}
	s.cat = work
	prev, done := s.hooksDone, make(chan struct{})
	s.hooksDone = done
	s.mu.Unlock()
	defer close(done)

	s.logger.DebugContext(ctx, "catalog committed", slog.String("op", op), slog.Int("bytes", len(data)))
	if prev != nil {
		<-prev
	}
	s.runHooks(ctx, op, data)
	return nil
}

func (s *Store) runHooks(ctx context.Context, op string, data []byte) {
	for _, hook := range s.hooks {
		hctx, cancel := context.WithTimeout(ctx, s.hookTimeout)
		err := hook(hctx, s.path, data)
		cancel()
		if err != nil {
			s.logger.WarnContext(ctx, "commit hook failed", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

// Reload replaces the in-memory catalog with the file's current contents.
// On failure the previous catalog stays in place.
func (s *Store) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, err := s.load()
	if err != nil {
		return err
	}
	s.cat = cat
	return nil
}

// Replace commits data as the whole catalog. data must parse and validate;
// commit hooks run as for any other write.
func (s *Store) Replace(ctx context.Context, data []byte) error {
	next, err := catalog.Parse(data)
	if err != nil {
		return err
	}
	return s.update(ctx, "replace", func(c *catalog.Catalog) error {
		*c = *next
		return nil
	})
}

// Info summarises the catalog.
func (s *Store) Info(ctx context.Context) (Info, error) {
	var info Info
	err := s.view(ctx, func(c *catalog.Catalog) error {
		info = Info{
			Path:           s.path,
			Version:        c.Version,
			SourceLanguage: c.SourceLanguage,
			Keys:           len(c.Entries),
			Languages:      c.Languages(),
		}
		return nil
	})
	return info, err
}

// ListTranslations returns entries matching query with all translations.
func (s *Store) ListTranslations(ctx context.Context, query string, limit int) (catalog.SearchResult[catalog.Record], error) {
	var res catalog.SearchResult[catalog.Record]
	err := s.view(ctx, func(c *catalog.Catalog) error {
		var err error
		res, err = c.Find(ctx, query, limit)
		return err
	})
	return res, err
}

// ListKeys returns summaries of entries matching query.
func (s *Store) ListKeys(ctx context.Context, query string, limit int) (catalog.SearchResult[catalog.Summary], error) {
	var res catalog.SearchResult[catalog.Summary]
	err := s.view(ctx, func(c *catalog.Catalog) error {
		var err error
		res, err = c.Summaries(ctx, query, limit)
		return err
	})
	return res, err
}

// GetTranslation returns the unit for key and lang.
func (s *Store) GetTranslation(ctx context.Context, key, lang string) (catalog.Unit, error) {
	var u catalog.Unit
	err := s.view(ctx, func(c *catalog.Catalog) error {
		var err error
		u, err = c.Translation(key, lang)
		return err
	})
	return u, err
}

// UpsertTranslation merges patch into the unit for key and lang.
func (s *Store) UpsertTranslation(ctx context.Context, key, lang string, patch catalog.Patch) (catalog.Unit, error) {
	var u catalog.Unit
	err := s.update(ctx, "upsert_translation", func(c *catalog.Catalog) error {
		var err error
		u, err = c.Upsert(key, lang, patch)
		return err
	})
	return u, err
}

// DeleteTranslation removes one language of a key.
func (s *Store) DeleteTranslation(ctx context.Context, key, lang string) error {
	return s.update(ctx, "delete_translation", func(c *catalog.Catalog) error {
		return c.DeleteTranslation(key, lang)
	})
}

// DeleteKey removes a key.
func (s *Store) DeleteKey(ctx context.Context, key string) error {
	return s.update(ctx, "delete_key", func(c *catalog.Catalog) error {
		return c.DeleteKey(key)
	})
}

// RenameKey moves a key's entry to a new key.
func (s *Store) RenameKey(ctx context.Context, from, to string) error {
	return s.update(ctx, "rename_key", func(c *catalog.Catalog) error {
		return c.RenameKey(from, to)
	})
}

// SetComment sets or clears a key's comment.
func (s *Store) SetComment(ctx context.Context, key string, comment *string) error {
	return s.update(ctx, "set_comment", func(c *catalog.Catalog) error {
		return c.SetComment(key, comment)
	})
}

// SetExtractionState sets or clears a key's extraction state.
func (s *Store) SetExtractionState(ctx context.Context, key string, state *string) error {
	return s.update(ctx, "set_extraction_state", func(c *catalog.Catalog) error {
		return c.SetExtractionState(key, state)
	})
}

// SetShouldTranslate sets or clears a key's shouldTranslate flag.
func (s *Store) SetShouldTranslate(ctx context.Context, key string, should *bool) error {
	return s.update(ctx, "set_should_translate", func(c *catalog.Catalog) error {
		return c.SetShouldTranslate(key, should)
	})
}

// ListLanguages returns every language in the catalog.
func (s *Store) ListLanguages(ctx context.Context) ([]string, error) {
	var langs []string
	err := s.view(ctx, func(c *catalog.Catalog) error {
		langs = c.Languages()
		return nil
	})
	return langs, err
}

// AddLanguage adds placeholders for code and reports how many keys changed.
func (s *Store) AddLanguage(ctx context.Context, code string) (int, error) {
	var added int
	err := s.update(ctx, "add_language", func(c *catalog.Catalog) error {
		var err error
		added, err = c.AddLanguage(code)
		return err
	})
	return added, err
}

// RemoveLanguage deletes a language from every key.
func (s *Store) RemoveLanguage(ctx context.Context, code string) error {
	return s.update(ctx, "remove_language", func(c *catalog.Catalog) error {
		return c.RemoveLanguage(code)
	})
}

// UpdateLanguage renames a language code across the catalog.
func (s *Store) UpdateLanguage(ctx context.Context, from, to string) error {
	return s.update(ctx, "update_language", func(c *catalog.Catalog) error {
		return c.UpdateLanguage(from, to)
	})
}

// ListUntranslated lists translatable keys without a unit for lang.
func (s *Store) ListUntranslated(ctx context.Context, lang string) ([]string, error) {
	var keys []string
	err := s.view(ctx, func(c *catalog.Catalog) error {
		keys = c.Untranslated(lang)
		return nil
	})
	return keys, err
}

// Progress reports translation progress for lang.
func (s *Store) Progress(ctx context.Context, lang string) (catalog.Progress, error) {
	var p catalog.Progress
	err := s.view(ctx, func(c *catalog.Catalog) error {
		p = c.Progress(lang)
		return nil
	})
	return p, err
}

// Overview reports progress for every language.
func (s *Store) Overview(ctx context.Context) ([]catalog.Progress, error) {
	var out []catalog.Progress
	err := s.view(ctx, func(c *catalog.Catalog) error {
		out = c.Overview()
		return nil
	})
	return out, err
}

// Export flattens lang into a key → text map.
func (s *Store) Export(ctx context.Context, lang string) (map[string]any, error) {
	var out map[string]any
	err := s.view(ctx, func(c *catalog.Catalog) error {
		var err error
		out, err = c.Export(lang)
		return err
	})
	return out, err
}

// Preview renders the unit for key and lang with the given selection.
func (s *Store) Preview(ctx context.Context, key, lang string, sel catalog.Selection) (string, error) {
	u, err := s.GetTranslation(ctx, key, lang)
	if err != nil {
		return "", err
	}
	return catalog.Resolve(u, lang, sel)
}
