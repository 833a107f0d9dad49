package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extracted attributes to each record before passing it on.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next so every record carries the attributes the
// extractors find in the logging context. Nil extractors are dropped.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}

type catalogKey struct{}

// WithCatalog records the catalog path an operation works on.
func WithCatalog(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, catalogKey{}, path)
}

// CatalogFromContext returns the path stored by WithCatalog.
func CatalogFromContext(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(catalogKey{}).(string)
	return path, ok && path != ""
}

// CatalogExtractor adds a "catalog" attribute when the context names one.
func CatalogExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if path, ok := CatalogFromContext(ctx); ok {
			return slog.String("catalog", path), true
		}
		return slog.Attr{}, false
	}
}
