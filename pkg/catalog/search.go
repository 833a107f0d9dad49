package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// Record is a key with all of its translations.
type Record struct {
	Key             string          `json:"key"`
	Comment         *string         `json:"comment,omitempty"`
	ExtractionState *string         `json:"extractionState,omitempty"`
	ShouldTranslate *bool           `json:"shouldTranslate,omitempty"`
	Translations    map[string]Unit `json:"translations"`
}

// Summary is a compact view of a key.
type Summary struct {
	Key           string   `json:"key"`
	Comment       *string  `json:"comment,omitempty"`
	Languages     []string `json:"languages"`
	HasVariations bool     `json:"hasVariations"`
}

// SearchResult holds matches in key order. Truncated is set when the limit
// cut the list short.
type SearchResult[T any] struct {
	Items     []T  `json:"items"`
	Total     int  `json:"total"`
	Truncated bool `json:"truncated"`
}

// Find returns the entries whose key, comment or any translation text
// contains query, compared case-insensitively. An empty query matches
// everything; a limit of zero or less means no limit.
func (c *Catalog) Find(ctx context.Context, query string, limit int) (SearchResult[Record], error) {
	return search(ctx, c, query, limit, func(key string, e *Entry) Record {
		return Record{
			Key:             key,
			Comment:         e.Comment,
			ExtractionState: e.ExtractionState,
			ShouldTranslate: e.ShouldTranslate,
			Translations:    e.Localizations,
		}
	})
}

// Summaries is Find returning Summary values.
func (c *Catalog) Summaries(ctx context.Context, query string, limit int) (SearchResult[Summary], error) {
	return search(ctx, c, query, limit, func(key string, e *Entry) Summary {
		return Summary{
			Key:           key,
			Comment:       e.Comment,
			Languages:     e.Languages(),
			HasVariations: e.HasVariations(),
		}
	})
}

func search[T any](ctx context.Context, c *Catalog, query string, limit int, build func(string, *Entry) T) (SearchResult[T], error) {
	m := newMatcher(query)
	res := SearchResult[T]{Items: []T{}}
	for _, key := range c.Keys() {
		if err := ctx.Err(); err != nil {
			return SearchResult[T]{}, err
		}
		e := c.Entries[key]
		if !m.entry(key, e) {
			continue
		}
		res.Total++
		if limit > 0 && len(res.Items) >= limit {
			res.Truncated = true
			continue
		}
		res.Items = append(res.Items, build(key, e))
	}
	return res, nil
}

type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.needle = m.fold.String(strings.TrimSpace(query))
	return m
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.needle)
}

func (m *matcher) entry(key string, e *Entry) bool {
	if m.needle == "" || m.contains(key) {
		return true
	}
	if e.Comment != nil && m.contains(*e.Comment) {
		return true
	}
	for _, u := range e.Localizations {
		if m.unit(u, 0) {
			return true
		}
	}
	return false
}

func (m *matcher) unit(u Unit, depth int) bool {
	if depth > MaxDepth {
		return false
	}
	if u.value != nil && m.contains(u.value.Text) {
		return true
	}
	for _, cs := range u.variations {
		for _, child := range cs {
			if m.unit(child, depth+1) {
				return true
			}
		}
	}
	for _, s := range u.substitutions {
		if m.unit(s.Unit, depth+1) {
			return true
		}
	}
	return false
}
