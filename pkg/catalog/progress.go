package catalog

import (
	"math"
	"slices"

	"github.com/dmitrymomot/xcstrings/pkg/plural"
)

// Progress summarises how far a language's translation has got.
type Progress struct {
	Language string `json:"language"`
	// Total counts entries holding a unit for Language.
	Total    int `json:"total"`
	Complete int `json:"complete"`
	Percent  int `json:"percent"`
	// Untranslated lists translatable keys with no unit for Language.
	Untranslated []string `json:"untranslated"`
	// MissingPluralForms maps keys to the plural categories Language needs
	// but their plural variations lack.
	MissingPluralForms map[string][]string `json:"missingPluralForms,omitempty"`
}

// incomplete states, including the spellings older tools write.
var incompleteStates = []string{StateNew, StateNeedsReview, "needs-review", "needs-translation"}

// IsComplete reports whether every leaf reachable from u has text and a
// finished state.
func IsComplete(u Unit) bool {
	return complete(u, 0)
}

func complete(u Unit, depth int) bool {
	if depth > MaxDepth || u.IsZero() {
		return false
	}
	if u.value != nil && (u.value.Text == "" || slices.Contains(incompleteStates, u.value.State)) {
		return false
	}
	for _, cs := range u.variations {
		for _, child := range cs {
			if !complete(child, depth+1) {
				return false
			}
		}
	}
	for _, s := range u.substitutions {
		if !complete(s.Unit, depth+1) {
			return false
		}
	}
	return true
}

// Progress computes the translation progress of lang.
func (c *Catalog) Progress(lang string) Progress {
	p := Progress{Language: lang, Untranslated: []string{}}
	required := plural.Forms(lang)

	for _, key := range c.Keys() {
		e := c.Entries[key]
		u, ok := e.Localizations[lang]
		if !ok {
			if e.Translatable() {
				p.Untranslated = append(p.Untranslated, key)
			}
			continue
		}
		p.Total++
		if IsComplete(u) {
			p.Complete++
		}
		if missing := missingForms(u, required, 0); len(missing) > 0 {
			if p.MissingPluralForms == nil {
				p.MissingPluralForms = make(map[string][]string)
			}
			p.MissingPluralForms[key] = missing
		}
	}

	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Complete) * 100 / float64(p.Total)))
	}
	return p
}

// Untranslated lists translatable keys lacking a unit for lang.
func (c *Catalog) Untranslated(lang string) []string {
	keys := []string{}
	for _, key := range c.Keys() {
		e := c.Entries[key]
		if _, ok := e.Localizations[lang]; !ok && e.Translatable() {
			keys = append(keys, key)
		}
	}
	return keys
}

// Overview returns Progress for every language, in language order.
func (c *Catalog) Overview() []Progress {
	langs := c.Languages()
	out := make([]Progress, 0, len(langs))
	for _, lang := range langs {
		out = append(out, c.Progress(lang))
	}
	return out
}

// missingForms collects required plural categories absent from any plural
// variation reachable from u.
func missingForms(u Unit, required []string, depth int) []string {
	if depth > MaxDepth {
		return nil
	}
	var missing []string
	add := func(forms ...string) {
		for _, f := range forms {
			if !slices.Contains(missing, f) {
				missing = append(missing, f)
			}
		}
	}

	if cs, ok := u.variations[SelectorPlural]; ok {
		for _, f := range required {
			if _, ok := cs[f]; !ok {
				add(f)
			}
		}
	}
	for _, cs := range u.variations {
		for _, child := range cs {
			add(missingForms(child, required, depth+1)...)
		}
	}
	for _, s := range u.substitutions {
		add(missingForms(s.Unit, required, depth+1)...)
	}

	slices.SortFunc(missing, func(a, b string) int {
		return slices.Index(plural.Categories, a) - slices.Index(plural.Categories, b)
	})
	return missing
}
