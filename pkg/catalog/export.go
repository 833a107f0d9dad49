package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/xcstrings/pkg/plural"
)

// Export flattens one language into key → text. Plural units become maps of
// category → text and device units collapse to their "other" case. Keys
// without a unit for lang are left out.
func (c *Catalog) Export(lang string) (map[string]any, error) {
	if !c.HasLanguage(lang) {
		return nil, notFound(lang, "language is not in the catalog")
	}
	out := make(map[string]any, len(c.Entries))
	for key, e := range c.Entries {
		u, ok := e.Localizations[lang]
		if !ok {
			continue
		}
		out[key] = flatten(u, 0)
	}
	return out, nil
}

func flatten(u Unit, depth int) any {
	if depth > MaxDepth {
		return ""
	}
	if v, ok := u.Value(); ok {
		return v.Text
	}
	if cs, ok := u.variations[SelectorPlural]; ok {
		m := make(map[string]any, len(cs))
		for k, child := range cs {
			m[k] = flatten(child, depth+1)
		}
		return m
	}
	if cs, ok := u.variations[SelectorDevice]; ok {
		if child, ok := cs["other"]; ok {
			return flatten(child, depth+1)
		}
		if keys := u.CaseKeys(SelectorDevice); len(keys) > 0 {
			return flatten(cs[keys[0]], depth+1)
		}
	}
	return ""
}

// Selection picks the variation cases Resolve renders.
type Selection struct {
	Count  *int   // plural count; nil renders the "other" case
	Device string // device case; empty renders the "other" case
}

var substitutionToken = regexp.MustCompile(`%#@([^@]+)@`)

// Resolve renders u for lang as a user would see it: variations are chosen
// by sel, %#@name@ tokens are replaced by their substitutions and the %arg
// placeholder inside a substitution by the count.
func Resolve(u Unit, lang string, sel Selection) (string, error) {
	return resolve(u, lang, sel, 0)
}

func resolve(u Unit, lang string, sel Selection, depth int) (string, error) {
	if depth > MaxDepth {
		return "", invalid("", "nesting deeper than %d levels", MaxDepth)
	}
	leaf, err := pick(u, lang, sel, depth)
	if err != nil {
		return "", err
	}

	var firstErr error
	text := substitutionToken.ReplaceAllStringFunc(leaf, func(tok string) string {
		id := substitutionToken.FindStringSubmatch(tok)[1]
		s, ok := u.substitutions[id]
		if !ok {
			return tok
		}
		rendered, err := resolve(s.Unit, lang, sel, depth+1)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return tok
		}
		if sel.Count != nil {
			rendered = strings.ReplaceAll(rendered, "%arg", strconv.Itoa(*sel.Count))
		}
		return rendered
	})
	return text, firstErr
}

func pick(u Unit, lang string, sel Selection, depth int) (string, error) {
	if v, ok := u.Value(); ok {
		return v.Text, nil
	}
	if cs, ok := u.variations[SelectorDevice]; ok {
		if child, ok := choose(cs, sel.Device); ok {
			return resolve(child, lang, sel, depth+1)
		}
	}
	if cs, ok := u.variations[SelectorPlural]; ok {
		category := plural.Other
		if sel.Count != nil {
			category = plural.RuleFor(lang)(*sel.Count)
		}
		if child, ok := choose(cs, category); ok {
			return resolve(child, lang, sel, depth+1)
		}
	}
	return "", notFound("", "no case matches %s", describe(sel))
}

func choose(cs map[string]Unit, key string) (Unit, bool) {
	if child, ok := cs[key]; ok && key != "" {
		return child, true
	}
	child, ok := cs["other"]
	return child, ok
}

func describe(sel Selection) string {
	parts := []string{}
	if sel.Count != nil {
		parts = append(parts, fmt.Sprintf("count %d", *sel.Count))
	}
	if sel.Device != "" {
		parts = append(parts, "device "+sel.Device)
	}
	if len(parts) == 0 {
		return "the default selection"
	}
	return strings.Join(parts, " and ")
}
