package catalog

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

// Validate checks the structure of every unit in c. Catalogs produced by
// Parse and by the mutation methods always pass; hand-built ones may not.
func Validate(c *Catalog) error {
	for _, key := range c.Keys() {
		e := c.Entries[key]
		if err := checkUTF8("", "key", key); err != nil {
			return err
		}
		if e == nil {
			return invalid(key, "entry is nil")
		}
		if e.Comment != nil {
			if err := checkUTF8(key, "comment", *e.Comment); err != nil {
				return err
			}
		}
		if e.ExtractionState != nil && *e.ExtractionState == "" {
			return invalid(key, "extraction state is empty")
		}
		for _, lang := range e.Languages() {
			if err := checkUTF8(key, "language code", lang); err != nil {
				return err
			}
			if err := validateUnit(Location(key, lang), e.Localizations[lang], 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateUnit(loc string, u Unit, depth int) error {
	if depth > MaxDepth {
		return invalid(loc, "nesting deeper than %d levels", MaxDepth)
	}
	switch {
	case u.value != nil && len(u.variations) > 0:
		return invalid(loc, "unit has both a value and variations")
	case u.IsZero():
		return invalid(loc, "unit has neither a value nor variations")
	}
	if u.value != nil {
		if err := checkUTF8(loc, "text", u.value.Text); err != nil {
			return err
		}
	}

	for _, sel := range u.Selectors() {
		selLoc := Location(loc, string(sel))
		if !sel.Valid() {
			return invalid(selLoc, "unknown selector %q", sel)
		}
		cases := u.variations[sel]
		if len(cases) == 0 {
			return invalid(selLoc, "selector has no cases")
		}
		for _, ck := range slices.Sorted(maps.Keys(cases)) {
			if !sel.ValidCase(ck) {
				return invalid(Location(selLoc, ck), "unknown %s case %q", sel, ck)
			}
			if err := validateUnit(Location(selLoc, ck), cases[ck], depth+1); err != nil {
				return err
			}
		}
	}

	for _, id := range slices.Sorted(maps.Keys(u.substitutions)) {
		if err := checkUTF8(loc, "substitution name", id); err != nil {
			return err
		}
		sub := u.substitutions[id]
		if sub.FormatSpecifier != nil {
			if err := checkUTF8(Location(loc, "substitutions", id), "format specifier", *sub.FormatSpecifier); err != nil {
				return err
			}
		}
		if err := validateUnit(Location(loc, "substitutions", id), sub.Unit, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// checkUTF8 rejects strings Marshal could not write back byte for byte.
func checkUTF8(loc, field, s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	return invalid(strings.ToValidUTF8(loc, "\uFFFD"), "%s is not valid UTF-8", field)
}
