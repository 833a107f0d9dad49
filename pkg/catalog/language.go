package catalog

import (
	"maps"
	"slices"

	"golang.org/x/text/language"
)

func validateLanguage(code string) error {
	if code == "" {
		return invalid("", "language code must not be empty")
	}
	if err := checkUTF8("", "language code", code); err != nil {
		return err
	}
	if _, err := language.Parse(code); err != nil {
		return &Error{Kind: ErrValidation, Location: code, Msg: "invalid language code", Err: err}
	}
	return nil
}

// Languages returns the source language and every language any entry holds,
// sorted.
func (c *Catalog) Languages() []string {
	set := map[string]struct{}{c.SourceLanguage: {}}
	for _, e := range c.Entries {
		for lang := range e.Localizations {
			set[lang] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// HasLanguage reports whether lang is the source language or held by an entry.
func (c *Catalog) HasLanguage(lang string) bool {
	if lang == c.SourceLanguage {
		return true
	}
	for _, e := range c.Entries {
		if _, ok := e.Localizations[lang]; ok {
			return true
		}
	}
	return false
}

// AddLanguage gives every entry lacking code a new, empty unit and returns
// how many entries changed. Repeating the call changes nothing.
func (c *Catalog) AddLanguage(code string) (int, error) {
	if err := validateLanguage(code); err != nil {
		return 0, err
	}
	added := 0
	for _, key := range c.Keys() {
		if _, ok := c.Entries[key].Localizations[code]; ok {
			continue
		}
		e, _ := c.edit(key)
		e.Localizations[code] = NewValue(StateNew, "")
		added++
	}
	return added, nil
}

// RemoveLanguage deletes code from every entry. Removing a language no entry
// holds changes nothing, so it undoes AddLanguage even on a catalog without
// keys. The source language cannot be removed.
func (c *Catalog) RemoveLanguage(code string) error {
	if code == c.SourceLanguage {
		return newError(ErrConflict, code, "cannot remove the source language")
	}
	if err := validateLanguage(code); err != nil {
		return err
	}
	for _, key := range c.Keys() {
		if _, ok := c.Entries[key].Localizations[code]; !ok {
			continue
		}
		e, _ := c.edit(key)
		delete(e.Localizations, code)
	}
	return nil
}

// UpdateLanguage moves every unit stored under from to to. Units already
// present under to are overwritten. The source language cannot be renamed.
func (c *Catalog) UpdateLanguage(from, to string) error {
	if from == c.SourceLanguage {
		return newError(ErrConflict, from, "cannot rename the source language")
	}
	if to == c.SourceLanguage {
		return newError(ErrConflict, to, "cannot overwrite the source language")
	}
	if err := validateLanguage(to); err != nil {
		return err
	}
	found := false
	for _, key := range c.Keys() {
		u, ok := c.Entries[key].Localizations[from]
		if !ok {
			continue
		}
		found = true
		if from == to {
			continue
		}
		e, _ := c.edit(key)
		delete(e.Localizations, from)
		e.Localizations[to] = u
	}
	if !found {
		return notFound(from, "language is not in the catalog")
	}
	return nil
}
