package catalog

import (
	"maps"
	"slices"
	"strings"
)

// Patch is a partial update of a unit. Nil fields leave data untouched.
type Patch struct {
	Text          *string                       `json:"text,omitempty"`
	State         *string                       `json:"state,omitempty"`
	Variations    map[Selector]map[string]Patch `json:"variations,omitempty"`
	Substitutions map[string]*SubstitutionPatch `json:"substitutions,omitempty"`
}

// SubstitutionPatch updates one substitution. A nil *SubstitutionPatch in
// Patch.Substitutions (JSON null) removes the substitution.
type SubstitutionPatch struct {
	ArgNum          *int    `json:"argNum,omitempty"`
	FormatSpecifier *string `json:"formatSpecifier,omitempty"`
	Patch
}

func (p Patch) setsValue() bool {
	return p.Text != nil || p.State != nil
}

func (p Patch) isEmpty() bool {
	return !p.setsValue() && len(p.Variations) == 0 && len(p.Substitutions) == 0
}

// Upsert merges the patch into the unit for key and lang, creating the entry
// and the unit when missing, and returns the resulting unit.
func (c *Catalog) Upsert(key, lang string, p Patch) (Unit, error) {
	if key == "" {
		return Unit{}, invalid("", "key must not be empty")
	}
	if err := checkUTF8("", "key", key); err != nil {
		return Unit{}, err
	}
	if err := validateLanguage(lang); err != nil {
		return Unit{}, err
	}

	e, ok := c.edit(key)
	if !ok {
		e = newEntry()
	}
	cur, had := e.Localizations[lang]
	next, err := mergeUnit(Location(key, lang), cur, had, p, 0)
	if err != nil {
		return Unit{}, err
	}
	if err := validateUnit(Location(key, lang), next, 0); err != nil {
		return Unit{}, err
	}

	if !ok {
		c.Entries[key] = e
	}
	e.Localizations[lang] = next
	return next, nil
}

func mergeUnit(loc string, cur Unit, exists bool, p Patch, depth int) (Unit, error) {
	if depth > MaxDepth {
		return Unit{}, invalid(loc, "nesting deeper than %d levels", MaxDepth)
	}
	if p.setsValue() && len(p.Variations) > 0 {
		return Unit{}, invalid(loc, "patch sets both text or state and variations")
	}
	if p.State != nil && !ValidState(*p.State) {
		return Unit{}, invalid(loc, "unknown state %q", *p.State)
	}
	if p.Text != nil {
		if err := checkUTF8(loc, "text", *p.Text); err != nil {
			return Unit{}, err
		}
	}
	if !exists && p.isEmpty() {
		return Unit{}, invalid(loc, "patch is empty")
	}

	next := Unit{}
	if exists {
		next = cur.shallow()
	}

	switch {
	case p.setsValue():
		v := Value{}
		if cur.value != nil {
			v = *cur.value
		}
		if p.Text != nil {
			v.Text = *p.Text
		}
		if p.State != nil {
			v.State = *p.State
		}
		if v.State == "" {
			v.State = StateTranslated
			if v.Text == "" {
				v.State = StateNew
			}
		}
		next.value = &v
		next.variations = nil

	case len(p.Variations) > 0:
		if err := mergeVariations(loc, &next, p.Variations, depth); err != nil {
			return Unit{}, err
		}
	}

	if len(p.Substitutions) > 0 {
		if err := mergeSubstitutions(loc, &next, p.Substitutions, depth); err != nil {
			return Unit{}, err
		}
	}

	if next.IsZero() {
		return Unit{}, invalid(loc, "unit needs text, state or variations")
	}
	return next, nil
}

// mergeVariations applies case patches to u, converting a leaf into
// variations. At the top level a patch may not add a selector family next to
// an existing one; catalogs loaded with both families keep them.
func mergeVariations(loc string, u *Unit, patches map[Selector]map[string]Patch, depth int) error {
	u.value = nil
	if u.variations == nil {
		u.variations = make(map[Selector]map[string]Unit, len(patches))
	}

	for _, sel := range slices.Sorted(maps.Keys(patches)) {
		selLoc := Location(loc, string(sel))
		if !sel.Valid() {
			return invalid(selLoc, "unknown selector %q", sel)
		}
		cases, had := u.variations[sel]
		if !had && depth == 0 && len(u.variations) > 0 {
			return invalid(selLoc, "cannot add %s variations next to %s variations", sel, joinSelectors(u.Selectors()))
		}
		if cases == nil {
			cases = make(map[string]Unit, len(patches[sel]))
		}

		for _, ck := range slices.Sorted(maps.Keys(patches[sel])) {
			caseLoc := Location(selLoc, ck)
			if !sel.ValidCase(ck) {
				return invalid(caseLoc, "unknown %s case %q", sel, ck)
			}
			child, ok := cases[ck]
			merged, err := mergeUnit(caseLoc, child, ok, patches[sel][ck], depth+1)
			if err != nil {
				return err
			}
			cases[ck] = merged
		}
		if len(cases) == 0 {
			return invalid(selLoc, "selector has no cases")
		}
		u.variations[sel] = cases
	}
	return nil
}

func mergeSubstitutions(loc string, u *Unit, patches map[string]*SubstitutionPatch, depth int) error {
	if u.substitutions == nil {
		u.substitutions = make(map[string]Substitution, len(patches))
	}
	for _, id := range slices.Sorted(maps.Keys(patches)) {
		sp := patches[id]
		if sp == nil {
			delete(u.substitutions, id)
			continue
		}
		if err := checkUTF8(loc, "substitution name", id); err != nil {
			return err
		}
		subLoc := Location(loc, "substitutions", id)
		s, had := u.substitutions[id]
		if sp.ArgNum != nil {
			s.ArgNum = clonePtr(sp.ArgNum)
		}
		if sp.FormatSpecifier != nil {
			if err := checkUTF8(subLoc, "format specifier", *sp.FormatSpecifier); err != nil {
				return err
			}
			s.FormatSpecifier = clonePtr(sp.FormatSpecifier)
		}
		if !had || !sp.Patch.isEmpty() {
			merged, err := mergeUnit(subLoc, s.Unit, had, sp.Patch, depth+1)
			if err != nil {
				return err
			}
			s.Unit = merged
		}
		u.substitutions[id] = s
	}
	if len(u.substitutions) == 0 {
		u.substitutions = nil
	}
	return nil
}

func joinSelectors(sels []Selector) string {
	names := make([]string, len(sels))
	for i, s := range sels {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// DeleteTranslation removes the unit for key and lang. The entry stays even
// when no languages remain.
func (c *Catalog) DeleteTranslation(key, lang string) error {
	e, ok := c.Entries[key]
	if !ok {
		return notFound(key, "key does not exist")
	}
	if _, ok := e.Localizations[lang]; !ok {
		return notFound(Location(key, lang), "no translation for language")
	}
	e, _ = c.edit(key)
	delete(e.Localizations, lang)
	return nil
}

// DeleteKey removes the entry for key.
func (c *Catalog) DeleteKey(key string) error {
	if _, ok := c.Entries[key]; !ok {
		return notFound(key, "key does not exist")
	}
	delete(c.Entries, key)
	return nil
}

// RenameKey moves the entry under a new key.
func (c *Catalog) RenameKey(from, to string) error {
	if to == "" {
		return invalid(from, "new key must not be empty")
	}
	if err := checkUTF8(from, "new key", to); err != nil {
		return err
	}
	e, ok := c.Entries[from]
	if !ok {
		return notFound(from, "key does not exist")
	}
	if from == to {
		return nil
	}
	if _, exists := c.Entries[to]; exists {
		return newError(ErrConflict, to, "key already exists")
	}
	delete(c.Entries, from)
	c.Entries[to] = e
	return nil
}

// setField applies a metadata change. A nil value clears the field; setting a
// value on a missing key creates the entry.
func (c *Catalog) setField(key string, clearing bool, apply func(e *Entry)) error {
	if key == "" {
		return invalid("", "key must not be empty")
	}
	if err := checkUTF8("", "key", key); err != nil {
		return err
	}
	e, ok := c.edit(key)
	if !ok {
		if clearing {
			return notFound(key, "key does not exist")
		}
		e = newEntry()
		c.Entries[key] = e
	}
	apply(e)
	return nil
}

// SetComment sets or, with nil or an empty string, clears the comment.
func (c *Catalog) SetComment(key string, comment *string) error {
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	if comment != nil {
		if err := checkUTF8(key, "comment", *comment); err != nil {
			return err
		}
	}
	return c.setField(key, comment == nil, func(e *Entry) {
		e.Comment = clonePtr(comment)
	})
}

// SetExtractionState sets or, with nil, clears the extraction state.
func (c *Catalog) SetExtractionState(key string, state *string) error {
	if state != nil && !ValidExtractionState(*state) {
		return invalid(key, "unknown extraction state %q", *state)
	}
	return c.setField(key, state == nil, func(e *Entry) {
		e.ExtractionState = clonePtr(state)
	})
}

// SetShouldTranslate sets or, with nil, clears the shouldTranslate flag.
func (c *Catalog) SetShouldTranslate(key string, should *bool) error {
	return c.setField(key, should == nil, func(e *Entry) {
		e.ShouldTranslate = clonePtr(should)
	})
}
