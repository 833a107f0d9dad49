package catalog

import (
	"encoding/json"
	"maps"
	"slices"
)

// Defaults applied when a document omits them.
const (
	DefaultVersion        = "1.0"
	DefaultSourceLanguage = "en"
)

// MaxDepth bounds how deeply variations and substitutions may nest.
const MaxDepth = 16

// Translation states.
const (
	StateNew         = "new"
	StateTranslated  = "translated"
	StateNeedsReview = "needs_review"
	StateStale       = "stale"
)

var states = []string{StateNew, StateTranslated, StateNeedsReview, StateStale}

// ValidState reports whether s is a state accepted on write.
func ValidState(s string) bool {
	return slices.Contains(states, s)
}

// Extraction states describe how a key entered the catalog.
const (
	ExtractionManual             = "manual"
	ExtractionExtractedWithValue = "extracted_with_value"
	ExtractionMigrated           = "migrated"
	ExtractionStale              = "stale"
)

var extractionStates = []string{ExtractionManual, ExtractionExtractedWithValue, ExtractionMigrated, ExtractionStale}

// ValidExtractionState reports whether s is a known extraction state.
func ValidExtractionState(s string) bool {
	return slices.Contains(extractionStates, s)
}

// Selector names a variation family.
type Selector string

const (
	SelectorPlural Selector = "plural"
	SelectorDevice Selector = "device"
)

var (
	pluralCases = []string{"zero", "one", "two", "few", "many", "other"}
	deviceCases = []string{"appletv", "applevision", "applewatch", "ipad", "iphone", "ipod", "mac", "other"}
)

// Valid reports whether s is a known selector.
func (s Selector) Valid() bool {
	return s == SelectorPlural || s == SelectorDevice
}

// Cases lists the case keys the selector accepts.
func (s Selector) Cases() []string {
	switch s {
	case SelectorPlural:
		return slices.Clone(pluralCases)
	case SelectorDevice:
		return slices.Clone(deviceCases)
	}
	return nil
}

// ValidCase reports whether key is a case of the selector.
func (s Selector) ValidCase(key string) bool {
	switch s {
	case SelectorPlural:
		return slices.Contains(pluralCases, key)
	case SelectorDevice:
		return slices.Contains(deviceCases, key)
	}
	return false
}

// Value is a leaf translation.
type Value struct {
	State string `json:"state"`
	Text  string `json:"text"`
}

// Substitution is a named argument of a format string, rendered through its
// own unit (typically a plural variation).
type Substitution struct {
	ArgNum          *int
	FormatSpecifier *string
	Unit            Unit
}

// Unit is one language's translation of a key: either a Value or a set of
// variations. Units are immutable once built; every mutation produces new
// units and leaves the ones reachable from other catalogs untouched.
type Unit struct {
	value         *Value
	variations    map[Selector]map[string]Unit
	substitutions map[string]Substitution
}

// NewValue builds a leaf unit.
func NewValue(state, text string) Unit {
	return Unit{value: &Value{State: state, Text: text}}
}

// NewVariations builds a unit holding one selector family.
func NewVariations(sel Selector, cases map[string]Unit) Unit {
	return Unit{variations: map[Selector]map[string]Unit{sel: maps.Clone(cases)}}
}

// WithVariations returns a copy of u with the selector family set to cases.
// Any leaf value is dropped.
func (u Unit) WithVariations(sel Selector, cases map[string]Unit) Unit {
	next := u.shallow()
	next.value = nil
	if next.variations == nil {
		next.variations = make(map[Selector]map[string]Unit, 1)
	}
	next.variations[sel] = maps.Clone(cases)
	return next
}

// WithSubstitution returns a copy of u carrying the substitution.
func (u Unit) WithSubstitution(id string, s Substitution) Unit {
	next := u.shallow()
	if next.substitutions == nil {
		next.substitutions = make(map[string]Substitution, 1)
	}
	next.substitutions[id] = s
	return next
}

// IsZero reports whether u holds neither a value nor variations.
func (u Unit) IsZero() bool {
	return u.value == nil && len(u.variations) == 0
}

// IsValue reports whether u is a leaf.
func (u Unit) IsValue() bool {
	return u.value != nil
}

// Value returns the leaf value.
func (u Unit) Value() (Value, bool) {
	if u.value == nil {
		return Value{}, false
	}
	return *u.value, true
}

// Selectors lists the variation families present, sorted.
func (u Unit) Selectors() []Selector {
	return slices.Sorted(maps.Keys(u.variations))
}

// Variations returns a copy of the case map for sel.
func (u Unit) Variations(sel Selector) map[string]Unit {
	return maps.Clone(u.variations[sel])
}

// Case returns one case of a variation family.
func (u Unit) Case(sel Selector, key string) (Unit, bool) {
	c, ok := u.variations[sel][key]
	return c, ok
}

// CaseKeys lists the case keys present for sel, sorted.
func (u Unit) CaseKeys(sel Selector) []string {
	return slices.Sorted(maps.Keys(u.variations[sel]))
}

// Substitutions returns a copy of the substitution map.
func (u Unit) Substitutions() map[string]Substitution {
	return maps.Clone(u.substitutions)
}

// shallow copies the top-level maps so the copy can be edited without
// touching u. Nested units are shared.
func (u Unit) shallow() Unit {
	next := Unit{
		substitutions: maps.Clone(u.substitutions),
	}
	if u.value != nil {
		v := *u.value
		next.value = &v
	}
	if u.variations != nil {
		next.variations = make(map[Selector]map[string]Unit, len(u.variations))
		for sel, cases := range u.variations {
			next.variations[sel] = maps.Clone(cases)
		}
	}
	return next
}

type unitJSON struct {
	State         *string                      `json:"state,omitempty"`
	Text          *string                      `json:"text,omitempty"`
	Variations    map[Selector]map[string]Unit `json:"variations,omitempty"`
	Substitutions map[string]Substitution      `json:"substitutions,omitempty"`
}

func (u Unit) view() unitJSON {
	v := unitJSON{Variations: u.variations, Substitutions: u.substitutions}
	if u.value != nil {
		v.State = &u.value.State
		v.Text = &u.value.Text
	}
	return v
}

// MarshalJSON renders the API shape: {"state","text"} for a leaf or
// {"variations"} otherwise, plus "substitutions" when present.
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.view())
}

func (s Substitution) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ArgNum          *int    `json:"argNum,omitempty"`
		FormatSpecifier *string `json:"formatSpecifier,omitempty"`
		unitJSON
	}{s.ArgNum, s.FormatSpecifier, s.Unit.view()})
}

// Entry is everything the catalog knows about one key.
type Entry struct {
	Comment         *string
	ExtractionState *string
	ShouldTranslate *bool
	Localizations   map[string]Unit
}

// Languages lists the languages the entry holds, sorted.
func (e *Entry) Languages() []string {
	langs := slices.Sorted(maps.Keys(e.Localizations))
	if langs == nil {
		return []string{}
	}
	return langs
}

// HasVariations reports whether any localization uses variations or
// substitutions.
func (e *Entry) HasVariations() bool {
	for _, u := range e.Localizations {
		if len(u.variations) > 0 || len(u.substitutions) > 0 {
			return true
		}
	}
	return false
}

// Translatable reports whether the key is meant to be translated.
func (e *Entry) Translatable() bool {
	return e.ShouldTranslate == nil || *e.ShouldTranslate
}

func (e *Entry) clone() *Entry {
	return &Entry{
		Comment:         clonePtr(e.Comment),
		ExtractionState: clonePtr(e.ExtractionState),
		ShouldTranslate: clonePtr(e.ShouldTranslate),
		Localizations:   maps.Clone(e.Localizations),
	}
}

func newEntry() *Entry {
	return &Entry{Localizations: make(map[string]Unit)}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Catalog is a parsed string catalog.
type Catalog struct {
	Version        string
	SourceLanguage string
	Entries        map[string]*Entry
}

// New returns an empty catalog.
func New(sourceLanguage string) *Catalog {
	if sourceLanguage == "" {
		sourceLanguage = DefaultSourceLanguage
	}
	return &Catalog{
		Version:        DefaultVersion,
		SourceLanguage: sourceLanguage,
		Entries:        make(map[string]*Entry),
	}
}

// Clone returns a working copy that shares entries with c. Mutations on the
// copy never reach c.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Version:        c.Version,
		SourceLanguage: c.SourceLanguage,
		Entries:        maps.Clone(c.Entries),
	}
}

// Keys lists every key, sorted.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.Entries))
}

// Entry returns the entry for key.
func (c *Catalog) Entry(key string) (*Entry, bool) {
	e, ok := c.Entries[key]
	return e, ok
}

// Translation returns the unit stored for key and lang.
func (c *Catalog) Translation(key, lang string) (Unit, error) {
	e, ok := c.Entries[key]
	if !ok {
		return Unit{}, notFound(key, "key does not exist")
	}
	u, ok := e.Localizations[lang]
	if !ok {
		return Unit{}, notFound(Location(key, lang), "no translation for language")
	}
	return u, nil
}

// edit returns a private copy of the entry for key, installed in c.
func (c *Catalog) edit(key string) (*Entry, bool) {
	e, ok := c.Entries[key]
	if !ok {
		return nil, false
	}
	e = e.clone()
	if e.Localizations == nil {
		e.Localizations = make(map[string]Unit)
	}
	c.Entries[key] = e
	return e, true
}
