package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

type wireDocument struct {
	SourceLanguage string               `json:"sourceLanguage"`
	Strings        map[string]wireEntry `json:"strings"`
	Version        string               `json:"version"`
}

type wireEntry struct {
	Comment         *string             `json:"comment,omitempty"`
	ExtractionState *string             `json:"extractionState,omitempty"`
	Localizations   map[string]wireUnit `json:"localizations,omitempty"`
	ShouldTranslate *bool               `json:"shouldTranslate,omitempty"`
}

type wireUnit struct {
	StringUnit    *wireStringUnit                `json:"stringUnit,omitempty"`
	Substitutions map[string]wireSubstitution    `json:"substitutions,omitempty"`
	Variations    map[string]map[string]wireUnit `json:"variations,omitempty"`
}

type wireStringUnit struct {
	State string  `json:"state,omitempty"`
	Value *string `json:"value"`
}

type wireSubstitution struct {
	ArgNum          *int    `json:"argNum,omitempty"`
	FormatSpecifier *string `json:"formatSpecifier,omitempty"`
	wireUnit
}

// Parse decodes a string catalog document and validates its structure.
// An empty document yields an empty catalog.
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(DefaultSourceLanguage), nil
	}

	var doc wireDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, syntaxError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &Error{Kind: ErrParse, Msg: "unexpected data after document"}
	}

	c := New(doc.SourceLanguage)
	if doc.Version != "" {
		c.Version = doc.Version
	}
	for _, key := range slices.Sorted(maps.Keys(doc.Strings)) {
		e, err := entryFromWire(key, doc.Strings[key])
		if err != nil {
			return nil, err
		}
		c.Entries[key] = e
	}
	return c, nil
}

func syntaxError(err error) *Error {
	var (
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syn):
		return &Error{Kind: ErrParse, Msg: fmt.Sprintf("invalid JSON near offset %d", syn.Offset), Err: err}
	case errors.As(err, &typ):
		loc := strings.TrimPrefix(typ.Field, "strings.")
		return &Error{
			Kind:     ErrParse,
			Location: strings.ReplaceAll(loc, ".", "/"),
			Msg:      fmt.Sprintf("unexpected %s", typ.Value),
			Err:      err,
		}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Kind: ErrParse, Msg: "document is truncated", Err: err}
	default:
		return &Error{Kind: ErrParse, Msg: "cannot decode document", Err: err}
	}
}

func entryFromWire(key string, w wireEntry) (*Entry, error) {
	e := &Entry{
		Comment:         w.Comment,
		ExtractionState: w.ExtractionState,
		ShouldTranslate: w.ShouldTranslate,
		Localizations:   make(map[string]Unit, len(w.Localizations)),
	}
	for _, lang := range slices.Sorted(maps.Keys(w.Localizations)) {
		u, err := unitFromWire(Location(key, lang), w.Localizations[lang], 0)
		if err != nil {
			return nil, err
		}
		e.Localizations[lang] = u
	}
	return e, nil
}

func unitFromWire(loc string, w wireUnit, depth int) (Unit, error) {
	if depth > MaxDepth {
		return Unit{}, invalid(loc, "nesting deeper than %d levels", MaxDepth)
	}

	hasValue, hasVariations := w.StringUnit != nil, len(w.Variations) > 0
	switch {
	case hasValue && hasVariations:
		return Unit{}, invalid(loc, "unit has both stringUnit and variations")
	case !hasValue && !hasVariations:
		return Unit{}, invalid(loc, "unit has neither stringUnit nor variations")
	}

	var u Unit
	if hasValue {
		if w.StringUnit.Value == nil {
			return Unit{}, invalid(loc, "stringUnit has no value")
		}
		u.value = &Value{State: w.StringUnit.State, Text: *w.StringUnit.Value}
	} else {
		u.variations = make(map[Selector]map[string]Unit, len(w.Variations))
		for _, name := range slices.Sorted(maps.Keys(w.Variations)) {
			sel := Selector(name)
			selLoc := Location(loc, name)
			if !sel.Valid() {
				return Unit{}, invalid(selLoc, "unknown selector %q", name)
			}
			wcases := w.Variations[name]
			if len(wcases) == 0 {
				return Unit{}, invalid(selLoc, "selector has no cases")
			}
			cases := make(map[string]Unit, len(wcases))
			for _, ck := range slices.Sorted(maps.Keys(wcases)) {
				if !sel.ValidCase(ck) {
					return Unit{}, invalid(Location(selLoc, ck), "unknown %s case %q", name, ck)
				}
				child, err := unitFromWire(Location(selLoc, ck), wcases[ck], depth+1)
				if err != nil {
					return Unit{}, err
				}
				cases[ck] = child
			}
			u.variations[sel] = cases
		}
	}

	if len(w.Substitutions) > 0 {
		u.substitutions = make(map[string]Substitution, len(w.Substitutions))
		for _, id := range slices.Sorted(maps.Keys(w.Substitutions)) {
			ws := w.Substitutions[id]
			su, err := unitFromWire(Location(loc, "substitutions", id), ws.wireUnit, depth+1)
			if err != nil {
				return Unit{}, err
			}
			u.substitutions[id] = Substitution{ArgNum: ws.ArgNum, FormatSpecifier: ws.FormatSpecifier, Unit: su}
		}
	}
	return u, nil
}

func unitToWire(u Unit) wireUnit {
	var w wireUnit
	if u.value != nil {
		text := u.value.Text
		w.StringUnit = &wireStringUnit{State: u.value.State, Value: &text}
	}
	if len(u.variations) > 0 {
		w.Variations = make(map[string]map[string]wireUnit, len(u.variations))
		for sel, cases := range u.variations {
			wc := make(map[string]wireUnit, len(cases))
			for ck, child := range cases {
				wc[ck] = unitToWire(child)
			}
			w.Variations[string(sel)] = wc
		}
	}
	if len(u.substitutions) > 0 {
		w.Substitutions = make(map[string]wireSubstitution, len(u.substitutions))
		for id, s := range u.substitutions {
			w.Substitutions[id] = wireSubstitution{
				ArgNum:          s.ArgNum,
				FormatSpecifier: s.FormatSpecifier,
				wireUnit:        unitToWire(s.Unit),
			}
		}
	}
	return w
}

func toWire(c *Catalog) wireDocument {
	doc := wireDocument{
		SourceLanguage: c.SourceLanguage,
		Version:        c.Version,
		Strings:        make(map[string]wireEntry, len(c.Entries)),
	}
	if doc.SourceLanguage == "" {
		doc.SourceLanguage = DefaultSourceLanguage
	}
	if doc.Version == "" {
		doc.Version = DefaultVersion
	}
	for key, e := range c.Entries {
		we := wireEntry{
			Comment:         e.Comment,
			ExtractionState: e.ExtractionState,
			ShouldTranslate: e.ShouldTranslate,
		}
		if len(e.Localizations) > 0 {
			we.Localizations = make(map[string]wireUnit, len(e.Localizations))
			for lang, u := range e.Localizations {
				we.Localizations[lang] = unitToWire(u)
			}
		}
		doc.Strings[key] = we
	}
	return doc
}

// Marshal encodes c in Xcode's layout: two-space indentation, `"key" : value`
// pairs, sorted keys and a trailing newline.
func Marshal(c *Catalog) ([]byte, error) {
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toWire(c)); err != nil {
		return nil, &Error{Kind: ErrParse, Msg: "cannot encode catalog", Err: err}
	}

	var tree any
	dec := json.NewDecoder(&raw)
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, &Error{Kind: ErrParse, Msg: "cannot encode catalog", Err: err}
	}

	var out bytes.Buffer
	out.Grow(raw.Cap())
	writeApple(&out, tree, 0)
	out.WriteByte('\n')
	return out.Bytes(), nil
}
