package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrNotFound   = errors.New("catalog: not found")
	ErrConflict   = errors.New("catalog: conflict")
	ErrValidation = errors.New("catalog: validation failed")
	ErrParse      = errors.New("catalog: malformed document")
	ErrIO         = errors.New("catalog: i/o failure")
)

var kinds = []error{ErrNotFound, ErrConflict, ErrValidation, ErrParse, ErrIO}

// Error describes a failed catalog operation.
type Error struct {
	Kind     error  // one of the ErrXxx kinds
	Location string // logical location, e.g. "greeting/uk/plural/one"
	Msg      string
	Err      error // underlying cause, never shown to API clients
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Public())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Public renders the error without its underlying cause.
func (e *Error) Public() string {
	var b strings.Builder
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if e.Location != "" {
		b.WriteString(" at ")
		b.WriteString(e.Location)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind error, loc string, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Msg: fmt.Sprintf(format, args...)}
}

func notFound(loc, format string, args ...any) *Error {
	return newError(ErrNotFound, loc, format, args...)
}

func invalid(loc, format string, args ...any) *Error {
	return newError(ErrValidation, loc, format, args...)
}

// KindOf returns the kind wrapped by err, or nil when err carries none.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Location joins path segments into a logical location.
func Location(parts ...string) string {
	return strings.Join(parts, "/")
}
