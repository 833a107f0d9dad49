package store

import "errors"

var (
	// ErrPathRequired is returned when no catalog path was given and the
	// registry has no default.
	ErrPathRequired = errors.New("store: catalog path required")
	// ErrClosed is returned by a registry after Close.
	ErrClosed = errors.New("store: registry closed")
)
