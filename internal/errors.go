package internal

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// Stable error codes returned to API clients.
const (
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeValidation       = "validation_error"
	CodeParse            = "parse_error"
	CodeIO               = "io_error"
	CodePathRequired     = "path_required"
	CodeBadRequest       = "bad_request"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeTimeout          = "timeout"
	CodeInternal         = "internal_error"
)

// HTTPError represents an HTTP error with all data needed for rendering.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// ErrorCode is a stable, machine-readable code.
	ErrorCode string

	// Location is the logical place in the catalog the error refers to,
	// e.g. "greeting/uk/plural/one".
	Location string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithLocation(loc string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Location = loc
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func newHTTPError(code int, errorCode, message string, opts []HTTPErrorOption) *HTTPError {
	e := NewHTTPError(code, message)
	e.ErrorCode = errorCode
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusBadRequest, CodeBadRequest, message, opts)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusNotFound, CodeNotFound, message, opts)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusConflict, CodeConflict, message, opts)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusUnprocessableEntity, CodeValidation, message, opts)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, CodeInternal, message, opts)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, CodeInternal, message, opts)
}

// Helper functions for error inspection.

func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError extracts the HTTPError from an error if present.
// Returns nil if the error is not an HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// ToHTTPError maps any handler error onto an HTTPError. Catalog errors keep
// their kind, location and message; their underlying cause, which may name
// file system paths or parser internals, stays in Err.
func ToHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	if httpErr := AsHTTPError(err); httpErr != nil {
		return httpErr
	}

	if errors.Is(err, store.ErrPathRequired) {
		return newHTTPError(http.StatusBadRequest, CodePathRequired,
			"catalog path is required: pass ?path= or configure a default catalog", []HTTPErrorOption{WithError(err)})
	}
	if errors.Is(err, store.ErrClosed) {
		return ErrServiceUnavailable("server is shutting down", WithError(err))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newHTTPError(http.StatusServiceUnavailable, CodeTimeout, "request timed out", []HTTPErrorOption{WithError(err)})
	}

	var ce *catalog.Error
	if !errors.As(err, &ce) {
		return ErrInternal("internal server error", WithError(err))
	}

	opts := []HTTPErrorOption{WithError(err), WithLocation(ce.Location)}
	msg := ce.Msg
	switch catalog.KindOf(err) {
	case catalog.ErrNotFound:
		return ErrNotFound(fallback(msg, "not found"), opts...)
	case catalog.ErrConflict:
		return ErrConflict(fallback(msg, "conflict"), opts...)
	case catalog.ErrValidation:
		return ErrUnprocessable(fallback(msg, "validation failed"), opts...)
	case catalog.ErrParse:
		return newHTTPError(http.StatusInternalServerError, CodeParse, "catalog file is malformed", opts)
	case catalog.ErrIO:
		return newHTTPError(http.StatusInternalServerError, CodeIO, "catalog file could not be read or written", opts)
	}
	return ErrInternal("internal server error", opts...)
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Location  string `json:"location,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// DefaultErrorHandler renders errors as JSON and logs server-side failures.
func DefaultErrorHandler(c Context, err error) error {
	httpErr := ToHTTPError(err)
	reqID := httpErr.RequestID
	if reqID == "" {
		reqID = ContextValue[string](c, RequestIDKey{})
	}
	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			"status", httpErr.Code,
			"code", httpErr.ErrorCode,
			"error", err.Error(),
		)
	}
	return c.JSON(httpErr.Code, errorBody{
		Code:      httpErr.ErrorCode,
		Message:   httpErr.Message,
		Location:  httpErr.Location,
		RequestID: reqID,
	})
}
