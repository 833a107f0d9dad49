package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dmitrymomot/xcstrings"
	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

var errNoCatalog = errors.New("no catalog selected: pass --path or set STRINGS_PATH")

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// describe renders catalog errors with their public message only, so
// underlying causes stay in the logs.
func describe(err error) errorBody {
	if errors.Is(err, errNoCatalog) {
		return errorBody{Code: xcstrings.CodePathRequired, Message: err.Error()}
	}
	var ce *catalog.Error
	if errors.As(err, &ce) {
		h := xcstrings.ToHTTPError(err)
		return errorBody{Code: h.ErrorCode, Message: h.Message, Location: h.Location}
	}
	return errorBody{Code: "error", Message: err.Error()}
}

// writeError prints err as one JSON line.
func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(map[string]errorBody{"error": describe(err)})
}

func exitCode(err error) int {
	if errors.Is(err, errNoCatalog) {
		return exitUsage
	}
	return exitFailure
}

type statusResponse struct {
	Status string `json:"status"`
}

var statusOK = statusResponse{Status: "ok"}
