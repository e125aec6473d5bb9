// Package api provides HTTP response utilities for CoverageGuide.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
)

// Pre-marshaled fallback responses to avoid runtime JSON encoding failures
var (
	fallbackErrorResponse []byte
)

// init validates that our fallback responses can be marshaled
func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	// Marshal first so encoding errors are caught before headers go out
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// statusForError maps session and content errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, flow.ErrFeatureUnavailable):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrEmptyMessage), errors.Is(err, flow.ErrUnknownTab), errors.Is(err, content.ErrUnknownFilter):
		return http.StatusBadRequest
	case errors.Is(err, flow.ErrInvalidTransition),
		errors.Is(err, flow.ErrRequestInFlight),
		errors.Is(err, flow.ErrNoSelection),
		errors.Is(err, flow.ErrUnknownOption),
		errors.Is(err, flow.ErrSelectionIncomplete),
		errors.Is(err, flow.ErrUnknownChoice):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes the matching error envelope. Internal errors are not echoed.
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusForError(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		slog.Error(op+": request failed", "error", err)
		msg = "Internal server error"
	case errors.Is(err, store.ErrNotFound):
		slog.Debug(op+": session not found", "error", err)
		msg = "Session not found"
	default:
		slog.Warn(op+": request rejected", "error", err, "status", status)
	}
	writeJSONResponse(w, status, models.Error(msg))
}

// validator is implemented by request bodies that check themselves.
type validator interface {
	Validate() error
}

// decodeRequest parses a JSON body into v and validates it. It writes the 400 response itself
// and reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, op string, v interface{}) bool {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn(op+": failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return false
	}
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			slog.Warn(op+": validation failed", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return false
		}
	}
	return true
}
