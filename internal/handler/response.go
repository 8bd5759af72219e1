package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// RESPONSE SHAPES:
// Success bodies wrap the result in a "data" key:
//   {"data": {"id": 1, "name": "Hello", ...}}
//   {"data": [ ... ]}
//
// Error bodies carry a single human-readable message:
//   {"error": "Paste id not found: 42"}
//
// Clients rely on these shapes, so every handler goes through writeData /
// writeError instead of encoding JSON by hand.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"

	"github.com/sakif/pastebin/internal/apperror"
)

// DefaultErrorMessage is sent for every failure we did not anticipate.
// The real cause only goes to the log.
const DefaultErrorMessage = "Something went wrong!"

// DataResponse is the envelope for every successful response with a body.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the standard error format returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code must be set BEFORE the body is written. Once
// Encode writes the first byte, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeData sends {"data": v}.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, DataResponse{Data: v})
}

// writeError maps an error to an HTTP status code and sends it.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation → 400 with the check's message
//	apperror.ErrNotFound   → 404 with the check's message
//	*http.MaxBytesError    → 413
//	anything else          → 500 with DefaultErrorMessage
//
// Unexpected errors are logged with an incident id so an operator can find
// the log line for a given 500 without the client ever seeing internals.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
		return
	}

	logger.Error("unhandled error",
		slog.String("incident", xid.New().String()),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: DefaultErrorMessage})
}

// NotFound answers requests that matched no route, or matched a path but not
// its method. Both are reported as {"error": "Not found: <url>"}.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, logger, apperror.RouteNotFound(r.URL.RequestURI()))
	}
}
