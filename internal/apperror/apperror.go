// Package apperror defines the error kinds the API can return to a client.
//
// Every failure a handler reports is either a ValidationError (the client sent
// bad data, 400) or a NotFoundError (the referenced record does not exist, 404).
// Anything else is unexpected and is answered with a generic 500 by the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type AppError struct {
	Err     error  // sentinel: ErrValidation or ErrNotFound
	Message string // Human-readable error message, sent to the client verbatim
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed returns an AppError for client-supplied data that failed a check.
// HTTP handlers map this to 400 Bad Request.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound returns an AppError for a missing record, e.g. NotFound("Paste", "42")
// produces "Paste id not found: 42". HTTP handlers map this to 404 Not Found.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s id not found: %s", resource, id),
	}
}

// RouteNotFound reports a request that matched no route at all.
// It is kept apart from NotFound because there is no record id to name.
func RouteNotFound(path string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("Not found: %s", path),
	}
}
