package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
)

// BodyHas fails when field is absent from the body or holds a falsy value.
//
// NOTE: a legitimate 0 or "" is reported as missing too. None of the current
// fields accept those values, so this has never mattered in practice.
func BodyHas(field string) Check {
	return func(_ context.Context, req *Request) error {
		if truthy(req.Data[field]) {
			return nil
		}
		return apperror.ValidationFailed(field, fmt.Sprintf("Must include a %s", field))
	}
}

// ExposureIsValid requires exposure to be one of model.Exposures.
func ExposureIsValid(_ context.Context, req *Request) error {
	v := req.Data["exposure"]
	if s, ok := v.(string); ok && model.Exposure(s).Valid() {
		return nil
	}
	return apperror.ValidationFailed("exposure", fmt.Sprintf(
		"Value of the 'exposure' property must be one of %s. Received: %s",
		joinValues(model.Exposures), display(v),
	))
}

// SyntaxIsValid requires syntax to be one of model.Syntaxes.
func SyntaxIsValid(_ context.Context, req *Request) error {
	v := req.Data["syntax"]
	if s, ok := v.(string); ok && model.Syntax(s).Valid() {
		return nil
	}
	return apperror.ValidationFailed("syntax", fmt.Sprintf(
		"Value of the 'syntax' property must be one of %s. Received: %s",
		joinValues(model.Syntaxes), display(v),
	))
}

// ExpirationIsValid requires expiration to be a whole JSON number above zero.
// Numeric strings such as "5" are rejected.
func ExpirationIsValid(_ context.Context, req *Request) error {
	if n, ok := asInteger(req.Data["expiration"]); ok && n > 0 {
		return nil
	}
	return apperror.ValidationFailed("expiration", "Expiration requires a valid number")
}

// StringField requires field to be a JSON string.
func StringField(field string) Check {
	return func(_ context.Context, req *Request) error {
		v := req.Data[field]
		if _, ok := v.(string); ok {
			return nil
		}
		return apperror.ValidationFailed(field, fmt.Sprintf(
			"Value of the '%s' property must be a string. Received: %s", field, display(v),
		))
	}
}

// IntegerField requires field to be a whole number, given either as a JSON
// number or as a string of digits ("5" and 5 are both accepted).
func IntegerField(field string) Check {
	return func(_ context.Context, req *Request) error {
		v := req.Data[field]
		if _, ok := looseInteger(v); ok {
			return nil
		}
		return apperror.ValidationFailed(field, fmt.Sprintf(
			"Value of the '%s' property must be an integer. Received: %s", field, display(v),
		))
	}
}

// PasteExists looks up the paste named by the pasteId parameter and attaches
// it to the request. An id that is not a number can never match.
func PasteExists(pastes repository.PasteRepository) Check {
	return func(ctx context.Context, req *Request) error {
		raw := req.Params["pasteId"]
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return apperror.NotFound("Paste", raw)
		}

		paste, err := pastes.GetByID(ctx, id)
		if err != nil {
			// Report the id exactly as the client sent it (" 7" stays " 7").
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.NotFound("Paste", raw)
			}
			return fmt.Errorf("looking up paste %d: %w", id, err)
		}

		req.Paste = paste
		return nil
	}
}

// UserExists is PasteExists for the userId parameter and the user store.
func UserExists(users repository.UserRepository) Check {
	return func(ctx context.Context, req *Request) error {
		raw := req.Params["userId"]
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return apperror.NotFound("User", raw)
		}

		user, err := users.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.NotFound("User", raw)
			}
			return fmt.Errorf("looking up user %d: %w", id, err)
		}

		req.User = user
		return nil
	}
}
