// Package validate runs the checks that gate every paste and user operation.
//
// THE CHAIN:
// A Check looks at one thing about an incoming Request (a body field, a path
// parameter) and either returns nil ("carry on") or an *apperror.AppError
// ("stop here"). Run executes a list of checks strictly in order and stops at
// the first failure, so a mutating operation only runs when every check ahead
// of it has passed:
//
//	err := validate.Run(ctx, req,
//	    validate.BodyHas("name"),
//	    validate.SyntaxIsValid,
//	    ...
//	)
//
// Checks never write to a store. The only side effect a check may have is
// attaching a record it looked up (see PasteExists) to the Request, so the
// operation that follows does not have to fetch it again.
package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sakif/pastebin/internal/model"
)

// Request is everything a check may look at.
type Request struct {
	// Data is the "data" object of the JSON body. Numbers are kept as
	// json.Number so integer-ness can be judged without float rounding.
	Data map[string]any

	// Params holds path and query parameters by name, e.g. "pasteId".
	Params map[string]string

	// Set by PasteExists / UserExists.
	Paste *model.Paste
	User  *model.User
}

// Check is one link of the chain.
type Check func(ctx context.Context, req *Request) error

// Run executes checks in order and returns the first error, or nil.
func Run(ctx context.Context, req *Request, checks ...Check) error {
	for _, check := range checks {
		if err := check(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBody parses a request body of the form {"data": {...}}.
//
// An empty body, or one without a "data" object, yields an empty Data map so
// that presence checks report the first missing field. A body that is not
// JSON at all is an error for the caller to report.
func DecodeBody(body []byte) (map[string]any, error) {
	data := make(map[string]any)
	if len(bytes.TrimSpace(body)) == 0 {
		return data, nil
	}

	var envelope struct {
		Data any `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}

	if m, ok := envelope.Data.(map[string]any); ok {
		return m, nil
	}
	return data, nil
}

// PasteFields copies the validated body fields into a model.PasteFields.
//
// It must only be called after the create or update chain has passed: values
// that would have failed a check come out as zero values here.
func (r *Request) PasteFields() model.PasteFields {
	name, _ := r.Data["name"].(string)
	syntax, _ := r.Data["syntax"].(string)
	exposure, _ := r.Data["exposure"].(string)
	text, _ := r.Data["text"].(string)
	expiration, _ := asInteger(r.Data["expiration"])
	userID, _ := looseInteger(r.Data["user_id"])

	return model.PasteFields{
		Name:       name,
		Syntax:     model.Syntax(syntax),
		Exposure:   model.Exposure(exposure),
		Expiration: expiration,
		Text:       text,
		UserID:     userID,
	}
}

// truthy mirrors the loose notion of "present" the API has always used:
// null, false, 0 and "" all count as missing.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// asInteger accepts a JSON number whose value is a whole number,
// including forms such as 3.0 or 1e3.
func asInteger(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := strconv.ParseInt(n.String(), 10, 0); err == nil {
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// looseInteger is asInteger plus strings holding a base-10 integer.
func looseInteger(v any) (int, bool) {
	if s, ok := v.(string); ok {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		return i, err == nil
	}
	return asInteger(v)
}

// joinValues renders a closed set the way error messages list it: a,b,c.
func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

// display renders a received value for an error message.
// Missing values print as "undefined" so clients see the same text as before.
func display(v any) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprint(v)
}
