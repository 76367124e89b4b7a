// internal/payload/payload.go
//
// JSON payload binding and validation for intake endpoints.
//
// Context
//   Every public form posts a JSON body.  Validation must happen before
//   any workflow operation runs — schema violations never reach the
//   store — so each handler calls Bind, which decodes into the kind's
//   payload struct and checks its `validate` tags with the same
//   go-playground/validator instance style used for configuration.
//
//   On failure Bind returns a *BindError whose Message is safe to show
//   to the submitting user.
//
//------------------------------------------------------------------------------

package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New(validator.WithRequiredStructEnabled())

// BindError carries a user-facing description of what was wrong with an
// intake payload.
type BindError struct{ Message string }

func (e *BindError) Error() string { return e.Message }

// IsBindError reports whether err came from payload binding.
func IsBindError(err error) bool {
	var be *BindError
	return errors.As(err, &be)
}

// Bind decodes r's JSON body into dst and validates it.  Unknown fields
// are rejected so typos surface instead of silently dropping data.
func Bind(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &BindError{Message: "Request body is not valid JSON."}
	}

	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &BindError{Message: describe(verrs[0])}
		}
		return &BindError{Message: "Invalid input."}
	}
	return nil
}

// describe turns the first field error into a short human message.  The
// admin UI shows this string verbatim in a toast.
func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("%s is too long (limit %s characters).", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short (minimum %s).", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range.", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form.", field)
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}
