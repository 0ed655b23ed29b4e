// Package validation implements the request validation stage: a strict
// JSON decode that rejects undeclared fields, followed by per-field
// constraint checks via go-playground/validator. Violations are collected
// into a ValidationError so the client sees every failing field at once.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/apperrors"
)

// Validator validates request bodies against their declared shape.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Field names in violation reports come from the
// json tag, not the Go field name.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// DecodeStrict parses body into dst and validates it. Any undeclared
// field, malformed value, or constraint violation fails the whole request
// with a *apperrors.ValidationError.
func (v *Validator) DecodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{decodeViolation(err)})
	}
	// Trailing content after the JSON value is also malformed input.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apperrors.NewValidationError([]apperrors.FieldError{
			{Field: "body", Reason: "must contain a single JSON object"},
		})
	}

	if err := v.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			violations := make([]apperrors.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				violations = append(violations, apperrors.FieldError{
					Field:  fe.Field(),
					Reason: reason(fe),
				})
			}
			return apperrors.NewValidationError(violations)
		}
		return err
	}
	return nil
}

// decodeViolation converts an encoding/json error into a field violation.
func decodeViolation(err error) apperrors.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.FieldError{
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("must be of type %s", typeErr.Type.Kind()),
		}
	}
	// encoding/json reports unknown fields only through the error string.
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), "\"")
		return apperrors.FieldError{Field: field, Reason: "is not an allowed field"}
	}
	return apperrors.FieldError{Field: "body", Reason: "must be valid JSON"}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
