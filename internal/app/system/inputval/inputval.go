// Package inputval validates request payloads declared as structs with
// `validate` tags and returns structured, field-level error lists suitable
// for JSON responses. It wraps go-playground/validator so individual
// handlers never touch the validator API directly.
//
// Fields may carry a `label` tag with the human-readable name used in
// messages; the struct field name is used when no label is present.
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes one failed constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating one input struct.
type Result struct {
	errs []FieldError
}

// HasErrors reports whether any field failed validation.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// Fields returns all field errors. The slice is never nil so it always
// serializes as a JSON array.
func (r Result) Fields() []FieldError {
	if r.errs == nil {
		return []FieldError{}
	}
	return r.errs
}

// First returns the first error message, or "" when validation passed.
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0].Message
}

// Validate checks input against its `validate` struct tags.
func Validate(input any) Result {
	err := v().Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation failure (e.g. passing a non-struct); report as-is.
		return Result{errs: []FieldError{{Field: "", Message: err.Error()}}}
	}

	t := reflect.TypeOf(input)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		label := fe.Field()
		jsonName := strings.ToLower(label[:1]) + label[1:]
		if f, found := t.FieldByName(fe.StructField()); found {
			if l := f.Tag.Get("label"); l != "" {
				label = l
			}
			if j := f.Tag.Get("json"); j != "" && j != "-" {
				jsonName = strings.SplitN(j, ",", 2)[0]
			}
		}
		out = append(out, FieldError{Field: jsonName, Message: message(label, fe)})
	}
	return Result{errs: out}
}

// message translates a validator tag failure into a user-facing sentence.
func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return label + " must be a valid date (" + fe.Param() + ")"
	default:
		return fmt.Sprintf("%s failed %s validation", label, fe.Tag())
	}
}

// IsValidEmail reports whether s parses as a bare RFC 5322 address
// (display-name forms like "Name <a@b>" are rejected).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
