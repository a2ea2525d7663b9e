package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidationError lists every failing field with a client-safe message.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) merge(err error) {
	var other *ValidationError
	if !errors.As(err, &other) {
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string]string, len(other.Fields))
	}
	for k, v := range other.Fields {
		e.Fields[k] = v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nopassword", func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})

	return v
}

func validateStruct(s any) error {
	return translate(validate.Struct(s), "")
}

func validateVar(field string, value any, tag string) error {
	return translate(validate.Var(value, tag), field)
}

// translate turns validator output into a ValidationError. field overrides
// the reported name, which validate.Var leaves empty.
func translate(err error, field string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		if _, seen := out.Fields[name]; !seen {
			out.Fields[name] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is invalid"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return "must be a positive number"
	case "nopassword":
		return `cannot contain "password"`
	default:
		return "is invalid"
	}
}

// CheckAllowed returns common.ErrInvalidUpdates unless every key is listed
// in allowed.
func CheckAllowed(keys []string, allowed []string) error {
	for _, k := range keys {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return common.ErrInvalidUpdates
		}
	}
	return nil
}
