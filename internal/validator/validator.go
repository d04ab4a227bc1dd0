package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one failed rule on one field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Validator wraps go-playground struct validation plus the custom rules used
// by the admin surface.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerRules()
	return v
}

// Validate validates struct tags and returns ValidationErrors on failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// ValidateWorkPeriodDates enforces that a period does not end before it
// starts. The legacy system never checked this.
func (v *Validator) ValidateWorkPeriodDates(start, end time.Time) error {
	if end.Before(start) {
		return ValidationErrors{{
			Field:   "end",
			Message: "must not be before start",
			Value:   end.Format("2006-01-02"),
			Rule:    "date_order",
		}}
	}
	return nil
}

func (v *Validator) registerRules() {
	// Teacher name as accepted on the admin forms (letters, spaces, hyphens).
	// The stricter uppercase-only pattern applies to spreadsheet imports
	// only; see row_validator.go.
	v.validate.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		if name == "" || len(name) > 100 {
			return false
		}
		for _, r := range name {
			if !isNameRune(r) {
				return false
			}
		}
		return true
	})
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == 'å' || r == 'ä' || r == 'ö' || r == 'Å' || r == 'Ä' || r == 'Ö':
		return true
	case r == '-' || r == ' ' || r == '\'':
		return true
	}
	return false
}

func toValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return out
	}

	return ValidationErrors{{Field: "request", Message: err.Error()}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	case "person_name":
		return "must contain only letters, spaces and hyphens"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
