package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is one failed field check, surfaced inline near the field.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every failed check for a submitted draft. It is
// raised before any network call; the draft stays intact for correction.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		fields = append(fields, issue.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequired runs the required-field schema over a payload. Only
// presence and basic shape are checked client-side; business rules stay
// upstream.
func checkRequired(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		reason := "is required"
		if fieldError.Tag() == "email" {
			reason = "must be a valid email address"
		}
		issues = append(issues, Issue{Field: lowerFirst(fieldError.Field()), Reason: reason})
	}
	return &ValidationError{Issues: issues}
}

func lowerFirst(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
