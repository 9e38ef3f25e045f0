package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects caller input before any network call is made.
// ValidValues, when set, lists the accepted values for the offending field.
type ValidationError struct {
	Field       string
	Value       string
	ValidValues []string
}

func (e *ValidationError) Error() string {
	if len(e.ValidValues) == 0 {
		return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s: %q (valid: %s)", e.Field, e.Value, strings.Join(e.ValidValues, ", "))
}

// NewValidationError creates a ValidationError for the given field and value.
func NewValidationError(field, value string, validValues ...string) *ValidationError {
	return &ValidationError{Field: field, Value: value, ValidValues: validValues}
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
