package errors

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a provider chain yielded no match for an
// identifier. It is an expected condition, not a failure of the lookup itself.
type NotFoundError struct {
	Provider   string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no match for %q", e.Provider, e.Identifier)
}

// NewNotFoundError creates a NotFoundError for the given provider and identifier.
func NewNotFoundError(provider, identifier string) *NotFoundError {
	return &NotFoundError{Provider: provider, Identifier: identifier}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
