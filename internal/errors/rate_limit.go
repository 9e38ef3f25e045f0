package errors

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError represents a short-horizon (burst) rate limit from an API.
// The call that hit it has already exhausted its single retry.
type RateLimitError struct {
	Provider string
	Message  string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited: %s", e.Provider, e.Message)
}

// NewRateLimitError creates a RateLimitError for the given provider.
func NewRateLimitError(provider, message string) *RateLimitError {
	return &RateLimitError{Provider: provider, Message: message}
}

// IsRateLimitError reports whether err is a RateLimitError (even when wrapped).
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// QuotaExhaustedError represents a long-horizon (daily) quota limit.
// It is never retried within the current call; the wait could be hours.
type QuotaExhaustedError struct {
	Provider string
	ResetAt  time.Time
}

func (e *QuotaExhaustedError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("%s: daily quota exhausted", e.Provider)
	}
	return fmt.Sprintf("%s: daily quota exhausted until %s", e.Provider, e.ResetAt.Format(time.RFC3339))
}

// NewQuotaExhaustedError creates a QuotaExhaustedError for the given provider.
// resetAt may be the zero time when the provider did not say when quota returns.
func NewQuotaExhaustedError(provider string, resetAt time.Time) *QuotaExhaustedError {
	return &QuotaExhaustedError{Provider: provider, ResetAt: resetAt}
}

// IsQuotaExhaustedError reports whether err is a QuotaExhaustedError (even when wrapped).
func IsQuotaExhaustedError(err error) bool {
	var qErr *QuotaExhaustedError
	return errors.As(err, &qErr)
}
