package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("upcitemdb", "burst limit, retry exhausted")
	assert.True(t, IsRateLimitError(err))
	assert.Contains(t, err.Error(), "upcitemdb")

	wrapped := fmt.Errorf("lookup failed: %w", err)
	assert.True(t, IsRateLimitError(wrapped))

	assert.False(t, IsRateLimitError(stderrors.New("plain error")))
}

func TestQuotaExhaustedError(t *testing.T) {
	err := NewQuotaExhaustedError("tmdb", time.Time{})
	assert.True(t, IsQuotaExhaustedError(err))
	assert.Equal(t, "tmdb: daily quota exhausted", err.Error())

	reset := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	withReset := NewQuotaExhaustedError("tmdb", reset)
	assert.Contains(t, withReset.Error(), "2025-06-01")

	// A burst limit is not a quota limit and vice versa.
	assert.False(t, IsRateLimitError(err))
	assert.False(t, IsQuotaExhaustedError(NewRateLimitError("tmdb", "x")))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("openlibrary", "9780000000000")
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), "9780000000000")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("identifierType", "upc", "isbn", "lccn", "oclc", "olid")
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "isbn, lccn, oclc, olid")

	bare := NewValidationError("entityType", "vinyl")
	assert.Equal(t, `invalid entityType: "vinyl"`, bare.Error())
}
