// Package cache provides the generic key/value store the lookup subsystem
// uses for bearer tokens and memoized provider metadata. Keys are namespaced
// with prefixes such as "token:<provider>" and "metadata:<entity>:<field>".
package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTTL is the fallback time-to-live for cached entries (30 days).
const DefaultTTL = 720 * time.Hour

// Store is a key/value cache with per-entry TTL and glob-pattern
// invalidation. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached value and whether it was present and unexpired.
	Get(key string) (string, bool, error)
	// Set stores a value; ttl <= 0 falls back to DefaultTTL.
	Set(key, value string, ttl time.Duration) error
	// Remove deletes a single key. Removing an absent key is not an error.
	Remove(key string) error
	// RemoveByPattern deletes all keys matching a glob pattern, e.g. "token:*".
	RemoveByPattern(pattern string) error
}

// GetJSON fetches a key and unmarshals it into target.
// Returns false on a miss without touching target.
func GetJSON[T any](s Store, key string, target *T) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON[T any](s Store, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for caching: %w", key, err)
	}
	return s.Set(key, string(raw), ttl)
}
