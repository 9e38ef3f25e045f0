package cache

import (
	"path"
	"sync"
	"time"
)

// Memory is an in-process Store. It backs tests and runs without a cache
// file; entries do not survive a restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
}

// Get returns the value for key if present and unexpired.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || m.clock().After(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value under key with the given TTL.
func (m *Memory) Set(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: m.clock().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Remove deletes a single key.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// RemoveByPattern deletes all keys matching a glob pattern.
func (m *Memory) RemoveByPattern(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if ok, err := path.Match(pattern, key); err == nil && ok {
			delete(m.entries, key)
		}
	}
	return nil
}

// Len returns the number of live entries. For tests.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
