package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get("token:igdb")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("token:igdb", "abc123", time.Hour))

	got, ok, err := db.Get("token:igdb")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc123", got)

	require.NoError(t, db.Remove("token:igdb"))
	_, ok, err = db.Get("token:igdb")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteExpiry(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("metadata:movie:genres", "[]", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := db.Get("metadata:movie:genres")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must read as a miss")

	removed, err := db.ClearExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestSQLiteRemoveByPattern(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("token:igdb", "a", time.Hour))
	require.NoError(t, db.Set("token:other", "b", time.Hour))
	require.NoError(t, db.Set("metadata:movie:genres", "c", time.Hour))

	require.NoError(t, db.RemoveByPattern("token:*"))

	_, ok, _ := db.Get("token:igdb")
	assert.False(t, ok)
	_, ok, _ = db.Get("token:other")
	assert.False(t, ok)
	_, ok, _ = db.Get("metadata:movie:genres")
	assert.True(t, ok)
}

func TestMemoryStore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.clock = func() time.Time { return now }

	require.NoError(t, m.Set("token:igdb", "abc", time.Minute))
	got, ok, err := m.Get("token:igdb")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", got)

	now = now.Add(2 * time.Minute)
	_, ok, _ = m.Get("token:igdb")
	assert.False(t, ok, "expired entry must read as a miss")

	require.NoError(t, m.Set("metadata:movie:genres", "x", time.Hour))
	require.NoError(t, m.Set("metadata:game:covers", "y", time.Hour))
	require.NoError(t, m.RemoveByPattern("metadata:movie:*"))
	_, ok, _ = m.Get("metadata:movie:genres")
	assert.False(t, ok)
	_, ok, _ = m.Get("metadata:game:covers")
	assert.True(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	m := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing payload
	ok, err := GetJSON(m, "metadata:test", &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(m, "metadata:test", payload{Name: "x", Count: 3}, time.Hour))

	var got payload
	ok, err = GetJSON(m, "metadata:test", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)

	// Corrupt entries read as errors, not silent misses.
	require.NoError(t, m.Set("metadata:bad", "{not json", time.Hour))
	var bad payload
	_, err = GetJSON(m, "metadata:bad", &bad)
	assert.Error(t, err)
}
