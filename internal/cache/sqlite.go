package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kv_expires_at ON kv_cache(expires_at);
`

// DB is a SQLite-backed Store.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open creates or opens the cache database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(kvSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the database connection.
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the value for key if present and unexpired.
func (c *DB) Get(key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data string
	var expiresAt time.Time
	err := c.db.QueryRow(
		`SELECT data, expires_at FROM kv_cache WHERE cache_key = ?`, key,
	).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		slog.Debug("cache entry expired", "key", key)
		return "", false, nil
	}
	return data, true, nil
}

// Set stores value under key with the given TTL.
func (c *DB) Set(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO kv_cache (cache_key, data, expires_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Remove deletes a single key.
func (c *DB) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(`DELETE FROM kv_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// RemoveByPattern deletes all keys matching a glob pattern (SQLite GLOB).
func (c *DB) RemoveByPattern(pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(`DELETE FROM kv_cache WHERE cache_key GLOB ?`, pattern)
	if err != nil {
		return fmt.Errorf("failed to remove cache entries: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		slog.Debug("cache entries removed", "pattern", pattern, "count", rows)
	}
	return nil
}

// ClearExpired removes all entries past their expiry.
func (c *DB) ClearExpired() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(`DELETE FROM kv_cache WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired cache: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		slog.Info("cleared expired cache entries", "count", rows)
	}
	return rows, nil
}
