package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lkarjala/curator/internal/cache"
	"github.com/lkarjala/curator/internal/config"
)

// CacheCmd groups the cache maintenance subcommands.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove entries from the metadata cache"`
}

// CacheClearCmd removes cached entries, optionally narrowed to a key pattern
// or to expired entries only.
type CacheClearCmd struct {
	Pattern string `help:"Only remove entries whose keys match this glob pattern (e.g. 'metadata:movie:*')"`
	Expired bool   `help:"Only remove entries past their expiry time"`
}

func (c *CacheClearCmd) Run() error {
	store, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing cache failed", "error", err)
		}
	}()

	if c.Expired {
		removed, err := store.ClearExpired()
		if err != nil {
			return err
		}
		slog.Info("Removed expired cache entries", "count", removed)
		return nil
	}

	pattern := c.Pattern
	if pattern == "" {
		pattern = "*"
	}
	if err := store.RemoveByPattern(pattern); err != nil {
		return err
	}
	slog.Info("Removed cache entries", "pattern", pattern)
	return nil
}
