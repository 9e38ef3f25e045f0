package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/lkarjala/curator/internal/cache"
)

const genreCacheKey = "metadata:movie:genres"

// GenreNames returns the TMDB genre id to name table, memoized in-process and
// in the cache store when one is configured.
func (c *Client) GenreNames(ctx context.Context) (map[int]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genreNames != nil {
		return c.genreNames, nil
	}

	if c.store != nil {
		var cached map[int]string
		if ok, err := cache.GetJSON(c.store, genreCacheKey, &cached); err == nil && ok {
			c.genreNames = cached
			return cached, nil
		} else if err != nil {
			slog.Warn("failed to read cached genre table, refetching", "error", err)
		}
	}

	endpoint := fmt.Sprintf("%s/genre/movie/list?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	var result genreResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(result.Genres))
	for _, g := range result.Genres {
		names[g.ID] = g.Name
	}

	if c.store != nil {
		if err := cache.SetJSON(c.store, genreCacheKey, names, c.storeTTL); err != nil {
			slog.Warn("failed to cache genre table", "error", err)
		}
	}
	c.genreNames = names
	return names, nil
}

// ResolveGenres maps TMDB genre ids to display names, skipping unknown ids.
func (c *Client) ResolveGenres(ctx context.Context, ids []int) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	table, err := c.GenreNames(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}
