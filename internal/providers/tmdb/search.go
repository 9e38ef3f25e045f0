package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// SearchMovies searches for movies by title. A non-zero year narrows the
// search to that release year. An empty result slice is a valid outcome.
func (c *Client) SearchMovies(ctx context.Context, title string, year int) ([]Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("tmdb: empty search title")
	}

	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(title))
	if year > 0 {
		endpoint += fmt.Sprintf("&primary_release_year=%d", year)
	}

	var result searchResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}
