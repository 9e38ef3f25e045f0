// Package giantbomb searches games on the GiantBomb API by name.
package giantbomb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/ratelimit"
)

const defaultBaseURL = "https://www.giantbomb.com/api"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a GiantBomb API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	gate       *ratelimit.Gate
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the GiantBomb API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewClient creates a new GiantBomb client.
func NewClient(apiKey string, gate *ratelimit.Gate, opts ...Option) *Client {
	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		gate:       gate,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SearchByName searches games by title.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Game, error) {
	if name == "" {
		return nil, fmt.Errorf("giantbomb: empty search query")
	}

	endpoint := fmt.Sprintf("%s/search/?api_key=%s&format=json&resources=game&limit=5&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(name))

	resp, err := c.gate.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giantbomb: unexpected status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode GiantBomb response: %w", err)
	}

	// GiantBomb signals API-level errors in the body with a 200 status.
	if result.StatusCode != 1 {
		return nil, fmt.Errorf("giantbomb: API error %d: %s", result.StatusCode, result.Error)
	}
	if len(result.Results) == 0 {
		return nil, errors.NewNotFoundError("giantbomb", name)
	}
	return result.Results, nil
}
