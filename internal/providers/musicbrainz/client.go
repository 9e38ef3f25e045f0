// Package musicbrainz looks up music releases by barcode on the MusicBrainz API.
package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lkarjala/curator/internal/barcode"
	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/ratelimit"
)

const (
	defaultBaseURL  = "https://musicbrainz.org/ws/2"
	coverArtBaseURL = "https://coverartarchive.org"

	// MusicBrainz requires a meaningful User-Agent with contact information.
	userAgent = "curator/1.0 (https://github.com/lkarjala/curator)"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a MusicBrainz API client.
type Client struct {
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

// WithBaseURL sets a custom base URL for the MusicBrainz API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewClient creates a new MusicBrainz client. No API key is needed.
func NewClient(gate *ratelimit.Gate, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		gate:       gate,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FindReleaseByBarcode searches releases carrying the given UPC/EAN.
// Malformed barcodes are rejected before any network call.
func (c *Client) FindReleaseByBarcode(ctx context.Context, code string) (*Release, error) {
	cleaned, err := barcode.Normalize(code)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: %w", err)
	}

	endpoint := fmt.Sprintf("%s/release/?query=%s&fmt=json&limit=5",
		c.baseURL, url.QueryEscape("barcode:"+cleaned))

	resp, err := c.gate.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("musicbrainz: unexpected status %d for barcode %s", resp.StatusCode, cleaned)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode MusicBrainz response: %w", err)
	}

	if len(result.Releases) == 0 {
		return nil, errors.NewNotFoundError("musicbrainz", cleaned)
	}
	return &result.Releases[0], nil
}

// CoverArtURL returns the Cover Art Archive front-cover URL for a release.
// The URL is derived, not verified; a 404 is possible when no art exists.
func CoverArtURL(releaseID string) string {
	if releaseID == "" {
		return ""
	}
	return fmt.Sprintf("%s/release/%s/front-250", coverArtBaseURL, releaseID)
}
