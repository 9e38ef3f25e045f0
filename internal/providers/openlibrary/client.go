// Package openlibrary looks up books on the OpenLibrary API by bibliographic key.
package openlibrary

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

const defaultBaseURL = "https://openlibrary.org"

// Bibkey kinds accepted by the books endpoint.
const (
	KeyISBN = "ISBN"
	KeyLCCN = "LCCN"
	KeyOCLC = "OCLC"
	KeyOLID = "OLID"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OpenLibrary API client.
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

// WithBaseURL sets a custom base URL for the OpenLibrary API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewClient creates a new OpenLibrary client. OpenLibrary needs no API key.
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

// FetchByBibkey retrieves book data for one identifier, e.g. ("ISBN",
// "9780140328721"). Uses jscmd=data for the richer response shape.
func (c *Client) FetchByBibkey(ctx context.Context, kind, value string) (*Book, error) {
	if value == "" {
		return nil, fmt.Errorf("openlibrary: empty identifier")
	}
	bibkey := fmt.Sprintf("%s:%s", kind, value)
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.baseURL, url.QueryEscape(bibkey))

	resp, err := c.gate.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary: unexpected status %d for %s", resp.StatusCode, bibkey)
	}

	var result map[string]Book
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode OpenLibrary response: %w", err)
	}

	book, ok := result[bibkey]
	if !ok {
		return nil, errors.NewNotFoundError("openlibrary", bibkey)
	}
	return &book, nil
}
