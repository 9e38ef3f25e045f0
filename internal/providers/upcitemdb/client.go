// Package upcitemdb looks up retail products by UPC/EAN barcode.
package upcitemdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lkarjala/curator/internal/barcode"
	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/ratelimit"
)

const defaultBaseURL = "https://api.upcitemdb.com/prod/trial"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a UPCitemdb API client.
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

// WithBaseURL sets a custom base URL for the UPCitemdb API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewClient creates a new UPCitemdb client. The apiKey may be empty for the
// trial tier. The gate must be this provider's single rate limit gate.
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

// FetchByCode looks up a product by barcode. Malformed barcodes are rejected
// before any network call.
func (c *Client) FetchByCode(ctx context.Context, code string) (*Product, error) {
	cleaned, err := barcode.Normalize(code)
	if err != nil {
		return nil, fmt.Errorf("upcitemdb: %w", err)
	}

	endpoint := fmt.Sprintf("%s/lookup?upc=%s", c.baseURL, url.QueryEscape(cleaned))

	resp, err := c.gate.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("user_key", c.apiKey)
			req.Header.Set("key_type", "3scale")
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	ratelimit.LogQuotaHeaders("upcitemdb", resp.Header)

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError("upcitemdb", cleaned)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upcitemdb: unexpected status %d for barcode %s", resp.StatusCode, cleaned)
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode UPCitemdb response: %w", err)
	}

	if result.Code != "OK" || len(result.Items) == 0 {
		slog.Debug("no product for barcode", "barcode", cleaned, "code", result.Code)
		return nil, errors.NewNotFoundError("upcitemdb", cleaned)
	}

	item := result.Items[0]
	product := &Product{
		Title:    item.Title,
		Brand:    item.Brand,
		Category: item.Category,
		UPC:      cleaned,
	}
	if len(item.Images) > 0 {
		product.ImageURL = item.Images[0]
	}
	return product, nil
}
