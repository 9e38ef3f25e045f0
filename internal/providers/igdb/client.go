// Package igdb looks up games on the IGDB API. Every request carries a
// short-lived Twitch bearer token obtained through the cached token source.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lkarjala/curator/internal/cache"
	"github.com/lkarjala/curator/internal/ratelimit"
)

const defaultBaseURL = "https://api.igdb.com/v4"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an IGDB API client.
type Client struct {
	clientID   string
	baseURL    string
	httpClient HTTPDoer
	gate       *ratelimit.Gate
	tokens     *tokenSource
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for both data and token requests.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
			client.tokens.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the IGDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTokenURL sets a custom credential-exchange endpoint.
func WithTokenURL(u string) Option {
	return func(client *Client) {
		if u != "" {
			client.tokens.tokenURL = u
		}
	}
}

// NewClient creates a new IGDB client. The store caches the bearer token
// under "token:igdb".
func NewClient(clientID, clientSecret string, gate *ratelimit.Gate, store cache.Store, opts ...Option) *Client {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	client := &Client{
		clientID:   clientID,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		gate:       gate,
		tokens: &tokenSource{
			clientID:     clientID,
			clientSecret: clientSecret,
			tokenURL:     defaultTokenURL,
			httpClient:   httpClient,
			store:        store,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FindByBarcode looks up games whose external store entry carries the given
// UPC/EAN. The query filters on external_games.uid server-side.
func (c *Client) FindByBarcode(ctx context.Context, code string) ([]Game, error) {
	query := fmt.Sprintf(`fields %s; where external_games.uid = "%s"; limit 5;`, gameFields, code)
	return c.queryGames(ctx, query)
}

// SearchByName searches games by title.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Game, error) {
	escaped := strings.ReplaceAll(name, `"`, `\"`)
	query := fmt.Sprintf(`search "%s"; fields %s; limit 5;`, escaped, gameFields)
	return c.queryGames(ctx, query)
}

const gameFields = "name,first_release_date,summary,total_rating," +
	"genres.name,platforms.name,cover.url,involved_companies.company.name,involved_companies.developer"

// queryGames posts an Apicalypse query to the games endpoint. A token failure
// is fatal for the attempt; the request itself goes through the gate.
func (c *Client) queryGames(ctx context.Context, query string) ([]Game, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("igdb: %w", err)
	}

	resp, err := c.gate.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/games", strings.NewReader(query))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Client-ID", c.clientID)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// A stale-but-cached token shows up here as a 401; the safety margin
		// makes that rare and the call simply fails like any provider error.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("igdb: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("failed to decode IGDB response: %w", err)
	}
	return games, nil
}
