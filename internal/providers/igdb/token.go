package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lkarjala/curator/internal/cache"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"
	tokenCacheKey   = "token:igdb"

	// tokenSafetyMargin is shaved off the provider TTL so a token is never
	// handed out moments before it expires server-side.
	tokenSafetyMargin = 60 * time.Second
)

// tokenSource exchanges Twitch client credentials for the short-lived bearer
// token IGDB requires, caching it until near expiry. Concurrent cold-cache
// callers are coalesced into a single exchange.
type tokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   HTTPDoer
	store        cache.Store
	group        singleflight.Group
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token returns a valid bearer token, fetching a new one only on cache miss.
func (t *tokenSource) Token(ctx context.Context) (string, error) {
	// Fast path: no lock, no flight.
	if token, ok, err := t.store.Get(tokenCacheKey); err == nil && ok {
		return token, nil
	}

	v, err, _ := t.group.Do(tokenCacheKey, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have already
		// fetched and stored a token while this one was queued.
		if token, ok, err := t.store.Get(tokenCacheKey); err == nil && ok {
			return token, nil
		}
		return t.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// exchange performs the client-credentials grant and stores the result.
func (t *tokenSource) exchange(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {t.clientID},
		"client_secret": {t.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token exchange returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned an empty token")
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - tokenSafetyMargin
	if ttl < tokenSafetyMargin {
		ttl = tokenSafetyMargin
	}
	if err := t.store.Set(tokenCacheKey, token.AccessToken, ttl); err != nil {
		// A failed cache write costs an extra exchange later, nothing more.
		slog.Warn("failed to cache IGDB token", "error", err)
	}
	slog.Debug("fetched new IGDB token", "ttl", ttl)
	return token.AccessToken, nil
}
