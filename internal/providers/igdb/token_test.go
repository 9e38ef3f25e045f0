package igdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lkarjala/curator/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, calls *atomic.Int32, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		_, _ = w.Write([]byte(`{"access_token": "tok-1", "expires_in": ` +
			strconv.Itoa(expiresIn) + `, "token_type": "bearer"}`))
	}))
}

func newTestTokenSource(server *httptest.Server, store cache.Store) *tokenSource {
	return &tokenSource{
		clientID:     "id",
		clientSecret: "secret",
		tokenURL:     server.URL,
		httpClient:   server.Client(),
		store:        store,
	}
}

func TestTokenCachedAfterFirstFetch(t *testing.T) {
	var calls atomic.Int32
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	ts := newTestTokenSource(server, cache.NewMemory())

	for i := 0; i < 3; i++ {
		token, err := ts.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	}
	assert.EqualValues(t, 1, calls.Load())
}

func TestConcurrentColdCallersShareOneExchange(t *testing.T) {
	var calls atomic.Int32
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	ts := newTestTokenSource(server, cache.NewMemory())

	var wg sync.WaitGroup
	tokens := make([]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := ts.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load(), "one credential exchange for all cold callers")
	for _, token := range tokens {
		assert.Equal(t, "tok-1", token)
	}
}

func TestTokenTTLNeverBelowMargin(t *testing.T) {
	var calls atomic.Int32
	// expires_in shorter than the safety margin.
	server := newTokenServer(t, &calls, 30)
	defer server.Close()

	store := cache.NewMemory()
	ts := newTestTokenSource(server, store)

	_, err := ts.Token(context.Background())
	require.NoError(t, err)

	// The entry must still be cached (TTL clamped up, not negative).
	token, ok, err := store.Get(tokenCacheKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestTokenExchangeFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "invalid client secret"}`))
	}))
	defer server.Close()

	ts := newTestTokenSource(server, cache.NewMemory())

	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestExpiredTokenRefetched(t *testing.T) {
	var calls atomic.Int32
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	store := cache.NewMemory()
	ts := newTestTokenSource(server, store)

	_, err := ts.Token(context.Background())
	require.NoError(t, err)

	// Simulate TTL eviction.
	require.NoError(t, store.Remove(tokenCacheKey))

	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}
