package giantbomb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate(t *testing.T) *ratelimit.Gate {
	t.Helper()
	gate, err := ratelimit.NewGate("giantbomb", ratelimit.Config{
		RequestsPerMinute: 100,
		RequestsPerDay:    100,
		MaxRetryPause:     time.Second,
	})
	require.NoError(t, err)
	return gate
}

func TestSearchByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Super Mario Galaxy", r.URL.Query().Get("query"))
		assert.Equal(t, "game", r.URL.Query().Get("resources"))
		_, _ = w.Write([]byte(`{
			"status_code": 1,
			"error": "OK",
			"results": [{
				"id": 16929,
				"name": "Super Mario Galaxy",
				"deck": "A platformer set in space.",
				"original_release_date": "2007-11-12",
				"image": {"medium_url": "https://img.example/galaxy.jpg"},
				"platforms": [{"name": "Wii"}]
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("key", testGate(t), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	games, err := client.SearchByName(context.Background(), "Super Mario Galaxy")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Super Mario Galaxy", games[0].Name)
	assert.Equal(t, "https://img.example/galaxy.jpg", games[0].Image.MediumURL)
}

func TestSearchByNameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status_code": 1, "error": "OK", "results": []}`))
	}))
	defer server.Close()

	client := NewClient("key", testGate(t), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.SearchByName(context.Background(), "No Such Game")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSearchByNameAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status_code": 100, "error": "Invalid API Key", "results": []}`))
	}))
	defer server.Close()

	client := NewClient("bad", testGate(t), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.SearchByName(context.Background(), "Anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.False(t, errors.IsNotFoundError(err))
}
