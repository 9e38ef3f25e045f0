package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfigReadsKeys(t *testing.T) {
	resetViper(t)
	viper.Set("tmdb.api_key", "tmdb-key")
	viper.Set("igdb.client_id", "client")
	viper.Set("igdb.client_secret", "secret")

	InitConfig()

	assert.Equal(t, "tmdb-key", TMDBAPIKey)
	assert.Equal(t, "client", IGDBClientID)
	assert.Equal(t, "secret", IGDBClientSecret)
	assert.Empty(t, UPCItemDBAPIKey)
}

func TestProviderLimitDefaults(t *testing.T) {
	resetViper(t)

	cfg := ProviderLimit("musicbrainz")
	assert.Equal(t, time.Second, cfg.MinInterval)
	assert.NoError(t, cfg.Validate())

	unknown := ProviderLimit("nosuch")
	assert.NoError(t, unknown.Validate())
}

func TestProviderLimitOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("ratelimit.upcitemdb.requests_per_day", 50)
	viper.Set("ratelimit.upcitemdb.min_interval", "5s")

	cfg := ProviderLimit("upcitemdb")
	assert.Equal(t, 50, cfg.RequestsPerDay)
	assert.Equal(t, 5*time.Second, cfg.MinInterval)
	assert.Equal(t, 6, cfg.RequestsPerMinute, "unset values keep defaults")
}

func TestHTTPTimeoutFallback(t *testing.T) {
	resetViper(t)
	assert.Equal(t, 10*time.Second, HTTPTimeout())

	viper.Set("http.timeout", "3s")
	assert.Equal(t, 3*time.Second, HTTPTimeout())
}

func TestCacheSettings(t *testing.T) {
	resetViper(t)
	assert.Equal(t, "./cache.db", CachePath())
	assert.Equal(t, 720*time.Hour, CacheTTL())

	viper.Set("cache.dbfile", "/tmp/x.db")
	viper.Set("cache.ttl", "24h")
	assert.Equal(t, "/tmp/x.db", CachePath())
	assert.Equal(t, 24*time.Hour, CacheTTL())
}
