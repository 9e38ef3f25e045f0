package config

import (
	"log/slog"
	"time"

	"github.com/lkarjala/curator/internal/ratelimit"
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// IGDBClientID is the Twitch application client id used for IGDB
	IGDBClientID string
	// IGDBClientSecret is the Twitch application client secret used for IGDB
	IGDBClientSecret string
	// UPCItemDBAPIKey is the API key for UPCitemdb (empty for the trial tier)
	UPCItemDBAPIKey string
	// GiantBombAPIKey is the API key for GiantBomb
	GiantBombAPIKey string
)

// providerDefaults holds the built-in quota shapes for each provider,
// matching the published limits of the free tiers.
var providerDefaults = map[string]ratelimit.Config{
	"upcitemdb": {
		RequestsPerMinute: 6,
		RequestsPerDay:    100,
		MinInterval:       2 * time.Second,
		MaxRetryPause:     60 * time.Second,
	},
	"openlibrary": {
		RequestsPerMinute: 60,
		RequestsPerDay:    5000,
		MinInterval:       time.Second,
		MaxRetryPause:     60 * time.Second,
	},
	"tmdb": {
		// TMDB allows ~40 requests per 10 seconds
		RequestsPerMinute: 240,
		RequestsPerDay:    10000,
		MinInterval:       250 * time.Millisecond,
		MaxRetryPause:     60 * time.Second,
	},
	"igdb": {
		RequestsPerMinute: 240,
		RequestsPerDay:    10000,
		MinInterval:       250 * time.Millisecond,
		MaxRetryPause:     60 * time.Second,
	},
	"giantbomb": {
		// GiantBomb enforces 200 requests per resource per hour
		RequestsPerMinute: 10,
		RequestsPerDay:    2000,
		MinInterval:       time.Second,
		MaxRetryPause:     60 * time.Second,
	},
	"musicbrainz": {
		// MusicBrainz asks for at most 1 request per second
		RequestsPerMinute: 50,
		RequestsPerDay:    5000,
		MinInterval:       time.Second,
		MaxRetryPause:     60 * time.Second,
	},
}

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("http.timeout", "10s")
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h")

	TMDBAPIKey = viper.GetString("tmdb.api_key")
	IGDBClientID = viper.GetString("igdb.client_id")
	IGDBClientSecret = viper.GetString("igdb.client_secret")
	UPCItemDBAPIKey = viper.GetString("upcitemdb.api_key")
	GiantBombAPIKey = viper.GetString("giantbomb.api_key")
}

// ProviderLimit returns the rate limit config for a provider, starting from
// the built-in defaults and applying any ratelimit.<provider>.* overrides.
func ProviderLimit(provider string) ratelimit.Config {
	cfg, ok := providerDefaults[provider]
	if !ok {
		slog.Warn("no built-in rate limit for provider, using conservative defaults", "provider", provider)
		cfg = ratelimit.Config{
			RequestsPerMinute: 10,
			RequestsPerDay:    1000,
			MinInterval:       time.Second,
			MaxRetryPause:     60 * time.Second,
		}
	}

	prefix := "ratelimit." + provider + "."
	if v := viper.GetInt(prefix + "requests_per_minute"); v > 0 {
		cfg.RequestsPerMinute = v
	}
	if v := viper.GetInt(prefix + "requests_per_day"); v > 0 {
		cfg.RequestsPerDay = v
	}
	if v := viper.GetDuration(prefix + "min_interval"); v > 0 {
		cfg.MinInterval = v
	}
	if v := viper.GetDuration(prefix + "max_retry_pause"); v > 0 {
		cfg.MaxRetryPause = v
	}
	return cfg
}

// HTTPTimeout returns the per-request timeout for provider HTTP calls.
func HTTPTimeout() time.Duration {
	d := viper.GetDuration("http.timeout")
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}

// CachePath returns the path of the cache database file.
func CachePath() string {
	path := viper.GetString("cache.dbfile")
	if path == "" {
		return "./cache.db"
	}
	return path
}

// CacheTTL returns the default TTL for cached metadata.
func CacheTTL() time.Duration {
	d := viper.GetDuration("cache.ttl")
	if d <= 0 {
		return 720 * time.Hour
	}
	return d
}
