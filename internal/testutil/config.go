// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/lkarjala/curator/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	TMDBAPIKey       string
	IGDBClientID     string
	IGDBClientSecret string
	UPCItemDBAPIKey  string
	GiantBombAPIKey  string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		TMDBAPIKey:       config.TMDBAPIKey,
		IGDBClientID:     config.IGDBClientID,
		IGDBClientSecret: config.IGDBClientSecret,
		UPCItemDBAPIKey:  config.UPCItemDBAPIKey,
		GiantBombAPIKey:  config.GiantBombAPIKey,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.TMDBAPIKey = state.TMDBAPIKey
	config.IGDBClientID = state.IGDBClientID
	config.IGDBClientSecret = state.IGDBClientSecret
	config.UPCItemDBAPIKey = state.UPCItemDBAPIKey
	config.GiantBombAPIKey = state.GiantBombAPIKey
}

// SetTestConfig resets viper, installs placeholder API credentials, and
// schedules restoration when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.TMDBAPIKey = "test-tmdb-key"
	config.IGDBClientID = "test-igdb-client"
	config.IGDBClientSecret = "test-igdb-secret"
	config.UPCItemDBAPIKey = ""
	config.GiantBombAPIKey = "test-giantbomb-key"

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
