// Package config reads engine settings from Viper-backed configuration
// and the process environment.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/peted77/hubspot-fun/pkg/errors"
)

// Environment and config keys.
const (
	KeyAccessToken   = "HUBSPOT_ACCESS_TOKEN"
	KeyBaseURL       = "HUBSPOT_BASE_URL"
	KeyCallSpacing   = "DEDUPE_CALL_SPACING"
	KeySearchLimit   = "DEDUPE_SEARCH_LIMIT"
	KeyWriteAttempts = "DEDUPE_WRITE_ATTEMPTS"
	KeyRetryBase     = "DEDUPE_RETRY_BASE"
	KeyFuzzy         = "DEDUPE_FUZZY_THRESHOLD"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Settings is the resolved engine configuration. Zero fields mean
// "use the engine default".
type Settings struct {
	AccessToken string
	BaseURL     string

	CallSpacing   time.Duration
	SearchLimit   int
	WriteAttempts int
	RetryBase     time.Duration

	FuzzyNameThreshold float64
}

// Load resolves settings from Viper and the environment. The access
// token is the only required value.
func Load() (*Settings, error) {
	s := &Settings{
		AccessToken:        GetString(KeyAccessToken),
		BaseURL:            GetString(KeyBaseURL),
		CallSpacing:        getDuration(KeyCallSpacing),
		SearchLimit:        viper.GetInt(KeySearchLimit),
		WriteAttempts:      viper.GetInt(KeyWriteAttempts),
		RetryBase:          getDuration(KeyRetryBase),
		FuzzyNameThreshold: viper.GetFloat64(KeyFuzzy),
	}
	if s.AccessToken == "" {
		return nil, errors.ErrAccessTokenRequired
	}
	return s, nil
}

// getDuration reads a duration value ("250ms", "2s") from Viper or the
// environment, returning zero when unset or unparseable.
func getDuration(key string) time.Duration {
	raw := GetString(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
