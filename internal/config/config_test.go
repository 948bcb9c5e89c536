package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "GOOGLE_MAPS_API_KEY", "DIRECTIONS_BASE_URL", "DIRECTIONS_TIMEOUT",
		"DIRECTIONS_MIN_INTERVAL", "DATABASE_URL", "DAC_CSV_PATH", "LOG_LEVEL",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "TZ",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://maps.googleapis.com", cfg.DirectionsBaseURL)
	assert.Equal(t, 20*time.Second, cfg.DirectionsTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.DirectionsMinInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.GoogleMapsAPIKey)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GOOGLE_MAPS_API_KEY", " key ")
	t.Setenv("DIRECTIONS_TIMEOUT", "5s")
	t.Setenv("DIRECTIONS_MIN_INTERVAL", "0")
	t.Setenv("TZ", "America/Los_Angeles")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "key", cfg.GoogleMapsAPIKey)
	assert.Equal(t, 5*time.Second, cfg.DirectionsTimeout)
	assert.Equal(t, time.Duration(0), cfg.DirectionsMinInterval)
	assert.Equal(t, "America/Los_Angeles", cfg.Location.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "http"},
		{"DIRECTIONS_TIMEOUT", "0"},
		{"DIRECTIONS_TIMEOUT", "soon"},
		{"DIRECTIONS_MIN_INTERVAL", "-1s"},
		{"TZ", "Not/AZone"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, "invalid "+tt.key)
		})
	}
}

func TestDurationAcceptsMilliseconds(t *testing.T) {
	t.Setenv("X_INTERVAL", "250")

	d, err := duration("X_INTERVAL", time.Second, false)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}
