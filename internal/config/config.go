package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	GoogleMapsAPIKey      string
	DirectionsBaseURL     string
	DirectionsTimeout     time.Duration
	DirectionsMinInterval time.Duration
	DatabaseURL           string
	DACCSVPath            string
	LogLevel              string
	OTLPEndpoint          string
	Location              *time.Location
}

// Load reads the environment, after merging a .env file if one exists.
// A missing Google key is not an error here; evaluation reports it instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              Get("PORT", "8080"),
		GoogleMapsAPIKey:  strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		DirectionsBaseURL: Get("DIRECTIONS_BASE_URL", "https://maps.googleapis.com"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DACCSVPath:        strings.TrimSpace(os.Getenv("DAC_CSV_PATH")),
		LogLevel:          Get("LOG_LEVEL", "info"),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}

	var err error
	if cfg.DirectionsTimeout, err = duration("DIRECTIONS_TIMEOUT", 20*time.Second, false); err != nil {
		return nil, err
	}
	if cfg.DirectionsMinInterval, err = duration("DIRECTIONS_MIN_INTERVAL", 100*time.Millisecond, true); err != nil {
		return nil, err
	}

	cfg.Location = time.Local
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ: %q", tz)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// duration accepts Go duration strings ("250ms") or whole milliseconds.
func duration(key string, fallback time.Duration, allowZero bool) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		ms, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s: %q", key, v)
		}
		d = time.Duration(ms) * time.Millisecond
	}

	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
