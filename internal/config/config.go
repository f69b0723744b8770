package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Port string

	// Upstream endpoints.
	GeocodingBaseURL string
	ForecastBaseURL  string

	// HTTPTimeout bounds outbound calls (0 = transport default, no timeout).
	HTTPTimeout time.Duration

	// BreakerFailures consecutive upstream failures open the circuit breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// DefaultCity is searched when the dashboard is opened without a query.
	DefaultCity string

	// In-memory session retention.
	SessionMaxAge   time.Duration
	SessionMaxCount int           // 0 = unlimited
	SweepInterval   time.Duration // how often expired sessions are pruned

	// LogDebug turns on DEBUG log lines.
	LogDebug bool
}

// Load reads configuration from environment with sensible defaults.
// Callers load any .env file beforehand.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "London")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getenvDuration("BREAKER_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "1h"); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getenvDuration("SWEEP_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	cfg.BreakerFailures = uint32(getenvInt("BREAKER_FAILURES", 5))
	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 1000)
	cfg.LogDebug = getenvBool("LOG_DEBUG", false)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
