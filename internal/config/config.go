package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings of the tool. Per-run options
// (input paths, output format and destination) come from command-line flags
// and are not part of this struct.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - ProviderType: The reverse geocoding provider to use (google, nominatim).
// - APIKey: The API key for the provider (required for Google).
// - GeocodeTimeout: The per-request bound on address resolution calls.
// - GeocodeRPS: The provider rate limit in requests per second.
type Config struct {
	Env            string        // Env is the current environment: local, development, production.
	ProviderType   string        // ProviderType specifies which reverse geocoding provider to use.
	APIKey         string        // The API key for accessing external services.
	GeocodeTimeout time.Duration // The per-request timeout for address resolution.
	GeocodeRPS     int           // The provider rate limit, requests per second.
}

// MustLoad loads the configuration from the environment and returns a
// Config struct. A .env file is honored when present.
func MustLoad() *Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(setDefaultEnv("PICATLAS_GEOCODE_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	rps, err := strconv.Atoi(setDefaultEnv("PICATLAS_GEOCODE_RPS", "1"))
	if err != nil {
		panic("failed to parse geocode rate limit from configuration, must be an integer")
	}

	return &Config{
		Env:            setDefaultEnv("PICATLAS_ENV", "production"),
		ProviderType:   setDefaultEnv("PICATLAS_PROVIDER_TYPE", "nominatim"),
		APIKey:         os.Getenv("PICATLAS_PROVIDER_KEY"),
		GeocodeTimeout: timeout,
		GeocodeRPS:     rps,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
