package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/picatlas/picatlas/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoad(t *testing.T) {
	t.Setenv("PICATLAS_ENV", "local")
	t.Setenv("PICATLAS_PROVIDER_TYPE", "google")
	t.Setenv("PICATLAS_PROVIDER_KEY", "testAPIKey")
	t.Setenv("PICATLAS_GEOCODE_TIMEOUT", "5s")
	t.Setenv("PICATLAS_GEOCODE_RPS", "2")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 2, cfg.GeocodeRPS)
}

func Test_MustLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; unsetting afterwards exercises the
	// built-in defaults.
	for _, key := range []string{
		"PICATLAS_ENV", "PICATLAS_PROVIDER_TYPE", "PICATLAS_PROVIDER_KEY",
		"PICATLAS_GEOCODE_TIMEOUT", "PICATLAS_GEOCODE_RPS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 1, cfg.GeocodeRPS)
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("PICATLAS_GEOCODE_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse geocode timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RPSError(t *testing.T) {
	t.Setenv("PICATLAS_GEOCODE_TIMEOUT", "10s")
	t.Setenv("PICATLAS_GEOCODE_RPS", "error_value")

	assert.PanicsWithValue(t, "failed to parse geocode rate limit from configuration, must be an integer", func() {
		config.MustLoad()
	})
}
