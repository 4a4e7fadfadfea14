package config

import (
	"os"
	"strconv"

	"bootstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Bootstrap BootstrapConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds run ledger connection settings. An empty URL selects
// the in-memory ledger.
type DatabaseConfig struct {
	URL string
}

// BootstrapConfig holds default test parameters
type BootstrapConfig struct {
	Alpha       float64
	Resamples   int
	Seed        int64
	MaxParallel int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   ServerConfig{Port: getEnv("BOOTSTAT_PORT", "8080")},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Bootstrap: BootstrapConfig{
			Alpha:       0.01,
			Resamples:   1000,
			Seed:        0,
			MaxParallel: 4,
		},
	}

	var err error
	if config.Bootstrap.Alpha, err = getFloat("BOOTSTAT_ALPHA", config.Bootstrap.Alpha); err != nil {
		return nil, err
	}
	if config.Bootstrap.Resamples, err = getInt("BOOTSTAT_RESAMPLES", config.Bootstrap.Resamples); err != nil {
		return nil, err
	}
	if config.Bootstrap.Seed, err = getInt64("BOOTSTAT_SEED", config.Bootstrap.Seed); err != nil {
		return nil, err
	}
	if config.Bootstrap.MaxParallel, err = getInt("BOOTSTAT_MAX_PARALLEL", config.Bootstrap.MaxParallel); err != nil {
		return nil, err
	}

	if config.Bootstrap.Alpha <= 0 || config.Bootstrap.Alpha >= 1 {
		return nil, errors.ConfigInvalid("BOOTSTAT_ALPHA must lie in (0, 1)")
	}
	if config.Bootstrap.Resamples <= 0 {
		return nil, errors.ConfigInvalid("BOOTSTAT_RESAMPLES must be positive")
	}
	if config.Bootstrap.MaxParallel <= 0 {
		return nil, errors.ConfigInvalid("BOOTSTAT_MAX_PARALLEL must be positive")
	}
	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s is not a number", key)
	}
	return parsed, nil
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "%s is not an integer", key)
	}
	return parsed, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s is not an integer", key)
	}
	return parsed, nil
}
