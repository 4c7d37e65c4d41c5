package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration. It is loaded once in main and
// passed to whoever needs it; there is no process-wide instance.
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	HTTPPort    string
	MetricsPort string

	// Redis configuration; empty disables caching
	RedisAddr string

	// Environment is "development", "production" or "test"
	Environment string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HTTPPort:    os.Getenv("HTTP_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.MetricsPort == "" {
		config.MetricsPort = "9090"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
