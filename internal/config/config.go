// Package config loads client configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"spendo/internal/logger"
)

// Config holds all client configuration values.
type Config struct {
	// BaseURL is the Spendo backend root, including the /api prefix.
	BaseURL string

	// RequestTimeout bounds every HTTP call. There is no retry for
	// mutating calls; idempotent GETs are retried once on transport error.
	RequestTimeout time.Duration

	// TokenPath is where the auth token is persisted between runs.
	TokenPath string

	// Env selects the logging encoder ("production" for JSON).
	Env string
}

// Load reads configuration from environment variables, loading a .env
// file first when one is present, and validates required fields.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debugw("no .env file found", "error", err)
	}

	cfg := &Config{
		BaseURL:   getEnv("SPENDO_API_URL", "http://localhost:8080/api"),
		TokenPath: getEnv("SPENDO_TOKEN_PATH", defaultTokenPath()),
		Env:       getEnv("SPENDO_ENV", "development"),
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid SPENDO_API_URL %q: %w", cfg.BaseURL, err)
	}

	timeout, err := parseTimeout(os.Getenv("SPENDO_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SPENDO_REQUEST_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("SPENDO_REQUEST_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spendo-token"
	}
	return filepath.Join(home, ".spendo", "token")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
