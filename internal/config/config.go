// Package config provides application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cedarpro/cybermentor/internal/llm"
)

// Config holds all server configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// Env is "development" or "production". Development enables request
	// logging; production enables static-file serving when StaticDir is
	// set.
	Env string

	// DBPath locates the SQLite database.
	DBPath string

	// StaticDir, when non-empty, is a built web client to serve for
	// non-API paths in production.
	StaticDir string

	LLM llm.Config
}

// Load reads configuration from environment variables. A missing upstream
// API key is deliberately not an error here: the server starts and the
// mentor endpoints report the upstream as unavailable at call time.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnvInt("PORT", 3000),
		Env:       getEnv("CYBERMENTOR_ENV", "development"),
		DBPath:    getEnv("CYBERMENTOR_DB", ""),
		StaticDir: getEnv("CYBERMENTOR_STATIC_DIR", ""),
		LLM:       llm.ConfigFromEnv(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks structural configuration problems.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("invalid environment %q (want development or production)", c.Env)
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
