/*
Package config loads application configuration from environment
variables, with an optional .env file for local development.

PRECEDENCE:
  command-line flags (cmd/server) > environment > .env file > defaults
*/
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Default "8080".
	Port string

	// DBPath is the SQLite database path. ":memory:" for in-memory.
	// Default "orient.db".
	DBPath string

	// HomeBase is the city groups fly in and out of; drives the default
	// leg classification rules. Default "Tashkent".
	HomeBase string

	// RulesPath optionally points to a JSON rules document overriding
	// the default classifier and tier tables. Empty means defaults.
	RulesPath string

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string

	// LogLevel controls the minimum slog level: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "orient.db"),
		HomeBase:    getEnv("HOME_BASE", "Tashkent"),
		RulesPath:   getEnv("RULES_PATH", ""),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
