package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Legacy studio backend
	BackendBaseURL      string
	BackendTimeout      int // seconds
	BackendServiceToken string

	// JWT
	JWTSecret string

	// Storage (generated documents)
	StoragePath string

	// Background workers
	WorkerCount int

	// Drawer sessions
	SessionTTLMinutes int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		BackendBaseURL:      getEnv("BACKEND_BASE_URL", "http://localhost:3000/api/v1"),
		BackendTimeout:      getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 15),
		BackendServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		StoragePath:         getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", 5),
		SessionTTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 120),
		AllowedOrigins:      getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
