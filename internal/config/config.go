package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     []byte
	AllowedOrigin string // Frontend origin allowed by CORS
	SecureCookie  bool   // Mark the token cookie Secure (production)
}

// Load loads configuration from environment variables or sets defaults.
// The JWT secret has no default: a process without one can neither issue
// nor verify tokens, so its absence is a startup failure.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./gradesource.db"),
		JWTSecret:     []byte(secret),
		AllowedOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		SecureCookie:  os.Getenv("APP_ENV") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
