package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	APIVersion string

	// DatabaseURL carries the restricted client credential used for request
	// handling; DatabaseAdminURL carries the privileged credential and is
	// only touched by the migration runner.
	DatabaseURL      string
	DatabaseAdminURL string

	JWTSecret string
	RedisAddr string
}

// Load reads configuration from the environment (and .env, if present).
// The store credentials and the token signing secret have no safe default,
// so startup fails when any of them is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "dev"),
		APIVersion:       getEnv("API_VERSION", "1.0.0"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseAdminURL: os.Getenv("DATABASE_ADMIN_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.DatabaseAdminURL == "" {
		missing = append(missing, "DATABASE_ADMIN_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
