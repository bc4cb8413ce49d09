package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	HTTPPort         string
	LogLevel         string
}

// ProcessEnvironmentVariables builds the config from the environment, with a
// .env file honored for local development. Defaults match the docker compose
// setup.
func ProcessEnvironmentVariables() (*Config, error) {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	env := Config{
		PostgresAddress:  envOrDefault("POSTGRES_ADDRESS", "localhost"),
		PostgresPort:     envOrDefault("POSTGRES_PORT", "5433"),
		PostgresDB:       envOrDefault("POSTGRES_DB", "postgres"),
		PostgresUsername: envOrDefault("POSTGRES_USERNAME", "postgres"),
		PostgresPassword: envOrDefault("POSTGRES_PASSWORD", "testpassword"),
		HTTPPort:         envOrDefault("HTTP_PORT", "9446"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
	}

	return &env, nil
}

// PostgresDSN renders the connection string shared by the query side, the
// change listener and the migration runner.
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword +
		"@" + c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB +
		"?sslmode=disable"
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); len(value) != 0 {
		return value
	}
	return fallback
}
