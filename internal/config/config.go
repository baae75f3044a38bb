package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	ServerPort string
	Env        string
	LogLevel   string

	// Repository
	RepositoryCapacity int
	IBANPrefix         string

	// Sessions and auth
	SessionTTL    time.Duration
	AuthRateLimit int
	AuthRateBurst int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RepositoryCapacity: getEnvAsInt("REPOSITORY_CAPACITY", 20),
		IBANPrefix:         getEnv("IBAN_PREFIX", "RO00GLBK0001"),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		AuthRateLimit:      getEnvAsInt("AUTH_RATE_LIMIT", 30),
		AuthRateBurst:      getEnvAsInt("AUTH_RATE_BURST", 5),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Level parses LogLevel. validate guarantees it is well formed.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Logger writes JSON to out in production and human-readable console lines
// everywhere else.
func (c *Config) Logger(out io.Writer) zerolog.Logger {
	if !c.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(c.Level()).With().Timestamp().Logger()
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a port number, got %q", c.ServerPort)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if c.RepositoryCapacity <= 0 {
		return fmt.Errorf("REPOSITORY_CAPACITY must be positive")
	}
	if c.IBANPrefix == "" {
		return fmt.Errorf("IBAN_PREFIX is required")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to defaultValue when the variable is unset or not a number.
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
