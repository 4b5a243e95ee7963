package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the server.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Stripe StripeConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Port        string
	CORSOrigins []string
}

// MongoConfig holds database connection values.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the optional redis connection for rate limiting.
// Rate limiting is disabled when Addr is empty.
type RedisConfig struct {
	Addr           string
	Password       string
	IssueRateLimit int
}

// AuthConfig defines token parameters.
type AuthConfig struct {
	AccessTokenSecret string
}

// StripeConfig holds the payment gateway key.
type StripeConfig struct {
	SecretKey string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. MONGODB_URI, ACCESS_TOKEN_SECRET and STRIPE_SECRET_KEY
// are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Port:        getEnv("PORT", "5000"),
			CORSOrigins: splitOrigins(os.Getenv("CORS_ORIGINS")),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnv("MONGODB_DATABASE", "cityFixDB"),
		},
		Redis: RedisConfig{
			Addr:           os.Getenv("REDIS_ADDRESS"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			IssueRateLimit: getEnvAsInt("ISSUE_RATE_LIMIT", 20),
		},
		Auth: AuthConfig{
			AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		},
		Stripe: StripeConfig{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is not set")
	}
	if cfg.Auth.AccessTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is not set")
	}
	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY environment variable is not set")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{"http://localhost:5173"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
