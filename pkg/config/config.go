// Package config provides environment-based configuration for the toycard service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the toycard service.
type Config struct {
	// Database configuration
	DatabaseDSN string

	// Authentication
	JWTSecret string
	JWTExpiry time.Duration
	// BotToken is the Telegram bot token used both to verify WebApp
	// init data and to send wish notifications.
	BotToken string
	// WishNotifications enables owner notifications for new wishes.
	// Requires BotToken.
	WishNotifications bool

	// Server configuration
	APIHost string
	APIPort int
	// BaseURL is the externally reachable URL of this server, used when
	// composing pre-signed upload targets and share links.
	BaseURL string

	// Media storage
	MediaDir         string
	UploadSigningKey string
	UploadURLTTL     time.Duration

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, preferring a local
// .env file when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.UploadSigningKey == "" {
		return fmt.Errorf("UPLOAD_SIGNING_KEY is required")
	}
	return nil
}

// LoadWithDefaults loads configuration with defaults for development.
// It does not validate required fields, useful for testing.
func LoadWithDefaults() *Config {
	cfg := defaults()
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-secret-key-min-32-chars"
	}
	if cfg.UploadSigningKey == "" {
		cfg.UploadSigningKey = "development-upload-signing-key"
	}
	return cfg
}

func defaults() *Config {
	return &Config{
		DatabaseDSN:       getEnv("DATABASE_URL", "postgres://localhost:5432/toycard?sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTExpiry:         getDurationEnv("JWT_EXPIRY", 720*time.Hour),
		BotToken:          getEnv("BOT_TOKEN", ""),
		WishNotifications: getBoolEnv("WISH_NOTIFICATIONS", false),
		APIHost:           getEnv("API_HOST", "0.0.0.0"),
		APIPort:           getIntEnv("API_PORT", 8080),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		MediaDir:          getEnv("MEDIA_DIR", "/var/lib/toycard/media"),
		UploadSigningKey:  getEnv("UPLOAD_SIGNING_KEY", ""),
		UploadURLTTL:      getDurationEnv("UPLOAD_URL_TTL", 1*time.Hour),
		ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
