package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	PayPal   PayPalConfig
	RabbitMQ RabbitMQConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	GinMode         string
	PublicURL       string
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UploadConfig struct {
	Dir     string
	MaxSize int64
}

type PayPalConfig struct {
	ClientID string
	Secret   string
	Mode     string
	Currency string
}

// Enabled reports whether PayPal credentials were supplied.
func (c PayPalConfig) Enabled() bool {
	return c.ClientID != "" && c.Secret != ""
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type AdminConfig struct {
	Email    string
	Password string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host:            getEnv("HOST", "0.0.0.0"),
			Port:            getEnv("PORT", "8083"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			PublicURL:       strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8083"), "/"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "postgres"),
			DSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=dinein port=5432 sslmode=disable"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dinein-dev-secret"),
			AccessTTL:  getEnvAsDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL: getEnvAsDuration("REFRESH_TOKEN_TTL", 12*time.Hour),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			MaxSize: int64(getEnvAsInt("MAX_UPLOAD_MB", 5)) << 20,
		},
		PayPal: PayPalConfig{
			ClientID: os.Getenv("PAYPAL_CLIENT_ID"),
			Secret:   os.Getenv("PAYPAL_SECRET"),
			Mode:     getEnv("PAYPAL_MODE", "sandbox"),
			Currency: getEnv("PAYPAL_CURRENCY", "USD"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "dinein.events"),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (must be postgres or sqlite)", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Server.GinMode == "release" && c.Auth.JWTSecret == "dinein-dev-secret" {
		return fmt.Errorf("JWT_SECRET must be set in release mode")
	}

	switch c.PayPal.Mode {
	case "sandbox", "live":
	default:
		return fmt.Errorf("invalid PAYPAL_MODE %q (must be sandbox or live)", c.PayPal.Mode)
	}

	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
