// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, outbound call timeouts, and carousel rendering.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// LINE Bot Configuration
	LineChannelToken  string
	LineChannelSecret string

	// Dify Workflow Backend Configuration
	DifyAPIKey string
	DifyAPIURL string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration (optional, disabled when DSN is empty)
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration (optional, disabled when token is empty)
	BetterStackToken    string
	BetterStackEndpoint string

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Outbound call timeouts. The backend timeout covers the blocking
	// workflow run; the reply timeout covers the LINE reply API call.
	BackendTimeout time.Duration
	ReplyTimeout   time.Duration

	// Carousel Configuration (embedded)
	Carousel CarouselConfig
}

// CarouselConfig holds carousel rendering configuration
type CarouselConfig struct {
	MaxCards           int    // Maximum bubbles per carousel (LINE Flex limit: 10)
	Currency           string // Currency label prefixed to per-unit prices
	StockUnit          string // Unit label appended to remaining stock quantities
	CatalogBaseURL     string // Base URL composed with the record identifier for detail links
	CatalogFallbackURL string // URL used when neither a detail URL nor an identifier is available
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// LINE Bot Configuration
		LineChannelToken:  getEnv(EnvLineChannelAccessToken, ""),
		LineChannelSecret: getEnv(EnvLineChannelSecret, ""),

		// Dify Workflow Backend Configuration
		DifyAPIKey: getEnv(EnvDifyAPIKey, ""),
		DifyAPIURL: getEnv(EnvDifyAPIURL, ""),

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		// Sentry Configuration
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		// Better Stack Configuration
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		// Server Configuration
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		// Outbound call timeouts
		BackendTimeout: getDurationEnv(EnvBackendTimeout, 60*time.Second),
		ReplyTimeout:   getDurationEnv(EnvReplyTimeout, 10*time.Second),

		// Carousel Configuration
		Carousel: CarouselConfig{
			MaxCards:           getIntEnv(EnvMaxCarouselCards, 10),
			Currency:           getEnv(EnvCurrency, "THB"),
			StockUnit:          getEnv(EnvStockUnit, "m"),
			CatalogBaseURL:     getEnv(EnvCatalogBaseURL, "https://www.notion.so/"),
			CatalogFallbackURL: getEnv(EnvCatalogFallbackURL, "https://www.notion.so"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.LineChannelToken == "" {
		errs = append(errs, errors.New(EnvLineChannelAccessToken+" is required"))
	}
	if c.LineChannelSecret == "" {
		errs = append(errs, errors.New(EnvLineChannelSecret+" is required"))
	}
	if c.DifyAPIKey == "" {
		errs = append(errs, errors.New(EnvDifyAPIKey+" is required"))
	}
	if c.DifyAPIURL == "" {
		errs = append(errs, errors.New(EnvDifyAPIURL+" is required"))
	} else if _, err := url.ParseRequestURI(c.DifyAPIURL); err != nil {
		errs = append(errs, fmt.Errorf("%s is not a valid URL: %w", EnvDifyAPIURL, err))
	}
	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvBackendTimeout, c.BackendTimeout))
	}
	if c.ReplyTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvReplyTimeout, c.ReplyTimeout))
	}
	if err := c.Carousel.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("carousel config: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks carousel configuration against LINE Flex limits.
func (c *CarouselConfig) Validate() error {
	var errs []error

	if c.MaxCards < 1 || c.MaxCards > 10 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 10, got %d", EnvMaxCarouselCards, c.MaxCards))
	}
	if c.CatalogBaseURL == "" {
		errs = append(errs, errors.New(EnvCatalogBaseURL+" is required"))
	}
	if c.CatalogFallbackURL == "" {
		errs = append(errs, errors.New(EnvCatalogFallbackURL+" is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
