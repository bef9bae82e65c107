// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvLineChannelAccessToken = "SWATCH_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret      = "SWATCH_LINE_CHANNEL_SECRET"
	EnvDifyAPIKey             = "SWATCH_DIFY_API_KEY"
	EnvDifyAPIURL             = "SWATCH_DIFY_API_URL"

	// Server
	EnvPort            = "SWATCH_PORT"
	EnvLogLevel        = "SWATCH_LOG_LEVEL"
	EnvShutdownTimeout = "SWATCH_SHUTDOWN_TIMEOUT"

	// Outbound call timeouts
	EnvBackendTimeout = "SWATCH_BACKEND_TIMEOUT"
	EnvReplyTimeout   = "SWATCH_REPLY_TIMEOUT"

	// Carousel rendering
	EnvMaxCarouselCards   = "SWATCH_MAX_CAROUSEL_CARDS"
	EnvCurrency           = "SWATCH_CURRENCY"
	EnvStockUnit          = "SWATCH_STOCK_UNIT"
	EnvCatalogBaseURL     = "SWATCH_CATALOG_BASE_URL"
	EnvCatalogFallbackURL = "SWATCH_CATALOG_FALLBACK_URL"

	// Sentry Feature
	EnvSentryDSN         = "SWATCH_SENTRY_DSN"
	EnvSentryEnvironment = "SWATCH_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SWATCH_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "SWATCH_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "SWATCH_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "SWATCH_METRICS_USERNAME"
	EnvMetricsPassword = "SWATCH_METRICS_PASSWORD"
)
