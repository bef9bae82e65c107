// Package main provides the swatch bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/swatchbot/swatchbot/internal/config"
	"github.com/swatchbot/swatchbot/internal/dify"
	"github.com/swatchbot/swatchbot/internal/lineutil"
	"github.com/swatchbot/swatchbot/internal/logger"
	"github.com/swatchbot/swatchbot/internal/metrics"
	"github.com/swatchbot/swatchbot/internal/sentry"
	"github.com/swatchbot/swatchbot/internal/webhook"
)

// HTTP server timeouts. The write timeout leaves headroom above the
// blocking chat backend call, which dominates request latency.
const (
	httpReadTimeout  = 10 * time.Second
	httpWriteTimeout = 70 * time.Second
	httpIdleTimeout  = 120 * time.Second

	sentryFlushTimeout = 2 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting swatch bot server")

	// Initialize Sentry error tracking (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	}
	defer sentry.Flush(sentryFlushTimeout)

	// Create Prometheus registry with Go and process collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create the chat backend client
	backend := dify.NewClient(cfg.DifyAPIURL, cfg.DifyAPIKey, cfg.BackendTimeout, log, m)
	log.Info("Chat backend client created")

	// Create the LINE reply client with the configured call timeout
	lineClient, err := lineutil.NewReplyClient(cfg.LineChannelToken, cfg.ReplyTimeout)
	if err != nil {
		log.WithError(err).Error("Failed to create LINE messaging client")
		os.Exit(1)
	}

	// Create webhook handler
	webhookHandler := webhook.NewHandler(cfg, backend, lineClient, log, m)
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// Setup routes
	setupRoutes(router, cfg, webhookHandler, backend, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
