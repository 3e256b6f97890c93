package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/micabspune/micabs/internal"
	"github.com/micabspune/micabs/internal/domain"
	"github.com/micabspune/micabs/internal/handler"
	"github.com/micabspune/micabs/internal/metrics"
	"github.com/micabspune/micabs/internal/middleware"
	"github.com/micabspune/micabs/internal/notify"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	operator := domain.OperatorContact{
		Email: cfg.OperatorEmail,
		Phone: cfg.OperatorPhone,
	}

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: "web/templates",
		Logger:       logger,
		IsDev:        cfg.Env == "development",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize notification senders. The pet taxi endpoint is always
	// server-relayed over SMTP; the trip form's transport is configurable.
	smtpSender, err := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}, operator, "web/templates/email", logger)
	if err != nil {
		return fmt.Errorf("smtp sender initialization failed: %w", err)
	}

	var tripSender notify.Sender = smtpSender
	if cfg.NotifyProvider == "emailjs" {
		tripSender, err = notify.NewEmailJSSender(notify.EmailJSConfig{
			PublicKey:  cfg.EmailJSPublicKey,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
		}, operator, logger)
		if err != nil {
			return fmt.Errorf("emailjs sender initialization failed: %w", err)
		}
	}
	logger.Info("Notification transport ready", "provider", tripSender.Name())

	// Rate limiter for the booking endpoints
	bookingLimiter := middleware.NewRateLimiter(cfg.BookingRateLimit, cfg.BookingRateWindow, logger)
	limit := middleware.NewRateLimitMiddleware(bookingLimiter, logger).Limit

	// Initialize handlers
	pageHandler := handler.NewPageHandler(renderer, operator, logger)
	bookingHandler := handler.NewBookingHandler(tripSender, logger)
	petTaxiHandler := handler.NewPetTaxiHandler(smtpSender, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint (optionally behind basic auth)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	// Public pages and booking endpoints
	pageHandler.RegisterRoutes(mux)
	bookingHandler.RegisterRoutes(mux, limit)
	petTaxiHandler.RegisterRoutes(mux, limit)

	// Site-wide middleware
	isSecure := cfg.Env != "development"
	stack := middleware.Stack(
		middleware.NewSecurityHeadersMiddleware(isSecure).Handler,
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: stack(mux),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
