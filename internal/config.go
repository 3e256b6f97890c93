package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Application base URL (for links in emails)
	BaseURL string

	// Notification provider: "smtp" or "emailjs"
	NotifyProvider string

	// SMTP Configuration (relay account identity + app credential)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	// Operator contact - where booking notifications land
	OperatorEmail string
	OperatorPhone string

	// EmailJS Configuration (the public key is safe to expose in browser
	// code; the ids are still config, never hard-coded)
	EmailJSPublicKey  string
	EmailJSServiceID  string
	EmailJSTemplateID string

	// Booking endpoint rate limiting
	BookingRateLimit  int
	BookingRateWindow time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Base URL defaults to localhost for development
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		// SMTP relay is the default delivery path
		NotifyProvider: getEnv("NOTIFY_PROVIDER", "smtp"),

		// SMTP defaults for Mailhog (development)
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@micabspune.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "MI Cabs"),

		OperatorEmail: getEnv("OPERATOR_EMAIL", ""),
		OperatorPhone: getEnv("OPERATOR_PHONE", "+91 8805051404"),

		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),

		// Booking rate limit defaults: 10 submissions per IP per 10 minutes
		BookingRateLimit:  getEnvInt("BOOKING_RATE_LIMIT", 10),
		BookingRateWindow: getEnvDuration("BOOKING_RATE_WINDOW", 10*time.Minute),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required - every delivery path sends an operator copy somewhere
	if cfg.OperatorEmail == "" {
		return nil, fmt.Errorf("OPERATOR_EMAIL is required")
	}

	// Validate notification provider configuration.
	// Missing delivery credentials would otherwise surface as a generic
	// send failure on the first booking, so fail fast at startup instead.
	switch cfg.NotifyProvider {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required when NOTIFY_PROVIDER is 'smtp'")
		}
	case "emailjs":
		if cfg.EmailJSPublicKey == "" {
			return nil, fmt.Errorf("EMAILJS_PUBLIC_KEY is required when NOTIFY_PROVIDER is 'emailjs'")
		}
		if cfg.EmailJSServiceID == "" {
			return nil, fmt.Errorf("EMAILJS_SERVICE_ID is required when NOTIFY_PROVIDER is 'emailjs'")
		}
		if cfg.EmailJSTemplateID == "" {
			return nil, fmt.Errorf("EMAILJS_TEMPLATE_ID is required when NOTIFY_PROVIDER is 'emailjs'")
		}
	default:
		return nil, fmt.Errorf("NOTIFY_PROVIDER must be either 'smtp' or 'emailjs', got: %s", cfg.NotifyProvider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
