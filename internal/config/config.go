package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chirp-api/internal/domain"
	"github.com/chirp-api/internal/pkg/latency"
	"github.com/chirp-api/internal/pkg/validate"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string `validate:"required,numeric"`
	AppEnv   string `validate:"oneof=development production test"`
	LogLevel string `validate:"oneof=debug info warn error"`

	CurrentUserID   string `validate:"required"`
	SeedData        bool
	SimulateLatency bool
	Latency         latency.Profile

	AllowedOrigins []string // CORS allowed origins
	SendRateLimit  float64  `validate:"gt=0"`
	SendRateBurst  int      `validate:"gte=1"`
	TrustProxy     bool     // take the client address from X-Forwarded-For / X-Real-Ip

	// Delivery to external channels after a successful send.
	DeliveryEnabled bool
	AWSRegion       string
	AWSEndpointURL  string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID  string
	AWSSecretKey    string
	SNSRegion       string
	SMTPHost        string
	SMTPPort        string
	SMTPFrom        string
	SMTPUsername    string
	SMTPPassword    string
	ResendAPIKey    string
	EmailFrom       string `validate:"omitempty,email"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	def := latency.DefaultProfile()
	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "3000"),
		AppEnv:          getEnv("APP_ENV", "development"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CurrentUserID:   getEnv("DEMO_USER_ID", domain.DemoUserID),
		SeedData:        getEnvBool("SEED_DATA", true),
		SimulateLatency: getEnvBool("SIMULATE_LATENCY", true),
		Latency: latency.Profile{
			List:        getEnvDuration("LATENCY_LIST", def.List),
			Get:         getEnvDuration("LATENCY_GET", def.Get),
			Send:        getEnvDuration("LATENCY_SEND", def.Send),
			MarkRead:    getEnvDuration("LATENCY_MARK_READ", def.MarkRead),
			MarkAllRead: getEnvDuration("LATENCY_MARK_ALL_READ", def.MarkAllRead),
		},
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		SendRateLimit:   getEnvFloat("SEND_RATE_LIMIT", 5),
		SendRateBurst:   getEnvInt("SEND_RATE_BURST", 10),
		TrustProxy:      getEnvBool("TRUST_PROXY", false),
		DeliveryEnabled: getEnvBool("DELIVERY_ENABLED", false),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:  getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SNSRegion:       getEnv("SNS_REGION", "us-east-1"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPFrom:        getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		EmailFrom:       getEnv("EMAIL_FROM", "Chirp <noreply@example.com>"),
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("750ms") or a bare integer of milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
