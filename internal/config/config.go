package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	RedisAddr     string
	RedisPassword string

	// Verification flow
	OTPResendWindow        time.Duration
	OTPDemoCode            string
	VerifyProgressInterval time.Duration

	// Payments
	PaymentProvider   string
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	AllowFakePayments bool
	CurrencyCode      string

	// Durable booking session lifetime
	BookingSessionTTL time.Duration

	// SendGrid (receipt sharing)
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	CORSAllowedOrigins string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		OTPResendWindow:        getEnvAsDuration("OTP_RESEND_WINDOW", 30*time.Second),
		OTPDemoCode:            getEnv("OTP_DEMO_CODE", "123456"),
		VerifyProgressInterval: getEnvAsDuration("VERIFY_PROGRESS_INTERVAL", 300*time.Millisecond),

		PaymentProvider:   getEnv("PAYMENT_PROVIDER", "fake"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", ""),
		AllowFakePayments: getEnvAsBool("ALLOW_FAKE_PAYMENTS", true),
		CurrencyCode:      getEnv("CURRENCY_CODE", "INR"),

		BookingSessionTTL: getEnvAsDuration("BOOKING_SESSION_TTL", 24*time.Hour),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Nila Hospital"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
