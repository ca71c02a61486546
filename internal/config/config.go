package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"staynest/internal/api"
	"staynest/internal/payment"
	"staynest/internal/session"
)

// Config holds everything the client consumes from the environment. Every
// key has a hardcoded local-development fallback.
type Config struct {
	LogLevel  string
	LogFormat string

	// UploadBaseURL resolves relative image/asset paths.
	UploadBaseURL string

	// Debug metrics endpoint, off by default.
	MetricsEnabled bool
	MetricsPort    string

	API     api.Config
	Stripe  payment.Config
	Session session.Config
}

// Load reads .env (when present) and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	return &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "http://localhost:5000"),

		MetricsEnabled: getEnv("METRICS_ENABLED", "false") == "true",
		MetricsPort:    getEnv("METRICS_PORT", "9102"),

		API: api.Config{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SEC", 15)) * time.Second,
		},

		Stripe: payment.Config{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", "pk_test_51placeholder"),
		},

		Session: session.Config{
			TokenPath: getEnv("SESSION_TOKEN_PATH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
