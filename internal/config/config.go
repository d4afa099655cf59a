package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Password hasher names accepted by PASSWORD_HASHER.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Config holds application configuration. It is built once at startup and
// handed to each component that needs it.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// SecretKey is carried for parity with existing deployments; no endpoint signs anything with it.
	SecretKey string

	// Market data
	FinnhubAPIKey  string
	FinnhubBaseURL string
	MarketTimeout  time.Duration
	CandleTimeout  time.Duration

	// Users
	PasswordHasher string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "sqlite:///trading.db"),

		SecretKey: getEnv("SECRET_KEY", "your-secret-key-here"),

		// Market data
		FinnhubAPIKey:  getEnv("FINNHUB_API_KEY", "your-finnhub-api-key"),
		FinnhubBaseURL: strings.TrimRight(getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"), "/"),

		PasswordHasher: strings.ToLower(getEnv("PASSWORD_HASHER", HasherSHA256)),
	}

	var err error
	if cfg.MarketTimeout, err = parseTimeout("MARKET_TIMEOUT", getEnv("MARKET_TIMEOUT", "5s")); err != nil {
		return nil, err
	}
	if cfg.CandleTimeout, err = parseTimeout("CANDLE_TIMEOUT", getEnv("CANDLE_TIMEOUT", "30s")); err != nil {
		return nil, err
	}

	switch cfg.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return nil, fmt.Errorf("invalid PASSWORD_HASHER %q: must be %s or %s", cfg.PasswordHasher, HasherSHA256, HasherBcrypt)
	}

	return cfg, nil
}

func parseTimeout(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
