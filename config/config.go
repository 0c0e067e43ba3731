package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and handed to the components that need it; nothing
// else in the codebase calls os.Getenv.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret string

	// Payment provider (hosted card widget + payments API).
	SquareAccessToken string
	SquareAppID       string
	SquareLocationID  string
	SquareBaseURL     string
	Currency          string

	// Tax policy for this deployment. Zero means "tax pending": quotes
	// carry no tax and receipt decomposition yields zero tax. A non-zero
	// value (e.g. 0.13) means stored totals are tax-inclusive at that rate.
	TaxRate float64

	FromEmail         string
	FromEmailPassword string
	FromEmailSMTP     string
	SMTPAddress       string

	ImageBucket string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment.")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SquareAccessToken: os.Getenv("SQUARE_ACCESS_TOKEN"),
		SquareAppID:       os.Getenv("SQUARE_APP_ID"),
		SquareLocationID:  os.Getenv("SQUARE_LOCATION_ID"),
		SquareBaseURL:     getEnv("SQUARE_BASE_URL", "https://connect.squareupsandbox.com"),
		Currency:          getEnv("CURRENCY", "CAD"),
		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		FromEmailSMTP:     os.Getenv("FROM_EMAIL_SMTP"),
		SMTPAddress:       os.Getenv("SMTP_ADDRESS"),
		ImageBucket:       os.Getenv("IMAGE_BUCKET"),
	}

	if rate := os.Getenv("TAX_RATE"); rate != "" {
		parsed, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TAX_RATE %q: %w", rate, err)
		}
		cfg.TaxRate = parsed
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is not set")
	}
	if cfg.SquareAccessToken == "" {
		return nil, fmt.Errorf("SQUARE_ACCESS_TOKEN is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
