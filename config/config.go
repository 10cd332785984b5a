package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded once at startup and passed
// explicitly to constructors. No package reads the environment after boot.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins string

	JWTSecret     string
	JWTExpiryMins int

	// Object storage (S3-compatible). Optional; avatar uploads fall back
	// to local disk under ./uploads when AccountID is empty.
	StorageAccountID    string
	StorageAccessKey    string
	StorageAccessSecret string
	StorageBucket       string
	CDNBaseURL          string

	// Weekly competition tuning
	CompetitionGoal    float64
	CompetitionBonusPI float64
}

// Load reads configuration from environment variables. DATABASE_URL and
// JWT_SECRET are required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiryMins: getEnvInt("JWT_EXPIRY_MINUTES", 60),

		StorageAccountID:    os.Getenv("STORAGE_ACCOUNT_ID"),
		StorageAccessKey:    os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageAccessSecret: os.Getenv("STORAGE_ACCESS_KEY_SECRET"),
		StorageBucket:       os.Getenv("STORAGE_BUCKET_NAME"),
		CDNBaseURL:          os.Getenv("CDN_BASE_URL"),

		CompetitionGoal:    getEnvFloat("COMPETITION_GOAL", 100),
		CompetitionBonusPI: getEnvFloat("COMPETITION_BONUS_PI", 25),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
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
