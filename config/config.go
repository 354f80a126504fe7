package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all environment-backed settings for the application.
type Config struct {
	Port           string
	MongoURI       string
	RedisAddr      string
	JwtSecret      string
	SendgridAPIKey string
	EmailSender    string
	Currency       string
	PaymentTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where a value is not set. godotenv is expected to have populated the
// environment from .env before this runs.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8000"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		JwtSecret:      os.Getenv("JWT_SECRET"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@go-commerce.local"),
		Currency:       getEnv("CURRENCY", "USD"),
		PaymentTimeout: time.Duration(getEnvInt("PAYMENT_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
