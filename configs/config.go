package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Port        string
	Environment string

	TokenSecret string
	TokenTTL    time.Duration

	DBDriver    string
	MongoURI    string
	MongoDB     string
	DatabaseURL string

	RoleCacheTTL  time.Duration
	RedisAddr     string
	RedisPassword string

	StripeSecretKey    string
	PaymentCurrency    string
	PayPalAPIBaseURL   string
	PayPalClientID     string
	PayPalClientSecret string

	CloudinaryURL string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	AdminEmail string
	AdminName  string

	ReminderCron string
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Load reads envFile into the process environment (a missing file only logs a
// warning) and builds a Config from it.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s not found, reading from system environment variables", envFile)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults and checking required keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:               get("PORT", "5000"),
		Environment:        get("ENV", "development"),
		TokenSecret:        getenv("TOKEN_SECRET_KEY"),
		DBDriver:           get("DB_DRIVER", DriverMongo),
		MongoURI:           get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            get("MONGO_DB", "StudyDB"),
		DatabaseURL:        getenv("DATABASE_URL"),
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		StripeSecretKey:    getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency:    get("PAYMENT_CURRENCY", "usd"),
		PayPalAPIBaseURL:   get("PAYPAL_API_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:     getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: getenv("PAYPAL_CLIENT_SECRET"),
		CloudinaryURL:      getenv("CLOUDINARY_URL"),
		BrevoAPIKey:        getenv("BREVO_API_KEY"),
		EmailSender:        getenv("EMAIL_SENDER"),
		EmailSenderName:    get("EMAIL_SENDER_NAME", "Study Platform"),
		AdminEmail:         getenv("ADMIN_EMAIL"),
		AdminName:          get("ADMIN_NAME", "Admin"),
		ReminderCron:       get("REMINDER_CRON", "0 8 * * *"),
	}

	var err error
	if cfg.TokenTTL, err = cast.ToDurationE(get("TOKEN_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.RoleCacheTTL, err = cast.ToDurationE(get("ROLE_CACHE_TTL", "0")); err != nil {
		return nil, fmt.Errorf("ROLE_CACHE_TTL: %w", err)
	}
	if _, err = cast.ToUint16E(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET_KEY is required but not set")
	}
	switch cfg.DBDriver {
	case DriverMongo, DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
