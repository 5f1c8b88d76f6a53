package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	APP_URL    string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	// Per-tier price identifiers. These must match the stripe price ids on
	// the plan catalog rows (see /admin/seed-plans).
	STRIPE_PRO_MONTHLY_PRICE_ID        string
	STRIPE_PRO_ANNUAL_PRICE_ID         string
	STRIPE_ENTERPRISE_MONTHLY_PRICE_ID string
	STRIPE_ENTERPRISE_ANNUAL_PRICE_ID  string

	SSO_ENCRYPTION_KEY string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_URL = getEnv("APP_URL", "http://localhost:3000")

	// Billing and enterprise paths fail closed: missing keys stop the boot
	// instead of silently running with insecure defaults.
	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")

	STRIPE_PRO_MONTHLY_PRICE_ID = mustEnv("STRIPE_PRO_MONTHLY_PRICE_ID")
	STRIPE_PRO_ANNUAL_PRICE_ID = mustEnv("STRIPE_PRO_ANNUAL_PRICE_ID")
	STRIPE_ENTERPRISE_MONTHLY_PRICE_ID = mustEnv("STRIPE_ENTERPRISE_MONTHLY_PRICE_ID")
	STRIPE_ENTERPRISE_ANNUAL_PRICE_ID = mustEnv("STRIPE_ENTERPRISE_ANNUAL_PRICE_ID")

	SSO_ENCRYPTION_KEY = mustEnv("SSO_ENCRYPTION_KEY")

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
