package config

import (
	"os"
	"strconv"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	// Amounts are in the smallest currency unit (pence).
	ContactAmount        int64
	TeacherPremiumAmount int64
	StudentPremiumAmount int64
}

type Config struct {
	Port        string
	DatabaseURL string
	FrontendURL string
	Stripe      StripeConfig
	R2          R2Config
	Environment string
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Environment: getEnv("APP_ENV", "development"),
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.Currency = getEnv("STRIPE_CURRENCY", "gbp")
	cfg.Stripe.ContactAmount = getEnvInt64("CONTACT_PRICE_AMOUNT", 700)
	cfg.Stripe.TeacherPremiumAmount = getEnvInt64("TEACHER_PREMIUM_AMOUNT", 4900)
	cfg.Stripe.StudentPremiumAmount = getEnvInt64("STUDENT_PREMIUM_AMOUNT", 2900)

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
