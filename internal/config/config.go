package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Mite struct {
		Account   string
		APIKey    string
		BaseURL   string // default: https://{account}.mite.de
		UserAgent string
	}
	MySQL struct {
		DSN string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	}
	Sync struct {
		Timezone string // e.g., UTC (default), Europe/Berlin
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present (local development convenience).
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	cfg.Mite.Account = os.Getenv("MITE_ACCOUNT")
	if cfg.Mite.Account == "" {
		return cfg, errors.New("MITE_ACCOUNT is required")
	}
	cfg.Mite.APIKey = os.Getenv("MITE_API_KEY")
	if cfg.Mite.APIKey == "" {
		return cfg, errors.New("MITE_API_KEY is required")
	}
	cfg.Mite.BaseURL = os.Getenv("MITE_BASE_URL")
	cfg.Mite.UserAgent = os.Getenv("MITE_USER_AGENT")

	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")

	cfg.Sync.Timezone = os.Getenv("SYNC_TZ")
	if cfg.Sync.Timezone == "" {
		cfg.Sync.Timezone = "UTC"
	}

	return cfg, nil
}
