package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// BadgerPath is the data directory for the embedded store. Empty
	// selects an in-memory store (useful for previews and tests).
	BadgerPath string

	// RatesAPIURL overrides the live exchange-rate endpoint; empty keeps
	// the built-in default.
	RatesAPIURL     string
	RatesAPITimeout time.Duration

	// AutoUpdateInterval is the period of the background rate refresh.
	AutoUpdateInterval time.Duration

	// RefreshPerHour caps manual refresh requests per client IP.
	RefreshPerHour int64

	// CORSOrigins lists the admin UI origins allowed to call the API.
	CORSOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BADGER_PATH", "data/currency")
	viper.SetDefault("RATES_API_URL", "")
	viper.SetDefault("RATES_API_TIMEOUT", "8s")
	viper.SetDefault("AUTO_UPDATE_INTERVAL", "1h")
	viper.SetDefault("REFRESH_PER_HOUR", 30)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		BadgerPath:     viper.GetString("BADGER_PATH"),
		RatesAPIURL:    viper.GetString("RATES_API_URL"),
		RefreshPerHour: viper.GetInt64("REFRESH_PER_HOUR"),
		CORSOrigins:    viper.GetStringSlice("CORS_ORIGINS"),
	}

	timeoutStr := viper.GetString("RATES_API_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 8 * time.Second
		log.Printf("Warning: Invalid value for RATES_API_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RatesAPITimeout = timeout

	intervalStr := viper.GetString("AUTO_UPDATE_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = time.Hour
		log.Printf("Warning: Invalid value for AUTO_UPDATE_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.AutoUpdateInterval = interval

	return cfg, nil
}
