package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the process configuration, read once at startup.
type AppConfig struct {
	Env  string
	Port string

	// Weather Underground access.
	WeatherAPIKey   string
	WeatherEndpoint string

	// HTTPTimeout bounds a single outbound provider call.
	HTTPTimeout time.Duration

	// Server-held session retention.
	SessionMaxAge time.Duration
	SweepInterval time.Duration

	// ChatLogPath enables the sqlite turn log when non-empty.
	ChatLogPath string
	LogUser     string
	LogPass     string

	// GoogleAPIKey enables geocoder-backed state inference when non-empty.
	GoogleAPIKey string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Env:             getenvDefault("ENV", "development"),
		Port:            getenvDefault("PORT", "8080"),
		WeatherAPIKey:   os.Getenv("WEATHER_UNDERGROUND_API_KEY"),
		WeatherEndpoint: getenvDefault("WEATHER_UNDERGROUND_ENDPOINT", ""),
		ChatLogPath:     os.Getenv("CHAT_LOG_PATH"),
		LogUser:         os.Getenv("LOG_USER"),
		LogPass:         os.Getenv("LOG_PASS"),
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "30m"); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getenvDuration("SWEEP_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	// Conversation logging requires credentials for the export endpoint.
	if cfg.ChatLogPath != "" && (cfg.LogUser == "" || cfg.LogPass == "") {
		return nil, fmt.Errorf("LOG_USER and LOG_PASS are required when CHAT_LOG_PATH is set")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
