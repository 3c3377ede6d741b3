package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        string
	TokenSecret string
	CORSOrigin  string

	TurnTimer       time.Duration
	ReconnectWindow time.Duration
	IdleTimeout     time.Duration
	RoomReapEvery   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:            envOrDefault("PORT", "8011"),
		TokenSecret:     envOrDefault("TOKEN_SECRET", "dev-secret-change-me"),
		CORSOrigin:      envOrDefault("CORS_ORIGIN", "*"),
		TurnTimer:       envSeconds("TURN_TIMER_SECONDS", 120),
		ReconnectWindow: envSeconds("RECONNECT_WINDOW_SECONDS", 30),
		IdleTimeout:     envSeconds("IDLE_TIMEOUT_SECONDS", 600),
		RoomReapEvery:   envSeconds("ROOM_REAP_SECONDS", 60),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
