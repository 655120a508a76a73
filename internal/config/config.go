package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the application configuration.
type Config struct {
	Port               int           `yaml:"port"`
	BindAddr           string        `yaml:"bind_addr"`
	DatabasePath       string        `yaml:"database_path"`
	SessionSecret      string        `yaml:"session_secret"`
	SessionIdleTimeout time.Duration `yaml:"-"`
	IdleTimeoutMinutes int           `yaml:"session_idle_timeout_minutes"`
	LogLevel           string        `yaml:"log_level"`
}

// Load builds the configuration in three layers: fixed defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               8080,
		BindAddr:           "",
		DatabasePath:       "./blogapp.db",
		SessionSecret:      "blogapp-dev-secret",
		IdleTimeoutMinutes: 60,
		LogLevel:           "info",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if portStr, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}
	cfg.BindAddr = getEnv("BIND_ADDR", cfg.BindAddr)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v, ok := os.LookupEnv("SESSION_IDLE_TIMEOUT"); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q: %w", v, err)
		}
		cfg.IdleTimeoutMinutes = minutes
	}
	cfg.SessionIdleTimeout = time.Duration(cfg.IdleTimeoutMinutes) * time.Minute

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
