package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Tracking TrackingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// TrackingConfig holds the timing knobs of the tracking engine. Defaults
// match the documented behavior: 5m idle threshold, 10m/2h/30m abandonment
// sweep, 1h/12h hard-ceiling sweep.
type TrackingConfig struct {
	IdleStopThreshold     time.Duration
	SweepInterval         time.Duration
	AbandonAfter          time.Duration
	ActivityRecencyWindow time.Duration
	LongSweepInterval     time.Duration
	LongRunningCeiling    time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timetrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Tracking engine configuration
	tracking := TrackingConfig{}
	for _, d := range []struct {
		dst      *time.Duration
		key      string
		fallback string
	}{
		{&tracking.IdleStopThreshold, "TRACKING_IDLE_STOP_THRESHOLD", "5m"},
		{&tracking.SweepInterval, "TRACKING_SWEEP_INTERVAL", "10m"},
		{&tracking.AbandonAfter, "TRACKING_ABANDON_AFTER", "2h"},
		{&tracking.ActivityRecencyWindow, "TRACKING_ACTIVITY_RECENCY_WINDOW", "30m"},
		{&tracking.LongSweepInterval, "TRACKING_LONG_SWEEP_INTERVAL", "1h"},
		{&tracking.LongRunningCeiling, "TRACKING_LONG_RUNNING_CEILING", "12h"},
	} {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}
	config.Tracking = tracking

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Tracking.AbandonAfter >= c.Tracking.LongRunningCeiling {
		return fmt.Errorf("TRACKING_ABANDON_AFTER must be below TRACKING_LONG_RUNNING_CEILING")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
