package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the threadbot service
type Config struct {
	// Reddit script-app credentials
	UserAgent    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// Target subreddit for the daily thread
	Subreddit string

	// Stream feed endpoint
	StreamsURL string

	// Scheduler settings
	PollInterval time.Duration

	// Reference timezone for all "today" computations
	Timezone string

	// Ops HTTP server
	Port int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		UserAgent:    os.Getenv("USERAGENT"),
		ClientID:     os.Getenv("REDDITID"),
		ClientSecret: os.Getenv("REDDITSECRET"),
		Username:     os.Getenv("REDDITUSER"),
		Password:     os.Getenv("REDDITPASS"),
		Subreddit:    os.Getenv("SUBREDDIT"),
		StreamsURL:   getEnv("STREAMS_URL", "https://woke.net/api/streams.json"),
		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 60)) * time.Second,
		Timezone:     getEnv("TIMEZONE", "America/Los_Angeles"),
		Port:         getEnvInt("PORT", 8000),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured reference timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// validate checks that all required configuration is present
func (c *Config) validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("USERAGENT is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("REDDITID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("REDDITSECRET is required")
	}
	if c.Username == "" {
		return fmt.Errorf("REDDITUSER is required")
	}
	if c.Password == "" {
		return fmt.Errorf("REDDITPASS is required")
	}
	if c.Subreddit == "" {
		return fmt.Errorf("SUBREDDIT is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be greater than 0")
	}
	return nil
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
