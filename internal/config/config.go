// Package config loads server settings from the environment.
//
// Values come from real environment variables first. For local development a
// .env file in the working directory is read too (via godotenv); it never
// overrides a variable that is already set, so production deployments can
// ignore it entirely.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Environment     string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	MetricsEnabled  bool
}

// Load reads the configuration. files are optional .env files; when none are
// given ".env" is tried. A missing file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	c := &Config{}
	var err error
	if c.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	c.Environment = getEnv("ENVIRONMENT", "development")
	c.LogLevel = getEnv("LOG_LEVEL", "info")
	if c.ReadTimeout, err = getDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if c.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if c.IdleTimeout, err = getDuration("IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if c.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	c.MaxBodyBytes = int64(maxBody)
	if c.MetricsEnabled, err = getBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings the server cannot start with.
func Validate(c *Config) error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("config: ENVIRONMENT must be development or production, got %q", c.Environment)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	for name, d := range map[string]time.Duration{
		"READ_TIMEOUT":     c.ReadTimeout,
		"WRITE_TIMEOUT":    c.WriteTimeout,
		"IDLE_TIMEOUT":     c.IdleTimeout,
		"SHUTDOWN_TIMEOUT": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", name, d)
		}
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
