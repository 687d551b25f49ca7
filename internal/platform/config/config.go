package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr              string
	UpstreamBaseURL   string
	StateDir          string
	StatePassphrase   string
	Environment       string
	MaxBodyBytes      int64
	MaxUploadBytes    int64
	DefaultPageLimit  int
	MaxPageLimit      int
	MetricsEnabled    bool
	RequestTimeoutSec int
}

func Load() Config {
	return Config{
		Addr:              getEnv("CONSOLE_ADDR", ":7070"),
		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", ""),
		StateDir:          getEnv("STATE_DIR", ".hrconsole"),
		StatePassphrase:   getEnv("STATE_PASSPHRASE", ""),
		Environment:       getEnv("APP_ENV", "development"),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 8388608)),
		DefaultPageLimit:  getEnvInt("DEFAULT_PAGE_LIMIT", 10),
		MaxPageLimit:      getEnvInt("MAX_PAGE_LIMIT", 100),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 15),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.UpstreamBaseURL) == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if !strings.HasPrefix(c.UpstreamBaseURL, "http://") && !strings.HasPrefix(c.UpstreamBaseURL, "https://") {
		return fmt.Errorf("UPSTREAM_BASE_URL must be an http(s) URL")
	}
	if c.Environment == "production" && strings.TrimSpace(c.StatePassphrase) == "" {
		return fmt.Errorf("STATE_PASSPHRASE must be set in production for encryption at rest")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least MAX_BODY_BYTES")
	}
	if c.DefaultPageLimit <= 0 || c.MaxPageLimit < c.DefaultPageLimit {
		return fmt.Errorf("page limits must be positive and MAX_PAGE_LIMIT at least DEFAULT_PAGE_LIMIT")
	}
	if c.RequestTimeoutSec <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SEC must be positive")
	}
	return nil
}
