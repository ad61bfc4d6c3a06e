// ABOUTME: Configuration loader for the audit API server
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecg-energy/audit-analyzer/services"
)

type Config struct {
	// Server
	Port               string
	DataFile           string   // JSON document store path
	CacheTTL           int      // seconds, default for general cache
	ReportCacheTTL     int      // seconds, memoized reports (default 120s)
	SessionTTL         int      // seconds, login session lifetime (default 12h)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	CookieSecure       bool     // Set Secure flag on session cookies (default: true)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitLogin   int  // Requests per minute for the login endpoint (default: 5)
	RateLimitWrite   int  // Requests per minute per user for write endpoints (default: 60)

	// Admin seed, applied only to an empty store
	AdminEmail    string
	AdminPassword string

	// Engine
	MetricsSource   services.MetricsSource
	AdjustmentScope services.AdjustmentScope
	DensityRules    bool
}

// Load reads .env (if present) and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DataFile:           getEnv("DATA_FILE", "data/audits.json"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		ReportCacheTTL:     getEnvInt("REPORT_CACHE_TTL", 120),
		SessionTTL:         getEnvInt("SESSION_TTL", 43200),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", true),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitLogin:   getEnvInt("RATE_LIMIT_LOGIN", 5),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 60),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		DensityRules: getEnvBool("DENSITY_RULES", false),
	}

	var err error
	if cfg.MetricsSource, err = services.ParseMetricsSource(os.Getenv("METRICS_SOURCE")); err != nil {
		return nil, fmt.Errorf("METRICS_SOURCE: %w", err)
	}
	if cfg.AdjustmentScope, err = services.ParseAdjustmentScope(os.Getenv("ADJUSTMENT_SCOPE")); err != nil {
		return nil, fmt.Errorf("ADJUSTMENT_SCOPE: %w", err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_LOGIN", cfg.RateLimitLogin},
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	for _, ttl := range []struct {
		name  string
		value int
	}{
		{"CACHE_TTL", cfg.CacheTTL},
		{"REPORT_CACHE_TTL", cfg.ReportCacheTTL},
		{"SESSION_TTL", cfg.SessionTTL},
	} {
		if ttl.value < 1 {
			return nil, fmt.Errorf("%s must be positive, got %d", ttl.name, ttl.value)
		}
	}

	return cfg, nil
}

// EngineConfig returns the engine coefficients with the configured options applied
func (c *Config) EngineConfig() services.EngineConfig {
	ec := services.DefaultEngineConfig()
	ec.MetricsSource = c.MetricsSource
	ec.AdjustmentScope = c.AdjustmentScope
	ec.DensityRules = c.DensityRules
	return ec
}

// SessionDuration returns SessionTTL as a duration
func (c *Config) SessionDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

// ReportCacheDuration returns ReportCacheTTL as a duration
func (c *Config) ReportCacheDuration() time.Duration {
	return time.Duration(c.ReportCacheTTL) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
