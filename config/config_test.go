package config

import (
	"strings"
	"testing"
	"time"

	"github.com/ecg-energy/audit-analyzer/services"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DataFile != "data/audits.json" {
		t.Errorf("Expected default data file, got %s", cfg.DataFile)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.ReportCacheDuration() != 2*time.Minute {
		t.Errorf("Expected report cache 2m, got %v", cfg.ReportCacheDuration())
	}
	if cfg.SessionDuration() != 12*time.Hour {
		t.Errorf("Expected session TTL 12h, got %v", cfg.SessionDuration())
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitLogin != 5 || cfg.RateLimitWrite != 60 {
		t.Errorf("Unexpected rate limit defaults: %+v", cfg)
	}
	if cfg.MetricsSource != services.MetricsFromLighting {
		t.Errorf("Expected lighting metrics source, got %s", cfg.MetricsSource)
	}
	if cfg.AdjustmentScope != services.AdjustAll {
		t.Errorf("Expected adjustment scope all, got %s", cfg.AdjustmentScope)
	}
	if cfg.DensityRules {
		t.Error("Expected density rules off by default")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                 "9090",
		"DATA_FILE":            "/tmp/a.json",
		"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
		"METRICS_SOURCE":       "all",
		"ADJUSTMENT_SCOPE":     "air_conditioning",
		"DENSITY_RULES":        "true",
		"ADMIN_EMAIL":          "admin@example.com",
		"ADMIN_PASSWORD":       "changeme123",
		"RATE_LIMIT_ENABLED":   "false",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" || cfg.DataFile != "/tmp/a.json" {
		t.Errorf("Unexpected server settings: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Errorf("CORSAllowedOrigins = %v, want 2 trimmed origins", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}

	ec := cfg.EngineConfig()
	if ec.MetricsSource != services.MetricsFromAll {
		t.Errorf("EngineConfig MetricsSource = %s, want all", ec.MetricsSource)
	}
	if ec.AdjustmentScope != services.AdjustAirConditioning {
		t.Errorf("EngineConfig AdjustmentScope = %s, want air_conditioning", ec.AdjustmentScope)
	}
	if !ec.DensityRules {
		t.Error("EngineConfig DensityRules = false, want true")
	}
	if ec.WeeksPerMonth != 4 {
		t.Errorf("EngineConfig WeeksPerMonth = %v, want 4", ec.WeeksPerMonth)
	}
}

func TestLoadConfig_InvalidIntegerFallsBack(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"CACHE_TTL": "soon"}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected fallback cache TTL 300, got %d", cfg.CacheTTL)
	}
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"login limit too low", map[string]string{"RATE_LIMIT_LOGIN": "0"}, "RATE_LIMIT_LOGIN"},
		{"write limit too high", map[string]string{"RATE_LIMIT_WRITE": "10001"}, "RATE_LIMIT_WRITE"},
		{"unknown metrics source", map[string]string{"METRICS_SOURCE": "hvac"}, "METRICS_SOURCE"},
		{"unknown adjustment scope", map[string]string{"ADJUSTMENT_SCOPE": "lighting"}, "ADJUSTMENT_SCOPE"},
		{"admin without password", map[string]string{"ADMIN_EMAIL": "admin@example.com"}, "ADMIN_PASSWORD"},
		{"negative session ttl", map[string]string{"SESSION_TTL": "-5"}, "SESSION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
