package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "schoolportal",
			Database:  "main",
		},
		Session: SessionConfig{
			RevokedRetention: 7 * 24 * time.Hour,
			SweepInterval:    time.Hour,
		},
		RateLimit: RateLimitConfig{
			Rate:   100,
			Window: time.Minute,
			Burst:  20,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"missing port", func(c *Config) { c.Database.Port = "" }, "DB_PORT"},
		{"missing namespace", func(c *Config) { c.Database.Namespace = "" }, "DB_NAMESPACE"},
		{"missing database", func(c *Config) { c.Database.Database = "" }, "DB_DATABASE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error mentioning %s", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %s, got: %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Validate_SessionSettings(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.RevokedRetention = 0

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SESSION_REVOKED_RETENTION") {
		t.Errorf("expected SESSION_REVOKED_RETENTION error, got: %v", err)
	}

	cfg = validBaseConfig()
	cfg.Session.SweepInterval = -time.Second

	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SESSION_SWEEP_INTERVAL") {
		t.Errorf("expected SESSION_SWEEP_INTERVAL error, got: %v", err)
	}
}

func TestConfig_Validate_JoinsAllErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Database.Host = ""
	cfg.RateLimit.Rate = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"SERVER_PORT", "DB_HOST", "RATE_LIMIT_RATE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected joined error to mention %s, got: %v", want, err)
		}
	}
}

func TestConfig_EnvModes(t *testing.T) {
	cfg := validBaseConfig()

	if !cfg.IsDevelopment() {
		t.Error("expected development mode")
	}
	if cfg.IsProduction() {
		t.Error("did not expect production mode")
	}

	cfg.Server.Env = "production"
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Namespace == "" {
		t.Error("expected default namespace")
	}
	if cfg.Session.SweepInterval <= 0 {
		t.Error("expected positive default sweep interval")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}
