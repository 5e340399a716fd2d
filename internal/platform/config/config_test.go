package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost/lms",
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		Environment:        "development",
		MaxBodyBytes:       1048576,
		LoginRatePerMinute: 10,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := validConfig()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing DATABASE_URL accepted")
	}

	cfg = validConfig()
	cfg.JWTSecret = " "
	if err := cfg.Validate(); err == nil {
		t.Error("blank JWT_SECRET accepted")
	}

	cfg = validConfig()
	cfg.TokenTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero TOKEN_TTL accepted")
	}

	cfg = validConfig()
	cfg.MaxBodyBytes = 100
	if err := cfg.Validate(); err == nil {
		t.Error("tiny MAX_BODY_BYTES accepted")
	}

	cfg = validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = true
	if err := cfg.Validate(); err == nil {
		t.Error("production seed without password accepted")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if !cfg.RunMigrations {
		t.Error("RunMigrations should default on")
	}
	if cfg.MigrationsDir != "migrations" {
		t.Errorf("MigrationsDir = %q", cfg.MigrationsDir)
	}
}
