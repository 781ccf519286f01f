package config

import (
	"errors"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.UsersFile != "data/users.json" {
		t.Fatalf("unexpected users file: %q", cfg.UsersFile)
	}
	if cfg.SessionTTLHours != 168 {
		t.Fatalf("expected 7 day default TTL, got %d", cfg.SessionTTLHours)
	}
	if cfg.SessionSecret != DevSessionSecret {
		t.Fatalf("expected dev secret fallback, got %q", cfg.SessionSecret)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected non-production default profile")
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	if _, err := LoadConfig(); !errors.Is(err, ErrMissingSessionSecret) {
		t.Fatalf("expected ErrMissingSessionSecret, got %v", err)
	}
}

func TestLoadConfig_ProductionWithSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "super-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionSecret != "super-secret" {
		t.Fatalf("unexpected secret: %q", cfg.SessionSecret)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production profile")
	}
}
