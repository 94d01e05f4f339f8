package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev for default env")
	}
	if cfg.Upstream.BaseURL != "http://localhost:8112/api/v1/employee" {
		t.Fatalf("unexpected base URL %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.Upstream.MaxAttempts)
	}
	if cfg.Upstream.RetryDelay != time.Second {
		t.Fatalf("expected 1s retry delay, got %v", cfg.Upstream.RetryDelay)
	}
	if cfg.Upstream.HTTPTimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.Upstream.HTTPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvUpstreamBaseURL, "http://employees.internal:9000/api/v1/employee")
	t.Setenv(EnvUpstreamMaxAttempts, "5")
	t.Setenv(EnvUpstreamRetryDelay, "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd")
	}
	if cfg.Upstream.MaxAttempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", cfg.Upstream.MaxAttempts)
	}
	if cfg.Upstream.RetryDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %v", cfg.Upstream.RetryDelay)
	}
}

func TestLoadRejectsInvalidUpstream(t *testing.T) {
	t.Setenv(EnvUpstreamMaxAttempts, "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected zero max attempts to be rejected")
	}
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv(EnvUpstreamBaseURL, "/api/v1/employee")
	if _, err := Load(); err == nil {
		t.Fatal("expected relative base URL to be rejected")
	}
}
