package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr ':8080', got %q", cfg.Addr)
	}
	if cfg.BackendBaseURL != "http://localhost:8000/api" {
		t.Errorf("unexpected default backend URL %q", cfg.BackendBaseURL)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("expected default timeout 15s, got %v", cfg.BackendTimeout)
	}
	if cfg.OTELEnabled {
		t.Error("expected metrics disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_ADDR", ":9090")
	t.Setenv("STOREFRONT_BACKEND_TIMEOUT", "3s")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("expected addr ':9090', got %q", cfg.Addr)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.BackendTimeout)
	}
	if !cfg.OTELEnabled {
		t.Error("expected metrics enabled")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("STOREFRONT_BACKEND_TIMEOUT", "soon")

	cfg := Load()
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("expected fallback to default on bad duration, got %v", cfg.BackendTimeout)
	}
}
