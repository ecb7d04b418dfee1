package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":18080")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("UPSTREAM_MODE", "LIVE")
	t.Setenv("UPSTREAM_TIMEOUT", "7s")
	t.Setenv("LOGOUT_TIMEOUT_SECONDS", "12")
	t.Setenv("DOCSTORE_DRIVER", "mongo")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOGIN_RATE_BURST", "9")
	t.Setenv("SECURE_COOKIES", "true")

	cfg := Load()
	if cfg.HTTPAddr != ":18080" {
		t.Fatalf("expected HTTP_ADDR override, got %s", cfg.HTTPAddr)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.UpstreamMode != UpstreamModeLive {
		t.Fatalf("expected live upstream mode, got %s", cfg.UpstreamMode)
	}
	if cfg.UpstreamTimeout != 7*time.Second {
		t.Fatalf("expected UPSTREAM_TIMEOUT 7s, got %s", cfg.UpstreamTimeout)
	}
	if cfg.LogoutTimeout != 12*time.Second {
		t.Fatalf("expected LOGOUT_TIMEOUT 12s, got %s", cfg.LogoutTimeout)
	}
	if cfg.DocStoreDriver != DocStoreMongo {
		t.Fatalf("expected mongo driver, got %s", cfg.DocStoreDriver)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.LoginRateBurst != 9 {
		t.Fatalf("expected LOGIN_RATE_BURST 9, got %d", cfg.LoginRateBurst)
	}
	if !cfg.SecureCookies {
		t.Fatalf("expected SECURE_COOKIES true")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := Load()
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Fatalf("expected 5s upstream timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.LogoutTimeout != 10*time.Second {
		t.Fatalf("expected 10s logout timeout, got %s", cfg.LogoutTimeout)
	}
	if cfg.APIClientTimeout != 30*time.Second {
		t.Fatalf("expected 30s client timeout, got %s", cfg.APIClientTimeout)
	}
	if cfg.PingTimeout != 3*time.Second {
		t.Fatalf("expected 3s ping timeout, got %s", cfg.PingTimeout)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production by default")
	}
}

func TestPasswordHashFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash")
	if err := os.WriteFile(path, []byte("$2a$10$abc\n"), 0o600); err != nil {
		t.Fatalf("write error: %v", err)
	}
	t.Setenv("LOCAL_ADMIN_PASSWORD_HASH_FILE", path)

	cfg := Load()
	if cfg.LocalAdminPasswordHash != "$2a$10$abc" {
		t.Fatalf("expected hash from file, got %q", cfg.LocalAdminPasswordHash)
	}
}
