package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WEB_API_BASE_URL", "https://api.bookvoyage.test")
	t.Setenv("WEB_ORIGINS", "https://bookvoyage.test, https://staging.bookvoyage.test")
	t.Setenv("WEB_LOGIN_RATE_LIMIT_PER_MINUTE", "7")
	t.Setenv("WEB_TOKEN_REFRESH_LEEWAY", "45s")

	path := writeConfig(t, `
port: "8090"
logLevel: "info"
apiBaseURL: "http://localhost:8080"
redisAddr: "localhost:6379"
loginRateLimitPerMinute: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "https://api.bookvoyage.test" {
		t.Fatalf("apiBaseURL = %q, want the env override", cfg.APIBaseURL)
	}
	if len(cfg.WebOrigins) != 2 || cfg.WebOrigins[1] != "https://staging.bookvoyage.test" {
		t.Fatalf("webOrigins = %v, want two trimmed entries", cfg.WebOrigins)
	}
	if cfg.LoginRateLimitPerMinute != 7 {
		t.Fatalf("loginRateLimitPerMinute = %d, want 7", cfg.LoginRateLimitPerMinute)
	}
	if cfg.TokenRefreshLeeway != "45s" {
		t.Fatalf("tokenRefreshLeeway = %q, want 45s", cfg.TokenRefreshLeeway)
	}
}

func TestLoadDefaultsAPIBaseURL(t *testing.T) {
	path := writeConfig(t, `
port: "8090"
redisAddr: "localhost:6379"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("apiBaseURL = %q, want default %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
}

func TestLoadRejectsMissingPort(t *testing.T) {
	path := writeConfig(t, `
redisAddr: "localhost:6379"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for missing port")
	}
}

func TestLoadRejectsMissingRedisAddr(t *testing.T) {
	path := writeConfig(t, `
port: "8090"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for missing redisAddr")
	}
}

func TestParseDuration(t *testing.T) {
	if d, err := ParseDuration("", 30*time.Second); err != nil || d != 30*time.Second {
		t.Fatalf("empty input expected the fallback, got %v, %v", d, err)
	}
	if d, err := ParseDuration("2m", 0); err != nil || d != 2*time.Minute {
		t.Fatalf("expected 2m, got %v, %v", d, err)
	}
	if _, err := ParseDuration("soon", 0); err == nil {
		t.Fatal("expected an error for a malformed duration")
	}
}
