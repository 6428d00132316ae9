package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RefreshPath != "/auth/refresh/" {
		t.Errorf("unexpected refresh path %q", cfg.RefreshPath)
	}
	if cfg.CountdownTicks != 10 {
		t.Errorf("expected 10 countdown ticks, got %d", cfg.CountdownTicks)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("expected 1s tick interval, got %v", cfg.TickInterval)
	}
	if cfg.AccessTokenKey == "" || cfg.CartKey == "" {
		t.Error("expected default storage key names")
	}
}

func TestLoad_EnvOverridesStorageKeys(t *testing.T) {
	t.Setenv("JOTICKET_KEY_ACCESS_TOKEN", "shop2:access")
	t.Setenv("JOTICKET_KEY_CART", "shop2:cart")
	t.Setenv("JOTICKET_COUNTDOWN_TICKS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AccessTokenKey != "shop2:access" {
		t.Errorf("expected env key name, got %q", cfg.AccessTokenKey)
	}
	if cfg.CartKey != "shop2:cart" {
		t.Errorf("expected env key name, got %q", cfg.CartKey)
	}
	if cfg.CountdownTicks != 5 {
		t.Errorf("expected 5 ticks from env, got %d", cfg.CountdownTicks)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
api:
  base_url: https://api.example.com
  timeout: 3s
session:
  countdown_ticks: 7
  tick_interval: 500ms
storage_keys:
  access_token: file:access
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.CountdownTicks != 7 || cfg.TickInterval != 500*time.Millisecond {
		t.Errorf("unexpected session settings: %d ticks, %v interval", cfg.CountdownTicks, cfg.TickInterval)
	}
	if cfg.AccessTokenKey != "file:access" {
		t.Errorf("unexpected access key %q", cfg.AccessTokenKey)
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := Load("/nonexistent/config.yml"); err == nil {
		t.Fatal("expected error for unreadable config path")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("JOTICKET_API_TIMEOUT", "not-a-duration")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
