package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "file::memory:?cache=shared" {
		t.Errorf("expected in-memory DSN, got %s", cfg.Database.DSN)
	}
	if cfg.Captcha.Length != 6 {
		t.Errorf("expected captcha length 6, got %d", cfg.Captcha.Length)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expected JWT expire 24h, got %d", cfg.JWT.ExpireHour)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port, got %s", cfg.Server.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  host: 127.0.0.1
  port: "9090"
  mode: release
database:
  driver: sqlite
  dsn: "file:test.db"
jwt:
  secret: test-secret
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("expected test-secret, got %s", cfg.JWT.Secret)
	}
	// unset fields fall back to defaults
	if cfg.Captcha.Length != 6 {
		t.Errorf("expected captcha length default, got %d", cfg.Captcha.Length)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expected expire hour default, got %d", cfg.JWT.ExpireHour)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("expected env port 7777, got %s", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("expected env secret, got %s", cfg.JWT.Secret)
	}
}
