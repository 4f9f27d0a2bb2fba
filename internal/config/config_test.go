package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.AccessTTL() != 3*time.Hour {
		t.Errorf("AccessTTL = %v, expected 3h", cfg.JWT.AccessTTL())
	}
	if cfg.JWT.RefreshTTL() != 72*time.Hour {
		t.Errorf("RefreshTTL = %v, expected 72h", cfg.JWT.RefreshTTL())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, expected default", cfg.Redis.Addr)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
jwt:
  secret: "c2VjcmV0"
  access_ttl_ms: 60000
redis:
  addr: "redis:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "c2VjcmV0" {
		t.Errorf("Secret = %q, expected value from file", cfg.JWT.Secret)
	}
	if cfg.JWT.AccessTTL() != time.Minute {
		t.Errorf("AccessTTL = %v, expected 1m", cfg.JWT.AccessTTL())
	}
	// Keys absent from the file keep their defaults.
	if cfg.JWT.RefreshTTL() != 72*time.Hour {
		t.Errorf("RefreshTTL = %v, expected default 72h", cfg.JWT.RefreshTTL())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "ZnJvbS1lbnY=")
	t.Setenv("REDIS_ADDR", "envhost:6380")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWT.Secret != "ZnJvbS1lbnY=" {
		t.Errorf("Secret = %q, expected env override", cfg.JWT.Secret)
	}
	if cfg.Redis.Addr != "envhost:6380" {
		t.Errorf("Redis.Addr = %q, expected env override", cfg.Redis.Addr)
	}
}

func TestLoad_NonPositiveTTLBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
jwt:
  access_ttl_ms: -5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWT.AccessTTL() != 3*time.Hour {
		t.Errorf("AccessTTL = %v, expected default 3h", cfg.JWT.AccessTTL())
	}
}
