package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "PORT", "BIND_ADDR", "DATABASE_PATH", "SESSION_SECRET", "SESSION_IDLE_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabasePath != "./blogapp.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.SessionIdleTimeout != time.Hour {
		t.Errorf("SessionIdleTimeout = %v, want 1h", cfg.SessionIdleTimeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	yaml := "port: 9000\ndatabase_path: /tmp/file.db\nsession_idle_timeout_minutes: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want env override 9090", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/file.db" {
		t.Errorf("DatabasePath = %q, want file value", cfg.DatabasePath)
	}
	if cfg.SessionIdleTimeout != 5*time.Minute {
		t.Errorf("SessionIdleTimeout = %v, want 5m", cfg.SessionIdleTimeout)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric PORT")
	}
}
