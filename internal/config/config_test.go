package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_PATH", "HTTP_ADDRESS", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "users.db" || cfg.HTTP.Address != ":5000" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTP.Mode != "release" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Log.Level != zerolog.InfoLevel || cfg.Log.Format != "json" || cfg.Database.Debug {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("HTTP_ADDRESS", ":1234")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GIN_MODE", "test")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "test.db" || cfg.HTTP.Address != ":1234" || cfg.HTTP.Mode != "test" {
		t.Fatalf("overrides not applied: %s", cfg)
	}
	if !cfg.Database.Debug {
		t.Fatalf("debug log level should enable SQL logging")
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SHUTDOWN_TIMEOUT_SECONDS": "soon",
		"LOG_LEVEL":                "loud",
		"LOG_FORMAT":               "xml",
		"GIN_MODE":                 "turbo",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DB_PATH=fromfile.db\nHTTP_ADDRESS=:7000\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// Real environment wins over the file.
	t.Setenv("HTTP_ADDRESS", ":8000")
	t.Cleanup(func() { os.Unsetenv("DB_PATH") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "fromfile.db" {
		t.Fatalf("DB_PATH not read from file: %s", cfg)
	}
	if cfg.HTTP.Address != ":8000" {
		t.Fatalf("env should win over file: %s", cfg)
	}
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}
