package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// unsetEnv clears HOMENET_ variables for the test and restores them after
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		name := EnvPrefix + "_" + key
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	unsetEnv(t, "API_URL", "STORE", "STORE_PATH", "DATABASE_URL", "HTTP_TIMEOUT", "ALERT_POLL_INTERVAL", "DEVSERVER_ADDR")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("unexpected api url: %s", cfg.APIURL)
	}
	if cfg.Store != StoreFile {
		t.Errorf("unexpected store: %s", cfg.Store)
	}
	if filepath.Base(cfg.StorePath) != "state.json" || !strings.Contains(cfg.StorePath, ".homenet") {
		t.Errorf("unexpected store path: %s", cfg.StorePath)
	}
	if cfg.HTTPTimeout != 30*time.Second || cfg.AlertPollInterval != time.Minute {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.DevServerAddr != ":8000" {
		t.Errorf("unexpected devserver addr: %s", cfg.DevServerAddr)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	unsetEnv(t, "HTTP_TIMEOUT", "DATABASE_URL")
	t.Setenv("HOMENET_API_URL", "http://api.test:9000")
	t.Setenv("HOMENET_STORE", "SQLite")
	t.Setenv("HOMENET_STORE_PATH", "/tmp/homenet.db")
	t.Setenv("HOMENET_ALERT_POLL_INTERVAL", "5s")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.APIURL != "http://api.test:9000" {
		t.Errorf("api url override failed, got %s", cfg.APIURL)
	}
	if cfg.Store != StoreSQLite || cfg.StorePath != "/tmp/homenet.db" {
		t.Errorf("store override failed, got %s %s", cfg.Store, cfg.StorePath)
	}
	if cfg.AlertPollInterval != 5*time.Second {
		t.Errorf("poll interval override failed, got %s", cfg.AlertPollInterval)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Store: "memory", HTTPTimeout: time.Second, AlertPollInterval: time.Second}, false},
		{"sqlite default path", Config{Store: "sqlite", HTTPTimeout: time.Second, AlertPollInterval: time.Second}, false},
		{"postgres without dsn", Config{Store: "postgres", HTTPTimeout: time.Second, AlertPollInterval: time.Second}, true},
		{"postgres with dsn", Config{Store: "postgres", DatabaseURL: "postgres://x", HTTPTimeout: time.Second, AlertPollInterval: time.Second}, false},
		{"unknown store", Config{Store: "redis", HTTPTimeout: time.Second, AlertPollInterval: time.Second}, true},
		{"zero timeout", Config{Store: "memory", AlertPollInterval: time.Second}, true},
		{"zero poll interval", Config{Store: "memory", HTTPTimeout: time.Second}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.ResolveDefaults()
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResolveDefaults() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.name == "sqlite default path" && filepath.Base(cfg.StorePath) != "state.db" {
				t.Errorf("unexpected sqlite path: %s", cfg.StorePath)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.InfoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLogLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
