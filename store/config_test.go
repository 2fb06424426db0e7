package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kmoz000/shared-memory-store/store"
)

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.CleanupIntervalMs != 60000 {
		t.Errorf("CleanupIntervalMs = %d, want 60000", cfg.CleanupIntervalMs)
	}
	if got := cfg.Interval(); got != time.Minute {
		t.Errorf("Interval() = %v, want 1m", got)
	}
}

func TestConfig_Merge(t *testing.T) {
	tests := []struct {
		name   string
		source store.Config
		want   int64
	}{
		{name: "zero source keeps default", source: store.Config{}, want: 60000},
		{name: "positive source overrides", source: store.Config{CleanupIntervalMs: 500}, want: 500},
		{name: "negative source ignored", source: store.Config{CleanupIntervalMs: -1}, want: 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := store.DefaultConfig()
			cfg.Merge(&tt.source)
			if cfg.CleanupIntervalMs != tt.want {
				t.Errorf("CleanupIntervalMs = %d, want %d", cfg.CleanupIntervalMs, tt.want)
			}
		})
	}
}

func TestConfig_Interval_ZeroFallsBack(t *testing.T) {
	cfg := store.Config{}
	if got := cfg.Interval(); got != time.Minute {
		t.Errorf("Interval() = %v, want 1m fallback for zero config", got)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"cleanup_interval_ms": 250}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CleanupIntervalMs != 250 {
		t.Errorf("CleanupIntervalMs = %d, want 250", cfg.CleanupIntervalMs)
	}
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CleanupIntervalMs != 60000 {
		t.Errorf("CleanupIntervalMs = %d, want default 60000", cfg.CleanupIntervalMs)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := store.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadConfig() on a missing file should return an error")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := store.LoadConfig(path); err == nil {
		t.Error("LoadConfig() on invalid JSON should return an error")
	}
}
