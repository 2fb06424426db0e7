package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const defaultCleanupIntervalMs = 60000

// Config holds store initialization parameters.
type Config struct {
	// CleanupIntervalMs is the period of the background sweep in
	// milliseconds. Zero falls back to the default (60000).
	CleanupIntervalMs int64 `json:"cleanup_interval_ms,omitempty"`
}

// DefaultConfig returns a Config with the default cleanup interval.
func DefaultConfig() Config {
	return Config{CleanupIntervalMs: defaultCleanupIntervalMs}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.CleanupIntervalMs > 0 {
		c.CleanupIntervalMs = source.CleanupIntervalMs
	}
}

// Interval returns the cleanup interval as a duration.
func (c *Config) Interval() time.Duration {
	if c.CleanupIntervalMs <= 0 {
		return defaultCleanupIntervalMs * time.Millisecond
	}
	return time.Duration(c.CleanupIntervalMs) * time.Millisecond
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
