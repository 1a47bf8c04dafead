// Package config reads snoosift's environment configuration. Per-invocation
// options (target, limit, export format) come from flags; the environment
// carries the knobs that rarely change between runs.
package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds environment-driven settings.
type Config struct {
	// LogLevel for the structured logger (SNOOSIFT_LOG_LEVEL, default warn).
	LogLevel log.Level
	// DelayMin/DelayMax bound the politeness delay between listing fetches
	// (SNOOSIFT_DELAY_MIN / SNOOSIFT_DELAY_MAX, e.g. "500ms", "3s").
	DelayMin time.Duration
	DelayMax time.Duration
	// ExportDir is where export files are written (SNOOSIFT_EXPORT_DIR,
	// default current directory).
	ExportDir string
}

// Load reads configuration from the environment, applying defaults for
// anything unset or unparsable.
func Load() Config {
	cfg := Config{
		LogLevel:  log.WarnLevel,
		DelayMin:  1 * time.Second,
		DelayMax:  5 * time.Second,
		ExportDir: ".",
	}

	if lvl := os.Getenv("SNOOSIFT_LOG_LEVEL"); lvl != "" {
		if parsed, err := log.ParseLevel(lvl); err == nil {
			cfg.LogLevel = parsed
		}
	}
	cfg.DelayMin = loadDuration("SNOOSIFT_DELAY_MIN", cfg.DelayMin)
	cfg.DelayMax = loadDuration("SNOOSIFT_DELAY_MAX", cfg.DelayMax)
	if cfg.DelayMax < cfg.DelayMin {
		cfg.DelayMax = cfg.DelayMin
	}
	if dir := os.Getenv("SNOOSIFT_EXPORT_DIR"); dir != "" {
		cfg.ExportDir = dir
	}

	return cfg
}

func loadDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
