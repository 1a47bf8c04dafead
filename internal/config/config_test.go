package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SNOOSIFT_LOG_LEVEL", "")
	t.Setenv("SNOOSIFT_DELAY_MIN", "")
	t.Setenv("SNOOSIFT_DELAY_MAX", "")
	t.Setenv("SNOOSIFT_EXPORT_DIR", "")

	cfg := Load()

	assert.Equal(t, log.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 1*time.Second, cfg.DelayMin)
	assert.Equal(t, 5*time.Second, cfg.DelayMax)
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SNOOSIFT_LOG_LEVEL", "debug")
	t.Setenv("SNOOSIFT_DELAY_MIN", "500ms")
	t.Setenv("SNOOSIFT_DELAY_MAX", "2s")
	t.Setenv("SNOOSIFT_EXPORT_DIR", "/tmp/exports")

	cfg := Load()

	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.DelayMin)
	assert.Equal(t, 2*time.Second, cfg.DelayMax)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
}

func TestLoadClampsInvertedDelayBounds(t *testing.T) {
	t.Setenv("SNOOSIFT_DELAY_MIN", "10s")
	t.Setenv("SNOOSIFT_DELAY_MAX", "2s")

	cfg := Load()
	assert.Equal(t, cfg.DelayMin, cfg.DelayMax)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("SNOOSIFT_LOG_LEVEL", "chatty")
	t.Setenv("SNOOSIFT_DELAY_MIN", "soon")
	t.Setenv("SNOOSIFT_DELAY_MAX", "-3s")

	cfg := Load()
	assert.Equal(t, log.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 1*time.Second, cfg.DelayMin)
	assert.Equal(t, 5*time.Second, cfg.DelayMax)
}
