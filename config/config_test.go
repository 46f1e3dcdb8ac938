package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/ember/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ember.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval())
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeFile(t, "tick_interval_ms: 5\nworkers: 3\npreset: fountain\nstore:\n  object: scenes\n")
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.TickIntervalMs)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "fountain", cfg.Preset)
		assert.Equal(t, "ember", cfg.Store.AppName)
		assert.Equal(t, "scenes", cfg.Store.Object)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "workers: [1, 2\n"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "tick_interval_ms: 0\nworkers: -2\nstore:\n  app_name: \"\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tick_interval_ms")
		assert.Contains(t, err.Error(), "workers")
		assert.Contains(t, err.Error(), "store.app_name")
	})
}
