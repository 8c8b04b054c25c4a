package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "glowpaper", cfg.AppName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.External.ForceLinear)
	assert.False(t, cfg.External.DisableSharedContext)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name = "test"
log_level = "debug"

[external]
force_linear = true
disable_shared_context = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.AppName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.External.ForceLinear)
	assert.True(t, cfg.External.DisableSharedContext)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glowpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "info"`), 0o644))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`log_level = "debug"`), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never observed")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowpaper.toml")
	w, err := NewWatcher(path, func(*Config) {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
