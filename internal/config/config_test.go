package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults when no file exists", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, v, err := Load("")
		require.NoError(t, err)
		require.NotNil(t, v)

		assert.Equal(t, "mock", cfg.Provider.Backend)
		assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
		assert.Equal(t, "mpv", cfg.Player.Backend)
		assert.Equal(t, 3, cfg.Provider.MaxRetries)
		assert.Equal(t, uint32(5), cfg.Provider.Breaker.FailureThreshold)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "provider:\n  backend: http\n  base_url: http://media.local:8000\nsearch:\n  debounce: 150ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, _, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http", cfg.Provider.Backend)
		assert.Equal(t, "http://media.local:8000", cfg.Provider.BaseURL)
		assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("player:\n  backend: mpv\n"), 0644))
		t.Setenv("REEL_PLAYER_BACKEND", "browser")

		cfg, _, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "browser", cfg.Player.Backend)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("provider:\n  backend: ftp\n"), 0644))

		_, _, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider.backend")
	})
}

func TestSaveDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveDefaultConfig(path))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Provider.Backend, cfg.Provider.Backend)
	assert.Equal(t, Defaults().Search.Debounce, cfg.Search.Debounce)
}

func TestDirs(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	require.NoError(t, InitializeDirs())
	assert.DirExists(t, filepath.Join(base, "config", "reel"))
	assert.DirExists(t, filepath.Join(base, "data", "reel"))
	assert.DirExists(t, filepath.Join(base, "state", "reel"))
}

func TestInitLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reel.log")
	logger, err := InitLogger(&LoggingConfig{Level: "warn", File: path, Format: "json", MaxSize: 1})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "region", "movies")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"region":"movies"`)

	SetLogLevel("debug")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
	SetLogLevel("info")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}
