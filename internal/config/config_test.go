package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, float32(0.1), cfg.Gemini.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.True(t, cfg.Upload.ClearTranscriptOnReplace)
	assert.Equal(t, "course", cfg.Upload.ClearScope)
	assert.Equal(t, 200, cfg.Retention.MaxMessagesPerCourse)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("server:\n  port: 9090\nupload:\n  clear_transcript_on_replace: false\n  clear_scope: all\nredis:\n  host: localhost\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Upload.ClearTranscriptOnReplace)
	assert.Equal(t, "all", cfg.Upload.ClearScope)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, 7070, cfg.Server.Port)
}
