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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, 60*time.Second, cfg.Game.WinCleanupDelay())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
game:
  win_cleanup_delay_sec: 5
logging:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Game.WinCleanupDelay())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OONO_SERVER_PORT", "9100")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::: not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestClientDefaults(t *testing.T) {
	cfg, err := loadClientFrom(filepath.Join(t.TempDir(), "client.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval())
}

func TestClientSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "client.yaml")

	cfg, err := loadClientFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SaveServerURL("http://game.example:8000"))

	reloaded, err := loadClientFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://game.example:8000", reloaded.ServerURL)
	assert.Equal(t, 500, reloaded.PollIntervalMs)
}
