package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gamesapp.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", cfg.GetServerAddress())
	require.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

game {
  hand_size      = 7
  min_players    = 2
  open_hands     = false
  eviction_delay = "5m"
  invite_ttl     = "30m"
}
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())

	settings := cfg.GameConfig()
	require.Equal(t, 7, settings.HandSize)
	require.Equal(t, 2, settings.MinPlayers)
	require.False(t, settings.OpenHandsAllowed)
	require.Equal(t, 5*time.Minute, settings.EvictionDelay)
	require.Equal(t, 30*time.Minute, settings.InviteTTL)
}

func TestLoadConfigBadHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Game.EvictionDelay = "soon"
	require.Error(t, cfg.Validate())
}

func TestGameConfigKeepsDefaultsWhenUnset(t *testing.T) {
	cfg := DefaultConfig()
	settings := cfg.GameConfig()
	require.Equal(t, 5, settings.HandSize)
	require.True(t, settings.OpenHandsAllowed)
	require.Equal(t, 20*time.Minute, settings.EvictionDelay)
}
