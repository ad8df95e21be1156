package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1915, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Game.KickCooldownDuration())
	assert.Equal(t, 100, cfg.Game.ChatLogCap)
	assert.Equal(t, 2*time.Second, cfg.Game.TrickDisplayBufferDuration())
	assert.Equal(t, 10*time.Minute, cfg.Game.LobbyTimeoutDuration())
	assert.Equal(t, "normal", cfg.Game.DefaultSpeed)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 8080
redis:
  addr: "redis:6379"
game:
  kick_cooldown: 15
  default_speed: blitz
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Second, cfg.Game.KickCooldownDuration())
	assert.Equal(t, "blitz", cfg.Game.DefaultSpeed)

	// 未指定的字段使用默认值
	assert.Equal(t, 100, cfg.Game.ChatLogCap)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
