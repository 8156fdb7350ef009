package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starterforten.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, DefaultSQLitePath, cfg.Store.SQLitePath)
	assert.Equal(t, DefaultRedisAddr, cfg.Store.Redis.Addr)
	assert.Equal(t, 60*time.Second, cfg.Game.Countdown)
	assert.Equal(t, 10*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 5, cfg.Game.BonusPoints)
	assert.Equal(t, 10, cfg.Game.HistoryWindow)
	assert.False(t, cfg.Game.Mute)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
questions: bank.yaml
store:
  driver: redis
  key: quiz:stats
  redis:
    addr: redis:6379
    db: 2
game:
  countdown: 30s
  bonus_points: 10
  mute: true
`)

	t.Setenv("STARTERFORTEN_GAME_BONUS_POINTS", "7")
	t.Setenv("STARTERFORTEN_STORE_REDIS_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bank.yaml", cfg.QuestionsPath)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "quiz:stats", cfg.Store.Key)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "secret", cfg.Store.Redis.Password)
	assert.Equal(t, 30*time.Second, cfg.Game.Countdown)
	assert.Equal(t, 7, cfg.Game.BonusPoints)
	assert.True(t, cfg.Game.Mute)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STARTERFORTEN_STORE_DRIVER", "postgres")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "store: [oops")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateDiscord(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateDiscord())

	cfg.Discord.Token = "token"
	assert.Error(t, cfg.ValidateDiscord())

	cfg.Discord.AppID = "app"
	assert.NoError(t, cfg.ValidateDiscord())
}
