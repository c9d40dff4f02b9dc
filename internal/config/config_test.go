package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.True(t, cfg.Server.RateLimit.Enabled)
		assert.Equal(t, 5.0, cfg.Server.RateLimit.RPS)
		assert.Equal(t, 10, cfg.Server.RateLimit.Burst)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.False(t, cfg.RabbitMQ.Enabled)
		assert.Equal(t, "banking-engine", cfg.RabbitMQ.ExchangeName)
		assert.Equal(t, "account.notification", cfg.RabbitMQ.RoutingKey)
		assert.Equal(t, 5672, cfg.RabbitMQ.Port)

		assert.Equal(t, []string{"mobile", "laptop"}, cfg.Notification.Devices)

		assert.Equal(t, "0 0 1 * *", cfg.Interest.Schedule)
		assert.Equal(t, "savings", cfg.Interest.Strategy)
		assert.Equal(t, 30, cfg.Interest.TimeoutSeconds)
	})

	t.Run("Environment variables override defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9191")
		t.Setenv("INTEREST_STRATEGY", "vip")
		t.Setenv("SERVER_RATELIMIT_ENABLED", "false")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 9191, cfg.Server.Port)
		assert.Equal(t, "vip", cfg.Interest.Strategy)
		assert.False(t, cfg.Server.RateLimit.Enabled)
	})

	t.Run("Return error when config file is invalid", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [unterminated"), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(dir)
		assert.Error(t, err)
	})
}
