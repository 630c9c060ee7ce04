package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envKeys {
		t.Setenv(env, "")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "12")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Equal(t, "app", cfg.Discord.AppID)
	assert.Empty(t, cfg.Discord.GuildID)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 12, cfg.RateLimit.PerMinute)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadReportsEveryMissingKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN is required")
	assert.Contains(t, err.Error(), "DISCORD_APP_ID is required")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoadSkipDiscord(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Options{SkipDiscord: true})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv("DISCORD_TOKEN"))
	require.NoError(t, os.Unsetenv("DISCORD_APP_ID"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISCORD_TOKEN=from-file\nDISCORD_APP_ID=app-file\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("DISCORD_TOKEN")
		_ = os.Unsetenv("DISCORD_APP_ID")
	})

	cfg, err := Load(Options{EnvFiles: []string{path, filepath.Join(t.TempDir(), "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Discord.Token)
	assert.Equal(t, "app-file", cfg.Discord.AppID)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "othership.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
discord:
  token: file-token
  app_id: file-app
logging:
  format: console
catalog:
  path: /etc/othership/catalog.yaml
`), 0o600))

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Discord.Token)
	assert.Equal(t, "file-app", cfg.Discord.AppID)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/etc/othership/catalog.yaml", cfg.Catalog.Path)
}

func TestLoadFromViperRejectsNegativeRateLimit(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("rate_limit.per_minute", -1)

	_, err := LoadFromViper(v, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}
