package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("MYSTERYBOX_JWT_SECRET", "secret")
	t.Setenv("MYSTERYBOX_GAME_MAX_PROVIDER_CALLS_PER_DRAW", "10")
	t.Setenv("MYSTERYBOX_RATELIMIT_WINDOW", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.JWT.Secret)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Game.MaxProviderCallsPerDraw)
	assert.Equal(t, 60*time.Second, cfg.Game.DrawTimeout)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, ProviderNone, cfg.Provider.Kind)
	assert.False(t, cfg.DiscordEnabled())
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("MYSTERYBOX_JWT_SECRET", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
store:
  driver: postgres
postgres:
  dsn: postgres://localhost/mysterybox
moderation:
  extra_blocked_terms: ["spam", "golpe"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"spam", "golpe"}, cfg.Moderation.ExtraBlockedTerms)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("MYSTERYBOX_JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:    StoreConfig{Driver: StoreRedis},
			Redis:    RedisConfig{Addr: "localhost:6379"},
			JWT:      JWTConfig{Secret: "secret"},
			Provider: ProviderConfig{Kind: ProviderNone},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = StorePostgres }, wantErr: "postgres dsn"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: "unknown store driver"},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider.Kind = "llama" }, wantErr: "unknown provider"},
		{name: "http provider without model", mutate: func(c *Config) { c.Provider.Kind = ProviderHTTP; c.Provider.BaseURL = "http://x" }, wantErr: "base url and model"},
		{name: "discord without channel", mutate: func(c *Config) { c.Discord.Token = "token" }, wantErr: "discord channel id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	logger := NewLogger(&Config{Log: LogConfig{Level: "warn"}})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = NewLogger(&Config{Log: LogConfig{Level: "nonsense"}})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
