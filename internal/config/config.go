// Package config loads settings from .env, the environment and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MYSTERYBOX"

// Store drivers
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Provider kinds
const (
	ProviderNone    = "none"
	ProviderHTTP    = "http"
	ProviderCopilot = "copilot"
)

// Config holds every setting of the server
type Config struct {
	Env        string           `mapstructure:"env"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Game       GameConfig       `mapstructure:"game"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Discord    DiscordConfig    `mapstructure:"discord"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type StoreConfig struct {
	// Driver is redis or postgres; Redis is always used for audit and rate limits
	Driver string `mapstructure:"driver"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type ProviderConfig struct {
	// Kind is none, http or copilot
	Kind    string        `mapstructure:"kind"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GameConfig struct {
	MaxProviderCallsPerDraw int           `mapstructure:"max_provider_calls_per_draw"`
	DrawTimeout             time.Duration `mapstructure:"draw_timeout"`
	MaxGuessLength          int           `mapstructure:"max_guess_length"`
}

type ModerationConfig struct {
	ExtraBlockedTerms []string `mapstructure:"extra_blocked_terms"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type AuditConfig struct {
	StreamMaxLen int64         `mapstructure:"stream_max_len"`
	SinkTimeout  time.Duration `mapstructure:"sink_timeout"`
}

type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	GuildID       string `mapstructure:"guild_id"`
	ChannelID     string `mapstructure:"channel_id"`
}

// IsDevelopment reports whether logs should be human readable
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DiscordEnabled reports whether the bot should be started
func (c *Config) DiscordEnabled() bool {
	return c.Discord.Token != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("log.level", "info")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)

	v.SetDefault("store.driver", StoreRedis)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("postgres.dsn", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 12*time.Hour)

	v.SetDefault("provider.kind", ProviderNone)
	v.SetDefault("provider.base_url", "https://api.openai.com/v1")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.timeout", 10*time.Second)

	v.SetDefault("game.max_provider_calls_per_draw", 50)
	v.SetDefault("game.draw_timeout", 60*time.Second)
	v.SetDefault("game.max_guess_length", 120)

	v.SetDefault("moderation.extra_blocked_terms", []string{})

	v.SetDefault("ratelimit.limit", 30)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("audit.stream_max_len", 10000)
	v.SetDefault("audit.sink_timeout", 3*time.Second)

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.channel_id", "")
}

// Load reads .env if present, then the optional config file, then MYSTERYBOX_* variables
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required values and enumerations
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (MYSTERYBOX_JWT_SECRET)")
	}

	switch c.Store.Driver {
	case StoreRedis:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres dsn is required when store driver is postgres (MYSTERYBOX_POSTGRES_DSN)")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Redis.Addr == "" {
		return errors.New("redis addr is required (MYSTERYBOX_REDIS_ADDR)")
	}

	switch c.Provider.Kind {
	case ProviderNone, ProviderCopilot:
	case ProviderHTTP:
		if c.Provider.BaseURL == "" || c.Provider.Model == "" {
			return errors.New("provider base url and model are required for the http provider")
		}
	default:
		return fmt.Errorf("unknown provider kind %q", c.Provider.Kind)
	}

	if c.DiscordEnabled() && c.Discord.ChannelID == "" {
		return errors.New("discord channel id is required when a discord token is set")
	}

	return nil
}
