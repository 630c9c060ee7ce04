// Package config loads bot settings from the environment, an optional .env
// file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig   `mapstructure:"discord"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	AppID   string `mapstructure:"app_id"`
	GuildID string `mapstructure:"guild_id"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the
// in-memory repositories.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig points at a rules catalog. Empty uses the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig bounds interactions per user
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
}

// envKeys maps config keys to the environment variables that set them
var envKeys = map[string]string{
	"discord.token":         "DISCORD_TOKEN",
	"discord.app_id":        "DISCORD_APP_ID",
	"discord.guild_id":      "DISCORD_GUILD_ID",
	"redis.url":             "REDIS_URL",
	"logging.level":         "LOG_LEVEL",
	"logging.format":        "LOG_FORMAT",
	"catalog.path":          "CATALOG_PATH",
	"rate_limit.per_minute": "RATE_LIMIT_PER_MINUTE",
}

// Options controls where Load looks for settings
type Options struct {
	// EnvFiles are loaded into the process environment first. Missing
	// files are ignored.
	EnvFiles []string

	// ConfigFile is an optional YAML file. Environment variables win over
	// values in it.
	ConfigFile string

	// SkipDiscord relaxes the Discord credential checks for commands that
	// never connect
	SkipDiscord bool
}

// Load reads configuration and validates it
func Load(opts Options) (*Config, error) {
	for _, f := range opts.EnvFiles {
		// a missing .env is normal outside local development
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v, opts.SkipDiscord)
}

// LoadFromViper builds a Config from an already configured viper instance
func LoadFromViper(v *viper.Viper, skipDiscord bool) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(skipDiscord); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate(skipDiscord bool) error {
	var errs []string

	if !skipDiscord {
		if c.Discord.Token == "" {
			errs = append(errs, "DISCORD_TOKEN is required")
		}
		if c.Discord.AppID == "" {
			errs = append(errs, "DISCORD_APP_ID is required")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or console, got %q", c.Logging.Format))
	}
	if c.RateLimit.PerMinute < 0 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimit.PerMinute))
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("rate_limit.per_minute", 30)
}
