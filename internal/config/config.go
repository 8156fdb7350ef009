// Package config loads settings from a .env file, an optional YAML file and
// STARTERFORTEN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "STARTERFORTEN_"

// Store drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Defaults applied to zero values after loading
const (
	DefaultDriver        = DriverSQLite
	DefaultSQLitePath    = "data/starterforten.db"
	DefaultRedisAddr     = "localhost:6379"
	DefaultCountdown     = 60 * time.Second
	DefaultTickInterval  = 10 * time.Millisecond
	DefaultBonusPoints   = 5
	DefaultHistoryWindow = 10
)

type Config struct {
	// QuestionsPath is a JSON or YAML question bank; the built-in bank is used when empty
	QuestionsPath string `yaml:"questions" env:"QUESTIONS"`

	Store struct {
		Driver     string `yaml:"driver" env:"DRIVER"`
		Key        string `yaml:"key" env:"KEY"`
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
		Redis      struct {
			Addr     string `yaml:"addr" env:"ADDR"`
			Password string `yaml:"password" env:"PASSWORD"`
			DB       int    `yaml:"db" env:"DB"`
		} `yaml:"redis" envPrefix:"REDIS_"`
	} `yaml:"store" envPrefix:"STORE_"`

	Game struct {
		Countdown     time.Duration `yaml:"countdown" env:"COUNTDOWN"`
		TickInterval  time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
		BonusPoints   int           `yaml:"bonus_points" env:"BONUS_POINTS"`
		HistoryWindow int           `yaml:"history_window" env:"HISTORY_WINDOW"`
		Mute          bool          `yaml:"mute" env:"MUTE"`
		Seed          int64         `yaml:"seed" env:"SEED"`
	} `yaml:"game" envPrefix:"GAME_"`

	Discord struct {
		Token   string `yaml:"token" env:"TOKEN"`
		AppID   string `yaml:"app_id" env:"APP_ID"`
		GuildID string `yaml:"guild_id" env:"GUILD_ID"`
	} `yaml:"discord" envPrefix:"DISCORD_"`
}

// Load reads the configuration. A missing .env file or a missing YAML file
// at path is not an error; an unreadable or invalid one is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DefaultDriver
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = DefaultSQLitePath
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = DefaultRedisAddr
	}
	if c.Game.Countdown <= 0 {
		c.Game.Countdown = DefaultCountdown
	}
	if c.Game.TickInterval <= 0 {
		c.Game.TickInterval = DefaultTickInterval
	}
	if c.Game.BonusPoints <= 0 {
		c.Game.BonusPoints = DefaultBonusPoints
	}
	if c.Game.HistoryWindow <= 0 {
		c.Game.HistoryWindow = DefaultHistoryWindow
	}
}

// Validate checks the settings every command relies on
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Game.TickInterval > c.Game.Countdown {
		return fmt.Errorf("tick interval %s is longer than the countdown %s", c.Game.TickInterval, c.Game.Countdown)
	}
	return nil
}

// ValidateDiscord checks the settings the bot needs
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return errors.New("discord token is required (" + EnvPrefix + "DISCORD_TOKEN)")
	}
	if c.Discord.AppID == "" {
		return errors.New("discord application id is required (" + EnvPrefix + "DISCORD_APP_ID)")
	}
	return nil
}
