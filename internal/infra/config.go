package infra

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Placeholder values shipped in .env templates. Credentials left at these
// values disable chat delivery instead of producing a broken login.
const (
	tokenPlaceholder   = "your_discord_bot_token_here"
	channelPlaceholder = "your_discord_channel_id_here"
)

// Config holds all application settings. Non-secret knobs can come from a
// yaml file; secrets are environment-only and override whatever was loaded.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Port           int   `yaml:"port"`
		BodyLimitBytes int64 `yaml:"body_limit_bytes"`
		RateLimit      struct {
			WindowSec   int `yaml:"window_sec"`
			MaxRequests int `yaml:"max_requests"`
		} `yaml:"rate_limit"`
		ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
		WebhookSecret      string `yaml:"-"`
	} `yaml:"server"`

	Discord struct {
		Token           string `yaml:"-"`
		ChannelID       string `yaml:"-"`
		ReadyTimeoutSec int    `yaml:"ready_timeout_sec"`
	} `yaml:"discord"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the baseline settings used when no yaml file exists.
// The defaults mirror the service contract: port 3000, 10 MiB bodies,
// 100 requests per 15 minutes per client address.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "tvalert"
	cfg.App.Version = "dev"
	cfg.Server.Port = 3000
	cfg.Server.BodyLimitBytes = 10 << 20
	cfg.Server.RateLimit.WindowSec = 15 * 60
	cfg.Server.RateLimit.MaxRequests = 100
	cfg.Server.ShutdownTimeoutSec = 10
	cfg.Discord.ReadyTimeoutSec = 30
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads the optional yaml file, then applies environment
// overrides. A missing file is not an error; the service can run on
// environment variables alone.
func LoadConfig(path string) (*Config, error) {
	// Best effort: a missing .env file is normal outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("No .env file loaded", slog.Any("error", err))
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only operation.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BodyLimitBytes <= 0 {
		return errors.New("body limit must be positive")
	}
	if c.Server.RateLimit.WindowSec <= 0 || c.Server.RateLimit.MaxRequests <= 0 {
		return errors.New("rate limit window and ceiling must be positive")
	}
	if c.Discord.ReadyTimeoutSec <= 0 {
		return errors.New("discord ready timeout must be positive")
	}
	return nil
}

// DiscordEnabled reports whether chat delivery is configured. Placeholder
// credentials count as absent so that a copied template never attempts a
// gateway login.
func (c *Config) DiscordEnabled() bool {
	if c.Discord.Token == "" || c.Discord.Token == tokenPlaceholder {
		return false
	}
	if c.Discord.ChannelID == "" || c.Discord.ChannelID == channelPlaceholder {
		return false
	}
	return true
}

// overrideWithEnv applies environment variables over the loaded settings.
func overrideWithEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		} else {
			slog.Warn("Ignoring non-numeric PORT", slog.String("value", port))
		}
	}
	if secret := os.Getenv("WEBHOOK_SECRET"); secret != "" {
		cfg.Server.WebhookSecret = secret
	}
	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}
	if channel := os.Getenv("DISCORD_CHANNEL_ID"); channel != "" {
		cfg.Discord.ChannelID = channel
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
