package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"DowntimeIncome/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Table struct {
		// Source is "builtin", a file path or an http(s) URL of a CSV table.
		Source      string `yaml:"source" env:"INCOME_TABLE_SOURCE"`
		RefreshCron string `yaml:"refresh_cron" env:"INCOME_TABLE_REFRESH_CRON"`
	} `yaml:"table"`
	Rules struct {
		Variant  string                   `yaml:"variant" env:"INCOME_VARIANT"`
		Variants map[string]VariantConfig `yaml:"variants"`
	} `yaml:"rules"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
	Cache struct {
		// Size is the result memo capacity; 0 turns the memo off.
		Size *int `yaml:"size" env:"INCOME_CACHE_SIZE"`
	} `yaml:"cache"`
	Proxy string `yaml:"proxy" env:"HTTPS_PROXY"`
}

const defaultCacheSize = 256

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Defaults
	if cfg.Table.Source == "" {
		cfg.Table.Source = "builtin"
	}
	if cfg.Rules.Variant == "" {
		cfg.Rules.Variant = "pathfinder"
	}
	if cfg.Cache.Size == nil {
		size := defaultCacheSize
		cfg.Cache.Size = &size
	}

	return cfg, nil
}

// Validate checks the configuration is usable by any binary.
func (c *Config) Validate() error {
	if _, err := c.Variant(); err != nil {
		return err
	}
	if c.Table.RefreshCron != "" && c.Table.Source == "builtin" {
		return fmt.Errorf("table.refresh_cron requires an external table.source")
	}
	if c.CacheSize() < 0 {
		return fmt.Errorf("cache.size must not be negative")
	}
	return nil
}

// ValidateTelegram checks the fields the chat bot needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

// Variant resolves the active rule set, applying any YAML overrides.
func (c *Config) Variant() (model.Variant, error) {
	return ResolveVariant(c.Rules.Variant, c.Rules.Variants)
}

// CacheSize returns the configured memo capacity, or the default when unset.
func (c *Config) CacheSize() int {
	if c.Cache.Size == nil {
		return defaultCacheSize
	}
	return *c.Cache.Size
}
