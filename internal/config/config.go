// Package config handles configuration loading for parsfx.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/omidrezab/parsfx/pkg/models"
)

// Config represents the complete application configuration.
type Config struct {
	Symbols   []string        `mapstructure:"symbols"    yaml:"symbols"`
	Market    MarketConfig    `mapstructure:"market"     yaml:"market"`
	RateTable RateTableConfig `mapstructure:"rate_table" yaml:"rate_table"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"   yaml:"snapshot"`
	HTTP      HTTPConfig      `mapstructure:"http"       yaml:"http"`
	News      NewsConfig      `mapstructure:"news"       yaml:"news"`
	Logging   LoggingConfig   `mapstructure:"logging"    yaml:"logging"`
}

// MarketConfig holds the free-market JSON API settings.
type MarketConfig struct {
	URL    string `mapstructure:"url"     yaml:"url"`
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// RateTableConfig holds the central-bank HTML rate table settings.
type RateTableConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// SnapshotConfig holds the prior-run snapshot file settings.
type SnapshotConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// HTTPConfig holds shared HTTP client settings.
type HTTPConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// NewsConfig holds the headlines feed settings.
type NewsConfig struct {
	Feeds []string `mapstructure:"feeds" yaml:"feeds"`
	Limit int      `mapstructure:"limit" yaml:"limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.parsfx/config.yaml (home directory)
//  3. /etc/parsfx/config.yaml (system)
//
// Environment variables override config file values.
// Format: PARSFX_<SECTION>_<KEY>, e.g., PARSFX_MARKET_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".parsfx"))
	v.AddConfigPath("/etc/parsfx")

	v.SetEnvPrefix("PARSFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("PARSFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Codes returns the tracked symbol set as typed currency codes.
func (c *Config) Codes() []models.Code {
	codes := make([]models.Code, 0, len(c.Symbols))
	for _, s := range c.Symbols {
		codes = append(codes, models.Code(strings.ToUpper(strings.TrimSpace(s))))
	}
	return codes
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Tracked symbol defaults
	v.SetDefault("symbols", []string{"USD", "EUR", "AED", "CNY"})

	// Source defaults
	v.SetDefault("market.url", "https://BrsApi.ir/Api/Market/Gold_Currency.php")
	v.SetDefault("rate_table.url", "https://fxmarketrate.cbi.ir/")

	// Snapshot defaults
	v.SetDefault("snapshot.path", "rates.json")

	// HTTP defaults
	v.SetDefault("http.timeout_sec", 30)

	// News defaults
	v.SetDefault("news.feeds", []string{
		"https://financialtribune.com/feed",
		"https://www.tehrantimes.com/rss",
	})
	v.SetDefault("news.limit", 15)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("PARSFX_MARKET_API_KEY"); key != "" {
		cfg.Market.APIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
