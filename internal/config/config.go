package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store     StoreConfig
	Log       LogConfig
	Import    ImportConfig
	Recurring RecurringConfig
	UI        UIConfig
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	URL      string
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level string
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	CategoriesFile string `mapstructure:"categories_file"`
	DateOrder      string `mapstructure:"date_order"` // mdy or dmy
}

// RecurringConfig controls how templates are materialized.
type RecurringConfig struct {
	Suffix      string
	EndBoundary string `mapstructure:"end_boundary"`
	MaxPerCycle int    `mapstructure:"max_per_cycle"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string
}

// Location resolves Timezone, falling back to the local zone.
func (u UIConfig) Location() *time.Location {
	if u.Timezone == "" || u.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Path returns the config file location. TALLY_CONFIG overrides the default.
func Path() string {
	if p := os.Getenv("TALLY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tally", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.url", "bolt://"+filepath.Join(os.Getenv("HOME"), ".local", "share", "tally", "tally.db"))
	v.SetDefault("store.cache_ttl", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("import.categories_file", "")
	v.SetDefault("import.date_order", "mdy")
	v.SetDefault("recurring.suffix", " (Recurring)")
	v.SetDefault("recurring.end_boundary", "inclusive")
	v.SetDefault("recurring.max_per_cycle", 1)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "Local")
}

// Load reads configuration from .env, file and env. Env var overrides use prefix TALLY_.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(Path()); statErr == nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Recurring.MaxPerCycle < 1 {
		c.Recurring.MaxPerCycle = 1
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.url", cfg.Store.URL)
	v.Set("store.cache_ttl", cfg.Store.CacheTTL.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("import.categories_file", cfg.Import.CategoriesFile)
	v.Set("import.date_order", cfg.Import.DateOrder)
	v.Set("recurring.suffix", cfg.Recurring.Suffix)
	v.Set("recurring.end_boundary", cfg.Recurring.EndBoundary)
	v.Set("recurring.max_per_cycle", cfg.Recurring.MaxPerCycle)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
