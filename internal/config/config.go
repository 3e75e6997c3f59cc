// Package config loads the application configuration from
// ~/.config/gridiron/config.toml, falling back to defaults when the file
// does not exist. The two weight policies (championship profile, ranking
// blend) live here so the standard numbers are adjustable without a
// rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/scraper"
)

// Config represents the application configuration.
type Config struct {
	// Scrape holds source URLs and politeness settings.
	Scrape ScrapeConfig `toml:"scrape"`

	// Data holds local storage paths.
	Data DataConfig `toml:"data"`

	// Profile holds the championship-profile blend weights.
	Profile features.ProfileWeights `toml:"profile"`

	// Rank holds the final composite ranking weights.
	Rank predict.RankWeights `toml:"rank"`

	// App holds general application settings.
	App AppConfig `toml:"app"`
}

// ScrapeConfig contains scraping source settings.
type ScrapeConfig struct {
	StandingsURL string `toml:"standings_url"` // Per-year standings page, %d = season year
	ChampionsURL string `toml:"champions_url"` // Super Bowl winners page
	Delay        string `toml:"delay"`         // Pause between page fetches (e.g. "3s")
}

// DataConfig contains local data paths.
type DataConfig struct {
	Database  string `toml:"database"`   // SQLite database path
	OutputDir string `toml:"output_dir"` // Default directory for CSV/chart output
}

// AppConfig contains general application settings.
type AppConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scrape: ScrapeConfig{
			StandingsURL: scraper.DefaultStandingsURL,
			ChampionsURL: scraper.DefaultChampionsURL,
			Delay:        "3s",
		},
		Data: DataConfig{
			Database:  "~/.config/gridiron/gridiron.db",
			OutputDir: ".",
		},
		Profile: features.DefaultProfileWeights(),
		Rank:    predict.DefaultRankWeights(),
		App: AppConfig{
			LogLevel: "info",
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gridiron", "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from an explicit path, returning the
// default config if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names.
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to disk, creating the config directory if
// needed.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Scrape.Delay); err != nil {
		return fmt.Errorf("invalid scrape delay %q: %w", c.Scrape.Delay, err)
	}
	if c.Scrape.StandingsURL == "" {
		return fmt.Errorf("standings URL cannot be empty")
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("profile weights: %w", err)
	}
	return nil
}

// GetScrapeDelay returns the scrape delay as a duration.
func (c *Config) GetScrapeDelay() (time.Duration, error) {
	return time.ParseDuration(c.Scrape.Delay)
}
