// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// TimelineConfig holds timeline editing settings.
type TimelineConfig struct {
	DefaultDurationMinutes int    `toml:"default_duration_minutes"` // length of a block created on empty timeline
	DefaultBlockColor      string `toml:"default_block_color"`      // hex color stamped on new blocks
	MarkerStepHours        int    `toml:"marker_step_hours"`        // spacing of hour-ruler labels
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			DefaultDurationMinutes: 120,
			DefaultBlockColor:      "#89b4fa",
			MarkerStepHours:        3,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daygrid.db"
	}
	return filepath.Join(home, ".local", "share", "daygrid", "daygrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daygrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYGRID_DEFAULT_DURATION"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			cfg.Timeline.DefaultDurationMinutes = minutes
		}
	}
	if v := os.Getenv("DAYGRID_BLOCK_COLOR"); v != "" {
		cfg.Timeline.DefaultBlockColor = v
	}
	if v := os.Getenv("DAYGRID_MARKER_STEP"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			cfg.Timeline.MarkerStepHours = hours
		}
	}
	if v := os.Getenv("DAYGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	d := c.Timeline.DefaultDurationMinutes
	if d < 15 || d > 24*60 {
		return errors.New("default_duration_minutes must be between 15 and 1440")
	}
	if d%15 != 0 {
		return errors.New("default_duration_minutes must be a multiple of 15")
	}
	if c.Timeline.MarkerStepHours < 1 || c.Timeline.MarkerStepHours > 12 {
		return errors.New("marker_step_hours must be between 1 and 12")
	}
	if c.Timeline.DefaultBlockColor != "" && !isHexColor(c.Timeline.DefaultBlockColor) {
		return fmt.Errorf("default_block_color must be a #rrggbb color, got %q", c.Timeline.DefaultBlockColor)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// DefaultDurationHours returns the configured new-block duration in hours.
func (c *Config) DefaultDurationHours() float64 {
	return float64(c.Timeline.DefaultDurationMinutes) / 60
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
