// Package config handles configuration loading and validation for quovadis.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	State  StateConfig  `yaml:"state"`
	Theme  string       `yaml:"theme"`
}

// LayoutConfig controls how terminal width maps onto window size classes.
// Widths at or below CompactMaxWidth render compact, widths above
// ExpandedMinWidth render expanded, and everything between renders medium.
type LayoutConfig struct {
	CompactMaxWidth  int `yaml:"compact_max_width"`
	ExpandedMinWidth int `yaml:"expanded_min_width"`
}

// StateConfig controls navigation state persistence.
type StateConfig struct {
	// File is where the navigation tree is saved on quit and restored on
	// startup. Empty falls back to the XDG data path.
	File string `yaml:"file"`
	// Restore toggles loading File on startup.
	Restore bool `yaml:"restore"`
}

// Supported theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			CompactMaxWidth:  79,
			ExpandedMinWidth: 120,
		},
		State: StateConfig{
			Restore: true,
		},
		Theme: ThemeDark,
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Layout.CompactMaxWidth == 0 {
		c.Layout.CompactMaxWidth = defaults.Layout.CompactMaxWidth
	}
	if c.Layout.ExpandedMinWidth == 0 {
		c.Layout.ExpandedMinWidth = defaults.Layout.ExpandedMinWidth
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Layout.CompactMaxWidth < 1 {
		return fmt.Errorf("layout.compact_max_width must be at least 1")
	}

	if c.Layout.ExpandedMinWidth <= c.Layout.CompactMaxWidth {
		return fmt.Errorf("layout.expanded_min_width must be greater than layout.compact_max_width")
	}

	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("unknown theme %q (expected %s or %s)", c.Theme, ThemeDark, ThemeLight)
	}

	return nil
}
