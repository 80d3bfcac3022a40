// Package config handles configuration loading and validation for threadwatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// BaseURL is prefixed to "<id>.json" for every fetch.
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// UserAgent is sent only when set.
	UserAgent string `yaml:"user_agent"`

	AutoRefresh     bool `yaml:"auto_refresh"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		BaseURL:         "https://www.reddit.com/comments/",
		RequestTimeout:  10 * time.Second,
		AutoRefresh:     true,
		RefreshInterval: 30,
		LogLevel:        "info",
		LogFile:         filepath.Join(userConfigDir(), "threadwatch", "debug.log"),
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(userConfigDir(), "threadwatch", "config.yaml")
}

// Load reads configuration from path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
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

// applyDefaults fills values a config file blanked out.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = defaults.RefreshInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
