// Package config loads the optional cloudwatcher config file. Command-line
// flags always win over file values, which win over defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors ~/.cloudwatcher/config.toml.
type Config struct {
	Region       string   `toml:"region"`
	Refresh      string   `toml:"refresh"`
	Lookback     string   `toml:"lookback"`
	FetchTimeout string   `toml:"fetch_timeout"`
	Timezone     string   `toml:"timezone"`
	Output       string   `toml:"output"`
	NoColor      bool     `toml:"no_color"`
	Truncate     bool     `toml:"truncate"`
	StreamPrefix string   `toml:"stream_prefix"`
	Groups       []string `toml:"groups"`
}

const (
	DefaultRefresh      = 10 * time.Second
	DefaultLookback     = 10 * time.Minute
	DefaultFetchTimeout = 30 * time.Second
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Refresh:      DefaultRefresh.String(),
		Lookback:     DefaultLookback.String(),
		FetchTimeout: DefaultFetchTimeout.String(),
		Timezone:     "Local",
		Output:       "text",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cloudwatcher", "config.toml")
}

// Load reads the config file at path, layered over the defaults. A missing
// file is not an error: the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RefreshInterval parses the refresh setting, falling back to the default on
// an empty or malformed value.
func (c *Config) RefreshInterval() time.Duration {
	return parseDurationOr(c.Refresh, DefaultRefresh)
}

// LookbackWindow parses the lookback setting.
func (c *Config) LookbackWindow() time.Duration {
	return parseDurationOr(c.Lookback, DefaultLookback)
}

// FetchTimeoutDuration parses the per-fetch timeout setting.
func (c *Config) FetchTimeoutDuration() time.Duration {
	return parseDurationOr(c.FetchTimeout, DefaultFetchTimeout)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
