// Package config loads and validates the optional .scriptor YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deixis/scriptor"
)

// DefaultHistorySize is the number of recent runs kept in memory.
const DefaultHistorySize = 5

// Config holds the parsed .scriptor configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version     int           `yaml:"version"`
	RawStrategy string        `yaml:"strategy"` // posix | powershell | embedded
	Verbose     bool          `yaml:"verbose"`  // default verbosity for runs
	RawTimeout  string        `yaml:"timeout"`  // e.g. "5m", "30s"; empty means unlimited
	History     HistoryConfig `yaml:"history"`
}

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	Size int    `yaml:"size"` // in-memory entries (default: 5)
	Dir  string `yaml:"dir"`  // on-disk record directory (default: temp dir)
}

// Strategy resolves the configured execution strategy, falling back to the
// platform default when unset.
func (c *Config) Strategy() (scriptor.Strategy, error) {
	return scriptor.StrategyByName(c.RawStrategy)
}

// Timeout returns the configured supervision timeout. Zero means none:
// the executor itself never times out, so an unset timeout lets a run
// block indefinitely.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// HistorySize returns the configured in-memory history size or the default.
func (c *Config) HistorySize() int {
	if c.History.Size > 0 {
		return c.History.Size
	}
	return DefaultHistorySize
}

// Load reads the .scriptor file from dir. If no .scriptor file exists,
// a default Config is returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".scriptor")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .scriptor: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .scriptor: %w", err)
	}
	if _, err := cfg.Strategy(); err != nil {
		return nil, fmt.Errorf("validating .scriptor: %w", err)
	}
	return cfg, nil
}
