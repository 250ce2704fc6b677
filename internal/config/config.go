// Package config loads the crewctl user configuration from
// ~/.crewctl/config.yml with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config models config.yml.
type Config struct {
	Backend struct {
		Endpoint  string `yaml:"endpoint"`
		Token     string `yaml:"token"`
		TimeoutMs int    `yaml:"timeout_ms"`
	} `yaml:"backend"`
	Sync struct {
		ProjectIntervalSec int `yaml:"project_interval_sec"`
		HealthIntervalSec  int `yaml:"health_interval_sec"`
	} `yaml:"sync"`
	Journal struct {
		Path string `yaml:"path"`
	} `yaml:"journal"`
}

// Default returns a Config with sensible defaults. The endpoint default
// matches the backend's local dev port; intervals follow the observed
// 3-15s polling window.
func Default() Config {
	var c Config
	c.Backend.Endpoint = "http://localhost:8000"
	c.Backend.TimeoutMs = 10000
	c.Sync.ProjectIntervalSec = 5
	c.Sync.HealthIntervalSec = 15
	return c
}

// Path returns the config file location, honoring CREWCTL_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("CREWCTL_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".crewctl", "config.yml"), nil
}

// Load reads the config file if present, then applies env overrides.
// A missing file is not an error: defaults apply.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CREWCTL_ENDPOINT"); v != "" {
		cfg.Backend.Endpoint = v
	}
	if v := os.Getenv("CREWCTL_TOKEN"); v != "" {
		cfg.Backend.Token = v
	}
	if v := os.Getenv("CREWCTL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := os.Getenv("CREWCTL_JOURNAL"); v != "" {
		cfg.Journal.Path = v
	}
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Backend.Endpoint == "" {
		return fmt.Errorf("backend.endpoint is required")
	}
	if c.Backend.TimeoutMs <= 0 {
		return fmt.Errorf("backend.timeout_ms must be > 0")
	}
	if c.Sync.ProjectIntervalSec <= 0 || c.Sync.HealthIntervalSec <= 0 {
		return fmt.Errorf("sync intervals must be > 0")
	}
	return nil
}

// Save writes the config back to disk, creating the directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ProjectInterval returns the sync loop period.
func (c *Config) ProjectInterval() time.Duration {
	return time.Duration(c.Sync.ProjectIntervalSec) * time.Second
}

// HealthInterval returns the health poll period.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.Sync.HealthIntervalSec) * time.Second
}

// Timeout returns the per-call backend timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutMs) * time.Millisecond
}

// JournalPath returns the journal database location, defaulting next to
// the config file.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".crewctl", "crewctl.db"), nil
}
