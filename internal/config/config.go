// Package config loads the extmd CLI configuration from a YAML file and
// EXTMD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rgonek/extmd/compiler"
)

// Output formats understood by the CLI.
const (
	OutputHTML = "html"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the CLI configuration
type Config struct {
	Preset   string          `yaml:"preset,omitempty"`
	Output   string          `yaml:"output,omitempty"`
	LogLevel string          `yaml:"log_level,omitempty"`
	Compiler compiler.Config `yaml:"compiler"`
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Output {
	case "", OutputHTML, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be one of %s, %s, %s", OutputHTML, OutputJSON, OutputYAML)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not recognized", c.LogLevel)
	}

	return nil
}

// LoadFromEnv overlays environment variables onto the configuration
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("EXTMD_PRESET"); v != "" {
		c.Preset = v
	}
	if v := os.Getenv("EXTMD_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("EXTMD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("EXTMD_RAW_HTML"); v != "" {
		c.Compiler.RawHTML = compiler.RawHTMLPolicy(v)
	}
	if v := os.Getenv("EXTMD_SAFE"); v != "" {
		safe, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("EXTMD_SAFE: %w", err)
		}
		c.Compiler.Safe = safe
	}
	return nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "extmd", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "extmd", "config.yml")
}

// Save writes the configuration to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads configuration from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads config from file and overlays environment variables.
// A missing file yields an empty configuration. The second return value
// reports whether a file was read.
func LoadWithEnv(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	fromFile := err == nil
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fromFile, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fromFile, err
	}

	return cfg, fromFile, nil
}
