// Package config loads optional user defaults for dux.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no config file exists. Callers can
// check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the config file name looked up inside the config directory.
const FileName = "dux.yaml"

// Config holds user defaults. Explicit command-line flags take precedence
// over every field.
type Config struct {
	// Output is the default output format (table or json).
	Output string `yaml:"output,omitempty"`
	// TopN is the default number of top results in statistics mode.
	TopN int `yaml:"top,omitempty"`
	// Excludes are default exclusion regexes for statistics mode.
	Excludes []string `yaml:"exclude,omitempty"`
	// MinSize is the default minimum file size (e.g. "1KB").
	MinSize string `yaml:"min_size,omitempty"`
}

// Load reads the config file from dir.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}

		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the directory searched for the config file:
// $XDG_CONFIG_HOME/dux, falling back to $HOME/.config/dux.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dux"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "dux"), nil
}
