// Package config loads nx.toml, the optional settings file of the nx
// command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	APP_NAME         = "nx"
	CONFIG_FILE_NAME = "nx.toml"

	DEFAULT_DEBOUNCE = 300 * time.Millisecond
)

type Config struct {
	Color       string   `toml:"color"`
	SearchPaths []string `toml:"search_paths"`
	Trace       Trace    `toml:"trace"`
	Watch       Watch    `toml:"watch"`

	// File the settings were read from, empty when defaults are in use.
	Source string `toml:"-"`
}

type Trace struct {
	Enabled   bool     `toml:"enabled"`
	Functions []string `toml:"functions"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	Exclude  []string      `toml:"exclude"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown setting %q", path, undecoded[0].String())
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path
	return &cfg, nil
}

// Resolve loads the explicit path when one is given. Otherwise the first
// existing file among ./nx.toml and <config dir>/nx/nx.toml is used, and
// defaults are returned when there is none.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	candidates := []string{CONFIG_FILE_NAME}
	if dir, err := ConfigDir(APP_NAME); err == nil {
		candidates = append(candidates, filepath.Join(dir, CONFIG_FILE_NAME))
	}

	for _, candidate := range candidates {
		cfg, err := Load(candidate)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return Default(), nil
}

// ConfigDir returns the per-user configuration directory of appName. It
// is not created.
func ConfigDir(appName string) (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory")
	}
	if os.Getenv("OS") == "Windows_NT" {
		return filepath.Join(os.Getenv("APPDATA"), appName), nil
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DEFAULT_DEBOUNCE
	}
}

func (cfg *Config) validate() error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q (expected auto, always or never)", cfg.Color)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("negative watch debounce %s", cfg.Watch.Debounce)
	}
	return nil
}
