package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"robotblocks/internal/toolchain"
)

const (
	appName     = "robotblocks"
	fileVersion = 1
)

// Config is the optional user configuration file.
type Config struct {
	Version   int `yaml:"version"`
	Toolchain struct {
		Launcher []string `yaml:"launcher"`
		Pip      []string `yaml:"pip"`
	} `yaml:"toolchain"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	DataDir string `yaml:"data_dir"`
}

// Commands returns the configured toolchain commands, falling back to the
// platform defaults for anything unset.
func (c *Config) Commands() toolchain.Commands {
	cmds := toolchain.DefaultCommands()
	if len(c.Toolchain.Launcher) > 0 {
		cmds.Launcher = c.Toolchain.Launcher
	}
	if len(c.Toolchain.Pip) > 0 {
		cmds.Pip = c.Toolchain.Pip
	}
	return cmds
}

// LogLevel returns the configured level name, defaulting to "info".
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// DataDirectory returns where the settings database and log file live.
func (c *Config) DataDirectory() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}

// DefaultPath is ~/.config/robotblocks/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// DefaultDataDir is ~/.local/share/robotblocks.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Version: fileVersion}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Version != fileVersion {
		return nil, fmt.Errorf("unsupported config.yaml version: %d", cfg.Version)
	}

	return cfg, nil
}
