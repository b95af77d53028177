// Package config handles XDG directories, the optional config file and
// runtime settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"simpletodo/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "simpletodo"

	// ConfigFile is the optional TOML config filename.
	ConfigFile = "config.toml"

	// DefaultFlushTimeout bounds how long a command waits for its save.
	DefaultFlushTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataDir holds the storage slot files.
	DataDir string

	// StorageKey is the slot key of the task collection.
	// Empty means storage.DefaultKey.
	StorageKey string

	// FlushTimeout bounds the final save on exit.
	FlushTimeout time.Duration

	// Log configures the logger.
	Log logging.Options

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Ephemeral keeps tasks in memory only.
	Ephemeral bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/simpletodo or $HOME/.config/simpletodo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:          dir,
		DataDir:      DefaultDataDir(),
		FlushTimeout: DefaultFlushTimeout,
		Log:          logging.DefaultOptions(),
	}, nil
}

// Load creates a Config and applies, in order, the config file in the
// config directory and environment overrides.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(cfg.FilePath()); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(AppName, "data")
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// FilePath returns the path to the config file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogOptions returns the logger options, with Debug forcing debug level.
func (c *Config) LogOptions() logging.Options {
	opts := c.Log
	if c.Debug {
		opts.Level = "debug"
	}
	return opts
}
