package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment overrides.
const (
	EnvDataDir  = "SIMPLETODO_DATA_DIR"
	EnvLogLevel = "SIMPLETODO_LOG_LEVEL"
)

// fileConfig mirrors config.toml. Pointer fields distinguish "unset"
// from zero values.
type fileConfig struct {
	DataDir      *string  `toml:"data_dir"`
	StorageKey   *string  `toml:"storage_key"`
	FlushTimeout *string  `toml:"flush_timeout"`
	Log          *fileLog `toml:"log"`
}

type fileLog struct {
	Level      *string `toml:"level"`
	Format     *string `toml:"format"`
	Timestamps *bool   `toml:"timestamps"`
}

// loadFile applies path on top of c. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("loading config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if fc.DataDir != nil {
		c.DataDir = resolveDataDir(*fc.DataDir, c.Dir)
	}
	if fc.StorageKey != nil {
		key := strings.TrimSpace(*fc.StorageKey)
		if key == "" {
			return fmt.Errorf("loading config file %s: storage_key is empty", path)
		}
		c.StorageKey = key
	}
	if fc.FlushTimeout != nil {
		d, err := time.ParseDuration(*fc.FlushTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("loading config file %s: invalid flush_timeout: %q", path, *fc.FlushTimeout)
		}
		c.FlushTimeout = d
	}
	if fc.Log != nil {
		if fc.Log.Level != nil {
			c.Log.Level = *fc.Log.Level
		}
		if fc.Log.Format != nil {
			c.Log.Format = *fc.Log.Format
		}
		if fc.Log.Timestamps != nil {
			c.Log.ReportTimestamp = *fc.Log.Timestamps
		}
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = resolveDataDir(v, "")
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// resolveDataDir expands ~ and $VARS. Relative paths are taken relative
// to base when base is set.
func resolveDataDir(p, base string) string {
	p = expandPath(strings.TrimSpace(p))
	if p == "" {
		return DefaultDataDir()
	}
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// expandPath expands home directory and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
