package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GITOVERIT_CONFIG"

// ThemeConfig selects the color theme of the table and progress display.
type ThemeConfig struct {
	Name string `toml:"name"` // preset family: default, dracula, nord, gruvbox, catppuccin, none
	Mode string `toml:"mode"` // "auto", "light" or "dark"

	// Individual color overrides, applied on top of the preset
	Primary string `toml:"primary"`
	Accent  string `toml:"accent"`
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Muted   string `toml:"muted"`
	Normal  string `toml:"normal"`
	Info    string `toml:"info"`
	Warning string `toml:"warning"`
}

// Config holds the gitoverit configuration. Command line flags override
// every value.
type Config struct {
	Roots         []string    `toml:"roots"`          // scanned when no directories are given
	Workers       *int        `toml:"workers"`        // nil picks a count from the CPU cores
	Fetch         bool        `toml:"fetch"`          // fetch remotes before reading status
	Sort          string      `toml:"sort"`           // "mtime", "author" or "none"
	Reverse       bool        `toml:"reverse"`        // invert the sort order
	DirtyOnly     bool        `toml:"dirty_only"`     // hide clean repositories
	Columns       string      `toml:"columns"`        // column spec applied to the defaults
	Errors        string      `toml:"errors"`         // "hide", "short" or "full"
	ActivityScope string      `toml:"activity_scope"` // "tracked" or "all"
	Theme         ThemeConfig `toml:"theme"`
}

// Defaults for unset values.
const (
	DefaultSort          = "mtime"
	DefaultErrors        = "short"
	DefaultActivityScope = "tracked"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Sort:          DefaultSort,
		Errors:        DefaultErrors,
		ActivityScope: DefaultActivityScope,
	}
}

// Path returns the config file location: $GITOVERIT_CONFIG if set,
// otherwise ~/.config/gitoverit/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitoverit", "config.toml"), nil
}

// Load reads the config file at [Path].
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields Default() without
// error. Values left out of the file keep their defaults. Every invalid
// value is reported, not only the first.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown key %q in config file %s", undecoded[0].String(), path)
	}

	for i, root := range cfg.Roots {
		expanded, err := expandPath(root)
		if err != nil {
			return Default(), fmt.Errorf("expand roots[%d]: %w", i, err)
		}
		cfg.Roots[i] = expanded
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}
