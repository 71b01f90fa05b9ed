// Package config loads rpick settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is matched by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// ThemeConfig overrides palette colors by tcell color name ("blue") or hex ("#ff8800").
type ThemeConfig struct {
	Directory   string `yaml:"directory"`
	File        string `yaml:"file"`
	Symlink     string `yaml:"symlink"`
	SelectionBg string `yaml:"selection_bg"`
	SelectionFg string `yaml:"selection_fg"`
	Match       string `yaml:"match"`
}

// AppConfig holds user settings.
type AppConfig struct {
	StartDir      string      `yaml:"start_dir"`
	DebugLog      string      `yaml:"debug_log"`
	DoubleClickMs int         `yaml:"double_click_ms"`
	OpenGraceMs   int         `yaml:"open_grace_ms"`
	Watch         *bool       `yaml:"watch"`
	Theme         ThemeConfig `yaml:"theme"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	watch := true
	return &AppConfig{
		DoubleClickMs: 300,
		OpenGraceMs:   2000,
		Watch:         &watch,
	}
}

// DoubleClick returns the double-click window.
func (c *AppConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// OpenGrace returns how long to wait for an open dispatch to start.
func (c *AppConfig) OpenGrace() time.Duration {
	return time.Duration(c.OpenGraceMs) * time.Millisecond
}

// WatchEnabled reports whether filesystem watching is on.
func (c *AppConfig) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// Validate checks numeric ranges and color names.
func (c *AppConfig) Validate() error {
	if c.DoubleClickMs < 50 || c.DoubleClickMs > 2000 {
		return fmt.Errorf("%w: double_click_ms must be within 50..2000, got %d", ErrInvalidConfig, c.DoubleClickMs)
	}
	if c.OpenGraceMs < 0 || c.OpenGraceMs > 30000 {
		return fmt.Errorf("%w: open_grace_ms must be within 0..30000, got %d", ErrInvalidConfig, c.OpenGraceMs)
	}
	colors := map[string]string{
		"theme.directory":    c.Theme.Directory,
		"theme.file":         c.Theme.File,
		"theme.symlink":      c.Theme.Symlink,
		"theme.selection_bg": c.Theme.SelectionBg,
		"theme.selection_fg": c.Theme.SelectionFg,
		"theme.match":        c.Theme.Match,
	}
	for key, name := range colors {
		if name == "" || strings.EqualFold(name, "default") {
			continue
		}
		if tcell.GetColor(name) == tcell.ColorDefault {
			return fmt.Errorf("%w: %s: unknown color %q", ErrInvalidConfig, key, name)
		}
	}
	return nil
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	return filepath.Join(getConfigDir(), "rpick", "config.yaml")
}

func getConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return "."
}

// LoadConfig reads configPath, or the default locations when it is empty. A
// missing default file yields DefaultConfig; an explicitly named file must
// exist.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string
	explicit := configPath != ""
	if explicit {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		base := filepath.Join(getConfigDir(), "rpick")
		paths = []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- user-selected config file
		if err != nil {
			if os.IsNotExist(err) && !explicit {
				continue
			}
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
		return Parse(data)
	}
	return DefaultConfig(), nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*AppConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Watch == nil {
		cfg.Watch = DefaultConfig().Watch
	}
	if cfg.StartDir != "" {
		expanded, err := expandPath(cfg.StartDir)
		if err != nil {
			return DefaultConfig(), err
		}
		cfg.StartDir = expanded
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = os.ExpandEnv(strings.TrimSpace(path))
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
