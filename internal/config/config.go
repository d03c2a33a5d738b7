// Package config handles global muninn configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global muninn configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults map).
	DefaultVault string `toml:"default_vault"`

	// Vaults is a map of vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// Editor is the editor to use for opening notes (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// Search controls scan behavior.
	Search SearchConfig `toml:"search"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// SearchConfig controls how interactive searches behave.
type SearchConfig struct {
	// DebounceMs is how long input must settle before a scan starts,
	// in milliseconds. Zero means the built-in default (200ms).
	DebounceMs int `toml:"debounce_ms"`

	// ContextRunes is how many runes of context to keep on each side of a
	// match in snippets. Zero means the built-in default (50).
	ContextRunes int `toml:"context_runes"`

	// IgnoreDirs lists extra directory names excluded from scans,
	// in addition to the built-in set (.git, .trash, node_modules, ...).
	IgnoreDirs []string `toml:"ignore_dirs"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and match highlights.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Debounce returns the configured debounce delay.
// Negative values are treated as unset.
func (c *Config) Debounce() time.Duration {
	if c.Search.DebounceMs <= 0 {
		return 0
	}
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// SnippetContext returns the configured snippet context width in runes.
// Zero or negative values are treated as unset; values below 10 are
// raised to 10.
func (c *Config) SnippetContext() int {
	if c.Search.ContextRunes <= 0 {
		return 0
	}
	if c.Search.ContextRunes < 10 {
		return 10
	}
	return c.Search.ContextRunes
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

// GetVaultPath returns the path for a named vault.
// If name is empty, returns the default vault path.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}

	if c.Vaults != nil {
		if path, ok := c.Vaults[name]; ok {
			return path, nil
		}
	}

	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	return "", fmt.Errorf("vault '%s' not found in config", name)
}

// GetDefaultVaultPath returns the default vault path.
func (c *Config) GetDefaultVaultPath() (string, error) {
	return c.GetVaultPath("")
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/muninn/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	// Prefer XDG-style ~/.config/muninn/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "muninn", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "muninn", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}
