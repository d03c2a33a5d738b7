package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigGetVaultPath(t *testing.T) {
	t.Run("named vault", func(t *testing.T) {
		cfg := &Config{
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetVaultPath("work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/work" {
			t.Errorf("expected '/path/to/work', got %q", path)
		}
	})

	t.Run("default vault", func(t *testing.T) {
		cfg := &Config{
			DefaultVault: "personal",
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetVaultPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/personal" {
			t.Errorf("expected '/path/to/personal', got %q", path)
		}
	})

	t.Run("vault not found", func(t *testing.T) {
		cfg := &Config{
			Vaults: map[string]string{
				"work": "/path/to/work",
			},
		}

		_, err := cfg.GetVaultPath("nonexistent")
		if err == nil {
			t.Error("expected error for nonexistent vault")
		}
	})

	t.Run("no default configured", func(t *testing.T) {
		cfg := &Config{}

		_, err := cfg.GetVaultPath("")
		if err == nil {
			t.Error("expected error when no default configured")
		}
	})
}

func TestConfigDebounce(t *testing.T) {
	tests := []struct {
		name     string
		ms       int
		expected time.Duration
	}{
		{name: "unset", ms: 0, expected: 0},
		{name: "negative treated as unset", ms: -5, expected: 0},
		{name: "configured", ms: 350, expected: 350 * time.Millisecond},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Search: SearchConfig{DebounceMs: tt.ms}}
			if got := cfg.Debounce(); got != tt.expected {
				t.Errorf("Debounce() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfigSnippetContext(t *testing.T) {
	tests := []struct {
		name     string
		runes    int
		expected int
	}{
		{name: "unset", runes: 0, expected: 0},
		{name: "negative treated as unset", runes: -3, expected: 0},
		{name: "too narrow clamps to 10", runes: 4, expected: 10},
		{name: "minimum kept", runes: 10, expected: 10},
		{name: "configured", runes: 80, expected: 80},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Search: SearchConfig{ContextRunes: tt.runes}}
			if got := cfg.SnippetContext(); got != tt.expected {
				t.Errorf("SnippetContext() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConfigGetEditor(t *testing.T) {
	t.Run("explicit editor wins", func(t *testing.T) {
		t.Setenv("EDITOR", "vi")
		cfg := &Config{Editor: "hx"}
		if got := cfg.GetEditor(); got != "hx" {
			t.Errorf("expected 'hx', got %q", got)
		}
	})

	t.Run("falls back to EDITOR", func(t *testing.T) {
		t.Setenv("EDITOR", "vi")
		cfg := &Config{}
		if got := cfg.GetEditor(); got != "vi" {
			t.Errorf("expected 'vi', got %q", got)
		}
	})
}

func TestLoadFrom(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
default_vault = "notes"
editor = "hx"

[vaults]
notes = "/home/user/notes"
work = "/home/user/work"

[search]
debounce_ms = 150
context_runes = 30
ignore_dirs = ["archive"]

[ui]
accent = "#7aa2f7"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.DefaultVault != "notes" {
			t.Errorf("DefaultVault = %q", cfg.DefaultVault)
		}
		if cfg.Vaults["work"] != "/home/user/work" {
			t.Errorf("Vaults[work] = %q", cfg.Vaults["work"])
		}
		if cfg.Search.DebounceMs != 150 {
			t.Errorf("DebounceMs = %d", cfg.Search.DebounceMs)
		}
		if cfg.Search.ContextRunes != 30 {
			t.Errorf("ContextRunes = %d", cfg.Search.ContextRunes)
		}
		if len(cfg.Search.IgnoreDirs) != 1 || cfg.Search.IgnoreDirs[0] != "archive" {
			t.Errorf("IgnoreDirs = %v", cfg.Search.IgnoreDirs)
		}
		if cfg.UI.Accent != "#7aa2f7" {
			t.Errorf("Accent = %q", cfg.UI.Accent)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadFrom(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}
