package cli

import (
	"runtime/debug"
	"testing"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "devel"},
		{"(devel)", "devel"},
		{"v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		if got := normalizeVersion(tt.input); got != tt.expected {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCurrentVersionInfoWithoutBuildInfo(t *testing.T) {
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	t.Cleanup(func() { readBuildInfo = orig })

	info := currentVersionInfo()
	if info.Version != "devel" {
		t.Errorf("expected devel version, got %q", info.Version)
	}
	if info.ModulePath != defaultModulePath {
		t.Errorf("expected default module path, got %q", info.ModulePath)
	}
}

func TestBuildSetting(t *testing.T) {
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
		},
	}

	if got := buildSetting(info, "vcs.revision"); got != "abc123" {
		t.Errorf("buildSetting = %q", got)
	}
	if got := buildSetting(info, "missing"); got != "" {
		t.Errorf("expected empty for missing key, got %q", got)
	}
	if got := buildSetting(nil, "vcs.revision"); got != "" {
		t.Errorf("expected empty for nil info, got %q", got)
	}
}
