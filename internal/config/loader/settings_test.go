package loader

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(WithFS(NewMemFS()), WithEnvPrefix("HARDMODE_TEST_NONE_"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if s.ConfigDir != "." {
		t.Errorf("ConfigDir = %q, want '.'", s.ConfigDir)
	}
	if s.MainFile != "config.yml" {
		t.Errorf("MainFile = %q, want 'config.yml'", s.MainFile)
	}
	if s.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", s.LogLevel)
	}
	if s.LogFormat != FormatText {
		t.Errorf("LogFormat = %q, want %q", s.LogFormat, FormatText)
	}
	if s.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", s.Debounce)
	}
	if s.DryRun {
		t.Error("DryRun should default to false")
	}
	if got := s.Origin(KeyConfigDir); got != "defaults" {
		t.Errorf("Origin(%s) = %q, want 'defaults'", KeyConfigDir, got)
	}
}

func TestLoadSettings_Precedence(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("hardmode.toml", `
[paths]
configDir = "from-file"
mainFile = "main.yml"

[logging]
level = "warn"

[watch]
debounce = 100
`)
	t.Setenv("HARDMODE_LOG_LEVEL", "debug")
	t.Setenv("HARDMODE_CONFIG_DIR", "from-env")

	s, err := LoadSettings(
		WithFS(memfs),
		WithFlags(map[string]any{KeyConfigDir: "from-flags"}),
	)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	tests := []struct {
		key    string
		got    any
		want   any
		origin string
	}{
		{KeyConfigDir, s.ConfigDir, "from-flags", "flags"},
		{KeyMainFile, s.MainFile, "main.yml", "file"},
		{KeyLogLevel, s.LogLevel, slog.LevelDebug, "environment"},
		{KeyDebounce, s.Debounce, 100 * time.Millisecond, "file"},
		{KeyLogFormat, s.LogFormat, FormatText, "defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, tt.got, tt.want)
			}
			if got := s.Origin(tt.key); got != tt.origin {
				t.Errorf("Origin(%s) = %q, want %q", tt.key, got, tt.origin)
			}
		})
	}

	if n := len(s.Layers()); n != 4 {
		t.Errorf("len(Layers()) = %d, want 4", n)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]any
	}{
		{"empty dir", map[string]any{KeyConfigDir: ""}},
		{"main file with separator", map[string]any{KeyMainFile: "sub/config.yml"}},
		{"bad level", map[string]any{KeyLogLevel: "loud"}},
		{"bad format", map[string]any{KeyLogFormat: "xml"}},
		{"bad debounce", map[string]any{KeyDebounce: "soon"}},
		{"negative debounce", map[string]any{KeyDebounce: "-1s"}},
		{"bad dry run", map[string]any{KeyDryRun: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(
				WithFS(NewMemFS()),
				WithEnvPrefix("HARDMODE_TEST_NONE_"),
				WithFlags(tt.flags),
			)
			if !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("LoadSettings() error = %v, want ErrInvalidSetting", err)
			}
		})
	}
}

func TestLoadSettings_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("custom.toml", "[paths\n")

	_, err := LoadSettings(WithFS(memfs), WithFile("custom.toml"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadSettings() error = %v, want *ParseError", err)
	}
	if perr.Path != "custom.toml" {
		t.Errorf("Path = %q, want 'custom.toml'", perr.Path)
	}
}
