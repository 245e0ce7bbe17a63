package loader

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/hardmode/internal/config/layer"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("HARDMODE_CONFIG_DIR", "/srv/plugins/ExtraHardMode")
	t.Setenv("HARDMODE_LOG_LEVEL", "debug")
	t.Setenv("HARDMODE_WATCH_DEBOUNCE", "1s")
	t.Setenv("HARDMODE_DRY_RUN", "yes")

	settings, err := NewEnvLoader("HARDMODE_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"paths":   map[string]any{"configDir": "/srv/plugins/ExtraHardMode"},
		"logging": map[string]any{"level": "debug"},
		"watch":   map[string]any{"debounce": time.Second},
		"check":   map[string]any{"dryRun": true},
	}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoader_LongNames(t *testing.T) {
	t.Setenv("HARDMODE_PATHS_MAIN_FILE", "worlds.yml")
	t.Setenv("HARDMODE_LOGGING_LEVEL", "warn")
	t.Setenv("HARDMODE_LOG_LEVEL", "error")
	t.Setenv("HARDMODE_CUSTOM_SETTING", "ignored")

	settings, err := NewEnvLoader("HARDMODE_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, _ := layer.GetByPath(settings, KeyMainFile); val != "worlds.yml" {
		t.Errorf("%s = %v, want worlds.yml", KeyMainFile, val)
	}
	if val, _ := layer.GetByPath(settings, KeyLogLevel); val != "error" {
		t.Errorf("%s = %v, want the short variable's value", KeyLogLevel, val)
	}
	if _, ok := layer.GetByPath(settings, "custom.setting"); ok {
		t.Error("unknown variables should be ignored")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("HARDMODE_")

	tests := []struct {
		env  string
		want string
	}{
		{"HARDMODE_PATHS_CONFIG_DIR", "paths.configDir"},
		{"HARDMODE_LOGGING_LEVEL", "logging.level"},
		{"HARDMODE_SIMPLE", "simple"},
		{"HARDMODE_WATCH_DEBOUNCE_MILLIS", "watch.debounceMillis"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key  string
		in   string
		want any
	}{
		{KeyDryRun, "true", true},
		{KeyDryRun, "ON", true},
		{KeyDryRun, "1", true},
		{KeyDryRun, "off", false},
		{KeyDryRun, "0", false},
		{KeyDryRun, "maybe", "maybe"},
		{KeyDebounce, "500ms", 500 * time.Millisecond},
		{KeyDebounce, "750", int64(750)},
		{KeyDebounce, "soon", "soon"},
		{KeyConfigDir, "1", "1"},
		{KeyLogLevel, "true", "true"},
		{KeyMainFile, "", ""},
	}

	for _, tt := range tests {
		if got := parseValue(tt.key, tt.in); got != tt.want {
			t.Errorf("parseValue(%s, %q) = %v (%T), want %v (%T)", tt.key, tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping("HARDMODE_", nil)
	loader.AddMapping("HM_DIR", KeyConfigDir)

	t.Setenv("HM_DIR", "/tmp/worlds")

	settings, _ := loader.Load()
	if val, ok := layer.GetByPath(settings, KeyConfigDir); !ok || val != "/tmp/worlds" {
		t.Errorf("%s = %v, want '/tmp/worlds'", KeyConfigDir, val)
	}
	if loader.Source() != layer.SourceEnv || loader.Location() != "HARDMODE_*" {
		t.Errorf("Source/Location = %v/%q", loader.Source(), loader.Location())
	}
}
