package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/hardmode/internal/config/layer"
)

// Settings keys.
const (
	KeyConfigDir = "paths.configDir"
	KeyMainFile  = "paths.mainFile"
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
	KeyDebounce  = "watch.debounce"
	KeyDryRun    = "check.dryRun"
)

// Keys lists every settings key.
var Keys = []string{KeyConfigDir, KeyMainFile, KeyLogLevel, KeyLogFormat, KeyDebounce, KeyDryRun}

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidSetting is returned when a settings value can't be used.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings configures the hardmode tool itself.
type Settings struct {
	// ConfigDir is the configuration directory to resolve.
	ConfigDir string
	// MainFile is the canonical document's file name.
	MainFile string
	// LogLevel is the minimum level logged.
	LogLevel slog.Level
	// LogFormat is FormatText or FormatJSON.
	LogFormat string
	// Debounce is how long the watcher waits for changes to settle.
	Debounce time.Duration
	// DryRun renders repairs instead of writing them.
	DryRun bool

	layers *layer.Manager
}

// Origin returns the name of the layer that supplied a settings key.
func (s *Settings) Origin(key string) string {
	if s.layers == nil {
		return ""
	}
	return s.layers.Origin(key)
}

// Layers returns the layer stack the settings were merged from.
func (s *Settings) Layers() []*layer.Layer {
	if s.layers == nil {
		return nil
	}
	return s.layers.Layers()
}

// Merged returns the merged settings as a nested map.
func (s *Settings) Merged() map[string]any {
	if s.layers == nil {
		return map[string]any{}
	}
	return s.layers.Merge()
}

// Defaults returns the compiled-in settings as a nested map.
func Defaults() map[string]any {
	return map[string]any{
		"paths": map[string]any{
			"configDir": ".",
			"mainFile":  "config.yml",
		},
		"logging": map[string]any{
			"level":  "info",
			"format": FormatText,
		},
		"watch": map[string]any{
			"debounce": "250ms",
		},
		"check": map[string]any{
			"dryRun": false,
		},
	}
}

type options struct {
	fs        FileSystem
	file      string
	envPrefix string
	flags     map[string]any
}

// Option configures LoadSettings.
type Option func(*options)

// WithFS sets the file system used to read the settings file.
func WithFS(fsys FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithFile sets the settings file path.
func WithFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.file = path
		}
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithFlags sets command-line overrides keyed by settings path.
func WithFlags(flags map[string]any) Option {
	return func(o *options) {
		o.flags = flags
	}
}

// LoadSettings merges defaults, the settings file, the environment and
// flags, in increasing priority.
func LoadSettings(opts ...Option) (*Settings, error) {
	o := options{
		fs:        DefaultFS(),
		file:      DefaultFile,
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := layer.NewManager()
	m.Add(layer.New(layer.SourceDefaults, Defaults()))

	for _, ld := range []Loader{
		NewFileLoader(o.fs, o.file),
		NewEnvLoader(o.envPrefix),
	} {
		l, err := loadLayer(ld)
		if err != nil {
			return nil, err
		}
		if l != nil {
			m.Add(l)
		}
	}

	flags := make(map[string]any)
	for path, v := range o.flags {
		layer.SetByPath(flags, path, v)
	}
	m.Add(layer.New(layer.SourceFlags, flags))

	s, err := decode(m.Merge())
	if err != nil {
		return nil, err
	}
	s.layers = m
	return s, nil
}

// decode converts the merged map into Settings.
func decode(data map[string]any) (*Settings, error) {
	s := &Settings{}

	s.ConfigDir = stringAt(data, KeyConfigDir)
	s.MainFile = stringAt(data, KeyMainFile)
	if s.ConfigDir == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidSetting, KeyConfigDir)
	}
	if s.MainFile == "" || strings.ContainsAny(s.MainFile, `/\`) {
		return nil, fmt.Errorf("%w: %s must be a file name, got %q", ErrInvalidSetting, KeyMainFile, s.MainFile)
	}

	if err := s.LogLevel.UnmarshalText([]byte(stringAt(data, KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, KeyLogLevel, err)
	}

	s.LogFormat = strings.ToLower(stringAt(data, KeyLogFormat))
	if s.LogFormat != FormatText && s.LogFormat != FormatJSON {
		return nil, fmt.Errorf("%w: %s must be %s or %s, got %q", ErrInvalidSetting, KeyLogFormat, FormatText, FormatJSON, s.LogFormat)
	}

	d, err := durationAt(data, KeyDebounce)
	if err != nil {
		return nil, err
	}
	s.Debounce = d

	raw, _ := layer.GetByPath(data, KeyDryRun)
	switch v := raw.(type) {
	case bool:
		s.DryRun = v
	case nil:
	default:
		return nil, fmt.Errorf("%w: %s must be a boolean, got %v", ErrInvalidSetting, KeyDryRun, raw)
	}

	return s, nil
}

func stringAt(data map[string]any, key string) string {
	v, ok := layer.GetByPath(data, key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// durationAt reads a duration given as text ("250ms"), a parsed
// time.Duration or a whole number of milliseconds.
func durationAt(data map[string]any, key string) (time.Duration, error) {
	v, _ := layer.GetByPath(data, key)
	var d time.Duration
	switch val := v.(type) {
	case time.Duration:
		d = val
	case int64:
		d = time.Duration(val) * time.Millisecond
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
		}
		d = parsed
	default:
		return 0, fmt.Errorf("%w: %s must be a duration, got %v", ErrInvalidSetting, key, v)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidSetting, key)
	}
	return d, nil
}
