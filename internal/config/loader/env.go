package loader

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/hardmode/internal/config/layer"
)

// DefaultEnvPrefix is the prefix of environment variables read as settings.
const DefaultEnvPrefix = "HARDMODE_"

// EnvLoader reads settings from environment variables.
//
// Every settings key has a short variable (HARDMODE_LOG_LEVEL) and a long
// one spelled after its path (HARDMODE_LOGGING_LEVEL). The short variable
// wins when both are set. Prefixed variables naming no settings key are
// ignored.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // variable -> settings key
}

// NewEnvLoader creates a loader for variables starting with prefix,
// including its trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom variable names.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "CONFIG_DIR":     KeyConfigDir,
		prefix + "MAIN_FILE":      KeyMainFile,
		prefix + "LOG_LEVEL":      KeyLogLevel,
		prefix + "LOG_FORMAT":     KeyLogFormat,
		prefix + "WATCH_DEBOUNCE": KeyDebounce,
		prefix + "DRY_RUN":        KeyDryRun,
	}
}

// AddMapping maps an extra variable to a settings key.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = key
}

// Source implements Loader.
func (l *EnvLoader) Source() layer.Source {
	return layer.SourceEnv
}

// Location implements Loader.
func (l *EnvLoader) Location() string {
	return l.prefix + "*"
}

// Load reads the environment. An empty value counts as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	settings := make(map[string]any)
	mapped := make(map[string]bool)

	for env, key := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			layer.SetByPath(settings, key, parseValue(key, val))
			mapped[key] = true
		}
	}

	for _, kv := range os.Environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, short := l.mapping[name]; short {
			continue
		}
		key := l.envToPath(name)
		if !slices.Contains(Keys, key) || mapped[key] {
			continue
		}
		layer.SetByPath(settings, key, parseValue(key, val))
	}

	return settings, nil
}

// envToPath turns HARDMODE_PATHS_CONFIG_DIR into paths.configDir: the first
// word is the section, the rest form a camelCase name.
func (l *EnvLoader) envToPath(env string) string {
	words := strings.Split(strings.ToLower(strings.TrimPrefix(env, l.prefix)), "_")
	if len(words) == 1 {
		return words[0]
	}

	var b strings.Builder
	b.WriteString(words[0])
	b.WriteByte('.')
	b.WriteString(words[1])
	for _, w := range words[2:] {
		if w != "" {
			b.WriteString(strings.ToUpper(w[:1]) + w[1:])
		}
	}
	return b.String()
}

// parseValue converts variable text into the type key expects. Text that
// does not parse stays a string so decoding can report it.
func parseValue(key, s string) any {
	switch key {
	case KeyDryRun:
		switch strings.ToLower(s) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	case KeyDebounce:
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ms
		}
	}
	return s
}
