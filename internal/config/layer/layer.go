// Package layer stacks the sources of hardmode's own settings.
//
// Each layer holds a nested map. Higher priority layers override values from
// lower priority layers when the manager merges them.
package layer

// Layer is one source of settings. Layers with a higher Priority win.
type Layer struct {
	Name     string
	Priority int
	Source   Source
	// Path is where the layer was read from, if anywhere.
	Path string
	Data map[string]any
}

// New creates a layer named after source with its standard priority.
// A nil data map is replaced by an empty one.
func New(source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
	}
}

// Source is where a settings layer came from, in increasing precedence.
type Source uint8

const (
	SourceDefaults Source = iota
	SourceFile            // hardmode.toml
	SourceEnv             // HARDMODE_* variables
	SourceFlags
)

// Priority returns the standard priority of layers from s, spaced 100
// apart.
func (s Source) Priority() int {
	return int(s) * 100
}

func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}
