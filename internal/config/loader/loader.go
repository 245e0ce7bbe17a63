// Package loader reads hardmode's own settings.
//
// Settings come from four layers: compiled-in defaults, the hardmode.toml
// file, HARDMODE_* environment variables and command-line flags. Later
// layers override earlier ones.
package loader

import (
	"os"

	"github.com/dshills/hardmode/internal/config/layer"
)

// Loader reads one settings source into a nested map.
type Loader interface {
	// Load returns nil, nil when the source does not exist.
	Load() (map[string]any, error)

	// Source names the layer the settings belong to.
	Source() layer.Source

	// Location describes where the settings were read from, for origin
	// reports.
	Location() string
}

// FileSystem reads settings files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system's file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// loadLayer runs a loader and wraps its result in a layer. A source that
// does not exist yields no layer.
func loadLayer(ld Loader) (*layer.Layer, error) {
	data, err := ld.Load()
	if err != nil || data == nil {
		return nil, err
	}
	l := layer.New(ld.Source(), data)
	l.Path = ld.Location()
	return l, nil
}
