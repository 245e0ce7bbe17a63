package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/hardmode/internal/config/layer"
)

// DefaultFile is the settings file name looked up in the working directory.
const DefaultFile = "hardmode.toml"

// fileSettings is the schema of the settings file. Pointer fields tell
// absent keys from zero values so only keys the file sets form its layer.
type fileSettings struct {
	Paths struct {
		ConfigDir *string `toml:"configDir"`
		MainFile  *string `toml:"mainFile"`
	} `toml:"paths"`
	Logging struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
	} `toml:"logging"`
	Watch struct {
		// Debounce is a duration string or whole milliseconds.
		Debounce any `toml:"debounce"`
	} `toml:"watch"`
	Check struct {
		DryRun *bool `toml:"dryRun"`
	} `toml:"check"`
}

func (f *fileSettings) values() map[string]any {
	out := make(map[string]any)
	put := func(key string, v any) {
		if v != nil {
			layer.SetByPath(out, key, v)
		}
	}
	if f.Paths.ConfigDir != nil {
		put(KeyConfigDir, *f.Paths.ConfigDir)
	}
	if f.Paths.MainFile != nil {
		put(KeyMainFile, *f.Paths.MainFile)
	}
	if f.Logging.Level != nil {
		put(KeyLogLevel, *f.Logging.Level)
	}
	if f.Logging.Format != nil {
		put(KeyLogFormat, *f.Logging.Format)
	}
	put(KeyDebounce, f.Watch.Debounce)
	if f.Check.DryRun != nil {
		put(KeyDryRun, *f.Check.DryRun)
	}
	return out
}

// FileLoader reads the TOML settings file. A missing file yields no layer.
type FileLoader struct {
	fs   FileSystem
	path string
}

// NewFileLoader creates a loader for path on fsys, or the OS file system
// when fsys is nil.
func NewFileLoader(fsys FileSystem, path string) *FileLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{fs: fsys, path: path}
}

func (l *FileLoader) Source() layer.Source { return layer.SourceFile }

func (l *FileLoader) Location() string { return l.path }

// Load implements Loader.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	return Parse(l.path, data)
}

// Parse decodes settings file content into a nested map holding only the
// keys it sets. Unknown keys are rejected.
func Parse(path string, data []byte) (map[string]any, error) {
	var f fileSettings
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, newParseError(path, err)
	}
	return f.values(), nil
}

// ParseError locates a problem in the settings file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Err: err}

	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		pe.Line, pe.Column = serr.Errors[0].Position()
		keys := make([]string, len(serr.Errors))
		for i := range serr.Errors {
			keys[i] = strings.Join(serr.Errors[i].Key(), ".")
		}
		pe.Err = fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return pe
}

// ErrUnknownKey is wrapped by a ParseError for keys outside the schema.
var ErrUnknownKey = errors.New("unknown settings key")

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
