package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store loads and saves documents.
type Store interface {
	// Load reads the document at path.
	Load(path string) (*Document, error)
	// Save writes the document to its backing path.
	Save(doc *Document) error
	// List returns the document paths in dir, sorted.
	List(dir string) ([]string, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file at path, creating parent directories.
	WriteFile(path string, data []byte) error
	// ReadDir lists the entries of dir.
	ReadDir(dir string) ([]fs.DirEntry, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path atomically via a temporary file.
func (OSFS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadDir lists the entries of dir.
func (OSFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// YAMLStore stores documents as YAML files.
type YAMLStore struct {
	fs FileSystem
}

// NewYAMLStore creates a YAML store on fsys.
// A nil fsys selects the OS file system.
func NewYAMLStore(fsys FileSystem) *YAMLStore {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &YAMLStore{fs: fsys}
}

// Load reads and parses the document at path.
func (s *YAMLStore) Load(path string) (*Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return Unmarshal(path, data)
}

// Save renders the document and writes it to its path.
func (s *YAMLStore) Save(doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("rendering document %s: %w", doc.Path(), err)
	}
	if err := s.fs.WriteFile(doc.Path(), data); err != nil {
		return fmt.Errorf("writing document %s: %w", doc.Path(), err)
	}
	return nil
}

// List returns the .yml and .yaml files in dir, sorted by name.
// A missing directory yields no documents.
func (s *YAMLStore) List(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsDocumentFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Render returns the bytes Save would write for doc.
func (s *YAMLStore) Render(doc *Document) ([]byte, error) {
	return Marshal(doc)
}

// Read returns the raw bytes stored at path.
func (s *YAMLStore) Read(path string) ([]byte, error) {
	return s.fs.ReadFile(path)
}

// IsDocumentFile reports whether name has a YAML extension.
func IsDocumentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// ParseError represents an error while parsing a document.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
		pe.Line = line
	}
	return pe
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
