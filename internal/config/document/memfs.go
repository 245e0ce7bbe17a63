package document

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes int

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// AddFile stores content at path.
func (m *MemFS) AddFile(path string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = []byte(content)
}

// File returns the content stored at path.
func (m *MemFS) File(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	return string(data), ok
}

// Writes returns the number of successful writes.
func (m *MemFS) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// ReadFile reads the entire file at path.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteFile stores data at path unless WriteErr is set.
func (m *MemFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return &fs.PathError{Op: "write", Path: path, Err: m.WriteErr}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[filepath.Clean(path)] = buf
	m.writes++
	return nil
}

// ReadDir lists the files directly inside dir.
func (m *MemFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)

	var entries []fs.DirEntry
	for path, data := range m.files {
		if filepath.Dir(path) != dir {
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(&memFileInfo{
			name: filepath.Base(path),
			size: int64(len(data)),
		}))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

type memFileInfo struct {
	name string
	size int64
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return f.size }
func (f *memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f *memFileInfo) ModTime() time.Time { return time.Time{} }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }
