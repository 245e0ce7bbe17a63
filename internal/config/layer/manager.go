package layer

import (
	"cmp"
	"slices"
	"sync"
)

// Manager stacks layers and merges them by priority.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	layers []*Layer

	// merged caches the result of Merge until a layer is added
	merged map[string]any
}

// NewManager creates a manager holding the given layers.
func NewManager(layers ...*Layer) *Manager {
	m := &Manager{}
	for _, l := range layers {
		m.Add(l)
	}
	return m
}

// Add inserts a layer, replacing any layer with the same name.
// Layers of equal priority keep their insertion order.
func (m *Manager) Add(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = slices.DeleteFunc(m.layers, func(x *Layer) bool {
		return x.Name == l.Name
	})
	m.layers = append(m.layers, l)
	slices.SortStableFunc(m.layers, func(a, b *Layer) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	m.merged = nil
}

// Layer returns the layer with the given name.
func (m *Manager) Layer(name string) (*Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.layers, func(l *Layer) bool { return l.Name == name })
	if i < 0 {
		return nil, false
	}
	return m.layers[i], true
}

// Layers returns the layers from lowest to highest priority.
func (m *Manager) Layers() []*Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.layers)
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.layers)
}

// Merge returns all layers merged into one map. The result is a copy the
// caller may modify.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.merged == nil {
		merged := map[string]any{}
		for _, l := range m.layers {
			merged = DeepMerge(merged, l.Data)
		}
		m.merged = merged
	}
	return cloneMap(m.merged)
}

// Lookup returns the value of a dot-separated path from the highest
// priority layer that sets it, with that layer.
func (m *Manager) Lookup(path string) (any, *Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range slices.Backward(m.layers) {
		if v, ok := GetByPath(l.Data, path); ok {
			return v, l, true
		}
	}
	return nil, nil, false
}

// Origin returns the name of the layer that supplies path, or "" when no
// layer sets it.
func (m *Manager) Origin(path string) string {
	if _, l, ok := m.Lookup(path); ok {
		return l.Name
	}
	return ""
}
