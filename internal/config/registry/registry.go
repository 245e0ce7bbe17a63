package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMisconfigured is returned when a node definition is inconsistent.
// It is a programmer error and is never expected at runtime.
var ErrMisconfigured = errors.New("registry misconfigured")

// Registry maintains all known node definitions in declaration order.
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	nodes    []*Node
	byPath   map[string]*Node
	sections map[string][]*Node
}

// New creates a registry from the given node definitions.
// Declaration order is preserved and defines the canonical document layout.
func New(nodes ...Node) (*Registry, error) {
	r := &Registry{
		nodes:    make([]*Node, 0, len(nodes)),
		byPath:   make(map[string]*Node, len(nodes)),
		sections: make(map[string][]*Node),
	}

	for i := range nodes {
		n := nodes[i] // Copy to heap
		if err := n.check(); err != nil {
			return nil, err
		}
		if _, exists := r.byPath[n.Path]; exists {
			return nil, fmt.Errorf("%w: duplicate path %s", ErrMisconfigured, n.Path)
		}
		if v, ok := Coerce(n.Type, n.Default); ok {
			n.Default = v
		}
		r.nodes = append(r.nodes, &n)
		r.byPath[n.Path] = &n

		section := extractSection(n.Path)
		r.sections[section] = append(r.sections[section], &n)
	}

	return r, nil
}

// MustNew creates a registry and panics on error.
// Useful for registering built-in nodes at init time.
func MustNew(nodes ...Node) *Registry {
	r, err := New(nodes...)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry of all built-in hardmode nodes.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = MustNew(builtinNodes()...)
	})
	return builtin
}

// Nodes returns all nodes in declaration order.
func (r *Registry) Nodes() []*Node {
	result := make([]*Node, len(r.nodes))
	copy(result, r.nodes)
	return result
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// Get returns the node for the given path, or nil if it is not registered.
func (r *Registry) Get(path string) *Node {
	return r.byPath[path]
}

// Has checks if a node is registered.
func (r *Registry) Has(path string) bool {
	_, exists := r.byPath[path]
	return exists
}

// Section returns the nodes of a top-level section below the base node
// (e.g., "Zombies"), in declaration order.
func (r *Registry) Section(name string) []*Node {
	nodes := r.sections[name]
	result := make([]*Node, len(nodes))
	copy(result, nodes)
	return result
}

// BlockNodes returns the list nodes holding block+metadata entries.
func (r *Registry) BlockNodes() []*Node {
	var result []*Node
	for _, n := range r.nodes {
		if n.Blocks {
			result = append(result, n)
		}
	}
	return result
}

// Search finds nodes whose path or description contains query.
func (r *Registry) Search(query string) []*Node {
	query = strings.ToLower(query)
	var result []*Node
	for _, n := range r.nodes {
		if strings.Contains(strings.ToLower(n.Path), query) ||
			strings.Contains(strings.ToLower(n.Description), query) {
			result = append(result, n)
		}
	}
	return result
}

// Default returns the default value for a node path.
// Returns nil if the node is not registered.
func (r *Registry) Default(path string) any {
	if n, ok := r.byPath[path]; ok {
		return n.DefaultValue()
	}
	return nil
}

// DisableSentinel returns the disable sentinel for a node path.
// Returns nil if the node is not registered.
func (r *Registry) DisableSentinel(path string) any {
	if n, ok := r.byPath[path]; ok {
		return n.Sentinel()
	}
	return nil
}

// extractSection extracts the first section below the base node.
func extractSection(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, Base+"."), ".", 2)
	return parts[0]
}
