// Package scoped provides the per-scope lookup tables built by a load cycle.
//
// Both tables are keyed by a (node path, scope) pair. Lookups distinguish an
// absent key from a key that is present with an empty value, and fall back
// to the wildcard scope only when the wildcard was declared.
package scoped

import (
	"sort"

	"github.com/dshills/hardmode/internal/config/blocks"
	"github.com/dshills/hardmode/internal/config/registry"
)

// AllScopes is the wildcard scope name.
const AllScopes = "*"

// Key identifies a table cell.
type Key struct {
	Node  string
	Scope string
}

// Values maps (node, scope) to the effective value of a node.
type Values struct {
	cells    map[Key]any
	scopes   map[string]struct{}
	wildcard bool
}

// NewValues creates an empty value table.
func NewValues() *Values {
	return &Values{
		cells:  make(map[Key]any),
		scopes: make(map[string]struct{}),
	}
}

// Set stores the effective value of node for scope.
func (v *Values) Set(node, scope string, value any) {
	if scope == AllScopes {
		v.wildcard = true
	}
	v.scopes[scope] = struct{}{}
	v.cells[Key{Node: node, Scope: scope}] = registry.CloneValue(value)
}

// Get returns the value stored for exactly (node, scope).
func (v *Values) Get(node, scope string) (any, bool) {
	val, ok := v.cells[Key{Node: node, Scope: scope}]
	return val, ok
}

// Lookup returns the value for (node, scope), falling back to the
// wildcard scope when it was declared.
func (v *Values) Lookup(node, scope string) (any, bool) {
	if val, ok := v.Get(node, scope); ok {
		return val, true
	}
	if v.wildcard {
		return v.Get(node, AllScopes)
	}
	return nil, false
}

// Wildcard reports whether any document declared the wildcard scope.
func (v *Values) Wildcard() bool {
	return v.wildcard
}

// Scopes returns all scopes with at least one value, sorted.
func (v *Values) Scopes() []string {
	return sortedKeys(v.scopes)
}

// Len returns the number of stored cells.
func (v *Values) Len() int {
	return len(v.cells)
}

// Keys returns all keys sorted by node then scope.
func (v *Values) Keys() []Key {
	keys := make([]Key, 0, len(v.cells))
	for k := range v.cells {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Extras maps (node, scope) to a decoded block mapping.
type Extras struct {
	cells    map[Key]blocks.Mapping
	wildcard bool
}

// NewExtras creates an empty extras table.
func NewExtras() *Extras {
	return &Extras{cells: make(map[Key]blocks.Mapping)}
}

// Put stores the mapping for (node, scope).
// A nil mapping is stored as present-but-empty.
func (e *Extras) Put(node, scope string, m blocks.Mapping) {
	if scope == AllScopes {
		e.wildcard = true
	}
	if m == nil {
		m = blocks.Mapping{}
	}
	e.cells[Key{Node: node, Scope: scope}] = m.Clone()
}

// Contains reports whether (node, scope) has an entry, even an empty one.
func (e *Extras) Contains(node, scope string) bool {
	_, ok := e.cells[Key{Node: node, Scope: scope}]
	return ok
}

// Get returns the mapping stored for exactly (node, scope).
func (e *Extras) Get(node, scope string) (blocks.Mapping, bool) {
	m, ok := e.cells[Key{Node: node, Scope: scope}]
	return m, ok
}

// Lookup returns the mapping for (node, scope), else the wildcard entry when
// the wildcard was declared, else an empty mapping. The result is a copy.
func (e *Extras) Lookup(node, scope string) blocks.Mapping {
	if m, ok := e.Get(node, scope); ok {
		return m.Clone()
	}
	if e.wildcard {
		if m, ok := e.Get(node, AllScopes); ok {
			return m.Clone()
		}
	}
	return blocks.Mapping{}
}

// Clear removes all entries.
func (e *Extras) Clear() {
	e.cells = make(map[Key]blocks.Mapping)
	e.wildcard = false
}

// Len returns the number of stored cells.
func (e *Extras) Len() int {
	return len(e.cells)
}

// Keys returns all keys sorted by node then scope.
func (e *Extras) Keys() []Key {
	keys := make([]Key, 0, len(e.cells))
	for k := range e.cells {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Node != keys[j].Node {
			return keys[i].Node < keys[j].Node
		}
		return keys[i].Scope < keys[j].Scope
	})
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
