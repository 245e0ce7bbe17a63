// Package document provides the key-path documents the resolver operates on.
//
// A Document is a flat, insertion-ordered map from dot-separated key paths
// to scalar or list values, bound to the file it was loaded from. Documents
// are loaded and saved through a Store.
package document

import (
	"path/filepath"
	"strings"
)

// Mode is the per-document reconciliation policy.
type Mode uint8

const (
	// ModeNotSet is the transient mode before a document was inspected.
	ModeNotSet Mode = iota
	// ModeMain marks the canonical defaults document.
	ModeMain
	// ModeInherit fills missing values from the canonical document.
	ModeInherit
	// ModeDisable fills missing values with each node's disable sentinel.
	ModeDisable
)

// String returns the mode name as written in documents.
func (m Mode) String() string {
	switch m {
	case ModeMain:
		return "MAIN"
	case ModeInherit:
		return "INHERIT"
	case ModeDisable:
		return "DISABLE"
	default:
		return "NOT_SET"
	}
}

// Marker returns the marker text written in place of a value derived by
// this mode, or "" for modes without a marker.
func (m Mode) Marker() string {
	switch m {
	case ModeInherit:
		return MarkerInherit
	case ModeDisable:
		return MarkerDisable
	default:
		return ""
	}
}

// ParseMode parses mode text case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAIN":
		return ModeMain, true
	case "INHERIT":
		return ModeInherit, true
	case "DISABLE":
		return ModeDisable, true
	default:
		return ModeNotSet, false
	}
}

// Marker texts reserved for derived values.
const (
	MarkerInherit = "inherit"
	MarkerDisable = "disable"
)

// IsMarker reports whether v is one of the reserved marker texts.
func IsMarker(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.EqualFold(s, MarkerInherit) || strings.EqualFold(s, MarkerDisable)
}

// Status describes a node value or a whole document.
type Status uint8

const (
	// StatusOK means the value was read as is.
	StatusOK Status = iota
	// StatusNotFound means the value was absent or unusable.
	StatusNotFound
	// StatusInherits means the value is the inherit marker.
	StatusInherits
	// StatusDisables means the value is the disable marker.
	StatusDisables
	// StatusAdjusted means the value or document was changed.
	StatusAdjusted
	// StatusProcessed marks a fully resolved canonical document.
	StatusProcessed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusInherits:
		return "INHERITS"
	case StatusDisables:
		return "DISABLES"
	case StatusAdjusted:
		return "ADJUSTED"
	case StatusProcessed:
		return "PROCESSED"
	default:
		return "UNKNOWN"
	}
}

// Document is a mutable key-path tree bound to a backing file.
type Document struct {
	// Mode is the applied reconciliation mode.
	Mode Mode

	// Status is StatusAdjusted once anything in the document changed.
	Status Status

	path   string
	keys   []string
	values map[string]any
}

// New creates an empty document bound to path.
func New(path string) *Document {
	return &Document{
		path:   path,
		values: make(map[string]any),
	}
}

// Path returns the backing file path.
func (d *Document) Path() string {
	return d.path
}

// Name returns the base file name.
func (d *Document) Name() string {
	return filepath.Base(d.path)
}

// Get returns the value stored at key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Set stores a value. New keys are appended after existing ones.
func (d *Document) Set(key string, v any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Delete removes a key.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// MarkAdjusted flags the document for rewriting.
func (d *Document) MarkAdjusted() {
	d.Status = StatusAdjusted
}

// Adjusted reports whether the document must be rewritten.
func (d *Document) Adjusted() bool {
	return d.Status == StatusAdjusted
}
