package layer

import (
	"sort"
	"strings"
)

// DeepMerge returns dst with src merged over it. Nested maps are merged key
// by key; any other src value replaces the dst value. Values taken from src
// are copied, so later changes to src do not leak into the result.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dm, sm)
			continue
		}
		dst[key] = cloneValue(sv)
	}
	return dst
}

// GetByPath reads a dot-separated path from a nested map.
func GetByPath(data map[string]any, path string) (any, bool) {
	var cur any = data
	for rest := path; ; {
		m, ok := cur.(map[string]any)
		if !ok || m == nil {
			return nil, false
		}
		key, tail, more := strings.Cut(rest, ".")
		if cur, ok = m[key]; !ok {
			return nil, false
		}
		if !more {
			return cur, true
		}
		rest = tail
	}
}

// SetByPath writes value at a dot-separated path, creating intermediate maps
// and replacing non-map values in the way.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}
	cur := data
	for {
		key, tail, more := strings.Cut(path, ".")
		if !more {
			cur[key] = value
			return
		}
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur, path = next, tail
	}
}

// Walk calls fn for every leaf value of data with its dot-separated path.
// Order is unspecified.
func Walk(data map[string]any, fn func(path string, value any)) {
	walk(data, "", fn)
}

func walk(data map[string]any, prefix string, fn func(string, any)) {
	for key, v := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			walk(nested, path, fn)
			continue
		}
		fn(path, v)
	}
}

// Paths returns the sorted paths of every leaf value.
func Paths(data map[string]any) []string {
	var out []string
	Walk(data, func(path string, _ any) {
		out = append(out, path)
	})
	sort.Strings(out)
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, v := range src {
		dst[key] = cloneValue(v)
	}
	return dst
}
