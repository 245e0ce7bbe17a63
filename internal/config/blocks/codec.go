// Package blocks implements the block+metadata list encoding.
//
// Four list nodes store blocks as text entries of the form NAME or
// NAME@m1,m2,... . Decoding turns such a list into a Mapping from numeric
// block id to metadata values; an entry without metadata matches every
// metadata value of its block.
package blocks

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Mapping maps block ids to metadata values.
// An empty metadata list is a wildcard.
type Mapping map[int][]byte

// Matches reports whether a block with the given metadata is in the mapping.
func (m Mapping) Matches(id int, meta byte) bool {
	metas, ok := m[id]
	if !ok {
		return false
	}
	return len(metas) == 0 || slices.Contains(metas, meta)
}

// IDs returns the block ids in ascending order.
func (m Mapping) IDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Equal reports whether both mappings hold the same blocks and metadata.
// Metadata lists are compared in order.
func (m Mapping) Equal(o Mapping) bool {
	if len(m) != len(o) {
		return false
	}
	for id, metas := range m {
		other, ok := o[id]
		if !ok || !slices.Equal(metas, other) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the mapping.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for id, metas := range m {
		out[id] = slices.Clone(metas)
	}
	return out
}

// Result is the outcome of decoding a list.
type Result struct {
	// Mapping holds the decoded blocks.
	Mapping Mapping

	// Dropped lists the entries that could not be decoded.
	Dropped []string
}

// Repaired reports whether any entry was dropped while decoding.
// The owning document must be rewritten when this is true.
func (r Result) Repaired() bool {
	return len(r.Dropped) > 0
}

// Codec decodes and encodes block lists against a catalog.
type Codec struct {
	catalog *Catalog
}

// NewCodec creates a codec using the given catalog.
// A nil catalog selects DefaultCatalog.
func NewCodec(catalog *Catalog) *Codec {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Codec{catalog: catalog}
}

// Catalog returns the codec's catalog.
func (c *Codec) Catalog() *Catalog {
	return c.catalog
}

// Decode parses list entries into a mapping.
//
// Each element may hold several comma separated entries. A bare number
// directly after an entry with metadata adds one more metadata value to it,
// so "IRON_ORE@1,2" and "IRON_ORE@1,IRON_ORE@2" decode identically.
// Repeated blocks merge their metadata and a wildcard entry absorbs any
// specific metadata of the same block. Unknown names and metadata outside
// 0..255 are dropped.
func (c *Codec) Decode(entries []string) Result {
	metas := make(map[int][]byte)
	wild := make(map[int]bool)
	var dropped []string

	for _, element := range entries {
		current := -1
		for _, token := range strings.Split(element, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			if current >= 0 && isNumber(token) {
				meta, ok := parseMeta(token)
				if !ok {
					dropped = append(dropped, token)
					continue
				}
				metas[current] = append(metas[current], meta)
				continue
			}

			name, metaText, hasMeta := strings.Cut(token, "@")
			id, ok := c.catalog.ID(name)
			if !ok {
				dropped = append(dropped, token)
				current = -1
				continue
			}

			if !hasMeta {
				wild[id] = true
				current = -1
				continue
			}

			meta, ok := parseMeta(metaText)
			if !ok {
				dropped = append(dropped, token)
				current = -1
				continue
			}
			metas[id] = append(metas[id], meta)
			current = id
		}
	}

	mapping := make(Mapping, len(metas)+len(wild))
	for id := range wild {
		mapping[id] = []byte{}
	}
	for id, list := range metas {
		if wild[id] {
			continue
		}
		slices.Sort(list)
		mapping[id] = slices.Compact(list)
	}

	return Result{Mapping: mapping, Dropped: dropped}
}

// Encode renders a mapping as list entries, one per block in ascending id
// order with ascending metadata.
func (c *Codec) Encode(m Mapping) []string {
	out := make([]string, 0, len(m))
	for _, id := range m.IDs() {
		name := c.catalog.Name(id)
		list := slices.Clone(m[id])
		if len(list) == 0 {
			out = append(out, name)
			continue
		}
		slices.Sort(list)
		list = slices.Compact(list)

		parts := make([]string, len(list))
		for i, meta := range list {
			parts[i] = strconv.Itoa(int(meta))
		}
		out = append(out, name+"@"+strings.Join(parts, ","))
	}
	return out
}

// Decode parses entries with the default catalog.
func Decode(entries []string) Result {
	return NewCodec(nil).Decode(entries)
}

// Encode renders a mapping with the default catalog.
func Encode(m Mapping) []string {
	return NewCodec(nil).Encode(m)
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func parseMeta(s string) (byte, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > 255 {
		return 0, false
	}
	return byte(v), true
}
