package document

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshal parses YAML data into a document bound to path.
// Nested mappings are flattened into dot-separated keys in file order.
func Unmarshal(path string, data []byte) (*Document, error) {
	doc := New(path)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, newParseError(path, err)
	}
	if root.Kind == 0 {
		return doc, nil // Empty file
	}

	top := &root
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return doc, nil
		}
		top = top.Content[0]
	}
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    path,
			Line:    top.Line,
			Column:  top.Column,
			Message: "top level must be a mapping",
		}
	}

	if err := flatten(doc, "", top); err != nil {
		return nil, newParseError(path, err)
	}
	return doc, nil
}

func flatten(doc *Document, prefix string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(doc, key, n.Content[i+1]); err != nil {
				return err
			}
		}
		return nil
	case yaml.AliasNode:
		return flatten(doc, prefix, n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		doc.Set(prefix, v)
		return nil
	}
}

// Marshal renders a document as YAML, nesting keys on their dots.
// Keys are written in document order.
func Marshal(doc *Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, key := range doc.keys {
		parts := strings.Split(key, ".")
		parent := root
		for _, part := range parts[:len(parts)-1] {
			next, err := childMapping(parent, part)
			if err != nil {
				return nil, fmt.Errorf("rendering %s: %w", key, err)
			}
			parent = next
		}

		var value yaml.Node
		if err := value.Encode(doc.values[key]); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		parent.Content = append(parent.Content, keyNode(parts[len(parts)-1]), &value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// childMapping returns the mapping stored under name, creating it if needed.
func childMapping(parent *yaml.Node, name string) (*yaml.Node, error) {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value != name {
			continue
		}
		child := parent.Content[i+1]
		if child.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s is both a value and a section", name)
		}
		return child, nil
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, keyNode(name), child)
	return child, nil
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}
