// Package registry provides the node catalog for hardmode configuration.
//
// The registry holds the definition of every known configuration node with
// its type, optional subtype, default value and disable sentinel. It is
// built once at startup and never mutated afterwards.
package registry

import (
	"fmt"
)

// Node defines a configuration node with its metadata.
type Node struct {
	// Path is the dot-separated key path (e.g., "ExtraHardMode.Zombies.Slow Players").
	Path string

	// Type is the node's value type.
	Type VarType

	// SubType refines the range policy and disable sentinel of numeric nodes.
	SubType SubType

	// Default is the default value, typed per Type.
	Default any

	// Disable overrides the subtype's implicit disable sentinel.
	// Nil means no override. Only honoured when SubType is set.
	Disable any

	// Blocks marks list nodes holding block+metadata entries.
	Blocks bool

	// Description is human-readable documentation.
	Description string
}

// DefaultValue returns a copy of the node's default value.
func (n *Node) DefaultValue() any {
	return CloneValue(n.Default)
}

// Sentinel returns the value a node takes when it is disabled.
func (n *Node) Sentinel() any {
	v, err := n.sentinel()
	if err != nil {
		// New rejects nodes without a derivable sentinel.
		panic(err)
	}
	return v
}

func (n *Node) sentinel() (any, error) {
	switch n.Type {
	case TypeBoolean:
		return false, nil
	case TypeInteger:
		if n.SubType == SubNone {
			return 0, nil
		}
		if n.Disable != nil {
			v, _ := Coerce(n.Type, n.Disable)
			return v, nil
		}
		switch n.SubType {
		case SubNaturalNumber, SubYValue, SubPercentage:
			return 0, nil
		case SubHealth:
			return 20, nil
		}
	case TypeDouble:
		if n.SubType == SubNone {
			return 0.0, nil
		}
		if n.Disable != nil {
			v, _ := Coerce(n.Type, n.Disable)
			return v, nil
		}
		switch n.SubType {
		case SubNaturalNumber, SubYValue, SubPercentage:
			return 0.0, nil
		case SubHealth:
			return 20.0, nil
		}
	case TypeString:
		return "", nil
	case TypeList:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("%w: %s has unknown type %d", ErrMisconfigured, n.Path, n.Type)
	}
	return nil, fmt.Errorf("%w: subtype %d of %s has no disable value", ErrMisconfigured, n.SubType, n.Path)
}

// check verifies that the node definition is internally consistent.
func (n *Node) check() error {
	if n.Path == "" {
		return fmt.Errorf("%w: empty path", ErrMisconfigured)
	}
	if n.Disable != nil && n.SubType == SubNone {
		return fmt.Errorf("%w: %s declares a disable value but no subtype", ErrMisconfigured, n.Path)
	}
	if n.Blocks && n.Type != TypeList {
		return fmt.Errorf("%w: %s holds blocks but is %s", ErrMisconfigured, n.Path, n.Type)
	}
	if _, ok := Coerce(n.Type, n.Default); !ok {
		return fmt.Errorf("%w: default of %s is %T, want %s", ErrMisconfigured, n.Path, n.Default, n.Type)
	}
	if n.Disable != nil {
		if _, ok := Coerce(n.Type, n.Disable); !ok {
			return fmt.Errorf("%w: disable value of %s is %T, want %s", ErrMisconfigured, n.Path, n.Disable, n.Type)
		}
	}
	_, err := n.sentinel()
	return err
}

// VarType represents the value type of a node.
type VarType uint8

const (
	// TypeBoolean represents a boolean value.
	TypeBoolean VarType = iota
	// TypeInteger represents an integer value.
	TypeInteger
	// TypeDouble represents a floating-point value.
	TypeDouble
	// TypeString represents a string value.
	TypeString
	// TypeList represents an ordered list of strings.
	TypeList
)

// String returns the string representation of the type.
func (t VarType) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// SubType refines numeric nodes.
type SubType uint8

const (
	// SubNone means no subtype is declared.
	SubNone SubType = iota
	// SubPercentage is a value between 0 and 100.
	SubPercentage
	// SubHealth is a value between 0 and 20.
	SubHealth
	// SubYValue is a world height between 0 and 255.
	SubYValue
	// SubNaturalNumber is any value >= 0.
	SubNaturalNumber
)

// String returns the string representation of the subtype.
func (s SubType) String() string {
	switch s {
	case SubNone:
		return "none"
	case SubPercentage:
		return "percentage"
	case SubHealth:
		return "health"
	case SubYValue:
		return "y_value"
	case SubNaturalNumber:
		return "natural_number"
	default:
		return "unknown"
	}
}

// bounds returns the inclusive range allowed by the subtype.
// hasMax is false for unbounded subtypes.
func (s SubType) bounds() (lo, hi float64, hasMin, hasMax bool) {
	switch s {
	case SubPercentage:
		return 0, 100, true, true
	case SubHealth:
		return 0, 20, true, true
	case SubYValue:
		return 0, 255, true, true
	case SubNaturalNumber:
		return 0, 0, true, false
	default:
		return 0, 0, false, false
	}
}
