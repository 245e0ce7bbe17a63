package registry

// Validate checks a value against the node's range policy.
//
// Integer and double nodes with a subtype must lie within the subtype's
// bounds. A value outside the policy, or one that cannot be coerced to the
// node type, is replaced by the node default and ok is false; the caller is
// expected to mark the owning document as adjusted. Validate never fails.
func (n *Node) Validate(value any) (corrected any, ok bool) {
	v, coerced := Coerce(n.Type, value)
	if !coerced {
		return n.DefaultValue(), false
	}

	if n.Type != TypeInteger && n.Type != TypeDouble {
		return v, true
	}

	var f float64
	switch num := v.(type) {
	case int:
		f = float64(num)
	case float64:
		f = num
	}

	lo, hi, hasMin, hasMax := n.SubType.bounds()
	if hasMin && f < lo {
		return n.DefaultValue(), false
	}
	if hasMax && f > hi {
		return n.DefaultValue(), false
	}
	return v, true
}
