package registry

import (
	"fmt"
	"math"
	"strconv"
)

// FloatPrecision is the number of decimal digits doubles are rounded to
// before two of them are compared.
const FloatPrecision = 10

// Coerce converts a raw document value into the canonical Go type of t:
// bool, int, float64, string or []string.
// Returns false if the value cannot represent t.
func Coerce(t VarType, raw any) (any, bool) {
	switch t {
	case TypeBoolean:
		b, ok := raw.(bool)
		return b, ok
	case TypeInteger:
		return toInt(raw)
	case TypeDouble:
		return toFloat(raw)
	case TypeString:
		switch v := raw.(type) {
		case string:
			return v, true
		case bool, int, int64, float64:
			return fmt.Sprint(v), true
		}
		return nil, false
	case TypeList:
		return toStrings(raw)
	}
	return nil, false
}

func toInt(raw any) (any, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return nil, false
		}
		return int(v), true
	case uint:
		if uint64(v) > math.MaxInt {
			return nil, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return nil, false
		}
		return int(v), true
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
		if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
			return nil, false
		}
		return int(v), true
	}
	return nil, false
}

func toFloat(raw any) (any, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return nil, false
}

func toStrings(raw any) (any, bool) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case bool, int, int64, float64:
				out = append(out, fmt.Sprint(s))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// Equal reports whether two coerced values are equal.
// Doubles are compared after rounding to FloatPrecision decimal digits so
// that binary representation drift does not produce a mismatch.
func Equal(a, b any) bool {
	switch va := a.(type) {
	case float64:
		vb, ok := b.(float64)
		if !ok {
			return false
		}
		return NormalizeFloat(va) == NormalizeFloat(vb)
	case []string:
		vb, ok := b.([]string)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i] != vb[i] {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return a == b
	}
}

// NormalizeFloat renders f as a fixed-precision decimal string.
func NormalizeFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', FloatPrecision, 64)
	if s == "-"+strconv.FormatFloat(0, 'f', FloatPrecision, 64) {
		return s[1:]
	}
	return s
}

// CloneValue returns a copy of v that shares no mutable state.
func CloneValue(v any) any {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	case []any:
		out := make([]any, len(s))
		copy(out, s)
		return out
	default:
		return v
	}
}
