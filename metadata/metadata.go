// Package metadata provides the typed descriptive values attached to
// records. Metadata is used only for display and aggregation, never for
// clustering math.
package metadata

import (
	"math"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
)

// Value is a small typed value used for record metadata.
//
// The representation is designed to make aggregation fast and predictable:
// no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
	B    bool    `json:"b,omitempty"`
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, I64: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{Kind: KindFloat, F64: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// FromAny converts a dynamically-typed value into a Value.
// Unsupported types map to KindInvalid.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case string:
		return String(x)
	case bool:
		return Bool(x)
	default:
		return Value{Kind: KindInvalid}
	}
}

// Numeric returns the value as a float64 and whether it is numeric.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// Key returns a stable string representation for use as a map key when
// counting value frequencies.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.S
	case KindBool:
		if v.B {
			return "b:true"
		}
		return "b:false"
	default:
		return "invalid"
	}
}

// Display returns a human-readable representation for insight tables.
func (v Value) Display() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return ""
	}
}

// Metadata is the set of descriptive fields attached to one record.
type Metadata map[string]Value

// FromAnyMap converts a map of dynamically-typed values into Metadata,
// skipping entries whose type is unsupported.
func FromAnyMap(m map[string]any) Metadata {
	if len(m) == 0 {
		return nil
	}
	md := make(Metadata, len(m))
	for k, v := range m {
		val := FromAny(v)
		if val.Kind == KindInvalid {
			continue
		}
		md[k] = val
	}
	return md
}
