// Package value implements the dynamic, tagged-union configuration value
// that every tree-deserializer in this module (JSON, relaxed JSON, YAML,
// TOML) produces and that the type registry consumes.
package value

import "math"

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

// Value is a recursively defined dynamic value: null, bool, integer,
// unsigned integer, floating point, string, an ordered sequence of Value, or
// an ordered mapping from string to Value.
//
// Only the field matching Kind is meaningful; the rest are zero.
type Value struct {
	Kind Kind

	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	String string
	Array  []Value
	Object *Object
}

// Object is an insertion-ordered string-keyed map. Plain map[string]Value
// loses key order across round-trips, which matters for emitters that
// preserve source layout, so Value uses this instead.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Set inserts or overwrites key, preserving first-insertion order.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Null, Bool, Int, Uint, Float, String, Array, and Obj are constructors for
// the corresponding Value alternatives.

func Null() Value { return Value{Kind: KindNull} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

func Uint(u uint64) Value { return Value{Kind: KindUint, Uint: u} }

func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

func Str(s string) Value { return Value{Kind: KindString, String: s} }

func Arr(vs ...Value) Value { return Value{Kind: KindArray, Array: vs} }

func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{Kind: KindObject, Object: o}
}

// IsNull reports whether v is the null value (including the zero Value).
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Equal implements the structural equality rules from the data model:
// integers compare equal across Int/Uint/Float regardless of signedness,
// and floating point NaN compares equal to NaN (unlike IEEE 754).
func Equal(a, b Value) bool {
	if isNumeric(a.Kind) && isNumeric(b.Kind) {
		return numericEqual(a, b)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.String == b.String
	case KindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !Equal(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return objectsEqual(a.Object, b.Object)
	default:
		return false
	}
}

func isNumeric(k Kind) bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

func numericEqual(a, b Value) bool {
	af, aExact := asFloatExact(a)
	bf, bExact := asFloatExact(b)
	if a.Kind == KindFloat || b.Kind == KindFloat {
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	if aExact && bExact {
		switch {
		case a.Kind == KindInt && b.Kind == KindInt:
			return a.Int == b.Int
		case a.Kind == KindUint && b.Kind == KindUint:
			return a.Uint == b.Uint
		case a.Kind == KindInt:
			return a.Int >= 0 && uint64(a.Int) == b.Uint
		default:
			return b.Int >= 0 && uint64(b.Int) == a.Uint
		}
	}
	return af == bf
}

// asFloatExact returns the numeric value as a float64 along with whether v
// is an integer kind (Int or Uint); two integers are compared exactly rather
// than through their float64 values.
func asFloatExact(v Value) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindUint:
		return float64(v.Uint), true
	case KindFloat:
		return v.Float, false
	default:
		return 0, false
	}
}

func objectsEqual(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// ToNative converts a Value into plain Go data (map[string]any,
// []any, string, bool, int64/uint64/float64, or nil) suitable for feeding to
// mapstructure-based decoders.
func ToNative(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindUint:
		return v.Uint
	case KindFloat:
		return v.Float
	case KindString:
		return v.String
	case KindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = ToNative(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Object.Len())
		for _, k := range v.Object.Keys() {
			ev, _ := v.Object.Get(k)
			out[k] = ToNative(ev)
		}
		return out
	default:
		return nil
	}
}

// FromNative converts plain Go data (as produced by encoding/json,
// gopkg.in/yaml.v3, or similar) into a Value.
func FromNative(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return Str(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Uint(t)
	case float64:
		return Float(t)
	case float32:
		return Float(float64(t))
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = FromNative(e)
		}
		return Arr(arr...)
	case map[string]any:
		obj := NewObject()
		for k, e := range t {
			obj.Set(k, FromNative(e))
		}
		return Obj(obj)
	case map[any]any:
		obj := NewObject()
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			obj.Set(ks, FromNative(e))
		}
		return Obj(obj)
	default:
		return Null()
	}
}
