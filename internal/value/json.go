package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON parses strict JSON text into a Value.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}
	return fromJSONNative(raw), nil
}

// EncodeJSON renders v as strict JSON text.
func EncodeJSON(v Value) ([]byte, error) {
	out, err := json.Marshal(toJSONNative(v))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

// fromJSONNative mirrors FromNative but additionally handles json.Number,
// which json.Decoder with UseNumber produces in place of plain float64, so
// that integers round-trip without losing precision to float64.
func fromJSONNative(v any) Value {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i)
		}
		f, _ := t.Float64()
		return Float(f)
	case map[string]any:
		obj := NewObject()
		for k, e := range t {
			obj.Set(k, fromJSONNative(e))
		}
		return Obj(obj)
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = fromJSONNative(e)
		}
		return Arr(arr...)
	default:
		return FromNative(v)
	}
}

func toJSONNative(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindUint:
		return v.Uint
	case KindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = toJSONNative(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Object.Len())
		for _, k := range v.Object.Keys() {
			ev, _ := v.Object.Get(k)
			out[k] = toJSONNative(ev)
		}
		return out
	default:
		return ToNative(v)
	}
}
