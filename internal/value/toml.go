package value

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// DecodeTOML parses TOML text into a Value.
func DecodeTOML(data []byte) (Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("decode toml: %w", err)
	}
	return FromNative(raw), nil
}

// EncodeTOML renders v as TOML text. v must be an object at the top level,
// since TOML has no bare scalar or array document form.
func EncodeTOML(v Value) ([]byte, error) {
	if v.Kind != KindObject {
		return nil, fmt.Errorf("encode toml: top-level value must be an object, got %v", v.Kind)
	}
	out, err := toml.Marshal(ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return out, nil
}
