package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses YAML text into a Value.
func DecodeYAML(data []byte) (Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	return FromNative(raw), nil
}

// EncodeYAML renders v as YAML text.
func EncodeYAML(v Value) ([]byte, error) {
	out, err := yaml.Marshal(ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out, nil
}
