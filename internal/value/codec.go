package value

import "fmt"

// Format names one of the supported surface encodings for a TypeOptions
// document (spec.md §6: "strict JSON, relaxed JSON with comments and
// trailing commas, YAML, TOML").
type Format string

const (
	FormatJSON        Format = "json"
	FormatRelaxedJSON Format = "jsonc"
	FormatYAML        Format = "yaml"
	FormatTOML        Format = "toml"
)

// Decode parses data in the given surface format into a Value.
func Decode(format Format, data []byte) (Value, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatRelaxedJSON:
		return DecodeRelaxedJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatTOML:
		return DecodeTOML(data)
	default:
		return Value{}, fmt.Errorf("unsupported format %q", format)
	}
}

// Encode renders v in the given surface format.
func Encode(format Format, v Value) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(v)
	case FormatRelaxedJSON:
		return EncodeRelaxedJSON(v)
	case FormatYAML:
		return EncodeYAML(v)
	case FormatTOML:
		return EncodeTOML(v)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
