package value

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// DecodeRelaxedJSON parses JSON-with-comments-and-trailing-commas (the
// "jsonc" dialect) into a Value by first standardizing it to strict JSON.
func DecodeRelaxedJSON(data []byte) (Value, error) {
	std, err := hujson.Standardize(append([]byte(nil), data...))
	if err != nil {
		return Value{}, fmt.Errorf("decode relaxed json: %w", err)
	}
	return DecodeJSON(std)
}

// EncodeRelaxedJSON emits plain JSON; there is no canonical "relaxed" writer
// format, so round-tripping through this codec degrades comments/trailing
// commas to the strict JSON encoding, matching the caveat noted in spec.md §6.
func EncodeRelaxedJSON(v Value) ([]byte, error) {
	return EncodeJSON(v)
}
