package codec

import "encoding/json"

// JSONSerializerConfig configures JSONSerializer.
type JSONSerializerConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// JSONSerializer serializes any T through encoding/json.
//
// Grounded on json_serializer.rs: the pretty-print toggle is the only
// configuration surface the original exposes.
type JSONSerializer[T any] struct {
	cfg JSONSerializerConfig
}

// NewJSONSerializer is JSONSerializer's only constructor.
func NewJSONSerializer[T any](cfg JSONSerializerConfig) *JSONSerializer[T] {
	return &JSONSerializer[T]{cfg: cfg}
}

func (s *JSONSerializer[T]) Serialize(v T) ([]byte, error) {
	if s.cfg.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (s *JSONSerializer[T]) Deserialize(b []byte) (T, error) {
	var out T
	err := json.Unmarshal(b, &out)
	return out, err
}
