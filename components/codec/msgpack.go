package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackSerializerConfig configures MsgPackSerializer.
type MsgPackSerializerConfig struct {
	// Named controls whether struct fields are encoded by name (true,
	// matching the original's default) or by position.
	Named bool `mapstructure:"named"`
}

// DefaultMsgPackSerializerConfig matches the original's #[serde(default =
// "default_named")] — named encoding on.
func DefaultMsgPackSerializerConfig() MsgPackSerializerConfig {
	return MsgPackSerializerConfig{Named: true}
}

// MsgPackSerializer serializes any T as MessagePack.
//
// Grounded on msgpack_serializer.rs.
type MsgPackSerializer[T any] struct {
	cfg MsgPackSerializerConfig
}

// NewMsgPackSerializer is MsgPackSerializer's only constructor.
func NewMsgPackSerializer[T any](cfg MsgPackSerializerConfig) *MsgPackSerializer[T] {
	return &MsgPackSerializer[T]{cfg: cfg}
}

func (s *MsgPackSerializer[T]) Serialize(v T) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseArrayEncodedStructs(!s.cfg.Named)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MsgPackSerializer[T]) Deserialize(b []byte) (T, error) {
	var out T
	err := msgpack.Unmarshal(b, &out)
	return out, err
}
