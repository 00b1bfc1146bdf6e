// Package codec implements the byte-level serializers the domain stack's
// stores and object store use to bridge arbitrary Go values to []byte, plus
// a change-detection JSON parser.
//
// Grounded on _examples/original_source/src/kv/serializer/core.rs's
// Serializer<F, T> trait (F the application type, T the wire type, here
// fixed to []byte) and src/kv/parser/json_parser.rs.
package codec

// Serializer converts values of type T to and from []byte.
type Serializer[T any] interface {
	Serialize(v T) ([]byte, error)
	Deserialize(b []byte) (T, error)
}
