package codec

import "go.mongodb.org/mongo-driver/bson"

// BSONSerializerConfig configures BSONSerializer. BSON documents must be
// objects at the top level, so T is expected to marshal to one.
type BSONSerializerConfig struct{}

// BSONSerializer serializes any T as BSON.
//
// The original (json_parser.rs's sibling bson_parser.rs) only covers BSON
// on the parser side; this adds the matching serializer side using this
// module's mongo-driver dependency, the same library the pack's bson_parser
// equivalent would need in Go.
type BSONSerializer[T any] struct{}

// NewBSONSerializer is BSONSerializer's only constructor.
func NewBSONSerializer[T any](_ BSONSerializerConfig) *BSONSerializer[T] {
	return &BSONSerializer[T]{}
}

func (s *BSONSerializer[T]) Serialize(v T) ([]byte, error) {
	return bson.Marshal(v)
}

func (s *BSONSerializer[T]) Deserialize(b []byte) (T, error) {
	var out T
	err := bson.Unmarshal(b, &out)
	return out, err
}
