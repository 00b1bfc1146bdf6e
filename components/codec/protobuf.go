package codec

import "google.golang.org/protobuf/proto"

// ProtobufSerializer serializes a proto.Message-typed T. Go generics cannot
// default-construct an interface-typed T the way the original's
// T::decode(&buf) can via its Default bound, so Deserialize needs a factory.
//
// Grounded on protobuf_serializer.rs, with newMessage standing in for the
// original's `T: Message + Default` bound.
type ProtobufSerializer[T proto.Message] struct {
	newMessage func() T
}

// NewProtobufSerializer is ProtobufSerializer's only constructor. newMessage
// must return a freshly zeroed T, e.g. func() *pb.User { return &pb.User{} }.
func NewProtobufSerializer[T proto.Message](newMessage func() T) *ProtobufSerializer[T] {
	return &ProtobufSerializer[T]{newMessage: newMessage}
}

func (s *ProtobufSerializer[T]) Serialize(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (s *ProtobufSerializer[T]) Deserialize(b []byte) (T, error) {
	out := s.newMessage()
	if err := proto.Unmarshal(b, out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
