package codec

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hatlonely/goflux/internal/value"
)

// ValueParser decodes bytes into a value.Value, the registrable counterpart to
// Serializer[T] for components (cfgsource, the raw-message side of store)
// that move in terms of the dynamic value model rather than a concrete Go
// type.
//
// Grounded on _examples/original_source/src/kv/parser/{json_parser,
// bson_parser}.rs, generalized one level: where the original's JsonParser
// produces an application type T, ValueParser stops at value.Value, the
// shared currency every other package in this module already speaks.
type ValueParser interface {
	Parse(data []byte) (value.Value, error)
}

// ValueSerializer encodes a value.Value into bytes, the dynamic-value
// counterpart to Serializer[T].
type ValueSerializer interface {
	Serialize(v value.Value) ([]byte, error)
}

// JSONValueParser decodes JSON bytes into a value.Value via
// internal/value's own decoder.
type JSONValueParser struct{}

func NewJSONValueParser() *JSONValueParser { return &JSONValueParser{} }

func (*JSONValueParser) Parse(data []byte) (value.Value, error) {
	return value.DecodeJSON(data)
}

// BSONValueParser decodes BSON bytes into a value.Value, grounded on
// _examples/original_source/src/kv/parser/bson_parser.rs.
type BSONValueParser struct{}

func NewBSONValueParser() *BSONValueParser { return &BSONValueParser{} }

func (*BSONValueParser) Parse(data []byte) (value.Value, error) {
	var native map[string]interface{}
	if err := bson.Unmarshal(data, &native); err != nil {
		return value.Value{}, err
	}
	return value.FromNative(native), nil
}

// JSONValueSerializer encodes a value.Value as JSON via internal/value's own
// encoder.
type JSONValueSerializer struct{}

func NewJSONValueSerializer() *JSONValueSerializer { return &JSONValueSerializer{} }

func (*JSONValueSerializer) Serialize(v value.Value) ([]byte, error) {
	return value.EncodeJSON(v)
}

// BSONValueSerializer encodes a value.Value as BSON.
type BSONValueSerializer struct{}

func NewBSONValueSerializer() *BSONValueSerializer { return &BSONValueSerializer{} }

func (*BSONValueSerializer) Serialize(v value.Value) ([]byte, error) {
	return bson.Marshal(value.ToNative(v))
}

// MsgPackValueSerializer encodes a value.Value as MessagePack.
type MsgPackValueSerializer struct{}

func NewMsgPackValueSerializer() *MsgPackValueSerializer { return &MsgPackValueSerializer{} }

func (*MsgPackValueSerializer) Serialize(v value.Value) ([]byte, error) {
	return msgpack.Marshal(value.ToNative(v))
}

// ProtobufValueSerializer encodes a value.Value as a protobuf
// structpb.Value message, the natural Go stand-in for the original's
// hand-rolled protobuf_serializer.rs: value.Value's own shape (null, bool,
// number, string, array, object) already matches structpb.Value's oneof.
type ProtobufValueSerializer struct{}

func NewProtobufValueSerializer() *ProtobufValueSerializer { return &ProtobufValueSerializer{} }

func (*ProtobufValueSerializer) Serialize(v value.Value) ([]byte, error) {
	pv, err := structpb.NewValue(value.ToNative(v))
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}
