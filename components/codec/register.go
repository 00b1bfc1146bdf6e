package codec

import (
	"github.com/hatlonely/goflux/internal/registry"
)

// init registers the dynamic-value parsers and serializers under their
// respective interface fingerprints so a {type, options} document can
// request one by name, mirroring register_serde_serializers()/
// register_parsers() in the original's cfg/register.rs.
func init() {
	registry.RegisterInterface[ValueParser, *JSONValueParser](
		"json",
		func(struct{}) (*JSONValueParser, error) { return NewJSONValueParser(), nil },
	)
	registry.RegisterInterface[ValueParser, *BSONValueParser](
		"bson",
		func(struct{}) (*BSONValueParser, error) { return NewBSONValueParser(), nil },
	)

	registry.RegisterInterface[ValueSerializer, *JSONValueSerializer](
		"json",
		func(struct{}) (*JSONValueSerializer, error) { return NewJSONValueSerializer(), nil },
	)
	registry.RegisterInterface[ValueSerializer, *BSONValueSerializer](
		"bson",
		func(struct{}) (*BSONValueSerializer, error) { return NewBSONValueSerializer(), nil },
	)
	registry.RegisterInterface[ValueSerializer, *MsgPackValueSerializer](
		"msgpack",
		func(struct{}) (*MsgPackValueSerializer, error) { return NewMsgPackValueSerializer(), nil },
	)
	registry.RegisterInterface[ValueSerializer, *ProtobufValueSerializer](
		"protobuf",
		func(struct{}) (*ProtobufValueSerializer, error) { return NewProtobufValueSerializer(), nil },
	)
}
