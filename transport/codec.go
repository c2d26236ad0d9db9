package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype requests and responses
// are exchanged with
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Codec returns the codec registered under CodecName
func Codec() encoding.Codec {
	return jsonCodec{}
}
