package codec

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
)

// The functions of this file are serializers that can be registered as
// they are on a topic configuration, for keys, payloads or headers:
//
//	producer.SetKeyCallback(cfg, codec.Int64)
//	producer.SetHeaderCallback(cfg, "codec", codec.String)
//	producer.SetPayloadCallback(cfg, codec.Compressed("codec", codec.JSON[Order]))

// String encodes a string into its UTF-8 bytes.
func String(v string) ([]byte, error) {
	return []byte(v), nil
}

// Bytes passes raw data without touching it.
func Bytes(v []byte) ([]byte, error) {
	return v, nil
}

// Int64 encodes v as 8 bytes in big-endian order.
func Int64(v int64) ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b, nil
}

// Float64 encodes the IEEE 754 representation of v as 8 bytes in big-endian order.
func Float64(v float64) ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return b, nil
}

// JSON encodes v using encoding/json.
func JSON[T any](v T) ([]byte, error) {
	return json.Marshal(v)
}

// MsgPack encodes v using MessagePack, which is more compact than JSON
// while keeping it schema-less.
func MsgPack[T any](v T) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Proto encodes v using Protocol Buffers.
func Proto[T proto.Message](v T) ([]byte, error) {
	return proto.Marshal(v)
}
