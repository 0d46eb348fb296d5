package codec

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// DecodeString returns data as a string.
func DecodeString(data []byte) (string, error) {
	return string(data), nil
}

// DecodeInt64 decodes data encoded with Int64.
func DecodeInt64(data []byte) (int64, error) {
	if len(data) != 8 {
		return 0, errors.Errorf("int64 must be encoded on 8 bytes, got %d", len(data))
	}

	return int64(binary.BigEndian.Uint64(data)), nil
}

// DecodeFloat64 decodes data encoded with Float64.
func DecodeFloat64(data []byte) (float64, error) {
	if len(data) != 8 {
		return 0, errors.Errorf("float64 must be encoded on 8 bytes, got %d", len(data))
	}

	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

// DecodeJSON decodes data encoded with JSON.
func DecodeJSON[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// DecodeMsgPack decodes data encoded with MsgPack.
func DecodeMsgPack[T any](data []byte) (T, error) {
	var v T
	err := msgpack.Unmarshal(data, &v)
	return v, err
}
