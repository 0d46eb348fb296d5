package codec

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/heetch/felice/v3/message"
)

// Names of the supported compression codecs. They match the names used
// by Kafka for its own compression.codec option.
const (
	None   = "none"
	Gzip   = "gzip"
	Snappy = "snappy"
	LZ4    = "lz4"
	Zstd   = "zstd"
)

// Encoder and decoder are safe for concurrent use through EncodeAll and DecodeAll.
var (
	zstdEncoder = mustZstdEncoder()
	zstdDecoder = mustZstdDecoder()
)

func mustZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	return dec
}

// Compress compresses data with the named codec. An empty name is
// equivalent to None, which returns data untouched.
func Compress(name string, data []byte) ([]byte, error) {
	switch name {
	case "", None:
		return data, nil
	case Gzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, "failed to gzip data")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to gzip data")
		}
		return buf.Bytes(), nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, "failed to lz4 data")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to lz4 data")
		}
		return buf.Bytes(), nil
	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	default:
		return nil, errors.Errorf("unknown compression codec %q", name)
	}
}

// Decompress reverses Compress.
func Decompress(name string, data []byte) ([]byte, error) {
	switch name {
	case "", None:
		return data, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "failed to gunzip data")
		}
		defer r.Close()
		return io.ReadAll(r)
	case Snappy:
		return snappy.Decode(nil, data)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case Zstd:
		return zstdDecoder.DecodeAll(data, nil)
	default:
		return nil, errors.Errorf("unknown compression codec %q", name)
	}
}

// Compressed turns fn into a payload serializer which compresses the
// output of fn with the codec named by the given header. When the header
// is absent the payload is sent uncompressed. The header value must be a
// string.
func Compressed[T any](header string, fn func(T) ([]byte, error)) func(T, message.Headers) ([]byte, error) {
	return func(v T, headers message.Headers) ([]byte, error) {
		data, err := fn(v)
		if err != nil {
			return nil, err
		}

		hv, ok := headers.Get(header)
		if !ok {
			return data, nil
		}
		name, ok := hv.(string)
		if !ok {
			return nil, errors.Errorf("header %q must be a string, got %T instead", header, hv)
		}

		return Compress(name, data)
	}
}
