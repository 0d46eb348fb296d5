package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/heetch/felice/v3/codec"
	"github.com/heetch/felice/v3/message"
)

type order struct {
	ID     int64   `json:"id" msgpack:"id"`
	Amount float64 `json:"amount" msgpack:"amount"`
}

func TestEncoding(t *testing.T) {
	tests := []struct {
		name     string
		encode   func() ([]byte, error)
		expected []byte
	}{
		{"string", func() ([]byte, error) { return codec.String("hello") }, []byte("hello")},
		{"bytes", func() ([]byte, error) { return codec.Bytes([]byte("hello")) }, []byte("hello")},
		{"int64", func() ([]byte, error) { return codec.Int64(42) }, []byte{0, 0, 0, 0, 0, 0, 0, 42}},
		{"int64/negative", func() ([]byte, error) { return codec.Int64(-1) }, bytes.Repeat([]byte{0xff}, 8)},
		{"float64", func() ([]byte, error) { return codec.Float64(1) }, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}},
		{"json", func() ([]byte, error) { return codec.JSON(order{ID: 1, Amount: 2.5}) }, []byte(`{"id":1,"amount":2.5}`)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, err := test.encode()
			require.NoError(t, err)
			require.Equal(t, test.expected, res)
		})
	}
}

func TestJSONError(t *testing.T) {
	_, err := codec.JSON(make(chan bool))
	require.EqualError(t, err, "json: unsupported type: chan bool")
}

func TestRoundTrip(t *testing.T) {
	t.Run("int64", func(t *testing.T) {
		data, err := codec.Int64(-10)
		require.NoError(t, err)
		v, err := codec.DecodeInt64(data)
		require.NoError(t, err)
		require.Equal(t, int64(-10), v)
	})

	t.Run("float64", func(t *testing.T) {
		data, err := codec.Float64(-3.14)
		require.NoError(t, err)
		v, err := codec.DecodeFloat64(data)
		require.NoError(t, err)
		require.Equal(t, -3.14, v)
	})

	t.Run("string", func(t *testing.T) {
		data, err := codec.String("hello")
		require.NoError(t, err)
		v, err := codec.DecodeString(data)
		require.NoError(t, err)
		require.Equal(t, "hello", v)
	})

	t.Run("json", func(t *testing.T) {
		data, err := codec.JSON(order{ID: 7, Amount: 9.99})
		require.NoError(t, err)
		v, err := codec.DecodeJSON[order](data)
		require.NoError(t, err)
		require.Equal(t, order{ID: 7, Amount: 9.99}, v)
	})

	t.Run("msgpack", func(t *testing.T) {
		data, err := codec.MsgPack(order{ID: 7, Amount: 9.99})
		require.NoError(t, err)
		v, err := codec.DecodeMsgPack[order](data)
		require.NoError(t, err)
		require.Equal(t, order{ID: 7, Amount: 9.99}, v)
	})

	t.Run("proto", func(t *testing.T) {
		data, err := codec.Proto(wrapperspb.String("hello"))
		require.NoError(t, err)
		var v wrapperspb.StringValue
		require.NoError(t, proto.Unmarshal(data, &v))
		require.Equal(t, "hello", v.GetValue())
	})
}

func TestDecodingErrors(t *testing.T) {
	_, err := codec.DecodeInt64([]byte{1, 2})
	require.EqualError(t, err, "int64 must be encoded on 8 bytes, got 2")

	_, err = codec.DecodeFloat64(nil)
	require.EqualError(t, err, "float64 must be encoded on 8 bytes, got 0")
}

func TestCompression(t *testing.T) {
	data := bytes.Repeat([]byte("felice "), 100)

	for _, name := range []string{"", codec.None, codec.Gzip, codec.Snappy, codec.LZ4, codec.Zstd} {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(name, data)
			require.NoError(t, err)
			if name != "" && name != codec.None {
				require.Less(t, len(compressed), len(data))
			}

			res, err := codec.Decompress(name, compressed)
			require.NoError(t, err)
			require.Equal(t, data, res)
		})
	}
}

func TestCompressionUnknownCodec(t *testing.T) {
	_, err := codec.Compress("brotli", []byte("x"))
	require.EqualError(t, err, `unknown compression codec "brotli"`)

	_, err = codec.Decompress("brotli", []byte("x"))
	require.EqualError(t, err, `unknown compression codec "brotli"`)
}

func TestCompressed(t *testing.T) {
	fn := codec.Compressed("codec", codec.JSON[order])
	o := order{ID: 1, Amount: 10}

	plain, err := fn(o, nil)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":1,"amount":10}`), plain)

	gz, err := fn(o, message.New(message.With("codec", codec.Gzip)))
	require.NoError(t, err)
	require.NotEqual(t, plain, gz)

	res, err := codec.Decompress(codec.Gzip, gz)
	require.NoError(t, err)
	require.Equal(t, plain, res)

	_, err = fn(o, message.New(message.With("codec", 1)))
	require.EqualError(t, err, `header "codec" must be a string, got int instead`)
}
