package blosc

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatBuf(n int) []byte {
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(i)))
	}
	return buf
}

func TestCompressRoundtrip(t *testing.T) {
	data := floatBuf(256)

	tests := []struct {
		name string
		opts Options
	}{
		{"lz4", Options{Codec: LZ4, Level: 5, TypeSize: 4}},
		{"zstd", Options{Codec: ZSTD, Level: 1, TypeSize: 4}},
		{"zstd-shuffle", Options{Codec: ZSTD, Level: 1, Shuffle: ByteShuffle, TypeSize: 4}},
		{"zstd-bitshuffle", Options{Codec: ZSTD, Level: 1, Shuffle: BitShuffle, TypeSize: 4}},
		{"lz4-shuffle", Options{Codec: LZ4, Level: 9, Shuffle: ByteShuffle, TypeSize: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Compress(data, tt.opts)
			require.NoError(t, err)

			got, err := Decompress(frame)
			require.NoError(t, err)
			require.True(t, bytes.Equal(got, data))
		})
	}
}

func TestCompressMemcpyFallback(t *testing.T) {
	// Random bytes do not compress; the frame must fall back to a verbatim
	// copy and still round-trip.
	data := make([]byte, 64)
	rand.New(rand.NewSource(3)).Read(data)

	frame, err := Compress(data, Options{Codec: LZ4, Level: 1, TypeSize: 1})
	require.NoError(t, err)

	h, err := ParseHeader(frame)
	require.NoError(t, err)
	require.True(t, h.memcpy())
	require.Equal(t, uint32(len(data)), h.NBytes)

	got, err := Decompress(frame)
	require.NoError(t, err)
	require.True(t, bytes.Equal(got, data))
}

func TestCompressHeaderFields(t *testing.T) {
	data := floatBuf(64)

	frame, err := Compress(data, Options{Codec: ZSTD, Level: 1, Shuffle: ByteShuffle, TypeSize: 4})
	require.NoError(t, err)

	h, err := ParseHeader(frame)
	require.NoError(t, err)
	require.Equal(t, uint8(FormatVersion), h.Version)
	require.Equal(t, ZSTD, h.Codec)
	require.Equal(t, uint8(4), h.TypeSize)
	require.Equal(t, ByteShuffle, h.shuffle())
	require.Equal(t, uint32(len(data)), h.NBytes)
	require.Equal(t, uint32(len(frame)), h.CBytes)
}

func TestDecompressErrors(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		_, err := Decompress([]byte{1, 2, 3})
		require.ErrorIs(t, err, ErrInvalidHeader)
	})

	t.Run("bad version", func(t *testing.T) {
		frame := make([]byte, HeaderSize)
		frame[0] = 99
		_, err := Decompress(frame)
		require.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("truncated payload", func(t *testing.T) {
		frame, err := Compress(floatBuf(64), Options{Codec: ZSTD, Level: 1, TypeSize: 4})
		require.NoError(t, err)
		frame[12] = 0xFF // cbytes now exceeds the frame
		frame[13] = 0xFF
		_, err = Decompress(frame)
		require.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("corrupt zstd stream", func(t *testing.T) {
		frame, err := Compress(floatBuf(256), Options{Codec: ZSTD, Level: 1, TypeSize: 4})
		require.NoError(t, err)
		h, err := ParseHeader(frame)
		require.NoError(t, err)
		require.False(t, h.memcpy())

		for i := HeaderSize; i < len(frame); i++ {
			frame[i] ^= 0xA5
		}
		_, err = Decompress(frame)
		require.Error(t, err)
	})
}

func TestCodecNamed(t *testing.T) {
	c, err := CodecNamed("lz4")
	require.NoError(t, err)
	require.Equal(t, LZ4, c)

	c, err = CodecNamed("zstd")
	require.NoError(t, err)
	require.Equal(t, ZSTD, c)

	_, err = CodecNamed("snappy")
	require.ErrorIs(t, err, ErrUnsupportedCodec)
}

func TestCompressEmpty(t *testing.T) {
	frame, err := Compress(nil, Options{Codec: LZ4, Level: 1, TypeSize: 4})
	require.NoError(t, err)

	got, err := Decompress(frame)
	require.NoError(t, err)
	require.Len(t, got, 0)
}
