// Package blosc implements the Blosc block compression format: a 16-byte
// frame header followed by a compressed payload, with optional byte- or
// bit-shuffle preprocessing of the uncompressed data.
//
// Frames are written as a single block. Data that does not shrink under
// compression is stored verbatim with the memcpy flag set, so Compress never
// produces a payload larger than the input plus the header.
package blosc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FormatVersion is the Blosc frame format version this package writes.
const FormatVersion = 2

// HeaderSize is the fixed size of the Blosc frame header in bytes.
const HeaderSize = 16

// Codec identifies the compression algorithm used inside a frame.
type Codec uint8

const (
	BloscLZ Codec = iota // not implemented
	LZ4
	LZ4HC  // not implemented, decoded as LZ4
	Snappy // not implemented
	ZLIB   // not implemented
	ZSTD
)

// CodecNamed maps a numcodecs-style cname to a Codec.
func CodecNamed(name string) (Codec, error) {
	switch name {
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCodec, name)
	}
}

func (c Codec) String() string {
	switch c {
	case BloscLZ:
		return "blosclz"
	case LZ4:
		return "lz4"
	case LZ4HC:
		return "lz4hc"
	case Snappy:
		return "snappy"
	case ZLIB:
		return "zlib"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Shuffle selects the pre-compression filter applied to element bytes.
type Shuffle uint8

const (
	NoShuffle   Shuffle = 0
	ByteShuffle Shuffle = 1
	BitShuffle  Shuffle = 2
)

// Header flag bits.
const (
	flagByteShuffle = 0x1
	flagMemcpy      = 0x2
	flagBitShuffle  = 0x4
)

var (
	ErrInvalidHeader    = errors.New("blosc: invalid header")
	ErrInvalidVersion   = errors.New("blosc: unsupported format version")
	ErrInvalidData      = errors.New("blosc: invalid compressed data")
	ErrUnsupportedCodec = errors.New("blosc: unsupported codec")
	ErrSizeMismatch     = errors.New("blosc: decompressed size mismatch")
)

// Header is the 16-byte frame header prefixing every Blosc payload.
type Header struct {
	Version   uint8  // frame format version
	Codec     Codec  // compression algorithm of the payload
	Flags     uint8  // shuffle and memcpy flags
	TypeSize  uint8  // element width the shuffle filter was applied with
	NBytes    uint32 // uncompressed size
	Blocksize uint32
	CBytes    uint32 // total frame size, header included
}

// ParseHeader decodes a frame header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrInvalidHeader
	}

	h := Header{
		Version:   data[0],
		Codec:     Codec(data[1]),
		Flags:     data[2],
		TypeSize:  data[3],
		NBytes:    binary.LittleEndian.Uint32(data[4:8]),
		Blocksize: binary.LittleEndian.Uint32(data[8:12]),
		CBytes:    binary.LittleEndian.Uint32(data[12:16]),
	}

	if h.Version != FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}

	return h, nil
}

func (h Header) bytes() []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = h.Version
	buf[1] = uint8(h.Codec)
	buf[2] = h.Flags
	buf[3] = h.TypeSize
	binary.LittleEndian.PutUint32(buf[4:8], h.NBytes)
	binary.LittleEndian.PutUint32(buf[8:12], h.Blocksize)
	binary.LittleEndian.PutUint32(buf[12:16], h.CBytes)
	return buf
}

func (h Header) shuffle() Shuffle {
	if h.Flags&flagBitShuffle != 0 {
		return BitShuffle
	}
	if h.Flags&flagByteShuffle != 0 {
		return ByteShuffle
	}
	return NoShuffle
}

func (h Header) memcpy() bool {
	return h.Flags&flagMemcpy != 0
}

// Options configures Compress.
type Options struct {
	Codec    Codec
	Level    int // 1-9, clamped
	Shuffle  Shuffle
	TypeSize int // element width in bytes for the shuffle filter
}

// Compress encodes data into a single-block Blosc frame.
func Compress(data []byte, opts Options) ([]byte, error) {
	if opts.TypeSize <= 0 {
		opts.TypeSize = 1
	}
	if opts.Level < 1 {
		opts.Level = 1
	}
	if opts.Level > 9 {
		opts.Level = 9
	}

	shuffled := data
	switch opts.Shuffle {
	case ByteShuffle:
		shuffled = ShuffleBytes(data, opts.TypeSize)
	case BitShuffle:
		shuffled = ShuffleBits(data, opts.TypeSize)
	}

	var compressed []byte
	var err error
	switch opts.Codec {
	case LZ4:
		compressed, err = lz4Compress(shuffled)
	case ZSTD:
		compressed, err = zstdCompress(shuffled, opts.Level)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, opts.Codec)
	}
	if err != nil {
		return nil, err
	}

	// Store the shuffled bytes verbatim when compression does not pay off.
	memcpy := compressed == nil || len(compressed) >= len(shuffled)
	if memcpy {
		compressed = shuffled
	}

	flags := uint8(0)
	switch opts.Shuffle {
	case ByteShuffle:
		flags |= flagByteShuffle
	case BitShuffle:
		flags |= flagBitShuffle
	}
	if memcpy {
		flags |= flagMemcpy
	}

	h := Header{
		Version:   FormatVersion,
		Codec:     opts.Codec,
		Flags:     flags,
		TypeSize:  uint8(opts.TypeSize),
		NBytes:    uint32(len(data)),
		Blocksize: uint32(len(data)),
		CBytes:    uint32(HeaderSize + len(compressed)),
	}

	frame := make([]byte, HeaderSize+len(compressed))
	copy(frame, h.bytes())
	copy(frame[HeaderSize:], compressed)
	return frame, nil
}

// Decompress decodes a Blosc frame produced by Compress, reversing the
// compression and any shuffle filter recorded in the header.
func Decompress(data []byte) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if int(h.CBytes) > len(data) || h.CBytes < HeaderSize {
		return nil, ErrInvalidData
	}
	payload := data[HeaderSize:h.CBytes]

	var raw []byte
	if h.memcpy() {
		raw = make([]byte, len(payload))
		copy(raw, payload)
	} else {
		switch h.Codec {
		case LZ4, LZ4HC:
			raw, err = lz4Decompress(payload, int(h.NBytes))
		case ZSTD:
			raw, err = zstdDecompress(payload)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, h.Codec)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(raw) != int(h.NBytes) {
		return nil, fmt.Errorf("%w: got %d bytes, header says %d", ErrSizeMismatch, len(raw), h.NBytes)
	}

	switch h.shuffle() {
	case ByteShuffle:
		raw = UnshuffleBytes(raw, int(h.TypeSize))
	case BitShuffle:
		raw = UnshuffleBits(raw, int(h.TypeSize))
	}

	return raw, nil
}
