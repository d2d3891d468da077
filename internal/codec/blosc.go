package codec

import (
	"fmt"

	"github.com/TuSKan/go-zarr/internal/blosc"
)

// Blosc wraps the block compressor: optional byte/bit shuffle preprocessing
// followed by lz4 or zstd compression inside a Blosc frame.
type Blosc struct {
	opts blosc.Options
}

func newBlosc(p Params) (Codec, error) {
	cname, err := blosc.CodecNamed(p.Cname)
	if err != nil {
		return nil, fmt.Errorf("%w: blosc cname %q", ErrBadParams, p.Cname)
	}
	if p.Level < 1 || p.Level > 9 {
		return nil, fmt.Errorf("%w: blosc clevel %d out of range [1,9]", ErrBadParams, p.Level)
	}

	var shuf blosc.Shuffle
	switch p.Shuffle {
	case 0:
		shuf = blosc.NoShuffle
	case 1:
		shuf = blosc.ByteShuffle
	case 2:
		shuf = blosc.BitShuffle
	default:
		return nil, fmt.Errorf("%w: blosc shuffle mode %d", ErrBadParams, p.Shuffle)
	}

	typeSize := p.TypeSize
	if typeSize <= 0 {
		typeSize = 1
	}

	return Blosc{opts: blosc.Options{
		Codec:    cname,
		Level:    p.Level,
		Shuffle:  shuf,
		TypeSize: typeSize,
	}}, nil
}

func (c Blosc) ID() string { return "blosc" }

func (c Blosc) Encode(src []byte) ([]byte, error) {
	return blosc.Compress(src, c.opts)
}

func (c Blosc) Decode(src []byte, expectedLen int) ([]byte, error) {
	out, err := blosc.Decompress(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStream, err)
	}
	if expectedLen >= 0 && len(out) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(out), expectedLen)
	}
	return out, nil
}
