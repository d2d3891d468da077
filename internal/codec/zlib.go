package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Zlib implements the deflate codec. The level only affects the encode
// path; Decode accepts any valid zlib stream regardless of the level it
// was produced with.
type Zlib struct {
	level int
}

func newZlib(p Params) (Codec, error) {
	if p.Level < 0 || p.Level > 9 {
		return nil, fmt.Errorf("%w: zlib level %d out of range [0,9]", ErrBadParams, p.Level)
	}
	return Zlib{level: p.Level}, nil
}

func (c Zlib) ID() string { return "zlib" }

func (c Zlib) Encode(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

func (c Zlib) Decode(src []byte, expectedLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrBadStream, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrBadStream, err)
	}

	if expectedLen >= 0 && len(out) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(out), expectedLen)
	}
	return out, nil
}
