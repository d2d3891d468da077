// Package codec implements the chunk codec registry: reversible byte
// transforms applied to chunk buffers on write and reversed on read.
//
// A codec is selected from the array's compressor configuration. Each codec
// validates its own parameters at construction time and checks the decoded
// length against the expected chunk volume on the decode path.
package codec

import (
	"errors"
	"fmt"
)

// Codec transforms chunk buffers between their raw and stored forms.
type Codec interface {
	// ID returns the codec identifier as it appears in array metadata.
	ID() string

	// Encode transforms a raw chunk buffer into its stored form.
	Encode(src []byte) ([]byte, error)

	// Decode reverses Encode. expectedLen is the raw chunk buffer size;
	// a decoded result of any other length is an error.
	Decode(src []byte, expectedLen int) ([]byte, error)
}

// Params carries the compressor configuration a codec is built from.
// Fields beyond ID are meaningful only for the codecs that use them.
type Params struct {
	ID       string // "", "zlib", "gzip" or "blosc"
	Cname    string // blosc: internal algorithm name
	Level    int    // compression level
	Shuffle  int    // blosc: 0 none, 1 byte shuffle, 2 bit shuffle
	TypeSize int    // element width in bytes
}

var (
	ErrUnknown   = errors.New("unknown codec")
	ErrBadParams = errors.New("invalid codec parameters")
	ErrLength    = errors.New("decoded length mismatch")
	ErrBadStream = errors.New("malformed compressed stream")
)

// registry maps codec IDs to constructors.
var registry = map[string]func(Params) (Codec, error){
	"":      func(Params) (Codec, error) { return Identity{}, nil },
	"zlib":  newZlib,
	"gzip":  newZlib, // alias accepted for compatibility
	"blosc": newBlosc,
}

// New builds the codec described by p. An empty ID yields the identity
// codec (no transform).
func New(p Params) (Codec, error) {
	ctor, ok := registry[p.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, p.ID)
	}
	return ctor(p)
}

// Known reports whether id names a registered codec.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// Identity is the pass-through codec used when no compressor is configured.
type Identity struct{}

func (Identity) ID() string { return "" }

func (Identity) Encode(src []byte) ([]byte, error) { return src, nil }

func (Identity) Decode(src []byte, expectedLen int) ([]byte, error) {
	if expectedLen >= 0 && len(src) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(src), expectedLen)
	}
	return src, nil
}
