package zarr

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// DType describes a parsed numpy-style dtype tag such as "<f4" or ">i8":
// a byte-order marker, a kind letter and a decimal byte width.
type DType struct {
	Kind      byte // 'b', 'i', 'u' or 'f'
	Size      int  // element width in bytes
	BigEndian bool
	Name      string // Go-style name, e.g. "float32"
}

// ByteOrder returns the binary byte order of the element encoding.
// Single-byte types report little-endian; the order is irrelevant for them.
func (d DType) ByteOrder() binary.ByteOrder {
	if d.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Tag returns the dtype back in numpy notation.
func (d DType) Tag() string {
	marker := byte('<')
	if d.BigEndian {
		marker = '>'
	}
	if d.Size == 1 {
		marker = '|'
	}
	return fmt.Sprintf("%c%c%d", marker, d.Kind, d.Size)
}

// ParseDType parses a numpy-style dtype tag. Supported kinds are b1 (bool),
// i1/i2/i4/i8, u1/u2/u4/u8 and f4/f8, with an explicit byte-order marker:
// '<' little-endian, '>' big-endian, or '|' for single-byte types.
func ParseDType(s string) (DType, error) {
	if len(s) < 3 {
		return DType{}, fmt.Errorf("invalid dtype %q", s)
	}

	marker := s[0]
	kind := s[1]
	size, err := strconv.Atoi(s[2:])
	if err != nil {
		return DType{}, fmt.Errorf("invalid size in dtype %q", s)
	}

	var big bool
	switch marker {
	case '<':
	case '>':
		big = true
	case '|':
		if size != 1 {
			return DType{}, fmt.Errorf("dtype %q: '|' marker requires a single-byte type", s)
		}
	default:
		return DType{}, fmt.Errorf("dtype %q: unknown byte-order marker %q", s, marker)
	}

	var name string
	switch kind {
	case 'b':
		if size != 1 {
			return DType{}, fmt.Errorf("dtype %q: bool must be 1 byte", s)
		}
		name = "bool"
	case 'i', 'u':
		switch size {
		case 1, 2, 4, 8:
		default:
			return DType{}, fmt.Errorf("dtype %q: unsupported integer width %d", s, size)
		}
		name = fmt.Sprintf("int%d", size*8)
		if kind == 'u' {
			name = "u" + name
		}
	case 'f':
		switch size {
		case 4, 8:
		default:
			return DType{}, fmt.Errorf("dtype %q: unsupported float width %d", s, size)
		}
		name = fmt.Sprintf("float%d", size*8)
	default:
		return DType{}, fmt.Errorf("dtype %q: unsupported kind %q", s, kind)
	}

	return DType{Kind: kind, Size: size, BigEndian: big, Name: name}, nil
}
