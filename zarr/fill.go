package zarr

import (
	"fmt"
	"math"
)

// fillBytes encodes a metadata fill value into a single element of the given
// dtype, honoring its byte order. A nil fill value encodes as zero bytes.
// Float dtypes additionally accept the v2 string markers "NaN", "Infinity"
// and "-Infinity".
func fillBytes(fill any, dt DType) ([]byte, error) {
	elem := make([]byte, dt.Size)
	if fill == nil {
		return elem, nil
	}

	if dt.Kind == 'b' {
		b, ok := fill.(bool)
		if !ok {
			return nil, fmt.Errorf("fill value %v is not a bool", fill)
		}
		if b {
			elem[0] = 1
		}
		return elem, nil
	}

	var f float64
	switch v := fill.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		if dt.Kind != 'f' {
			return nil, fmt.Errorf("fill value %q is only valid for float dtypes", v)
		}
		switch v {
		case "NaN":
			f = math.NaN()
		case "Infinity":
			f = math.Inf(1)
		case "-Infinity":
			f = math.Inf(-1)
		default:
			return nil, fmt.Errorf("unknown fill value marker %q", v)
		}
	default:
		return nil, fmt.Errorf("fill value %v (%T) is not numeric", fill, fill)
	}

	order := dt.ByteOrder()
	switch dt.Kind {
	case 'f':
		if dt.Size == 4 {
			order.PutUint32(elem, math.Float32bits(float32(f)))
		} else {
			order.PutUint64(elem, math.Float64bits(f))
		}
	case 'i', 'u':
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("fill value %v is not an integer", f)
		}
		if dt.Kind == 'u' && f < 0 {
			return nil, fmt.Errorf("fill value %v is negative for an unsigned dtype", f)
		}
		u := uint64(int64(f))
		switch dt.Size {
		case 1:
			elem[0] = byte(u)
		case 2:
			order.PutUint16(elem, uint16(u))
		case 4:
			order.PutUint32(elem, uint32(u))
		case 8:
			order.PutUint64(elem, u)
		}
	default:
		return nil, fmt.Errorf("unsupported dtype kind %q", dt.Kind)
	}

	return elem, nil
}

// isZero reports whether every byte of b is zero. Freshly allocated buffers
// are already zero filled, so a zero fill element needs no extra pass.
func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
