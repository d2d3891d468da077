package blosc

// ShuffleBytes reorders src so that byte position 0 of every element comes
// first, then byte position 1, and so on: the transpose of an n-by-typeSize
// byte matrix. Grouping same-significance bytes together makes typed numeric
// data far more compressible.
//
// typeSize must evenly divide len(src); chunk buffers are always a whole
// number of elements, so callers never hit a ragged tail. For typeSize <= 1
// the input is returned unchanged.
func ShuffleBytes(src []byte, typeSize int) []byte {
	if typeSize <= 1 || len(src) == 0 {
		return src
	}

	numElems := len(src) / typeSize
	dst := make([]byte, len(src))

	for i := 0; i < numElems; i++ {
		for j := 0; j < typeSize; j++ {
			dst[j*numElems+i] = src[i*typeSize+j]
		}
	}

	return dst
}

// UnshuffleBytes is the inverse of ShuffleBytes: it gathers the grouped byte
// positions back into contiguous elements.
func UnshuffleBytes(src []byte, typeSize int) []byte {
	if typeSize <= 1 || len(src) == 0 {
		return src
	}

	numElems := len(src) / typeSize
	dst := make([]byte, len(src))

	for i := 0; i < numElems; i++ {
		for j := 0; j < typeSize; j++ {
			dst[i*typeSize+j] = src[j*numElems+i]
		}
	}

	return dst
}

// ShuffleBits is the bit-granularity analogue of ShuffleBytes: the buffer is
// treated as an n-by-(8*typeSize) bit matrix and transposed, so that bit
// position 0 of every element comes first, then bit position 1, and so on.
// This groups sign bits, exponent bits and same-significance mantissa bits
// together, which compresses floating-point data especially well.
//
// The total bit count n*8*typeSize is always a whole number of bytes, so no
// padding convention is needed.
func ShuffleBits(src []byte, typeSize int) []byte {
	if typeSize < 1 {
		typeSize = 1
	}
	if len(src) == 0 {
		return src
	}

	elemBits := typeSize * 8
	numElems := len(src) / typeSize
	dst := make([]byte, len(src))

	for i := 0; i < numElems; i++ {
		for j := 0; j < elemBits; j++ {
			if getBit(src, i*elemBits+j) {
				setBit(dst, j*numElems+i)
			}
		}
	}

	return dst
}

// UnshuffleBits is the inverse of ShuffleBits.
func UnshuffleBits(src []byte, typeSize int) []byte {
	if typeSize < 1 {
		typeSize = 1
	}
	if len(src) == 0 {
		return src
	}

	elemBits := typeSize * 8
	numElems := len(src) / typeSize
	dst := make([]byte, len(src))

	for i := 0; i < numElems; i++ {
		for j := 0; j < elemBits; j++ {
			if getBit(src, j*numElems+i) {
				setBit(dst, i*elemBits+j)
			}
		}
	}

	return dst
}

func getBit(b []byte, pos int) bool {
	return b[pos>>3]&(1<<uint(7-pos&7)) != 0
}

func setBit(b []byte, pos int) {
	b[pos>>3] |= 1 << uint(7-pos&7)
}
