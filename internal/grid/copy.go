package grid

// Strides returns the per-dimension byte strides of a buffer holding the
// given shape. Row-major (C) layout has the last dimension contiguous;
// column-major (F) layout has the first.
func Strides(shape []int, elemSize int, colMajor bool) []int {
	s := make([]int, len(shape))
	stride := elemSize
	if colMajor {
		for d := 0; d < len(shape); d++ {
			s[d] = stride
			stride *= shape[d]
		}
	} else {
		for d := len(shape) - 1; d >= 0; d-- {
			s[d] = stride
			stride *= shape[d]
		}
	}
	return s
}

// CopyToChunk copies the valid region r of the logical buffer src into the
// chunk buffer dst. Both buffers use the same element layout, so the
// contiguous dimension is copied in whole runs. Positions of dst beyond the
// valid extent are left untouched; callers pre-fill them.
func CopyToChunk(dst, src []byte, r Region, shape, chunks []int, elemSize int, colMajor bool) {
	copyRegion(dst, src,
		Strides(chunks, elemSize, colMajor), Strides(shape, elemSize, colMajor),
		nil, r.Start, r.Valid, elemSize, colMajor)
}

// CopyFromChunk copies the valid region r of the chunk buffer src into its
// place in the logical buffer dst. Padding beyond the valid extent never
// reaches the logical buffer.
func CopyFromChunk(dst, src []byte, r Region, shape, chunks []int, elemSize int, colMajor bool) {
	copyRegion(dst, src,
		Strides(shape, elemSize, colMajor), Strides(chunks, elemSize, colMajor),
		r.Start, nil, r.Valid, elemSize, colMajor)
}

// copyRegion copies an extent-shaped region between two buffers. dstBase and
// srcBase give the region origin in each buffer (nil means the buffer
// origin). Runs along the contiguous dimension are copied with a single
// copy call; the remaining dimensions are walked with an odometer.
func copyRegion(dst, src []byte, dstStrides, srcStrides, dstBase, srcBase, extent []int, elemSize int, colMajor bool) {
	rank := len(extent)
	if rank == 0 {
		copy(dst[:elemSize], src[:elemSize])
		return
	}

	for d := range extent {
		if extent[d] == 0 {
			return
		}
	}

	contig := rank - 1
	if colMajor {
		contig = 0
	}
	runBytes := extent[contig] * elemSize

	dstOff := 0
	srcOff := 0
	if dstBase != nil {
		for d := range dstBase {
			dstOff += dstBase[d] * dstStrides[d]
		}
	}
	if srcBase != nil {
		for d := range srcBase {
			srcOff += srcBase[d] * srcStrides[d]
		}
	}

	pos := make([]int, rank)
	for {
		do, so := dstOff, srcOff
		for d := range pos {
			do += pos[d] * dstStrides[d]
			so += pos[d] * srcStrides[d]
		}
		copy(dst[do:do+runBytes], src[so:so+runBytes])

		// Advance the odometer over every dimension but the contiguous one.
		d := rank - 1
		for ; d >= 0; d-- {
			if d == contig {
				continue
			}
			pos[d]++
			if pos[d] < extent[d] {
				break
			}
			pos[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// Fill tiles dst with the element elem. len(dst) must be a multiple of
// len(elem).
func Fill(dst, elem []byte) {
	if len(elem) == 0 || len(dst) == 0 {
		return
	}
	n := copy(dst, elem)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}
