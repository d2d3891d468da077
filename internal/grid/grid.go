// Package grid maps an array shape and chunk shape onto the set of chunk
// indices and the logical region each chunk covers.
//
// Chunk counts are ceil(shape/chunks) per dimension. Iteration is row-major
// (outermost dimension varies slowest), finite and restartable, and the
// regions of all chunks cover the logical array exactly once with no overlap.
package grid

// Counts returns the number of chunks in each dimension. For rank-0 arrays
// the result is empty; such arrays have exactly one chunk.
func Counts(shape, chunks []int) []int {
	counts := make([]int, len(shape))
	for i := range shape {
		counts[i] = (shape[i] + chunks[i] - 1) / chunks[i]
	}
	return counts
}

// Total returns the total number of chunks in a grid. A rank-0 grid has a
// single chunk.
func Total(counts []int) int {
	total := 1
	for _, c := range counts {
		total *= c
	}
	return total
}

// Iterator walks a chunk grid in row-major order. The zero-dimensional grid
// yields a single empty index.
type Iterator struct {
	counts []int
	next   []int
	done   bool
}

// NewIterator returns an iterator positioned at the first chunk index.
func NewIterator(counts []int) *Iterator {
	it := &Iterator{counts: counts}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the first chunk index.
func (it *Iterator) Reset() {
	it.next = make([]int, len(it.counts))
	it.done = false
	for _, c := range it.counts {
		if c <= 0 {
			it.done = true
		}
	}
}

// Next returns the next chunk index, or false once the grid is exhausted.
// The returned slice is owned by the caller.
func (it *Iterator) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}

	idx := make([]int, len(it.next))
	copy(idx, it.next)

	// Advance, innermost dimension fastest.
	d := len(it.next) - 1
	for ; d >= 0; d-- {
		it.next[d]++
		if it.next[d] < it.counts[d] {
			break
		}
		it.next[d] = 0
	}
	if d < 0 {
		it.done = true
	}

	return idx, true
}

// Region describes the part of the logical array a chunk covers.
type Region struct {
	Start  []int // logical coordinates of the chunk origin
	Extent []int // full chunk shape
	Valid  []int // extent clipped at the array edge; <= Extent per dimension
}

// RegionFor computes the logical region of the chunk at idx. At the trailing
// edge of each dimension Valid is smaller than Extent; positions beyond it
// are padding.
func RegionFor(idx, shape, chunks []int) Region {
	r := Region{
		Start:  make([]int, len(shape)),
		Extent: make([]int, len(shape)),
		Valid:  make([]int, len(shape)),
	}
	for d := range shape {
		r.Start[d] = idx[d] * chunks[d]
		r.Extent[d] = chunks[d]
		r.Valid[d] = chunks[d]
		if r.Start[d]+r.Valid[d] > shape[d] {
			r.Valid[d] = shape[d] - r.Start[d]
		}
	}
	return r
}
