package grid

import (
	"reflect"
	"testing"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		shape, chunks, want []int
	}{
		{[]int{4, 4}, []int{2, 2}, []int{2, 2}},
		{[]int{3, 3}, []int{2, 2}, []int{2, 2}},
		{[]int{10}, []int{3}, []int{4}},
		{[]int{1, 1, 1}, []int{2, 2, 2}, []int{1, 1, 1}},
		{[]int{}, []int{}, []int{}},
	}

	for _, tt := range tests {
		got := Counts(tt.shape, tt.chunks)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Counts(%v, %v) = %v, want %v", tt.shape, tt.chunks, got, tt.want)
		}
	}
}

func TestIteratorRowMajor(t *testing.T) {
	it := NewIterator([]int{2, 3})

	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	var got [][]int
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		got = append(got, idx)
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("iteration order = %v, want %v", got, want)
	}

	// Restartable: a reset iterator yields the same sequence again.
	it.Reset()
	var again [][]int
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		again = append(again, idx)
	}
	if !reflect.DeepEqual(again, want) {
		t.Fatalf("iteration after Reset = %v, want %v", again, want)
	}
}

func TestIteratorRankZero(t *testing.T) {
	it := NewIterator(nil)

	idx, ok := it.Next()
	if !ok || len(idx) != 0 {
		t.Fatalf("rank-0 grid: first Next() = (%v, %v), want one empty index", idx, ok)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("rank-0 grid must yield exactly one index")
	}
}

func TestRegionForPartialChunks(t *testing.T) {
	shape := []int{3, 3}
	chunks := []int{2, 2}

	tests := []struct {
		idx   []int
		start []int
		valid []int
	}{
		{[]int{0, 0}, []int{0, 0}, []int{2, 2}},
		{[]int{0, 1}, []int{0, 2}, []int{2, 1}},
		{[]int{1, 0}, []int{2, 0}, []int{1, 2}},
		{[]int{1, 1}, []int{2, 2}, []int{1, 1}},
	}

	for _, tt := range tests {
		r := RegionFor(tt.idx, shape, chunks)
		if !reflect.DeepEqual(r.Start, tt.start) {
			t.Errorf("RegionFor(%v).Start = %v, want %v", tt.idx, r.Start, tt.start)
		}
		if !reflect.DeepEqual(r.Extent, chunks) {
			t.Errorf("RegionFor(%v).Extent = %v, want %v", tt.idx, r.Extent, chunks)
		}
		if !reflect.DeepEqual(r.Valid, tt.valid) {
			t.Errorf("RegionFor(%v).Valid = %v, want %v", tt.idx, r.Valid, tt.valid)
		}
	}
}

// Every position of the logical array must be covered by exactly one chunk's
// valid extent.
func TestRegionsCoverExactlyOnce(t *testing.T) {
	shape := []int{5, 3, 7}
	chunks := []int{2, 2, 3}

	covered := make(map[[3]int]int)
	it := NewIterator(Counts(shape, chunks))
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		r := RegionFor(idx, shape, chunks)
		for x := 0; x < r.Valid[0]; x++ {
			for y := 0; y < r.Valid[1]; y++ {
				for z := 0; z < r.Valid[2]; z++ {
					covered[[3]int{r.Start[0] + x, r.Start[1] + y, r.Start[2] + z}]++
				}
			}
		}
	}

	total := shape[0] * shape[1] * shape[2]
	if len(covered) != total {
		t.Fatalf("covered %d positions, want %d", len(covered), total)
	}
	for pos, n := range covered {
		if n != 1 {
			t.Fatalf("position %v covered %d times", pos, n)
		}
	}
}

func TestCopyRoundtrip(t *testing.T) {
	shape := []int{3, 5}
	chunks := []int{2, 2}
	const elemSize = 2

	src := make([]byte, 3*5*elemSize)
	for i := range src {
		src[i] = byte(i + 1)
	}

	for _, colMajor := range []bool{false, true} {
		dst := make([]byte, len(src))
		it := NewIterator(Counts(shape, chunks))
		for idx, ok := it.Next(); ok; idx, ok = it.Next() {
			r := RegionFor(idx, shape, chunks)
			chunk := make([]byte, chunks[0]*chunks[1]*elemSize)
			CopyToChunk(chunk, src, r, shape, chunks, elemSize, colMajor)
			CopyFromChunk(dst, chunk, r, shape, chunks, elemSize, colMajor)
		}

		if !reflect.DeepEqual(dst, src) {
			t.Errorf("colMajor=%v: reassembled buffer differs\ngot:  %v\nwant: %v", colMajor, dst, src)
		}
	}
}

// Chunk padding bytes must never reach the logical buffer.
func TestCopyFromChunkIgnoresPadding(t *testing.T) {
	shape := []int{3, 3}
	chunks := []int{2, 2}
	const elemSize = 1

	// The trailing corner chunk has valid extent (1,1).
	r := RegionFor([]int{1, 1}, shape, chunks)

	chunk := []byte{7, 0xEE, 0xEE, 0xEE}
	dst := make([]byte, 9)
	CopyFromChunk(dst, chunk, r, shape, chunks, elemSize, false)

	want := make([]byte, 9)
	want[8] = 7
	if !reflect.DeepEqual(dst, want) {
		t.Fatalf("padding leaked: got %v, want %v", dst, want)
	}
}

func TestCopyRankZero(t *testing.T) {
	src := []byte{0xAB, 0xCD, 0xEF, 0x01}
	chunk := make([]byte, 4)
	r := RegionFor(nil, nil, nil)

	CopyToChunk(chunk, src, r, nil, nil, 4, false)
	if !reflect.DeepEqual(chunk, src) {
		t.Fatalf("rank-0 CopyToChunk: got %v, want %v", chunk, src)
	}

	dst := make([]byte, 4)
	CopyFromChunk(dst, chunk, r, nil, nil, 4, false)
	if !reflect.DeepEqual(dst, src) {
		t.Fatalf("rank-0 CopyFromChunk: got %v, want %v", dst, src)
	}
}

func TestStrides(t *testing.T) {
	if got := Strides([]int{4, 4}, 4, false); !reflect.DeepEqual(got, []int{16, 4}) {
		t.Errorf("C strides = %v, want [16 4]", got)
	}
	if got := Strides([]int{4, 4}, 4, true); !reflect.DeepEqual(got, []int{4, 16}) {
		t.Errorf("F strides = %v, want [4 16]", got)
	}
}

func TestFill(t *testing.T) {
	buf := make([]byte, 12)
	Fill(buf, []byte{1, 2, 3, 4})

	want := []byte{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}
	if !reflect.DeepEqual(buf, want) {
		t.Fatalf("Fill = %v, want %v", buf, want)
	}
}
