package zarr

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/TuSKan/go-zarr/internal/codec"
	"github.com/TuSKan/go-zarr/internal/grid"
)

// Write persists the full logical array. data must hold exactly
// product(shape) elements in the descriptor's element layout. Every chunk
// blob is written before the metadata document, so readers never observe an
// array whose chunks were not fully persisted.
func (a *Array) Write(ctx context.Context, data []byte) error {
	m := a.meta
	dt, err := m.dtype()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if want := m.numElements() * dt.Size; len(data) != want {
		return fmt.Errorf("%w: buffer is %d bytes, shape %v with dtype %s requires %d",
			ErrValidation, len(data), m.Shape, m.DType, want)
	}

	fillElem, err := fillBytes(m.FillValue, dt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cdc, err := codec.New(m.codecParams(dt.Size))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	counts := grid.Counts(m.Shape, m.Chunks)

	writeChunk := func(idx []int) error {
		enc, err := a.encodeChunk(cdc, data, idx, dt.Size, fillElem)
		if err != nil {
			return err
		}
		key := a.chunkKey(idx)
		if err := a.bucket.WriteAll(ctx, key, enc, nil); err != nil {
			return fmt.Errorf("%w: writing chunk %s: %v", ErrIO, key, err)
		}
		return nil
	}

	if err := a.forEachChunk(counts, writeChunk); err != nil {
		return err
	}

	// Metadata last: only a fully written array becomes readable.
	doc, err := m.Encode()
	if err != nil {
		return err
	}
	if err := a.bucket.WriteAll(ctx, metadataKey, doc, nil); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, metadataKey, err)
	}
	return nil
}

// encodeChunk builds the full chunk buffer for idx (padding positions beyond
// the valid extent with the fill value) and runs it through the codec.
func (a *Array) encodeChunk(cdc codec.Codec, data []byte, idx []int, elemSize int, fillElem []byte) ([]byte, error) {
	m := a.meta
	buf := make([]byte, m.chunkElements()*elemSize)

	r := grid.RegionFor(idx, m.Shape, m.Chunks)
	if partial(r) && !isZero(fillElem) {
		grid.Fill(buf, fillElem)
	}
	grid.CopyToChunk(buf, data, r, m.Shape, m.Chunks, elemSize, m.colMajor())

	out, err := cdc.Encode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding chunk %s: %v", ErrCodec, a.chunkKey(idx), err)
	}
	return out, nil
}

// forEachChunk runs fn for every chunk index of the grid, sequentially by
// default or on a bounded errgroup when WithWorkers was given. fn must be
// safe to call from multiple goroutines when workers > 1.
func (a *Array) forEachChunk(counts []int, fn func(idx []int) error) error {
	it := grid.NewIterator(counts)

	if a.opts.workers <= 1 {
		for idx, ok := it.Next(); ok; idx, ok = it.Next() {
			if err := fn(idx); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(a.opts.workers)
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		idx := idx
		g.Go(func() error { return fn(idx) })
	}
	return g.Wait()
}

// partial reports whether a region is clipped at the array edge.
func partial(r grid.Region) bool {
	for d := range r.Valid {
		if r.Valid[d] != r.Extent[d] {
			return true
		}
	}
	return false
}
