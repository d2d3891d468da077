package zarr

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/gcerrors"

	"github.com/TuSKan/go-zarr/internal/codec"
	"github.com/TuSKan/go-zarr/internal/grid"
)

// Read reconstructs the full logical array. Chunks without a stored blob
// read as all fill value; that is a first-class state, not an error. The
// result is bit-exact with respect to the buffer that was written.
func (a *Array) Read(ctx context.Context) ([]byte, error) {
	m := a.meta
	dt, err := m.dtype()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	fillElem, err := fillBytes(m.FillValue, dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	cdc, err := codec.New(m.codecParams(dt.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	data := make([]byte, m.numElements()*dt.Size)
	if !isZero(fillElem) {
		grid.Fill(data, fillElem)
	}

	counts := grid.Counts(m.Shape, m.Chunks)
	chunkBytes := m.chunkElements() * dt.Size

	readChunk := func(idx []int) error {
		buf, found, err := a.decodeChunk(ctx, cdc, idx, chunkBytes)
		if err != nil || !found {
			return err
		}
		// Each chunk targets a disjoint sub-region of data, so concurrent
		// copies need no locking.
		r := grid.RegionFor(idx, m.Shape, m.Chunks)
		grid.CopyFromChunk(data, buf, r, m.Shape, m.Chunks, dt.Size, m.colMajor())
		return nil
	}

	if err := a.forEachChunk(counts, readChunk); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadChunk reads and decodes the single chunk at the given grid coordinates,
// returning its full buffer (padding included). A missing chunk yields a
// buffer entirely equal to the fill value.
func (a *Array) ReadChunk(ctx context.Context, coords []int) ([]byte, error) {
	m := a.meta
	dt, err := m.dtype()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	counts := grid.Counts(m.Shape, m.Chunks)
	if len(coords) != len(counts) {
		return nil, fmt.Errorf("%w: chunk coordinates %v have rank %d, grid has rank %d",
			ErrValidation, coords, len(coords), len(counts))
	}
	for d, c := range coords {
		if c < 0 || c >= counts[d] {
			return nil, fmt.Errorf("%w: chunk coordinate %d out of range [0,%d) in dimension %d",
				ErrValidation, c, counts[d], d)
		}
	}

	cdc, err := codec.New(m.codecParams(dt.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	chunkBytes := m.chunkElements() * dt.Size
	buf, found, err := a.decodeChunk(ctx, cdc, coords, chunkBytes)
	if err != nil {
		return nil, err
	}
	if !found {
		fillElem, err := fillBytes(m.FillValue, dt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
		}
		buf = make([]byte, chunkBytes)
		if !isZero(fillElem) {
			grid.Fill(buf, fillElem)
		}
	}
	return buf, nil
}

// decodeChunk fetches and decodes one chunk blob. found is false when the
// store holds no blob for the index.
func (a *Array) decodeChunk(ctx context.Context, cdc codec.Codec, idx []int, chunkBytes int) (buf []byte, found bool, err error) {
	key := a.chunkKey(idx)

	raw, err := a.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: reading chunk %s: %v", ErrIO, key, err)
	}

	buf, err = cdc.Decode(raw, chunkBytes)
	if err != nil {
		if errors.Is(err, codec.ErrLength) {
			return nil, false, fmt.Errorf("%w: chunk %s: %v", ErrCorruption, key, err)
		}
		return nil, false, fmt.Errorf("%w: decoding chunk %s: %v", ErrCodec, key, err)
	}
	return buf, true, nil
}
