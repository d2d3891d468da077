package zarr

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Array is a handle on a single Zarr v2 array in a blob store. A handle
// obtained from Open is readable; a handle obtained from Create accepts one
// full-array Write. The package provides no synchronization between writers
// and readers of the same array; callers needing concurrent mutation must
// add external locking.
type Array struct {
	bucket *blob.Bucket
	owned  bool // bucket opened by us, closed on Close
	meta   *Metadata
	opts   *options
}

// Open opens the array stored under the given gocloud.dev bucket URL
// (for example "file:///data/temps.zarr") and reads its metadata.
func Open(ctx context.Context, urlstr string, opts ...Option) (*Array, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("%w: opening bucket %q: %v", ErrIO, urlstr, err)
	}

	a, err := OpenBucket(ctx, bucket, opts...)
	if err != nil {
		bucket.Close()
		return nil, err
	}
	a.owned = true
	return a, nil
}

// OpenBucket opens the array stored at the root of an existing bucket.
// The caller retains ownership of the bucket.
func OpenBucket(ctx context.Context, bucket *blob.Bucket, opts ...Option) (*Array, error) {
	a := newArray(bucket, opts)

	data, err := bucket.ReadAll(ctx, metadataKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: no %s document found", ErrMetadata, metadataKey)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, metadataKey, err)
	}

	a.meta, err = ParseMetadata(data)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create prepares a new array with the given descriptor under a gocloud.dev
// bucket URL. Nothing is persisted until Write; metadata is written last, so
// a failed or abandoned Write never leaves a readable array with silently
// missing chunks.
func Create(ctx context.Context, urlstr string, meta *Metadata, opts ...Option) (*Array, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("%w: opening bucket %q: %v", ErrIO, urlstr, err)
	}

	a, err := CreateBucket(bucket, meta, opts...)
	if err != nil {
		bucket.Close()
		return nil, err
	}
	a.owned = true
	return a, nil
}

// CreateBucket prepares a new array with the given descriptor at the root of
// an existing bucket. The caller retains ownership of the bucket.
func CreateBucket(bucket *blob.Bucket, meta *Metadata, opts ...Option) (*Array, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	a := newArray(bucket, opts)
	a.meta = meta
	return a, nil
}

func newArray(bucket *blob.Bucket, opts []Option) *Array {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Array{bucket: bucket, opts: o}
}

// Meta returns the array descriptor.
func (a *Array) Meta() *Metadata {
	return a.meta
}

// Close releases the underlying bucket if the handle owns it.
func (a *Array) Close() error {
	if !a.owned {
		return nil
	}
	return a.bucket.Close()
}

// chunkKey builds the store key for a chunk index.
func (a *Array) chunkKey(idx []int) string {
	return ChunkKey(idx, a.opts.separator)
}
