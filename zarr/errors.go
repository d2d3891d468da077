// Package zarr reads and writes single Zarr v2 arrays: regularly-chunked,
// strongly-typed N-dimensional numeric arrays stored as one JSON metadata
// document plus one independently compressed blob per chunk.
package zarr

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these and can be classified with errors.Is.
var (
	// ErrValidation reports a caller error: a malformed descriptor or a
	// buffer whose length disagrees with the array shape.
	ErrValidation = errors.New("validation error")

	// ErrMetadata reports stored metadata that cannot be parsed or is
	// semantically invalid.
	ErrMetadata = errors.New("invalid metadata")

	// ErrCodec reports a compression or decompression failure.
	ErrCodec = errors.New("codec error")

	// ErrCorruption reports a decoded chunk whose size disagrees with the
	// expected chunk volume.
	ErrCorruption = errors.New("corrupt chunk")

	// ErrIO reports a storage backend failure.
	ErrIO = errors.New("storage error")
)
