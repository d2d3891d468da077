package zarr

// Option configures an Array handle.
type Option func(*options)

type options struct {
	workers   int
	separator string
}

func defaultOptions() *options {
	return &options{
		workers:   1,
		separator: ".",
	}
}

// WithWorkers sets the number of chunks encoded or decoded concurrently.
// Chunks are disjoint and written to distinct keys, so parallelism needs no
// locking; metadata is still written only after every chunk write finished.
// Values below 2 keep the default sequential behavior.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 1 {
			o.workers = n
		}
	}
}

// WithSeparator sets the string joining chunk index components in store
// keys. The classic v2 layout uses "."; "/" nests chunks in directories.
func WithSeparator(sep string) Option {
	return func(o *options) {
		if sep == "." || sep == "/" {
			o.separator = sep
		}
	}
}
