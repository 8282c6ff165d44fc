package plink

import "runtime"

// defaultChunkBytes bounds the packed bytes one read chunk covers.
const defaultChunkBytes = 256 << 20

// ReadOption configures whole-matrix reads.
type ReadOption func(*readOptions)

type readOptions struct {
	chunkRows   int
	parallelism int
}

func defaultReadOptions(ncols int) *readOptions {
	rows := defaultChunkBytes / max(1, ncols)
	return &readOptions{
		chunkRows:   max(1, rows),
		parallelism: runtime.NumCPU(),
	}
}

// WithChunkRows sets how many rows each read chunk decodes.
func WithChunkRows(n int) ReadOption {
	return func(o *readOptions) {
		if n > 0 {
			o.chunkRows = n
		}
	}
}

// WithParallelism bounds how many chunks decode concurrently.
func WithParallelism(n int) ReadOption {
	return func(o *readOptions) {
		if n > 0 {
			o.parallelism = n
		}
	}
}
