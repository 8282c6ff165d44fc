package plink

import (
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-plink/internal/bed"
)

// ReadAll decodes the whole on-disk matrix. The row range is split into
// chunks that decode concurrently; each chunk opens its own file handle, so
// no state is shared between workers beyond the disjoint slices of the
// destination they fill.
func (b *Bed) ReadAll(opts ...ReadOption) (*Matrix, error) {
	o := defaultReadOptions(b.ncols)
	for _, opt := range opts {
		opt(o)
	}

	m := NewMatrix(b.nrows, b.ncols)
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for start := 0; start < b.nrows; start += o.chunkRows {
		start, end := start, min(start+o.chunkRows, b.nrows)
		g.Go(func() error {
			reg := bed.Region{RowStart: start, RowEnd: end, ColStart: 0, ColEnd: b.ncols}
			return bed.ReadRegion(b.path, b.nrows, b.ncols, reg,
				m.Data[start*b.ncols:], bed.RowMajor(b.ncols))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
