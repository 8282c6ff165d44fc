package bed

import (
	"errors"
	"fmt"
)

// HeaderSize is the size in bytes of the BED file preamble.
const HeaderSize = 3

// Magic bytes identifying a PLINK 1 BED file.
const (
	Magic0 = 0x6c
	Magic1 = 0x1b
)

// Common errors
var (
	ErrUnalignedWindow = errors.New("window column start is not a multiple of 4")
	ErrWindowBounds    = errors.New("window exceeds matrix bounds")
)

// RowSize returns the number of bytes one matrix row occupies on disk.
func RowSize(ncols int) int {
	return (ncols + 3) / 4
}

// Strides addresses the elements of a 2-D chunk stored in a flat slice.
// Both values are counted in elements, not bytes, so the chunk may be
// row-major, column-major, or a sub-view of a larger array.
type Strides struct {
	Row int
	Col int
}

// Index returns the flat-slice position of element (r, c).
func (s Strides) Index(r, c int) int {
	return r*s.Row + c*s.Col
}

// RowMajor returns strides for a dense row-major chunk with ncols columns.
func RowMajor(ncols int) Strides {
	return Strides{Row: ncols, Col: 1}
}

// Region is a half-open rectangular window
// [RowStart, RowEnd) x [ColStart, ColEnd) of a genotype matrix.
type Region struct {
	RowStart int
	ColStart int
	RowEnd   int
	ColEnd   int
}

// Rows returns the number of rows in the window.
func (g Region) Rows() int { return g.RowEnd - g.RowStart }

// Cols returns the number of columns in the window.
func (g Region) Cols() int { return g.ColEnd - g.ColStart }

// rowBytes returns the number of source bytes one window row spans.
func (g Region) rowBytes() int {
	return (g.Cols() + 3) / 4
}

// Validate checks the window against the matrix dimensions. The column start
// must fall on a byte boundary because rows are packed four genotypes per
// byte and the decoder reads whole source bytes.
func (g Region) Validate(nrows, ncols int) error {
	if g.ColStart%4 != 0 {
		return fmt.Errorf("column start %d: %w", g.ColStart, ErrUnalignedWindow)
	}
	if g.RowStart < 0 || g.RowStart > g.RowEnd || g.RowEnd > nrows {
		return fmt.Errorf("rows [%d,%d) of %d: %w", g.RowStart, g.RowEnd, nrows, ErrWindowBounds)
	}
	if g.ColStart < 0 || g.ColStart > g.ColEnd || g.ColEnd > ncols {
		return fmt.Errorf("columns [%d,%d) of %d: %w", g.ColStart, g.ColEnd, ncols, ErrWindowBounds)
	}
	return nil
}
