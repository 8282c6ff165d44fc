package plink

import (
	"fmt"

	"github.com/robert-malhotra/go-plink/internal/bed"
)

// DecodeRegion decodes a window of a packed genotype matrix that is already
// in memory, for callers that map or slurp the BED file themselves. packed
// must start at the matrix body, past the 3-byte header. The window
// geometry is validated here; the transcoding core then trusts it.
func DecodeRegion(packed []byte, nrows, ncols, rowStart, colStart, rowEnd, colEnd int) (*Matrix, error) {
	reg := bed.Region{RowStart: rowStart, ColStart: colStart, RowEnd: rowEnd, ColEnd: colEnd}
	if err := reg.Validate(nrows, ncols); err != nil {
		return nil, err
	}
	if need := nrows * bed.RowSize(ncols); len(packed) < need {
		return nil, fmt.Errorf("%d packed bytes for %dx%d matrix: %w", len(packed), nrows, ncols, ErrShape)
	}
	m := NewMatrix(reg.Rows(), reg.Cols())
	bed.Decode(packed, nrows, ncols, reg, m.Data, bed.RowMajor(m.Cols))
	return m, nil
}
