package plink

import (
	"fmt"

	"github.com/robert-malhotra/go-plink/internal/bed"
)

// WriteBed writes m as a complete BED file at path: the 3-byte header
// followed by the packed matrix, appended in row chunks. major is recorded
// verbatim in the header's mode byte; the matrix rows must already follow
// that order.
func WriteBed(path string, m *Matrix, major MajorOrder) error {
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%d bytes for %dx%d matrix: %w", len(m.Data), m.Rows, m.Cols, ErrShape)
	}
	if err := bed.WriteHeader(path, byte(major)); err != nil {
		return err
	}

	chunkRows := max(1, defaultChunkBytes/max(1, m.Cols))
	for start := 0; start < m.Rows; start += chunkRows {
		end := min(start+chunkRows, m.Rows)
		err := bed.AppendChunk(path, m.Cols, end-start, m.Data[start*m.Cols:], bed.RowMajor(m.Cols))
		if err != nil {
			return err
		}
	}
	return nil
}
