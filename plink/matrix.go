package plink

import "math"

// Genotype codes as stored in a Matrix. Codes 0 through 2 count copies of
// the a1 allele; Missing marks an absent call.
const (
	HomA0   byte = 0
	Het     byte = 1
	HomA1   byte = 2
	Missing byte = 3
)

// Matrix is a dense row-major grid of genotype codes, one byte per element.
type Matrix struct {
	Rows int
	Cols int
	Data []byte // length Rows*Cols
}

// NewMatrix allocates a zeroed rows-by-cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]byte, rows*cols)}
}

// At returns the code at row r, column c.
func (m *Matrix) At(r, c int) byte {
	return m.Data[r*m.Cols+c]
}

// Set stores code v at row r, column c.
func (m *Matrix) Set(r, c int, v byte) {
	m.Data[r*m.Cols+c] = v
}

// Allele selects which allele a dosage counts.
type Allele int

const (
	// A1 counts copies of the a1 allele; this is the on-disk convention.
	A1 Allele = iota
	// A0 counts copies of the a0 allele instead.
	A0
)

// Dosage converts the matrix to allele dosages: 0, 1 or 2 copies of the
// reference allele, with NaN for missing genotypes.
func (m *Matrix) Dosage(ref Allele) []float32 {
	nan := float32(math.NaN())
	out := make([]float32, len(m.Data))
	for i, v := range m.Data {
		switch {
		case v == Missing:
			out[i] = nan
		case ref == A0:
			out[i] = float32(2 - v)
		default:
			out[i] = float32(v)
		}
	}
	return out
}
