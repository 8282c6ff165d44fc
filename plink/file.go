package plink

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-plink/internal/bed"
	"github.com/robert-malhotra/go-plink/internal/binary"
)

// MajorOrder is the storage order recorded in a BED file's mode byte.
type MajorOrder byte

const (
	// SampleMajor files store one sample per row.
	SampleMajor MajorOrder = 0
	// VariantMajor files store one variant per row. This is the order
	// PLINK itself writes.
	VariantMajor MajorOrder = 1
)

func (m MajorOrder) String() string {
	switch m {
	case SampleMajor:
		return "sample-major"
	case VariantMajor:
		return "variant-major"
	}
	return fmt.Sprintf("MajorOrder(%d)", byte(m))
}

// bedMagic is the little-endian 16-bit view of the two magic bytes.
const bedMagic = 0x1b6c

// Bed is a handle to a PLINK 1 BED file whose header has been validated.
// The genotype matrix dimensions come from the companion .fam and .bim
// files: the caller supplies sample and variant counts and Bed maps them to
// on-disk rows and columns according to the file's major order.
//
// A Bed holds no open file descriptor; every read opens its own handle, so
// independent reads of the same Bed are safe to run concurrently.
type Bed struct {
	path  string
	major MajorOrder
	nrows int
	ncols int
}

// OpenBed validates the header of the BED file at path and returns a handle
// sized for nsamples samples and nvariants variants.
func OpenBed(path string, nsamples, nvariants int) (*Bed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := binary.NewReader(f)
	magic, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	if magic != bedMagic {
		return nil, fmt.Errorf("%s: %w", path, ErrNotBED)
	}
	mode, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}

	b := &Bed{path: path, nrows: nsamples, ncols: nvariants}
	switch MajorOrder(mode) {
	case SampleMajor:
		b.major = SampleMajor
	case VariantMajor:
		b.major = VariantMajor
		b.nrows, b.ncols = nvariants, nsamples
	default:
		return nil, fmt.Errorf("%s: mode byte %d: %w", path, mode, ErrMajorOrder)
	}
	return b, nil
}

// Path returns the file path.
func (b *Bed) Path() string {
	return b.path
}

// MajorOrder returns the storage order from the file header.
func (b *Bed) MajorOrder() MajorOrder {
	return b.major
}

// Rows returns the number of on-disk matrix rows (variants for a
// variant-major file, samples otherwise).
func (b *Bed) Rows() int {
	return b.nrows
}

// Cols returns the number of on-disk matrix columns.
func (b *Bed) Cols() int {
	return b.ncols
}

// ReadRegion decodes the half-open window [rowStart,rowEnd) x
// [colStart,colEnd) of the on-disk matrix. colStart must be a multiple of 4
// because genotypes are packed four per byte.
func (b *Bed) ReadRegion(rowStart, colStart, rowEnd, colEnd int) (*Matrix, error) {
	reg := bed.Region{RowStart: rowStart, ColStart: colStart, RowEnd: rowEnd, ColEnd: colEnd}
	if err := reg.Validate(b.nrows, b.ncols); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", b.path, err)
	}
	m := NewMatrix(reg.Rows(), reg.Cols())
	if err := bed.ReadRegion(b.path, b.nrows, b.ncols, reg, m.Data, bed.RowMajor(m.Cols)); err != nil {
		return nil, err
	}
	return m, nil
}
