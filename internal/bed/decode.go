package bed

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// decodeByte remaps the four raw 2-bit genotype codes of one packed byte to
// natural codes, all pairs at once. For each pair with low bit x and high
// bit y, the natural code is (x<<1) | (x^y), which realizes the mapping
// 0→0, 1→3, 2→1, 3→2 without branching per pair.
func decodeByte(b byte) byte {
	lo := b & 0x55
	hi := (b & 0xAA) >> 1
	p := lo ^ hi
	p |= ((lo | hi) & lo) << 1
	return p
}

// decodeRow transcodes the source bytes of one window row into out. src must
// hold the reg.rowBytes() bytes covering columns [ColStart, ColEnd) of the
// row; r is the absolute row index within the matrix.
func decodeRow(src []byte, reg Region, r int, out []byte, st Strides) {
	base := (r - reg.RowStart) * st.Row
	for c := reg.ColStart; c < reg.ColEnd; {
		p := decodeByte(src[(c-reg.ColStart)/4])
		ce := min(c+4, reg.ColEnd)
		for ; c < ce; c++ {
			out[base+(c-reg.ColStart)*st.Col] = p & 3
			p >>= 2
		}
	}
}

// Decode transcodes the window reg of a packed nrows-by-ncols matrix held
// entirely in memory into out. packed must start at the matrix body, with
// any file header already skipped by the caller.
//
// Decode trusts its caller: geometry is not validated and there is no error
// return. A window or stride that does not fit packed or out panics on the
// out-of-range slice index rather than corrupting memory.
func Decode(packed []byte, nrows, ncols int, reg Region, out []byte, st Strides) {
	rowSize := RowSize(ncols)
	for r := reg.RowStart; r < reg.RowEnd; r++ {
		off := r*rowSize + reg.ColStart/4
		decodeRow(packed[off:off+reg.rowBytes()], reg, r, out, st)
	}
}

// ReadRegion decodes the window reg of the packed matrix stored in the BED
// file at path into out. Only the bytes the window touches are read: for
// each row the file is read at header + row*rowSize + colStart/4.
//
// The file is opened read-only for the duration of the call and closed on
// every exit path. A failing call writes no output: the window geometry is
// validated first, and each row is fully read into a scratch buffer before
// any of it is decoded, so a short read or I/O fault aborts the whole
// operation with nothing partially decoded for that row.
func ReadRegion(path string, nrows, ncols int, reg Region, out []byte, st Strides) error {
	if err := reg.Validate(nrows, ncols); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rowSize := RowSize(ncols)

	// Check the file length before touching out, so a truncated file is
	// reported with no output written at all.
	if reg.Rows() > 0 && reg.Cols() > 0 {
		fi, err := f.Stat()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		need := int64(HeaderSize) + int64(reg.RowEnd-1)*int64(rowSize) +
			int64(reg.ColStart/4) + int64(reg.rowBytes())
		if fi.Size() < need {
			return fmt.Errorf("reading %s: %w", path, io.ErrUnexpectedEOF)
		}
	}

	buf := make([]byte, reg.rowBytes())
	for r := reg.RowStart; r < reg.RowEnd; r++ {
		off := int64(HeaderSize) + int64(r)*int64(rowSize) + int64(reg.ColStart/4)
		if _, err := f.ReadAt(buf, off); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("reading %s: %w", path, io.ErrUnexpectedEOF)
			}
			return fmt.Errorf("reading %s: %w", path, err)
		}
		decodeRow(buf, reg, r, out, st)
	}
	return nil
}
