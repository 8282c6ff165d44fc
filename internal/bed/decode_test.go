package bed

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// rawToNatural is the expected remap for a single 2-bit code.
var rawToNatural = [4]byte{0, 3, 1, 2}

// packMatrix builds the packed body for a matrix of natural codes,
// independently of the encoder under test.
func packMatrix(rows [][]byte) []byte {
	naturalToRaw := [4]byte{0, 2, 3, 1}
	if len(rows) == 0 {
		return nil
	}
	rowSize := RowSize(len(rows[0]))
	out := make([]byte, 0, len(rows)*rowSize)
	for _, row := range rows {
		packed := make([]byte, rowSize)
		for c, v := range row {
			packed[c/4] |= naturalToRaw[v] << (2 * (c % 4))
		}
		out = append(out, packed...)
	}
	return out
}

// writeBedFile writes a header plus packed body to a file in dir.
func writeBedFile(t *testing.T, dir string, body []byte) string {
	t.Helper()
	path := filepath.Join(dir, "test.bed")
	data := append([]byte{Magic0, Magic1, 1}, body...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestDecodeByteRemap(t *testing.T) {
	for raw := byte(0); raw < 4; raw++ {
		b := raw | raw<<2 | raw<<4 | raw<<6
		p := decodeByte(b)
		for pos := 0; pos < 4; pos++ {
			got := (p >> (2 * pos)) & 3
			if got != rawToNatural[raw] {
				t.Errorf("decodeByte(%#02x) pair %d = %d, want %d", b, pos, got, rawToNatural[raw])
			}
		}
	}

	// Mixed byte: raw codes 3,2,1,0 from the least-significant pair up.
	p := decodeByte(0b00_01_10_11)
	want := []byte{2, 1, 3, 0}
	for pos := 0; pos < 4; pos++ {
		if got := (p >> (2 * pos)) & 3; got != want[pos] {
			t.Errorf("mixed byte pair %d = %d, want %d", pos, got, want[pos])
		}
	}
}

func TestDecodeFullMatrix(t *testing.T) {
	matrix := [][]byte{
		{0, 1, 2, 3, 1, 2},
		{3, 3, 3, 3, 0, 0},
		{2, 0, 1, 0, 3, 1},
	}
	packed := packMatrix(matrix)

	out := make([]byte, 3*6)
	Decode(packed, 3, 6, Region{0, 0, 3, 6}, out, RowMajor(6))

	for r, row := range matrix {
		for c, want := range row {
			if got := out[r*6+c]; got != want {
				t.Errorf("element (%d,%d) = %d, want %d", r, c, got, want)
			}
		}
	}
}

func TestDecodeWindow(t *testing.T) {
	const nrows, ncols = 7, 13
	matrix := make([][]byte, nrows)
	for r := range matrix {
		matrix[r] = make([]byte, ncols)
		for c := range matrix[r] {
			matrix[r][c] = byte((r*31 + c*7) % 4)
		}
	}
	packed := packMatrix(matrix)

	full := make([]byte, nrows*ncols)
	Decode(packed, nrows, ncols, Region{0, 0, nrows, ncols}, full, RowMajor(ncols))

	windows := []Region{
		{0, 0, 7, 13},
		{2, 4, 5, 9},
		{0, 8, 7, 13},
		{3, 0, 4, 4},
		{6, 12, 7, 13},
	}
	for _, reg := range windows {
		out := make([]byte, reg.Rows()*reg.Cols())
		Decode(packed, nrows, ncols, reg, out, RowMajor(reg.Cols()))
		for r := 0; r < reg.Rows(); r++ {
			for c := 0; c < reg.Cols(); c++ {
				want := full[(reg.RowStart+r)*ncols+reg.ColStart+c]
				if got := out[r*reg.Cols()+c]; got != want {
					t.Errorf("window %+v element (%d,%d) = %d, want %d", reg, r, c, got, want)
				}
			}
		}
	}
}

func TestDecodeStrided(t *testing.T) {
	matrix := [][]byte{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
	}
	packed := packMatrix(matrix)
	reg := Region{0, 0, 2, 4}

	// Column-major destination.
	cm := make([]byte, 8)
	Decode(packed, 2, 4, reg, cm, Strides{Row: 1, Col: 2})
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			if got := cm[r+c*2]; got != matrix[r][c] {
				t.Errorf("column-major (%d,%d) = %d, want %d", r, c, got, matrix[r][c])
			}
		}
	}

	// View into a larger 5x10 row-major buffer at origin (1,3).
	big := make([]byte, 5*10)
	Decode(packed, 2, 4, reg, big[1*10+3:], Strides{Row: 10, Col: 1})
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			if got := big[(1+r)*10+3+c]; got != matrix[r][c] {
				t.Errorf("view (%d,%d) = %d, want %d", r, c, got, matrix[r][c])
			}
		}
	}
}

func TestReadRegionMatchesDecode(t *testing.T) {
	const nrows, ncols = 6, 11
	matrix := make([][]byte, nrows)
	for r := range matrix {
		matrix[r] = make([]byte, ncols)
		for c := range matrix[r] {
			matrix[r][c] = byte((r + c) % 4)
		}
	}
	packed := packMatrix(matrix)
	path := writeBedFile(t, t.TempDir(), packed)

	windows := []Region{
		{0, 0, nrows, ncols},
		{1, 4, 5, 11},
		{0, 8, 6, 9},
		{5, 0, 6, 4},
	}
	for _, reg := range windows {
		want := make([]byte, reg.Rows()*reg.Cols())
		Decode(packed, nrows, ncols, reg, want, RowMajor(reg.Cols()))

		got := make([]byte, reg.Rows()*reg.Cols())
		if err := ReadRegion(path, nrows, ncols, reg, got, RowMajor(reg.Cols())); err != nil {
			t.Fatalf("ReadRegion(%+v): %v", reg, err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("window %+v element %d = %d, want %d", reg, i, got[i], want[i])
			}
		}
	}
}

func TestReadRegionMissingFile(t *testing.T) {
	out := make([]byte, 4)
	err := ReadRegion(filepath.Join(t.TempDir(), "nope.bed"), 1, 4, Region{0, 0, 1, 4}, out, RowMajor(4))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ReadRegion on missing file = %v, want fs.ErrNotExist", err)
	}
}

func TestReadRegionTruncated(t *testing.T) {
	matrix := [][]byte{
		{0, 1, 2, 3, 1},
		{3, 0, 1, 2, 2},
	}
	packed := packMatrix(matrix)
	// Drop the final byte so the last row is incomplete.
	path := writeBedFile(t, t.TempDir(), packed[:len(packed)-1])

	out := make([]byte, 2*5)
	for i := range out {
		out[i] = 0xff
	}
	err := ReadRegion(path, 2, 5, Region{0, 0, 2, 5}, out, RowMajor(5))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadRegion on truncated file = %v, want io.ErrUnexpectedEOF", err)
	}
	for i, v := range out {
		if v != 0xff {
			t.Fatalf("output byte %d written (%d) despite failed decode", i, v)
		}
	}
}

func TestReadRegionBadWindow(t *testing.T) {
	matrix := [][]byte{{0, 1, 2, 3}}
	path := writeBedFile(t, t.TempDir(), packMatrix(matrix))
	out := make([]byte, 8)

	err := ReadRegion(path, 1, 4, Region{0, 2, 1, 4}, out, RowMajor(2))
	if !errors.Is(err, ErrUnalignedWindow) {
		t.Errorf("unaligned window error = %v, want ErrUnalignedWindow", err)
	}

	err = ReadRegion(path, 1, 4, Region{0, 0, 2, 4}, out, RowMajor(4))
	if !errors.Is(err, ErrWindowBounds) {
		t.Errorf("out-of-bounds window error = %v, want ErrWindowBounds", err)
	}
}
