package bed

import (
	"fmt"
	"os"
)

// encodeTable maps a natural genotype code to its raw 2-bit on-disk code.
// It is the exact inverse of the decoder's remap: 0→0, 1→2, 2→3, 3→1.
var encodeTable = [4]byte{0, 2, 3, 1}

// packRow packs one row of natural codes into dst. dst must hold
// RowSize(ncols) bytes. Within each byte the first column of a group of four
// occupies the least-significant pair; the unused high bits of a final
// partial byte are left zero.
func packRow(dst []byte, data []byte, base, ncols int, st Strides) {
	for c := 0; c < ncols; c += 4 {
		n := min(4, ncols-c)
		var b byte
		for i := n - 1; i >= 0; i-- {
			b <<= 2
			b |= encodeTable[data[base+(c+i)*st.Col]&3]
		}
		dst[c/4] = b
	}
}

// WriteHeader creates (or truncates) the BED file at path and writes the
// 3-byte preamble: the two magic bytes followed by mode. The file is closed
// on every exit path; on failure its content may be incomplete and cleanup
// is the caller's responsibility.
func WriteHeader(path string, mode byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write([]byte{Magic0, Magic1, mode}); err != nil {
		f.Close()
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// AppendChunk packs nrows rows of ncols natural codes from data, addressed
// through st, and appends them to the BED file at path. The file is opened
// in append mode so the header and previously written chunks are preserved;
// the caller must hold exclusive ownership of the file for the duration of
// the call.
func AppendChunk(path string, ncols, nrows int, data []byte, st Strides) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}

	row := make([]byte, RowSize(ncols))
	for r := 0; r < nrows; r++ {
		packRow(row, data, r*st.Row, ncols, st)
		if _, err := f.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing to %s: %w", path, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
