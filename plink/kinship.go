package plink

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/robert-malhotra/go-plink/internal/binary"
)

// SampleID identifies a sample by family and within-family identifier.
type SampleID struct {
	FID string
	IID string
}

// Kinship is a symmetric n-by-n relationship matrix between samples, as
// produced by GCTA (GRM files) or PLINK (REL files).
type Kinship struct {
	IDs    []SampleID
	Values []float64 // row-major, len n*n
}

// N returns the number of samples.
func (k *Kinship) N() int {
	return len(k.IDs)
}

// At returns the relationship between samples i and j.
func (k *Kinship) At(i, j int) float64 {
	return k.Values[i*k.N()+j]
}

// mirrorLower copies the strict lower triangle onto the upper one.
func (k *Kinship) mirrorLower() {
	n := k.N()
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			k.Values[j*n+i] = k.Values[i*n+j]
		}
	}
}

// kinshipIDPath derives the conventional id-file path from a kinship matrix
// path: the .gz/.bin/.zst suffix is stripped and .id appended, so
// "data.grm.gz" pairs with "data.grm.id".
func kinshipIDPath(path string) string {
	for _, ext := range []string{".gz", ".bin", ".zst"} {
		if strings.HasSuffix(path, ext) {
			path = path[:len(path)-len(ext)]
			break
		}
	}
	return path + ".id"
}

// readIDFile parses a two-column (fid, iid) sample id file. Lines starting
// with '#' are comments.
func readIDFile(path string) ([]SampleID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var ids []SampleID
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: %d fields, want 2: %w", path, line, len(fields), ErrBadRecord)
		}
		ids = append(ids, SampleID{FID: fields[0], IID: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ids, nil
}

// ReadGRM reads a GCTA GRM text file, transparently decompressing gzip input
// when path ends in .gz. Each record holds the 1-based sample pair, the
// number of non-missing variants the estimate used, and the relationship
// value; pairs cover the lower triangle including the diagonal. idPath may
// be empty to use the conventional sibling id file. The per-record variant
// counts are returned alongside the matrix.
func ReadGRM(path, idPath string) (*Kinship, []int, error) {
	if idPath == "" {
		idPath = kinshipIDPath(path)
	}
	ids, err := readIDFile(idPath)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer gz.Close()
		src = gz
	}

	n := len(ids)
	k := &Kinship{IDs: ids, Values: make([]float64, n*n)}
	var counts []int

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, nil, fmt.Errorf("%s:%d: %d fields, want 4: %w", path, line, len(fields), ErrBadRecord)
		}
		i, err1 := strconv.Atoi(fields[0])
		j, err2 := strconv.Atoi(fields[1])
		nsnps, err3 := strconv.Atoi(fields[2])
		v, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, nil, fmt.Errorf("%s:%d: %w", path, line, ErrBadRecord)
		}
		if i < 1 || i > n || j < 1 || j > i {
			return nil, nil, fmt.Errorf("%s:%d: pair (%d,%d) outside lower triangle of %d samples: %w",
				path, line, i, j, n, ErrShape)
		}
		k.Values[(i-1)*n+(j-1)] = v
		counts = append(counts, nsnps)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	k.mirrorLower()
	return k, counts, nil
}

// ReadGRMBin reads a GCTA binary GRM: float32 values covering the lower
// triangle including the diagonal, row by row. The sibling .N.bin file holds
// the per-pair variant counts and is returned alongside the matrix. idPath
// and nPath may be empty to use the conventional sibling files.
func ReadGRMBin(path, idPath, nPath string) (*Kinship, []float64, error) {
	if idPath == "" {
		idPath = kinshipIDPath(path)
	}
	if nPath == "" {
		nPath = lastReplace(path, ".bin", ".N.bin")
	}
	ids, err := readIDFile(idPath)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := len(ids)
	tri, err := binary.NewReader(f).ReadFloat32Slice(n * (n + 1) / 2)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	k := &Kinship{IDs: ids, Values: make([]float64, n*n)}
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			k.Values[i*n+j] = float64(tri[idx])
			idx++
		}
	}
	k.mirrorLower()

	counts, err := readFloat32File(nPath)
	if err != nil {
		return nil, nil, err
	}
	return k, counts, nil
}

// ReadRel reads a PLINK relationship matrix. The encoding is detected from
// the file itself: a Zstandard frame holds compressed lower-triangle text, a
// file of exactly 8*n*n bytes holds the full matrix as float64, and anything
// else is plain lower-triangle text. idPath may be empty to use the
// conventional sibling id file.
func ReadRel(path, idPath string) (*Kinship, error) {
	if idPath == "" {
		idPath = kinshipIDPath(path)
	}
	ids, err := readIDFile(idPath)
	if err != nil {
		return nil, err
	}
	n := len(ids)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Zstandard frame magic.
	if bytes.Equal(magic[:], []byte{0x28, 0xb5, 0x2f, 0xfd}) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer dec.Close()
		return readRelText(dec, path, ids)
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if fi.Size() == int64(8*n*n) {
		values, err := binary.NewReader(f).ReadFloat64Slice(n * n)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return &Kinship{IDs: ids, Values: values}, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return readRelText(f, path, ids)
}

// readRelText parses tab-separated lower-triangle rows: line i holds the
// i+1 values for columns 0..i.
func readRelText(src io.Reader, path string, ids []SampleID) (*Kinship, error) {
	n := len(ids)
	k := &Kinship{IDs: ids, Values: make([]float64, n*n)}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	row := 0
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if row >= n {
			return nil, fmt.Errorf("%s: more than %d rows: %w", path, n, ErrShape)
		}
		fields := strings.Split(text, "\t")
		if len(fields) != row+1 {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w",
				path, row, len(fields), row+1, ErrShape)
		}
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d value %q: %w", path, row, field, ErrBadRecord)
			}
			k.Values[row*n+j] = v
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if row != n {
		return nil, fmt.Errorf("%s: %d rows for %d samples: %w", path, row, n, ErrShape)
	}

	k.mirrorLower()
	return k, nil
}

// readFloat32File reads a whole file of little-endian float32 values.
func readFloat32File(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%s: %d bytes is not a float32 sequence: %w", path, len(data), ErrBadRecord)
	}
	values, err := binary.NewReader(bytes.NewReader(data)).ReadFloat32Slice(len(data) / 4)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out, nil
}

// lastReplace replaces the last occurrence of old in s.
func lastReplace(s, old, new string) string {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s
	}
	return s[:i] + new + s[i+len(old):]
}
