package plink

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Variant describes one row of a PLINK .bim file.
type Variant struct {
	Chrom string  // chromosome code
	Name  string  // variant identifier, e.g. an rsID
	Cm    float64 // genetic distance in centimorgans
	Pos   int     // base-pair coordinate
	A0    string  // first allele
	A1    string  // second allele, the one genotype codes count
}

// ReadBim parses the .bim companion file at path. Fields are
// whitespace-delimited: chrom, name, cm, pos, a0, a1.
func ReadBim(path string) ([]Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var variants []Variant
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, fmt.Errorf("%s:%d: %d fields, want 6: %w", path, line, len(fields), ErrBadRecord)
		}
		cm, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: cm %q: %w", path, line, fields[2], ErrBadRecord)
		}
		pos, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: position %q: %w", path, line, fields[3], ErrBadRecord)
		}
		variants = append(variants, Variant{
			Chrom: fields[0],
			Name:  fields[1],
			Cm:    cm,
			Pos:   pos,
			A0:    fields[4],
			A1:    fields[5],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return variants, nil
}

// WriteBim writes variants as a tab-separated .bim file at path.
func WriteBim(path string, variants []Variant) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, v := range variants {
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%s\t%s\n", v.Chrom, v.Name, v.Cm, v.Pos, v.A0, v.A1)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
