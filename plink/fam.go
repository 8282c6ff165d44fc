package plink

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Sample describes one row of a PLINK .fam file. All fields are kept as
// strings; PLINK uses "0" for unknown parents and "-9" for a missing trait.
type Sample struct {
	FID    string // family identifier
	IID    string // within-family individual identifier
	Father string
	Mother string
	Gender string
	Trait  string
}

// ReadFam parses the .fam companion file at path. Fields are
// whitespace-delimited: fid, iid, father, mother, gender, trait.
func ReadFam(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var samples []Sample
	sc := bufio.NewScanner(f)
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
		samples = append(samples, Sample{
			FID:    fields[0],
			IID:    fields[1],
			Father: fields[2],
			Mother: fields[3],
			Gender: fields[4],
			Trait:  fields[5],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return samples, nil
}

// WriteFam writes samples as a tab-separated .fam file at path.
func WriteFam(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, s := range samples {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.FID, s.IID, s.Father, s.Mother, s.Gender, s.Trait)
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
