// Diagnostic tool for inspecting PLINK 1 binary filesets
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/robert-malhotra/go-plink/plink"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/bedinfo/main.go <file.bed>")
		os.Exit(1)
	}

	bedPath := os.Args[1]
	prefix := strings.TrimSuffix(bedPath, ".bed")
	fmt.Printf("=== Analyzing %s ===\n\n", bedPath)

	variants, err := plink.ReadBim(prefix + ".bim")
	if err != nil {
		fmt.Printf("ERROR: Failed to read variants: %v\n", err)
		os.Exit(1)
	}
	samples, err := plink.ReadFam(prefix + ".fam")
	if err != nil {
		fmt.Printf("ERROR: Failed to read samples: %v\n", err)
		os.Exit(1)
	}

	b, err := plink.OpenBed(bedPath, len(samples), len(variants))
	if err != nil {
		fmt.Printf("ERROR: Failed to open BED file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Storage order: %s\n", b.MajorOrder())
	fmt.Printf("Samples:  %d\n", len(samples))
	fmt.Printf("Variants: %d\n", len(variants))
	fmt.Printf("Matrix:   %d rows x %d cols on disk\n\n", b.Rows(), b.Cols())

	if len(variants) > 0 {
		v := variants[0]
		fmt.Printf("First variant: %s chrom=%s pos=%d alleles=%s/%s\n", v.Name, v.Chrom, v.Pos, v.A0, v.A1)
	}
	if len(samples) > 0 {
		s := samples[0]
		fmt.Printf("First sample:  %s/%s\n\n", s.FID, s.IID)
	}

	rows := min(10, b.Rows())
	cols := min(10, b.Cols())
	m, err := b.ReadRegion(0, 0, rows, cols)
	if err != nil {
		fmt.Printf("ERROR: Failed to decode corner: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top-left %dx%d corner (0-2 = a1 dosage, 3 = missing):\n", rows, cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			fmt.Printf(" %d", m.At(r, c))
		}
		fmt.Println()
	}
}
