// Package plink reads and writes PLINK 1 binary genotype filesets: the
// bit-packed .bed genotype matrix and its .bim (variant) and .fam (sample)
// companions, plus GCTA GRM and PLINK REL kinship matrices.
package plink

import (
	"errors"

	"github.com/robert-malhotra/go-plink/internal/bed"
)

// Common errors
var (
	ErrNotBED     = errors.New("not a PLINK 1 BED file")
	ErrMajorOrder = errors.New("unknown matrix layout (PLINK 2 files are not supported)")
	ErrBadRecord  = errors.New("malformed record")
	ErrShape      = errors.New("matrix shape mismatch")
)

// Window errors surfaced from the transcoding core.
var (
	ErrUnalignedWindow = bed.ErrUnalignedWindow
	ErrWindowBounds    = bed.ErrWindowBounds
)
