// Package bed implements the transcoding core for the PLINK 1 binary
// genotype format (BED).
//
// # File Layout
//
// A BED file is a 3-byte header followed by a bit-packed genotype matrix:
//
//	offset 0: 0x6c          magic, first byte
//	offset 1: 0x1b          magic, second byte
//	offset 2: mode          0 = sample-major, 1 = variant-major
//	offset 3: matrix body   nrows rows of ceil(ncols/4) bytes each
//
// Within a row, genotype c occupies bits [2*(c%4), 2*(c%4)+2) of byte c/4,
// least-significant pair first. The row size is fixed by ncols and never
// depends on the window being decoded.
//
// # Genotype Codes
//
// The raw on-disk 2-bit code and the natural in-memory code differ. Decoding
// maps raw to natural as 0→0, 1→3, 2→1, 3→2; encoding applies the exact
// inverse. Natural codes 0, 1 and 2 are allele dosages and 3 marks a missing
// genotype, so decode(encode(v)) == v for every v in {0,1,2,3}.
//
// # Decoding and Encoding
//
// [Decode] transcodes a rectangular window of an in-memory packed matrix into
// a caller-provided byte buffer addressed through explicit element strides,
// so the destination may be a view into a larger array. [ReadRegion] does the
// same against a file, reading only the bytes the window touches. On the
// write side, [WriteHeader] creates a file with the 3-byte preamble and
// [AppendChunk] packs and appends rows of natural codes.
//
// The package performs no caching and holds no state across calls; every
// file-backed operation opens its own handle and releases it before
// returning.
package bed
