package binary

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestReaderSequential(t *testing.T) {
	src := []byte{0x6c, 0x1b, 0x01, 0x78, 0x56, 0x34, 0x12}
	r := NewReader(bytes.NewReader(src))

	m0, err := r.ReadUint8()
	if err != nil || m0 != 0x6c {
		t.Fatalf("ReadUint8() = %#02x, %v, want 0x6c", m0, err)
	}
	m1, err := r.ReadUint8()
	if err != nil || m1 != 0x1b {
		t.Fatalf("ReadUint8() = %#02x, %v, want 0x1b", m1, err)
	}
	mode, err := r.ReadUint8()
	if err != nil || mode != 1 {
		t.Fatalf("ReadUint8() = %d, %v, want 1", mode, err)
	}
	v, err := r.ReadUint32()
	if err != nil || v != 0x12345678 {
		t.Fatalf("ReadUint32() = %#08x, %v, want 0x12345678", v, err)
	}
	if r.Pos() != 7 {
		t.Errorf("Pos() = %d, want 7", r.Pos())
	}
}

func TestReaderUint16(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x6c, 0x1b}))
	v, err := r.ReadUint16()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1b6c {
		t.Errorf("ReadUint16() = %#04x, want 0x1b6c", v)
	}
}

func TestReaderAtIndependent(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	r := NewReader(bytes.NewReader(src))
	r2 := r.At(3)

	v, err := r2.ReadUint8()
	if err != nil || v != 4 {
		t.Fatalf("At(3).ReadUint8() = %d, %v, want 4", v, err)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 9}))
	r.Skip(3)
	v, err := r.ReadUint8()
	if err != nil || v != 9 {
		t.Fatalf("after Skip(3), ReadUint8() = %d, %v, want 9", v, err)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}))
	if _, err := r.ReadUint32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadUint32 on short source = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	values32 := []float32{0, 1.5, -3.25, float32(math.Inf(1))}
	values64 := []float64{0, 2.5, -1e300, math.Pi}
	for _, v := range values32 {
		if err := w.WriteFloat32(v); err != nil {
			t.Fatal(err)
		}
	}
	for _, v := range values64 {
		if err := w.WriteFloat64(v); err != nil {
			t.Fatal(err)
		}
	}
	if w.Written() != int64(4*len(values32)+8*len(values64)) {
		t.Errorf("Written() = %d", w.Written())
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	got32, err := r.ReadFloat32Slice(len(values32))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values32 {
		if got32[i] != v {
			t.Errorf("float32 %d = %v, want %v", i, got32[i], v)
		}
	}
	got64, err := r.ReadFloat64Slice(len(values64))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values64 {
		if got64[i] != v {
			t.Errorf("float64 %d = %v, want %v", i, got64[i], v)
		}
	}
}

func TestWriterUints(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteUint16(0x1b6c); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteUint8(1); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x6c, 0x1b, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("bytes = %#v, want %#v", buf.Bytes(), want)
	}
}
