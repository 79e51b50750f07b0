package container

import (
	"encoding/binary"
	"errors"
	"testing"
)

// Seed scenario 1 (spec.md §8): RIFX header roundtrip.
func TestByteOrderOf(t *testing.T) {
	be := []byte{0x52, 0x49, 0x46, 0x58, 0x00, 0x00, 0x00, 0x10, 0x4D, 0x56, 0x39, 0x33}
	order, err := ByteOrderOf(be)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != binary.BigEndian {
		t.Fatalf("expected BigEndian for RIFX")
	}

	le := []byte{0x58, 0x46, 0x49, 0x52, 0x10, 0x00, 0x00, 0x00, 0x33, 0x39, 0x56, 0x4D}
	order, err = ByteOrderOf(le)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != binary.LittleEndian {
		t.Fatalf("expected LittleEndian for XFIR")
	}
}

func TestByteOrderOfInvalid(t *testing.T) {
	_, err := ByteOrderOf([]byte("JUNKJUNKJUNK"))
	if !errors.Is(err, ErrNotRIFX) {
		t.Fatalf("expected ErrNotRIFX, got %v", err)
	}
}

func TestFourCCRoundtrip(t *testing.T) {
	fc := FourCC('C', 'A', 'S', 't')
	if FourCCString(fc) != "CASt" {
		t.Fatalf("got %q, want CASt", FourCCString(fc))
	}
}

func TestMoaIDWellKnown(t *testing.T) {
	if !MoaIDNull.Supported() || !MoaIDZlib.Supported() {
		t.Fatalf("NULL and ZLIB must be supported")
	}
	if MoaIDSnd.Supported() {
		t.Fatalf("SND must not be reported supported (spec.md: only NULL/ZLIB required)")
	}
	if MoaIDNull.Name() != "NULL" || MoaIDZlib.Name() != "ZLIB" {
		t.Fatalf("unexpected codec names: %s %s", MoaIDNull.Name(), MoaIDZlib.Name())
	}
}

// buildPlainMovie constructs a minimal plain-format (MV93) file with one
// "imap", one "mmap" holding a single entry (a CASt chunk; there are no
// junk or free slots), and that one data chunk.
func buildPlainMovie(t *testing.T) []byte {
	t.Helper()
	var buf []byte
	put32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}
	put16 := func(v uint16) {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], v)
		buf = append(buf, b[:]...)
	}

	// RIFX header.
	buf = append(buf, 'R', 'I', 'F', 'X')
	put32(0) // total length, filled below
	buf = append(buf, 'M', 'V', '9', '3')

	// imap chunk at offset 12.
	buf = append(buf, 'i', 'm', 'a', 'p')
	put32(12) // chunk length (unused by parser)
	put32(1)  // memoryMapCount (unused, re-derived from mmap header)
	mmapOffsetFieldPos := len(buf)
	put32(0) // mmapOffset, patched below

	// A single data chunk: fourCC "CASt", 4 bytes of payload.
	dataChunkOffset := len(buf)
	buf = append(buf, 'C', 'A', 'S', 't')
	put32(4)
	buf = append(buf, 0xAA, 0xBB, 0xCC, 0xDD)

	// mmap chunk.
	mmapOffset := len(buf)
	binary.BigEndian.PutUint32(buf[mmapOffsetFieldPos:], uint32(mmapOffset))
	buf = append(buf, 'm', 'm', 'a', 'p')
	put32(0) // chunk length (unused)
	put16(24) // headerLength (8 fixed header + this 16-byte prefix... see below)
	put16(24) // entryLength: 6 u32 fields
	put32(1)  // chunkCountMax
	put32(1)  // chunkCountUsed
	put32(0)  // junkHead
	put32(0)  // junkHead2
	put32(0)  // freeHead
	// one entry: {fourCC, len, offset, flags, pad, next}
	buf = append(buf, 'C', 'A', 'S', 't')
	put32(4)
	put32(uint32(dataChunkOffset))
	put32(0)
	put32(0)
	put32(0)

	binary.BigEndian.PutUint32(buf[4:8], uint32(len(buf)))
	return buf
}

func TestParsePlainIndex(t *testing.T) {
	file := buildPlainMovie(t)
	ix, err := New(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, ok := ix.First(FourCC('C', 'A', 'S', 't'))
	if !ok {
		t.Fatalf("expected to find a CASt chunk")
	}
	body, err := ix.Body(id)
	if err != nil {
		t.Fatalf("unexpected error reading body: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	if len(body) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(body), len(want))
	}
	for i := range want {
		if body[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, body[i], want[i])
		}
	}
}
