package rifx

import (
	"encoding/binary"
	"testing"

	"github.com/deepteams/rifx/internal/container"
)

func u16be(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func i16be(v int16) []byte { return u16be(uint16(v)) }

// buildConfigBody builds a pre-D7 (non-RGB stage color) DRCF/VWCF body
// matching chunks.ParseConfig's field layout exactly.
func buildConfigBody(directorVersion, minMember, maxMember uint16, top, left, bottom, right, frameRate int16) []byte {
	var b []byte
	b = append(b, u16be(0)...)          // Len
	b = append(b, u16be(0)...)          // FileVersion
	b = append(b, i16be(top)...)
	b = append(b, i16be(left)...)
	b = append(b, i16be(bottom)...)
	b = append(b, i16be(right)...)
	b = append(b, u16be(minMember)...)
	b = append(b, u16be(maxMember)...)
	b = append(b, 0, 0) // two unused u8 fields
	b = append(b, i16be(frameRate)...)
	b = append(b, i16be(0)...) // platform
	b = append(b, i16be(0)...) // protectionOld
	b = append(b, u32be(0)...) // checksum
	b = append(b, u32be(0)...) // FileInfoOffset
	b = append(b, u32be(0)...) // FileInfoLen
	b = append(b, u16be(directorVersion)...)
	b = append(b, i16be(0)...) // StageColorIndex
	b = append(b, i16be(0)...) // DefaultPalette
	b = append(b, i16be(0)...) // Protection
	return b
}

// buildCastInfoBody builds a CastInfo list-chunk body with an empty
// script text item and a Pascal-encoded name item.
func buildCastInfoBody(name string) []byte {
	header := append(u32be(20), u32be(0)...) // dataOffset, unk1
	header = append(header, u32be(0)...)     // unk2
	header = append(header, u32be(0)...)     // flags
	header = append(header, u32be(0)...)     // scriptID

	nameItem := append([]byte{byte(len(name))}, []byte(name)...)
	list := u16be(2)
	list = append(list, u32be(0)...)
	list = append(list, u32be(0)...)
	list = append(list, u32be(uint32(len(nameItem)))...)
	list = append(list, nameItem...)
	return append(header, list...)
}

// buildCastMemberBody builds a pre-D5 CASt chunk body (no extra specific
// data beyond the type byte).
func buildCastMemberBody(name string, memberType byte) []byte {
	info := buildCastInfoBody(name)
	out := u16be(1) // specificDataLen: just the type byte
	out = append(out, u32be(uint32(len(info)))...)
	out = append(out, memberType)
	out = append(out, info...)
	return out
}

func buildCastBody(memberSectionIDs ...uint32) []byte {
	var b []byte
	for _, id := range memberSectionIDs {
		b = append(b, u32be(id)...)
	}
	return b
}

// buildMovie assembles a minimal plain-format (MV93) RIFX file: a DRCF
// config chunk, a single implicit CAS* cast, and one Bitmap CASt member,
// indexed via an imap/mmap table exactly as internal/container/plain.go
// expects.
func buildMovie(t *testing.T) []byte {
	t.Helper()
	configBody := buildConfigBody(100, 1, 5, 0, 0, 240, 320, 15)
	castMemberBody := buildCastMemberBody("Foo", 1) // MemberBitmap
	castBody := buildCastBody(2)                    // references id 2: the CASt chunk below

	type chunkDef struct {
		fourCC uint32
		body   []byte
	}
	chunkDefs := []chunkDef{
		{fourCCDRCF, configBody},
		{fourCCCASStar, castBody},
		{fourCCCASt, castMemberBody},
	}

	const headerSize = 12
	const imapChunkSize = 8 + 8
	const mmapHeaderFieldsSize = 24
	const entrySize = 24
	mmapOffset := headerSize + imapChunkSize
	mmapChunkSize := 8 + mmapHeaderFieldsSize + len(chunkDefs)*entrySize
	dataStart := mmapOffset + mmapChunkSize

	var entries []byte
	var data []byte
	cursor := dataStart
	for _, c := range chunkDefs {
		entries = append(entries, u32be(c.fourCC)...)
		entries = append(entries, u32be(uint32(len(c.body)))...)
		entries = append(entries, u32be(uint32(cursor))...)
		entries = append(entries, u32be(0)...) // flags
		entries = append(entries, u32be(0)...) // unused
		entries = append(entries, u32be(0)...) // next
		data = append(data, u32be(c.fourCC)...)
		data = append(data, u32be(uint32(len(c.body)))...)
		data = append(data, c.body...)
		cursor += 8 + len(c.body)
	}

	var file []byte
	file = append(file, []byte("RIFX")...)
	file = append(file, u32be(uint32(cursor))...)
	file = append(file, []byte("MV93")...)

	file = append(file, u32be(container.FourCCImap)...)
	file = append(file, u32be(8)...)
	file = append(file, u32be(uint32(len(chunkDefs)))...) // memoryMapCount
	file = append(file, u32be(uint32(mmapOffset))...)

	mmapBody := u16be(mmapHeaderFieldsSize)
	mmapBody = append(mmapBody, u16be(entrySize)...)
	mmapBody = append(mmapBody, u32be(uint32(len(chunkDefs)))...) // chunkCountMax
	mmapBody = append(mmapBody, u32be(uint32(len(chunkDefs)))...) // chunkCountUsed
	mmapBody = append(mmapBody, u32be(0)...) // junkHead
	mmapBody = append(mmapBody, u32be(0)...) // junkHead2
	mmapBody = append(mmapBody, u32be(0)...) // freeHead
	mmapBody = append(mmapBody, entries...)

	file = append(file, u32be(container.FourCCMmap)...)
	file = append(file, u32be(uint32(len(mmapBody)))...)
	file = append(file, mmapBody...)

	file = append(file, data...)
	return file
}

func TestLoadMinimalMovie(t *testing.T) {
	movie, err := Load(buildMovie(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.IsCastFile() {
		t.Fatalf("expected a movie file, not a cast file")
	}
	if movie.Version() != 200 {
		t.Fatalf("Version() = %d, want 200", movie.Version())
	}
	w, h := movie.StageSize()
	if w != 320 || h != 240 {
		t.Fatalf("StageSize() = %dx%d, want 320x240", w, h)
	}
	if movie.FrameRate() != 15 {
		t.Fatalf("FrameRate() = %d, want 15", movie.FrameRate())
	}
}

func TestLoadMinimalMovieAssets(t *testing.T) {
	movie, err := Load(buildMovie(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assets := movie.Assets()
	if len(assets) != 1 {
		t.Fatalf("len(Assets()) = %d, want 1", len(assets))
	}
	a := assets[0]
	if a.MemberName != "Foo" {
		t.Fatalf("MemberName = %q, want Foo", a.MemberName)
	}
	if a.TypeName != "Bitmap" {
		t.Fatalf("TypeName = %q, want Bitmap", a.TypeName)
	}
	if a.MemberID != 1 {
		t.Fatalf("MemberID = %d, want 1", a.MemberID)
	}
	if len(movie.Scripts()) != 0 {
		t.Fatalf("expected no scripts in this fixture")
	}
}

func TestLoadNotRIFX(t *testing.T) {
	if _, err := Load([]byte("not a director file at all")); err == nil {
		t.Fatalf("expected an error for a non-RIFX file")
	}
}
