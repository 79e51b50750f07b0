package chunks

import (
	"encoding/binary"
	"testing"
)

func put32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func put16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func TestParseCast(t *testing.T) {
	var body []byte
	body = put32(body, 5)
	body = put32(body, 0)
	body = put32(body, 7)
	c, err := ParseCast(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{5, 0, 7}
	if len(c.MemberSectionIDs) != len(want) {
		t.Fatalf("got %v, want %v", c.MemberSectionIDs, want)
	}
	for i := range want {
		if c.MemberSectionIDs[i] != want[i] {
			t.Fatalf("entry %d: got %d, want %d", i, c.MemberSectionIDs[i], want[i])
		}
	}
	c.MinMember = 1
	if c.MemberID(2) != 3 {
		t.Fatalf("MemberID(2) = %d, want 3", c.MemberID(2))
	}
}

func TestParseKeyTableAndFind(t *testing.T) {
	var body []byte
	body = put16(body, 12)
	body = put16(body, 12)
	body = put32(body, 2)
	body = put32(body, 2)
	body = put32(body, 10) // sectionID
	body = put32(body, uint32(int32(3)))
	body = put32(body, FourCCTestCASt)
	body = put32(body, 20) // sectionID
	body = put32(body, uint32(int32(3)))
	body = put32(body, FourCCTestLctx)

	kt, err := ParseKeyTable(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kt.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(kt.Entries))
	}
	id, ok := kt.Find(3, FourCCTestCASt)
	if !ok || id != 10 {
		t.Fatalf("Find(3,CASt) = (%d,%v), want (10,true)", id, ok)
	}
	id, ok = kt.FindMedia(99, 3, FourCCTestLctx)
	if !ok || id != 20 {
		t.Fatalf("FindMedia fallback = (%d,%v), want (20,true)", id, ok)
	}
}

// FourCCTestCASt/FourCCTestLctx avoid importing internal/container from
// this package's tests (chunks intentionally has no container
// dependency); the values match container.FourCC('C','A','S','t') etc.
const (
	FourCCTestCASt = 0x43415374
	FourCCTestLctx = 0x4C637478
)

func TestParseCastListRoundTrip(t *testing.T) {
	// Build item blob: name "Internal", filePath "", preloadSettings=1,
	// rect+id with minMember=1 maxMember=5 id=42.
	nameItem := append([]byte{8}, []byte("Internal")...)
	pathItem := []byte{}
	preloadItem := []byte{0, 1}
	rectItem := make([]byte, 12)
	binary.BigEndian.PutUint16(rectItem[0:2], 1)
	binary.BigEndian.PutUint16(rectItem[2:4], 5)
	binary.BigEndian.PutUint32(rectItem[8:12], 42)

	items := [][]byte{nameItem, pathItem, preloadItem, rectItem}
	var blob []byte
	offsets := []uint32{0}
	cursor := uint32(0)
	for _, it := range items {
		cursor += uint32(len(it))
		offsets = append(offsets, cursor)
		blob = append(blob, it...)
	}

	var tableBody []byte
	tableBody = put16(tableBody, uint16(len(items)))
	for _, off := range offsets {
		tableBody = put32(tableBody, off)
	}
	tableBody = append(tableBody, blob...)

	var body []byte
	dataOffset := uint32(14) // header is 4+4+2+2+2 = 14 bytes
	body = put32(body, dataOffset)
	body = put32(body, 0)
	body = put16(body, 1) // castCount
	body = put16(body, 4) // itemsPerCast
	body = put16(body, 0)
	body = append(body, tableBody...)

	cl, err := ParseCastList(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cl.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(cl.Entries))
	}
	e := cl.Entries[0]
	if e.Name != "Internal" {
		t.Fatalf("name = %q, want Internal", e.Name)
	}
	if e.PreloadSettings != 1 {
		t.Fatalf("preloadSettings = %d, want 1", e.PreloadSettings)
	}
	if e.MinMember != 1 || e.MaxMember != 5 || e.ID != 42 {
		t.Fatalf("rect/id = %+v", e)
	}
}

func TestNamesUnknownSentinel(t *testing.T) {
	n := &Names{Names: []string{"foo", "bar"}}
	name, ok := n.Get(0)
	if !ok || name != "foo" {
		t.Fatalf("Get(0) = (%q,%v)", name, ok)
	}
	name, ok = n.Get(5)
	if ok || name != "UNKNOWN_NAME_5" {
		t.Fatalf("Get(5) = (%q,%v), want UNKNOWN_NAME_5", name, ok)
	}
}

func TestScriptContextSection(t *testing.T) {
	sc := &ScriptContext{SectionIDs: []int32{10, 0, 30}}
	id, ok := sc.Section(1)
	if !ok || id != 10 {
		t.Fatalf("Section(1) = (%d,%v), want (10,true)", id, ok)
	}
	_, ok = sc.Section(2)
	if ok {
		t.Fatalf("Section(2) should be absent (zero entry)")
	}
	id, ok = sc.Section(3)
	if !ok || id != 30 {
		t.Fatalf("Section(3) = (%d,%v), want (30,true)", id, ok)
	}
}

func TestConfigValidate(t *testing.T) {
	c := &Config{MovieLeft: 10, MovieRight: 5}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected invariant error for right < left")
	}
	c = &Config{MovieLeft: 0, MovieRight: 640, MovieTop: 0, MovieBottom: 480}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.StageWidth() != 640 || c.StageHeight() != 480 {
		t.Fatalf("stage size = %dx%d, want 640x480", c.StageWidth(), c.StageHeight())
	}
}

func TestConfigUnprotect(t *testing.T) {
	c := &Config{DirectorVersion: 1200, Protection: 46}
	c.Unprotect()
	if c.FileVersion != 1200 {
		t.Fatalf("fileVersion = %d, want 1200", c.FileVersion)
	}
	if c.Protection != 47 {
		t.Fatalf("protection = %d, want 47 (46 is divisible by 23)", c.Protection)
	}
}
