package score

import (
	"encoding/binary"
	"testing"
)

func putU16(b []byte, v uint16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return append(b, buf...)
}

func putI32(b []byte, v int32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return append(b, buf...)
}

func buildFrame(tempo int8, paletteID int16, transition byte, sprites []Sprite) []byte {
	body := make([]byte, 0, frameHeaderSize+len(sprites)*spriteRecordSize)
	length := frameHeaderSize + len(sprites)*spriteRecordSize
	body = putU16(body, uint16(length))
	body = append(body, byte(tempo))
	body = putU16(body, uint16(paletteID))
	body = append(body, transition)
	for _, sp := range sprites {
		body = putU16(body, uint16(sp.Channel))
		body = putI32(body, sp.MemberID)
	}
	return body
}

func TestParseSingleFrameNoSprites(t *testing.T) {
	body := buildFrame(30, -1, 0, nil)
	sc, err := Parse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1", sc.FrameCount())
	}
	if sc.Frames[0].Tempo != 30 {
		t.Fatalf("Tempo = %d, want 30", sc.Frames[0].Tempo)
	}
	if sc.Frames[0].PaletteID != -1 {
		t.Fatalf("PaletteID = %d, want -1", sc.Frames[0].PaletteID)
	}
}

func TestParseFrameWithSprites(t *testing.T) {
	sprites := []Sprite{{Channel: 1, MemberID: 7}, {Channel: 2, MemberID: 42}}
	body := buildFrame(15, 0, 1, sprites)
	sc, err := Parse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Frames[0].Sprites) != 2 {
		t.Fatalf("len(Sprites) = %d, want 2", len(sc.Frames[0].Sprites))
	}
	if sc.Frames[0].Sprites[1].MemberID != 42 {
		t.Fatalf("Sprites[1].MemberID = %d, want 42", sc.Frames[0].Sprites[1].MemberID)
	}
}

func TestParseMultipleFrames(t *testing.T) {
	body := append(buildFrame(30, -1, 0, nil), buildFrame(24, 2, 0, []Sprite{{Channel: 1, MemberID: 9}})...)
	sc, err := Parse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", sc.FrameCount())
	}
}

func TestFrameCountNilSafe(t *testing.T) {
	var sc *Score
	if sc.FrameCount() != 0 {
		t.Fatalf("expected 0 for nil Score")
	}
}
