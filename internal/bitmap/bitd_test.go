package bitmap

import (
	"image/color"
	"testing"
)

func TestRLEDecodeLiteralRun(t *testing.T) {
	// code 0x02 -> copy next 3 bytes verbatim
	raw := []byte{0x02, 0xAA, 0xBB, 0xCC}
	out := rleDecode(raw, 3)
	want := []byte{0xAA, 0xBB, 0xCC}
	if string(out) != string(want) {
		t.Fatalf("got %v want %v", out, want)
	}
}

func TestRLEDecodeRepeatRun(t *testing.T) {
	// code 0xFE == -2 -> (0xFE^0xFF)+2 = 0x01+2 = 3 repeats of next byte
	raw := []byte{0xFE, 0x7F}
	out := rleDecode(raw, 3)
	want := []byte{0x7F, 0x7F, 0x7F}
	if string(out) != string(want) {
		t.Fatalf("got %v want %v", out, want)
	}
}

func TestRLEDecodePadsShortfall(t *testing.T) {
	raw := []byte{0x00, 0x11} // copy next 1 byte
	out := rleDecode(raw, 4)
	want := []byte{0x11, 0x00, 0x00, 0x00}
	if string(out) != string(want) {
		t.Fatalf("got %v want %v", out, want)
	}
}

func TestParseInfoPreD4(t *testing.T) {
	data := make([]byte, 10)
	data[0], data[1] = 0x00, 0x00
	data[2], data[3] = 0x00, 0x00 // top
	data[4], data[5] = 0x00, 0x00 // left
	data[6], data[7] = 0x00, 0x0A // bottom = 10
	data[8], data[9] = 0x00, 0x14 // right = 20

	info, err := ParseInfo(data, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.BPP != 1 {
		t.Fatalf("BPP = %d, want 1 for pre-D4 header", info.BPP)
	}
	if info.Rect.Width() != 20 || info.Rect.Height() != 10 {
		t.Fatalf("rect = %+v, want 20x10", info.Rect)
	}
}

func TestParseInfoD5BPPAndPalette(t *testing.T) {
	data := make([]byte, 28)
	// flags: high bit clear, pitch = 8
	data[0], data[1] = 0x00, 0x08
	data[6], data[7] = 0x00, 0x04 // bottom = 4
	data[8], data[9] = 0x00, 0x08 // right = 8
	data[23] = 8                 // bpp
	// palette id at byte 26 for D5+, value 2
	data[26], data[27] = 0x00, 0x02

	info, err := ParseInfo(data, 850)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.BPP != 8 {
		t.Fatalf("BPP = %d, want 8", info.BPP)
	}
	if info.Pitch != 8 {
		t.Fatalf("Pitch = %d, want 8", info.Pitch)
	}
	if info.PaletteID != 2 {
		t.Fatalf("PaletteID = %d, want 2", info.PaletteID)
	}
}

func TestParseInfoNonPositivePaletteNormalized(t *testing.T) {
	data := make([]byte, 28)
	data[6], data[7] = 0x00, 0x01
	data[8], data[9] = 0x00, 0x01
	data[23] = 8
	data[26], data[27] = 0x00, 0x00 // palette id 0 -> normalized to -1

	info, err := ParseInfo(data, 850)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PaletteID != -1 {
		t.Fatalf("PaletteID = %d, want -1", info.PaletteID)
	}
}

func TestDecode1Bit(t *testing.T) {
	info := &Info{Rect: Rect{Top: 0, Left: 0, Bottom: 1, Right: 8}, BPP: 1, Pitch: 1}
	raw := []byte{0b10100000} // bits: 1,0,1,0,0,0,0,0
	img, err := Decode(raw, info, 200, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel 0 = %+v, want black", c)
	}
	if c := img.RGBAAt(1, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel 1 = %+v, want white", c)
	}
}

func TestDecode8BitUsesPalette(t *testing.T) {
	info := &Info{Rect: Rect{Top: 0, Left: 0, Bottom: 1, Right: 2}, BPP: 8, Pitch: 2}
	raw := []byte{0x00, 0x01}
	pal := color.Palette{
		color.RGBA{10, 20, 30, 255},
		color.RGBA{40, 50, 60, 255},
	}
	img, err := Decode(raw, info, 850, pal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("pixel 0 = %+v", c)
	}
	if c := img.RGBAAt(1, 0); c != (color.RGBA{40, 50, 60, 255}) {
		t.Fatalf("pixel 1 = %+v", c)
	}
}

func TestDecode16BitUncompressedInterleaved(t *testing.T) {
	info := &Info{Rect: Rect{Top: 0, Left: 0, Bottom: 1, Right: 1}, BPP: 16, Pitch: 2}
	// RGB555 all-white: 0x7FFF
	raw := []byte{0x7F, 0xFF}
	img, err := Decode(raw, info, 850, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := img.RGBAAt(0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("pixel = %+v, want near-white", c)
	}
}

func TestScale5to8Bounds(t *testing.T) {
	if got := scale5to8(0); got != 0 {
		t.Fatalf("scale5to8(0) = %d, want 0", got)
	}
	if got := scale5to8(31); got != 255 {
		t.Fatalf("scale5to8(31) = %d, want 255", got)
	}
}
