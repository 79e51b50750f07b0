package bitmap

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// Rect is a Director bitmap's bounding rectangle (spec.md §3), stored in
// the file's top/left/bottom/right field order rather than Go's
// image.Rectangle's min/max pair.
type Rect struct {
	Top, Left, Bottom, Right int16
}

func (r Rect) Width() int  { return int(r.Right) - int(r.Left) }
func (r Rect) Height() int { return int(r.Bottom) - int(r.Top) }

// Info is a BITD cast member's specific-data header: the fields
// BITDDecoder needs besides the raw pixel bytes (spec.md §4.7).
type Info struct {
	Flags     uint16
	Rect      Rect
	Pitch     int
	BPP       int
	PaletteID int32
}

// ParseInfo parses a Bitmap member's specificData (spec.md §4.7): word 0
// is flags (high bit set marks an extended-format header, not otherwise
// interpreted here); the rect occupies bytes 2..9. D4+ adds pitch
// (flags & 0x7FFF), bpp at byte 23, and a palette id at byte 26 (D5+) or
// byte 24 (D4), normalized so ids <= 0 are recorded as id-1.
func ParseInfo(data []byte, humanVersion int) (*Info, error) {
	if len(data) < 10 {
		return nil, fmt.Errorf("bitmap: specific data too short (%d bytes)", len(data))
	}
	flags := binary.BigEndian.Uint16(data[0:2])
	info := &Info{
		Flags: flags,
		Rect: Rect{
			Top:    int16(binary.BigEndian.Uint16(data[2:4])),
			Left:   int16(binary.BigEndian.Uint16(data[4:6])),
			Bottom: int16(binary.BigEndian.Uint16(data[6:8])),
			Right:  int16(binary.BigEndian.Uint16(data[8:10])),
		},
		BPP: 1,
	}
	if humanVersion < 400 {
		return info, nil
	}

	info.Pitch = int(flags & 0x7FFF)
	if len(data) > 23 {
		info.BPP = int(data[23])
	}
	if info.BPP == 0 {
		info.BPP = 1
	}

	paletteOffset := 24
	if humanVersion >= 500 {
		paletteOffset = 26
	}
	info.PaletteID = 1
	if len(data) >= paletteOffset+2 {
		info.PaletteID = int32(int16(binary.BigEndian.Uint16(data[paletteOffset : paletteOffset+2])))
	}
	if info.PaletteID <= 0 {
		info.PaletteID--
	}
	return info, nil
}

// Decode decodes a BITD chunk's raw bytes into an *image.RGBA, given the
// member's header fields and the resolved palette (spec.md §4.7).
func Decode(raw []byte, info *Info, humanVersion int, palette color.Palette) (*image.RGBA, error) {
	width, height := info.Rect.Width(), info.Rect.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: non-positive dimensions %dx%d", width, height)
	}
	pitch := info.Pitch
	if pitch == 0 {
		pitch = (width*info.BPP + 7) / 8
	}

	expected := pitch * height
	wasCompressed := !(humanVersion < 400 && info.BPP == 32) && len(raw) < expected
	data := raw
	if wasCompressed {
		data = rleDecode(raw, expected)
	} else if len(data) < expected {
		padded := make([]byte, expected)
		copy(padded, data)
		data = padded
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	switch info.BPP {
	case 1:
		unpack1Bit(data, pitch, width, height, img)
	case 2:
		unpack2Bit(data, pitch, width, height, img)
	case 4:
		unpack4Bit(data, pitch, width, height, img, palette)
	case 8:
		unpack8Bit(data, pitch, width, height, img, palette)
	case 16:
		unpack16Bit(data, pitch, width, height, img, wasCompressed)
	case 32:
		unpack32Bit(data, pitch, width, height, img, wasCompressed)
	default:
		return nil, fmt.Errorf("bitmap: unsupported bit depth %d", info.BPP)
	}
	return img, nil
}

// rleDecode implements spec.md §4.7's PackBits-style row compression: a
// code byte below 0x80 copies the next c+1 bytes verbatim; at or above
// 0x80, the next byte repeats (c XOR 0xFF) + 2 times. Decoding stops once
// expected bytes are produced; any shortfall is zero-padded.
func rleDecode(raw []byte, expected int) []byte {
	out := make([]byte, 0, expected)
	i := 0
	for i < len(raw) && len(out) < expected {
		c := raw[i]
		i++
		if c < 0x80 {
			n := int(c) + 1
			end := i + n
			if end > len(raw) {
				end = len(raw)
			}
			out = append(out, raw[i:end]...)
			i = end
			continue
		}
		if i >= len(raw) {
			break
		}
		b := raw[i]
		i++
		n := int(c^0xFF) + 2
		for k := 0; k < n; k++ {
			out = append(out, b)
		}
	}
	if len(out) < expected {
		out = append(out, make([]byte, expected-len(out))...)
	} else if len(out) > expected {
		out = out[:expected]
	}
	return out
}

func unpack1Bit(data []byte, pitch, width, height int, img *image.RGBA) {
	rowBytes := (width + 7) / 8
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, rowBytes)
		for x := 0; x < width; x++ {
			bit := (row[x/8] >> uint(7-x%8)) & 1
			c := color.RGBA{255, 255, 255, 255}
			if bit == 1 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func unpack2Bit(data []byte, pitch, width, height int, img *image.RGBA) {
	rowBytes := (width + 3) / 4
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, rowBytes)
		for x := 0; x < width; x++ {
			shift := uint(6 - 2*(x%4))
			idx := (row[x/4] >> shift) & 0x3
			v := uint8(255 - int(idx)*85)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
}

func unpack4Bit(data []byte, pitch, width, height int, img *image.RGBA, palette color.Palette) {
	rowBytes := (width + 1) / 2
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, rowBytes)
		for x := 0; x < width; x++ {
			b := row[x/2]
			var idx byte
			if x%2 == 0 {
				idx = b >> 4
			} else {
				idx = b & 0xF
			}
			img.Set(x, y, paletteColor(palette, int(idx)))
		}
	}
}

func unpack8Bit(data []byte, pitch, width, height int, img *image.RGBA, palette color.Palette) {
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, width)
		for x := 0; x < width; x++ {
			img.Set(x, y, paletteColor(palette, int(row[x])))
		}
	}
}

// unpack16Bit decodes RGB555 pixels. A compressed row stores every
// pixel's high byte first, then every pixel's low byte; an uncompressed
// row interleaves big-endian hi,lo pairs (spec.md §4.7).
func unpack16Bit(data []byte, pitch, width, height int, img *image.RGBA, wasCompressed bool) {
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, pitch)
		for x := 0; x < width; x++ {
			var hi, lo byte
			if wasCompressed {
				hi, lo = row[x], row[width+x]
			} else {
				hi, lo = row[2*x], row[2*x+1]
			}
			v := uint16(hi)<<8 | uint16(lo)
			r5 := (v >> 10) & 0x1F
			g5 := (v >> 5) & 0x1F
			b5 := v & 0x1F
			img.SetRGBA(x, y, color.RGBA{scale5to8(r5), scale5to8(g5), scale5to8(b5), 255})
		}
	}
}

// unpack32Bit decodes ARGB pixels. A compressed (D4+) row stores each
// channel plane separately in A,R,G,B order, each width bytes long; an
// uncompressed row interleaves big-endian ARGB quads (spec.md §4.7).
func unpack32Bit(data []byte, pitch, width, height int, img *image.RGBA, wasCompressed bool) {
	for y := 0; y < height; y++ {
		row := rowSlice(data, pitch, y, pitch)
		for x := 0; x < width; x++ {
			var a, r, g, b byte
			if wasCompressed {
				a, r, g, b = row[x], row[width+x], row[2*width+x], row[3*width+x]
			} else {
				a, r, g, b = row[4*x], row[4*x+1], row[4*x+2], row[4*x+3]
			}
			img.SetRGBA(x, y, color.RGBA{r, g, b, orOpaque(a)})
		}
	}
}

// orOpaque treats a zero alpha plane (common when the source never wrote
// one) as fully opaque rather than fully transparent.
func orOpaque(a byte) byte {
	if a == 0 {
		return 255
	}
	return a
}

func scale5to8(v uint16) uint8 {
	return uint8((uint32(v)*255 + 15) / 31)
}

func paletteColor(palette color.Palette, idx int) color.Color {
	if idx >= 0 && idx < len(palette) {
		return palette[idx]
	}
	return color.RGBA{0, 0, 0, 255}
}

// rowSlice returns row y's bytes, clamped to data's bounds and padded
// with zeros if the buffer came up short (malformed/truncated input).
func rowSlice(data []byte, pitch, y, n int) []byte {
	start := y * pitch
	if start >= len(data) {
		return make([]byte, n)
	}
	end := start + n
	if end > len(data) {
		out := make([]byte, n)
		copy(out, data[start:])
		return out
	}
	return data[start:end]
}
