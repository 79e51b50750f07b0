package chunks

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/deepteams/rifx/internal/stream"
)

// MacRomanToUTF8 decodes s — raw bytes read as Latin-1 codepoints by
// Stream.ReadString, per spec.md §4.1 — as Mac-Roman and re-encodes the
// result as UTF-8. Used only at presentation boundaries (CastInfo's
// display name, a Text member's rendered body); the underlying byte
// decode stays a verbatim Latin-1 passthrough.
func MacRomanToUTF8(s string) string {
	raw := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		raw[i] = byte(s[i])
	}
	out, err := charmap.Macintosh.NewDecoder().Bytes(raw)
	if err != nil {
		return s
	}
	return string(out)
}

// DisplayName returns the member's name decoded from Mac-Roman to UTF-8,
// for human-facing output (spec.md's facade `memberName` fields).
func (ci *CastInfo) DisplayName() string {
	if ci == nil {
		return ""
	}
	return MacRomanToUTF8(ci.Name)
}

// TextChunk is a parsed STXT chunk: a Text cast member's body (spec.md
// §3's Text member kind).
//
// STXT's precise byte layout isn't given by spec.md; this follows the
// shape documented across Director reverse-engineering references (four
// leading length/offset words, then a raw text run, then an optional
// style-run table) and is recorded as an inferred design decision in
// DESIGN.md rather than left unimplemented.
type TextChunk struct {
	Text string // raw Latin-1/Mac-Roman bytes, undecoded
}

// ParseText parses an STXT chunk body.
func ParseText(body []byte) (*TextChunk, error) {
	if len(body) < 16 {
		return &TextChunk{}, nil
	}
	s := stream.New(body, binary.BigEndian)
	if _, err := s.ReadU32(); err != nil { // unk1
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // length1 (whole record)
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // length2
		return nil, err
	}
	textLen, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	text, err := s.ReadString(int(textLen))
	if err != nil {
		// Truncated style-run table or miscounted length: fall back to
		// whatever's left rather than failing the whole chunk.
		text = string(body[16:])
		return &TextChunk{Text: strings.TrimRight(text, "\x00")}, nil
	}
	return &TextChunk{Text: text}, nil
}

// DisplayText returns the chunk's text decoded from Mac-Roman to UTF-8.
func (t *TextChunk) DisplayText() string {
	if t == nil {
		return ""
	}
	return MacRomanToUTF8(t.Text)
}
