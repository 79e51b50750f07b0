// Package score parses a VWSC (Score) chunk into a typed frame/channel
// structure.
//
// This is explicit scaffolding: it exposes frame count and the
// documented tempo/palette/transition/sprite fields, but does not
// implement playback, ink effects, transitions, or Xtras. It mirrors
// deepteams-webp's animation package, which models ANIM/ANMF frame
// sequencing data as a sibling of the image codecs without ever
// becoming part of the codec proper — Score is the same kind of
// "present, not load-bearing" container-level sibling of the parser
// and decompiler.
package score

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/rifx/internal/stream"
)

// Sprite is one channel's member reference within a Frame.
type Sprite struct {
	Channel  int
	MemberID int32
}

// Frame is a single Score frame's documented fields. D5/D6 add
// additional per-channel bytes (26..47 of a D6 channel record) whose
// exact layout isn't published; those bytes are left unparsed rather
// than guessed (spec.md §9 Open Questions).
type Frame struct {
	Tempo      int8
	PaletteID  int16
	Transition byte
	Sprites    []Sprite
}

// Score is a parsed VWSC chunk: a sequence of frames, each carrying its
// channel deltas relative to the previous frame.
type Score struct {
	Frames []Frame
}

// frameHeaderSize is the documented portion of a Score frame record:
// a two-byte length prefix, a one-byte tempo, a two-byte palette id,
// and a one-byte transition code.
const frameHeaderSize = 6

// spriteRecordSize is the documented portion of a sprite channel
// record: a two-byte channel number and a four-byte cast member id.
// Additional D5/D6 fields beyond these six bytes are not parsed.
const spriteRecordSize = 6

// Parse reads a VWSC chunk body into a Score. Each frame record starts
// with its own length prefix (u16, including the prefix); frames are
// read until the buffer is exhausted.
func Parse(body []byte) (*Score, error) {
	s := stream.New(body, binary.BigEndian)
	sc := &Score{}
	for s.Remaining() > 0 {
		frame, err := parseFrame(s)
		if err != nil {
			return nil, fmt.Errorf("score: %w", err)
		}
		sc.Frames = append(sc.Frames, *frame)
	}
	return sc, nil
}

func parseFrame(s *stream.Stream) (*Frame, error) {
	start := s.Pos()
	length, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	if int(length) < frameHeaderSize {
		return nil, fmt.Errorf("frame length %d shorter than header", length)
	}
	tempo, err := s.ReadI8()
	if err != nil {
		return nil, err
	}
	paletteID, err := s.ReadI16()
	if err != nil {
		return nil, err
	}
	transition, err := s.ReadU8()
	if err != nil {
		return nil, err
	}

	frame := &Frame{Tempo: tempo, PaletteID: paletteID, Transition: transition}
	end := start + int(length)
	for s.Pos()+spriteRecordSize <= end {
		channel, err := s.ReadU16()
		if err != nil {
			return nil, err
		}
		memberID, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		frame.Sprites = append(frame.Sprites, Sprite{Channel: int(channel), MemberID: memberID})
	}
	if err := s.Seek(end); err != nil {
		return nil, err
	}
	return frame, nil
}

// FrameCount reports how many frames the score contains.
func (sc *Score) FrameCount() int {
	if sc == nil {
		return 0
	}
	return len(sc.Frames)
}
