package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// Config holds the movie configuration parsed from a DRCF ("pre-D6") or
// VWCF ("D6+") chunk (spec.md §3, §4.3).
type Config struct {
	Len              uint16
	FileVersion      uint16
	MovieTop         int16
	MovieLeft        int16
	MovieBottom      int16
	MovieRight       int16
	MinMember        uint16
	MaxMember        uint16
	FrameRate        int16
	Platform         int16
	Protection       int16
	FileInfoOffset   uint32
	FileInfoLen      uint32
	DirectorVersion  uint16
	StageColorIsRGB  bool
	StageColorIndex  int16 // pre-D7 palette index encoding
	StageColorR      uint16
	StageColorG      uint16
	StageColorB      uint16
	DefaultPalette   int16
}

// HumanVersion returns the human-readable Director version for this
// config (see version.go).
func (c *Config) HumanVersion() int { return HumanVersion(c.DirectorVersion) }

// StageWidth returns movieRight-movieLeft.
func (c *Config) StageWidth() int { return int(c.MovieRight) - int(c.MovieLeft) }

// StageHeight returns movieBottom-movieTop.
func (c *Config) StageHeight() int { return int(c.MovieBottom) - int(c.MovieTop) }

// ParseConfig parses a DRCF/VWCF chunk body. It reads the director
// version word at offset 36 first (to decide the stage-color encoding),
// then rewinds to offset 0 and reads every field in sequence, per
// spec.md §4.3.
func ParseConfig(body []byte) (*Config, error) {
	peek := stream.New(body, binary.BigEndian)
	if err := peek.Seek(36); err != nil {
		return nil, err
	}
	directorVersion, err := peek.ReadU16()
	if err != nil {
		return nil, err
	}

	s := stream.New(body, binary.BigEndian)
	c := &Config{}

	var err2 error
	if c.Len, err2 = s.ReadU16(); err2 != nil {
		return nil, err2
	}
	if c.FileVersion, err2 = s.ReadU16(); err2 != nil {
		return nil, err2
	}
	if c.MovieTop, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.MovieLeft, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.MovieBottom, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.MovieRight, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.MinMember, err2 = s.ReadU16(); err2 != nil {
		return nil, err2
	}
	if c.MaxMember, err2 = s.ReadU16(); err2 != nil {
		return nil, err2
	}
	if _, err2 = s.ReadU8(); err2 != nil { // field9 / trial mode, unused
		return nil, err2
	}
	if _, err2 = s.ReadU8(); err2 != nil { // field10, unused
		return nil, err2
	}
	if c.FrameRate, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.Platform, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if _, err2 = s.ReadI16(); err2 != nil { // protectionOld / field13, unused
		return nil, err2
	}
	if _, err2 = s.ReadU32(); err2 != nil { // checksum, unused
		return nil, err2
	}
	if c.FileInfoOffset, err2 = s.ReadU32(); err2 != nil {
		return nil, err2
	}
	if c.FileInfoLen, err2 = s.ReadU32(); err2 != nil {
		return nil, err2
	}

	if err := s.Seek(36); err != nil {
		return nil, err
	}
	if c.DirectorVersion, err2 = s.ReadU16(); err2 != nil {
		return nil, err2
	}

	// Stage color encoding: pre-D7 stores a single palette-index i16;
	// D7+ stores three u16 RGB channel values directly (spec.md §4.3).
	c.StageColorIsRGB = HumanVersion(directorVersion) >= 700
	if c.StageColorIsRGB {
		if c.StageColorR, err2 = s.ReadU16(); err2 != nil {
			return nil, err2
		}
		if c.StageColorG, err2 = s.ReadU16(); err2 != nil {
			return nil, err2
		}
		if c.StageColorB, err2 = s.ReadU16(); err2 != nil {
			return nil, err2
		}
	} else {
		if c.StageColorIndex, err2 = s.ReadI16(); err2 != nil {
			return nil, err2
		}
	}

	if c.DefaultPalette, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}
	if c.Protection, err2 = s.ReadI16(); err2 != nil {
		return nil, err2
	}

	return c, nil
}

// Validate checks the rect invariants from spec.md §3:
// movieRight >= movieLeft and movieBottom >= movieTop.
func (c *Config) Validate() error {
	if c.MovieRight < c.MovieLeft {
		return &InvariantError{Field: "movieRight", Reason: "less than movieLeft"}
	}
	if c.MovieBottom < c.MovieTop {
		return &InvariantError{Field: "movieBottom", Reason: "less than movieTop"}
	}
	return nil
}

// Unprotect clears the file's copy-protection flag. Transcribed verbatim
// from ProjectorRays' behavior (spec.md §9 Open Questions notes its
// correctness isn't independently verified here): fileVersion is reset
// to directorVersion, and protection is incremented whenever it's evenly
// divisible by 23.
func (c *Config) Unprotect() {
	c.FileVersion = c.DirectorVersion
	if c.Protection%23 == 0 {
		c.Protection++
	}
}
