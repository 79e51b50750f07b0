package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// MemberType enumerates the cast member kinds recognized by spec.md §3.
type MemberType uint32

const (
	MemberNull MemberType = iota
	MemberBitmap
	MemberFilmLoop
	MemberText
	MemberPalette
	MemberPicture
	MemberSound
	MemberButton
	MemberShape
	MemberMovie
	MemberDigitalVideo
	MemberScript
	MemberRTE
	MemberOLE  MemberType = 15
	MemberTransition MemberType = 16
	MemberXtra MemberType = 17
)

func (t MemberType) String() string {
	switch t {
	case MemberNull:
		return "Null"
	case MemberBitmap:
		return "Bitmap"
	case MemberFilmLoop:
		return "FilmLoop"
	case MemberText:
		return "Text"
	case MemberPalette:
		return "Palette"
	case MemberPicture:
		return "Picture"
	case MemberSound:
		return "Sound"
	case MemberButton:
		return "Button"
	case MemberShape:
		return "Shape"
	case MemberMovie:
		return "Movie"
	case MemberDigitalVideo:
		return "DigitalVideo"
	case MemberScript:
		return "Script"
	case MemberRTE:
		return "RTE"
	case MemberOLE:
		return "OLE"
	case MemberTransition:
		return "Transition"
	case MemberXtra:
		return "Xtra"
	default:
		return "Unknown"
	}
}

// ScriptType distinguishes the three script-member flavors stored in the
// first u16 of a Script member's specific data (spec.md §4.3).
type ScriptType uint16

const (
	ScoreScript   ScriptType = 1
	MovieScript   ScriptType = 3
	ParentScript  ScriptType = 7
)

// CastInfo is the variable-length info record embedded in a CASt chunk:
// script id, script source text, and member name (spec.md §3, §4.3).
type CastInfo struct {
	ScriptID    int32
	ScriptText  string
	Name        string
}

// CastMember is one parsed CASt chunk (spec.md §3).
type CastMember struct {
	Type         MemberType
	Info         *CastInfo
	SpecificData []byte
	ScriptType   ScriptType // only meaningful when Type == MemberScript
}

// ParseCastMember parses a CASt chunk body, branching on whether the
// file predates D5 (pre-D5 has a different header shape), per spec.md
// §4.3.
func ParseCastMember(body []byte, humanVersion int) (*CastMember, error) {
	s := stream.New(body, binary.BigEndian)
	cm := &CastMember{}

	if humanVersion >= 500 {
		typ, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		infoLen, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		specificDataLen, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		cm.Type = MemberType(typ)

		infoBlob, err := s.ReadBytes(int(infoLen))
		if err != nil {
			return nil, err
		}
		specificBlob, err := s.ReadBytes(int(specificDataLen))
		if err != nil {
			return nil, err
		}
		cm.SpecificData = specificBlob

		info, err := ParseCastInfo(infoBlob)
		if err != nil {
			return nil, err
		}
		cm.Info = info
	} else {
		specificDataLen, err := s.ReadU16()
		if err != nil {
			return nil, err
		}
		infoLen, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		typ, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		cm.Type = MemberType(typ)

		remaining := int(specificDataLen) - 1 // the type byte already consumed
		if remaining < 0 {
			remaining = 0
		}
		specificBlob, err := s.ReadBytes(remaining)
		if err != nil {
			return nil, err
		}
		cm.SpecificData = specificBlob

		infoBlob, err := s.ReadBytes(int(infoLen))
		if err != nil {
			return nil, err
		}
		info, err := ParseCastInfo(infoBlob)
		if err != nil {
			return nil, err
		}
		cm.Info = info
	}

	if cm.Type == MemberScript && len(cm.SpecificData) >= 2 {
		cm.ScriptType = ScriptType(binary.BigEndian.Uint16(cm.SpecificData[0:2]))
	}

	return cm, nil
}

// ParseCastInfo parses the variable-length info record embedded in a
// CASt chunk: a list-chunk header {dataOffset, unk1, unk2, flags,
// scriptId}, whose 0th item is the raw (Latin-1) script source text and
// 1st item is the Pascal-encoded member name (spec.md §4.3).
func ParseCastInfo(body []byte) (*CastInfo, error) {
	if len(body) == 0 {
		return &CastInfo{}, nil
	}
	s := stream.New(body, binary.BigEndian)

	dataOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk1
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk2
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // flags
		return nil, err
	}
	scriptID, err := s.ReadI32()
	if err != nil {
		return nil, err
	}

	items, err := readListItems(s, dataOffset)
	if err != nil {
		return nil, err
	}

	info := &CastInfo{ScriptID: scriptID}
	if len(items) > 0 {
		info.ScriptText = rawString(items[0])
	}
	if len(items) > 1 {
		info.Name = pascalFromItem(items[1])
	}
	return info, nil
}
