package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// CastListEntry is one ordered entry of a CastList (D5+ MCsL chunk),
// resolving via the KEY table to one CAS* section (spec.md §3).
type CastListEntry struct {
	Name            string
	FilePath        string
	PreloadSettings uint16
	MinMember       int16
	MaxMember       int16
	ID              int32
}

// CastList is the ordered list of cast libraries referenced by a movie.
type CastList struct {
	Entries []CastListEntry
}

// ParseCastList parses an MCsL chunk body, per spec.md §4.3: header
// {dataOffset, unk0, castCount, itemsPerCast, unk1}, then at dataOffset
// a list-chunk item table; each entry consumes itemsPerCast consecutive
// items for {name, filePath, preloadSettings, packed rect+id}.
func ParseCastList(body []byte) (*CastList, error) {
	s := stream.New(body, binary.BigEndian)

	dataOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk0
		return nil, err
	}
	castCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	itemsPerCast, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // unk1
		return nil, err
	}

	items, err := readListItems(s, dataOffset)
	if err != nil {
		return nil, err
	}

	cl := &CastList{Entries: make([]CastListEntry, 0, castCount)}
	for c := 0; c < int(castCount); c++ {
		base := c * int(itemsPerCast)
		if base+4 > len(items) {
			break
		}
		entry := CastListEntry{
			Name:     pascalFromItem(items[base]),
			FilePath: pascalFromItem(items[base+1]),
		}
		if len(items[base+2]) >= 2 {
			entry.PreloadSettings = binary.BigEndian.Uint16(items[base+2])
		}
		rectID := items[base+3]
		if len(rectID) >= 12 {
			entry.MinMember = int16(binary.BigEndian.Uint16(rectID[0:2]))
			entry.MaxMember = int16(binary.BigEndian.Uint16(rectID[2:4]))
			entry.ID = int32(binary.BigEndian.Uint32(rectID[8:12]))
		}
		cl.Entries = append(cl.Entries, entry)
	}
	return cl, nil
}
