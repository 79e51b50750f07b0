package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// KeyEntry joins a cast-side id with the section id of an associated
// data chunk (spec.md §3). castID is overloaded: for CAS*/Lctx it is a
// cast library id; for BITD/snd/STXT/CLUT/etc. it is a member slot id.
type KeyEntry struct {
	SectionID int32
	CastID    int32
	FourCC    uint32
}

// KeyTable is the parsed KEY* chunk.
type KeyTable struct {
	Entries []KeyEntry
}

// ParseKeyTable parses a KEY* chunk body: a fixed header, then a flat
// array of {sectionID int32, castID int32, fourCC u32} triples.
func ParseKeyTable(body []byte) (*KeyTable, error) {
	s := stream.New(body, binary.BigEndian)

	if _, err := s.ReadU16(); err != nil { // entrySize, assumed fixed
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // entrySize2, unused
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // totalCount
		return nil, err
	}
	usedCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	kt := &KeyTable{Entries: make([]KeyEntry, 0, usedCount)}
	for i := uint32(0); i < usedCount; i++ {
		sectionID, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		castID, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		fourCC, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		kt.Entries = append(kt.Entries, KeyEntry{SectionID: sectionID, CastID: castID, FourCC: fourCC})
	}
	return kt, nil
}

// Find returns the section id of the entry matching (castID, fourCC),
// per spec.md §4.4's "try slot id first, then CASt section id" join
// semantics are implemented by the caller trying two castID candidates.
func (kt *KeyTable) Find(castID int32, fourCC uint32) (int32, bool) {
	for _, e := range kt.Entries {
		if e.CastID == castID && e.FourCC == fourCC {
			return e.SectionID, true
		}
	}
	return 0, false
}

// FindMedia looks up a media chunk (BITD, snd , STXT, CLUT, SHAP) for a
// cast member, trying the member slot id first and falling back to the
// CASt chunk's own section id, per spec.md §4.4.
func (kt *KeyTable) FindMedia(memberSlotID, castSectionID int32, fourCC uint32) (int32, bool) {
	if id, ok := kt.Find(memberSlotID, fourCC); ok {
		return id, true
	}
	return kt.Find(castSectionID, fourCC)
}
