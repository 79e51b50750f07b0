package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// Cast is the ordered list of cast-member section ids parsed from a
// CAS* chunk body: just u32 section ids consumed until EOF (0 = empty
// slot), per spec.md §4.3.
type Cast struct {
	MemberSectionIDs []uint32
	// Name/LibID/MinMember are populated by the caller from the CastList
	// entry and KEY table that located this CAS* chunk — a CAS* chunk's
	// own body carries none of that metadata.
	Name      string
	LibID     int32
	MinMember int16
}

// ParseCast reads a CAS* chunk body as a flat array of u32 section ids.
func ParseCast(body []byte) (*Cast, error) {
	s := stream.New(body, binary.BigEndian)
	var ids []uint32
	for s.Remaining() >= 4 {
		id, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return &Cast{MemberSectionIDs: ids}, nil
}

// MemberID returns the full member id for the given zero-based slot
// index i in this cast: memberID = i + minMember (spec.md §3).
func (c *Cast) MemberID(i int) int {
	return i + int(c.MinMember)
}
