package chunks

import (
	"encoding/binary"
	"strconv"

	"github.com/deepteams/rifx/internal/stream"
)

// Names is the per-cast name table parsed from an Lnam chunk: an
// ordered array of Pascal strings shared by every script in the cast's
// context (spec.md §3).
type Names struct {
	Names []string
}

// ParseNames parses an Lnam chunk body, per spec.md §4.3: header
// {unk0, unk1, len1, len2, namesOffset, namesCount}, then namesCount
// Pascal strings at namesOffset.
func ParseNames(body []byte) (*Names, error) {
	s := stream.New(body, binary.BigEndian)
	if _, err := s.ReadU32(); err != nil { // unk0
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk1
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // len1
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // len2
		return nil, err
	}
	namesOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	namesCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}

	if err := s.Seek(int(namesOffset)); err != nil {
		return nil, err
	}
	names := make([]string, namesCount)
	for i := range names {
		name, err := s.ReadPascalString()
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return &Names{Names: names}, nil
}

// Valid reports whether id is a valid index into the name table
// (spec.md §3: validName(id) ≡ 0 ≤ id < names.length).
func (n *Names) Valid(id int) bool {
	return id >= 0 && id < len(n.Names)
}

// unknownNamePrefix is the sentinel literal used by tests and callers
// when a name id cannot be resolved (spec.md §6).
const unknownNamePrefix = "UNKNOWN_NAME_"

// Get resolves a name id, returning the UNKNOWN_NAME_<id> sentinel (and
// a false ok) rather than failing, per spec.md §7: "name lookups never
// throw."
func (n *Names) Get(id int) (name string, ok bool) {
	if !n.Valid(id) {
		return unknownNamePrefix + strconv.Itoa(id), false
	}
	return n.Names[id], true
}
