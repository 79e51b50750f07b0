package chunks

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// ScriptContext is the per-cast script context parsed from an Lctx/LctX
// chunk: a section map of script section ids, plus a pointer to the name
// table shared by every script in the context (spec.md §3, §4.3).
//
// Scripts are stored keyed by their 1-based position in the section map —
// this is exactly the value referenced by a CastInfo's ScriptID field.
type ScriptContext struct {
	LnamSectionID int32

	// SectionIDs[i] is the Lscr chunk's section id for script i+1 (1-based
	// ScriptID values index this slice as SectionIDs[scriptID-1]). A zero
	// entry means no script at that position.
	SectionIDs []int32

	// Names is resolved by the caller once the linked Lnam chunk has been
	// fetched and parsed (chunks deliberately doesn't depend on
	// internal/container, so chunk-fetching orchestration lives in the
	// facade — see rifx.go).
	Names *Names
}

// ParseScriptContext parses an Lctx/LctX chunk body: a fixed header,
// an entries-offset, and a section map of {unk0, sectionID, unk1, unk2}
// records, per spec.md §4.3.
func ParseScriptContext(body []byte) (*ScriptContext, error) {
	s := stream.New(body, binary.BigEndian)

	if _, err := s.ReadU32(); err != nil { // unk0
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk1
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // entryCount
		return nil, err
	}
	entryCount2, err := s.ReadU32()
	if err != nil { // entryCount2 (real count used below)
		return nil, err
	}
	entriesOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // entryLength, assumed fixed at 12
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // entryLength2, unused
		return nil, err
	}
	lnamSectionID, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // validCount, unused
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // flags, unused
		return nil, err
	}
	if _, err := s.ReadI32(); err != nil { // freePointer, unused
		return nil, err
	}

	if err := s.Seek(int(entriesOffset)); err != nil {
		return nil, err
	}

	sc := &ScriptContext{
		LnamSectionID: lnamSectionID,
		SectionIDs:    make([]int32, entryCount2),
	}
	for i := range sc.SectionIDs {
		if _, err := s.ReadU32(); err != nil { // unk0
			return nil, err
		}
		sectionID, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		if _, err := s.ReadU32(); err != nil { // unk1
			return nil, err
		}
		sc.SectionIDs[i] = sectionID
	}
	return sc, nil
}

// Section returns the Lscr chunk section id for the given 1-based
// scriptID, as referenced by CastInfo.ScriptID.
func (sc *ScriptContext) Section(scriptID int) (int32, bool) {
	i := scriptID - 1
	if i < 0 || i >= len(sc.SectionIDs) {
		return 0, false
	}
	id := sc.SectionIDs[i]
	return id, id > 0
}
