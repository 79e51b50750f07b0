package rifx

import (
	"github.com/deepteams/rifx/internal/chunks"
)

// castLib is one loaded cast library: its ordered member slots plus the
// script context (name table + section map) scripts in this cast
// resolve through, if any.
type castLib struct {
	name      string
	libID     int32
	minMember int16
	members   []*castMember
	scriptCtx *chunks.ScriptContext
	names     *chunks.Names
}

// castMember pairs a parsed CASt chunk with its resolved member id and
// the section id it was parsed from (needed for key-table media lookups
// that fall back to the CASt chunk's own section id).
type castMember struct {
	memberID  int
	sectionID uint32
	cast      *chunks.CastMember
}

// loadCasts discovers the movie's cast libraries (D5+ via MCsL/CAS*, pre-
// D5 via a single implicit CAS* chunk), then parses every member and,
// for casts containing scripts, the Lctx/Lnam pair those scripts resolve
// names through.
func (m *Movie) loadCasts() error {
	if m.humanVersion >= 500 {
		return m.loadCastsFromList()
	}
	return m.loadImplicitCast()
}

func (m *Movie) loadCastsFromList() error {
	listID, ok := m.idx.First(fourCCMCsL)
	if !ok {
		return m.loadImplicitCast()
	}
	body, err := m.idx.Body(listID)
	if err != nil {
		return err
	}
	cl, err := chunks.ParseCastList(body)
	if err != nil {
		return err
	}
	for _, entry := range cl.Entries {
		if entry.ID <= 0 {
			continue
		}
		sectionID := entry.ID
		if m.keyTable != nil {
			if resolved, ok := m.keyTable.Find(entry.ID, fourCCCASStar); ok {
				sectionID = resolved
			}
		}
		lib, err := m.loadCastLib(entry.Name, sectionID, entry.ID, entry.MinMember)
		if err != nil {
			m.warn(err)
			continue
		}
		m.casts = append(m.casts, lib)
	}
	return nil
}

func (m *Movie) loadImplicitCast() error {
	id, ok := m.idx.First(fourCCCASStar)
	if !ok {
		return nil
	}
	lib, err := m.loadCastLib("internal", int32(id), int32(id), int16(m.config.MinMember))
	if err != nil {
		return err
	}
	m.casts = append(m.casts, lib)
	return nil
}

// loadCastLib parses the CAS* chunk at sectionID. libID is the cast
// library's own id from the CastList/implicit-cast entry — distinct
// from sectionID once D5+ resolves the CAS* chunk's section through the
// key table (spec.md §4.4) — and is what the later Lctx key-table join
// in loadScriptContext keys on.
func (m *Movie) loadCastLib(name string, sectionID, libID int32, minMember int16) (*castLib, error) {
	body, err := m.idx.Body(uint32(sectionID))
	if err != nil {
		return nil, err
	}
	cast, err := chunks.ParseCast(body)
	if err != nil {
		return nil, err
	}
	cast.Name = name
	cast.LibID = libID
	cast.MinMember = minMember

	lib := &castLib{name: name, libID: libID, minMember: minMember}
	for i, memberSectionID := range cast.MemberSectionIDs {
		if memberSectionID == 0 || !m.idx.Exists(fourCCCASt, memberSectionID) {
			continue
		}
		mbody, err := m.idx.Body(memberSectionID)
		if err != nil {
			m.warn(err)
			continue
		}
		cm, err := chunks.ParseCastMember(mbody, m.humanVersion)
		if err != nil {
			m.warn(err)
			continue
		}
		lib.members = append(lib.members, &castMember{
			memberID:  cast.MemberID(i),
			sectionID: memberSectionID,
			cast:      cm,
		})
	}

	if m.keyTable != nil {
		m.loadScriptContext(lib, libID)
	}
	return lib, nil
}

// loadScriptContext resolves lib's Lctx/LctX chunk (found via the key
// table, keyed by the cast library's own id — the same id the CAS*
// lookup in loadCastLib's caller joins against) and the Lnam chunk it
// points to.
func (m *Movie) loadScriptContext(lib *castLib, castSectionID int32) {
	lctxID, ok := m.keyTable.Find(castSectionID, fourCCLctx)
	if !ok {
		lctxID, ok = m.keyTable.Find(castSectionID, fourCCLctX)
	}
	if !ok {
		return
	}
	body, err := m.idx.Body(uint32(lctxID))
	if err != nil {
		m.warn(err)
		return
	}
	sc, err := chunks.ParseScriptContext(body)
	if err != nil {
		m.warn(err)
		return
	}
	lib.scriptCtx = sc

	if sc.LnamSectionID <= 0 {
		return
	}
	nbody, err := m.idx.Body(uint32(sc.LnamSectionID))
	if err != nil {
		m.warn(err)
		return
	}
	names, err := chunks.ParseNames(nbody)
	if err != nil {
		m.warn(err)
		return
	}
	lib.names = names
}
