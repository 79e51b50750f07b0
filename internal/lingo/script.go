package lingo

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// ScriptFlag is a bitmask of the flags carried in a Script's header
// (spec.md §3).
type ScriptFlag uint32

const (
	ScriptFuncsGlobal ScriptFlag = 1 << 0
	ScriptVarsGlobal  ScriptFlag = 1 << 1
	ScriptFactoryDef  ScriptFlag = 1 << 2
	ScriptHasFactory  ScriptFlag = 1 << 3
	ScriptEventScript ScriptFlag = 1 << 5
)

// Has reports whether flag is set.
func (f ScriptFlag) Has(flag ScriptFlag) bool { return f&flag != 0 }

// Handler is one compiled Lingo handler: its name, argument/local/global
// name tables, and its raw bytecode (spec.md §3).
type Handler struct {
	NameID          int16
	ArgumentNameIDs []int16
	LocalNameIDs    []int16
	GlobalNameIDs   []int16
	Bytecode        []byte
	StackHeight     int16 // only meaningful when the script's humanVersion >= 850
	IsGenericEvent  bool
}

// Script is a parsed Lscr chunk: one compiled script (spec.md §3). A
// script with ScriptFactoryDef set is an object class whose first
// handler's first argument is implicitly "me".
type Script struct {
	ScriptNumber    int32
	ParentNumber    int32
	Flags           ScriptFlag
	CastID          int32
	FactoryNameID   int16
	Handlers        []Handler
	Literals        []Datum
	PropertyNameIDs []int16
	GlobalNameIDs   []int16

	humanVersion int
}

func (s *Script) IsFactory() bool { return s.Flags.Has(ScriptFactoryDef) }

// variableMultiplier returns the divisor applied to SetLocal/SetParam/
// GetLocal/GetParam operands (which encode an array byte-offset, not a
// slot index) to recover the slot index, per spec.md §4.6: 1 for
// version >= 850, 8 for version >= 500, 6 otherwise.
func (s *Script) variableMultiplier() int32 {
	switch {
	case s.humanVersion >= 850:
		return 1
	case s.humanVersion >= 500:
		return 8
	default:
		return 6
	}
}

// readNameIDTable reads a flat array of count u16 name ids at the given
// absolute byte offset within body.
func readNameIDTable(body []byte, offset uint32, count uint16) ([]int16, error) {
	if count == 0 {
		return nil, nil
	}
	s := stream.New(body, binary.BigEndian)
	if err := s.Seek(int(offset)); err != nil {
		return nil, err
	}
	ids := make([]int16, count)
	for i := range ids {
		v, err := s.ReadI16()
		if err != nil {
			return nil, err
		}
		ids[i] = v
	}
	return ids, nil
}

// handlerRecord is the fixed-width table entry describing one handler's
// location and name tables, read at a table offset derived from the
// script header (spec.md §4.5).
type handlerRecord struct {
	nameID          int16
	vectorPos       int16
	compiledLen     uint32
	compiledOffset  uint32
	argCount        uint16
	argOffset       uint32
	localsCount     uint16
	localsOffset    uint32
	globalsCount    uint16
	globalsOffset   uint32
	unk1            uint32
	unk2            uint32
	lineCount       uint16
	lineOffset      uint32
	stackHeight     int16
}

func readHandlerRecord(s *stream.Stream, humanVersion int) (*handlerRecord, error) {
	var hr handlerRecord
	var err error
	if hr.nameID, err = s.ReadI16(); err != nil {
		return nil, err
	}
	if hr.vectorPos, err = s.ReadI16(); err != nil {
		return nil, err
	}
	if hr.compiledLen, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.compiledOffset, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.argCount, err = s.ReadU16(); err != nil {
		return nil, err
	}
	if hr.argOffset, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.localsCount, err = s.ReadU16(); err != nil {
		return nil, err
	}
	if hr.localsOffset, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.globalsCount, err = s.ReadU16(); err != nil {
		return nil, err
	}
	if hr.globalsOffset, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.unk1, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.unk2, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if hr.lineCount, err = s.ReadU16(); err != nil {
		return nil, err
	}
	if hr.lineOffset, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if humanVersion >= 850 {
		if hr.stackHeight, err = s.ReadI16(); err != nil {
			return nil, err
		}
	}
	return &hr, nil
}

// ParseScript parses an Lscr chunk body into a Script, given the movie's
// human-readable Director version (which gates both the handler record's
// trailing stackHeight field and the argument-offset variable
// multiplier).
//
// The exact byte layout of the Lscr header beyond the handler record
// (spec.md §4.5) and literal pool isn't pinned down by the distributed
// specification; this lays it out in the same shape ProjectorRays is
// known to use (scalar header fields, then a handler-vector table, then
// a literal pool, then name-id tables), and is recorded as a design
// decision in DESIGN.md rather than left unimplemented.
func ParseScript(body []byte, humanVersion int) (*Script, error) {
	s := stream.New(body, binary.BigEndian)

	if _, err := s.ReadU32(); err != nil { // totalLength
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // totalLength2
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // headerLength
		return nil, err
	}
	scriptNumber, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // unk8
		return nil, err
	}
	parentNumber, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	for i := 0; i < 6; i++ {
		if _, err := s.ReadU32(); err != nil { // unk9..unk14
			return nil, err
		}
	}
	flags, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU16(); err != nil { // unk15
		return nil, err
	}
	castID, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	factoryNameID, err := s.ReadI16()
	if err != nil {
		return nil, err
	}
	handlerCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	handlerVectorsOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // handlerVectorsSize
		return nil, err
	}
	literalsCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	literalsOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // literalsDataLen
		return nil, err
	}
	literalsDataOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	propertiesCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	propertiesOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	globalsCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	globalsOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	sc := &Script{
		ScriptNumber:  scriptNumber,
		ParentNumber:  parentNumber,
		Flags:         ScriptFlag(flags),
		CastID:        castID,
		FactoryNameID: factoryNameID,
		humanVersion:  humanVersion,
	}

	sc.PropertyNameIDs, err = readNameIDTable(body, propertiesOffset, propertiesCount)
	if err != nil {
		return nil, err
	}
	sc.GlobalNameIDs, err = readNameIDTable(body, globalsOffset, globalsCount)
	if err != nil {
		return nil, err
	}

	sc.Literals, err = readLiteralPool(body, literalsOffset, literalsDataOffset, literalsCount)
	if err != nil {
		return nil, err
	}

	if err := s.Seek(int(handlerVectorsOffset)); err != nil {
		return nil, err
	}
	sc.Handlers = make([]Handler, handlerCount)
	for i := range sc.Handlers {
		hr, err := readHandlerRecord(s, humanVersion)
		if err != nil {
			return nil, err
		}
		h := Handler{NameID: hr.nameID, StackHeight: hr.stackHeight}
		if h.ArgumentNameIDs, err = readNameIDTable(body, hr.argOffset, hr.argCount); err != nil {
			return nil, err
		}
		if h.LocalNameIDs, err = readNameIDTable(body, hr.localsOffset, hr.localsCount); err != nil {
			return nil, err
		}
		if h.GlobalNameIDs, err = readNameIDTable(body, hr.globalsOffset, hr.globalsCount); err != nil {
			return nil, err
		}
		end := hr.compiledOffset + hr.compiledLen
		if int(end) > len(body) {
			end = uint32(len(body))
		}
		if hr.compiledOffset <= end {
			h.Bytecode = body[hr.compiledOffset:end]
		}
		sc.Handlers[i] = h
	}

	return sc, nil
}

// readLiteralPool reads literalsCount literal headers at literalsOffset
// (each {type u32, value/offset u32}) and their backing data at
// literalsDataOffset, per the literal encoding spec.md §4.5/§4.6 assume:
// 1 = string (Pascal-ish length-prefixed, offset into data blob), 4 =
// integer (value stored inline), 9 = float (offset into data blob,
// IEEE754 double when the stored length is 8, SANE extended otherwise).
func readLiteralPool(body []byte, literalsOffset, literalsDataOffset uint32, count uint16) ([]Datum, error) {
	if count == 0 {
		return nil, nil
	}
	s := stream.New(body, binary.BigEndian)
	if err := s.Seek(int(literalsOffset)); err != nil {
		return nil, err
	}
	type rawLit struct {
		typ   uint32
		value uint32
	}
	raw := make([]rawLit, count)
	for i := range raw {
		typ, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		value, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		raw[i] = rawLit{typ, value}
	}

	out := make([]Datum, count)
	for i, r := range raw {
		switch r.typ {
		case 1: // string
			off := int(literalsDataOffset) + int(r.value)
			ls := stream.New(body, binary.BigEndian)
			if err := ls.Seek(off); err != nil {
				return nil, err
			}
			n, err := ls.ReadU32()
			if err != nil {
				return nil, err
			}
			str, err := ls.ReadString(int(n))
			if err != nil {
				return nil, err
			}
			out[i] = StringDatum(str)
		case 4: // integer, stored inline as the "offset" field
			out[i] = IntDatum(int32(r.value))
		case 9: // float
			off := int(literalsDataOffset) + int(r.value)
			ls := stream.New(body, binary.BigEndian)
			if err := ls.Seek(off); err != nil {
				return nil, err
			}
			length, err := ls.ReadU32()
			if err != nil {
				return nil, err
			}
			var f float64
			if length == 8 {
				f, err = ls.ReadF64()
			} else {
				f, err = ls.ReadF80()
			}
			if err != nil {
				return nil, err
			}
			out[i] = FloatDatum(f)
		default:
			out[i] = VoidDatum()
		}
	}
	return out, nil
}
