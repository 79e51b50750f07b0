package lingo

import (
	"encoding/binary"

	"github.com/deepteams/rifx/internal/stream"
)

// LoopTag classifies an instruction's role in a repeat/case construct, as
// assigned by the loop tagger pre-pass (spec.md §3).
type LoopTag int

const (
	TagNone LoopTag = iota
	TagSkip
	TagRepeatWhile
	TagRepeatWithIn
	TagRepeatWithTo
	TagRepeatWithDownTo
	TagNextRepeatTarget
	TagEndCase
)

// Instruction is one decoded bytecode instruction (spec.md §3).
type Instruction struct {
	RawOp       byte
	Op          Op
	Obj         int32 // decoded operand: PushInt and i32 operands sign-extended, other u8/u16 operands zero-extended
	Pos         int   // byte offset of this instruction within the handler's code
	Tag         LoopTag
	OwnerLoop   int // Pos of the JmpIfZ that owns this instruction, when Tag != TagNone
}

// DecodeBytecode decodes a handler's raw code segment into an ordered
// instruction list and a pos->index lookup, forcing big-endian reads
// (scripts are always big-endian regardless of file endianness, per
// spec.md §4.6).
func DecodeBytecode(code []byte) ([]Instruction, map[int]int, error) {
	s := stream.New(code, binary.BigEndian)
	var instrs []Instruction
	posIndex := make(map[int]int)

	for s.Remaining() > 0 {
		pos := s.Pos()
		raw, err := s.ReadU8()
		if err != nil {
			return nil, nil, err
		}
		width := OperandWidth(raw)
		var obj int32
		switch width {
		case 0:
			obj = 0
		case 1:
			v, err := s.ReadU8()
			if err != nil {
				return nil, nil, err
			}
			if CanonicalOp(raw) == OpPushInt {
				obj = int32(int8(v))
			} else {
				obj = int32(v)
			}
		case 2:
			v, err := s.ReadU16()
			if err != nil {
				return nil, nil, err
			}
			if CanonicalOp(raw) == OpPushInt {
				obj = int32(int16(v))
			} else {
				obj = int32(v)
			}
		case 4:
			v, err := s.ReadI32()
			if err != nil {
				return nil, nil, err
			}
			obj = v
		}

		posIndex[pos] = len(instrs)
		instrs = append(instrs, Instruction{
			RawOp: raw,
			Op:    CanonicalOp(raw),
			Obj:   obj,
			Pos:   pos,
		})
	}
	return instrs, posIndex, nil
}
