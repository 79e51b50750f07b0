package lingo

import (
	"encoding/binary"
	"testing"
)

func pb32(buf []byte, v int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return append(buf, b[:]...)
}

func TestDecodeBytecodeWidths(t *testing.T) {
	// PushInt -1 (raw 0x41 0xFF, width1, sign-extended), Add (raw 0x05, width0),
	// Ret (raw 0x01, width0).
	code := []byte{0x41, 0xFF, 0x05, 0x01}
	instrs, posIndex, err := DecodeBytecode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instrs) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instrs))
	}
	if instrs[0].Op != OpPushInt || instrs[0].Obj != -1 {
		t.Fatalf("instr0 = %+v, want PushInt -1 (sign-extended)", instrs[0])
	}
	if instrs[1].Op != OpAdd || instrs[1].Pos != 2 {
		t.Fatalf("instr1 = %+v, want Add at pos 2", instrs[1])
	}
	if instrs[2].Op != OpRet || instrs[2].Pos != 3 {
		t.Fatalf("instr2 = %+v, want Ret at pos 3", instrs[2])
	}
	if posIndex[2] != 1 || posIndex[3] != 2 {
		t.Fatalf("posIndex = %+v, missing expected entries", posIndex)
	}
}

func TestDecodeBytecodeWideOperandZeroExtends(t *testing.T) {
	// GetGlobal (canonical 0x47) encoded with a 1-byte operand of 0xFF;
	// non-PushInt u8 operands zero-extend rather than sign-extend.
	code := []byte{0x47, 0xFF}
	instrs, _, err := DecodeBytecode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instrs[0].Obj != 0xFF {
		t.Fatalf("Obj = %d, want 255", instrs[0].Obj)
	}
}

func TestDecodeBytecodeI32Operand(t *testing.T) {
	var code []byte
	code = append(code, 0xD3) // JmpIfZ, width4
	code = pb32(code, -10)
	instrs, _, err := DecodeBytecode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instrs[0].Op != OpJmpIfZ || instrs[0].Obj != -10 {
		t.Fatalf("instr0 = %+v, want JmpIfZ -10", instrs[0])
	}
}
