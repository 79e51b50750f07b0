package lingo

// Op is a canonical (operand-width-collapsed) opcode.
type Op byte

// Canonical opcodes, collapsed from the raw opcode space. Raw opcode
// bytes 0x00-0x3F carry no operand, 0x40-0x7F a u8 operand, 0x80-0xBF a
// u16 operand, 0xC0-0xFF an i32 operand; CanonicalOp folds the three
// operand-width variants of the same logical instruction onto one Op
// value in 0x40-0x7F.
const (
	OpZero Op = 0x00 // unused sentinel; no raw opcode decodes to this

	OpRet        Op = 0x01
	OpRetFactory Op = 0x02
	OpPushZero   Op = 0x03

	OpMul   Op = 0x04
	OpAdd   Op = 0x05
	OpSub   Op = 0x06
	OpDiv   Op = 0x07
	OpMod   Op = 0x08
	OpInv   Op = 0x09
	OpJoinStr Op = 0x0A
	OpJoinPadStr Op = 0x0B
	OpLt    Op = 0x0C
	OpLtEq  Op = 0x0D
	OpNtEq  Op = 0x0E
	OpEq    Op = 0x0F
	OpGt    Op = 0x10
	OpGtEq  Op = 0x11
	OpAnd   Op = 0x12
	OpOr    Op = 0x13
	OpNot   Op = 0x14

	OpContainsStr  Op = 0x15
	OpContains0Str Op = 0x16

	OpGetChunk     Op = 0x17
	OpHiliteChunk  Op = 0x18
	OpOntoSpr      Op = 0x19
	OpIntoSpr      Op = 0x1A
	OpGetField     Op = 0x1B

	OpStartTell Op = 0x1C
	OpEndTell   Op = 0x1D
	OpPushList     Op = 0x1E
	OpPushPropList Op = 0x1F

	OpSwap Op = 0x21

	// Single-operand canonical ops (0x40-0x73).
	OpPushInt       Op = 0x41
	OpPushArgList     Op = 0x42
	OpPushArgListNoRet Op = 0x43
	OpPushCons        Op = 0x44
	OpPushSymb        Op = 0x45
	OpPushVarRef      Op = 0x46
	OpGetGlobal       Op = 0x47
	OpGetGlobal2      Op = 0x48
	OpGetProp         Op = 0x49
	OpGetParam        Op = 0x4A
	OpGetLocal        Op = 0x4B
	OpSetGlobal       Op = 0x4C
	OpSetGlobal2      Op = 0x4D
	OpSetProp         Op = 0x4E
	OpSetParam        Op = 0x4F
	OpSetLocal        Op = 0x50
	OpJmp             Op = 0x51
	OpEndRepeat       Op = 0x52
	OpJmpIfZ          Op = 0x53
	OpLocalCall       Op = 0x54
	OpExtCall         Op = 0x55
	OpObjCallV4       Op = 0x56
	OpPut             Op = 0x57
	OpPutChunk        Op = 0x58
	OpDeleteChunk     Op = 0x59
	OpGetTopLevelProp Op = 0x5A
	OpNewObj          Op = 0x5B

	OpGetChainedProp   Op = 0x5F
	OpPushFloat32      Op = 0x60
	OpGetObjProp       Op = 0x61
	OpSetObjProp       Op = 0x62
	OpTellCall         Op = 0x63
	OpPeek             Op = 0x64
	OpPop              Op = 0x65
	OpTheBuiltin       Op = 0x66
	OpObjCall          Op = 0x67
	OpPushChunkVarRef  Op = 0x68
	OpGetMovieProp     Op = 0x69
	OpSetMovieProp     Op = 0x6A
	OpGet              Op = 0x6B
	OpSet              Op = 0x6C
)

// CanonicalOp collapses a raw opcode byte onto its operand-width-folded
// logical opcode: bytes below 0x40 are already canonical (zero-operand);
// at or above 0x40, the low 6 bits select the logical instruction and the
// high 2 bits select operand width, per spec.md's
// `canonicalOp = opID < 0x40 ? opID : 0x40 + (opID % 0x40)`.
func CanonicalOp(raw byte) Op {
	if raw < 0x40 {
		return Op(raw)
	}
	return Op(0x40 + raw%0x40)
}

// OperandWidth reports how many bytes of immediate operand follow a raw
// opcode byte, per the opcode space layout in spec.md §4.5.
func OperandWidth(raw byte) int {
	switch {
	case raw < 0x40:
		return 0
	case raw < 0x80:
		return 1
	case raw < 0xC0:
		return 2
	default:
		return 4
	}
}

// opNames maps a canonical opcode to its mnemonic, used by the writer's
// fallback comment-node rendering and by diagnostic text.
var opNames = map[Op]string{
	OpRet: "ret", OpRetFactory: "retFactory", OpPushZero: "pushZero",
	OpMul: "mul", OpAdd: "add", OpSub: "sub", OpDiv: "div", OpMod: "mod",
	OpInv: "inv", OpJoinStr: "joinStr", OpJoinPadStr: "joinPadStr",
	OpLt: "lt", OpLtEq: "ltEq", OpNtEq: "ntEq", OpEq: "eq", OpGt: "gt",
	OpGtEq: "gtEq", OpAnd: "and", OpOr: "or", OpNot: "not",
	OpContainsStr: "containsStr", OpContains0Str: "contains0Str",
	OpGetChunk: "getChunk", OpHiliteChunk: "hiliteChunk",
	OpOntoSpr: "ontoSpr", OpIntoSpr: "intoSpr", OpGetField: "getField",
	OpStartTell: "startTell", OpEndTell: "endTell",
	OpPushList: "pushList", OpPushPropList: "pushPropList", OpSwap: "swap",
	OpPushInt: "pushInt", OpPushArgList: "pushArgList",
	OpPushArgListNoRet: "pushArgListNoRet", OpPushCons: "pushCons",
	OpPushSymb: "pushSymb", OpPushVarRef: "pushVarRef",
	OpGetGlobal: "getGlobal", OpGetGlobal2: "getGlobal2",
	OpGetProp: "getProp", OpGetParam: "getParam", OpGetLocal: "getLocal",
	OpSetGlobal: "setGlobal", OpSetGlobal2: "setGlobal2",
	OpSetProp: "setProp", OpSetParam: "setParam", OpSetLocal: "setLocal",
	OpJmp: "jmp", OpEndRepeat: "endRepeat", OpJmpIfZ: "jmpIfZ",
	OpLocalCall: "localCall", OpExtCall: "extCall",
	OpObjCallV4: "objCallV4", OpPut: "put", OpPutChunk: "putChunk",
	OpDeleteChunk: "deleteChunk", OpGetTopLevelProp: "getTopLevelProp",
	OpNewObj: "newObj", OpGetChainedProp: "getChainedProp",
	OpPushFloat32: "pushFloat32", OpGetObjProp: "getObjProp",
	OpSetObjProp: "setObjProp", OpTellCall: "tellCall", OpPeek: "peek",
	OpPop: "pop", OpTheBuiltin: "theBuiltin", OpObjCall: "objCall",
	OpPushChunkVarRef: "pushChunkVarRef", OpGetMovieProp: "getMovieProp",
	OpSetMovieProp: "setMovieProp", OpGet: "get", OpSet: "set",
}

// Name returns op's mnemonic, or "unk" for an opcode this table doesn't
// recognize.
func (op Op) Name() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "unk"
}
