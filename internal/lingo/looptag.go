package lingo

// TagLoops is the pre-pass described in spec.md §4.6: it walks the
// decoded instruction stream once, classifying every JmpIfZ that closes
// a repeat construct, before the AST lifter makes its single forward
// pass. Tags are written in place onto instrs.
func TagLoops(instrs []Instruction, posIndex map[int]int) {
	for i := range instrs {
		in := &instrs[i]
		if in.Op != OpJmpIfZ {
			continue
		}
		target := in.Pos + int(in.Obj)
		ti, ok := posIndex[target]
		if !ok || ti == 0 {
			continue
		}
		endRepeatIdx := ti - 1
		if endRepeatIdx < 0 || endRepeatIdx >= len(instrs) {
			continue
		}
		endRepeat := &instrs[endRepeatIdx]
		if endRepeat.Op != OpEndRepeat {
			continue
		}
		backTarget := endRepeat.Pos + int(endRepeat.Obj)
		if backTarget > in.Pos {
			continue
		}

		switch {
		case isRepeatWithIn(instrs, posIndex, i):
			tagRepeatWithIn(instrs, posIndex, i, endRepeatIdx)
		case isRepeatWithToOrDownTo(instrs, i, endRepeatIdx):
			tagRepeatWithTo(instrs, i, endRepeatIdx)
		default:
			in.Tag = TagRepeatWhile
		}
		endRepeat.Tag = TagSkip
		endRepeat.OwnerLoop = in.Pos
		if backIdx, ok := posIndex[backTarget]; ok {
			instrs[backIdx].Tag = TagNextRepeatTarget
			instrs[backIdx].OwnerLoop = in.Pos
		}
	}
}

// isRepeatWithIn recognizes a "repeat with x in list" loop by the
// seven-instruction pre-sequence ending right before the JmpIfZ at idx,
// {Peek 0, PushArgList 1, ExtCall "count", PushInt8 1, Peek 0, Peek 2, LtEq}.
// Only the opcodes are compared: operand values, the ExtCall name and the
// instructions after the JmpIfZ are not checked.
func isRepeatWithIn(instrs []Instruction, posIndex map[int]int, idx int) bool {
	const fingerprintLen = 7
	if idx < fingerprintLen {
		return false
	}
	pre := instrs[idx-fingerprintLen : idx]
	want := []Op{OpPeek, OpPushArgList, OpExtCall, OpPushInt, OpPeek, OpPeek, OpLtEq}
	for i, op := range want {
		if pre[i].Op != op {
			return false
		}
	}
	return true
}

// tagRepeatWithIn marks the fingerprint's helper instructions Skip so the
// lifter's main loop passes over them without emitting expressions, per
// spec.md §4.6.
func tagRepeatWithIn(instrs []Instruction, posIndex map[int]int, jmpIdx, endRepeatIdx int) {
	const fingerprintLen = 7
	start := jmpIdx - fingerprintLen
	for i := start; i < jmpIdx; i++ {
		instrs[i].Tag = TagSkip
		instrs[i].OwnerLoop = instrs[jmpIdx].Pos
	}
	instrs[jmpIdx].Tag = TagRepeatWithIn
	// Post-sequence and tail helpers immediately preceding EndRepeat are
	// also consumed by the lifter as part of the loop close, not emitted.
	for i := endRepeatIdx - 1; i >= 0 && i > jmpIdx; i-- {
		op := instrs[i].Op
		if op == OpPeek || op == OpPushArgList || op == OpExtCall ||
			op == OpPushInt || op == OpAdd || op == OpPop ||
			op == OpSetGlobal || op == OpSetGlobal2 || op == OpSetProp ||
			op == OpSetParam || op == OpSetLocal {
			instrs[i].Tag = TagSkip
			instrs[i].OwnerLoop = instrs[jmpIdx].Pos
			continue
		}
		break
	}
}

// isRepeatWithToOrDownTo requires the JmpIfZ condition to be a comparison
// (LtEq for ascending, GtEq for descending) and an increment/decrement
// pattern immediately before EndRepeat, per spec.md §4.6.
func isRepeatWithToOrDownTo(instrs []Instruction, jmpIdx, endRepeatIdx int) bool {
	if jmpIdx == 0 {
		return false
	}
	cond := instrs[jmpIdx-1].Op
	if cond != OpLtEq && cond != OpGtEq {
		return false
	}
	if endRepeatIdx < 3 {
		return false
	}
	incr := instrs[endRepeatIdx-1]
	step := instrs[endRepeatIdx-3]
	getv := instrs[endRepeatIdx-2]
	isSet := incr.Op == OpSetGlobal || incr.Op == OpSetGlobal2 ||
		incr.Op == OpSetProp || incr.Op == OpSetParam || incr.Op == OpSetLocal
	isGet := getv.Op == OpGetGlobal || getv.Op == OpGetGlobal2 ||
		getv.Op == OpGetProp || getv.Op == OpGetParam || getv.Op == OpGetLocal
	isStep := step.Op == OpPushInt && (step.Obj == 1 || step.Obj == -1)
	return isSet && isGet && isStep
}

func tagRepeatWithTo(instrs []Instruction, jmpIdx, endRepeatIdx int) {
	cond := instrs[jmpIdx-1].Op
	if cond == OpGtEq {
		instrs[jmpIdx].Tag = TagRepeatWithDownTo
	} else {
		instrs[jmpIdx].Tag = TagRepeatWithTo
	}
	for i := endRepeatIdx - 3; i < endRepeatIdx; i++ {
		instrs[i].Tag = TagSkip
		instrs[i].OwnerLoop = instrs[jmpIdx].Pos
	}
}
