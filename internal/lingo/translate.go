package lingo

import (
	"fmt"
	"math"
)

// translate implements the per-opcode translation rules of spec.md §4.6.
// idx is the instruction's index in s.instrs (used for lookback when
// recognizing a case-label test).
func (s *liftState) translate(in Instruction, idx int) {
	switch in.Op {
	case OpPushZero:
		s.push(LiteralExpr{Value: IntDatum(0)})
	case OpPushInt:
		s.push(LiteralExpr{Value: IntDatum(in.Obj)})
	case OpPushFloat32:
		f := float64(math.Float32frombits(uint32(in.Obj)))
		s.push(LiteralExpr{Value: FloatDatum(f)})
	case OpPushCons:
		idx := int(in.Obj / s.l.script.variableMultiplier())
		if idx >= 0 && idx < len(s.l.script.Literals) {
			s.push(LiteralExpr{Value: s.l.script.Literals[idx]})
		} else {
			s.push(CommentExpr{Text: "<literal out of range>"})
		}
	case OpPushSymb:
		s.push(LiteralExpr{Value: SymbolDatum(s.l.resolveName(in.Obj))})
	case OpPushVarRef:
		s.push(VarRefExpr{Kind: VarGlobal, Name: s.l.resolveName(in.Obj)})
	case OpPushChunkVarRef:
		s.push(s.pop()) // chunk ref form collapses to its underlying var for our AST

	case OpGetGlobal, OpGetGlobal2:
		s.push(VarRefExpr{Kind: VarGlobal, Name: s.l.resolveName(in.Obj)})
	case OpGetProp, OpGetTopLevelProp:
		s.push(VarRefExpr{Kind: VarProperty, Name: s.l.resolveName(in.Obj)})
	case OpGetParam:
		s.push(VarRefExpr{Kind: VarArgument, Name: s.varSlotName(s.handler.ArgumentNameIDs, in.Obj)})
	case OpGetLocal:
		s.push(VarRefExpr{Kind: VarLocal, Name: s.varSlotName(s.handler.LocalNameIDs, in.Obj)})

	case OpSetGlobal, OpSetGlobal2:
		v := s.pop()
		s.emit(AssignStmt{Var: VarRefExpr{Kind: VarGlobal, Name: s.l.resolveName(in.Obj)}, Value: v})
	case OpSetProp:
		v := s.pop()
		s.emit(AssignStmt{Var: VarRefExpr{Kind: VarProperty, Name: s.l.resolveName(in.Obj)}, Value: v})
	case OpSetParam:
		v := s.pop()
		s.emit(AssignStmt{Var: VarRefExpr{Kind: VarArgument, Name: s.varSlotName(s.handler.ArgumentNameIDs, in.Obj)}, Value: v})
	case OpSetLocal:
		v := s.pop()
		s.emit(AssignStmt{Var: VarRefExpr{Kind: VarLocal, Name: s.varSlotName(s.handler.LocalNameIDs, in.Obj)}, Value: v})

	case OpMul, OpAdd, OpSub, OpDiv, OpMod, OpLt, OpLtEq, OpNtEq, OpEq, OpGt, OpGtEq, OpAnd, OpOr,
		OpJoinStr, OpJoinPadStr, OpContainsStr, OpContains0Str:
		b := s.pop()
		a := s.pop()
		s.push(BinaryOpExpr{Op: in.Op, Left: a, Right: b})

	case OpInv:
		s.push(UnaryOpExpr{Op: OpInv, Operand: s.pop()})
	case OpNot:
		s.push(UnaryOpExpr{Op: OpNot, Operand: s.pop()})

	case OpGetChunk:
		s.push(s.popChunkExpr())
	case OpHiliteChunk:
		s.emit(HiliteStmt{Target: s.popChunkExpr()})

	case OpOntoSpr, OpIntoSpr:
		target := s.pop()
		value := s.pop()
		s.push(CallExpr{Name: in.Op.Name(), Args: []Expr{value, target}})

	case OpStartTell:
		target := s.pop()
		ts := &TellStmt{Target: target}
		s.emit(ts)
		s.pushFrame(&frame{kind: frameTell, endPos: -1, tellStmt: ts})
	case OpEndTell:
		if f := s.topFrame(); f != nil && f.kind == frameTell {
			s.popFrame()
		}

	case OpPushList:
		s.push(s.argsToList(s.pop(), false))
	case OpPushPropList:
		s.push(s.argsToList(s.pop(), true))

	case OpSwap:
		if len(s.stack) >= 2 {
			n := len(s.stack)
			s.stack[n-1], s.stack[n-2] = s.stack[n-2], s.stack[n-1]
		}

	case OpPushArgList, OpPushArgListNoRet:
		args := s.popN(int(in.Obj))
		s.push(ArgListExpr{Args: args, NoRet: in.Op == OpPushArgListNoRet})

	case OpJmp:
		s.handleJmp(in, idx)
	case OpEndRepeat:
		// untagged EndRepeat (malformed/unrecognized loop shape): no-op.
	case OpJmpIfZ:
		s.handleJmpIfZ(in, idx)

	case OpLocalCall:
		args := s.argsOf(s.pop())
		name := s.localHandlerName(in.Obj)
		s.push(CallExpr{Name: name, Args: args})
	case OpExtCall:
		al, ok := s.pop().(ArgListExpr)
		name := s.l.resolveName(in.Obj)
		call := CallExpr{Name: name, Args: al.Args}
		if ok && al.NoRet {
			s.emit(ExprStmt{X: call})
		} else {
			s.push(call)
		}
	case OpObjCallV4:
		s.liftObjCall(in, idx)
	case OpObjCall:
		s.liftObjCall(in, idx)

	case OpPut:
		s.liftPut(in)
	case OpPutChunk:
		s.liftPutChunk(in)
	case OpDeleteChunk:
		s.emit(DeleteStmt{Target: s.popChunkExpr()})

	case OpNewObj:
		al, _ := s.pop().(ArgListExpr)
		s.push(NewObjExpr{TypeName: s.l.resolveName(in.Obj), Args: al.Args})

	case OpGetChainedProp:
		obj := s.pop()
		s.push(ObjPropExpr{Obj: obj, Prop: s.l.resolveName(in.Obj)})
	case OpGetObjProp:
		obj := s.pop()
		s.push(ObjPropExpr{Obj: obj, Prop: s.l.resolveName(in.Obj)})
	case OpSetObjProp:
		v := s.pop()
		obj := s.pop()
		s.emit(AssignStmt{Var: ObjPropExpr{Obj: obj, Prop: s.l.resolveName(in.Obj)}, Value: v})

	case OpTellCall:
		al, _ := s.pop().(ArgListExpr)
		target := s.pop()
		s.emit(ExprStmt{X: CallExpr{Name: "tell", Args: append([]Expr{target}, al.Args...)}})

	case OpPeek:
		n := int(in.Obj)
		if n >= 0 && n < len(s.stack) {
			s.push(s.stack[len(s.stack)-1-n])
		} else {
			s.push(CommentExpr{Text: "<peek out of range>"})
		}

	case OpPop:
		s.liftPop(in, idx)

	case OpTheBuiltin:
		s.pop() // empty arg list
		s.push(TheBuiltinExpr{Name: s.l.resolveName(in.Obj)})

	case OpGetMovieProp:
		s.push(TheEntityExpr{Prop: s.l.resolveName(in.Obj)})
	case OpSetMovieProp:
		v := s.pop()
		s.emit(AssignStmt{Var: TheEntityExpr{Prop: s.l.resolveName(in.Obj)}, Value: v})

	case OpGet:
		propID := s.pop()
		s.push(s.readV4Property(in.Obj, propID))
	case OpSet:
		v := s.pop()
		propID := s.pop()
		s.emit(AssignStmt{Var: s.readV4Property(in.Obj, propID), Value: v})

	case OpRet, OpRetFactory:
		if len(s.stack) > 0 {
			s.emit(ReturnStmt{Value: s.pop()})
		} else {
			s.emit(ReturnStmt{})
		}

	default:
		s.stack = s.stack[:0]
		s.emit(CommentStmt{Text: fmt.Sprintf("%s %d", in.Op.Name(), in.Obj)})
	}
}

// popChunkExpr implements GetChunk/HiliteChunk/DeleteChunk/PutChunk's
// shared "pop eight bounds, wrap target in nested chunk layers, skipping
// any layer whose first bound is the literal 0" rule (spec.md §4.6).
func (s *liftState) popChunkExpr() Expr {
	lastLine := s.pop()
	firstLine := s.pop()
	lastItem := s.pop()
	firstItem := s.pop()
	lastWord := s.pop()
	firstWord := s.pop()
	lastChar := s.pop()
	firstChar := s.pop()
	target := s.pop()

	cur := target
	cur = wrapChunk(cur, "char", firstChar, lastChar)
	cur = wrapChunk(cur, "word", firstWord, lastWord)
	cur = wrapChunk(cur, "item", firstItem, lastItem)
	cur = wrapChunk(cur, "line", firstLine, lastLine)
	return cur
}

func wrapChunk(target Expr, kind string, first, last Expr) Expr {
	if lit, ok := first.(LiteralExpr); ok && lit.Value.IsZeroInt() {
		return target
	}
	return ChunkExpr{ChunkType: kind, First: first, Last: last, Target: target}
}

func (s *liftState) argsOf(e Expr) []Expr {
	if al, ok := e.(ArgListExpr); ok {
		return al.Args
	}
	return []Expr{e}
}

func (s *liftState) argsToList(e Expr, isProp bool) ListExpr {
	al, ok := e.(ArgListExpr)
	if !ok {
		return ListExpr{Items: []Expr{e}, IsProp: isProp}
	}
	return ListExpr{Items: al.Args, IsProp: isProp}
}

func (s *liftState) localHandlerName(obj int32) string {
	handlers := s.l.script.Handlers
	if int(obj) >= 0 && int(obj) < len(handlers) {
		return s.l.resolveName(int32(handlers[obj].NameID))
	}
	return "handler"
}

// handleJmp implements the unconditional-jump rules of spec.md §4.6: it
// opens an If's else branch, opens a Case's otherwise branch, or (inside
// an already-open case label body) is silently absorbed as the label's
// implicit break.
func (s *liftState) handleJmp(in Instruction, idx int) {
	target := in.Pos + int(in.Obj)

	if f := s.topFrame(); f != nil && f.kind == frameCaseLabel {
		// A label body's terminal jump to the case's true end; absorbed.
		_ = target
		return
	}

	if f := s.topFrame(); f != nil && f.kind == frameIfThen && target > in.Pos {
		f.kind = frameIfElse
		f.endPos = target
		f.ifStmt.HasElse = true
		return
	}

	if f := s.topFrame(); f != nil && f.kind == frameCase {
		// Falling out of the last label straight to otherwise/end.
		ti, ok := s.posIndex[target]
		if ok && ti+1 < len(s.instrs) && s.instrs[ti].Op == OpPop && s.instrs[ti].Obj == 1 {
			// target is the case-end Pop; nothing to open, absorbed.
			return
		}
		f.kind = frameCaseOtherwise
		f.caseStmt.HasOtherwise = true
		return
	}
}

// liftPop implements spec.md §4.6's Pop rules: discard-as-statement for
// ordinary procedure-call results, case-end detection, and the
// stack-size-1 Case(value) synthesis fallback.
func (s *liftState) liftPop(in Instruction, idx int) {
	if f := s.topFrame(); f != nil && f.kind == frameCase && in.Obj == 1 {
		s.popFrame()
		s.pop() // the switch value, peeked but never consumed by the label tests
		return
	}
	if in.Obj == 1 && len(s.stack) == 1 {
		if f := s.topFrame(); f == nil || (f.kind != frameCaseLabel && f.kind != frameCaseOtherwise) {
			s.emit(&CaseStmt{Value: s.pop()})
			return
		}
	}
	for i := int32(0); i < in.Obj; i++ {
		if len(s.stack) == 0 {
			break
		}
		v := s.pop()
		s.emit(ExprStmt{X: v})
	}
}

func (s *liftState) caseFrameBelow() *frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == frameCase {
			return s.frames[i]
		}
	}
	return nil
}

// handleJmpIfZ dispatches on the loop tag assigned by TagLoops, or (when
// untagged) recognizes a case-label test / opens a plain If.
func (s *liftState) handleJmpIfZ(in Instruction, idx int) {
	target := in.Pos + int(in.Obj)

	switch in.Tag {
	case TagRepeatWhile:
		cond := s.pop()
		rs := &RepeatWhileStmt{Cond: cond}
		s.emit(rs)
		s.pushFrame(&frame{kind: frameRepeatWhile, endPos: target, repeatStmt: rs})
		return
	case TagRepeatWithIn:
		list := s.pop()
		rs := &RepeatWithInStmt{List: list}
		s.emit(rs)
		s.pushFrame(&frame{kind: frameRepeatWithIn, endPos: target, repeatIn: rs})
		return
	case TagRepeatWithTo, TagRepeatWithDownTo:
		cond, _ := s.pop().(BinaryOpExpr)
		end := cond.Right
		start := s.lastAssignedValue(exprVarName(cond.Left))
		rs := &RepeatWithToStmt{Start: start, End: end, Down: in.Tag == TagRepeatWithDownTo}
		s.emit(rs)
		s.pushFrame(&frame{kind: frameRepeatWithTo, endPos: target, repeatTo: rs})
		return
	}

	if isCaseLabelTest(s.instrs, idx) {
		s.openOrExtendCase(in, idx, target)
		return
	}

	cond := s.pop()
	ifs := &IfStmt{Cond: cond}
	s.emit(ifs)
	s.pushFrame(&frame{kind: frameIfThen, endPos: target, ifStmt: ifs})
}

// isCaseLabelTest recognizes "Peek n, <literal>, Eq|NtEq, JmpIfZ" — the
// case-label fingerprint of spec.md §4.6, detected by looking back from
// the JmpIfZ at idx for an Eq/NtEq immediately preceded (ignoring one
// intervening literal push) by a Peek.
func isCaseLabelTest(instrs []Instruction, idx int) bool {
	if idx < 1 {
		return false
	}
	cmp := instrs[idx-1]
	if cmp.Op != OpEq && cmp.Op != OpNtEq {
		return false
	}
	for back := idx - 2; back >= 0 && back >= idx-3; back-- {
		if instrs[back].Op == OpPeek {
			return true
		}
	}
	return false
}

func (s *liftState) openOrExtendCase(in Instruction, idx int, target int) {
	bin, _ := s.pop().(BinaryOpExpr)
	labelValue := bin.Right
	switchValue := bin.Left

	expect := CaseNext
	if s.instrs[idx-1].Op == OpNtEq {
		expect = CaseOr
	}
	if ti, ok := s.posIndex[target]; ok && ti < len(s.instrs) {
		if s.instrs[ti].Op == OpPop && s.instrs[ti].Obj == 1 {
			expect = CaseEnd
		}
	}

	var cf *frame
	if f := s.topFrame(); f != nil && f.kind == frameCase {
		cf = f
	} else if f := s.topFrame(); f != nil && f.kind == frameCaseLabel {
		cf = s.caseFrameBelow()
	}

	if cf == nil {
		cs := &CaseStmt{Value: switchValue}
		s.emit(cs)
		cf = &frame{kind: frameCase, endPos: -1, caseStmt: cs}
		s.pushFrame(cf)
	} else if s.topFrame() != cf {
		s.popFrame() // close the previous label
	}

	label := &CaseLabel{Value: labelValue, Expect: expect}
	cf.caseStmt.Labels = append(cf.caseStmt.Labels, label)
	lf := &frame{kind: frameCaseLabel, endPos: target, label: label}
	s.pushFrame(lf)
}

// lastAssignedValue scans the innermost open block backward for the most
// recent assignment to name, folding it into a for-loop header as the
// "start" expression (spec.md §4.6) and removing it from the block since
// it's no longer a standalone statement.
func (s *liftState) lastAssignedValue(name string) Expr {
	if name == "" {
		return CommentExpr{Text: "<unknown start>"}
	}
	b := s.currentBlock()
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		as, ok := b.Stmts[i].(AssignStmt)
		if !ok {
			continue
		}
		if exprVarName(as.Var) == name {
			b.Stmts = append(b.Stmts[:i], b.Stmts[i+1:]...)
			return as.Value
		}
	}
	return CommentExpr{Text: "<unknown start>"}
}

func exprVarName(e Expr) string {
	if v, ok := e.(VarRefExpr); ok {
		return v.Name
	}
	return ""
}

// chunkKindByID maps the readV4Property id space's chunk-kind slot (1-4)
// to its Lingo chunk-type keyword, matching the four chunk kinds
// GetChunk/popChunkExpr already know about.
var chunkKindByID = map[int32]string{1: "char", 2: "word", 3: "item", 4: "line"}

// readV4Property dispatches a Get/Set's {propertyType category, stack-
// popped propertyID} pair to its "the ..." property name, per spec.md
// §4.6's readV4Property table across categories 0-21. ProjectorRays' C++
// table this was distilled from was filtered out of the retrieval
// pack's original_source/ by its size cap (_INDEX.md lists zero files
// kept for this spec), so only the three behavioral forms spec.md names
// explicitly get real names here; any other category/id pair renders as
// a literal category/id placeholder instead of a guessed one.
func (s *liftState) readV4Property(category int32, propID Expr) Expr {
	lit, isLit := propID.(LiteralExpr)

	if category == 0 && isLit && lit.Value.Int >= 0x0b {
		// "the last <chunkType> in ..."
		if kind, ok := chunkKindByID[lit.Value.Int-10]; ok {
			return TheEntityExpr{Prop: "last " + kind}
		}
	}
	if category == 1 && isLit {
		// "the number of <chunkType>s in ..."
		if kind, ok := chunkKindByID[lit.Value.Int]; ok {
			return TheEntityExpr{Prop: "number of " + kind + "s"}
		}
	}
	if category == 8 && isLit && lit.Value.Int == 2 && s.l.script.humanVersion >= 500 {
		// D5+ castLib-qualified form.
		castLibNum := s.pop()
		return TheEntityExpr{Prop: fmt.Sprintf("number of members of castLib %s", exprText(castLibNum))}
	}

	return TheEntityExpr{Prop: fmt.Sprintf("property[%d,%s]", category, exprText(propID))}
}

func exprText(e Expr) string {
	if lit, ok := e.(LiteralExpr); ok {
		return lit.Value.String()
	}
	if v, ok := e.(VarRefExpr); ok {
		return v.Name
	}
	return "?"
}
