package lingo

import (
	"fmt"
)

// NameTable resolves a name id to its text, satisfied by
// internal/chunks.Names without lingo importing that package — the
// facade wires the concrete table in (spec.md's NameContext component).
type NameTable interface {
	Get(id int) (string, bool)
}

// Lifter lifts a Script's handlers into ASTs (spec.md §4.6).
type Lifter struct {
	script   *Script
	names    NameTable
	Warnings []error
}

func NewLifter(script *Script, names NameTable) *Lifter {
	return &Lifter{script: script, names: names}
}

func (l *Lifter) resolveName(id int32) string {
	name, ok := l.names.Get(int(id))
	if !ok {
		l.Warnings = append(l.Warnings, fmt.Errorf("lingo: %s", name))
	}
	return name
}

// LiftScript lifts every handler in the script (and, for a factory
// script, groups them under a FactoryAST per spec.md §4.6's writer
// rule).
func (l *Lifter) LiftScript() (*ScriptAST, error) {
	sast := &ScriptAST{}
	for _, id := range l.script.GlobalNameIDs {
		sast.Globals = append(sast.Globals, l.resolveName(int32(id)))
	}

	handlers := make([]HandlerAST, 0, len(l.script.Handlers))
	for i := range l.script.Handlers {
		h := &l.script.Handlers[i]
		hast, err := l.LiftHandler(h)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, *hast)
	}

	if l.script.IsFactory() {
		fast := &FactoryAST{Name: l.resolveName(int32(l.script.FactoryNameID))}
		for _, id := range l.script.PropertyNameIDs {
			fast.Properties = append(fast.Properties, l.resolveName(int32(id)))
		}
		for i := range handlers {
			handlers[i].IsFactoryMethod = true
		}
		fast.Methods = handlers
		sast.Factory = fast
	} else {
		sast.Handlers = handlers
	}
	return sast, nil
}

// LiftHandler decodes and lifts a single handler's bytecode.
func (l *Lifter) LiftHandler(h *Handler) (*HandlerAST, error) {
	instrs, posIndex, err := DecodeBytecode(h.Bytecode)
	if err != nil {
		return nil, err
	}
	TagLoops(instrs, posIndex)

	st := &liftState{
		l:        l,
		instrs:   instrs,
		posIndex: posIndex,
		handler:  h,
	}
	body := st.run()

	hast := &HandlerAST{
		Name: l.resolveName(int32(h.NameID)),
		Body: body,
	}
	for _, id := range h.ArgumentNameIDs {
		hast.Arguments = append(hast.Arguments, l.resolveName(int32(id)))
	}
	return hast, nil
}

// frameKind discriminates the open-block stack used while lifting.
type frameKind int

const (
	frameIfThen frameKind = iota
	frameIfElse
	frameRepeatWhile
	frameRepeatWithIn
	frameRepeatWithTo
	frameTell
	frameCase
	frameCaseLabel
	frameCaseOtherwise
)

type frame struct {
	kind   frameKind
	endPos int // -1 means "closes on an explicit signal, not a position"

	ifStmt     *IfStmt
	repeatStmt *RepeatWhileStmt
	repeatIn   *RepeatWithInStmt
	repeatTo   *RepeatWithToStmt
	tellStmt   *TellStmt
	caseStmt   *CaseStmt
	label      *CaseLabel
}

func (f *frame) block() *Block {
	switch f.kind {
	case frameIfThen:
		return &f.ifStmt.Then
	case frameIfElse:
		return &f.ifStmt.Else
	case frameRepeatWhile:
		return &f.repeatStmt.Body
	case frameRepeatWithIn:
		return &f.repeatIn.Body
	case frameRepeatWithTo:
		return &f.repeatTo.Body
	case frameTell:
		return &f.tellStmt.Body
	case frameCaseLabel:
		return &f.label.Body
	case frameCaseOtherwise:
		return &f.caseStmt.Otherwise
	default:
		return nil
	}
}

// liftState is the mutable working set for lifting one handler.
type liftState struct {
	l        *Lifter
	instrs   []Instruction
	posIndex map[int]int
	handler  *Handler

	stack  []Expr
	frames []*frame
	root   Block
}

func (s *liftState) push(e Expr) { s.stack = append(s.stack, e) }

func (s *liftState) pop() Expr {
	if len(s.stack) == 0 {
		return CommentExpr{Text: "<stack underflow>"}
	}
	e := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return e
}

func (s *liftState) popN(n int) []Expr {
	out := make([]Expr, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = s.pop()
	}
	return out
}

func (s *liftState) currentBlock() *Block {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b := s.frames[i].block(); b != nil {
			return b
		}
	}
	return &s.root
}

func (s *liftState) emit(stmt Stmt) {
	b := s.currentBlock()
	b.Stmts = append(b.Stmts, stmt)
}

func (s *liftState) topFrame() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *liftState) pushFrame(f *frame) { s.frames = append(s.frames, f) }

func (s *liftState) popFrame() *frame {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

// run executes the single forward lifting pass described in spec.md
// §4.6 and returns the handler's root block.
func (s *liftState) run() Block {
	for idx := 0; idx < len(s.instrs); idx++ {
		in := s.instrs[idx]

		s.closeFramesAt(in.Pos)

		if in.Tag == TagSkip {
			s.handleSkip(in)
			continue
		}
		if in.Tag == TagNextRepeatTarget {
			continue
		}

		s.translate(in, idx)
	}
	s.closeFramesAt(-1) // flush any still-open frames at end of handler
	return s.root
}

// closeFramesAt pops every open frame whose endPos equals pos,
// innermost first, per spec.md §4.6 rule 1. pos == -1 closes everything
// remaining (end of handler).
func (s *liftState) closeFramesAt(pos int) {
	for {
		f := s.topFrame()
		if f == nil {
			return
		}
		if pos != -1 && f.endPos != pos {
			return
		}
		s.popFrame()
	}
}

// handleSkip extracts metadata from loop-tagger helper instructions
// (spec.md §4.6: RepeatWithIn/To variable names) without otherwise
// affecting the expression stack.
func (s *liftState) handleSkip(in Instruction) {
	var target *frame
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if (f.kind == frameRepeatWithIn && f.repeatIn.Var == "") ||
			(f.kind == frameRepeatWithTo && f.repeatTo.Var == "") {
			target = f
			break
		}
	}
	if target == nil {
		return
	}
	if name, ok := s.setVarName(in); ok {
		switch target.kind {
		case frameRepeatWithIn:
			target.repeatIn.Var = name
		case frameRepeatWithTo:
			target.repeatTo.Var = name
		}
	}
}

func (s *liftState) setVarName(in Instruction) (string, bool) {
	switch in.Op {
	case OpSetGlobal, OpSetGlobal2:
		return s.l.resolveName(in.Obj), true
	case OpSetProp:
		return s.l.resolveName(in.Obj), true
	case OpSetParam:
		return s.varSlotName(s.handler.ArgumentNameIDs, in.Obj), true
	case OpSetLocal:
		return s.varSlotName(s.handler.LocalNameIDs, in.Obj), true
	}
	return "", false
}

func (s *liftState) varSlotName(table []int16, obj int32) string {
	idx := int(obj / s.l.script.variableMultiplier())
	if idx < 0 || idx >= len(table) {
		return fmt.Sprintf("var%d", idx)
	}
	return s.l.resolveName(int32(table[idx]))
}
