package lingo

import (
	"fmt"
	"strconv"
	"strings"
)

// Writer pretty-prints a lifted AST back to Lingo source text (spec.md
// §4.6). Dot selects dot-syntax (obj.prop, member(a,b)) over verbose
// syntax (the prop of obj, member a of castLib b); Summary selects
// escaped-string rendering suitable for a one-line summary view.
type Writer struct {
	Dot     bool
	Summary bool
}

// WriteScript renders every handler (or factory method) in sast.
func (w *Writer) WriteScript(sast *ScriptAST) string {
	var b strings.Builder
	if len(sast.Globals) > 0 {
		b.WriteString("global " + strings.Join(sast.Globals, ", ") + "\n\n")
	}
	if sast.Factory != nil {
		b.WriteString("factory " + sast.Factory.Name + "\n\n")
		for i := range sast.Factory.Methods {
			w.writeHandler(&b, &sast.Factory.Methods[i], sast.Factory.Properties, i == 0)
			if i != len(sast.Factory.Methods)-1 {
				b.WriteString("\n")
			}
		}
		return b.String()
	}
	for i := range sast.Handlers {
		w.writeHandler(&b, &sast.Handlers[i], nil, false)
		if i != len(sast.Handlers)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (w *Writer) writeHandler(b *strings.Builder, h *HandlerAST, properties []string, isFirstFactoryMethod bool) {
	keyword := "on"
	if h.IsFactoryMethod {
		keyword = "method"
	}
	b.WriteString(keyword + " " + h.Name)
	if len(h.Arguments) > 0 {
		b.WriteString(" " + strings.Join(h.Arguments, ", "))
	}
	b.WriteString("\n")
	if isFirstFactoryMethod && len(properties) > 0 {
		writeIndent(b, 1)
		b.WriteString("instance " + strings.Join(properties, ", ") + "\n")
	}
	w.writeBlock(b, &h.Body, 1)
	b.WriteString("end\n")
}

func writeIndent(b *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		b.WriteString("  ")
	}
}

func (w *Writer) writeBlock(b *strings.Builder, blk *Block, indent int) {
	for _, stmt := range blk.Stmts {
		w.writeStmt(b, stmt, indent)
	}
}

func (w *Writer) writeStmt(b *strings.Builder, stmt Stmt, indent int) {
	writeIndent(b, indent)
	switch st := stmt.(type) {
	case ExprStmt:
		b.WriteString(w.expr(st.X))
		b.WriteString("\n")
	case AssignStmt:
		b.WriteString(w.expr(st.Var) + " = " + w.expr(st.Value) + "\n")
	case PutStmt:
		b.WriteString("put " + w.expr(st.Value) + " " + putWhereWord(st.Where) + " " + w.expr(st.Var) + "\n")
	case DeleteStmt:
		b.WriteString("delete " + w.expr(st.Target) + "\n")
	case HiliteStmt:
		b.WriteString("hilite " + w.expr(st.Target) + "\n")
	case ReturnStmt:
		if st.Value == nil {
			b.WriteString("return\n")
		} else {
			b.WriteString("return " + w.expr(st.Value) + "\n")
		}
	case CommentStmt:
		b.WriteString("-- " + st.Text + "\n")
	case *IfStmt:
		b.WriteString("if " + w.expr(st.Cond) + " then\n")
		w.writeBlock(b, &st.Then, indent+1)
		if st.HasElse {
			writeIndent(b, indent)
			b.WriteString("else\n")
			w.writeBlock(b, &st.Else, indent+1)
		}
		writeIndent(b, indent)
		b.WriteString("end if\n")
	case *RepeatWhileStmt:
		b.WriteString("repeat while " + w.expr(st.Cond) + "\n")
		w.writeBlock(b, &st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end repeat\n")
	case *RepeatWithInStmt:
		b.WriteString("repeat with " + st.Var + " in " + w.expr(st.List) + "\n")
		w.writeBlock(b, &st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end repeat\n")
	case *RepeatWithToStmt:
		dir := "to"
		if st.Down {
			dir = "down to"
		}
		b.WriteString("repeat with " + st.Var + " = " + w.expr(st.Start) + " " + dir + " " + w.expr(st.End) + "\n")
		w.writeBlock(b, &st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end repeat\n")
	case *TellStmt:
		b.WriteString("tell " + w.expr(st.Target) + "\n")
		w.writeBlock(b, &st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end tell\n")
	case *CaseStmt:
		w.writeCase(b, st, indent)
	default:
		b.WriteString("-- <unknown statement>\n")
	}
}

func putWhereWord(where PutWhere) string {
	switch where {
	case PutAfter:
		return "after"
	case PutBefore:
		return "before"
	default:
		return "into"
	}
}

func (w *Writer) writeCase(b *strings.Builder, st *CaseStmt, indent int) {
	b.WriteString("case " + w.expr(st.Value) + " of\n")
	var pending []string
	for _, label := range st.Labels {
		pending = append(pending, w.expr(label.Value))
		if label.Expect == CaseOr {
			continue
		}
		writeIndent(b, indent+1)
		b.WriteString(strings.Join(pending, ", ") + ":\n")
		w.writeBlock(b, &label.Body, indent+2)
		pending = nil
	}
	if st.HasOtherwise {
		writeIndent(b, indent+1)
		b.WriteString("otherwise:\n")
		w.writeBlock(b, &st.Otherwise, indent+2)
	}
	writeIndent(b, indent)
	b.WriteString("end case\n")
}

// opPrecedence implements spec.md §4.6's precedence groups: lower value
// binds tighter.
func opPrecedence(op Op) int {
	switch op {
	case OpMul, OpDiv, OpMod:
		return 1
	case OpAdd, OpSub, OpJoinStr, OpJoinPadStr:
		return 2
	case OpLt, OpLtEq, OpNtEq, OpEq, OpGt, OpGtEq, OpContainsStr, OpContains0Str:
		return 3
	case OpAnd:
		return 4
	case OpOr:
		return 5
	default:
		return 0
	}
}

var binOpSymbol = map[Op]string{
	OpMul: "*", OpAdd: "+", OpSub: "-", OpDiv: "/", OpMod: "mod",
	OpLt: "<", OpLtEq: "<=", OpNtEq: "<>", OpEq: "=", OpGt: ">", OpGtEq: ">=",
	OpAnd: "and", OpOr: "or", OpJoinStr: "&", OpJoinPadStr: "&&",
	OpContainsStr: "contains", OpContains0Str: "starts",
}

func (w *Writer) expr(e Expr) string {
	switch x := e.(type) {
	case LiteralExpr:
		return w.datum(x.Value)
	case VarRefExpr:
		return x.Name
	case BinaryOpExpr:
		return w.binaryOp(x)
	case UnaryOpExpr:
		if x.Op == OpNot {
			return "not " + w.expr(x.Operand)
		}
		return "-" + w.expr(x.Operand)
	case ChunkExpr:
		return x.ChunkType + " " + w.expr(x.First) + " to " + w.expr(x.Last) + " of " + w.expr(x.Target)
	case ListExpr:
		return w.list(x)
	case ArgListExpr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = w.expr(a)
		}
		return strings.Join(parts, ", ")
	case MemberExpr:
		return w.member(x)
	case ObjPropExpr:
		return w.objProp(x)
	case ObjCallExpr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = w.expr(a)
		}
		return w.expr(x.Obj) + "." + x.Method + "(" + strings.Join(parts, ", ") + ")"
	case NewObjExpr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = w.expr(a)
		}
		return "new " + x.TypeName + "(" + strings.Join(parts, ", ") + ")"
	case TheBuiltinExpr:
		return "the " + x.Name
	case TheEntityExpr:
		if x.Target == nil {
			return "the " + x.Prop
		}
		if w.Dot {
			return w.expr(x.Target) + "." + x.Prop
		}
		return "the " + x.Prop + " of " + w.expr(x.Target)
	case CallExpr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = w.expr(a)
		}
		return x.Name + "(" + strings.Join(parts, ", ") + ")"
	case CommentExpr:
		return "<" + x.Text + ">"
	default:
		return "<?>"
	}
}

func (w *Writer) binaryOp(x BinaryOpExpr) string {
	sym, ok := binOpSymbol[x.Op]
	if !ok {
		sym = x.Op.Name()
	}
	left := w.expr(x.Left)
	if lb, ok := x.Left.(BinaryOpExpr); ok && opPrecedence(lb.Op) != opPrecedence(x.Op) {
		left = "(" + left + ")"
	}
	right := w.expr(x.Right)
	if _, ok := x.Right.(BinaryOpExpr); ok {
		right = "(" + right + ")"
	}
	return left + " " + sym + " " + right
}

func (w *Writer) list(x ListExpr) string {
	if x.IsProp {
		var parts []string
		for i := 0; i+1 < len(x.Items); i += 2 {
			parts = append(parts, w.expr(x.Items[i])+": "+w.expr(x.Items[i+1]))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	parts := make([]string, len(x.Items))
	for i, it := range x.Items {
		parts[i] = w.expr(it)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (w *Writer) member(x MemberExpr) string {
	if x.CastLib == nil {
		if w.Dot {
			return "member(" + w.expr(x.MemberExpr) + ")"
		}
		return "member " + w.expr(x.MemberExpr)
	}
	if w.Dot {
		return "member(" + w.expr(x.MemberExpr) + ", " + w.expr(x.CastLib) + ")"
	}
	return "member " + w.expr(x.MemberExpr) + " of castLib " + w.expr(x.CastLib)
}

func (w *Writer) objProp(x ObjPropExpr) string {
	if x.Prop == "" && x.Index != nil {
		return w.expr(x.Obj) + "[" + w.expr(x.Index) + "]"
	}
	idx := ""
	if x.Index != nil {
		if x.Index2 != nil {
			idx = "[" + w.expr(x.Index) + ", " + w.expr(x.Index2) + "]"
		} else {
			idx = "[" + w.expr(x.Index) + "]"
		}
	}
	if w.Dot {
		return w.expr(x.Obj) + "." + x.Prop + idx
	}
	if idx != "" {
		return "the " + x.Prop + idx + " of " + w.expr(x.Obj)
	}
	return "the " + x.Prop + " of " + w.expr(x.Obj)
}

func (w *Writer) datum(d Datum) string {
	switch d.Kind {
	case DatumVoid:
		return "VOID"
	case DatumSymbol:
		return "#" + d.Str
	case DatumVarRef:
		return d.Str
	case DatumString:
		return quoteLingoString(d.Str, w.Summary)
	case DatumInt:
		return strconv.FormatInt(int64(d.Int), 10)
	case DatumFloat:
		return formatLingoFloat(d.Float)
	default:
		parts := make([]string, len(d.List))
		for i, it := range d.List {
			parts[i] = w.datum(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

// quoteLingoString implements spec.md §4.6's string-quoting rules.
func quoteLingoString(str string, summary bool) string {
	if str == "" {
		return "EMPTY"
	}
	if len(str) == 1 {
		switch str[0] {
		case 0x03:
			return "ENTER"
		case 0x08:
			return "BACKSPACE"
		case 0x09:
			return "TAB"
		case 0x0D:
			return "RETURN"
		case 0x22:
			return "QUOTE"
		}
	}
	if !summary {
		return "\"" + str + "\""
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c > 0x7F {
				fmt.Fprintf(&b, `\x%02X`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatLingoFloat implements spec.md §4.6's float rule: shortest
// unambiguous decimal, never an exponent for values that fit, trailing
// zeros stripped but at least one digit after the dot.
func formatLingoFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
