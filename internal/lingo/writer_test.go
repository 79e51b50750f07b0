package lingo

import (
	"strings"
	"testing"
)

func TestQuoteLingoStringSpecials(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "EMPTY"},
		{"\x03", "ENTER"},
		{"\x08", "BACKSPACE"},
		{"\x09", "TAB"},
		{"\x0D", "RETURN"},
		{"\x22", "QUOTE"},
		{"hi", `"hi"`},
	}
	for _, c := range cases {
		if got := quoteLingoString(c.in, false); got != c.want {
			t.Errorf("quoteLingoString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestQuoteLingoStringSummaryEscapes(t *testing.T) {
	got := quoteLingoString("a\"b\nc", true)
	want := `"a\"b\nc"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatLingoFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{5, "5.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
	}
	for _, c := range cases {
		if got := formatLingoFloat(c.in); got != c.want {
			t.Errorf("formatLingoFloat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWriteScriptSimpleHandler(t *testing.T) {
	sast := &ScriptAST{
		Handlers: []HandlerAST{
			{
				Name:      "foo",
				Arguments: []string{"a", "b"},
				Body: Block{Stmts: []Stmt{
					ReturnStmt{Value: BinaryOpExpr{
						Op:    OpAdd,
						Left:  VarRefExpr{Kind: VarArgument, Name: "a"},
						Right: VarRefExpr{Kind: VarArgument, Name: "b"},
					}},
				}},
			},
		},
	}
	w := &Writer{}
	got := w.WriteScript(sast)
	want := "on foo a, b\n  return a + b\nend\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteScriptFactoryHeader(t *testing.T) {
	sast := &ScriptAST{
		Factory: &FactoryAST{
			Name:       "point",
			Properties: []string{"x", "y"},
			Methods: []HandlerAST{
				{Name: "new", IsFactoryMethod: true, Body: Block{Stmts: []Stmt{ReturnStmt{}}}},
			},
		},
	}
	w := &Writer{}
	got := w.WriteScript(sast)
	if !strings.Contains(got, "instance x, y\n") {
		t.Fatalf("expected instance declaration, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "factory point\n\nmethod new\n") {
		t.Fatalf("unexpected header, got:\n%s", got)
	}
}

func TestWriteCaseStmt(t *testing.T) {
	cs := &CaseStmt{
		Value: VarRefExpr{Kind: VarLocal, Name: "x"},
		Labels: []*CaseLabel{
			{Value: LiteralExpr{Value: IntDatum(1)}, Expect: CaseOr,
				Body: Block{}},
			{Value: LiteralExpr{Value: IntDatum(2)}, Expect: CaseNext,
				Body: Block{Stmts: []Stmt{ReturnStmt{}}}},
		},
		HasOtherwise: true,
		Otherwise:    Block{Stmts: []Stmt{ReturnStmt{}}},
	}
	w := &Writer{}
	var b strings.Builder
	w.writeStmt(&b, cs, 0)
	got := b.String()
	if !strings.Contains(got, "1, 2:\n") {
		t.Fatalf("expected OR-chained label line, got:\n%s", got)
	}
	if !strings.Contains(got, "otherwise:\n") {
		t.Fatalf("expected otherwise clause, got:\n%s", got)
	}
}

func TestBinaryOpPrecedenceParenthesization(t *testing.T) {
	// (a + b) * c: the left child has lower precedence (Add) than the
	// parent (Mul), so it must be parenthesized; a bare Mul on the right
	// is always parenthesized per spec.md's rule.
	expr := BinaryOpExpr{
		Op: OpMul,
		Left: BinaryOpExpr{
			Op:    OpAdd,
			Left:  VarRefExpr{Name: "a"},
			Right: VarRefExpr{Name: "b"},
		},
		Right: VarRefExpr{Name: "c"},
	}
	w := &Writer{}
	got := w.expr(expr)
	want := "(a + b) * c"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMemberExprDotVsVerbose(t *testing.T) {
	m := MemberExpr{MemberExpr: LiteralExpr{Value: StringDatum("ball")}}
	dot := (&Writer{Dot: true}).expr(m)
	if dot != `member("ball")` {
		t.Fatalf("dot form = %q", dot)
	}
	verbose := (&Writer{Dot: false}).expr(m)
	if verbose != `member "ball"` {
		t.Fatalf("verbose form = %q", verbose)
	}
}
