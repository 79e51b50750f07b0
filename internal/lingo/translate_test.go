package lingo

import "testing"

// TestLiftGetChunkCountProperty exercises readV4Property's category-1
// "the number of <chunkType>s" family.
func TestLiftGetChunkCountProperty(t *testing.T) {
	code := []byte{
		0x41, 0x02, // PushInt8 2 (chunk-kind id: word)
		0x6B, 0x01, // Get category=1
		0x01, // Ret
	}
	names := mapNames{1: "foo"}
	script := newTestScript(names, code, nil, nil)
	l := NewLifter(script, names)

	sast, err := l.LiftScript()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := sast.Handlers[0]
	ret, ok := h.Body.Stmts[0].(ReturnStmt)
	if !ok {
		t.Fatalf("stmt0 = %T, want ReturnStmt", h.Body.Stmts[0])
	}
	prop, ok := ret.Value.(TheEntityExpr)
	if !ok || prop.Prop != "number of words" {
		t.Fatalf("return value = %#v, want TheEntityExpr{Prop: \"number of words\"}", ret.Value)
	}
}

// TestLiftGetLastChunkProperty exercises readV4Property's category-0
// "the last <chunkType> in ..." family (id >= 0x0b).
func TestLiftGetLastChunkProperty(t *testing.T) {
	code := []byte{
		0x41, 0x0B, // PushInt8 11 (last-chunk id: char)
		0x6B, 0x00, // Get category=0
		0x01, // Ret
	}
	names := mapNames{1: "foo"}
	script := newTestScript(names, code, nil, nil)
	l := NewLifter(script, names)

	sast, err := l.LiftScript()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := sast.Handlers[0]
	ret, ok := h.Body.Stmts[0].(ReturnStmt)
	if !ok {
		t.Fatalf("stmt0 = %T, want ReturnStmt", h.Body.Stmts[0])
	}
	prop, ok := ret.Value.(TheEntityExpr)
	if !ok || prop.Prop != "last char" {
		t.Fatalf("return value = %#v, want TheEntityExpr{Prop: \"last char\"}", ret.Value)
	}
}

// TestLiftGetCastLibQualifiedProperty exercises readV4Property's D5+
// category-8/id-2 castLib-qualified form, which pops a second stack
// value (the castLib number) beyond the ordinary single propertyID pop.
func TestLiftGetCastLibQualifiedProperty(t *testing.T) {
	code := []byte{
		0x41, 0x05, // PushInt8 5 (castLib number)
		0x41, 0x02, // PushInt8 2 (propertyID)
		0x6B, 0x08, // Get category=8
		0x01, // Ret
	}
	names := mapNames{1: "foo"}
	script := newTestScript(names, code, nil, nil) // humanVersion=850, satisfies D5+
	l := NewLifter(script, names)

	sast, err := l.LiftScript()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := sast.Handlers[0]
	ret, ok := h.Body.Stmts[0].(ReturnStmt)
	if !ok {
		t.Fatalf("stmt0 = %T, want ReturnStmt", h.Body.Stmts[0])
	}
	prop, ok := ret.Value.(TheEntityExpr)
	if !ok || prop.Prop != "number of members of castLib 5" {
		t.Fatalf("return value = %#v, want TheEntityExpr{Prop: \"number of members of castLib 5\"}", ret.Value)
	}
}

// TestLiftSetChunkCountProperty exercises the Set side of readV4Property
// wiring (an assignment target built from the same dispatch table).
func TestLiftSetChunkCountProperty(t *testing.T) {
	code := []byte{
		0x41, 0x03, // PushInt8 3 (chunk-kind id: item)
		0x41, 0x09, // PushInt8 9 (value to assign)
		0x6C, 0x01, // Set category=1
		0x01, // Ret (bare)
	}
	names := mapNames{1: "foo"}
	script := newTestScript(names, code, nil, nil)
	l := NewLifter(script, names)

	sast, err := l.LiftScript()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := sast.Handlers[0]
	as, ok := h.Body.Stmts[0].(AssignStmt)
	if !ok {
		t.Fatalf("stmt0 = %T, want AssignStmt", h.Body.Stmts[0])
	}
	prop, ok := as.Var.(TheEntityExpr)
	if !ok || prop.Prop != "number of items" {
		t.Fatalf("assign target = %#v, want TheEntityExpr{Prop: \"number of items\"}", as.Var)
	}
	val, ok := as.Value.(LiteralExpr)
	if !ok || val.Value.String() != "9" {
		t.Fatalf("assign value = %#v, want literal 9", as.Value)
	}
}
