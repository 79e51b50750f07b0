package lingo

// liftPut implements the Put opcode: a packed {putType, varType} operand
// selects into/after/before and the variable kind (spec.md §4.6). A
// field reference (varType 6) pops a cast id then a field id; every
// other kind's reference was already pushed onto the stack by a
// preceding Get*/PushVarRef instruction.
func (s *liftState) liftPut(in Instruction) {
	putType := (in.Obj >> 4) & 0xF
	varType := in.Obj & 0xF
	where := putWhereFrom(putType)

	var target Expr
	if varType == 6 {
		castID := s.pop()
		fieldID := s.pop()
		target = MemberExpr{MemberExpr: fieldID, CastLib: castID}
	} else {
		target = s.pop()
	}
	value := s.pop()
	s.emit(PutStmt{Where: where, Value: value, Var: target})
}

// liftPutChunk is Put's chunk-reference form: the destination is a
// ChunkExpr built from the usual eight packed bounds (spec.md §4.6).
func (s *liftState) liftPutChunk(in Instruction) {
	putType := (in.Obj >> 4) & 0xF
	where := putWhereFrom(putType)
	value := s.pop()
	target := s.popChunkExpr()
	s.emit(PutStmt{Where: where, Value: value, Var: target})
}

func putWhereFrom(putType int32) PutWhere {
	switch putType {
	case 1:
		return PutAfter
	case 2:
		return PutBefore
	default:
		return PutInto
	}
}

// liftObjCall implements ObjCall/ObjCallV4's method normalization table
// from spec.md §4.6: getAt/setAt to bracket indexing, getProp/setProp/
// getPropRef to obj.prop[index] (two-index form with 4/5 args),
// setContents[After|Before] to a Put statement, count+symbol to
// obj.prop.count, hilite/delete to the respective statements, and
// anything else to a plain ObjCall expression.
func (s *liftState) liftObjCall(in Instruction, idx int) {
	al, _ := s.pop().(ArgListExpr)
	obj := s.pop()
	method := s.l.resolveName(in.Obj)
	args := al.Args

	switch method {
	case "getAt":
		if len(args) >= 1 {
			s.push(ObjPropExpr{Obj: obj, Index: args[0]})
			return
		}
	case "setAt":
		if len(args) >= 2 {
			s.emit(AssignStmt{Var: ObjPropExpr{Obj: obj, Index: args[0]}, Value: args[1]})
			return
		}
	case "getProp", "getPropRef":
		if len(args) >= 2 {
			e := ObjPropExpr{Obj: obj, Prop: exprText(args[0]), Index: args[1]}
			if len(args) >= 3 {
				e.Index2 = args[2]
			}
			s.push(e)
			return
		}
	case "setProp":
		if len(args) >= 3 {
			e := ObjPropExpr{Obj: obj, Prop: exprText(args[0]), Index: args[1]}
			if len(args) >= 4 {
				e.Index2 = args[2]
			}
			s.emit(AssignStmt{Var: e, Value: args[len(args)-1]})
			return
		}
	case "setContents", "setContentsAfter", "setContentsBefore":
		where := PutInto
		switch method {
		case "setContentsAfter":
			where = PutAfter
		case "setContentsBefore":
			where = PutBefore
		}
		if len(args) >= 1 {
			s.emit(PutStmt{Where: where, Value: args[len(args)-1], Var: obj})
			return
		}
	case "count":
		if len(args) == 1 {
			if lit, ok := args[0].(LiteralExpr); ok && lit.Value.Kind == DatumSymbol {
				s.push(ObjPropExpr{Obj: obj, Prop: lit.Value.Str + ".count"})
				return
			}
		}
	case "hilite":
		s.emit(HiliteStmt{Target: obj})
		return
	case "delete":
		s.emit(DeleteStmt{Target: obj})
		return
	}
	s.push(ObjCallExpr{Obj: obj, Method: method, Args: args})
}
