package bytecode

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/types"
)

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStatement:
		for _, inner := range s.Statements {
			g.genStatement(inner)
		}
	case *ast.Assignment:
		g.genAssignment(s)
	case *ast.FunctionReturn:
		g.genExpr(s.Value)
		sym, ok := g.symtab.Lookup(s.FunctionName)
		if !ok {
			g.addErrorf(s.Pos(), "internal: return target %q not found", s.FunctionName)
			return
		}
		g.b.Emit("%s %d", OpStoreG, sym.Address)
	case *ast.IfStatement:
		g.genIf(s)
	case *ast.WhileStatement:
		g.genWhile(s)
	case *ast.ForStatement:
		g.genFor(s)
	case *ast.ProcedureCallStatement:
		g.genCall(s.Pos(), s.Name, s.Arguments)
	case *ast.FunctionCallStatement:
		g.genCall(s.Pos(), s.Call.Name, s.Call.Arguments)
		g.b.Emit("%s %d", OpStoreG, g.discardCell())
	case *ast.WritelnStatement:
		g.genWriteArgs(s.Arguments)
		g.b.Emit(OpWriteLn)
	case *ast.WriteStatement:
		g.genWriteArgs(s.Arguments)
	case *ast.ReadlnStatement:
		g.genReadln(s)
	case *ast.HaltStatement:
		g.b.Emit(OpStop)
	default:
		g.addErrorf(stmt.Pos(), "internal: unhandled statement type")
	}
}

func (g *Generator) genAssignment(a *ast.Assignment) {
	switch lv := a.Left.(type) {
	case *ast.Variable:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			g.addErrorf(lv.Pos(), "internal: variable %q not found", lv.Name)
			return
		}
		g.genExpr(a.Right)
		g.b.Emit("%s %d", OpStoreG, sym.Address)
	case *ast.ArrayAccess:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			g.addErrorf(lv.Pos(), "internal: array %q not found", lv.Name)
			return
		}
		g.b.Emit("%s %d", OpPushI, sym.Address)
		g.genExpr(lv.Index)
		if sym.ArrayInfo.Lower != 0 {
			g.b.Emit("%s %d", OpPushI, sym.ArrayInfo.Lower)
			g.b.Emit(OpSub)
		}
		g.genExpr(a.Right)
		g.b.Emit(OpStoreN)
	default:
		g.addErrorf(a.Pos(), "internal: unsupported assignment target")
	}
}

// genIf lowers `if cond then thenStmt [else elseStmt]` per §4.4.
func (g *Generator) genIf(s *ast.IfStatement) {
	elseLabel := g.b.NewLabel("ELSE")
	endLabel := g.b.NewLabel("ENDIF")

	g.genExpr(s.Condition)
	g.b.Emit("%s %s", OpJz, elseLabel)
	g.genStatement(s.Then)
	g.b.Emit("%s %s", OpJump, endLabel)
	g.b.EmitLabel(elseLabel)
	if s.Else != nil {
		g.genStatement(s.Else)
	}
	g.b.EmitLabel(endLabel)
}

func (g *Generator) genWhile(s *ast.WhileStatement) {
	startLabel := g.b.NewLabel("WHILE")
	endLabel := g.b.NewLabel("ENDWHILE")

	g.b.EmitLabel(startLabel)
	g.genExpr(s.Condition)
	g.b.Emit("%s %s", OpJz, endLabel)
	g.genStatement(s.Body)
	g.b.Emit("%s %s", OpJump, startLabel)
	g.b.EmitLabel(endLabel)
}

// genFor lowers the bounds check as `sup`/`inf` → `not` → `jz Lend` (§4.4,
// §9) — never `jnz`, which is the historical off-by-one some source
// variants carried.
func (g *Generator) genFor(s *ast.ForStatement) {
	sym, ok := g.symtab.Lookup(s.LoopVar)
	if !ok {
		g.addErrorf(s.Pos(), "internal: loop variable %q not found", s.LoopVar)
		return
	}

	g.genExpr(s.Init)
	g.b.Emit("%s %d", OpStoreG, sym.Address)

	limitAddr := g.freshCell()
	g.genExpr(s.Limit)
	g.b.Emit("%s %d", OpStoreG, limitAddr)

	startLabel := g.b.NewLabel("FOR")
	endLabel := g.b.NewLabel("ENDFOR")
	g.b.EmitLabel(startLabel)

	g.b.Emit("%s %d", OpPushG, sym.Address)
	g.b.Emit("%s %d", OpPushG, limitAddr)
	if s.Direction == ast.DownTo {
		g.b.Emit(OpInf)
	} else {
		g.b.Emit(OpSup)
	}
	g.b.Emit(OpNot)
	g.b.Emit("%s %s", OpJz, endLabel)

	g.genStatement(s.Body)

	step := 1
	if s.Direction == ast.DownTo {
		step = -1
	}
	g.b.Emit("%s %d", OpPushG, sym.Address)
	g.b.Emit("%s %d", OpPushI, step)
	g.b.Emit(OpAdd)
	g.b.Emit("%s %d", OpStoreG, sym.Address)
	g.b.Emit("%s %s", OpJump, startLabel)
	g.b.EmitLabel(endLabel)
}

func (g *Generator) genWriteArgs(args []ast.Expression) {
	for _, arg := range args {
		if fo, ok := arg.(*ast.FormattedOutput); ok {
			g.genExpr(fo.Value)
			decimals := -1
			if fo.HasDec {
				decimals = fo.Decimals
			}
			g.b.Emit("%s %d %d", OpWriteFmt, fo.Width, decimals)
			continue
		}
		g.genExpr(arg)
		g.emitWriteOp(arg.ResolvedType())
	}
}

func (g *Generator) emitWriteOp(t types.Type) {
	switch t {
	case types.Integer, types.Boolean:
		g.b.Emit(OpWriteI)
	case types.Real:
		g.b.Emit(OpWriteF)
	default: // String, Char
		g.b.Emit(OpWriteS)
	}
}

func (g *Generator) genReadln(s *ast.ReadlnStatement) {
	if s.Target == nil {
		g.b.Emit(OpRead)
		g.b.Emit("%s %d", OpStoreG, g.discardCell())
		return
	}

	switch lv := s.Target.(type) {
	case *ast.Variable:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			g.addErrorf(lv.Pos(), "internal: variable %q not found", lv.Name)
			return
		}
		g.b.Emit(OpRead)
		g.emitConvert(sym.Type)
		g.b.Emit("%s %d", OpStoreG, sym.Address)
	case *ast.ArrayAccess:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			g.addErrorf(lv.Pos(), "internal: array %q not found", lv.Name)
			return
		}
		g.b.Emit("%s %d", OpPushI, sym.Address)
		g.genExpr(lv.Index)
		if sym.ArrayInfo.Lower != 0 {
			g.b.Emit("%s %d", OpPushI, sym.ArrayInfo.Lower)
			g.b.Emit(OpSub)
		}
		g.b.Emit(OpRead)
		g.emitConvert(sym.ArrayInfo.ElementType)
		g.b.Emit(OpStoreN)
	default:
		g.addErrorf(s.Pos(), "internal: unsupported readln target")
	}
}

func (g *Generator) emitConvert(t types.Type) {
	switch t {
	case types.Integer:
		g.b.Emit(OpAtoI)
	case types.Real:
		g.b.Emit(OpAtoF)
	default:
		// string, char, boolean: read() already produced a string; keep it.
	}
}
