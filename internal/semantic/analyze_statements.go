package semantic

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/types"
)

// checkStatement dispatches by concrete statement type. Unknown statement
// types are silently ignored rather than treated as fatal: the parser is
// the sole producer of the AST and only ever emits nodes from the closed
// tag set, so an unreachable case here would indicate a parser bug, not
// user input to diagnose.
func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStatement:
		for _, inner := range s.Statements {
			a.checkStatement(inner)
		}
	case *ast.Assignment:
		a.checkAssignment(s)
	case *ast.FunctionReturn:
		a.checkFunctionReturn(s)
	case *ast.IfStatement:
		a.checkIf(s)
	case *ast.WhileStatement:
		a.checkWhile(s)
	case *ast.ForStatement:
		a.checkFor(s)
	case *ast.ProcedureCallStatement:
		a.checkProcedureCall(s)
	case *ast.FunctionCallStatement:
		a.checkExpr(s.Call)
	case *ast.WritelnStatement:
		a.checkWriteArgs(s.Arguments)
	case *ast.WriteStatement:
		a.checkWriteArgs(s.Arguments)
	case *ast.ReadlnStatement:
		a.checkReadln(s)
	case *ast.HaltStatement:
		// nothing to check
	}
}

func (a *Analyzer) checkAssignment(s *ast.Assignment) {
	lt := a.checkExpr(s.Left)
	rt := a.checkExpr(s.Right)
	if lt == types.Unknown || rt == types.Unknown {
		return
	}
	if !assignable(lt, rt) {
		a.addErrorf(s.Pos(), "cannot assign %s to %s", rt, lt)
	}
}

func assignable(lt, rt types.Type) bool {
	if lt == rt {
		return true
	}
	return charCompatible(lt, rt)
}

func (a *Analyzer) checkFunctionReturn(s *ast.FunctionReturn) {
	rt := a.checkExpr(s.Value)
	if a.currentFunc == nil {
		a.addErrorf(s.Pos(), "return assignment %q used outside any function", s.FunctionName)
		return
	}
	if rt == types.Unknown {
		return
	}
	if !assignable(a.currentFunc.ReturnType, rt) {
		a.addErrorf(s.Pos(), "function %q returns %s, got %s", s.FunctionName, a.currentFunc.ReturnType, rt)
	}
}

func (a *Analyzer) checkIf(s *ast.IfStatement) {
	if t := a.checkExpr(s.Condition); t != types.Unknown && t != types.Boolean {
		a.addErrorf(s.Condition.Pos(), "if condition must be boolean, got %s", t)
	}
	a.checkStatement(s.Then)
	if s.Else != nil {
		a.checkStatement(s.Else)
	}
}

func (a *Analyzer) checkWhile(s *ast.WhileStatement) {
	if t := a.checkExpr(s.Condition); t != types.Unknown && t != types.Boolean {
		a.addErrorf(s.Condition.Pos(), "while condition must be boolean, got %s", t)
	}
	a.checkStatement(s.Body)
}

func (a *Analyzer) checkFor(s *ast.ForStatement) {
	sym, ok := a.symtab.Lookup(s.LoopVar)
	if !ok {
		a.addErrorf(s.Pos(), "undeclared identifier %q", s.LoopVar)
	} else if sym.Type != types.Integer {
		a.addErrorf(s.Pos(), "for loop control variable %q must be integer, got %s", s.LoopVar, sym.Type)
	}
	if t := a.checkExpr(s.Init); t != types.Unknown && t != types.Integer {
		a.addErrorf(s.Init.Pos(), "for loop initial value must be integer, got %s", t)
	}
	if t := a.checkExpr(s.Limit); t != types.Unknown && t != types.Integer {
		a.addErrorf(s.Limit.Pos(), "for loop bound must be integer, got %s", t)
	}
	a.checkStatement(s.Body)
}

func (a *Analyzer) checkProcedureCall(s *ast.ProcedureCallStatement) {
	sym, ok := a.symtab.Lookup(s.Name)
	if !ok {
		a.addErrorf(s.Pos(), "undeclared procedure %q", s.Name)
		for _, arg := range s.Arguments {
			a.checkExpr(arg)
		}
		return
	}
	if sym.Kind != KindProcedure {
		a.addErrorf(s.Pos(), "%q is not a procedure", s.Name)
	}
	a.checkCallArguments(s.Pos(), s.Name, sym, s.Arguments)
}

func (a *Analyzer) checkWriteArgs(args []ast.Expression) {
	for _, arg := range args {
		a.checkExpr(arg)
	}
}

func (a *Analyzer) checkReadln(s *ast.ReadlnStatement) {
	if s.Target == nil {
		return
	}
	switch s.Target.(type) {
	case *ast.Variable, *ast.ArrayAccess:
		a.checkExpr(s.Target)
	default:
		a.addErrorf(s.Target.Pos(), "readln target must be a variable or array element")
	}
}
