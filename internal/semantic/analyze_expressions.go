package semantic

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/types"
)

// checkExpr resolves and records the type of an expression node, emitting
// diagnostics for every violation in spec §4.3, and returns that type. Most
// checks return types.Unknown once they report an error, so callers don't
// cascade errors about a value that was never well-formed; a string index
// on a non-string, a call to a non-function, and length() of a wrong
// argument are reported but still return char, the callee's return type,
// and integer respectively.
func (a *Analyzer) checkExpr(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		e.SetResolvedType(types.Integer)
		return types.Integer
	case *ast.RealLiteral:
		e.SetResolvedType(types.Real)
		return types.Real
	case *ast.StringLiteral:
		e.SetResolvedType(types.String)
		return types.String
	case *ast.BooleanLiteral:
		e.SetResolvedType(types.Boolean)
		return types.Boolean
	case *ast.Variable:
		return a.checkVariable(e)
	case *ast.ArrayAccess:
		return a.checkArrayAccess(e)
	case *ast.StringAccess:
		return a.checkStringAccess(e)
	case *ast.BinaryOp:
		return a.checkBinaryOp(e)
	case *ast.UnaryOp:
		return a.checkUnaryOp(e)
	case *ast.FunctionCallExpr:
		return a.checkFunctionCallExpr(e)
	case *ast.LengthCall:
		return a.checkLengthCall(e)
	case *ast.FormattedOutput:
		t := a.checkExpr(e.Value)
		e.SetResolvedType(t)
		return t
	default:
		return types.Unknown
	}
}

func (a *Analyzer) checkVariable(v *ast.Variable) types.Type {
	sym, ok := a.symtab.Lookup(v.Name)
	if !ok {
		a.addErrorf(v.Pos(), "undeclared identifier %q", v.Name)
		return types.Unknown
	}
	if sym.Kind == KindFunction || sym.Kind == KindProcedure {
		a.addErrorf(v.Pos(), "%q is a callable and must be invoked with ()", v.Name)
		return types.Unknown
	}
	v.SetResolvedType(sym.Type)
	return sym.Type
}

func (a *Analyzer) checkArrayAccess(ar *ast.ArrayAccess) types.Type {
	sym, ok := a.symtab.Lookup(ar.Name)
	if !ok {
		a.addErrorf(ar.Pos(), "undeclared identifier %q", ar.Name)
		a.checkExpr(ar.Index)
		return types.Unknown
	}
	if !sym.IsArray() {
		a.addErrorf(ar.Pos(), "%q is not an array", ar.Name)
		a.checkExpr(ar.Index)
		return types.Unknown
	}
	if it := a.checkExpr(ar.Index); it != types.Unknown && it != types.Integer {
		a.addErrorf(ar.Index.Pos(), "array index must be integer, got %s", it)
	}
	ar.SetResolvedType(sym.ArrayInfo.ElementType)
	return sym.ArrayInfo.ElementType
}

func (a *Analyzer) checkStringAccess(sa *ast.StringAccess) types.Type {
	sym, ok := a.symtab.Lookup(sa.Name)
	if !ok {
		a.addErrorf(sa.Pos(), "undeclared identifier %q", sa.Name)
		a.checkExpr(sa.Index)
		return types.Unknown
	}
	if sym.Type != types.String {
		a.addErrorf(sa.Pos(), "%q is not a string", sa.Name)
	}
	if it := a.checkExpr(sa.Index); it != types.Unknown && it != types.Integer {
		a.addErrorf(sa.Index.Pos(), "string index must be integer, got %s", it)
	}
	sa.SetResolvedType(types.Char)
	return types.Char
}

var relationalOps = map[string]bool{
	"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (a *Analyzer) checkBinaryOp(b *ast.BinaryOp) types.Type {
	lt := a.checkExpr(b.Left)
	rt := a.checkExpr(b.Right)
	if lt == types.Unknown || rt == types.Unknown {
		return types.Unknown
	}

	var result types.Type
	switch b.Operator {
	case "+", "-", "*":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.addErrorf(b.Pos(), "operator %q requires numeric operands, got %s and %s", b.Operator, lt, rt)
			return types.Unknown
		}
		result = types.Integer
		if lt == types.Real || rt == types.Real {
			result = types.Real
		}
	case "div", "mod":
		if lt != types.Integer || rt != types.Integer {
			a.addErrorf(b.Pos(), "operator %q requires integer operands, got %s and %s", b.Operator, lt, rt)
			return types.Unknown
		}
		result = types.Integer
	case "/":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.addErrorf(b.Pos(), "operator / requires numeric operands, got %s and %s", lt, rt)
			return types.Unknown
		}
		result = types.Real
	case "and", "or":
		if lt != types.Boolean || rt != types.Boolean {
			a.addErrorf(b.Pos(), "operator %q requires boolean operands, got %s and %s", b.Operator, lt, rt)
			return types.Unknown
		}
		result = types.Boolean
	default:
		if relationalOps[b.Operator] {
			if lt != rt && !charCompatible(lt, rt) {
				a.addErrorf(b.Pos(), "operator %q requires operands of the same type, got %s and %s", b.Operator, lt, rt)
				return types.Unknown
			}
			result = types.Boolean
		} else {
			a.addErrorf(b.Pos(), "unknown operator %q", b.Operator)
			return types.Unknown
		}
	}
	b.SetResolvedType(result)
	return result
}

func (a *Analyzer) checkUnaryOp(u *ast.UnaryOp) types.Type {
	ot := a.checkExpr(u.Operand)
	if ot == types.Unknown {
		return types.Unknown
	}
	switch u.Operator {
	case "not":
		if ot != types.Boolean {
			a.addErrorf(u.Pos(), "operator not requires a boolean operand, got %s", ot)
			return types.Unknown
		}
		u.SetResolvedType(types.Boolean)
		return types.Boolean
	case "-":
		if !types.IsNumeric(ot) {
			a.addErrorf(u.Pos(), "unary - requires a numeric operand, got %s", ot)
			return types.Unknown
		}
		u.SetResolvedType(ot)
		return ot
	default:
		a.addErrorf(u.Pos(), "unknown unary operator %q", u.Operator)
		return types.Unknown
	}
}

func (a *Analyzer) checkFunctionCallExpr(c *ast.FunctionCallExpr) types.Type {
	sym, ok := a.symtab.Lookup(c.Name)
	if !ok {
		a.addErrorf(c.Pos(), "undeclared function %q", c.Name)
		for _, arg := range c.Arguments {
			a.checkExpr(arg)
		}
		return types.Unknown
	}
	if sym.Kind != KindFunction {
		a.addErrorf(c.Pos(), "%q is not a function", c.Name)
	}
	a.checkCallArguments(c.Pos(), c.Name, sym, c.Arguments)
	c.SetResolvedType(sym.ReturnType)
	return sym.ReturnType
}

func (a *Analyzer) checkLengthCall(l *ast.LengthCall) types.Type {
	t := a.checkExpr(l.Argument)
	if t != types.Unknown && t != types.String && t != types.Array {
		a.addErrorf(l.Pos(), "length() requires a string or array argument, got %s", t)
	}
	l.SetResolvedType(types.Integer)
	return types.Integer
}
