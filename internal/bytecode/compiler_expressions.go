package bytecode

import (
	"strconv"
	"strings"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/semantic"
)

var arithOpcodes = map[string]string{
	"+":   OpAdd,
	"-":   OpSub,
	"*":   OpMul,
	"div": OpDiv,
	"mod": OpMod,
	"and": OpAnd,
	"or":  OpOr,
}

func (g *Generator) genExpr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		g.b.Emit("%s %d", OpPushI, n.Value)
	case *ast.RealLiteral:
		g.b.Emit("%s %s", OpPushF, strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *ast.StringLiteral:
		g.b.Emit("%s %s", OpPushS, escapePascalString(n.Value))
	case *ast.BooleanLiteral:
		v := 0
		if n.Value {
			v = 1
		}
		g.b.Emit("%s %d", OpPushI, v)
	case *ast.Variable:
		g.genVariable(n)
	case *ast.ArrayAccess:
		g.genArrayLoad(n)
	case *ast.StringAccess:
		g.genStringAccess(n)
	case *ast.BinaryOp:
		g.genBinaryOp(n)
	case *ast.UnaryOp:
		g.genUnaryOp(n)
	case *ast.FunctionCallExpr:
		g.genCall(n.Pos(), n.Name, n.Arguments)
	case *ast.LengthCall:
		g.genLength(n)
	case *ast.FormattedOutput:
		// Only legal as a write/writeln argument; genWriteArgs handles it
		// directly and never reaches genExpr with one. Falling back to the
		// bare value keeps this total rather than silently dropping code.
		g.genExpr(n.Value)
	default:
		g.addErrorf(e.Pos(), "internal: unhandled expression type")
	}
}

// escapePascalString renders a listing-safe string literal: the wire
// format (§6) limits escapes to `\"` and `\\`, narrower than Go's %q.
func escapePascalString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (g *Generator) genVariable(v *ast.Variable) {
	sym, ok := g.symtab.Lookup(v.Name)
	if !ok {
		g.addErrorf(v.Pos(), "internal: variable %q not found", v.Name)
		return
	}
	g.b.Emit("%s %d", OpPushG, sym.Address)
}

func (g *Generator) genArrayLoad(a *ast.ArrayAccess) {
	sym, ok := g.symtab.Lookup(a.Name)
	if !ok {
		g.addErrorf(a.Pos(), "internal: array %q not found", a.Name)
		return
	}
	g.b.Emit("%s %d", OpPushI, sym.Address)
	g.genExpr(a.Index)
	if sym.ArrayInfo.Lower != 0 {
		g.b.Emit("%s %d", OpPushI, sym.ArrayInfo.Lower)
		g.b.Emit(OpSub)
	}
	g.b.Emit(OpLoadN)
}

func (g *Generator) genStringAccess(s *ast.StringAccess) {
	sym, ok := g.symtab.Lookup(s.Name)
	if !ok {
		g.addErrorf(s.Pos(), "internal: variable %q not found", s.Name)
		return
	}
	g.b.Emit("%s %d", OpPushG, sym.Address)
	g.genExpr(s.Index)
	g.b.Emit(OpCharAt)
}

func (g *Generator) genBinaryOp(b *ast.BinaryOp) {
	g.genExpr(b.Left)
	g.genExpr(b.Right)
	switch b.Operator {
	case "/":
		g.b.Emit(OpFDiv)
	case "=":
		g.b.Emit(OpEqual)
	case "<>":
		g.b.Emit(OpEqual)
		g.b.Emit(OpNot)
	case "<":
		g.b.Emit(OpInf)
	case "<=":
		g.b.Emit(OpInfEq)
	case ">":
		g.b.Emit(OpSup)
	case ">=":
		g.b.Emit(OpSupEq)
	default:
		if op, ok := arithOpcodes[b.Operator]; ok {
			g.b.Emit(op)
			return
		}
		g.addErrorf(b.Pos(), "internal: unhandled operator %q", b.Operator)
	}
}

func (g *Generator) genUnaryOp(u *ast.UnaryOp) {
	g.genExpr(u.Operand)
	switch u.Operator {
	case "not":
		g.b.Emit(OpNot)
	case "-":
		g.b.Emit("%s -1", OpPushI)
		g.b.Emit(OpMul)
	default:
		g.addErrorf(u.Pos(), "internal: unhandled unary operator %q", u.Operator)
	}
}

// genLength lowers length(x). Array length is static (bounds are fixed
// at compile time); string length is not, so it falls through to the
// runtime OpStrLen.
func (g *Generator) genLength(l *ast.LengthCall) {
	if l.Argument == nil {
		g.addErrorf(l.Pos(), "internal: length() with no argument")
		return
	}
	if v, ok := l.Argument.(*ast.Variable); ok {
		if sym, ok := g.symtab.Lookup(v.Name); ok && sym.IsArray() {
			g.b.Emit("%s %d", OpPushI, sym.ArrayInfo.Size())
			return
		}
	}
	g.genExpr(l.Argument)
	g.b.Emit(OpStrLen)
}

// genCall lowers a procedure or function call: arguments left-to-right,
// `pusha L; call` (§4.4). Reference parameters are simulated with
// copy-in/copy-out — the static calling convention here has no aliasing,
// so after the call returns, each by-ref formal's final value is copied
// back into the corresponding argument lvalue.
func (g *Generator) genCall(pos lexer.Position, name string, args []ast.Expression) {
	sym, ok := g.symtab.Lookup(name)
	if !ok {
		g.addErrorf(pos, "internal: callable %q not found", name)
		return
	}
	label, ok := g.routineLabel(name)
	if !ok {
		g.addErrorf(pos, "internal: callable %q has no generated body", name)
		return
	}

	for _, a := range args {
		g.genExpr(a)
	}
	g.b.Emit("%s %s", OpPushA, label)
	g.b.Emit(OpCall)

	formals := semantic.FlattenedParams(sym)
	n := len(formals)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		if formals[i].Kind == semantic.KindReferenceParameter {
			g.genCopyBack(formals[i], args[i])
		}
	}
}

func (g *Generator) genCopyBack(formal *semantic.Symbol, arg ast.Expression) {
	switch lv := arg.(type) {
	case *ast.Variable:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			return
		}
		g.b.Emit("%s %d", OpPushG, formal.Address)
		g.b.Emit("%s %d", OpStoreG, sym.Address)
	case *ast.ArrayAccess:
		sym, ok := g.symtab.Lookup(lv.Name)
		if !ok {
			return
		}
		g.b.Emit("%s %d", OpPushI, sym.Address)
		g.genExpr(lv.Index)
		if sym.ArrayInfo.Lower != 0 {
			g.b.Emit("%s %d", OpPushI, sym.ArrayInfo.Lower)
			g.b.Emit(OpSub)
		}
		g.b.Emit("%s %d", OpPushG, formal.Address)
		g.b.Emit(OpStoreN)
	}
}
