package ast

import (
	"strings"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// BinaryOp is `lhs op rhs`; Operator carries the operator spelling
// (`+ - * / div mod and or = <> < <= > >=`).
type BinaryOp struct {
	exprType
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (*BinaryOp) expressionNode()        {}
func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryOp is `not factor` or `- factor`.
type UnaryOp struct {
	exprType
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (*UnaryOp) expressionNode()        {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryOp) String() string {
	return "(" + u.Operator + " " + u.Operand.String() + ")"
}

// Variable is a simple name reference used as an rvalue or lvalue.
type Variable struct {
	exprType
	Token lexer.Token
	Name  string
}

func (*Variable) expressionNode()        {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Pos() lexer.Position  { return v.Token.Pos }
func (v *Variable) String() string       { return v.Name }

// ArrayAccess is `name[index]`, usable as both lvalue and rvalue.
type ArrayAccess struct {
	exprType
	Token lexer.Token
	Name  string
	Index Expression
}

func (*ArrayAccess) expressionNode()        {}
func (a *ArrayAccess) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAccess) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayAccess) String() string {
	return a.Name + "[" + a.Index.String() + "]"
}

// StringAccess is `s[index]` where s has type string; it yields a char.
type StringAccess struct {
	exprType
	Token lexer.Token
	Name  string
	Index Expression
}

func (*StringAccess) expressionNode()        {}
func (s *StringAccess) TokenLiteral() string { return s.Token.Literal }
func (s *StringAccess) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringAccess) String() string {
	return s.Name + "[" + s.Index.String() + "]"
}

// FormattedOutput is `lvalue : width (: decimals)?`, only legal as a
// writeln/write argument.
type FormattedOutput struct {
	exprType
	Token    lexer.Token
	Value    Expression
	Width    int
	Decimals int
	HasDec   bool
}

func (*FormattedOutput) expressionNode()        {}
func (f *FormattedOutput) TokenLiteral() string { return f.Token.Literal }
func (f *FormattedOutput) Pos() lexer.Position  { return f.Token.Pos }
func (f *FormattedOutput) String() string {
	if f.HasDec {
		return f.Value.String() + ":" + itoa(f.Width) + ":" + itoa(f.Decimals)
	}
	return f.Value.String() + ":" + itoa(f.Width)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// FunctionCallExpr is `name(args)` used as an expression (the callee must
// be a function, not a procedure).
type FunctionCallExpr struct {
	exprType
	Token     lexer.Token
	Name      string
	Arguments []Expression
}

func (*FunctionCallExpr) expressionNode()        {}
func (c *FunctionCallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *FunctionCallExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *FunctionCallExpr) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// LengthCall is the built-in `length(x)` for strings and arrays.
type LengthCall struct {
	exprType
	Token    lexer.Token
	Argument Expression
}

func (*LengthCall) expressionNode()        {}
func (l *LengthCall) TokenLiteral() string { return l.Token.Literal }
func (l *LengthCall) Pos() lexer.Position  { return l.Token.Pos }
func (l *LengthCall) String() string       { return "length(" + l.Argument.String() + ")" }
