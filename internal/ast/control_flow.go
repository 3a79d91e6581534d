package ast

import (
	"bytes"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// CompoundStatement is `begin statement_list end`.
type CompoundStatement struct {
	Token      lexer.Token
	Statements []Statement
}

func (*CompoundStatement) statementNode()        {}
func (c *CompoundStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CompoundStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *CompoundStatement) String() string {
	var out bytes.Buffer
	out.WriteString("begin\n")
	for _, s := range c.Statements {
		out.WriteString("  " + s.String() + ";\n")
	}
	out.WriteString("end")
	return out.String()
}

// Assignment is `lvalue := rvalue`. Lvalue is *Variable or *ArrayAccess.
type Assignment struct {
	Token lexer.Token
	Left  Expression
	Right Expression
}

func (*Assignment) statementNode()        {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return a.Left.String() + " := " + a.Right.String()
}

// IfStatement is `if cond then thenStmt [else elseStmt]`.
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (*IfStatement) statementNode()        {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if " + i.Condition.String() + " then " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStatement is `while cond do body`.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      Statement
}

func (*WhileStatement) statementNode()        {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while " + w.Condition.String() + " do " + w.Body.String()
}

// ForDirection is the loop direction tag, `to` or `downto`.
type ForDirection int

const (
	To ForDirection = iota
	DownTo
)

func (d ForDirection) String() string {
	if d == DownTo {
		return "downto"
	}
	return "to"
}

// ForStatement is `for id := init (to|downto) limit do body`.
type ForStatement struct {
	Token     lexer.Token
	LoopVar   string
	Init      Expression
	Limit     Expression
	Direction ForDirection
	Body      Statement
}

func (*ForStatement) statementNode()        {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	return "for " + f.LoopVar + " := " + f.Init.String() + " " + f.Direction.String() + " " + f.Limit.String() + " do " + f.Body.String()
}
