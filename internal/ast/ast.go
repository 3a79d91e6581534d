// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the semantic analyzer and code generator.
package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value. The semantic analyzer
// fills in ResolvedType as it walks the tree.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() types.Type
	SetResolvedType(types.Type)
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// exprType is embedded by every Expression implementation so the type slot
// does not need repeating in each struct.
type exprType struct {
	Type types.Type
}

func (e *exprType) ResolvedType() types.Type     { return e.Type }
func (e *exprType) SetResolvedType(t types.Type) { e.Type = t }

// Program is the root of the AST: a named program with one top-level block.
type Program struct {
	Token lexer.Token
	Name  string
	Block *Block
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() lexer.Position  { return p.Token.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("program " + p.Name + ";\n")
	if p.Block != nil {
		out.WriteString(p.Block.String())
	}
	out.WriteString(".\n")
	return out.String()
}

// Block groups a scope's declarations with its executable body.
type Block struct {
	Token        lexer.Token
	Declarations []Statement
	Compound     *CompoundStatement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	for _, d := range b.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if b.Compound != nil {
		out.WriteString(b.Compound.String())
	}
	return out.String()
}

// Identifier is a bare name reference (used where no lvalue semantics
// apply, e.g. a type name or a call target before resolution).
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is a parsed integer constant.
type IntegerLiteral struct {
	exprType
	Token lexer.Token
	Value int64
}

func (*IntegerLiteral) expressionNode()        {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }

// RealLiteral is a parsed floating-point constant.
type RealLiteral struct {
	exprType
	Token lexer.Token
	Value float64
}

func (*RealLiteral) expressionNode()        {}
func (n *RealLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *RealLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *RealLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a parsed single-quoted string constant (quotes stripped).
type StringLiteral struct {
	exprType
	Token lexer.Token
	Value string
}

func (*StringLiteral) expressionNode()        {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *StringLiteral) String() string       { return fmt.Sprintf("'%s'", n.Value) }

// BooleanLiteral is the `true`/`false` constant.
type BooleanLiteral struct {
	exprType
	Token lexer.Token
	Value bool
}

func (*BooleanLiteral) expressionNode()        {}
func (n *BooleanLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *BooleanLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *BooleanLiteral) String() string       { return n.Token.Literal }
