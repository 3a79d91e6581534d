package ast

import (
	"fmt"

	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/types"
)

// TypeNode names a scalar type in a declaration (`integer`, `real`, ...).
type TypeNode struct {
	Token lexer.Token
	Name  types.Type
}

func (t *TypeNode) TokenLiteral() string { return t.Token.Literal }
func (t *TypeNode) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeNode) String() string       { return t.Name.String() }

// ArrayTypeNode is `array [lower..upper] of elementType`.
type ArrayTypeNode struct {
	Token   lexer.Token
	Lower   int
	Upper   int
	Element *TypeNode
}

func (a *ArrayTypeNode) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayTypeNode) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayTypeNode) String() string {
	return fmt.Sprintf("array[%d..%d] of %s", a.Lower, a.Upper, a.Element.String())
}
