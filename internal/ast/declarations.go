package ast

import (
	"strings"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// VarDecl is `id, id, ... : type ;`. Every name in Names shares Type and,
// once the generator runs, has its own address recorded in the symbol
// table (not here — the AST is address-agnostic).
type VarDecl struct {
	Token lexer.Token
	Names []string
	Type  Node // *TypeNode or *ArrayTypeNode
}

func (*VarDecl) statementNode()        {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	return strings.Join(v.Names, ", ") + ": " + v.Type.String() + ";"
}
