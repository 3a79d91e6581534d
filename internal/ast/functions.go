package ast

import (
	"strings"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// Param is one `[VAR] id, id : type` group in a parameter list.
type Param struct {
	Token     lexer.Token
	Names     []string
	Type      Node // *TypeNode or *ArrayTypeNode
	ByRef     bool
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() lexer.Position  { return p.Token.Pos }
func (p *Param) String() string {
	prefix := ""
	if p.ByRef {
		prefix = "var "
	}
	return prefix + strings.Join(p.Names, ", ") + ": " + p.Type.String()
}

// FunctionDecl is a `function name(params): type ; block ;` declaration.
type FunctionDecl struct {
	Token      lexer.Token
	Name       string
	Params     []*Param
	ReturnType *TypeNode
	Body       *Block
}

func (*FunctionDecl) statementNode()        {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	return "function " + f.Name + ": " + f.ReturnType.String() + ";\n" + f.Body.String() + ";"
}

// ProcedureDecl is a `procedure name(params); block ;` declaration.
type ProcedureDecl struct {
	Token  lexer.Token
	Name   string
	Params []*Param
	Body   *Block
}

func (*ProcedureDecl) statementNode()        {}
func (p *ProcedureDecl) TokenLiteral() string { return p.Token.Literal }
func (p *ProcedureDecl) Pos() lexer.Position  { return p.Token.Pos }
func (p *ProcedureDecl) String() string {
	return "procedure " + p.Name + ";\n" + p.Body.String() + ";"
}

// FunctionReturn is an assignment to the bare function name inside its own
// body — the parser distinguishes this from an ordinary Assignment by
// consulting the enclosing-function context stack (§4.2).
type FunctionReturn struct {
	Token        lexer.Token
	FunctionName string
	Value        Expression
}

func (*FunctionReturn) statementNode()        {}
func (r *FunctionReturn) TokenLiteral() string { return r.Token.Literal }
func (r *FunctionReturn) Pos() lexer.Position  { return r.Token.Pos }
func (r *FunctionReturn) String() string {
	return r.FunctionName + " := " + r.Value.String()
}
