// Package parser implements a top-down recursive-descent parser for the
// Pascal subset grammar in spec §4.2. Unlike a Pratt parser it follows the
// BNF directly, since the grammar's relational operators are
// non-associative and do not fit a precedence-climbing shape cleanly.
package parser

import (
	"fmt"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/semantic"
)

// Parser turns a token stream into an AST, seeding the symbol table with
// every declaration as it is reduced (§4.2 "Parsing side effects").
type Parser struct {
	l      *lexer.Lexer
	symtab *semantic.SymbolTable
	source string

	curToken  lexer.Token
	peekToken lexer.Token

	errs []*errors.CompilerError

	// funcStack names the functions whose body is currently being parsed,
	// innermost last. It drives the function_return disambiguation: an
	// assignment whose lvalue is a bare identifier matching the top of
	// this stack becomes a FunctionReturn node instead of an Assignment.
	funcStack []string
}

// New creates a Parser over l, with a fresh global-scope symbol table.
func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{l: l, source: source, symtab: semantic.NewSymbolTable()}
	p.nextToken()
	p.nextToken()
	return p
}

// SymbolTable returns the table this parser seeded; the analyzer and
// generator both continue using the very same instance.
func (p *Parser) SymbolTable() *semantic.SymbolTable {
	return p.symtab
}

// Errors returns every syntax diagnostic collected so far.
func (p *Parser) Errors() []*errors.CompilerError {
	return p.errs
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) addErrorf(pos lexer.Position, format string, args ...interface{}) {
	p.errs = append(p.errs, errors.NewCompilerError(errors.PhaseParse, pos, fmt.Sprintf(format, args...), p.source))
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekToken.Type == tt }

// expect consumes curToken if it matches tt, else records a syntax error
// and leaves the cursor where it is (no panic-mode resync, per §4.2).
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.addErrorf(p.curToken.Pos, "syntax error at line %d, token %q", p.curToken.Pos.Line, p.curToken.Literal)
	return false
}

// Parse runs the full grammar from `program` and returns the resulting
// AST. A parse is successful iff Errors() is empty and the result is
// non-nil.
func (p *Parser) Parse() *ast.Program {
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	tok := p.curToken
	if !p.expect(lexer.PROGRAM) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expect(lexer.IDENT) {
		return nil
	}
	p.expect(lexer.SEMICOLON)

	block := p.parseBlock()

	p.expect(lexer.DOT)

	return &ast.Program{Token: tok, Name: name, Block: block}
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.curToken
	decls := p.parseDeclarations()
	compound := p.parseCompound()
	return &ast.Block{Token: tok, Declarations: decls, Compound: compound}
}

func (p *Parser) parseDeclarations() []ast.Statement {
	var decls []ast.Statement
	for {
		switch p.curToken.Type {
		case lexer.VAR:
			decls = append(decls, p.parseVarDeclGroup()...)
		case lexer.FUNCTION:
			if d := p.parseFunctionDecl(); d != nil {
				decls = append(decls, d)
			}
		case lexer.PROCEDURE:
			if d := p.parseProcedureDecl(); d != nil {
				decls = append(decls, d)
			}
		default:
			return decls
		}
	}
}
