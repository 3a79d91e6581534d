package parser

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/semantic"
)

func (p *Parser) parseCompound() *ast.CompoundStatement {
	tok := p.curToken
	if !p.expect(lexer.BEGIN) {
		return &ast.CompoundStatement{Token: tok}
	}
	stmts := p.parseStatementList()
	p.expect(lexer.END)
	return &ast.CompoundStatement{Token: tok, Statements: stmts}
}

func (p *Parser) parseStatementList() []ast.Statement {
	var stmts []ast.Statement
	if s := p.parseStatement(); s != nil {
		stmts = append(stmts, s)
	}
	for p.curIs(lexer.SEMICOLON) {
		p.nextToken()
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// parseStatement implements `statement := compound | assignment | if |
// while | for | proc_call | func_call_stmt | halt | ε`. The ε case
// returns nil — callers filter nils out of statement lists so that a
// trailing `;` before `end` doesn't become a spurious empty statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.BEGIN:
		return p.parseCompound()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WRITELN:
		return p.parseWriteln()
	case lexer.WRITE:
		return p.parseWrite()
	case lexer.READLN:
		return p.parseReadln()
	case lexer.HALT:
		return p.parseHalt()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		return nil
	}
}

// parseIdentStatement parses an assignment, a procedure call, or a
// function call used for its side effects, all of which start with an
// identifier (§4.2 "proc_call" and "assignment").
func (p *Parser) parseIdentStatement() ast.Statement {
	tok := p.curToken
	name := tok.Literal

	if p.peekIs(lexer.LPAREN) {
		p.nextToken() // cur = '('
		args := p.parseParenArgList()
		return p.buildCallStatement(tok, name, args)
	}

	p.nextToken() // consume ident; cur is '[' or ':='
	var lv ast.Expression = &ast.Variable{Token: tok, Name: name}
	if p.curIs(lexer.LBRACK) {
		p.nextToken() // consume '['
		idx := p.parseExpression()
		p.expect(lexer.RBRACK)
		lv = &ast.ArrayAccess{Token: tok, Name: name, Index: idx}
	}

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	rhs := p.parseExpression()

	if _, isVar := lv.(*ast.Variable); isVar && len(p.funcStack) > 0 && p.funcStack[len(p.funcStack)-1] == name {
		return &ast.FunctionReturn{Token: tok, FunctionName: name, Value: rhs}
	}
	return &ast.Assignment{Token: tok, Left: lv, Right: rhs}
}

func (p *Parser) buildCallStatement(tok lexer.Token, name string, args []ast.Expression) ast.Statement {
	if sym, ok := p.symtab.Lookup(name); ok && sym.Kind == semantic.KindFunction {
		return &ast.FunctionCallStatement{Token: tok, Call: &ast.FunctionCallExpr{Token: tok, Name: name, Arguments: args}}
	}
	return &ast.ProcedureCallStatement{Token: tok, Name: name, Arguments: args}
}

func (p *Parser) parseWriteln() ast.Statement {
	tok := p.curToken
	p.expect(lexer.WRITELN)
	var args []ast.Expression
	if p.curIs(lexer.LPAREN) {
		args = p.parseParenArgList()
	}
	return &ast.WritelnStatement{Token: tok, Arguments: args}
}

func (p *Parser) parseWrite() ast.Statement {
	tok := p.curToken
	p.expect(lexer.WRITE)
	var args []ast.Expression
	if p.curIs(lexer.LPAREN) {
		args = p.parseParenArgList()
	}
	return &ast.WriteStatement{Token: tok, Arguments: args}
}

func (p *Parser) parseReadln() ast.Statement {
	tok := p.curToken
	p.expect(lexer.READLN)
	p.expect(lexer.LPAREN)
	var target ast.Expression
	if !p.curIs(lexer.RPAREN) {
		target = p.parseFactor()
	}
	p.expect(lexer.RPAREN)
	return &ast.ReadlnStatement{Token: tok, Target: target}
}

func (p *Parser) parseHalt() ast.Statement {
	tok := p.curToken
	p.expect(lexer.HALT)
	return &ast.HaltStatement{Token: tok}
}
