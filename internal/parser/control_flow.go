package parser

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
)

func orEmpty(s ast.Statement) ast.Statement {
	if s == nil {
		return &ast.CompoundStatement{}
	}
	return s
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.curToken
	p.expect(lexer.IF)
	cond := p.parseExpression()
	p.expect(lexer.THEN)
	thenStmt := orEmpty(p.parseStatement())
	var elseStmt ast.Statement
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		elseStmt = orEmpty(p.parseStatement())
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Then: thenStmt, Else: elseStmt}
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.curToken
	p.expect(lexer.WHILE)
	cond := p.parseExpression()
	p.expect(lexer.DO)
	body := orEmpty(p.parseStatement())
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.curToken
	p.expect(lexer.FOR)
	loopVar := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	init := p.parseExpression()

	dir := ast.To
	switch p.curToken.Type {
	case lexer.TO:
		p.nextToken()
	case lexer.DOWNTO:
		dir = ast.DownTo
		p.nextToken()
	default:
		p.addErrorf(p.curToken.Pos, "syntax error at line %d, expected to or downto, got %q", p.curToken.Pos.Line, p.curToken.Literal)
	}

	limit := p.parseExpression()
	p.expect(lexer.DO)
	body := orEmpty(p.parseStatement())

	return &ast.ForStatement{Token: tok, LoopVar: loopVar, Init: init, Limit: limit, Direction: dir, Body: body}
}
