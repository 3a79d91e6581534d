package parser

import (
	"strconv"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/semantic"
	"github.com/cwbudde/pascalvm/internal/types"
)

func (p *Parser) parseIdList() []string {
	var names []string
	names = append(names, p.curToken.Literal)
	p.expect(lexer.IDENT)
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		names = append(names, p.curToken.Literal)
		p.expect(lexer.IDENT)
	}
	return names
}

func scalarTypeFor(tt lexer.TokenType) types.Type {
	switch tt {
	case lexer.INTEGER:
		return types.Integer
	case lexer.REAL_TYPE:
		return types.Real
	case lexer.BOOLEAN_TYPE:
		return types.Boolean
	case lexer.STRING_TYPE:
		return types.String
	case lexer.CHAR_TYPE:
		return types.Char
	default:
		return types.Unknown
	}
}

func (p *Parser) parseType() ast.Node {
	switch p.curToken.Type {
	case lexer.INTEGER, lexer.REAL_TYPE, lexer.BOOLEAN_TYPE, lexer.STRING_TYPE, lexer.CHAR_TYPE:
		tok := p.curToken
		t := scalarTypeFor(tok.Type)
		p.nextToken()
		return &ast.TypeNode{Token: tok, Name: t}
	case lexer.ARRAY:
		return p.parseArrayType()
	default:
		p.addErrorf(p.curToken.Pos, "syntax error at line %d, expected a type, got %q", p.curToken.Pos.Line, p.curToken.Literal)
		return &ast.TypeNode{Token: p.curToken, Name: types.Unknown}
	}
}

func (p *Parser) parseIntLiteralValue() int {
	lit := p.curToken.Literal
	v, _ := strconv.Atoi(lit)
	p.expect(lexer.INT)
	return v
}

func (p *Parser) parseArrayType() *ast.ArrayTypeNode {
	tok := p.curToken
	p.expect(lexer.ARRAY)
	p.expect(lexer.LBRACK)
	lower := p.parseIntLiteralValue()
	p.expect(lexer.DOTDOT)
	upper := p.parseIntLiteralValue()
	p.expect(lexer.RBRACK)
	p.expect(lexer.OF)
	elemNode := p.parseType()
	elem, ok := elemNode.(*ast.TypeNode)
	if !ok {
		elem = &ast.TypeNode{Token: tok, Name: types.Unknown}
	}
	return &ast.ArrayTypeNode{Token: tok, Lower: lower, Upper: upper, Element: elem}
}

func (p *Parser) declareVars(vd *ast.VarDecl) {
	t, arrInfo := semantic.ResolveTypeNode(vd.Type)
	for _, n := range vd.Names {
		sym := &semantic.Symbol{Name: n, Type: t, Kind: semantic.KindVariable, ArrayInfo: arrInfo}
		if t == types.Array {
			sym.Size = arrInfo.Size()
		}
		if err := p.symtab.AddSymbol(sym); err != nil {
			p.addErrorf(vd.Pos(), "%s", err)
		}
	}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	startTok := p.curToken
	names := p.parseIdList()
	if !p.expect(lexer.COLON) {
		return nil
	}
	typeNode := p.parseType()
	p.expect(lexer.SEMICOLON)
	vd := &ast.VarDecl{Token: startTok, Names: names, Type: typeNode}
	p.declareVars(vd)
	return vd
}

func (p *Parser) parseVarDeclGroup() []ast.Statement {
	p.expect(lexer.VAR)
	var decls []ast.Statement
	for p.curIs(lexer.IDENT) {
		if d := p.parseVarDecl(); d != nil {
			decls = append(decls, d)
		}
	}
	return decls
}

func (p *Parser) parseParam() *ast.Param {
	tok := p.curToken
	byRef := false
	if p.curIs(lexer.VAR) {
		byRef = true
		p.nextToken()
	}
	names := p.parseIdList()
	p.expect(lexer.COLON)
	typeNode := p.parseType()
	return &ast.Param{Token: tok, Names: names, Type: typeNode, ByRef: byRef}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.curIs(lexer.RPAREN) {
		return params
	}
	params = append(params, p.parseParam())
	for p.curIs(lexer.SEMICOLON) {
		p.nextToken()
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseOptionalParams() []*ast.Param {
	if !p.curIs(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.curToken
	p.expect(lexer.FUNCTION)
	name := p.curToken.Literal
	namePos := p.curToken.Pos
	p.expect(lexer.IDENT)

	params := p.parseOptionalParams()

	p.expect(lexer.COLON)
	retTypeNode := p.parseType()
	retType, ok := retTypeNode.(*ast.TypeNode)
	if !ok {
		retType = &ast.TypeNode{Token: tok, Name: types.Unknown}
	}
	p.expect(lexer.SEMICOLON)

	sym := &semantic.Symbol{Name: name, Kind: semantic.KindFunction, ReturnType: retType.Name, Params: params}
	if err := p.symtab.AddCallable(sym); err != nil {
		p.addErrorf(namePos, "%s", err)
	}

	p.funcStack = append(p.funcStack, name)
	body := p.parseBlock()
	p.funcStack = p.funcStack[:len(p.funcStack)-1]
	p.symtab.ExitScope()

	p.expect(lexer.SEMICOLON)

	return &ast.FunctionDecl{Token: tok, Name: name, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseProcedureDecl() *ast.ProcedureDecl {
	tok := p.curToken
	p.expect(lexer.PROCEDURE)
	name := p.curToken.Literal
	namePos := p.curToken.Pos
	p.expect(lexer.IDENT)

	params := p.parseOptionalParams()

	p.expect(lexer.SEMICOLON)

	sym := &semantic.Symbol{Name: name, Kind: semantic.KindProcedure, Params: params}
	if err := p.symtab.AddCallable(sym); err != nil {
		p.addErrorf(namePos, "%s", err)
	}

	p.funcStack = append(p.funcStack, "")
	body := p.parseBlock()
	p.funcStack = p.funcStack[:len(p.funcStack)-1]
	p.symtab.ExitScope()

	p.expect(lexer.SEMICOLON)

	return &ast.ProcedureDecl{Token: tok, Name: name, Params: params, Body: body}
}
