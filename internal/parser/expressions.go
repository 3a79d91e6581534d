package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/types"
)

func opSpelling(tt lexer.TokenType) string {
	switch tt {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.ASTERISK:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.DIV:
		return "div"
	case lexer.MOD:
		return "mod"
	case lexer.AND:
		return "and"
	case lexer.OR:
		return "or"
	case lexer.EQ:
		return "="
	case lexer.NOT_EQ:
		return "<>"
	case lexer.LESS:
		return "<"
	case lexer.LESS_EQ:
		return "<="
	case lexer.GREATER:
		return ">"
	case lexer.GREATER_EQ:
		return ">="
	default:
		return tt.String()
	}
}

func isRelOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.EQ, lexer.NOT_EQ, lexer.LESS, lexer.LESS_EQ, lexer.GREATER, lexer.GREATER_EQ:
		return true
	}
	return false
}

func isLvalueExpr(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Variable, *ast.ArrayAccess, *ast.StringAccess:
		return true
	default:
		return false
	}
}

// parseExpression implements `expression := simple (relop simple)? | lvalue
// ':' integer (':' integer)?`. The formatted_output alternative is only
// reachable when the already-parsed simple reduced to a bare lvalue —
// colon otherwise never appears at expression position.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseSimple()

	if p.curIs(lexer.COLON) && isLvalueExpr(left) {
		return p.parseFormattedOutput(left)
	}

	if isRelOp(p.curToken.Type) {
		op := p.curToken
		p.nextToken()
		right := p.parseSimple()
		return &ast.BinaryOp{Token: op, Left: left, Operator: opSpelling(op.Type), Right: right}
	}

	return left
}

func (p *Parser) parseFormattedOutput(value ast.Expression) ast.Expression {
	tok := p.curToken
	p.expect(lexer.COLON)
	width := p.parseIntLiteralValue()
	fo := &ast.FormattedOutput{Token: tok, Value: value, Width: width}
	if p.curIs(lexer.COLON) {
		p.nextToken()
		fo.Decimals = p.parseIntLiteralValue()
		fo.HasDec = true
	}
	return fo
}

// parseSimple implements `simple := term (addop term)*` with `addop` in
// `{+, -, or}`, plus a leading unary +/- sign.
func (p *Parser) parseSimple() ast.Expression {
	var left ast.Expression
	switch p.curToken.Type {
	case lexer.MINUS:
		tok := p.curToken
		p.nextToken()
		left = &ast.UnaryOp{Token: tok, Operator: "-", Operand: p.parseTerm()}
	case lexer.PLUS:
		p.nextToken()
		left = p.parseTerm()
	default:
		left = p.parseTerm()
	}

	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) || p.curIs(lexer.OR) {
		op := p.curToken
		p.nextToken()
		right := p.parseTerm()
		left = &ast.BinaryOp{Token: op, Left: left, Operator: opSpelling(op.Type), Right: right}
	}
	return left
}

// parseTerm implements `term := factor (mulop factor)*` with `mulop` in
// `{*, /, div, mod, and}`.
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.curIs(lexer.ASTERISK) || p.curIs(lexer.SLASH) || p.curIs(lexer.DIV) || p.curIs(lexer.MOD) || p.curIs(lexer.AND) {
		op := p.curToken
		p.nextToken()
		right := p.parseFactor()
		left = &ast.BinaryOp{Token: op, Left: left, Operator: opSpelling(op.Type), Right: right}
	}
	return left
}

// parseFactor implements `factor := lvalue | string_access | literal |
// '(' expression ')' | NOT factor | func_call`.
func (p *Parser) parseFactor() ast.Expression {
	switch p.curToken.Type {
	case lexer.NOT:
		tok := p.curToken
		p.nextToken()
		return &ast.UnaryOp{Token: tok, Operator: "not", Operand: p.parseFactor()}
	case lexer.LPAREN:
		p.nextToken()
		e := p.parseExpression()
		p.expect(lexer.RPAREN)
		return e
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.REAL:
		return p.parseRealLiteral()
	case lexer.STRING:
		return p.parseStringLiteral()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBooleanLiteral()
	case lexer.IDENT:
		return p.parseIdentFactor()
	default:
		tok := p.curToken
		p.addErrorf(tok.Pos, "syntax error at line %d, token %q", tok.Pos.Line, tok.Literal)
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: 0}
	}
}

// parseIdentFactor resolves the `name[` / `name(` / bare `name` ambiguity.
// `name[...]` is classified as StringAccess rather than ArrayAccess when
// the symbol table already knows name has type string — both productions
// share identical surface syntax (§3), so the parser's own name
// resolution (already needed for function_return disambiguation) is what
// tells them apart, exactly as it does for proc_call vs func_call_stmt.
func (p *Parser) parseIdentFactor() ast.Expression {
	tok := p.curToken
	name := tok.Literal

	if p.peekIs(lexer.LPAREN) {
		p.nextToken() // cur = '('
		args := p.parseParenArgList()
		if strings.EqualFold(name, "length") {
			var arg ast.Expression
			if len(args) > 0 {
				arg = args[0]
			}
			return &ast.LengthCall{Token: tok, Argument: arg}
		}
		return &ast.FunctionCallExpr{Token: tok, Name: name, Arguments: args}
	}

	p.nextToken() // consume ident
	if p.curIs(lexer.LBRACK) {
		p.nextToken() // consume '['
		idx := p.parseExpression()
		p.expect(lexer.RBRACK)
		if sym, ok := p.symtab.Lookup(name); ok && sym.Type == types.String {
			return &ast.StringAccess{Token: tok, Name: name, Index: idx}
		}
		return &ast.ArrayAccess{Token: tok, Name: name, Index: idx}
	}
	return &ast.Variable{Token: tok, Name: name}
}

// parseParenArgList parses `'(' expression_list? ')'` with curToken on the
// opening paren.
func (p *Parser) parseParenArgList() []ast.Expression {
	p.nextToken() // consume '('
	var args []ast.Expression
	if !p.curIs(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curToken
	v, _ := strconv.ParseInt(tok.Literal, 10, 64)
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	tok := p.curToken
	v, _ := strconv.ParseFloat(tok.Literal, 64)
	p.nextToken()
	return &ast.RealLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.curToken
	v := tok.Type == lexer.TRUE
	p.nextToken()
	return &ast.BooleanLiteral{Token: tok, Value: v}
}
