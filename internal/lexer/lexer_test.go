package lexer

import "testing"

func TestNextTokenBasicProgram(t *testing.T) {
	input := `program Sum;
var a, b: integer;
begin
  a := 2;
  b := 3;
  writeln(a + b)
end.`

	expected := []struct {
		Type    TokenType
		Literal string
	}{
		{PROGRAM, "program"},
		{IDENT, "Sum"},
		{SEMICOLON, ";"},
		{VAR, "var"},
		{IDENT, "a"},
		{COMMA, ","},
		{IDENT, "b"},
		{COLON, ":"},
		{INTEGER, "integer"},
		{SEMICOLON, ";"},
		{BEGIN, "begin"},
		{IDENT, "a"},
		{ASSIGN, ":="},
		{INT, "2"},
		{SEMICOLON, ";"},
		{IDENT, "b"},
		{ASSIGN, ":="},
		{INT, "3"},
		{SEMICOLON, ";"},
		{WRITELN, "writeln"},
		{LPAREN, "("},
		{IDENT, "a"},
		{PLUS, "+"},
		{IDENT, "b"},
		{RPAREN, ")"},
		{END, "end"},
		{DOT, "."},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range expected {
		tok := l.NextToken()
		if tok.Type != tt.Type {
			t.Fatalf("token %d: expected type %v, got %v (literal %q)", i, tt.Type, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.Literal {
			t.Fatalf("token %d: expected literal %q, got %q", i, tt.Literal, tok.Literal)
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	for _, src := range []string{"PROGRAM", "Program", "pRoGrAm", "program"} {
		l := New(src)
		tok := l.NextToken()
		if tok.Type != PROGRAM {
			t.Errorf("input %q: expected PROGRAM, got %v", src, tok.Type)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`'hello world'`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	if tok.Literal != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", tok.Literal)
	}
}

func TestRealLiteral(t *testing.T) {
	l := New(`3.14`)
	tok := l.NextToken()
	if tok.Type != REAL {
		t.Fatalf("expected REAL, got %v", tok.Type)
	}
	if tok.Literal != "3.14" {
		t.Fatalf("expected %q, got %q", "3.14", tok.Literal)
	}
}

func TestOperators(t *testing.T) {
	input := ":= = <> < <= > >= .."
	expected := []TokenType{ASSIGN, EQ, NOT_EQ, LESS, LESS_EQ, GREATER, GREATER_EQ, DOTDOT, EOF}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %v, got %v (literal %q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New(`@`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	l := New("a\nb")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 {
		t.Errorf("expected first token on line 1, got %d", first.Pos.Line)
	}
	if second.Pos.Line != 2 {
		t.Errorf("expected second token on line 2, got %d", second.Pos.Line)
	}
	if first.Pos.Column != 1 {
		t.Errorf("expected first token at column 1, got %d", first.Pos.Column)
	}
	if second.Pos.Column != 1 {
		t.Errorf("expected second token at column 1, got %d", second.Pos.Column)
	}
}
