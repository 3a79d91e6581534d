package parser

import (
	"testing"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
)

func parseSource(src string) *Parser {
	l := lexer.New(src)
	return New(l, src)
}

func TestParseHelloWorld(t *testing.T) {
	src := `program Hello;
begin
  writeln('Hello, World!')
end.`

	p := parseSource(src)
	program := p.Parse()

	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}
	if program.Name != "Hello" {
		t.Fatalf("expected program name Hello, got %q", program.Name)
	}
	if program.Block.Compound == nil || len(program.Block.Compound.Statements) != 1 {
		t.Fatalf("expected one statement in the main body")
	}
	if _, ok := program.Block.Compound.Statements[0].(*ast.WritelnStatement); !ok {
		t.Fatalf("expected *ast.WritelnStatement, got %T", program.Block.Compound.Statements[0])
	}
}

func TestParseVarDeclAndAssignment(t *testing.T) {
	src := `program Sum;
var a, b: integer;
begin
  a := 2;
  b := 3;
  writeln(a + b)
end.`

	p := parseSource(src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}

	if len(program.Block.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.Block.Declarations))
	}
	decl, ok := program.Block.Declarations[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Block.Declarations[0])
	}
	if len(decl.Names) != 2 || decl.Names[0] != "a" || decl.Names[1] != "b" {
		t.Fatalf("unexpected declared names: %v", decl.Names)
	}

	stmts := program.Block.Compound.Statements
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.Assignment); !ok {
		t.Fatalf("expected *ast.Assignment, got %T", stmts[0])
	}
}

func TestParseForLoop(t *testing.T) {
	src := `program Loop;
var i: integer;
begin
  for i := 1 to 3 do write(i)
end.`

	p := parseSource(src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}

	forStmt, ok := program.Block.Compound.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", program.Block.Compound.Statements[0])
	}
	if forStmt.Direction != ast.To {
		t.Fatalf("expected direction To, got %v", forStmt.Direction)
	}
}

func TestParseArrayDeclAndAccess(t *testing.T) {
	src := `program Arr;
var a: array[1..3] of integer;
begin
  a[1] := 1;
  write(a[1])
end.`

	p := parseSource(src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}

	assign, ok := program.Block.Compound.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", program.Block.Compound.Statements[0])
	}
	if _, ok := assign.Left.(*ast.ArrayAccess); !ok {
		t.Fatalf("expected lvalue *ast.ArrayAccess, got %T", assign.Left)
	}
}

func TestParseSyntaxErrorRecorded(t *testing.T) {
	src := `program Bad;
begin
  writeln(
end.`

	p := parseSource(src)
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one parse error")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	src := `program WithFunc;
function Square(x: integer): integer;
begin
  Square := x * x
end;
begin
  writeln(Square(4))
end.`

	p := parseSource(src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}

	fn, ok := program.Block.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Block.Declarations[0])
	}
	if fn.Name != "Square" {
		t.Fatalf("expected function name Square, got %q", fn.Name)
	}

	ret, ok := fn.Body.Compound.Statements[0].(*ast.FunctionReturn)
	if !ok {
		t.Fatalf("expected *ast.FunctionReturn inside the function body, got %T", fn.Body.Compound.Statements[0])
	}
	_ = ret
}
