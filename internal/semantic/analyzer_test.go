package semantic

import (
	"testing"

	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/parser"
)

func analyzeSource(t *testing.T, src string) []string {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors())
	}

	a := NewAnalyzer(p.SymbolTable(), src)
	errs := a.Analyze(program)

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

func TestAnalyzeWellTypedProgram(t *testing.T) {
	src := `program Sum;
var a, b: integer;
begin
  a := 2;
  b := 3;
  writeln(a + b)
end.`

	if errs := analyzeSource(t, src); len(errs) != 0 {
		t.Fatalf("expected no semantic errors, got %v", errs)
	}
}

func TestAnalyzeRejectsDivWithRealOperands(t *testing.T) {
	src := `program Bad;
var a: real;
begin
  a := 1.0;
  writeln(a div 2)
end.`

	if errs := analyzeSource(t, src); len(errs) == 0 {
		t.Fatalf("expected a type error for div on real operands")
	}
}

func TestAnalyzeRejectsUndeclaredIdentifier(t *testing.T) {
	src := `program Bad;
begin
  writeln(x)
end.`

	if errs := analyzeSource(t, src); len(errs) == 0 {
		t.Fatalf("expected an undeclared-identifier error")
	}
}

func TestAnalyzeRejectsRelationalOperandMismatch(t *testing.T) {
	src := `program Bad;
var a: integer; s: string;
begin
  a := 1;
  s := 'x';
  if a > s then writeln('no') else writeln('no')
end.`

	if errs := analyzeSource(t, src); len(errs) == 0 {
		t.Fatalf("expected a type mismatch error comparing integer and string")
	}
}

func TestAnalyzeAllowsFunctionReturnAssignment(t *testing.T) {
	src := `program WithFunc;
function Square(x: integer): integer;
begin
  Square := x * x
end;
begin
  writeln(Square(4))
end.`

	if errs := analyzeSource(t, src); len(errs) != 0 {
		t.Fatalf("expected no semantic errors, got %v", errs)
	}
}

func TestAnalyzeRejectsNonIntegerForLoopVar(t *testing.T) {
	src := `program Bad;
var i: real;
begin
  for i := 1 to 3 do writeln(i)
end.`

	if errs := analyzeSource(t, src); len(errs) == 0 {
		t.Fatalf("expected an error for a non-integer for-loop control variable")
	}
}
