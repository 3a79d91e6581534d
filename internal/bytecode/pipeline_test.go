package bytecode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/pascalvm/internal/bytecode"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/parser"
	"github.com/cwbudde/pascalvm/internal/semantic"
)

// runProgram lexes, parses, analyzes, generates and executes src,
// feeding stdin to readln() and capturing everything written to stdout.
func runProgram(t *testing.T, src, stdin string) string {
	t.Helper()

	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	a := semantic.NewAnalyzer(p.SymbolTable(), src)
	if errs := a.Analyze(program); len(errs) != 0 {
		t.Fatalf("semantic errors: %v", errs)
	}

	gen := bytecode.NewGenerator(p.SymbolTable(), src)
	listing, errs := gen.Generate(program)
	if len(errs) != 0 {
		t.Fatalf("generator errors: %v", errs)
	}

	var out bytes.Buffer
	vm, err := bytecode.NewVM(listing, strings.NewReader(stdin), &out)
	if err != nil {
		t.Fatalf("failed to load listing: %v\nlisting:\n%s", err, listing)
	}
	if err := vm.Run(); err != nil {
		t.Fatalf("vm run failed: %v\nlisting:\n%s", err, listing)
	}
	return out.String()
}

func TestScenarioHelloWorld(t *testing.T) {
	src := `program Hello;
begin
  writeln('Hello, World!')
end.`
	got := runProgram(t, src, "")
	want := "Hello, World! \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioSum(t *testing.T) {
	src := `program Sum;
var a,b:integer;
begin
  a:=2; b:=3; writeln(a+b)
end.`
	got := runProgram(t, src, "")
	want := "5 \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioForLoopWrite(t *testing.T) {
	src := `program Loop;
var i:integer;
begin
  for i:=1 to 3 do write(i)
end.`
	got := runProgram(t, src, "")
	want := "1 2 3 "
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioIfElse(t *testing.T) {
	src := `program Cond;
var x:integer;
begin
  x:=10;
  if x>5 then writeln('big') else writeln('small')
end.`
	got := runProgram(t, src, "")
	want := "big \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioArrayReadWrite(t *testing.T) {
	src := `program Arr;
var a:array[1..3] of integer; i:integer;
begin
  for i:=1 to 3 do a[i]:=i*i;
  for i:=1 to 3 do write(a[i])
end.`
	got := runProgram(t, src, "")
	want := "1 4 9 "
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioReadlnWriteln(t *testing.T) {
	src := `program Echo;
var s:string;
begin
  readln(s); writeln(s)
end.`
	got := runProgram(t, src, "ping\n")
	want := "ping \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Scenarios 1, 2 and 4 must also pass with arbitrarily-capitalized
// keywords (§8).
func TestScenariosCaseInsensitiveKeywords(t *testing.T) {
	src := `PROGRAM Hello;
BEGIN
  WriteLn('Hello, World!')
END.`
	got := runProgram(t, src, "")
	want := "Hello, World! \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	src2 := `Program Sum;
Var a,b:Integer;
Begin
  a:=2; b:=3; WriteLn(a+b)
End.`
	got2 := runProgram(t, src2, "")
	want2 := "5 \n"
	if got2 != want2 {
		t.Fatalf("got %q, want %q", got2, want2)
	}

	src3 := `PrOgRaM Cond;
VAR x:INTEGER;
BEGIN
  x:=10;
  IF x>5 THEN WriteLn('big') ELSE WriteLn('small')
END.`
	got3 := runProgram(t, src3, "")
	want3 := "big \n"
	if got3 != want3 {
		t.Fatalf("got %q, want %q", got3, want3)
	}
}

func TestFunctionCallWithReferenceParameter(t *testing.T) {
	src := `program Swap;
var a, b: integer;

procedure DoSwap(var x, y: integer);
var tmp: integer;
begin
  tmp := x;
  x := y;
  y := tmp
end;

begin
  a := 1;
  b := 2;
  DoSwap(a, b);
  writeln(a);
  writeln(b)
end.`
	got := runProgram(t, src, "")
	want := "2 \n1 \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLabelsAreUniqueAndResolvable(t *testing.T) {
	src := `program Loop;
var i:integer;
begin
  for i:=1 to 3 do write(i)
end.`

	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.Parse()
	a := semantic.NewAnalyzer(p.SymbolTable(), src)
	a.Analyze(program)
	gen := bytecode.NewGenerator(p.SymbolTable(), src)
	listing, errs := gen.Generate(program)
	if len(errs) != 0 {
		t.Fatalf("generator errors: %v", errs)
	}

	seen := map[string]bool{}
	for _, line := range strings.Split(listing, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasSuffix(trimmed, ":") && trimmed != "" {
			name := strings.TrimSuffix(trimmed, ":")
			if seen[name] {
				t.Fatalf("label %q defined more than once", name)
			}
			seen[name] = true
		}
	}
	if len(seen) == 0 {
		t.Fatalf("expected at least one label in the listing")
	}
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && (fields[0] == "jump" || fields[0] == "jz" || fields[0] == "jnz" || fields[0] == "pusha") {
			if !seen[fields[1]] {
				t.Fatalf("branch target %q has no label", fields[1])
			}
		}
	}
}

func TestVMDeterminism(t *testing.T) {
	src := `program Arr;
var a:array[1..3] of integer; i:integer;
begin
  for i:=1 to 3 do a[i]:=i*i;
  for i:=1 to 3 do write(a[i])
end.`
	first := runProgram(t, src, "")
	second := runProgram(t, src, "")
	if first != second {
		t.Fatalf("non-deterministic output: %q vs %q", first, second)
	}
}
