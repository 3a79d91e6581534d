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

func TestDisassemblerPrintsEveryLoadedLine(t *testing.T) {
	src := `program Loop;
var i:integer;
begin
  for i:=1 to 3 do write(i)
end.`

	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.Parse()
	a := semantic.NewAnalyzer(p.SymbolTable(), src)
	if errs := a.Analyze(program); len(errs) != 0 {
		t.Fatalf("semantic errors: %v", errs)
	}
	gen := bytecode.NewGenerator(p.SymbolTable(), src)
	listing, errs := gen.Generate(program)
	if len(errs) != 0 {
		t.Fatalf("generator errors: %v", errs)
	}

	vm, err := bytecode.NewVM(listing, strings.NewReader(""), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("failed to load listing: %v", err)
	}

	var out bytes.Buffer
	bytecode.NewDisassembler(vm, &out).Disassemble()

	got := out.String()
	wantLines := len(strings.Split(strings.TrimRight(listing, "\n"), "\n"))
	gotLines := strings.Count(got, "\n") - 1 // minus the summary header's blank line
	if gotLines < wantLines {
		t.Fatalf("disassembly has fewer lines (%d) than the loaded listing (%d):\n%s", gotLines, wantLines, got)
	}
	if !strings.Contains(got, "listing:") {
		t.Fatalf("expected a summary header, got:\n%s", got)
	}
}
