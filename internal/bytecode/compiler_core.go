package bytecode

import (
	"fmt"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/semantic"
)

// routine is a function or procedure queued for body generation once
// address allocation for the whole program has finished.
type routine struct {
	label      string
	sym        *semantic.Symbol
	body       *ast.Block
	isFunction bool
}

// Generator walks a type-checked AST and emits a textual VM listing
// (§4.4). It assumes the symbol table it is given was already populated
// by the parser and annotated by the semantic analyzer — it never
// resolves names on its own behalf beyond looking up addresses.
type Generator struct {
	symtab   *semantic.SymbolTable
	source   string
	b        *Builder
	errs     []*errors.CompilerError
	nextAddr int
	routines []routine
	curFunc  *semantic.Symbol // non-nil while generating a function's own body

	discardAddr int
	discardSet  bool
}

// discardCell returns the address of a scratch global cell used to sink
// the result of a function called for its side effects only, or a bare
// readln() with no target — the instruction set has no bare stack-pop,
// so a throwaway storeg stands in for one.
func (g *Generator) discardCell() int {
	if !g.discardSet {
		g.discardAddr = g.freshCell()
		g.discardSet = true
	}
	return g.discardAddr
}

// NewGenerator creates a Generator over a symbol table already walked by
// the parser and the analyzer.
func NewGenerator(symtab *semantic.SymbolTable, source string) *Generator {
	return &Generator{symtab: symtab, source: source, b: NewBuilder()}
}

// Errors returns every diagnostic raised while generating code. A
// non-empty result should never happen against an AST that already
// passed analysis — it exists to surface internal-consistency bugs
// (e.g. a symbol the analyzer resolved but the generator can't find)
// as a diagnostic rather than a panic.
func (g *Generator) Errors() []*errors.CompilerError {
	return g.errs
}

func (g *Generator) addErrorf(pos lexer.Position, format string, args ...interface{}) {
	g.errs = append(g.errs, errors.NewCompilerError(errors.PhaseGenerate, pos, fmt.Sprintf(format, args...), g.source))
}

// Generate emits the full listing: prelude, start/stop-bracketed main
// body, then one label block per routine, in that order (§4.4).
func (g *Generator) Generate(prog *ast.Program) (string, []*errors.CompilerError) {
	if prog == nil || prog.Block == nil {
		return "", g.errs
	}

	g.allocateDeclarations(prog.Block.Declarations)

	g.b.Emit(OpStart)
	if prog.Block.Compound != nil {
		g.genStatement(prog.Block.Compound)
	}
	g.b.Emit(OpStop)

	for _, r := range g.routines {
		g.genRoutine(r)
	}

	return g.b.String(), g.errs
}

// allocateDeclarations assigns a global address to every variable,
// parameter, and function-return slot it finds, emitting the prelude
// zero-init instructions as it goes, and queues every callable for body
// generation after the main listing section.
func (g *Generator) allocateDeclarations(decls []ast.Statement) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.VarDecl:
			g.allocateVarDecl(n)
		case *ast.FunctionDecl:
			sym, ok := g.symtab.Lookup(n.Name)
			if !ok || sym.Locals == nil {
				g.addErrorf(n.Pos(), "internal: function %q has no captured scope at generation time", n.Name)
				continue
			}
			g.allocateRoutine(sym, true, n.Body)
		case *ast.ProcedureDecl:
			sym, ok := g.symtab.Lookup(n.Name)
			if !ok || sym.Locals == nil {
				g.addErrorf(n.Pos(), "internal: procedure %q has no captured scope at generation time", n.Name)
				continue
			}
			g.allocateRoutine(sym, false, n.Body)
		}
	}
}

func (g *Generator) allocateVarDecl(vd *ast.VarDecl) {
	for _, name := range vd.Names {
		sym, ok := g.symtab.Lookup(name)
		if !ok {
			g.addErrorf(vd.Pos(), "internal: variable %q not found at generation time", name)
			continue
		}
		g.allocateSymbol(sym)
	}
}

func (g *Generator) allocateSymbol(sym *semantic.Symbol) {
	if sym.AddressSet {
		return
	}
	if sym.IsArray() {
		g.allocArray(sym)
		return
	}
	g.allocScalar(sym)
}

func (g *Generator) allocScalar(sym *semantic.Symbol) {
	sym.Address = g.nextAddr
	sym.AddressSet = true
	g.nextAddr++
	g.b.Emit("%s 0", OpPushI)
	g.b.Emit("%s %d", OpStoreG, sym.Address)
}

func (g *Generator) allocArray(sym *semantic.Symbol) {
	sym.Address = g.nextAddr
	sym.AddressSet = true
	n := sym.ArrayInfo.Size()
	for i := 0; i < n; i++ {
		g.b.Emit("%s 0", OpPushI)
		g.b.Emit("%s %d", OpStoreG, g.nextAddr)
		g.nextAddr++
	}
}

// freshCell allocates an extra global cell not tied to any declared
// symbol (used for a for-loop's materialized limit).
func (g *Generator) freshCell() int {
	a := g.nextAddr
	g.nextAddr++
	g.b.Emit("%s 0", OpPushI)
	g.b.Emit("%s %d", OpStoreG, a)
	return a
}

// allocateRoutine assigns addresses to a callable's parameters and (for
// functions) its implicit return slot, recurses into its own local
// declarations, and queues it for body generation.
func (g *Generator) allocateRoutine(sym *semantic.Symbol, isFunction bool, body *ast.Block) {
	label := g.b.NewLabel("FUNC")
	g.routines = append(g.routines, routine{label: label, sym: sym, body: body, isFunction: isFunction})

	g.symtab.PushExistingScope(sym.Name, sym.Locals)
	defer g.symtab.ExitScope()

	for _, formal := range semantic.FlattenedParams(sym) {
		g.allocateSymbol(formal)
	}
	if isFunction {
		if retSym, ok := sym.Locals[sym.Name]; ok {
			g.allocateSymbol(retSym)
		}
	}

	g.allocateDeclarations(body.Declarations)
}

// routineLabel returns the label a callable's body was emitted under.
func (g *Generator) routineLabel(name string) (string, bool) {
	for _, r := range g.routines {
		if r.sym.Name == name {
			return r.label, true
		}
	}
	return "", false
}

// genRoutine emits one routine's label block: prologue (pop arguments
// in reverse declared order into their cells), the body, and an
// epilogue that pushes the result cell (functions only) before
// returning (§4.4).
func (g *Generator) genRoutine(r routine) {
	g.b.EmitLabel(r.label)

	g.symtab.PushExistingScope(r.sym.Name, r.sym.Locals)
	prevFunc := g.curFunc
	g.curFunc = r.sym

	formals := semantic.FlattenedParams(r.sym)
	for i := len(formals) - 1; i >= 0; i-- {
		g.b.Emit("%s %d", OpStoreG, formals[i].Address)
	}

	g.genStatement(r.body.Compound)

	if r.isFunction {
		if retSym, ok := r.sym.Locals[r.sym.Name]; ok {
			g.b.Emit("%s %d", OpPushG, retSym.Address)
		}
	}
	g.b.Emit(OpReturn)

	g.curFunc = prevFunc
	g.symtab.ExitScope()
}
