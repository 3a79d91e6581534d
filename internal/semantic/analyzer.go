package semantic

import (
	"fmt"

	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/types"
)

// Analyzer performs the single post-parse walk described in spec §4.3: it
// resolves names against the symbol table the parser already populated,
// assigns a resolved type to every expression node, and checks every typing
// rule the language defines. It never allocates VM addresses — that is the
// generator's job.
type Analyzer struct {
	symtab      *SymbolTable
	source      string
	errs        []*errors.CompilerError
	currentFunc *Symbol // non-nil while walking a function body
	loopVars    map[string]bool
}

// NewAnalyzer creates an Analyzer over a symbol table already seeded by
// the parser (global scope plus every callable's captured Locals map).
func NewAnalyzer(symtab *SymbolTable, source string) *Analyzer {
	return &Analyzer{symtab: symtab, source: source, loopVars: make(map[string]bool)}
}

// Errors returns every diagnostic collected during Analyze.
func (a *Analyzer) Errors() []*errors.CompilerError {
	return a.errs
}

// Analyze walks the program. It returns the collected diagnostics;
// analysis succeeded iff the returned slice is empty.
func (a *Analyzer) Analyze(prog *ast.Program) []*errors.CompilerError {
	if prog.Block != nil {
		a.walkBlock(prog.Block)
	}
	return a.errs
}

func (a *Analyzer) addErrorf(pos lexer.Position, format string, args ...interface{}) {
	a.errs = append(a.errs, errors.NewCompilerError(errors.PhaseSemantic, pos, fmt.Sprintf(format, args...), a.source))
}

func (a *Analyzer) walkBlock(b *ast.Block) {
	for _, d := range b.Declarations {
		a.walkDeclaration(d)
	}
	if b.Compound != nil {
		a.checkStatement(b.Compound)
	}
}

func (a *Analyzer) walkDeclaration(stmt ast.Statement) {
	switch d := stmt.(type) {
	case *ast.VarDecl:
		a.checkVarDecl(d)
	case *ast.FunctionDecl:
		a.analyzeFunction(d)
	case *ast.ProcedureDecl:
		a.analyzeProcedure(d)
	}
}

func (a *Analyzer) checkVarDecl(v *ast.VarDecl) {
	if arr, ok := v.Type.(*ast.ArrayTypeNode); ok {
		if arr.Upper < arr.Lower {
			a.addErrorf(v.Pos(), "array bounds %d..%d are empty: upper must be >= lower", arr.Lower, arr.Upper)
		}
	}
}

func (a *Analyzer) analyzeFunction(f *ast.FunctionDecl) {
	sym, ok := a.symtab.Lookup(f.Name)
	if !ok || sym.Locals == nil {
		a.addErrorf(f.Pos(), "internal: function %q has no captured scope", f.Name)
		return
	}
	a.symtab.PushExistingScope(f.Name, sym.Locals)
	prevFunc := a.currentFunc
	a.currentFunc = sym
	a.walkBlock(f.Body)
	a.currentFunc = prevFunc
	a.symtab.ExitScope()

	if f.Body.Compound == nil || !containsReturn(f.Body.Compound, f.Name) {
		a.addErrorf(f.Pos(), "function %q has no reachable assignment to its result", f.Name)
	}
}

func (a *Analyzer) analyzeProcedure(p *ast.ProcedureDecl) {
	sym, ok := a.symtab.Lookup(p.Name)
	if !ok || sym.Locals == nil {
		a.addErrorf(p.Pos(), "internal: procedure %q has no captured scope", p.Name)
		return
	}
	a.symtab.PushExistingScope(p.Name, sym.Locals)
	prevFunc := a.currentFunc
	a.currentFunc = sym
	a.walkBlock(p.Body)
	a.currentFunc = prevFunc
	a.symtab.ExitScope()
}

// containsReturn reports whether a function_return targeting name occurs
// anywhere reachable in stmt, without descending into nested callables
// (their returns target their own name, not the enclosing function's).
func containsReturn(stmt ast.Statement, name string) bool {
	switch s := stmt.(type) {
	case *ast.FunctionReturn:
		return s.FunctionName == name
	case *ast.CompoundStatement:
		for _, inner := range s.Statements {
			if containsReturn(inner, name) {
				return true
			}
		}
	case *ast.IfStatement:
		if containsReturn(s.Then, name) {
			return true
		}
		if s.Else != nil && containsReturn(s.Else, name) {
			return true
		}
	case *ast.WhileStatement:
		return containsReturn(s.Body, name)
	case *ast.ForStatement:
		return containsReturn(s.Body, name)
	}
	return false
}

func charCompatible(a, b types.Type) bool {
	return (a == types.Char && b == types.String) || (a == types.String && b == types.Char)
}
