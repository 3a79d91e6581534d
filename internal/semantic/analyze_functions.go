package semantic

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/types"
)

// FlattenedParams is the exported form of flattenedParams, used by the
// generator to walk a callable's formals in declared order when emitting
// its prologue.
func FlattenedParams(sym *Symbol) []*Symbol {
	return flattenedParams(sym)
}

// flattenedParams expands a callable's Params (grouped multi-id, e.g.
// `a, b: integer`) into one formal Symbol per name, matching the flattening
// the spec requires when checking call-site argument lists.
func flattenedParams(sym *Symbol) []*Symbol {
	if sym.Locals == nil {
		return nil
	}
	var out []*Symbol
	for _, p := range sym.Params {
		for _, n := range p.Names {
			if local, ok := sym.Locals[n]; ok {
				out = append(out, local)
			}
		}
	}
	return out
}

// checkCallArguments validates argument count, type, and (for reference
// parameters) lvalue-ness against a callable's flattened formal list.
func (a *Analyzer) checkCallArguments(pos lexer.Position, name string, sym *Symbol, args []ast.Expression) {
	formals := flattenedParams(sym)
	if len(formals) != len(args) {
		a.addErrorf(pos, "%q expects %d argument(s), got %d", name, len(formals), len(args))
	}
	n := len(formals)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		argType := a.checkExpr(args[i])
		formal := formals[i]
		if formal.Kind == KindReferenceParameter && !isLvalue(args[i]) {
			a.addErrorf(args[i].Pos(), "argument %d to %q must be a variable (reference parameter)", i+1, name)
		}
		if argType != types.Unknown && argType != formal.Type && !charCompatible(argType, formal.Type) {
			a.addErrorf(args[i].Pos(), "argument %d to %q: expected %s, got %s", i+1, name, formal.Type, argType)
		}
	}
}

func isLvalue(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Variable, *ast.ArrayAccess, *ast.StringAccess:
		return true
	default:
		return false
	}
}
