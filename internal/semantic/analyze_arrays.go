package semantic

import (
	"github.com/cwbudde/pascalvm/internal/ast"
	"github.com/cwbudde/pascalvm/internal/types"
)

// ResolveTypeNode turns a parsed type annotation (*ast.TypeNode or
// *ast.ArrayTypeNode) into a scalar type tag plus, for arrays, bounds and
// element type. It is shared by the parser (symbol seeding), the analyzer
// (declaration checks) and the generator (address allocation) so the three
// never disagree about what `array[1..3] of integer` means.
func ResolveTypeNode(node ast.Node) (types.Type, types.ArrayInfo) {
	switch n := node.(type) {
	case *ast.TypeNode:
		return n.Name, types.ArrayInfo{}
	case *ast.ArrayTypeNode:
		return types.Array, types.ArrayInfo{
			Lower:       n.Lower,
			Upper:       n.Upper,
			ElementType: n.Element.Name,
		}
	default:
		return types.Unknown, types.ArrayInfo{}
	}
}
