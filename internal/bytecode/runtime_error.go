package bytecode

import (
	"fmt"

	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
)

// errorf builds a runtime diagnostic pointing at the current listing
// line — the VM has no notion of the original Pascal source line, so
// the listing itself is the source context (§6: "must name the phase
// and include a source line number where available").
func (vm *VM) errorf(format string, args ...interface{}) error {
	pos := lexer.Position{Line: vm.pc + 1}
	return errors.NewCompilerError(errors.PhaseRuntime, pos, fmt.Sprintf(format, args...), vm.source)
}
