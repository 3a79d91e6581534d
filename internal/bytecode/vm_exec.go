package bytecode

import "golang.org/x/text/cases"

// foldCase normalizes a mnemonic for dispatch: "Dispatch is
// case-insensitive on the opcode" (§4.5, §6).
var foldCase = cases.Fold()

// opHandler executes one instruction. It is responsible for its own
// program-counter advance — ordinary instructions call vm.advance();
// branches and call/return set vm.pc directly.
type opHandler func(vm *VM, rest string) error

func (vm *VM) advance() { vm.pc++ }

func (vm *VM) step(cur line) error {
	handler, ok := opTable[foldCase.String(cur.op)]
	if !ok {
		vm.running = false
		return vm.errorf("unknown opcode %q", cur.op)
	}
	return handler(vm, cur.rest)
}
