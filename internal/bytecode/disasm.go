package bytecode

import (
	"fmt"
	"io"
)

// Disassembler prints a loaded VM's listing with line numbers, mirroring
// each entry's resolved label (if any) — useful for inspecting what a
// generator run actually produced without re-deriving offsets by hand.
type Disassembler struct {
	writer io.Writer
	vm     *VM
}

// NewDisassembler creates a disassembler over an already-loaded VM.
func NewDisassembler(vm *VM, writer io.Writer) *Disassembler {
	return &Disassembler{writer: writer, vm: vm}
}

// Disassemble prints one numbered line per loaded instruction.
func (d *Disassembler) Disassemble() {
	fmt.Fprintf(d.writer, "listing: %d line(s), %d label(s)\n\n", len(d.vm.lines), len(d.vm.labels))
	for i, ln := range d.vm.lines {
		d.DisassembleInstruction(i, ln)
	}
}

// DisassembleInstruction prints one instruction at the given offset.
func (d *Disassembler) DisassembleInstruction(offset int, ln line) {
	if ln.label {
		fmt.Fprintf(d.writer, "%04d  %s:\n", offset, ln.op)
		return
	}
	if ln.rest == "" {
		fmt.Fprintf(d.writer, "%04d      %s\n", offset, ln.op)
		return
	}
	fmt.Fprintf(d.writer, "%04d      %-10s %s\n", offset, ln.op, ln.rest)
}
