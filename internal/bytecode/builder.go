// Package bytecode holds the instruction set shared by the generator and
// the virtual machine: the generator emits a textual listing in this
// format, and the VM loads and interprets exactly that format (§4.4/§4.5).
package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates listing lines and hands out unique label names.
type Builder struct {
	lines    []string
	counters map[string]int
}

// NewBuilder creates an empty listing builder.
func NewBuilder() *Builder {
	return &Builder{counters: make(map[string]int)}
}

// Emit appends one mnemonic line, e.g. b.Emit("pushi %d", 3).
func (b *Builder) Emit(format string, args ...interface{}) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// EmitLabel appends a `name:` label line.
func (b *Builder) EmitLabel(name string) {
	b.lines = append(b.lines, name+":")
}

// NewLabel returns a fresh label name built from a human-readable prefix
// and a monotonic per-prefix counter (`ELSE0`, `ELSE1`, ...), per §4.4.
func (b *Builder) NewLabel(prefix string) string {
	n := b.counters[prefix]
	b.counters[prefix] = n + 1
	return prefix + strconv.Itoa(n)
}

// Lines returns the accumulated listing lines, in emission order.
func (b *Builder) Lines() []string {
	return b.lines
}

// String renders the listing as newline-joined text.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}
