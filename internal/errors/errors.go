// Package errors formats compiler diagnostics with source context,
// line/column information, and a caret pointing at the offending span.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// Phase names a pipeline stage a diagnostic was raised in.
type Phase string

const (
	PhaseLex      Phase = "lex"
	PhaseParse    Phase = "parse"
	PhaseSemantic Phase = "semantic"
	PhaseGenerate Phase = "generate"
	PhaseRuntime  Phase = "runtime"
)

// CompilerError is a single diagnostic tied to a source position.
type CompilerError struct {
	Message string
	Source  string
	Phase   Phase
	Pos     lexer.Position
}

// NewCompilerError builds a CompilerError for the given phase and position.
func NewCompilerError(phase Phase, pos lexer.Position, message, source string) *CompilerError {
	return &CompilerError{Phase: phase, Pos: pos, Message: message, Source: source}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format()
}

// Format renders the error as "<phase> error at line L:C", then (when the
// source line is available) that line prefixed with its number and a caret
// under the column, then the message.
func (e *CompilerError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s error at line %d:%d\n", e.Phase, e.Pos.Line, e.Pos.Column))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of diagnostics, one per blank-line-separated
// block, with a summary header when there is more than one.
func FormatErrors(errs []*CompilerError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] ", i+1, len(errs)))
		sb.WriteString(err.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
