package ast

import (
	"strings"

	"github.com/cwbudde/pascalvm/internal/lexer"
)

// ProcedureCallStatement is `id(args)` used as a statement.
type ProcedureCallStatement struct {
	Token     lexer.Token
	Name      string
	Arguments []Expression
}

func (*ProcedureCallStatement) statementNode()        {}
func (c *ProcedureCallStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ProcedureCallStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *ProcedureCallStatement) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// FunctionCallStatement is a function called for its side effects only,
// with its result value discarded.
type FunctionCallStatement struct {
	Token lexer.Token
	Call  *FunctionCallExpr
}

func (*FunctionCallStatement) statementNode()        {}
func (c *FunctionCallStatement) TokenLiteral() string { return c.Token.Literal }
func (c *FunctionCallStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *FunctionCallStatement) String() string       { return c.Call.String() }

// WritelnStatement is `writeln(args)`; after printing args it emits a
// newline. WriteStatement is identical except it omits the newline.
type WritelnStatement struct {
	Token     lexer.Token
	Arguments []Expression
}

func (*WritelnStatement) statementNode()        {}
func (w *WritelnStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WritelnStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WritelnStatement) String() string {
	args := make([]string, len(w.Arguments))
	for i, a := range w.Arguments {
		args[i] = a.String()
	}
	return "writeln(" + strings.Join(args, ", ") + ")"
}

// WriteStatement is `write(args)` — same as WritelnStatement but without
// the trailing newline instruction at code generation time.
type WriteStatement struct {
	Token     lexer.Token
	Arguments []Expression
}

func (*WriteStatement) statementNode()        {}
func (w *WriteStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WriteStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WriteStatement) String() string {
	args := make([]string, len(w.Arguments))
	for i, a := range w.Arguments {
		args[i] = a.String()
	}
	return "write(" + strings.Join(args, ", ") + ")"
}

// ReadlnStatement is `readln(lvalue)` or `readln()`.
type ReadlnStatement struct {
	Token  lexer.Token
	Target Expression // nil for readln()
}

func (*ReadlnStatement) statementNode()        {}
func (r *ReadlnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReadlnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReadlnStatement) String() string {
	if r.Target == nil {
		return "readln()"
	}
	return "readln(" + r.Target.String() + ")"
}

// HaltStatement stops the running program immediately (lowers to `stop`).
type HaltStatement struct {
	Token lexer.Token
}

func (*HaltStatement) statementNode()        {}
func (h *HaltStatement) TokenLiteral() string { return h.Token.Literal }
func (h *HaltStatement) Pos() lexer.Position  { return h.Token.Pos }
func (h *HaltStatement) String() string       { return "halt" }
