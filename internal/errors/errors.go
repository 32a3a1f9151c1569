// Package errors implements Cutlet's two-taxon error model (§7):
// syntax errors raised by the lexer/parser, and runtime errors raised
// during evaluation. A RuntimeError has a Stack field, but evaluation
// never calls PushFrame, so errors reach the embedder with their
// message and position only and no frame trace.
//
// This package depends only on pkg/token, never on internal/ast — a
// RuntimeError references the failing node through the Positioner
// interface below, which ast.Node satisfies implicitly. That keeps
// ast (and everything built on it) free to import errors without
// creating a cycle.
package errors

import (
	"fmt"
	"strings"

	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Positioner is anything that can report its own source position.
// ast.Node satisfies this without errors needing to import ast.
type Positioner interface {
	Pos() token.Position
}

// SyntaxError reports a lexical or grammatical error at a token.
type SyntaxError struct {
	Tok     token.Token
	Message string
}

func NewSyntaxError(tok token.Token, message string) *SyntaxError {
	return &SyntaxError{Tok: tok, Message: message}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Tok.Pos, e.Message)
}

// RuntimeError reports a failure during evaluation, anchored to the
// node that raised or propagated it. Stack holds only the frames
// added through PushFrame; the evaluator adds none.
type RuntimeError struct {
	Message string
	Node    Positioner
	Stack   StackTrace
	cause   error
}

func NewRuntimeError(node Positioner, message string) *RuntimeError {
	return &RuntimeError{Node: node, Message: message}
}

func NewRuntimeErrorf(node Positioner, format string, args ...any) *RuntimeError {
	return &RuntimeError{Node: node, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("runtime error at %s: %s", e.Node.Pos(), e.Message)
	}
	return "runtime error: " + e.Message
}

func (e *RuntimeError) Unwrap() error { return e.cause }

// Wrap preserves the original failing node while layering additional
// context from an outer evaluation step (§4.4: "errors... are wrapped
// with the current node for stack-trace reporting").
func (e *RuntimeError) Wrap(message string) *RuntimeError {
	return &RuntimeError{
		Message: message + ": " + e.Message,
		Node:    e.Node,
		Stack:   e.Stack,
		cause:   e,
	}
}

// PushFrame records one more level of call context as the error
// propagates out through nested frame pops.
func (e *RuntimeError) PushFrame(sf StackFrame) *RuntimeError {
	e.Stack = append(e.Stack, sf)
	return e
}

// InterpreterError wraps a top-level syntax or runtime error for the
// driver (cmd/cutlet): pkg/cutlet's Interpreter.Run and Eval wrap any
// error they return in one of these; interp.Interp.Run returns errors
// unwrapped.
type InterpreterError struct {
	cause error
}

func NewInterpreterError(cause error) *InterpreterError {
	return &InterpreterError{cause: cause}
}

func (e *InterpreterError) Error() string { return e.cause.Error() }
func (e *InterpreterError) Unwrap() error { return e.cause }

// ExitCode reports the process exit code for an uncaught top-level
// error (§6.2): always 1, whether the error is a SyntaxError or a
// RuntimeError.
func (e *InterpreterError) ExitCode() int { return 1 }

// StackFrame is one level of a reported stack trace (§6.7).
type StackFrame struct {
	Label    string
	State    string
	Position token.Position
	Locals   map[string]string
}

// StackTrace is ordered innermost frame first, then outward toward the
// root, in the order PushFrame records frames as the error propagates.
type StackTrace []StackFrame

// String renders the trace with level numbers, labels, state, and
// bound locals, grounded on the teacher's StackTrace.String() layout.
func (st StackTrace) String() string {
	var b strings.Builder
	for i, sf := range st {
		fmt.Fprintf(&b, "#%d %s (%s) at %s\n", i, sf.Label, sf.State, sf.Position)
		for name, val := range sf.Locals {
			fmt.Fprintf(&b, "    %s = %s\n", name, val)
		}
	}
	return b.String()
}
