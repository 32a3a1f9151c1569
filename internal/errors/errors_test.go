package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/cutlet-lang/cutlet/pkg/token"
)

type fakePos struct{ p token.Position }

func (f fakePos) Pos() token.Position { return f.p }

func TestSyntaxErrorMessageIncludesPosition(t *testing.T) {
	tok := token.Token{Kind: token.WORD, Text: "oops", Pos: token.Position{Line: 3, Column: 5}}
	err := NewSyntaxError(tok, "unexpected token")
	if !strings.Contains(err.Error(), "3:5") {
		t.Errorf("Error() = %q, want it to mention 3:5", err.Error())
	}
}

func TestRuntimeErrorWrapPreservesOriginalNode(t *testing.T) {
	node := fakePos{p: token.Position{Line: 1, Column: 1}}
	inner := NewRuntimeError(node, "unresolved variable: x")
	outer := inner.Wrap("in command")

	if outer.Node != inner.Node {
		t.Errorf("Wrap changed Node: got %v, want %v", outer.Node, inner.Node)
	}
	if !strings.Contains(outer.Error(), "in command") || !strings.Contains(outer.Error(), "unresolved variable: x") {
		t.Errorf("Error() = %q, want both wrap and original message", outer.Error())
	}
}

func TestRuntimeErrorUnwrap(t *testing.T) {
	inner := NewRuntimeError(nil, "boom")
	outer := inner.Wrap("in block")
	if errors.Unwrap(outer) != inner {
		t.Error("Unwrap did not return the original error")
	}
}

func TestStackTracePushFrameAccumulates(t *testing.T) {
	err := NewRuntimeError(nil, "boom")
	err.PushFrame(StackFrame{Label: "while", State: "running"})
	err.PushFrame(StackFrame{Label: "top", State: "running"})
	if len(err.Stack) != 2 {
		t.Fatalf("Stack has %d frames, want 2", len(err.Stack))
	}
	rendered := err.Stack.String()
	if !strings.Contains(rendered, "#0 while") || !strings.Contains(rendered, "#1 top") {
		t.Errorf("StackTrace.String() = %q", rendered)
	}
}

func TestInterpreterErrorExitCodeIsAlwaysOne(t *testing.T) {
	ie := NewInterpreterError(NewRuntimeError(nil, "boom"))
	if ie.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", ie.ExitCode())
	}
	if ie.Error() != "runtime error: boom" {
		t.Errorf("Error() = %q", ie.Error())
	}
}
