package interp

import (
	"bytes"
	"strings"
	"testing"
)

func runScript(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	i := New(WithStdout(&buf))
	if _, err := i.Run(src); err != nil {
		t.Fatalf("Run(%q) error: %v", src, err)
	}
	return buf.String()
}

func TestScenarioHelloWorld(t *testing.T) {
	got := runScript(t, `print "Hello, World"`+"\n")
	if got != "Hello, World\n" {
		t.Fatalf("got %q", got)
	}
}

func TestScenarioDefAndExpr(t *testing.T) {
	got := runScript(t, "def add {a b} { return [expr $a + $b] }\nprint [add 2 3]\n")
	if got != "5\n" {
		t.Fatalf("got %q", got)
	}
}

func TestScenarioListForeach(t *testing.T) {
	got := runScript(t, "local xs = [list {1 2 3}]\n$xs foreach x { print $x }\n")
	if got != "1\n2\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestScenarioStringLength(t *testing.T) {
	got := runScript(t, `local s = "héllo"`+"\n"+`print [$s length]`+"\n")
	if got != "5\n" {
		t.Fatalf("got %q", got)
	}
}

func TestScenarioWhileBreakContinue(t *testing.T) {
	got := runScript(t, "local i = 0\nwhile {$i < 3} { local i = [expr $i + 1]; if {$i == 2} { continue }; print $i }\n")
	if got != "1\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestUnresolvedVariableIsRuntimeError(t *testing.T) {
	i := New()
	if _, err := i.Run("print $nope\n"); err == nil {
		t.Fatal("expected an unresolved-variable error")
	}
}

func TestUnmatchedBraceIsSyntaxErrorAtOpener(t *testing.T) {
	i := New()
	_, err := i.Run("print {unterminated\n")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "syntax error at 1:7") {
		t.Fatalf("expected the error at the opening brace (1:7), got %v", err)
	}
}

func TestRecursionDepthOverflowIsRuntimeErrorNotPanic(t *testing.T) {
	i := New(WithMaxRecursionDepth(20))
	_, err := i.Run("def recur {n} { return [recur [expr $n + 1]] }\nrecur 0\n")
	if err == nil {
		t.Fatal("expected a recursion-depth error")
	}
}

func TestDefBindsFunctionAsFirstClassValue(t *testing.T) {
	got := runScript(t, "def square {n} { return [expr $n * $n] }\nlocal f = $square\nprint [$f 6]\n")
	if got != "36\n" {
		t.Fatalf("got %q", got)
	}
}

func TestExprOrAndRequireWordBoundary(t *testing.T) {
	i := New()
	if _, err := i.Run("print [expr 1 orange]\n"); err == nil {
		t.Fatal("expected an error: \"orange\" is not a valid continuation of \"1\"")
	}
}

func TestRunDoesNotLeakStateBetweenCalls(t *testing.T) {
	var buf bytes.Buffer
	i := New(WithStdout(&buf))
	if _, err := i.Run("local x = 1\nreturn\n"); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := i.Run("print $x\n"); err == nil {
		t.Fatal("expected $x to be unresolved in a fresh top frame")
	}
}
