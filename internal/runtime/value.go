// Package runtime implements Cutlet's value model (§3), frame stack
// (§4.5), and sandbox/environment (§3, §4.5). It has no dependency on
// the AST or parser packages: the Interp interface below is the only
// contract those higher layers need, which keeps the value model
// reusable from built-in commands, operator tables, and the tree-walk
// evaluator alike without import cycles.
package runtime

import "io"

// Value is the spec's polymorphic Variable: every runtime value can
// coerce itself to a string (total, never fails) and can be invoked
// operator-style as the head of a command.
type Value interface {
	// String is the value's total string coercion.
	String() string
	// TypeName names the concrete type, backing the `type` operator.
	TypeName() string
	// Invoke implements the value's method-dispatch table: if args[0]
	// names a known operator it runs that operator, otherwise it falls
	// through to treating the value itself as a command name (§3's
	// dispatch invariant).
	Invoke(interp Interp, args []Value) (Value, error)
}

// Interp is the subset of the interpreter facade that values, operator
// tables, and built-in components need. The concrete implementation
// lives in package interp; defining the contract here (rather than
// importing interp from runtime) avoids a cycle, the same trick the
// teacher's runtime.RefCountManager interface uses to keep the
// evaluator out of the value package.
type Interp interface {
	// LookupVar resolves a variable by name: current frame, then the
	// global sandbox, then its ¿variable? fallback component.
	LookupVar(name string) (Value, error)
	// Assign implements `local`: it uses the current frame's assign
	// policy (§4.5 - a Block/Loop frame updates the nearest existing
	// binding up its parent chain before creating a new local).
	Assign(name string, v Value)
	// Define binds name directly in the current (top) frame, used for
	// call-frame parameter binding and per-iteration loop variables.
	Define(name string, v Value)
	// SetGlobal implements `global`: write straight into the global
	// sandbox regardless of the current frame.
	SetGlobal(name string, v Value)
	// Dispatch resolves name as a command in the global sandbox
	// (falling back to its ¿component? component) and calls it.
	Dispatch(name string, args []Value) (Value, error)
	// Invoke runs self's method table, applying the operator-or-command
	// fallback rule uniformly for every value kind.
	Invoke(self Value, args []Value) (Value, error)
	// EvalText compiles raw block source (as produced by a BLOCK token)
	// and evaluates it as a Block AST using the current frame.
	EvalText(src string) (Value, error)
	// EvalTextInFrame evaluates src as if it were the current frame's
	// code while f is current, restoring the real current frame
	// afterwards. Backs `uplevel`.
	EvalTextInFrame(f *Frame, src string) (Value, error)
	// EvalExpr evaluates src as an arithmetic/comparison expression,
	// backing both the `expr` built-in and while/if/for conditions.
	EvalExpr(src string) (Value, error)
	// PushFrame pushes a new frame of the given kind atop the current
	// one and makes it current. It fails once the frame stack exceeds
	// the interpreter's configured recursion depth, rather than
	// panicking, so a deep but valid recursive `def` reports a runtime
	// error instead of crashing the host process.
	PushFrame(kind FrameKind, label string) (*Frame, error)
	// PushSandbox pushes a Call frame that also replaces the global
	// sandbox, per "interp.push(frame, sandbox)" (§4.5).
	PushSandbox(sb *Sandbox, label string) (*Frame, error)
	// PopFrame tears down the current frame, returning its return
	// value and restoring any sandbox it replaced.
	PopFrame() (Value, error)
	// Frame returns the current (top) frame.
	Frame() *Frame
	// Globals returns the active global sandbox.
	Globals() *Sandbox
	// Uplevel returns the n-th ancestor frame, stopping at a sandbox
	// barrier (a frame whose SavedGlobal is non-nil).
	Uplevel(n int) *Frame
	// Stdout is where `print` and friends write.
	Stdout() io.Writer
	// Stderr is where diagnostics are written.
	Stderr() io.Writer
	// LibraryPath is the search path consulted by `import`.
	LibraryPath() []string
}
