// Package cutlet is the embeddable facade over the interpreter: a
// thin re-export of internal/interp's construction options plus a
// Result type that surfaces a script's final value and exit code to a
// host application, mirroring the teacher's internal/interp/runner
// split between the concrete interpreter and the wiring that hands it
// to a caller.
package cutlet

import (
	"io"
	"strconv"
	"strings"

	"github.com/cutlet-lang/cutlet/internal/errors"
	"github.com/cutlet-lang/cutlet/internal/interp"
	"github.com/cutlet-lang/cutlet/internal/runtime"
)

// Option configures an Interpreter at construction.
type Option = interp.Option

// WithLibraryPath sets the initial `import`/`include` search path.
func WithLibraryPath(paths []string) Option { return interp.WithLibraryPath(paths) }

// WithStdout redirects the interpreter's `print` output.
func WithStdout(w io.Writer) Option { return interp.WithStdout(w) }

// WithStderr redirects diagnostic output.
func WithStderr(w io.Writer) Option { return interp.WithStderr(w) }

// WithMaxRecursionDepth bounds the frame stack depth.
func WithMaxRecursionDepth(n int) Option { return interp.WithMaxRecursionDepth(n) }

// WithTracing enables a frame push/pop and dispatch trace on Stderr.
func WithTracing(enabled bool) Option { return interp.WithTracing(enabled) }

// Interpreter embeds a Cutlet interpreter for use by a host
// application: running scripts, defining native components ahead of
// time, and loading extensions.
type Interpreter struct {
	core *interp.Interp
}

// New creates an Interpreter with its own root sandbox, ready to Run
// or Eval scripts.
func New(opts ...Option) *Interpreter {
	return &Interpreter{core: interp.New(opts...)}
}

// Result reports the outcome of running a script: its final value
// (string-coerced) and the process-style exit code a CLI driver would
// report for it (§6.2's "integer coercion of the script's final return
// value").
type Result struct {
	Value    string
	ExitCode int
}

// Run compiles and evaluates src as a whole program.
func (in *Interpreter) Run(src string) (Result, error) {
	v, err := in.core.Run(src)
	if err != nil {
		return Result{ExitCode: 1}, errors.NewInterpreterError(err)
	}
	return Result{Value: v.String(), ExitCode: coerceExitCode(v)}, nil
}

// Eval evaluates src in the interpreter's current top frame, for
// incremental (REPL-style) evaluation across multiple calls.
func (in *Interpreter) Eval(src string) (Result, error) {
	v, err := in.core.EvalText(src)
	if err != nil {
		return Result{ExitCode: 1}, errors.NewInterpreterError(err)
	}
	return Result{Value: v.String(), ExitCode: coerceExitCode(v)}, nil
}

// Define registers a host-provided native component under name,
// callable from scripts exactly like a built-in.
func (in *Interpreter) Define(name string, fn runtime.Component) {
	in.core.RootSandbox().Define(name, fn)
}

// SetVar sets a variable in the interpreter's global sandbox, visible
// to every script run afterward unless shadowed by a local.
func (in *Interpreter) SetVar(name string, v runtime.Value) {
	in.core.SetGlobal(name, v)
}

// LoadExtension opens a native (.so/.dylib/.dll) extension and calls
// its InitCutlet(*Interp) entry point (§6.6).
func (in *Interpreter) LoadExtension(path string) error {
	return in.core.LoadExtension(path)
}

// AddLibraryPath appends to the search path consulted by `import`.
func (in *Interpreter) AddLibraryPath(paths ...string) {
	in.core.AddLibraryPath(paths...)
}

// coerceExitCode implements §6.2's "integer coercion of the script's
// final return value": a value that, once trimmed of surrounding
// space, parses whole as an integer becomes the exit code; anything
// else (including the empty string or "3abc") is 0.
func coerceExitCode(v runtime.Value) int {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
