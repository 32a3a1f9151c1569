// Package interp implements the Cutlet interpreter facade (§4.5,
// §6): frame-stack management, variable and command resolution,
// compile-then-walk evaluation, and the library search path consulted
// by `import`/`include`.
package interp

import (
	"io"
	"log"
	"os"

	"github.com/cutlet-lang/cutlet/internal/ast"
	"github.com/cutlet-lang/cutlet/internal/errors"
	"github.com/cutlet-lang/cutlet/internal/lexer"
	"github.com/cutlet-lang/cutlet/internal/parser"
	"github.com/cutlet-lang/cutlet/internal/runtime"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Option configures an Interp at construction, grounded on the
// teacher's functional-options lexer configuration pattern.
type Option func(*Interp)

// WithLibraryPath sets the initial `import`/`include` search path.
func WithLibraryPath(paths []string) Option {
	return func(i *Interp) { i.libraryPath = append(i.libraryPath, paths...) }
}

// WithStdout redirects the interpreter's `print` output.
func WithStdout(w io.Writer) Option {
	return func(i *Interp) { i.stdout = w }
}

// WithStderr redirects diagnostic output.
func WithStderr(w io.Writer) Option {
	return func(i *Interp) { i.stderr = w }
}

// WithMaxRecursionDepth bounds the frame stack depth, guarding against
// runaway recursive `def` calls in embedded scripts.
func WithMaxRecursionDepth(n int) Option {
	return func(i *Interp) { i.maxDepth = n }
}

// WithTracing turns on a frame push/pop and dispatch trace, written
// through the standard library's `log` package to Stderr — matching
// the teacher's practice of plain unstructured diagnostic output
// rather than a structured-logging dependency (see DESIGN.md).
func WithTracing(enabled bool) Option {
	return func(i *Interp) { i.tracing = enabled }
}

// Interp is the concrete implementation of runtime.Interp.
type Interp struct {
	frame       *runtime.Frame
	globals     *runtime.Sandbox
	stdout      io.Writer
	stderr      io.Writer
	libraryPath []string
	maxDepth    int
	tracing     bool
	tracer      *log.Logger
	extensions  []*loadedExtension
	depth       int
}

// New creates an Interp whose root sandbox holds the built-in
// components, with a single top Call frame, ready to Run or Eval
// scripts.
func New(opts ...Option) *Interp {
	i := &Interp{
		globals:  runtime.NewSandbox(nil),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		maxDepth: 1000,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.tracer = log.New(i.stderr, "cutlet: ", 0)
	i.frame = runtime.NewFrame(runtime.CallFrame, nil, "top")
	i.RegisterBuiltins()
	return i
}

// RootSandbox exposes the root sandbox so callers (pkg/cutlet, builtins
// registration) can Define components before running scripts.
func (i *Interp) RootSandbox() *runtime.Sandbox { return i.globals }

func (i *Interp) trace(format string, args ...any) {
	if i.tracing {
		i.tracer.Printf(format, args...)
	}
}

// Compile lexes and parses src into a Block AST (the "compile" half of
// spec §1's "two-stage compile-then-walk evaluator").
func (i *Interp) Compile(src string) (*ast.Block, error) {
	tok := lexer.New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	return parser.New(tok).ParseProgram()
}

// Run compiles and evaluates src as a whole program in a fresh top
// Call frame, returning the final statement's value. The frame is
// discarded on return, so calling Run again (or `import`, which
// evaluates a module's source through Run) never leaks locals or a
// leftover return/break/continue state from one program into the
// next.
func (i *Interp) Run(src string) (runtime.Value, error) {
	block, err := i.Compile(src)
	if err != nil {
		return nil, err
	}
	saved := i.frame
	i.frame = runtime.NewFrame(runtime.CallFrame, nil, "top")
	defer func() { i.frame = saved }()
	return block.Evaluate(i)
}

// EvalText implements runtime.Interp: compile raw block text (as
// produced by a BLOCK token, stored as a Value node's literal string)
// and evaluate it in the current frame. This is how if/while/foreach/
// def bodies go from literal text to executed code only when the
// built-in that owns them actually runs them.
func (i *Interp) EvalText(src string) (runtime.Value, error) {
	block, err := i.Compile(src)
	if err != nil {
		return nil, err
	}
	return block.Evaluate(i)
}

// EvalTextInFrame implements runtime.Interp: temporarily makes f the
// current frame (backing `uplevel n body`, §4.6), restoring the real
// current frame before returning.
func (i *Interp) EvalTextInFrame(f *runtime.Frame, src string) (runtime.Value, error) {
	saved := i.frame
	i.frame = f
	defer func() { i.frame = saved }()
	return i.EvalText(src)
}

// EvalExpr evaluates src as an arithmetic/comparison expression (§3's
// Boolean-coercion-driven control flow, and the `expr` built-in).
func (i *Interp) EvalExpr(src string) (runtime.Value, error) {
	return evalExprString(i, src)
}

func (i *Interp) LookupVar(name string) (runtime.Value, error) {
	if v, ok := i.frame.Lookup(name); ok {
		return v, nil
	}
	v, ok, err := i.globals.ResolveVar(i, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewRuntimeErrorf(noPosition{}, "unresolved variable: %s", name)
	}
	return v, nil
}

func (i *Interp) Assign(name string, v runtime.Value) { i.frame.Assign(name, v) }
func (i *Interp) Define(name string, v runtime.Value) { i.frame.Define(name, v) }
func (i *Interp) SetGlobal(name string, v runtime.Value) { i.globals.SetVar(name, v) }

func (i *Interp) Dispatch(name string, args []runtime.Value) (runtime.Value, error) {
	i.trace("dispatch %s %v", name, args)
	return i.globals.Dispatch(i, name, args)
}

func (i *Interp) Invoke(self runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return self.Invoke(i, args)
}

func (i *Interp) PushFrame(kind runtime.FrameKind, label string) (*runtime.Frame, error) {
	i.depth++
	if i.maxDepth > 0 && i.depth > i.maxDepth {
		i.depth--
		return nil, errors.NewRuntimeErrorf(noPosition{}, "stack overflow: maximum recursion depth (%d) exceeded", i.maxDepth)
	}
	i.trace("push %s %q (depth %d)", kind, label, i.depth)
	i.frame = runtime.NewFrame(kind, i.frame, label)
	return i.frame, nil
}

func (i *Interp) PushSandbox(sb *runtime.Sandbox, label string) (*runtime.Frame, error) {
	fr, err := i.PushFrame(runtime.CallFrame, label)
	if err != nil {
		return nil, err
	}
	fr.SavedGlobal = i.globals
	i.globals = sb
	return fr, nil
}

func (i *Interp) PopFrame() (runtime.Value, error) {
	if i.frame.Parent == nil {
		return i.frame.ReturnValue, nil
	}
	i.trace("pop %q state=%s", i.frame.Label, i.frame.State)
	rv := i.frame.ReturnValue
	if i.frame.SavedGlobal != nil {
		i.globals = i.frame.SavedGlobal
	}
	i.frame = i.frame.Parent
	i.depth--
	return rv, nil
}

func (i *Interp) Frame() *runtime.Frame     { return i.frame }
func (i *Interp) Globals() *runtime.Sandbox { return i.globals }

func (i *Interp) Uplevel(n int) *runtime.Frame {
	fr := i.frame
	for k := 0; k < n && fr.Parent != nil; k++ {
		if fr.SavedGlobal != nil {
			break
		}
		fr = fr.Parent
	}
	return fr
}

func (i *Interp) Stdout() io.Writer     { return i.stdout }
func (i *Interp) Stderr() io.Writer     { return i.stderr }
func (i *Interp) LibraryPath() []string { return i.libraryPath }

// AddLibraryPath appends to the search path consulted by `import`
// (used for CUTLETPATH at startup, per §6.3).
func (i *Interp) AddLibraryPath(paths ...string) {
	i.libraryPath = append(i.libraryPath, paths...)
}

// noPosition is a zero-value errors.Positioner for errors raised
// outside AST evaluation (e.g. a top-level variable lookup called
// directly by an embedder).
type noPosition struct{}

func (noPosition) Pos() token.Position { return token.Position{} }
