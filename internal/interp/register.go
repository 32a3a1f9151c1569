package interp

import (
	"fmt"
	"os"

	"github.com/cutlet-lang/cutlet/internal/builtins"
	"github.com/cutlet-lang/cutlet/internal/runtime"
)

// RegisterBuiltins installs the core component set (def, return,
// local, global, list, print, if/while/for, try, expr, eval, ...) on
// i's root sandbox, plus import/include — which need the concrete
// Interp's library-path and extension-loader machinery and so can't
// live in package builtins without an import cycle.
func (i *Interp) RegisterBuiltins() {
	builtins.Register(i.globals)
	i.globals.Define("import", i.biImport)
	i.globals.Define("include", i.biInclude)
}

// biImport implements `import name` (§4.6): search the Interp's
// library path (set from Go through WithLibraryPath/AddLibraryPath; no
// script variable holds it) for name.cutlet (evaluated as source) or a
// native name<soext> (handed to the extension loader).
func (i *Interp) biImport(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("import: expects a module name")
	}
	name := args[0].String()
	path, native, err := i.ResolveLibrary(name)
	if err != nil {
		return nil, fmt.Errorf("import: %s not found on library path", name)
	}
	if native {
		if err := i.LoadExtension(path); err != nil {
			return nil, err
		}
		return runtime.NewString(name), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: reading %s: %w", path, err)
	}
	return i.Run(string(src))
}

// biInclude implements `include path`: evaluate the file literally,
// in the current frame (unlike import, no module resolution).
func (i *Interp) biInclude(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("include: expects a file path")
	}
	src, err := os.ReadFile(args[0].String())
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	return i.EvalText(string(src))
}
