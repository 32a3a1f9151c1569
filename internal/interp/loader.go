package interp

import (
	"fmt"
	"plugin"
)

// loadedExtension keeps a native module's plugin handle alive for the
// interpreter's lifetime (spec §6.6/§5: "native library handles ...
// released when it is destroyed"). The standard library's plugin
// package exposes no Close; Go programs release a plugin's resources
// only at process exit, which is the closest this implementation can
// come to that contract (recorded as an Open Question decision in
// DESIGN.md).
type loadedExtension struct {
	path string
	p    *plugin.Plugin
}

// InitFunc is the signature every native extension's InitCutlet entry
// point must have (spec §6.6's "init_cutlet(*Interp)" contract).
type InitFunc func(*Interp) error

// LoadExtension opens a native module at path and calls its
// InitCutlet entry point. Go has no portable dynamic-symbol ABI
// outside the standard library's plugin package, and no ecosystem
// library in the example corpus resolves C-ABI symbols from a shared
// object either — this is the one core component that stays on the
// standard library (see DESIGN.md's required justification).
func (i *Interp) LoadExtension(path string) error {
	p, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("cutlet: loading extension %s: %w", path, err)
	}
	sym, err := p.Lookup("InitCutlet")
	if err != nil {
		return fmt.Errorf("cutlet: extension %s has no InitCutlet: %w", path, err)
	}
	init, ok := sym.(func(*Interp) error)
	if !ok {
		return fmt.Errorf("cutlet: extension %s InitCutlet has the wrong signature", path)
	}
	if err := init(i); err != nil {
		return fmt.Errorf("cutlet: extension %s init failed: %w", path, err)
	}
	i.extensions = append(i.extensions, &loadedExtension{path: path, p: p})
	return nil
}
