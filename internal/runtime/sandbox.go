package runtime

// Component is a named, invocable unit registered in a Sandbox: a
// built-in, a user-defined `def`, or a loaded extension's exported
// command (§3, §4.6).
type Component func(interp Interp, args []Value) (Value, error)

// Fallback names consulted when a variable or command lookup misses
// every other binding (§3's "¿variable?/¿component?" resolution
// names, GLOSSARY).
const (
	VariableFallback  = "¿variable?"
	ComponentFallback = "¿component?"
)

// Sandbox is Cutlet's global environment: a flat namespace of
// variables and components, optionally nested when `sandbox` creates
// a child environment (§4.6).
type Sandbox struct {
	Parent     *Sandbox
	Vars       map[string]Value
	Components map[string]Component
}

// NewSandbox creates an empty sandbox, optionally chained under
// parent. A nil parent makes it a root (the interpreter's top-level
// global environment).
func NewSandbox(parent *Sandbox) *Sandbox {
	return &Sandbox{
		Parent:     parent,
		Vars:       make(map[string]Value),
		Components: make(map[string]Component),
	}
}

// ResolveVar looks up name in this sandbox, then its parents, then
// falls back to invoking VariableFallback if bound anywhere in the
// chain.
func (s *Sandbox) ResolveVar(interp Interp, name string) (Value, bool, error) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.Vars[name]; ok {
			return v, true, nil
		}
	}
	fb, ok := s.ResolveComponent(VariableFallback)
	if !ok {
		return nil, false, nil
	}
	v, err := fb(interp, []Value{NewString(name)})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// SetVar writes name directly into this sandbox.
func (s *Sandbox) SetVar(name string, v Value) {
	s.Vars[name] = v
}

// Define registers a component under name in this sandbox.
func (s *Sandbox) Define(name string, c Component) {
	s.Components[name] = c
}

// ResolveComponent looks up a component by name in this sandbox, then
// its parents.
func (s *Sandbox) ResolveComponent(name string) (Component, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if c, ok := cur.Components[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// Dispatch resolves name as a component (falling back to
// ComponentFallback) and invokes it with args.
func (s *Sandbox) Dispatch(interp Interp, name string, args []Value) (Value, error) {
	if c, ok := s.ResolveComponent(name); ok {
		return c(interp, args)
	}
	if fb, ok := s.ResolveComponent(ComponentFallback); ok {
		fbArgs := append([]Value{NewString(name)}, args...)
		return fb(interp, fbArgs)
	}
	return nil, &UnknownCommandError{Name: name}
}

// UnknownCommandError reports dispatch of a name bound to neither a
// component nor a ¿component? fallback.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}
