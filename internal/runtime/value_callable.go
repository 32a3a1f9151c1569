package runtime

// UserCallable packages a `def`-registered function body as an
// invokable Value in its own right, so a function can be passed
// around (stored in a variable, put in a list) rather than only
// existing as a sandbox component entry (§9's re-architecture note).
type UserCallable struct {
	Name     string
	Params   []string
	Defaults map[string]string
	RestName string
	Body     string
	Closure  *Sandbox
}

// NewUserCallable builds a callable value for a `def`-declared
// function, mirroring the parameter contract (defaults, a trailing
// *rest) that the `def` component itself binds — so a function value
// passed around and invoked via `$f ...` behaves identically to
// calling it by name. closure is the sandbox it was defined in.
func NewUserCallable(name string, params []string, defaults map[string]string, restName, body string, closure *Sandbox) *UserCallable {
	return &UserCallable{Name: name, Params: params, Defaults: defaults, RestName: restName, Body: body, Closure: closure}
}

func (v *UserCallable) String() string   { return v.Name }
func (v *UserCallable) TypeName() string { return "callable" }

// Invoke binds args to Params (applying Defaults, collecting any
// overflow into RestName) in a fresh Call frame and evaluates Body.
func (v *UserCallable) Invoke(interp Interp, args []Value) (Value, error) {
	minRequired := 0
	for _, p := range v.Params {
		if _, hasDefault := v.Defaults[p]; !hasDefault {
			minRequired++
		}
	}
	if len(args) < minRequired || (v.RestName == "" && len(args) > len(v.Params)) {
		return nil, &OperatorError{Op: v.Name, Message: "wrong number of arguments"}
	}

	frame, err := interp.PushFrame(CallFrame, v.Name)
	if err != nil {
		return nil, err
	}
	defer interp.PopFrame()

	for i, p := range v.Params {
		if i < len(args) {
			frame.Define(p, args[i])
		} else {
			frame.Define(p, NewString(v.Defaults[p]))
		}
	}
	if v.RestName != "" {
		var extra []Value
		if len(args) > len(v.Params) {
			extra = append(extra, args[len(v.Params):]...)
		}
		frame.Define(v.RestName, NewList(extra))
	}

	result, err := interp.EvalText(v.Body)
	if err != nil {
		return nil, err
	}
	if frame.State == Done && frame.ReturnValue != nil {
		return frame.ReturnValue, nil
	}
	return result, nil
}

// Opaque wraps a native value owned by a loaded extension (shell
// handles, thread IDs, object instances) behind the same Value
// contract scripts already dispatch through (§9). The extension
// supplies its own method table as Dispatch.
type Opaque struct {
	Kind string
	Data any
	// Dispatch implements the opaque value's own operator table,
	// looked up the same way String/List/Boolean do, falling through
	// to dispatchAsCommand when args[0] isn't recognised.
	Dispatch func(interp Interp, self *Opaque, args []Value) (Value, error)
}

// NewOpaque wraps a native value under kind, with the given method
// dispatcher.
func NewOpaque(kind string, data any, dispatch func(Interp, *Opaque, []Value) (Value, error)) *Opaque {
	return &Opaque{Kind: kind, Data: data, Dispatch: dispatch}
}

func (v *Opaque) String() string   { return v.Kind }
func (v *Opaque) TypeName() string { return v.Kind }

func (v *Opaque) Invoke(interp Interp, args []Value) (Value, error) {
	if v.Dispatch == nil {
		return dispatchAsCommand(interp, v, args)
	}
	return v.Dispatch(interp, v, args)
}
