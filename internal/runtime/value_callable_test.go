package runtime

import (
	"io"
	"os"
	"testing"
)

type fakeCallableInterp struct {
	frames []*Frame
	globals *Sandbox
}

func newFakeCallableInterp() *fakeCallableInterp {
	return &fakeCallableInterp{globals: NewSandbox(nil)}
}

func (f *fakeCallableInterp) top() *Frame { return f.frames[len(f.frames)-1] }

func (f *fakeCallableInterp) PushFrame(kind FrameKind, label string) (*Frame, error) {
	var parent *Frame
	if len(f.frames) > 0 {
		parent = f.top()
	}
	fr := NewFrame(kind, parent, label)
	f.frames = append(f.frames, fr)
	return fr, nil
}

func (f *fakeCallableInterp) PopFrame() (Value, error) {
	fr := f.top()
	f.frames = f.frames[:len(f.frames)-1]
	return fr.ReturnValue, nil
}

func (f *fakeCallableInterp) PushSandbox(sb *Sandbox, label string) (*Frame, error) { return f.PushFrame(CallFrame, label) }
func (f *fakeCallableInterp) Frame() *Frame                                { return f.top() }
func (f *fakeCallableInterp) Globals() *Sandbox                            { return f.globals }
func (f *fakeCallableInterp) Uplevel(n int) *Frame                         { return f.top() }
func (f *fakeCallableInterp) LookupVar(name string) (Value, error)         { return nil, nil }
func (f *fakeCallableInterp) Assign(name string, v Value)                  { f.top().Assign(name, v) }
func (f *fakeCallableInterp) Define(name string, v Value)                  { f.top().Define(name, v) }
func (f *fakeCallableInterp) SetGlobal(name string, v Value)               { f.globals.SetVar(name, v) }
func (f *fakeCallableInterp) Dispatch(name string, args []Value) (Value, error) {
	return f.globals.Dispatch(f, name, args)
}
func (f *fakeCallableInterp) Invoke(self Value, args []Value) (Value, error) {
	return self.Invoke(f, args)
}
func (f *fakeCallableInterp) EvalText(src string) (Value, error) {
	// The tiny subset this test needs: a single `return $name` body,
	// or a bare literal echoed back, so UserCallable.Invoke can be
	// exercised without pulling in the parser (which would import this
	// package, forming a cycle).
	if src == "return $n" {
		v, _ := f.top().Lookup("n")
		return v, nil
	}
	if src == "return $a $b" {
		a, _ := f.top().Lookup("a")
		b, _ := f.top().Lookup("b")
		return NewString(a.String() + b.String()), nil
	}
	return NewString(""), nil
}
func (f *fakeCallableInterp) EvalTextInFrame(fr *Frame, src string) (Value, error) { return nil, nil }
func (f *fakeCallableInterp) EvalExpr(src string) (Value, error)                   { return nil, nil }
func (f *fakeCallableInterp) Stdout() io.Writer                                    { return os.Stdout }
func (f *fakeCallableInterp) Stderr() io.Writer                                    { return os.Stderr }
func (f *fakeCallableInterp) LibraryPath() []string                                { return nil }

func TestUserCallableInvokeBindsParams(t *testing.T) {
	fi := newFakeCallableInterp()
	fi.PushFrame(CallFrame, "top")
	c := NewUserCallable("double", []string{"n"}, map[string]string{}, "", "return $n", fi.Globals())

	v, err := c.Invoke(fi, []Value{NewString("21")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v.String() != "21" {
		t.Errorf("got %q", v.String())
	}
}

func TestUserCallableInvokeAppliesDefault(t *testing.T) {
	fi := newFakeCallableInterp()
	fi.PushFrame(CallFrame, "top")
	c := NewUserCallable("greet", []string{"a", "b"}, map[string]string{"b": "!"}, "", "return $a $b", fi.Globals())

	v, err := c.Invoke(fi, []Value{NewString("hi")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v.String() != "hi!" {
		t.Errorf("got %q", v.String())
	}
}

func TestUserCallableInvokeWrongArityFails(t *testing.T) {
	fi := newFakeCallableInterp()
	fi.PushFrame(CallFrame, "top")
	c := NewUserCallable("double", []string{"n"}, map[string]string{}, "", "return $n", fi.Globals())

	if _, err := c.Invoke(fi, nil); err == nil {
		t.Error("expected an arity error")
	}
}

func TestUserCallableStringIsItsName(t *testing.T) {
	c := NewUserCallable("tally", nil, map[string]string{}, "", "", nil)
	if c.String() != "tally" || c.TypeName() != "callable" {
		t.Errorf("String()=%q TypeName()=%q", c.String(), c.TypeName())
	}
}

func TestOpaqueInvokeUsesDispatchFunc(t *testing.T) {
	called := false
	op := NewOpaque("handle", 42, func(interp Interp, self *Opaque, args []Value) (Value, error) {
		called = true
		if self.Data.(int) != 42 {
			t.Errorf("Data = %v", self.Data)
		}
		return NewString(args[0].String()), nil
	})

	fi := newFakeCallableInterp()
	v, err := op.Invoke(fi, []Value{NewString("ping")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !called {
		t.Error("Dispatch was not called")
	}
	if v.String() != "ping" {
		t.Errorf("got %q", v.String())
	}
}

func TestOpaqueInvokeFallsBackToDispatchAsCommandWhenNil(t *testing.T) {
	op := NewOpaque("handle", nil, nil)
	fi := newFakeCallableInterp()
	fi.PushFrame(CallFrame, "top")
	fi.Globals().Define("handle", func(interp Interp, args []Value) (Value, error) {
		return NewString(args[0].String() + ":handle"), nil
	})

	v, err := op.Invoke(fi, []Value{NewString("describe")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v.String() != "describe:handle" {
		t.Errorf("got %q", v.String())
	}
}

func TestOpaqueStringAndTypeNameAreKind(t *testing.T) {
	op := NewOpaque("socket", nil, nil)
	if op.String() != "socket" || op.TypeName() != "socket" {
		t.Errorf("String()=%q TypeName()=%q", op.String(), op.TypeName())
	}
}
