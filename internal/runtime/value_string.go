package runtime

import (
	"strings"
)

// String is Cutlet's UTF-8 string value (§3). Indexing throughout its
// method table is 1-based with negative indices counting from the
// end, per spec.
type String struct {
	s string
}

// NewString wraps a Go string as a Cutlet String value.
func NewString(s string) *String { return &String{s: s} }

func (v *String) String() string   { return v.s }
func (v *String) TypeName() string { return "string" }

func (v *String) Invoke(interp Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return v, nil
	}
	op, ok := args[0].(*String)
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	fn, ok := stringOps[op.s]
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	return fn(v, args[1:])
}

type stringOp func(self *String, rest []Value) (Value, error)

var stringOps = map[string]stringOp{
	"type":   func(self *String, rest []Value) (Value, error) { return NewString(self.TypeName()), nil },
	"length": func(self *String, rest []Value) (Value, error) { return NewString(itoa(len([]rune(self.s)))), nil },
	"==":     stringEquals,
	"=":      stringEquals,
	"<>":     stringNotEquals,
	"!=":     stringNotEquals,
	"<":      stringCompare(func(c int) bool { return c < 0 }),
	"<=":     stringCompare(func(c int) bool { return c <= 0 }),
	">":      stringCompare(func(c int) bool { return c > 0 }),
	">=":     stringCompare(func(c int) bool { return c >= 0 }),
	"startswith": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 1 {
			return nil, argError("startswith", "expects 1 argument")
		}
		return NewBoolean(strings.HasPrefix(self.s, rest[0].String())), nil
	},
	"endswith": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 1 {
			return nil, argError("endswith", "expects 1 argument")
		}
		return NewBoolean(strings.HasSuffix(self.s, rest[0].String())), nil
	},
	"find": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 1 {
			return nil, argError("find", "expects 1 argument")
		}
		needle := rest[0].String()
		idx := strings.Index(self.s, needle)
		if idx < 0 {
			return NewString("-1"), nil
		}
		return NewString(itoa(len([]rune(self.s[:idx])) + 1)), nil
	},
	"index": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 1 {
			return nil, argError("index", "expects 1 argument")
		}
		i, err := parseIndex(rest[0].String())
		if err != nil {
			return nil, err
		}
		runes := []rune(self.s)
		idx, err := resolveIndex(i, len(runes))
		if err != nil {
			return nil, err
		}
		return NewString(string(runes[idx])), nil
	},
	"insert": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 2 {
			return nil, argError("insert", "expects 2 arguments")
		}
		i, err := parseIndex(rest[0].String())
		if err != nil {
			return nil, err
		}
		runes := []rune(self.s)
		idx, err := resolveIndex(i, len(runes)+1)
		if err != nil {
			return nil, err
		}
		out := make([]rune, 0, len(runes)+1)
		out = append(out, runes[:idx]...)
		out = append(out, []rune(rest[1].String())...)
		out = append(out, runes[idx:]...)
		self.s = string(out)
		return self, nil
	},
	"substr": func(self *String, rest []Value) (Value, error) {
		if len(rest) != 2 {
			return nil, argError("substr", "expects 2 arguments")
		}
		runes := []rune(self.s)
		start, err := parseIndex(rest[0].String())
		if err != nil {
			return nil, err
		}
		end, err := parseIndex(rest[1].String())
		if err != nil {
			return nil, err
		}
		si, err := resolveIndex(start, len(runes)+1)
		if err != nil {
			return nil, err
		}
		ei, err := resolveIndex(end, len(runes)+1)
		if err != nil {
			return nil, err
		}
		if ei < si {
			si, ei = ei, si
		}
		return NewString(string(runes[si:ei])), nil
	},
}

func stringEquals(self *String, rest []Value) (Value, error) {
	if len(rest) != 1 {
		return nil, argError("==", "expects 1 argument")
	}
	return NewBoolean(self.s == rest[0].String()), nil
}

func stringNotEquals(self *String, rest []Value) (Value, error) {
	if len(rest) != 1 {
		return nil, argError("<>", "expects 1 argument")
	}
	return NewBoolean(self.s != rest[0].String()), nil
}

func stringCompare(pred func(int) bool) stringOp {
	return func(self *String, rest []Value) (Value, error) {
		if len(rest) != 1 {
			return nil, argError("compare", "expects 1 argument")
		}
		return NewBoolean(pred(strings.Compare(self.s, rest[0].String()))), nil
	}
}

// dispatchAsCommand implements the "treat self as a command name"
// fallback shared by every value kind (§3 invariant): when the first
// argument isn't a recognised operator, the original args (not just
// the tail) are dispatched against the environment.
func dispatchAsCommand(interp Interp, self Value, args []Value) (Value, error) {
	return interp.Dispatch(self.String(), args)
}
