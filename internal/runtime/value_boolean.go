package runtime

import "golang.org/x/text/cases"

var foldCase = cases.Fold()

// Boolean is Cutlet's single-bit value (§3). Its string coercion is
// the literal "true" or "false"; coercion the other way (string →
// Boolean) is case-insensitive against true|yes|on, performed by
// CoerceBoolean rather than here, since plain strings never carry a
// Boolean tag of their own.
type Boolean struct {
	b bool
}

// NewBoolean wraps a Go bool as a Cutlet Boolean value.
func NewBoolean(b bool) *Boolean { return &Boolean{b: b} }

func (v *Boolean) String() string {
	if v.b {
		return "true"
	}
	return "false"
}

func (v *Boolean) TypeName() string { return "boolean" }

func (v *Boolean) Bool() bool { return v.b }

func (v *Boolean) Invoke(interp Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return v, nil
	}
	op, ok := args[0].(*String)
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	fn, ok := booleanOps[op.s]
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	return fn(v, args[1:])
}

type booleanOp func(self *Boolean, rest []Value) (Value, error)

var booleanOps = map[string]booleanOp{
	"type": func(self *Boolean, rest []Value) (Value, error) { return NewString(self.TypeName()), nil },
	"not":  func(self *Boolean, rest []Value) (Value, error) { return NewBoolean(!self.b), nil },
	"==": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "==")
		if err != nil {
			return nil, err
		}
		return NewBoolean(self.b == other), nil
	},
	"<>": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "<>")
		if err != nil {
			return nil, err
		}
		return NewBoolean(self.b != other), nil
	},
	"and": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "and")
		if err != nil {
			return nil, err
		}
		return NewBoolean(self.b && other), nil
	},
	"nand": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "nand")
		if err != nil {
			return nil, err
		}
		return NewBoolean(!(self.b && other)), nil
	},
	"or": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "or")
		if err != nil {
			return nil, err
		}
		return NewBoolean(self.b || other), nil
	},
	"nor": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "nor")
		if err != nil {
			return nil, err
		}
		return NewBoolean(!(self.b || other)), nil
	},
	"xor": func(self *Boolean, rest []Value) (Value, error) {
		other, err := booleanArg(rest, "xor")
		if err != nil {
			return nil, err
		}
		return NewBoolean(self.b != other), nil
	},
}

func booleanArg(rest []Value, op string) (bool, error) {
	if len(rest) != 1 {
		return false, argError(op, "expects 1 argument")
	}
	return CoerceBoolean(rest[0]), nil
}

// CoerceBoolean implements §3's string-to-Boolean coercion: an
// existing Boolean passes through; any other value coerces via a
// case-insensitive match against true|yes|on (anything else,
// including "0", "false", and the empty string, is false).
func CoerceBoolean(v Value) bool {
	if b, ok := v.(*Boolean); ok {
		return b.b
	}
	switch foldCase.String(v.String()) {
	case "true", "yes", "on":
		return true
	default:
		return false
	}
}
