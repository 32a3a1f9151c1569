package runtime

import (
	"math/rand"
	"sort"
	"strings"
)

// List is Cutlet's ordered-sequence value (§3). Elements are
// Variables, printed space-joined by default (join's default
// delimiter) when coerced to a string.
type List struct {
	items []Value
}

// NewList wraps a slice of Values as a Cutlet List value. The slice is
// taken by reference; callers that need an independent copy should
// clone it first.
func NewList(items []Value) *List { return &List{items: items} }

func (v *List) String() string {
	parts := make([]string, len(v.items))
	for i, it := range v.items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

func (v *List) TypeName() string { return "list" }

func (v *List) Items() []Value { return v.items }

func (v *List) Invoke(interp Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return v, nil
	}
	op, ok := args[0].(*String)
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	fn, ok := listOps[op.s]
	if !ok {
		return dispatchAsCommand(interp, v, args)
	}
	return fn(interp, v, args[1:])
}

type listOp func(interp Interp, self *List, rest []Value) (Value, error)

var listOps = map[string]listOp{
	"type": func(interp Interp, self *List, rest []Value) (Value, error) {
		return NewString(self.TypeName()), nil
	},
	"size": func(interp Interp, self *List, rest []Value) (Value, error) {
		return NewString(itoa(len(self.items))), nil
	},
	"==": func(interp Interp, self *List, rest []Value) (Value, error) {
		other, err := listArg(rest, "==")
		if err != nil {
			return nil, err
		}
		return NewBoolean(listsEqual(self, other)), nil
	},
	"<>": func(interp Interp, self *List, rest []Value) (Value, error) {
		other, err := listArg(rest, "<>")
		if err != nil {
			return nil, err
		}
		return NewBoolean(!listsEqual(self, other)), nil
	},
	"append": func(interp Interp, self *List, rest []Value) (Value, error) {
		self.items = append(self.items, rest...)
		return self, nil
	},
	"prepend": func(interp Interp, self *List, rest []Value) (Value, error) {
		self.items = append(append([]Value{}, rest...), self.items...)
		return self, nil
	},
	"extend": func(interp Interp, self *List, rest []Value) (Value, error) {
		for _, r := range rest {
			other, ok := r.(*List)
			if !ok {
				return nil, argError("extend", "arguments must be lists")
			}
			self.items = append(self.items, other.items...)
		}
		return self, nil
	},
	"clear": func(interp Interp, self *List, rest []Value) (Value, error) {
		self.items = nil
		return self, nil
	},
	"index": func(interp Interp, self *List, rest []Value) (Value, error) {
		if len(rest) < 1 || len(rest) > 2 {
			return nil, argError("index", "expects 1 or 2 arguments")
		}
		i, err := parseIndex(rest[0].String())
		if err != nil {
			return nil, err
		}
		idx, err := resolveIndex(i, len(self.items))
		if err != nil {
			return nil, err
		}
		if len(rest) == 2 {
			self.items[idx] = rest[1]
			return self, nil
		}
		return self.items[idx], nil
	},
	"join": func(interp Interp, self *List, rest []Value) (Value, error) {
		delim := " "
		if len(rest) == 1 {
			delim = rest[0].String()
		} else if len(rest) > 1 {
			return nil, argError("join", "expects 0 or 1 arguments")
		}
		parts := make([]string, len(self.items))
		for i, it := range self.items {
			parts[i] = it.String()
		}
		return NewString(strings.Join(parts, delim)), nil
	},
	"remove": func(interp Interp, self *List, rest []Value) (Value, error) {
		if len(rest) < 1 || len(rest) > 2 {
			return nil, argError("remove", "expects 1 or 2 arguments")
		}
		start, err := parseIndex(rest[0].String())
		if err != nil {
			return nil, err
		}
		si, err := resolveIndex(start, len(self.items))
		if err != nil {
			return nil, err
		}
		ei := si
		if len(rest) == 2 {
			end, err := parseIndex(rest[1].String())
			if err != nil {
				return nil, err
			}
			ei, err = resolveIndex(end, len(self.items))
			if err != nil {
				return nil, err
			}
		}
		if ei < si {
			si, ei = ei, si
		}
		self.items = append(self.items[:si], self.items[ei+1:]...)
		return self, nil
	},
	"reverse": func(interp Interp, self *List, rest []Value) (Value, error) {
		out := make([]Value, len(self.items))
		for i, it := range self.items {
			out[len(self.items)-1-i] = it
		}
		self.items = out
		return self, nil
	},
	"shuffle": func(interp Interp, self *List, rest []Value) (Value, error) {
		rand.Shuffle(len(self.items), func(i, j int) {
			self.items[i], self.items[j] = self.items[j], self.items[i]
		})
		return self, nil
	},
	"sort": func(interp Interp, self *List, rest []Value) (Value, error) {
		if len(rest) == 0 {
			sort.SliceStable(self.items, func(i, j int) bool {
				return self.items[i].String() < self.items[j].String()
			})
			return self, nil
		}
		cmp, ok := rest[0].(*String)
		if !ok {
			return nil, argError("sort", "comparator must be a command name")
		}
		var sortErr error
		sort.SliceStable(self.items, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			res, err := interp.Dispatch(cmp.s, []Value{self.items[i], self.items[j]})
			if err != nil {
				sortErr = err
				return false
			}
			n, err := parseIndex(res.String())
			if err != nil {
				sortErr = err
				return false
			}
			return n < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return self, nil
	},
	"unique": func(interp Interp, self *List, rest []Value) (Value, error) {
		sorted := append([]Value{}, self.items...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
		out := sorted[:0:0]
		for i, it := range sorted {
			if i == 0 || it.String() != sorted[i-1].String() {
				out = append(out, it)
			}
		}
		self.items = out
		return self, nil
	},
	"foreach": func(interp Interp, self *List, rest []Value) (Value, error) {
		if len(rest) != 2 {
			return nil, argError("foreach", "expects a variable name and a body")
		}
		name := rest[0].String()
		body := rest[1].String()
		frame, err := interp.PushFrame(LoopFrame, "foreach")
		if err != nil {
			return nil, err
		}
		defer interp.PopFrame()
		for _, it := range self.items {
			frame.Define(name, it)
			if _, err := interp.EvalText(body); err != nil {
				return nil, err
			}
			if frame.State == Break {
				frame.State = Running
				break
			}
			if frame.State == Continue {
				frame.State = Running
				continue
			}
			if frame.State != Running {
				break
			}
		}
		return self, nil
	},
}

func listArg(rest []Value, op string) (*List, error) {
	if len(rest) != 1 {
		return nil, argError(op, "expects 1 argument")
	}
	other, ok := rest[0].(*List)
	if !ok {
		return nil, argError(op, "argument must be a list")
	}
	return other, nil
}

func listsEqual(a, b *List) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if a.items[i].String() != b.items[i].String() {
			return false
		}
	}
	return true
}
