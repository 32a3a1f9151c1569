package ast

import (
	"strings"

	"github.com/cutlet-lang/cutlet/internal/errors"
	"github.com/cutlet-lang/cutlet/internal/runtime"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Block is an ordered sequence of statements (§3, §4.4). Evaluating a
// Block walks its children in order, stopping early the moment the
// current frame leaves the Running state (a return/break/continue
// anywhere inside short-circuits the rest of the block).
type Block struct {
	Children []Node
	Position token.Position
}

func (b *Block) Pos() token.Position { return b.Position }
func (b *Block) Kind() Kind          { return KindBlock }

func (b *Block) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	var result runtime.Value = runtime.NewString("")
	for _, child := range b.Children {
		v, err := child.Evaluate(interp)
		if err != nil {
			if re, ok := err.(*errors.RuntimeError); ok {
				return nil, re.Wrap("in block")
			}
			return nil, err
		}
		if v != nil {
			result = v
		}
		if interp.Frame().State != runtime.Running {
			break
		}
	}
	return result, nil
}

// Value evaluates to a String equal to its token text (§4.4), backing
// WORD and BLOCK arguments alike — a block's literal text is handed to
// built-ins as data and only compiled on demand by whichever built-in
// needs to run it as code (if/while/foreach/def bodies).
type Value struct {
	Tok token.Token
}

func (v *Value) Pos() token.Position { return v.Tok.Pos }
func (v *Value) Kind() Kind          { return KindValue }

func (v *Value) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	return runtime.NewString(v.Tok.Text), nil
}

// Comment evaluates to nothing.
type Comment struct {
	Tok token.Token
}

func (c *Comment) Pos() token.Position { return c.Tok.Pos }
func (c *Comment) Kind() Kind          { return KindComment }

func (c *Comment) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	return nil, nil
}

// Variable looks up its name in the current frame, falling back to
// the global sandbox's ¿variable? component (§4.4).
type Variable struct {
	Tok token.Token
}

func (v *Variable) Pos() token.Position { return v.Tok.Pos }
func (v *Variable) Kind() Kind          { return KindVariable }

func (v *Variable) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	val, err := interp.LookupVar(v.Tok.Text)
	if err != nil {
		return nil, errors.NewRuntimeErrorf(v, "unresolved variable: %s", v.Tok.Text)
	}
	return val, nil
}

// StringInterp concatenates an ordered sequence of literal runs and
// substitution nodes (variable references or subcommands) found
// inside a quoted string (§4.3).
type StringInterp struct {
	Parts    []InterpPart
	Position token.Position
}

// InterpPart is one piece of an interpolated string: either a literal
// run (Node is nil) or a substitution node.
type InterpPart struct {
	Literal string
	Node    Node
}

func (s *StringInterp) Pos() token.Position { return s.Position }
func (s *StringInterp) Kind() Kind          { return KindStringInterp }

func (s *StringInterp) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	var b strings.Builder
	for _, part := range s.Parts {
		if part.Node == nil {
			b.WriteString(part.Literal)
			continue
		}
		v, err := part.Node.Evaluate(interp)
		if err != nil {
			if re, ok := err.(*errors.RuntimeError); ok {
				return nil, re.Wrap("in string interpolation")
			}
			return nil, err
		}
		if v != nil {
			b.WriteString(v.String())
		}
	}
	return runtime.NewString(b.String()), nil
}

// Command evaluates its head, then each argument left to right, then
// dispatches (§4.4). Whether the head is a Variable or nested Command
// changes the dispatch rule: both invoke the head's resulting Value
// directly (routing through its method table), since either already
// names a concrete value rather than a bare command name; any other
// head kind (Value, i.e. a WORD/BLOCK/STRING-derived literal) is
// dispatched by its string form against the sandbox.
type Command struct {
	Head     Node
	Args     []Node
	Position token.Position
}

func (c *Command) Pos() token.Position { return c.Position }
func (c *Command) Kind() Kind          { return KindCommand }

func (c *Command) Evaluate(interp runtime.Interp) (runtime.Value, error) {
	headVal, err := c.Head.Evaluate(interp)
	if err != nil {
		return nil, c.wrap(err)
	}

	args := make([]runtime.Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := a.Evaluate(interp)
		if err != nil {
			return nil, c.wrap(err)
		}
		args = append(args, v)
	}

	_, headIsVariable := c.Head.(*Variable)
	_, headIsCommand := c.Head.(*Command)

	var result runtime.Value
	if headIsVariable || headIsCommand {
		result, err = headVal.Invoke(interp, args)
	} else {
		result, err = interp.Dispatch(headVal.String(), args)
	}
	if err != nil {
		return nil, c.wrap(err)
	}
	return result, nil
}

func (c *Command) wrap(err error) error {
	if re, ok := err.(*errors.RuntimeError); ok {
		return re.Wrap("in command")
	}
	return errors.NewRuntimeError(c, err.Error())
}
