// Package builtins implements Cutlet's core component set (§4.6) plus
// the control-flow commands supplemented from original_source/ (§10):
// def, return, local, global, list, print, sandbox, uplevel,
// if/elseif/else, while, for, foreach, break, continue, try, expr,
// eval. import and include are registered by internal/interp instead.
//
// This package depends only on runtime and errors, never on interp,
// so that interp (which registers these components at construction)
// doesn't form an import cycle with its own built-in set.
package builtins

import (
	"fmt"
	"strings"

	"github.com/cutlet-lang/cutlet/internal/errors"
	"github.com/cutlet-lang/cutlet/internal/lexer"
	"github.com/cutlet-lang/cutlet/internal/runtime"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Register defines every core component on sb.
func Register(sb *runtime.Sandbox) {
	sb.Define("def", biDef)
	sb.Define("return", biReturn)
	sb.Define("local", biLocal)
	sb.Define("global", biGlobal)
	sb.Define("list", biList)
	sb.Define("print", biPrint)
	sb.Define("sandbox", biSandbox)
	sb.Define("uplevel", biUplevel)
	sb.Define("if", biIf)
	sb.Define("while", biWhile)
	sb.Define("for", biFor)
	sb.Define("foreach", biForeach)
	sb.Define("break", biBreak)
	sb.Define("continue", biContinue)
	sb.Define("try", biTry)
	sb.Define("expr", biExpr)
	sb.Define("eval", biEval)
}

func argErr(name, msg string) error {
	return errors.NewRuntimeError(nil, fmt.Sprintf("%s: %s", name, msg))
}

// biDef implements `def name [params] body` (§4.6): registers a
// user-defined function as a component. params is a brace-block of
// space-separated names; *args as the final parameter collects any
// extra positional arguments into a list, and a `{name default}` pair
// gives that parameter a default when the caller omits it.
func biDef(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 3 {
		return nil, argErr("def", "expects name, params, and body")
	}
	name := args[0].String()
	params, defaults, rest := parseDefParams(args[1].String())
	body := args[2].String()

	fn := runtime.NewUserCallable(name, params, defaults, rest, body, interp.Globals())
	interp.Globals().Define(name, func(interp runtime.Interp, callArgs []runtime.Value) (runtime.Value, error) {
		return fn.Invoke(interp, callArgs)
	})
	// Also bind name to the same callable value (§9's re-architecture
	// note), so `local f = $name` and `$f ...` work the same as calling
	// name directly: a function can be stored in a variable or put in a
	// list, and both call paths share one binding/arity implementation.
	interp.Globals().SetVar(name, fn)
	return runtime.NewString(""), nil
}

func parseDefParams(spec string) (names []string, defaults map[string]string, restName string) {
	defaults = map[string]string{}
	tokens := splitParamTokens(spec)
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "*") {
			restName = strings.TrimPrefix(tok, "*")
			continue
		}
		if strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}") {
			inner := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
			parts := strings.SplitN(strings.TrimSpace(inner), " ", 2)
			if len(parts) == 2 {
				names = append(names, parts[0])
				defaults[parts[0]] = strings.TrimSpace(parts[1])
				continue
			}
		}
		names = append(names, tok)
	}
	return names, defaults, restName
}

// splitParamTokens splits a parameter spec on whitespace, keeping a
// `{name default}` pair together as one token.
func splitParamTokens(spec string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range spec {
		switch {
		case r == '{':
			depth++
			cur.WriteRune(r)
		case r == '}':
			depth--
			cur.WriteRune(r)
			if depth == 0 {
				flush()
			}
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// biReturn implements `return [value]`.
func biReturn(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	var v runtime.Value = runtime.NewString("")
	if len(args) > 0 {
		v = args[0]
	}
	interp.Frame().SetDone(v)
	return v, nil
}

// biLocal implements `local name [=] value`, setting in the current
// frame using its kind-specific assign policy (§4.5).
func biLocal(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	name, value, err := parseSetArgs("local", args)
	if err != nil {
		return nil, err
	}
	interp.Assign(name, value)
	return value, nil
}

// biGlobal implements `global name [=] value`, writing straight into
// the global sandbox regardless of the current frame.
func biGlobal(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	name, value, err := parseSetArgs("global", args)
	if err != nil {
		return nil, err
	}
	interp.SetGlobal(name, value)
	return value, nil
}

func parseSetArgs(who string, args []runtime.Value) (name string, value runtime.Value, err error) {
	switch len(args) {
	case 2:
		return args[0].String(), args[1], nil
	case 3:
		if args[1].String() != "=" {
			return "", nil, argErr(who, "expected '=' as the second argument")
		}
		return args[0].String(), args[2], nil
	default:
		return "", nil, argErr(who, "expects name [=] value")
	}
}

// biList implements `list …`: a single argument is parsed by
// re-tokenizing its braced body; otherwise the arguments become the
// list verbatim (§4.6).
func biList(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 1 {
		items, err := parseListLiteral(args[0].String())
		if err != nil {
			return nil, err
		}
		return runtime.NewList(items), nil
	}
	items := make([]runtime.Value, len(args))
	copy(items, args)
	return runtime.NewList(items), nil
}

// parseListLiteral re-enters the tokenizer on src the way `list`'s
// original implementation does (§9's "parser re-entry" note,
// original_source/src/cutlet.cpp's interpreter::list): a nested BLOCK
// token becomes a nested list, recursively, and every other token
// (STRING, WORD, VARIABLE, ...) becomes one element carrying its own
// text verbatim, so `{1 {2 3} 4}` and `{"a b" c}` parse as three
// elements rather than being flattened by a whitespace split.
func parseListLiteral(src string) ([]runtime.Value, error) {
	tok := lexer.New()
	tok.Push(src, token.Position{Line: 1, Column: 1})

	var items []runtime.Value
	for {
		t, err := tok.GetToken()
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case token.EOF:
			return items, nil
		case token.EOL:
			// list bodies have no statement structure; a stray EOL
			// (a literal newline or `;`) is not itself an element.
		case token.BLOCK:
			nested, err := parseListLiteral(t.Text)
			if err != nil {
				return nil, err
			}
			items = append(items, runtime.NewList(nested))
		default:
			items = append(items, runtime.NewString(t.Text))
		}
	}
}

// biPrint implements `print …`: arguments joined by single spaces,
// plus a trailing newline, to the interpreter's configured stdout.
func biPrint(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	line := strings.Join(parts, " ")
	fmt.Fprintln(interp.Stdout(), line)
	return runtime.NewString(line), nil
}

// biSandbox implements `sandbox name`: creates a new isolated Sandbox
// bound to name as a component in the current sandbox, exposing
// eval/expr/link/unlink/clear/global/type operators on itself.
func biSandbox(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, argErr("sandbox", "expects a name")
	}
	name := args[0].String()
	child := runtime.NewSandbox(interp.Globals())
	Register(child)

	interp.Globals().Define(name, func(interp runtime.Interp, callArgs []runtime.Value) (runtime.Value, error) {
		return sandboxDispatch(interp, child, callArgs)
	})
	return runtime.NewString(name), nil
}

func sandboxDispatch(interp runtime.Interp, sb *runtime.Sandbox, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.NewString(""), nil
	}
	op := args[0].String()
	rest := args[1:]
	switch op {
	case "eval":
		if len(rest) != 1 {
			return nil, argErr("sandbox eval", "expects a body")
		}
		if _, err := interp.PushSandbox(sb, "sandbox"); err != nil {
			return nil, err
		}
		defer interp.PopFrame()
		return interp.EvalText(rest[0].String())
	case "expr":
		if len(rest) != 1 {
			return nil, argErr("sandbox expr", "expects an expression")
		}
		return interp.EvalExpr(rest[0].String())
	case "link":
		if len(rest) != 1 {
			return nil, argErr("sandbox link", "expects a name")
		}
		n := rest[0].String()
		if fn, ok := interp.Globals().ResolveComponent(n); ok {
			sb.Define(n, fn)
		}
		return runtime.NewString(""), nil
	case "unlink":
		if len(rest) != 1 {
			return nil, argErr("sandbox unlink", "expects a name")
		}
		delete(sb.Components, rest[0].String())
		return runtime.NewString(""), nil
	case "clear":
		sb.Vars = map[string]runtime.Value{}
		return runtime.NewString(""), nil
	case "global":
		if len(rest) < 1 {
			return nil, argErr("sandbox global", "expects a name")
		}
		name, value, err := parseSetArgs("sandbox global", append([]runtime.Value{rest[0]}, rest[1:]...))
		if err != nil {
			return nil, err
		}
		sb.SetVar(name, value)
		return value, nil
	case "type":
		return runtime.NewString("sandbox"), nil
	default:
		return nil, argErr("sandbox", "unknown operator "+op)
	}
}

// biUplevel implements `uplevel n body`: evaluate body as if it ran in
// the n-th ancestor frame.
func biUplevel(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, argErr("uplevel", "expects a level and a body")
	}
	n, err := parseInt(args[0].String())
	if err != nil {
		return nil, argErr("uplevel", "level must be an integer")
	}
	target := interp.Uplevel(n)
	return interp.EvalTextInFrame(target, args[1].String())
}

func parseInt(s string) (int, error) {
	n := 0
	neg := false
	i := 0
	if len(s) > 0 && s[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(s) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("not an integer: %q", s)
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
