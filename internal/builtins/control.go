package builtins

import (
	"strings"

	"github.com/cutlet-lang/cutlet/internal/runtime"
)

// biIf implements `if cond then-block [elseif cond block]* [else
// block]` (§10, supplemented from original_source/src/builtin.cpp).
// Each branch runs in its own Block frame.
func biIf(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	i := 0
	for i < len(args) {
		switch {
		case i == 0 || args[i].String() == "elseif":
			start := i
			if args[i].String() == "elseif" {
				start = i + 1
			}
			if start+1 >= len(args) {
				return nil, argErr("if", "missing condition or body")
			}
			cond := args[start]
			body := args[start+1]
			i = start + 2

			truth, err := evalCondition(interp, cond)
			if err != nil {
				return nil, err
			}
			if truth {
				return runBlockFrame(interp, "if", body.String())
			}
		case args[i].String() == "else":
			if i+1 >= len(args) {
				return nil, argErr("if", "missing else body")
			}
			return runBlockFrame(interp, "else", args[i+1].String())
		default:
			return nil, argErr("if", "unexpected argument "+args[i].String())
		}
	}
	return runtime.NewString(""), nil
}

func evalCondition(interp runtime.Interp, v runtime.Value) (bool, error) {
	if b, ok := v.(*runtime.Boolean); ok {
		return b.Bool(), nil
	}
	result, err := interp.EvalExpr(v.String())
	if err != nil {
		return false, err
	}
	return runtime.CoerceBoolean(result), nil
}

func runBlockFrame(interp runtime.Interp, label, body string) (runtime.Value, error) {
	if _, err := interp.PushFrame(runtime.BlockFrame, label); err != nil {
		return nil, err
	}
	defer interp.PopFrame()
	return interp.EvalText(body)
}

// biWhile implements `while cond body`: re-evaluates cond and body
// inside a single Loop frame until cond is false or the body breaks.
func biWhile(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, argErr("while", "expects a condition and a body")
	}
	cond, body := args[0], args[1].String()

	frame, err := interp.PushFrame(runtime.LoopFrame, "while")
	if err != nil {
		return nil, err
	}
	defer interp.PopFrame()

	var result runtime.Value = runtime.NewString("")
	for {
		truth, err := evalCondition(interp, cond)
		if err != nil {
			return nil, err
		}
		if !truth {
			break
		}
		v, err := interp.EvalText(body)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		}
		switch frame.State {
		case runtime.Break:
			frame.State = runtime.Running
			return result, nil
		case runtime.Continue:
			frame.State = runtime.Running
		case runtime.Done:
			return result, nil
		}
	}
	return result, nil
}

// biFor implements `for init cond step body`, the classic counted
// loop form carried over from original_source/src/builtin.cpp.
func biFor(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 4 {
		return nil, argErr("for", "expects init, condition, step, and body")
	}
	init, cond, step, body := args[0].String(), args[1], args[2].String(), args[3].String()

	frame, err := interp.PushFrame(runtime.LoopFrame, "for")
	if err != nil {
		return nil, err
	}
	defer interp.PopFrame()

	if _, err := interp.EvalText(init); err != nil {
		return nil, err
	}

	var result runtime.Value = runtime.NewString("")
	for {
		truth, err := evalCondition(interp, cond)
		if err != nil {
			return nil, err
		}
		if !truth {
			break
		}
		v, err := interp.EvalText(body)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		}
		switch frame.State {
		case runtime.Break:
			frame.State = runtime.Running
			return result, nil
		case runtime.Continue:
			frame.State = runtime.Running
		case runtime.Done:
			return result, nil
		}
		if _, err := interp.EvalText(step); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// biForeach implements the standalone `foreach name list body` form
// (distinct from the `$list foreach` method): iterates a list value's
// items, or the whitespace-separated words of any other value, binding
// each to name in the current frame's nearest-existing-else-local slot.
func biForeach(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, argErr("foreach", "expects name, list, and body")
	}
	name := args[0].String()
	body := args[2].String()

	var items []runtime.Value
	if lst, ok := args[1].(*runtime.List); ok {
		items = lst.Items()
	} else {
		for _, f := range strings.Fields(args[1].String()) {
			items = append(items, runtime.NewString(f))
		}
	}

	frame, err := interp.PushFrame(runtime.LoopFrame, "foreach")
	if err != nil {
		return nil, err
	}
	defer interp.PopFrame()

	var result runtime.Value = runtime.NewString("")
	for _, item := range items {
		interp.Assign(name, item)
		v, err := interp.EvalText(body)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		}
		switch frame.State {
		case runtime.Break:
			frame.State = runtime.Running
			return result, nil
		case runtime.Continue:
			frame.State = runtime.Running
		case runtime.Done:
			return result, nil
		}
	}
	return result, nil
}

// biBreak/biContinue implement `break`/`continue`, cascading through
// the frame chain to the nearest enclosing Loop frame (§4.5).
func biBreak(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	interp.Frame().SetBreak()
	return runtime.NewString(""), nil
}

func biContinue(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	interp.Frame().SetContinue()
	return runtime.NewString(""), nil
}

// biTry implements `try body [catch errVar handler]`, the handler
// pair original_source/src/cutlet.cpp registers to consume runtime
// errors raised from a surrounding body (§7 policy: "errors ... until
// a surrounding try consumes them").
func biTry(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, argErr("try", "expects a body")
	}
	body := args[0].String()

	result, err := runBlockFrame(interp, "try", body)
	if err == nil {
		return result, nil
	}

	if len(args) < 3 || args[1].String() != "catch" {
		return nil, err
	}
	errVar := args[2].String()
	var handler string
	if len(args) >= 4 {
		handler = args[3].String()
	}
	interp.Assign(errVar, runtime.NewString(err.Error()))
	if handler == "" {
		return runtime.NewString(""), nil
	}
	return runBlockFrame(interp, "catch", handler)
}

// biExpr implements the `expr` built-in (§4.6 via §10): its arguments
// have already been evaluated (variables substituted) by the time
// Command dispatch calls it, so it just joins them with spaces and
// runs the arithmetic/comparison grammar.
func biExpr(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	joined := joinArgs(args)
	return interp.EvalExpr(joined)
}

// biEval implements `eval body`: compiles and runs body as Cutlet
// source in the current frame, the general-purpose counterpart to
// `expr`'s arithmetic-only grammar.
func biEval(interp runtime.Interp, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, argErr("eval", "expects a body")
	}
	return interp.EvalText(args[0].String())
}

func joinArgs(args []runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
