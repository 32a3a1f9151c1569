package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cutlet-lang/cutlet/internal/runtime"
)

// exprEvaluator implements the small arithmetic/comparison grammar
// that backs the `expr` built-in and every while/if/for condition
// (spec scenarios 2 and 5: `[expr $a + $b]`, `{$i < 3}`). Cutlet has
// no Integer value type — operands are parsed out of, and results
// formatted back into, plain strings, the way the original Tcl-like
// core's expr() helper treats its operands as numeric text.
type exprEvaluator struct {
	src    string
	pos    int
	interp runtime.Interp
}

func evalExprString(interp runtime.Interp, src string) (runtime.Value, error) {
	e := &exprEvaluator{src: src, interp: interp}
	v, err := e.parseOr()
	if err != nil {
		return nil, err
	}
	e.skipSpace()
	if e.pos != len(e.src) {
		return nil, fmt.Errorf("expr: unexpected input at %q", e.src[e.pos:])
	}
	return v, nil
}

func (e *exprEvaluator) skipSpace() {
	for e.pos < len(e.src) && (e.src[e.pos] == ' ' || e.src[e.pos] == '\t') {
		e.pos++
	}
}

func isExprIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// peekOp reports which of ops matches at the current position, or ""
// if none does. A keyword operator ("or", "and") only matches at a
// word boundary, so a bareword like "orange" isn't mis-split into the
// operator "or" plus a leftover "ange".
func (e *exprEvaluator) peekOp(ops ...string) string {
	e.skipSpace()
	rest := e.src[e.pos:]
	for _, op := range ops {
		if !strings.HasPrefix(rest, op) {
			continue
		}
		if isExprIdentByte(op[len(op)-1]) && len(rest) > len(op) && isExprIdentByte(rest[len(op)]) {
			continue
		}
		return op
	}
	return ""
}

func (e *exprEvaluator) parseOr() (runtime.Value, error) {
	left, err := e.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("||", "or")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseAnd()
		if err != nil {
			return nil, err
		}
		left = runtime.NewBoolean(runtime.CoerceBoolean(left) || runtime.CoerceBoolean(right))
	}
}

func (e *exprEvaluator) parseAnd() (runtime.Value, error) {
	left, err := e.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("&&", "and")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseEquality()
		if err != nil {
			return nil, err
		}
		left = runtime.NewBoolean(runtime.CoerceBoolean(left) && runtime.CoerceBoolean(right))
	}
}

func (e *exprEvaluator) parseEquality() (runtime.Value, error) {
	left, err := e.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("==", "!=")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseComparison()
		if err != nil {
			return nil, err
		}
		eq := numericOrStringEqual(left, right)
		if op == "==" {
			left = runtime.NewBoolean(eq)
		} else {
			left = runtime.NewBoolean(!eq)
		}
	}
}

func (e *exprEvaluator) parseComparison() (runtime.Value, error) {
	left, err := e.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("<=", ">=", "<", ">")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseAdditive()
		if err != nil {
			return nil, err
		}
		a, err := toFloat(left)
		if err != nil {
			return nil, err
		}
		b, err := toFloat(right)
		if err != nil {
			return nil, err
		}
		var result bool
		switch op {
		case "<":
			result = a < b
		case "<=":
			result = a <= b
		case ">":
			result = a > b
		case ">=":
			result = a >= b
		}
		left = runtime.NewBoolean(result)
	}
}

func (e *exprEvaluator) parseAdditive() (runtime.Value, error) {
	left, err := e.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("+", "-")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseTerm()
		if err != nil {
			return nil, err
		}
		a, err := toFloat(left)
		if err != nil {
			return nil, err
		}
		b, err := toFloat(right)
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = runtime.NewString(formatNumber(a + b))
		} else {
			left = runtime.NewString(formatNumber(a - b))
		}
	}
}

func (e *exprEvaluator) parseTerm() (runtime.Value, error) {
	left, err := e.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := e.peekOp("*", "/", "%")
		if op == "" {
			return left, nil
		}
		e.pos += len(op)
		right, err := e.parseUnary()
		if err != nil {
			return nil, err
		}
		a, err := toFloat(left)
		if err != nil {
			return nil, err
		}
		b, err := toFloat(right)
		if err != nil {
			return nil, err
		}
		switch op {
		case "*":
			left = runtime.NewString(formatNumber(a * b))
		case "/":
			if b == 0 {
				return nil, fmt.Errorf("expr: division by zero")
			}
			left = runtime.NewString(formatNumber(a / b))
		case "%":
			if b == 0 {
				return nil, fmt.Errorf("expr: division by zero")
			}
			left = runtime.NewString(formatNumber(float64(int64(a) % int64(b))))
		}
	}
}

func (e *exprEvaluator) parseUnary() (runtime.Value, error) {
	e.skipSpace()
	if e.pos < len(e.src) && e.src[e.pos] == '-' {
		e.pos++
		v, err := e.parseUnary()
		if err != nil {
			return nil, err
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return runtime.NewString(formatNumber(-f)), nil
	}
	if e.pos < len(e.src) && (e.src[e.pos] == '!') {
		e.pos++
		v, err := e.parseUnary()
		if err != nil {
			return nil, err
		}
		return runtime.NewBoolean(!runtime.CoerceBoolean(v)), nil
	}
	return e.parsePrimary()
}

func (e *exprEvaluator) parsePrimary() (runtime.Value, error) {
	e.skipSpace()
	if e.pos >= len(e.src) {
		return nil, fmt.Errorf("expr: unexpected end of expression")
	}
	if e.src[e.pos] == '(' {
		e.pos++
		v, err := e.parseOr()
		if err != nil {
			return nil, err
		}
		e.skipSpace()
		if e.pos >= len(e.src) || e.src[e.pos] != ')' {
			return nil, fmt.Errorf("expr: missing closing paren")
		}
		e.pos++
		return v, nil
	}

	if e.src[e.pos] == '$' {
		start := e.pos
		e.pos++
		for e.pos < len(e.src) && isExprNameByte(e.src[e.pos]) {
			e.pos++
		}
		name := e.src[start+1 : e.pos]
		if e.interp == nil {
			return nil, fmt.Errorf("expr: cannot resolve $%s without an interpreter", name)
		}
		v, err := e.interp.LookupVar(name)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	start := e.pos
	for e.pos < len(e.src) {
		c := e.src[e.pos]
		if c == ' ' || c == '\t' || c == '(' || c == ')' {
			break
		}
		if strings.ContainsAny(string(c), "+-*/%<>=!&|") && e.pos > start {
			break
		}
		e.pos++
	}
	tok := e.src[start:e.pos]
	if tok == "" {
		return nil, fmt.Errorf("expr: unexpected character %q", string(e.src[e.pos]))
	}
	if tok == "true" || tok == "false" {
		return runtime.NewBoolean(tok == "true"), nil
	}
	return runtime.NewString(tok), nil
}

func isExprNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func toFloat(v runtime.Value) (float64, error) {
	s := strings.TrimSpace(v.String())
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expr: not a number: %q", s)
	}
	return f, nil
}

func numericOrStringEqual(a, b runtime.Value) bool {
	af, aerr := toFloat(a)
	bf, berr := toFloat(b)
	if aerr == nil && berr == nil {
		return af == bf
	}
	return a.String() == b.String()
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
