// Package ast defines Cutlet's abstract syntax tree (§4.3) and the
// tree-walking evaluation contract (§4.4). Nodes depend only on
// runtime.Value/runtime.Interp and pkg/token, never on the parser or
// interpreter packages, so they can be built by the parser and walked
// by the interpreter without an import cycle.
package ast

import (
	"github.com/cutlet-lang/cutlet/internal/runtime"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Kind tags a node's concrete type, exposed for an external debugger
// hook or introspection tooling (the `cutlet parse` subcommand prints
// it; `cutlet lex` prints token kinds instead).
type Kind int

const (
	KindBlock Kind = iota
	KindCommand
	KindValue
	KindVariable
	KindStringInterp
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindCommand:
		return "command"
	case KindValue:
		return "value"
	case KindVariable:
		return "variable"
	case KindStringInterp:
		return "string-interp"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is one entry in the AST. Every node can evaluate itself against
// an interpreter, report its source location, and name its own kind.
type Node interface {
	Evaluate(interp runtime.Interp) (runtime.Value, error)
	Pos() token.Position
	Kind() Kind
}
