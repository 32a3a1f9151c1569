package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree representation of n to w, one node per
// line as "kind text @ position", for the `cutlet parse` debug
// subcommand and for an external debugger hook (§9's node-kind-tag
// requirement).
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Block:
		fmt.Fprintf(w, "%s%s @ %s\n", indent, v.Kind(), v.Pos())
		for _, c := range v.Children {
			dump(w, c, depth+1)
		}
	case *Value:
		fmt.Fprintf(w, "%s%s %q @ %s\n", indent, v.Kind(), v.Tok.Text, v.Pos())
	case *Comment:
		fmt.Fprintf(w, "%s%s %q @ %s\n", indent, v.Kind(), v.Tok.Text, v.Pos())
	case *Variable:
		fmt.Fprintf(w, "%s%s $%s @ %s\n", indent, v.Kind(), v.Tok.Text, v.Pos())
	case *StringInterp:
		fmt.Fprintf(w, "%s%s @ %s\n", indent, v.Kind(), v.Pos())
		for _, part := range v.Parts {
			if part.Node == nil {
				fmt.Fprintf(w, "%s  literal %q\n", indent, part.Literal)
				continue
			}
			dump(w, part.Node, depth+1)
		}
	case *Command:
		fmt.Fprintf(w, "%s%s @ %s\n", indent, v.Kind(), v.Pos())
		fmt.Fprintf(w, "%shead:\n", indent)
		dump(w, v.Head, depth+1)
		if len(v.Args) > 0 {
			fmt.Fprintf(w, "%sargs:\n", indent)
			for _, a := range v.Args {
				dump(w, a, depth+1)
			}
		}
	default:
		fmt.Fprintf(w, "%s%s @ %s\n", indent, n.Kind(), n.Pos())
	}
}
