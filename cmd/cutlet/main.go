// Command cutlet is the CLI driver around pkg/cutlet: run scripts from
// files or stdin, or inspect the tokenizer/parser stages directly.
package main

import (
	"os"

	"github.com/cutlet-lang/cutlet/cmd/cutlet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
