package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cutlet-lang/cutlet/internal/ast"
	"github.com/cutlet-lang/cutlet/internal/lexer"
	"github.com/cutlet-lang/cutlet/internal/parser"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Cutlet script and dump the resulting AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseScript(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	tok := lexer.New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	block, err := parser.New(tok).ParseProgram()
	if err != nil {
		return err
	}
	ast.Dump(os.Stdout, block)
	return nil
}
