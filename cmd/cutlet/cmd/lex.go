package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutlet-lang/cutlet/internal/lexer"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Cutlet script and print the resulting tokens",
	Long: `Tokenize (lex) a Cutlet script and print the resulting token stream,
one token per line: the kind, the quoted text, and the position. Useful for debugging the tokenizer
and for a host debugger hook built on the A_* kind constants (§9).`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexScript(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	tok := lexer.New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	for {
		t, err := tok.GetToken()
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %q (%s)\n", t.Kind, t.Text, t.Pos)
		if t.Kind == token.EOF {
			break
		}
	}
	return nil
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
