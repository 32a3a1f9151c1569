package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutlet-lang/cutlet/pkg/cutlet"
)

// LineReader supplies one line at a time for interactive (TTY) input.
// The default implementation just buffers a bufio.Scanner; a host
// embedding the CLI's REPL loop can swap in a readline-style editor
// (line editing itself is out of scope, per spec §1).
type LineReader interface {
	ReadLine() (string, bool)
}

type scannerLineReader struct{ sc *bufio.Scanner }

func (r *scannerLineReader) ReadLine() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	return r.sc.Text(), true
}

func newLineReader(r io.Reader) LineReader {
	return &scannerLineReader{sc: bufio.NewScanner(r)}
}

// isTerminal reports whether f is an interactive character device
// rather than a pipe or redirected file (§6.2's TTY-vs-stdin dispatch).
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func runDefault(_ *cobra.Command, args []string) error {
	in := cutlet.New(cutlet.WithLibraryPath(libraryPath()))

	if len(args) > 0 {
		return runFiles(in, args)
	}

	if isTerminal(os.Stdin) {
		return runREPL(in, os.Stdin, os.Stdout)
	}
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return runOne(in, string(src))
}

func runFiles(in *cutlet.Interpreter, paths []string) error {
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := runOne(in, string(src)); err != nil {
			return err
		}
	}
	return nil
}

func runOne(in *cutlet.Interpreter, src string) error {
	res, err := in.Run(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(res.ExitCode)
	}
	if res.ExitCode != 0 {
		os.Exit(res.ExitCode)
	}
	return nil
}

func runREPL(in *cutlet.Interpreter, stdin io.Reader, stdout io.Writer) error {
	reader := newLineReader(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		line, ok := reader.ReadLine()
		if !ok {
			return nil
		}
		res, err := in.Eval(line + "\n")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if res.Value != "" {
			fmt.Fprintln(stdout, res.Value)
		}
	}
}
