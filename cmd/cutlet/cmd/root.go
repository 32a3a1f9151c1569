// Package cmd implements the cutlet CLI driver's cobra command tree
// (§6.2): a root command plus run/lex/parse/version subcommands,
// grounded on the teacher's cmd/dwscript/cmd package layout.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags (-ldflags -X), mirroring
	// the teacher's Version/GitCommit/BuildDate pattern.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	// PkgLibDir is the compiled-in library search directory always
	// appended after CUTLETPATH (§6.3).
	PkgLibDir = ""
)

var includePaths []string

var rootCmd = &cobra.Command{
	Use:     "cutlet [script...]",
	Short:   "Cutlet embeddable scripting language interpreter",
	Version: Version,
	Long: `cutlet runs Cutlet scripts: a small Tcl-like command language built
around commands, variables, and braced blocks.

With no arguments and a TTY stdin, cutlet reads and evaluates one line
at a time. With no arguments and a piped stdin, it reads all of stdin
as a single script. Otherwise each positional argument is a script
file path, run in sequence.`,
	RunE: runDefault,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringArrayVarP(&includePaths, "include", "i", nil,
		"append a directory to the library search path (repeatable)")
	// Declared here so cobra uses -V rather than its default -v.
	rootCmd.Flags().BoolP("version", "V", false, "print version information")
}
