package cmd

import (
	"os"
	"strings"
)

// libraryPath builds the full `import` search path (§6.3): CUTLETPATH
// (colon-separated) first, then the -i/--include flags, then the
// compiled-in PkgLibDir.
func libraryPath() []string {
	var paths []string
	if env := os.Getenv("CUTLETPATH"); env != "" {
		paths = append(paths, strings.Split(env, ":")...)
	}
	paths = append(paths, includePaths...)
	if PkgLibDir != "" {
		paths = append(paths, PkgLibDir)
	}
	return paths
}
