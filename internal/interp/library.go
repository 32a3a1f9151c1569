package interp

import (
	"os"
	"path/filepath"
	goruntime "runtime"
)

// nativeExt is the platform's shared-library suffix searched by
// `import`, mirroring spec §4.6's "name<soext>" native form.
var nativeExt = func() string {
	switch goruntime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}()

// ResolveLibrary searches LibraryPath for name.cutlet (source) or
// name<soext> (native), in that order, returning the resolved path
// and whether it is a native extension.
func (i *Interp) ResolveLibrary(name string) (path string, native bool, err error) {
	for _, dir := range i.libraryPath {
		src := filepath.Join(dir, name+".cutlet")
		if fileExists(src) {
			return src, false, nil
		}
		lib := filepath.Join(dir, name+nativeExt)
		if fileExists(lib) {
			return lib, true, nil
		}
	}
	return "", false, os.ErrNotExist
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
