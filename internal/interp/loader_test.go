package interp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExtensionMissingFileFails(t *testing.T) {
	i := New()
	if err := i.LoadExtension(filepath.Join(t.TempDir(), "nope"+nativeExt)); err == nil {
		t.Error("expected an error loading a nonexistent extension")
	}
}

func TestLoadExtensionNotAPluginFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus"+nativeExt)
	if err := os.WriteFile(path, []byte("not an ELF shared object"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New()
	if err := i.LoadExtension(path); err == nil {
		t.Error("expected an error loading a malformed extension")
	}
}
