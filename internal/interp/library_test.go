package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLibraryFindsSourceModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.cutlet"), []byte("print \"hi\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New(WithLibraryPath([]string{dir}))

	path, native, err := i.ResolveLibrary("greet")
	if err != nil {
		t.Fatalf("ResolveLibrary: %v", err)
	}
	if native {
		t.Error("greet.cutlet should not resolve as native")
	}
	if filepath.Base(path) != "greet.cutlet" {
		t.Errorf("got path %q", path)
	}
}

func TestResolveLibraryFindsNativeModule(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "shell"+nativeExt)
	if err := os.WriteFile(libPath, []byte("not a real plugin"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New(WithLibraryPath([]string{dir}))

	path, native, err := i.ResolveLibrary("shell")
	if err != nil {
		t.Fatalf("ResolveLibrary: %v", err)
	}
	if !native {
		t.Error("shell" + nativeExt + " should resolve as native")
	}
	if path != libPath {
		t.Errorf("got path %q, want %q", path, libPath)
	}
}

func TestResolveLibrarySearchesInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.WriteFile(filepath.Join(second, "util.cutlet"), []byte("\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New(WithLibraryPath([]string{first, second}))

	path, _, err := i.ResolveLibrary("util")
	if err != nil {
		t.Fatalf("ResolveLibrary: %v", err)
	}
	if filepath.Dir(path) != second {
		t.Errorf("got %q, want module resolved from %q", path, second)
	}
}

func TestResolveLibraryNotFound(t *testing.T) {
	i := New(WithLibraryPath([]string{t.TempDir()}))
	if _, _, err := i.ResolveLibrary("nope"); err == nil {
		t.Error("expected an error for an unresolvable module name")
	}
}

func TestAddLibraryPathAppendsToSearchOrder(t *testing.T) {
	i := New()
	if len(i.LibraryPath()) != 0 {
		t.Fatalf("expected an empty initial library path, got %v", i.LibraryPath())
	}
	i.AddLibraryPath("/a", "/b")
	got := i.LibraryPath()
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("got %v", got)
	}
}

func TestBiIncludeEvaluatesFileInCurrentFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.cutlet")
	if err := os.WriteFile(path, []byte("local x = 42\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New()
	if _, err := i.Run("include \"" + path + "\"\nprint $x\n"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestBiImportRunsSourceModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.cutlet"), []byte("def greet {} { print \"hi\" }\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	i := New(WithLibraryPath([]string{dir}))
	if _, err := i.Run("import greet\ngreet\n"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestBiImportMissingModuleFails(t *testing.T) {
	i := New(WithLibraryPath([]string{t.TempDir()}))
	if _, err := i.Run("import nope\n"); err == nil {
		t.Error("expected an error importing an unresolvable module")
	}
}

func TestBiImportTopLevelReturnDoesNotEscapeCallingFunction(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mod.cutlet"), []byte("local loaded = 1\nreturn\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var buf bytes.Buffer
	i := New(WithLibraryPath([]string{dir}), WithStdout(&buf))
	if _, err := i.Run("def loadAndFinish {} { import mod\nreturn done }\nprint [loadAndFinish]\n"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if buf.String() != "done\n" {
		t.Fatalf("got %q", buf.String())
	}
}
