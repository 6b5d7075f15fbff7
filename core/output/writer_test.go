package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSection_NestedPath(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.WriteSection(filepath.Join("04-language-features", "01-vars.md"), []byte("# Vars\n"))
	if err != nil {
		t.Fatalf("WriteSection() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "# Vars\n" {
		t.Errorf("content = %q", data)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q should be under %q", path, dir)
	}
}

func TestWriteSection_Overwrites(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.WriteSection("README.md", []byte("old\n")); err != nil {
		t.Fatal(err)
	}
	path, err := w.WriteSection("README.md", []byte("new\n"))
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new\n" {
		t.Errorf("content = %q, want overwritten content", data)
	}
}

func TestWriteConverted_NameFromInput(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.WriteConverted("/docs/My Style Guide.htm", []byte("# G\n"), ".md")
	if err != nil {
		t.Fatalf("WriteConverted() error: %v", err)
	}
	if got := filepath.Base(path); got != "My_Style_Guide.md" {
		t.Errorf("filename = %q, want My_Style_Guide.md", got)
	}
}

func TestNew_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if _, err := New(dir); err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output dir should exist: %v", err)
	}
}
