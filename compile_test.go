package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCompileFile checks the whole pipeline from source file to listing
func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "prog.slt")
	output := filepath.Join(dir, "prog.s")

	source := "num x = 2\nnum y = (x + 3) * 4\ny = y % x\n"
	if err := os.WriteFile(input, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	if err := CompileFile(input, output); err != nil {
		t.Fatalf("CompileFile failed: %v", err)
	}

	listing, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read listing: %v", err)
	}
	for _, want := range []string{"_start:", "imul rax, rbx", "mov [rbp-16], rax"} {
		if !strings.Contains(string(listing), want) {
			t.Errorf("missing %q in listing:\n%s", want, listing)
		}
	}
}

// TestCompileFileReportsLocation checks that a compile error names the file
func TestCompileFileReportsLocation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.slt")
	if err := os.WriteFile(input, []byte("num x = (1 + 2\n"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	err := CompileFile(input, filepath.Join(dir, "bad.s"))
	expectCompileError(t, err, "mismatched parentheses")
	if !strings.Contains(err.Error(), "bad.slt:1") {
		t.Errorf("expected the file and line in %q", err.Error())
	}
}

// TestReadSourceFileValidation checks pre-parse diagnostics
func TestReadSourceFileValidation(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		_, err := ReadSourceFile("prog.txt")
		if err == nil || !strings.Contains(err.Error(), "invalid file") {
			t.Errorf("expected an invalid file error, got %v", err)
		}
	})

	t.Run("extension only", func(t *testing.T) {
		_, err := ReadSourceFile(".slt")
		if err == nil || !strings.Contains(err.Error(), "invalid file") {
			t.Errorf("expected an invalid file error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSourceFile(filepath.Join(t.TempDir(), "missing.slt"))
		if err == nil || !strings.Contains(err.Error(), "file not found") {
			t.Errorf("expected a file not found error, got %v", err)
		}
	})
}

// TestOutputPathFor checks the derived listing path
func TestOutputPathFor(t *testing.T) {
	if got := OutputPathFor("dir/prog.slt"); got != "dir/prog.s" {
		t.Errorf("expected dir/prog.s, got %s", got)
	}
}
