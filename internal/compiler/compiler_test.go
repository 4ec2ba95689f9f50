package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.csc")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileProducesArtifacts(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `program demo {
		declare x enddeclare
		x := 1 + 2;
		print(x)
	}`)

	res, err := Compile(Options{InputPath: path}, nil)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	for _, p := range []string{res.IntPath, res.AsmPath, res.CPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected artifact %q to exist: %v", p, err)
		}
	}

	asm, err := os.ReadFile(res.AsmPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(asm), ".globl") {
		t.Errorf("assembly output missing .globl prologue:\n%s", asm)
	}
}

func TestCompileRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	os.WriteFile(path, []byte("program demo {}"), 0o644)

	if _, err := Compile(Options{InputPath: path}, nil); err == nil {
		t.Fatal("expected an error for a non-.csc input file")
	}
}

func TestCompileCleansUpOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `program demo {
		declare x enddeclare
		x := y;
	}`)

	if _, err := Compile(Options{InputPath: path}, nil); err == nil {
		t.Fatal("expected a compile error for the undeclared identifier")
	}

	base := Basename(path)
	intPath := filepath.Join(dir, base+".int")
	if _, err := os.Stat(intPath); err == nil {
		t.Errorf("expected %q to be removed after a fatal diagnostic", intPath)
	}
}
