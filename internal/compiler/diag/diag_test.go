package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportMarksHadError(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf, "nonexistent.csc", false)
	if d.HadError() {
		t.Fatal("HadError() should be false before any report")
	}
	d.Report(Warning, 1, 1, "just a warning")
	if d.HadError() {
		t.Fatal("a Warning must not mark HadError")
	}
	d.Report(Error, 1, 1, "boom")
	if !d.HadError() {
		t.Fatal("an Error must mark HadError")
	}
}

func TestReportIncludesSourceLineAndCaret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.csc")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	d := New(&buf, path, false)
	d.Report(Error, 2, 3, "bad token")

	out := buf.String()
	if !strings.Contains(out, "line two") {
		t.Errorf("expected the offending source line in output:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret in output:\n%s", out)
	}
	if !strings.Contains(out, "prog.csc:2:3") {
		t.Errorf("expected file:line:col in output:\n%s", out)
	}
}
