package source

import (
	"strings"
	"testing"
)

func TestNextTracksLineAndColumn(t *testing.T) {
	r := New(strings.NewReader("ab\ncd"))
	want := []struct {
		b          byte
		line, col int
	}{
		{'a', 1, 1}, {'b', 1, 2}, {'\n', 2, 0}, {'c', 2, 1}, {'d', 2, 2},
	}
	for i, w := range want {
		b, ok := r.Next()
		if !ok {
			t.Fatalf("byte %d: unexpected EOF", i)
		}
		if b != w.b {
			t.Fatalf("byte %d: got %q, want %q", i, b, w.b)
		}
		line, col := r.Pos()
		if line != w.line || col != w.col {
			t.Fatalf("byte %d: pos = %d:%d, want %d:%d", i, line, col, w.line, w.col)
		}
	}
	if _, ok := r.Next(); ok {
		t.Fatal("expected EOF")
	}
}

func TestPushbackReplaysSameByteAndPosition(t *testing.T) {
	r := New(strings.NewReader("xy"))
	b, _ := r.Next() // 'x'
	if b != 'x' {
		t.Fatalf("got %q, want 'x'", b)
	}
	lineBefore, colBefore := r.Pos()

	next, _ := r.Next() // 'y'
	if next != 'y' {
		t.Fatalf("got %q, want 'y'", next)
	}
	r.Pushback(next)

	line, col := r.Pos()
	if line != lineBefore || col != colBefore {
		t.Fatalf("after Pushback, pos = %d:%d, want %d:%d", line, col, lineBefore, colBefore)
	}

	replayed, ok := r.Next()
	if !ok || replayed != 'y' {
		t.Fatalf("expected to replay 'y', got %q, ok=%v", replayed, ok)
	}
}
