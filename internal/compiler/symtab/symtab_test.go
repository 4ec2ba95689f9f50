package symtab

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrameLengthLaw(t *testing.T) {
	s := NewRoot()
	if _, err := s.AddVariable("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddVariable("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddParameter("p", CV); err != nil {
		t.Fatal(err)
	}
	s.AddTemporary("T_1")

	want := 12 + 4*4
	if got := s.FrameLength(); got != want {
		t.Errorf("FrameLength() = %d, want %d", got, want)
	}
}

func TestOffsetsAreUniqueAndSequential(t *testing.T) {
	s := NewRoot()
	a, _ := s.AddVariable("a")
	b, _ := s.AddVariable("b")
	p, _ := s.AddParameter("p", REF)

	offsets := []int{a.Offset, b.Offset, p.Offset}
	seen := map[int]bool{}
	for i, off := range offsets {
		if seen[off] {
			t.Fatalf("offset %d reused at position %d", off, i)
		}
		seen[off] = true
	}
	if a.Offset != 12 || b.Offset != 16 || p.Offset != 20 {
		t.Errorf("got offsets %d, %d, %d; want 12, 16, 20", a.Offset, b.Offset, p.Offset)
	}
}

func TestVariableParameterCollisionRejected(t *testing.T) {
	s := NewRoot()
	if _, err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddParameter("x", CV); err == nil {
		t.Fatal("expected a collision error declaring a parameter with the same name as an existing variable")
	}
}

func TestLookupWalksEnclosingScopes(t *testing.T) {
	root := NewRoot()
	root.AddVariable("g")
	child := root.Push()

	ent, level, ok := Lookup(child, "g")
	if !ok {
		t.Fatal("expected to find 'g' via the enclosing scope")
	}
	if level != 0 {
		t.Errorf("level = %d, want 0", level)
	}
	if diff := cmp.Diff(&Variable{Name: "g", Offset: 12}, ent); diff != "" {
		t.Errorf("entity mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupFunctionSkipsNonFunctionBindings(t *testing.T) {
	root := NewRoot()
	if _, err := root.AddVariable("f"); err != nil {
		t.Fatal(err)
	}
	fn, err := root.AddFunction("f", Int)
	if err != nil {
		t.Fatal(err)
	}
	fn.Args = []Argument{{Mode: CV}, {Mode: REF}}

	got, ok := LookupFunction(root, "f")
	if !ok || got != fn {
		t.Fatal("expected to find the declared function entity")
	}
}
