package cerr

import (
	"errors"
	"testing"
)

func TestNewWrapsFormattedMessage(t *testing.T) {
	err := New(Syntax, "expected %s, found %s", "IDENT", "NUMBER")
	if err.Cat != Syntax {
		t.Errorf("Cat = %d, want %d", err.Cat, Syntax)
	}
	want := "category 3: expected IDENT, found NUMBER"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapExposesUnderlyingError(t *testing.T) {
	err := New(Internal, "boom")
	if errors.Unwrap(error(err)) == nil {
		t.Fatal("expected Unwrap to expose the underlying error")
	}
}
