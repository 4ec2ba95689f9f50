package token

import "testing"

func TestKeywordsMapsAllReservedWords(t *testing.T) {
	for word, kind := range Keywords {
		if kind.String() != word {
			t.Errorf("Keywords[%q] = %s, want String() == %q", word, kind, word)
		}
	}
}

func TestUnknownKindStringsFallBack(t *testing.T) {
	var k Kind = 9999
	if got := k.String(); got == "" {
		t.Error("expected a non-empty fallback string for an unknown Kind")
	}
}

func TestTokenStringIncludesPosition(t *testing.T) {
	tok := Token{Kind: IDENT, Lexeme: "x", Line: 3, Col: 5}
	want := `IDENT("x")@3:5`
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
