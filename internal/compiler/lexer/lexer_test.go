package lexer

import (
	"strings"
	"testing"

	"github.com/csc-lang/ciscal/internal/compiler/source"
	"github.com/csc-lang/ciscal/internal/compiler/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(source.New(strings.NewReader(src)))
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lexical error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScansKeywordsIdentsAndNumbers(t *testing.T) {
	toks := scanAll(t, "program foo declare x, y enddeclare")
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.PROGRAM, token.IDENT, token.DECLARE, token.IDENT, token.COMMA, token.IDENT, token.ENDDECLARE, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestScansTwoCharacterOperators(t *testing.T) {
	toks := scanAll(t, "<= <> >= := < >")
	want := []token.Kind{token.LE, token.NE, token.GE, token.ASSIGN, token.LT, token.GT, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestNonNestingComment(t *testing.T) {
	toks := scanAll(t, `x \* a comment \* still inside *\ y`)
	want := []token.Kind{token.IDENT, token.IDENT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	if toks[0].Lexeme != "x" || toks[1].Lexeme != "y" {
		t.Errorf("got lexemes %q, %q; want x, y", toks[0].Lexeme, toks[1].Lexeme)
	}
}

func TestDigitThenLetterIsLexicalError(t *testing.T) {
	l := New(source.New(strings.NewReader("12ab")))
	if _, err := l.Next(); err == nil {
		t.Fatal("expected a lexical error for a number directly followed by a letter")
	}
}

func TestIdentifierTruncatedAtMaxLen(t *testing.T) {
	long := strings.Repeat("a", token.MaxIdentLen+10)
	toks := scanAll(t, long)
	if len(toks[0].Lexeme) != token.MaxIdentLen {
		t.Errorf("lexeme length = %d, want %d", len(toks[0].Lexeme), token.MaxIdentLen)
	}
}
