/*
 * CiScal Compiler - Lexer
 *
 * Copyright 2026, CiScal Compiler Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package lexer implements CiScal's deterministic finite-state tokenizer.
package lexer

import (
	"fmt"

	"github.com/csc-lang/ciscal/internal/compiler/source"
	"github.com/csc-lang/ciscal/internal/compiler/token"
)

// Error is a lexical error (category E2): an unrecognized character, an
// identifier-like token starting with a digit run followed by a letter, or
// an unterminated comment.
type Error struct {
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

var punctKinds = map[byte]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'=': token.EQ,
	',': token.COMMA,
	';': token.SEMI,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
}

// Lexer tokenizes CiScal source read from a *source.Reader.
type Lexer struct {
	r *source.Reader
}

// New builds a Lexer reading from r.
func New(r *source.Reader) *Lexer {
	return &Lexer{r: r}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Next scans and returns the next token, implementing the DFA of states 0-8
// described by the component design: state 0 dispatches on the lookahead
// character, states 1/2 accumulate an identifier or number, states 3-5
// disambiguate the two-character operators, and states 6-8 consume a
// \* ... *\ comment (which does not nest) before resuming state 0.
func (l *Lexer) Next() (token.Token, error) {
	for {
		b, ok := l.r.Next()
		if !ok {
			line, col := l.r.Pos()
			return token.Token{Kind: token.EOF, Line: line, Col: col}, nil
		}
		startLine, startCol := l.r.Pos()

		switch {
		case isSpace(b):
			continue
		case isAlpha(b):
			return l.scanIdent(b, startLine, startCol)
		case isDigit(b):
			return l.scanNumber(b, startLine, startCol)
		case b == '<':
			return l.scanLess(startLine, startCol)
		case b == '>':
			return l.scanGreater(startLine, startCol)
		case b == ':':
			return l.scanColon(startLine, startCol)
		case b == '\\':
			if err := l.scanComment(startLine, startCol); err != nil {
				return token.Token{}, err
			}
			continue
		default:
			if k, ok := punctKinds[b]; ok {
				return token.Token{Kind: k, Lexeme: string(b), Line: startLine, Col: startCol}, nil
			}
			return token.Token{}, &Error{startLine, startCol, fmt.Sprintf("unrecognized character %q", b)}
		}
	}
}

func (l *Lexer) scanIdent(first byte, line, col int) (token.Token, error) {
	lexeme := []byte{first}
	for {
		b, ok := l.r.Next()
		if !ok {
			break
		}
		if isAlpha(b) || isDigit(b) {
			lexeme = append(lexeme, b)
			continue
		}
		l.r.Pushback(b)
		break
	}
	text := string(lexeme)
	if k, ok := token.Keywords[text]; ok {
		return token.Token{Kind: k, Lexeme: text, Line: line, Col: col}, nil
	}
	if len(text) > token.MaxIdentLen {
		text = text[:token.MaxIdentLen]
	}
	return token.Token{Kind: token.IDENT, Lexeme: text, Line: line, Col: col}, nil
}

func (l *Lexer) scanNumber(first byte, line, col int) (token.Token, error) {
	lexeme := []byte{first}
	for {
		b, ok := l.r.Next()
		if !ok {
			break
		}
		if isDigit(b) {
			lexeme = append(lexeme, b)
			continue
		}
		if isAlpha(b) {
			return token.Token{}, &Error{line, col, "identifiers must not start with a digit"}
		}
		l.r.Pushback(b)
		break
	}
	return token.Token{Kind: token.NUMBER, Lexeme: string(lexeme), Line: line, Col: col}, nil
}

func (l *Lexer) scanLess(line, col int) (token.Token, error) {
	b, ok := l.r.Next()
	if ok {
		switch b {
		case '=':
			return token.Token{Kind: token.LE, Lexeme: "<=", Line: line, Col: col}, nil
		case '>':
			return token.Token{Kind: token.NE, Lexeme: "<>", Line: line, Col: col}, nil
		}
		l.r.Pushback(b)
	}
	return token.Token{Kind: token.LT, Lexeme: "<", Line: line, Col: col}, nil
}

func (l *Lexer) scanGreater(line, col int) (token.Token, error) {
	b, ok := l.r.Next()
	if ok {
		if b == '=' {
			return token.Token{Kind: token.GE, Lexeme: ">=", Line: line, Col: col}, nil
		}
		l.r.Pushback(b)
	}
	return token.Token{Kind: token.GT, Lexeme: ">", Line: line, Col: col}, nil
}

func (l *Lexer) scanColon(line, col int) (token.Token, error) {
	b, ok := l.r.Next()
	if ok {
		if b == '=' {
			return token.Token{Kind: token.ASSIGN, Lexeme: ":=", Line: line, Col: col}, nil
		}
		l.r.Pushback(b)
	}
	return token.Token{Kind: token.COLON, Lexeme: ":", Line: line, Col: col}, nil
}

// scanComment consumes a \* ... *\ comment, having already consumed the
// opening backslash. State 7 watches for '*'; state 8 watches for the
// closing backslash and otherwise falls back to state 7 (the comment is not
// re-entered at state 6, matching the reference lexer's non-nesting rule).
func (l *Lexer) scanComment(line, col int) error {
	b, ok := l.r.Next()
	if !ok || b != '*' {
		return &Error{line, col, "expected '*' to open comment"}
	}
	inStar := false
	for {
		b, ok := l.r.Next()
		if !ok {
			return &Error{line, col, "unterminated comment"}
		}
		if inStar {
			if b == '\\' {
				return nil
			}
			inStar = b == '*'
			continue
		}
		if b == '*' {
			inStar = true
		}
	}
}
