/*
 * CiScal Compiler - Token kinds
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

// Package token defines the lexical categories produced by the lexer and the
// Token value itself.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	IDENT
	NUMBER

	// Reserved words.
	PROGRAM
	DECLARE
	ENDDECLARE
	IF
	ELSE
	WHILE
	DO
	SELECT
	DEFAULT
	EXIT
	RETURN
	PRINT
	CALL
	PROCEDURE
	FUNCTION
	IN
	INOUT
	AND
	OR
	NOT

	// Punctuation and operators.
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMI      // ;
	ASSIGN    // :=
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	EQ        // =
	NE        // <>
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=
	COLON     // :
)

var names = map[Kind]string{
	EOF:        "EOF",
	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	PROGRAM:    "program",
	DECLARE:    "declare",
	ENDDECLARE: "enddeclare",
	IF:         "if",
	ELSE:       "else",
	WHILE:      "while",
	DO:         "do",
	SELECT:     "select",
	DEFAULT:    "default",
	EXIT:       "exit",
	RETURN:     "return",
	PRINT:      "print",
	CALL:       "call",
	PROCEDURE:  "procedure",
	FUNCTION:   "function",
	IN:         "in",
	INOUT:      "inout",
	AND:        "and",
	OR:         "or",
	NOT:        "not",
	LBRACE:     "{",
	RBRACE:     "}",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	SEMI:       ";",
	ASSIGN:     ":=",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	EQ:         "=",
	NE:         "<>",
	LT:         "<",
	LE:         "<=",
	GT:         ">",
	GE:         ">=",
	COLON:      ":",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps a lowercase lexeme to its reserved-word Kind.
var Keywords = map[string]Kind{
	"program":    PROGRAM,
	"declare":    DECLARE,
	"enddeclare": ENDDECLARE,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"do":         DO,
	"select":     SELECT,
	"default":    DEFAULT,
	"exit":       EXIT,
	"return":     RETURN,
	"print":      PRINT,
	"call":       CALL,
	"procedure":  PROCEDURE,
	"function":   FUNCTION,
	"in":         IN,
	"inout":      INOUT,
	"and":        AND,
	"or":         OR,
	"not":        NOT,
}

// MaxIdentLen is the number of characters retained from an identifier
// lexeme; anything beyond it is silently truncated.
const MaxIdentLen = 30

// Token is a single lexical unit: its kind, literal text, and source
// position of its first character.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Col)
}
