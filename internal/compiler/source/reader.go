/*
 * CiScal Compiler - Source reader
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

// Package source provides a byte-at-a-time reader with one character of
// logical pushback and line/column tracking, the only component allowed to
// move the input file's read position.
package source

import (
	"bufio"
	"io"
)

// Reader reads bytes from an underlying io.Reader, tracking the 1-based line
// and 1-based column of the most recently returned byte (a newline itself is
// attributed to column 0 of the line it starts), and supports retracting
// exactly one byte.
type Reader struct {
	br *bufio.Reader

	// line/col that the most recently returned byte was attributed to
	// (1, 0 before anything has been read).
	line, col int

	// Position that was current immediately before the most recently
	// returned byte; restored on Pushback.
	prevLine, prevCol int

	havePushback bool
	pushByte     byte
	pushLine     int
	pushCol      int

	atEOF bool
}

// New wraps r for byte-at-a-time reading starting at line 1, column 0.
func New(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r), line: 1, col: 0}
}

// Next returns the next byte of input, or ok=false at end of input. Newlines
// advance Line and reset Col to 0; any other byte advances Col by one.
func (r *Reader) Next() (b byte, ok bool) {
	if r.havePushback {
		r.havePushback = false
		r.prevLine, r.prevCol = r.line, r.col
		r.line, r.col = r.pushLine, r.pushCol
		return r.pushByte, true
	}
	if r.atEOF {
		return 0, false
	}
	c, err := r.br.ReadByte()
	if err != nil {
		r.atEOF = true
		return 0, false
	}
	r.prevLine, r.prevCol = r.line, r.col
	if c == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return c, true
}

// Pushback retracts the read head by exactly one byte: the next call to
// Next returns b again, attributed to the line/col it was just read at. Only
// one level of pushback is supported, matching the lexer's single character
// of lookahead beyond the current token start. Pushback at end of input is a
// no-op since there is no byte to retract.
func (r *Reader) Pushback(b byte) {
	if r.atEOF && !r.havePushback {
		return
	}
	r.pushByte = b
	r.pushLine, r.pushCol = r.line, r.col
	r.line, r.col = r.prevLine, r.prevCol
	r.havePushback = true
}

// Pos returns the line and column that the byte just returned by Next was
// attributed to.
func (r *Reader) Pos() (line, col int) {
	return r.line, r.col
}
