/*
 * CiScal Compiler - Diagnostics
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

// Package diag renders source-line-highlighted, ANSI-colored diagnostics and
// tracks whether a fatal error has occurred. The core compiler packages
// depend only on the Reporter interface; Diagnostics is the one concrete
// implementation, reading the source file independently of the lexer so it
// never disturbs the lexer's own read position.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI escapes matching the reference compiler's color palette.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// Severity distinguishes a fatal Error from a non-fatal Warning.
type Severity int

const (
	Warning Severity = iota
	Error
)

// Reporter is the interface the lexer and parser depend on; Diagnostics is
// its only implementation, but tests may substitute a recording stub.
type Reporter interface {
	Report(kind Severity, line, col int, message string)
	HadError() bool
}

// Diagnostics prints `[ERROR]`/`[WARNING]` messages to an io.Writer (stderr
// in production), with the offending source line and a caret under the
// column, colorized unless Color is false.
type Diagnostics struct {
	Out      io.Writer
	Path     string
	Color    bool
	hadError bool
}

// New returns a Diagnostics reporting against file path, writing to out.
func New(out io.Writer, path string, color bool) *Diagnostics {
	return &Diagnostics{Out: out, Path: path, Color: color}
}

// HadError reports whether any Error-severity diagnostic has been reported.
func (d *Diagnostics) HadError() bool {
	return d.hadError
}

// Report prints one diagnostic in the form
// "[ERROR] <file>:<line>:<col>: <message>\n  <source line>\n  <caret>".
func (d *Diagnostics) Report(kind Severity, line, col int, message string) {
	label, color := "[WARNING]", colorYellow
	if kind == Error {
		label, color = "[ERROR]", colorRed
		d.hadError = true
	}

	if d.Color {
		fmt.Fprintf(d.Out, "%s%s%s %s:%d:%d: %s\n", color, label, colorReset, d.Path, line, col, message)
	} else {
		fmt.Fprintf(d.Out, "%s %s:%d:%d: %s\n", label, d.Path, line, col, message)
	}

	if text, ok := sourceLine(d.Path, line); ok {
		fmt.Fprintf(d.Out, "  %s\n", text)
		pad := col - 1 // columns are 1-based
		if pad < 0 {
			pad = 0
		}
		caret := strings.Repeat(" ", pad) + "^"
		if d.Color {
			fmt.Fprintf(d.Out, "  %s%s%s\n", colorBold, caret, colorReset)
		} else {
			fmt.Fprintf(d.Out, "  %s\n", caret)
		}
	}
}

// sourceLine re-opens path read-only and returns the 1-based line n, or
// ok=false if the file or line cannot be read. It never touches the
// compiler's own open handle on path.
func sourceLine(path string, n int) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 1; scanner.Scan(); i++ {
		if i == n {
			return scanner.Text(), true
		}
	}
	return "", false
}
