/*
 * CiScal Compiler - Exit-code-categorized errors
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

// Package cerr defines CompileError, the exit-code-categorized error value
// that flows from the lexer/parser/emitters up to the CLI front-end.
package cerr

import "fmt"

// Category maps 1:1 to the process exit code taxonomy.
type Category int

const (
	CLI       Category = 1
	Lexical   Category = 2
	Syntax    Category = 3
	Semantic  Category = 4
	Scope     Category = 5
	Internal  Category = 6
	NameOrCall Category = 7
)

// CompileError is a fatal compilation failure. Errors found in the source
// have already been reported to the user via diag.Reporter when one is
// returned; CLI and internal errors have not. It carries only the Category
// needed to pick an exit code and wraps the underlying cause for %w-based
// inspection.
type CompileError struct {
	Cat Category
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("category %d: %v", e.Cat, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// New builds a CompileError wrapping a formatted message.
func New(cat Category, format string, args ...any) *CompileError {
	return &CompileError{Cat: cat, Err: fmt.Errorf(format, args...)}
}
