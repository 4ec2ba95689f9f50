/*
 * CiScal Compiler - Top-level driver
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

// Package compiler wires the lexer, parser, symbol table, and the two
// code generators into one compilation. Compile keeps all of its state in
// local values (the Parser carries the parsing state) rather than in
// package-level variables, so tests may run any number of compilations in
// one process.
package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/csc-lang/ciscal/internal/compiler/cerr"
	"github.com/csc-lang/ciscal/internal/compiler/codegen/cemit"
	"github.com/csc-lang/ciscal/internal/compiler/codegen/mips"
	"github.com/csc-lang/ciscal/internal/compiler/diag"
	"github.com/csc-lang/ciscal/internal/compiler/lexer"
	"github.com/csc-lang/ciscal/internal/compiler/parser"
	"github.com/csc-lang/ciscal/internal/compiler/source"
	"github.com/csc-lang/ciscal/util/logger"
)

// Options configures one compilation. It is built from parsed CLI flags by
// the cmd/csc front-end; nothing in this package reads os.Args directly.
type Options struct {
	InputPath  string
	OutputPath string // defaults to <basename>.asm when empty
	Color      bool
	SaveTemps  bool
}

// Result reports what a successful compilation produced, for a caller
// (typically cmd/csc) that wants to print a summary.
type Result struct {
	IntPath string
	CPath   string // empty when no C translation was emitted
	AsmPath string
	Quads   int
}

// Compile runs one compilation end to end: lex, parse, validate, and emit
// the requested artifacts. On any fatal diagnostic it removes the .int and
// .c artifacts it had started (per §5's cleanup contract), leaves a partial
// .asm in place for inspection, and returns the first *cerr.CompileError.
func Compile(opts Options, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = logger.Discard()
	}
	if !strings.HasSuffix(opts.InputPath, ".csc") {
		return nil, cerr.New(cerr.CLI, "input file %q must have a .csc extension", opts.InputPath)
	}

	f, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, cerr.New(cerr.CLI, "cannot open %q: %v", opts.InputPath, err)
	}
	defer f.Close()
	log.Debug("source opened", "path", opts.InputPath)

	base := strings.TrimSuffix(opts.InputPath, ".csc")
	asmPath := opts.OutputPath
	if asmPath == "" {
		asmPath = base + ".asm"
	}
	intPath := base + ".int"
	cPath := base + ".c"

	reporter := diag.New(os.Stderr, opts.InputPath, opts.Color)

	if _, err := os.Stat(asmPath); err == nil {
		reporter.Report(diag.Warning, 0, 0, fmt.Sprintf("output file %q already exists and will be overwritten", asmPath))
		log.Warn("output file already exists and will be overwritten", "path", asmPath)
	}

	rdr := source.New(f)
	lex := lexer.New(rdr)
	log.Debug("lexing started")
	p := parser.New(lex, reporter, log)

	log.Debug("parsing started")
	if err := p.Program(); err != nil {
		log.Error("compilation failed", "error", err)
		cleanup(intPath, cPath)
		if ce, ok := err.(*cerr.CompileError); ok {
			return nil, ce
		}
		return nil, cerr.New(cerr.Internal, "%v", err)
	}
	log.Debug("parsing finished", "quads", p.IR.Len())

	if err := writeIntermediate(intPath, p); err != nil {
		return nil, cerr.New(cerr.Internal, "%v", err)
	}
	log.Debug("intermediate listing written", "path", intPath)

	res := &Result{IntPath: intPath, AsmPath: asmPath, Quads: p.IR.Len()}

	if !p.HasSubprograms() {
		log.Debug("C emission started")
		cSrc := cemit.New(p.IR.Quads(), p.Blocks).Emit()
		if err := os.WriteFile(cPath, []byte(cSrc), 0o644); err != nil {
			return nil, cerr.New(cerr.Internal, "writing %q: %v", cPath, err)
		}
		res.CPath = cPath
		log.Debug("C emission finished", "path", cPath)
	} else {
		os.Remove(cPath)
		log.Debug("C emission skipped: program declares a subprogram")
	}

	log.Debug("MIPS emission started")
	asm := mips.New(p.IR.Quads(), p.Blocks).Emit()
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		return nil, cerr.New(cerr.Internal, "writing %q: %v", asmPath, err)
	}
	log.Debug("MIPS emission finished", "path", asmPath)

	if !opts.SaveTemps {
		// SaveTemps has no observable effect: on success the .int and .c
		// artifacts are always kept.
		_ = opts.SaveTemps
	}

	return res, nil
}

func writeIntermediate(path string, p *parser.Parser) error {
	var b strings.Builder
	for _, q := range p.IR.Quads() {
		fmt.Fprintln(&b, q.String())
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func cleanup(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

// Basename returns the input path without its .csc extension and without
// its directory component, for callers that want to derive sibling names.
func Basename(inputPath string) string {
	b := filepath.Base(inputPath)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
