/*
 * CiScal Compiler - Command-line front-end
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

// Command csc compiles a single CiScal source file into MIPS assembly (and,
// when legal, an ANSI C translation), following the exit-code taxonomy
// described in the compiler's design documentation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/csc-lang/ciscal/internal/compiler"
	"github.com/csc-lang/ciscal/internal/compiler/cerr"
	"github.com/csc-lang/ciscal/util/logger"
)

const version = "csc 1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	help := getopt.BoolLong("help", 'h', "show this help message")
	ver := getopt.BoolLong("version", 'v', "show version information")
	input := getopt.StringLong("input", 'i', "", "input .csc source file (required)")
	output := getopt.StringLong("output", 'o', "", "output assembly file (defaults to <basename>.asm)")
	getopt.BoolLong("interm", 'I', "emit the .int quadruple listing (always on)")
	getopt.BoolLong("c-equiv", 'C', "emit the .c translation when legal (always on)")
	getopt.BoolLong("save-temps", 0, "keep intermediate artifacts (always on)")
	logFile := getopt.StringLong("log", 'l', "", "write the structured log trail to FILE, copying warnings and errors to stderr (without it the trail is discarded)")
	noColor := getopt.BoolLong("no-color", 0, "disable ANSI color in diagnostics")
	debug := getopt.BoolLong("debug", 0, "with --log, mirror all log records to stderr")

	getopt.Parse()

	if *help {
		getopt.Usage()
		return 0
	}
	if *ver {
		fmt.Println(version)
		return 0
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "csc: -i/--input is required")
		getopt.Usage()
		return 1
	}

	log, closeLog := buildLogger(*logFile, *debug)
	defer closeLog()

	opts := compiler.Options{
		InputPath:  *input,
		OutputPath: *output,
		Color:      !*noColor,
		SaveTemps:  true,
	}

	res, err := compiler.Compile(opts, log)
	if err != nil {
		return exitCodeFor(err)
	}

	fmt.Printf("csc: wrote %s (%d quads)\n", res.AsmPath, res.Quads)
	if res.CPath != "" {
		fmt.Printf("csc: wrote %s\n", res.CPath)
	}
	fmt.Printf("csc: wrote %s\n", res.IntPath)
	return 0
}

func buildLogger(path string, debug bool) (*slog.Logger, func()) {
	if path == "" {
		return logger.Discard(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "csc: cannot open log file %q: %v\n", path, err)
		return logger.Discard(), func() {}
	}
	h := logger.NewHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}, debug)
	return slog.New(h), func() { f.Close() }
}

// exitCodeFor maps a *cerr.CompileError's Category directly onto the
// process exit-code taxonomy; any other error (should not happen, since
// compiler.Compile only ever returns *cerr.CompileError) maps to 6.
func exitCodeFor(err error) int {
	ce, ok := err.(*cerr.CompileError)
	if !ok {
		fmt.Fprintln(os.Stderr, "csc:", err)
		return 6
	}
	fmt.Fprintln(os.Stderr, "csc:", ce)
	return int(ce.Cat)
}
