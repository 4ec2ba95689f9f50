package mips_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/csc-lang/ciscal/internal/compiler/codegen/mips"
	"github.com/csc-lang/ciscal/internal/compiler/diag"
	"github.com/csc-lang/ciscal/internal/compiler/lexer"
	"github.com/csc-lang/ciscal/internal/compiler/parser"
	"github.com/csc-lang/ciscal/internal/compiler/source"
	"github.com/csc-lang/ciscal/util/logger"
)

type discardReporter struct{}

func (discardReporter) Report(diag.Severity, int, int, string) {}
func (discardReporter) HadError() bool                         { return false }

func mustParse(t *testing.T, src string) *parser.Parser {
	t.Helper()
	lex := lexer.New(source.New(strings.NewReader(src)))
	p := parser.New(lex, discardReporter{}, slog.New(logger.Discard().Handler()))
	if err := p.Program(); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return p
}

const siblingSibling = "lw $t0, -4($sp)\n\tsw $t0, -4($fp)\n"
const callerStackPointer = "\tsw $sp, -4($fp)\n"

// A call from the main program into a procedure it directly declares is the
// ordinary case: the callee's body scope is nested one level deeper than
// main, so the callee's access link must be the caller's own $sp, not a
// copy of the caller's access link.
func TestEmitCallIntoDirectlyDeclaredProcedureUsesCallersStackPointer(t *testing.T) {
	p := mustParse(t, `program demo {
		procedure greet() {
		}
		call greet();
	}`)

	asm := mips.New(p.IR.Quads(), p.Blocks).Emit()
	if !strings.Contains(asm, callerStackPointer) {
		t.Errorf("expected the caller's $sp to be written as the callee's access link, got:\n%s", asm)
	}
	if strings.Contains(asm, siblingSibling) {
		t.Errorf("did not expect the same-level access-link copy sequence for a call one level deeper:\n%s", asm)
	}
}

// Two procedures declared at the same level, one calling the other, are
// siblings: the callee reuses the caller's own access link unchanged.
func TestEmitCallBetweenSiblingProceduresReusesAccessLink(t *testing.T) {
	p := mustParse(t, `program demo {
		procedure one() {
		}
		procedure two() {
			call one();
		}
	}`)

	asm := mips.New(p.IR.Quads(), p.Blocks).Emit()
	if !strings.Contains(asm, siblingSibling) {
		t.Errorf("expected the same-level access-link copy sequence for a sibling call, got:\n%s", asm)
	}
}
