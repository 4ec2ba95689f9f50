package cemit_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/csc-lang/ciscal/internal/compiler/codegen/cemit"
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

// A subprogram with an inout ("REF") parameter that is both read and
// written must render the parameter under its real CiScal name (not a
// synthetic positional name), as a C pointer in the signature, and must
// dereference it at every read and write site in the body.
func TestParameterizedSubprogramDeclaresRealNameAndDereferencesRef(t *testing.T) {
	p := mustParse(t, `program demo {
		declare total enddeclare
		procedure addOne(inout n) {
			n := n + 1;
		}
		call addOne(inout total);
	}`)

	out := cemit.New(p.IR.Quads(), p.Blocks).Emit()

	if !strings.Contains(out, "void addOne(int *n)") {
		t.Errorf("expected the real parameter name in the signature, got:\n%s", out)
	}
	if strings.Contains(out, "p0") {
		t.Errorf("did not expect a synthetic positional parameter name, got:\n%s", out)
	}
	if !strings.Contains(out, "*n + 1") && !strings.Contains(out, "*n +1") {
		t.Errorf("expected the read of 'n' inside its own body to dereference the pointer, got:\n%s", out)
	}
	if !strings.Contains(out, "*n = ") {
		t.Errorf("expected the write to 'n' inside its own body to dereference the pointer, got:\n%s", out)
	}
	if !strings.Contains(out, "addOne(&total)") {
		t.Errorf("expected the call site to pass the address of the plain local 'total', got:\n%s", out)
	}
}

// A CV ("in") parameter is an ordinary int, not a pointer, and is never
// dereferenced.
func TestParameterizedSubprogramLeavesCVParameterUndereferenced(t *testing.T) {
	p := mustParse(t, `program demo {
		declare r enddeclare
		function square(in n) {
			return(n * n);
		}
		r := square(in 3);
	}`)

	out := cemit.New(p.IR.Quads(), p.Blocks).Emit()

	if !strings.Contains(out, "int square(int n)") {
		t.Errorf("expected a plain int parameter in the signature, got:\n%s", out)
	}
	if strings.Contains(out, "*n") {
		t.Errorf("did not expect a CV parameter to be dereferenced anywhere, got:\n%s", out)
	}
}
