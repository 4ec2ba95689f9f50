package parser

import (
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/csc-lang/ciscal/internal/compiler/diag"
	"github.com/csc-lang/ciscal/internal/compiler/ir"
	"github.com/csc-lang/ciscal/internal/compiler/lexer"
	"github.com/csc-lang/ciscal/internal/compiler/source"
	"github.com/csc-lang/ciscal/util/logger"
)

func newParser(t *testing.T, src string) (*Parser, *capturingReporter) {
	t.Helper()
	rep := &capturingReporter{}
	lex := lexer.New(source.New(strings.NewReader(src)))
	return New(lex, rep, slog.New(logger.Discard().Handler())), rep
}

// capturingReporter implements diag.Reporter so these tests don't depend on
// diag's concrete rendering.
type capturingReporter struct {
	messages []string
	had      bool
}

func (c *capturingReporter) Report(kind diag.Severity, line, col int, message string) {
	c.messages = append(c.messages, message)
	c.had = true
}
func (c *capturingReporter) HadError() bool { return c.had }

func TestParsesMinimalProgram(t *testing.T) {
	src := `program demo {
		declare x enddeclare
		x := 1 + 2;
		print(x)
	}`
	p, rep := newParser(t, src)
	if err := p.Program(); err != nil {
		t.Fatalf("unexpected parse error: %v (reported: %v)", err, rep.messages)
	}
	if p.IR.Len() == 0 {
		t.Fatal("expected at least one quad to be generated")
	}
	if len(p.Blocks) != 1 || !p.Blocks[0].IsMain {
		t.Fatalf("expected exactly one main block, got %+v", p.Blocks)
	}
}

func TestRejectsUndeclaredIdentifier(t *testing.T) {
	src := `program demo {
		declare x enddeclare
		x := y + 1;
	}`
	p, _ := newParser(t, src)
	if err := p.Program(); err == nil {
		t.Fatal("expected an error for the undeclared identifier 'y'")
	}
}

func TestRejectsExitOutsideDoWhile(t *testing.T) {
	src := `program demo {
		declare x enddeclare
		exit;
	}`
	p, _ := newParser(t, src)
	if err := p.Program(); err == nil {
		t.Fatal("expected an error for 'exit' outside a do-while loop")
	}
}

func TestRejectsFunctionWithoutReturn(t *testing.T) {
	src := `program demo {
		function f() {
			print(1)
		}
	}`
	p, _ := newParser(t, src)
	if err := p.Program(); err == nil {
		t.Fatal("expected an error for a function with no return statement")
	}
}

func TestIfElseBranchesProduceReachableQuadSequence(t *testing.T) {
	src := `program demo {
		declare x enddeclare
		if (x > 0) {
			print(x)
		} else {
			print(0)
		}
	}`
	p, rep := newParser(t, src)
	if err := p.Program(); err != nil {
		t.Fatalf("unexpected parse error: %v (reported: %v)", err, rep.messages)
	}

	quads := p.IR.Quads()
	var outLabels []int
	var condQuad, falseJumpQuad ir.Quad
	for i, q := range quads {
		if q.Op == ir.OpOut {
			outLabels = append(outLabels, i)
		}
		if q.Op == ir.OpGt {
			condQuad = q
			falseJumpQuad = quads[i+1]
		}
	}
	if len(outLabels) != 2 {
		t.Fatalf("expected exactly two 'out' quads (one per branch), got %d: %v", len(outLabels), outLabels)
	}
	trueLabel, falseLabel := outLabels[0], outLabels[1]

	if condQuad.Res != strconv.Itoa(trueLabel) {
		t.Errorf("condition's true jump target = %s, want %d (start of the then-branch)", condQuad.Res, trueLabel)
	}
	if falseJumpQuad.Op != ir.OpJump {
		t.Fatalf("expected an unconditional jump immediately after the relational quad, got %s", falseJumpQuad.Op)
	}
	if falseJumpQuad.Res != strconv.Itoa(falseLabel) {
		t.Errorf("condition's false jump target = %s, want %d (start of the else-branch)", falseJumpQuad.Res, falseLabel)
	}

	skipQuad := quads[trueLabel+1]
	if skipQuad.Op != ir.OpJump {
		t.Fatalf("expected the then-branch to be followed by a skip jump over the else-branch, got %s", skipQuad.Op)
	}
	wantSkip := falseLabel + 1
	if skipQuad.Res != strconv.Itoa(wantSkip) {
		t.Errorf("skip jump target = %s, want %d (first reachable quad after the else-branch)", skipQuad.Res, wantSkip)
	}
	if skipQuad.Res == strconv.Itoa(trueLabel) || skipQuad.Res == strconv.Itoa(falseLabel) {
		t.Error("skip jump must not land back inside either branch")
	}
}

func TestCallArgumentCountMismatch(t *testing.T) {
	src := `program demo {
		procedure p(in a) {
		}
		call p();
	}`
	p, _ := newParser(t, src)
	if err := p.Program(); err == nil {
		t.Fatal("expected an error for a call-site argument count mismatch")
	}
}
