/*
 * CiScal Compiler - ANSI C code generator
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

// Package cemit mechanically translates the quadruple array into ANSI C,
// one line per quad with a fixed template per operator. The driver only
// invokes it when the program declares no subprograms at all, at any
// nesting depth; a program with even one directly-declared subprogram has
// no flat C equivalent of the static access link chain the MIPS emitter can
// express directly in registers.
package cemit

import (
	"fmt"
	"strings"

	"github.com/csc-lang/ciscal/internal/compiler/ir"
	"github.com/csc-lang/ciscal/internal/compiler/parser"
	"github.com/csc-lang/ciscal/internal/compiler/symtab"
)

// Emitter walks the same quad array and block metadata the MIPS emitter
// does and renders it as ANSI C source.
type Emitter struct {
	quads  []ir.Quad
	blocks []parser.Block
	byName map[string]parser.Block

	parArgs []string // accumulated actual-argument text since the last call
}

// New builds an Emitter over a completed parse's quads and blocks.
func New(quads []ir.Quad, blocks []parser.Block) *Emitter {
	byName := make(map[string]parser.Block, len(blocks))
	for _, b := range blocks {
		byName[b.Name] = b
	}
	return &Emitter{quads: quads, blocks: blocks, byName: byName}
}

// Emit renders one C function per block (main renders as `int main(void)`)
// with forward declarations for every subprogram, and returns the source.
func (e *Emitter) Emit() string {
	var out strings.Builder
	out.WriteString("#include <stdio.h>\n\n")

	for _, b := range e.blocks {
		if !b.IsMain {
			fmt.Fprintf(&out, "%s;\n", signature(b))
		}
	}
	out.WriteString("\n")

	for _, b := range e.blocks {
		e.emitBlock(&out, b)
		out.WriteString("\n")
	}
	return out.String()
}

func signature(b parser.Block) string {
	fn, _ := symtab.LookupFunction(b.Scope.Enclosing, b.Name)
	retType := "void"
	if fn != nil && fn.RetType == symtab.Int {
		retType = "int"
	}
	var params []string
	if fn != nil {
		for _, ent := range b.Scope.Entities() {
			p, ok := ent.(*symtab.Parameter)
			if !ok {
				continue
			}
			if p.Mode == symtab.REF {
				params = append(params, fmt.Sprintf("int *%s", p.Name))
			} else {
				params = append(params, fmt.Sprintf("int %s", p.Name))
			}
		}
	}
	return fmt.Sprintf("%s %s(%s)", retType, b.Name, strings.Join(params, ", "))
}

func (e *Emitter) emitBlock(out *strings.Builder, b parser.Block) {
	if b.IsMain {
		out.WriteString("int main(void) {\n")
	} else {
		fmt.Fprintf(out, "%s {\n", signature(b))
	}

	for _, ent := range b.Scope.Entities() {
		switch v := ent.(type) {
		case *symtab.Variable:
			fmt.Fprintf(out, "\tint %s;\n", v.Name)
		case *symtab.Temporary:
			fmt.Fprintf(out, "\tint %s;\n", v.Name)
		}
	}

	for l := b.StartQuad + 1; l < b.EndQuad; l++ {
		e.emitQuad(out, e.quads[l], b.Scope)
	}

	if b.IsMain {
		out.WriteString("\treturn 0;\n")
	}
	out.WriteString("}\n")
}

func (e *Emitter) emitQuad(out *strings.Builder, q ir.Quad, scope *symtab.Scope) {
	fmt.Fprintf(out, "L_%d:;\n", q.Label)
	switch {
	case q.Op == ir.OpJump:
		fmt.Fprintf(out, "\tgoto L_%s;\n", q.Res)
	case ir.Relational[q.Op]:
		fmt.Fprintf(out, "\tif (%s %s %s) goto L_%s;\n", operandExpr(scope, q.Arg1), cOp(q.Op), operandExpr(scope, q.Arg2), q.Res)
	case q.Op == ir.OpAssign:
		fmt.Fprintf(out, "\t%s = %s;\n", operandExpr(scope, q.Res), operandExpr(scope, q.Arg1))
	case q.Op == ir.OpAdd, q.Op == ir.OpSub, q.Op == ir.OpMul, q.Op == ir.OpDiv:
		fmt.Fprintf(out, "\t%s = %s %s %s;\n", operandExpr(scope, q.Res), operandExpr(scope, q.Arg1), cOp(q.Op), operandExpr(scope, q.Arg2))
	case q.Op == ir.OpOut:
		fmt.Fprintf(out, "\tprintf(\"%%d\\n\", %s);\n", operandExpr(scope, q.Arg1))
	case q.Op == ir.OpRetv:
		fmt.Fprintf(out, "\treturn %s;\n", operandExpr(scope, q.Arg1))
	case q.Op == ir.OpPar:
		e.parArgs = append(e.parArgs, parText(scope, q))
	case q.Op == ir.OpCall:
		e.emitCallExpr(out, q)
	case q.Op == ir.OpHalt:
		out.WriteString("\treturn 0;\n")
	}
}

// operandExpr renders an IR operand for use in C, dereferencing it when it
// resolves (in scope) to a REF-mode parameter, which the signature declares
// as a C pointer. Numeric literals and non-REF names pass through unchanged.
func operandExpr(scope *symtab.Scope, name string) string {
	if ent, declLevel, ok := symtab.Lookup(scope, name); ok && declLevel == scope.Level {
		if p, isParam := ent.(*symtab.Parameter); isParam && p.Mode == symtab.REF {
			return "*" + name
		}
	}
	return name
}

// parText renders one par quad's argument for the call expression it
// precedes. A REF actual that is itself a same-scope REF parameter is
// already a pointer and must not be re-addressed; any other REF actual is a
// plain local and needs `&`.
func parText(scope *symtab.Scope, q ir.Quad) string {
	if q.Arg2 != "REF" {
		return q.Arg1
	}
	if ent, declLevel, ok := symtab.Lookup(scope, q.Arg1); ok && declLevel == scope.Level {
		if p, isParam := ent.(*symtab.Parameter); isParam && p.Mode == symtab.REF {
			return q.Arg1
		}
	}
	return "&" + q.Arg1
}

func (e *Emitter) emitCallExpr(out *strings.Builder, q ir.Quad) {
	args := e.parArgs
	e.parArgs = nil

	fn, _ := symtab.LookupFunction(e.byName[q.Arg1].Scope.Enclosing, q.Arg1)
	retvTemp := ""
	if fn != nil && fn.RetType == symtab.Int && len(args) > 0 {
		retvTemp = strings.TrimPrefix(args[len(args)-1], "&")
		args = args[:len(args)-1]
	}

	call := fmt.Sprintf("%s(%s)", q.Arg1, strings.Join(args, ", "))
	if retvTemp != "" {
		fmt.Fprintf(out, "\t%s = %s;\n", retvTemp, call)
	} else {
		fmt.Fprintf(out, "\t%s;\n", call)
	}
}

func cOp(op ir.Op) string {
	switch op {
	case ir.OpEq:
		return "=="
	case ir.OpNe:
		return "!="
	case ir.OpLt:
		return "<"
	case ir.OpLe:
		return "<="
	case ir.OpGt:
		return ">"
	case ir.OpGe:
		return ">="
	case ir.OpAdd:
		return "+"
	case ir.OpSub:
		return "-"
	case ir.OpMul:
		return "*"
	case ir.OpDiv:
		return "/"
	}
	return "?"
}
