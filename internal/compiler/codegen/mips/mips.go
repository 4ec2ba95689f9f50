/*
 * CiScal Compiler - MIPS code generator
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

// Package mips translates the quadruple array into MIPS assembly text,
// resolving every operand through the symbol table's scope chain with
// frame-relative addressing. It runs once, after parsing has finished, and
// walks all quads in order rather than emitting each block as it closes;
// the prologue is written into an in-memory buffer rather than patched in
// by a file seek, which gives the same text and lets the driver decide
// whether to write the output at all.
package mips

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csc-lang/ciscal/internal/compiler/ir"
	"github.com/csc-lang/ciscal/internal/compiler/parser"
	"github.com/csc-lang/ciscal/internal/compiler/symtab"
)

// Emitter walks one compilation's quads and scopes, producing MIPS text.
type Emitter struct {
	quads     []ir.Quad
	blocks    []parser.Block
	scopeOf   map[int]*symtab.Scope // quad label -> enclosing block's scope
	mainStart int
	haltLabel int

	out          strings.Builder
	parBatch     int // count of par quads seen since the last call/reset, for the addi $fp prologue
	framePatched bool
}

// New builds an Emitter over the quads and block metadata a completed parse
// produced.
func New(quads []ir.Quad, blocks []parser.Block) *Emitter {
	e := &Emitter{quads: quads, blocks: blocks, scopeOf: map[int]*symtab.Scope{}}
	for _, b := range blocks {
		for l := b.StartQuad; l <= b.EndQuad; l++ {
			e.scopeOf[l] = b.Scope
		}
		if b.IsMain {
			e.mainStart = b.StartQuad
		}
	}
	return e
}

// Emit returns the full assembly text: a patched `.globl`/`.text` prologue,
// one labelled block per quad, and a trailing `.data` section.
func (e *Emitter) Emit() string {
	var body strings.Builder
	for _, q := range e.quads {
		fmt.Fprintf(&body, "L_%d:\n", q.Label)
		e.translate(&body, q)
	}

	var final strings.Builder
	fmt.Fprintf(&final, ".globl L_%d\n.text\nj L_%d\n", e.mainStart, e.mainStart)
	final.WriteString(body.String())
	final.WriteString(".data\nnewline: .asciiz \"\\n\"\n")
	return final.String()
}

func (e *Emitter) translate(w *strings.Builder, q ir.Quad) {
	switch {
	case q.Op == ir.OpJump:
		fmt.Fprintf(w, "\tj L_%s\n", q.Res)
	case ir.Relational[q.Op]:
		e.loadvr(w, q.Arg1, 1, q.Label)
		e.loadvr(w, q.Arg2, 2, q.Label)
		fmt.Fprintf(w, "\t%s $t1, $t2, L_%s\n", branchInsn(q.Op), q.Res)
	case q.Op == ir.OpAssign:
		e.loadvr(w, q.Arg1, 1, q.Label)
		e.storerv(w, 1, q.Res, q.Label)
	case q.Op == ir.OpAdd, q.Op == ir.OpSub, q.Op == ir.OpMul, q.Op == ir.OpDiv:
		e.loadvr(w, q.Arg1, 1, q.Label)
		e.loadvr(w, q.Arg2, 2, q.Label)
		fmt.Fprintf(w, "\t%s $t1, $t1, $t2\n", arithInsn(q.Op))
		e.storerv(w, 1, q.Res, q.Label)
	case q.Op == ir.OpOut:
		e.loadvr(w, q.Arg1, 9, q.Label)
		w.WriteString("\tli $v0, 1\n\tsyscall\n")
		w.WriteString("\tla $a0, newline\n\tli $v0, 4\n\tsyscall\n")
	case q.Op == ir.OpRetv:
		e.loadvr(w, q.Arg1, 1, q.Label)
		w.WriteString("\tlw $t0, -8($sp)\n\tsw $t1, 0($t0)\n\tlw $ra, 0($sp)\n\tjr $ra\n")
	case q.Op == ir.OpHalt:
		w.WriteString("\tli $v0, 10\n\tsyscall\n")
	case q.Op == ir.OpPar:
		e.emitPar(w, q)
	case q.Op == ir.OpCall:
		e.emitCall(w, q)
		e.parBatch = 0
	case q.Op == ir.OpBegin:
		w.WriteString("\tsw $ra, 0($sp)\n")
		if e.isMainLabel(q.Label) {
			w.WriteString("\tmove $s0, $sp\n")
		}
	case q.Op == ir.OpEnd:
		if e.isMainEndLabel(q.Label) {
			fmt.Fprintf(w, "\tj L_%d\n", e.haltQuad())
		} else {
			w.WriteString("\tlw $ra, 0($sp)\n\tjr $ra\n")
		}
	}
}

func (e *Emitter) isMainLabel(label int) bool {
	for _, b := range e.blocks {
		if b.IsMain && b.StartQuad == label {
			return true
		}
	}
	return false
}

func (e *Emitter) isMainEndLabel(label int) bool {
	for _, b := range e.blocks {
		if b.IsMain && b.EndQuad == label {
			return true
		}
	}
	return false
}

func (e *Emitter) haltQuad() int {
	for _, q := range e.quads {
		if q.Op == ir.OpHalt {
			return q.Label
		}
	}
	return 0
}

func branchInsn(op ir.Op) string {
	switch op {
	case ir.OpEq:
		return "beq"
	case ir.OpNe:
		return "bne"
	case ir.OpLt:
		return "blt"
	case ir.OpLe:
		return "ble"
	case ir.OpGt:
		return "bgt"
	case ir.OpGe:
		return "bge"
	}
	return "nop"
}

func arithInsn(op ir.Op) string {
	switch op {
	case ir.OpAdd:
		return "add"
	case ir.OpSub:
		return "sub"
	case ir.OpMul:
		return "mul"
	case ir.OpDiv:
		return "div"
	}
	return "nop"
}

// loadvr resolves operand v (a number, or an identifier reachable from the
// scope owning quad label) into register $t<r>.
func (e *Emitter) loadvr(w *strings.Builder, v string, r int, label int) {
	if n, err := strconv.Atoi(v); err == nil {
		fmt.Fprintf(w, "\tli $t%d, %d\n", r, n)
		return
	}
	scope := e.scopeOf[label]
	ent, declLevel, ok := symtab.Lookup(scope, v)
	if !ok {
		fmt.Fprintf(w, "\t# unresolved operand %s\n", v)
		return
	}
	off := offsetOf(ent)
	switch {
	case declLevel == 0:
		fmt.Fprintf(w, "\tlw $t%d, -%d($s0)\n", r, off)
	case declLevel == scope.Level:
		if param, isParam := ent.(*symtab.Parameter); isParam && param.Mode == symtab.REF {
			fmt.Fprintf(w, "\tlw $t0, -%d($sp)\n\tlw $t%d, 0($t0)\n", off, r)
		} else {
			fmt.Fprintf(w, "\tlw $t%d, -%d($sp)\n", r, off)
		}
	default:
		e.gnvlcode(w, scope.Level, declLevel)
		if param, isParam := ent.(*symtab.Parameter); isParam && param.Mode == symtab.REF {
			fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tlw $t0, 0($t0)\n\tlw $t%d, 0($t0)\n", off, r)
		} else {
			fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tlw $t%d, 0($t0)\n", off, r)
		}
	}
}

// storerv writes register $t<r> back to operand res.
func (e *Emitter) storerv(w *strings.Builder, r int, res string, label int) {
	scope := e.scopeOf[label]
	ent, declLevel, ok := symtab.Lookup(scope, res)
	if !ok {
		fmt.Fprintf(w, "\t# unresolved operand %s\n", res)
		return
	}
	off := offsetOf(ent)
	switch {
	case declLevel == 0:
		fmt.Fprintf(w, "\tsw $t%d, -%d($s0)\n", r, off)
	case declLevel == scope.Level:
		if param, isParam := ent.(*symtab.Parameter); isParam && param.Mode == symtab.REF {
			fmt.Fprintf(w, "\tlw $t0, -%d($sp)\n\tsw $t%d, 0($t0)\n", off, r)
		} else {
			fmt.Fprintf(w, "\tsw $t%d, -%d($sp)\n", r, off)
		}
	default:
		e.gnvlcode(w, scope.Level, declLevel)
		if param, isParam := ent.(*symtab.Parameter); isParam && param.Mode == symtab.REF {
			fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tlw $t0, 0($t0)\n\tsw $t%d, 0($t0)\n", off, r)
		} else {
			fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tsw $t%d, 0($t0)\n", off, r)
		}
	}
}

func offsetOf(e symtab.Entity) int {
	switch v := e.(type) {
	case *symtab.Variable:
		return v.Offset
	case *symtab.Parameter:
		return v.Offset
	case *symtab.Temporary:
		return v.Offset
	}
	return 0
}

// gnvlcode chases the static access link chain (current_level -
// declaring_level - 1) times, leaving the frame base address in $t0.
func (e *Emitter) gnvlcode(w *strings.Builder, currentLevel, declLevel int) {
	w.WriteString("\tlw $t0, -4($sp)\n")
	for i := 0; i < currentLevel-declLevel-1; i++ {
		w.WriteString("\tlw $t0, -4($t0)\n")
	}
}

func (e *Emitter) emitPar(w *strings.Builder, q ir.Quad) {
	if e.parBatch == 0 {
		// framelength(caller) is resolved by the driver via a real frame
		// prologue; the scope owning this quad carries it.
		scope := e.scopeOf[q.Label]
		fmt.Fprintf(w, "\taddi $fp, $sp, -%d\n", scope.FrameLength())
	}
	slot := 12 + 4*e.parBatch
	switch q.Arg2 {
	case "CV":
		e.loadvr(w, q.Arg1, 1, q.Label)
		fmt.Fprintf(w, "\tsw $t1, -%d($fp)\n", slot)
	case "REF":
		scope := e.scopeOf[q.Label]
		if ent, declLevel, ok := symtab.Lookup(scope, q.Arg1); ok {
			off := offsetOf(ent)
			param, isParam := ent.(*symtab.Parameter)
			isRef := isParam && param.Mode == symtab.REF
			if declLevel == scope.Level {
				if isRef {
					// already holds an address: pass it on unchanged.
					fmt.Fprintf(w, "\tlw $t0, -%d($sp)\n\tsw $t0, -%d($fp)\n", off, slot)
				} else {
					fmt.Fprintf(w, "\taddi $t0, $sp, -%d\n\tsw $t0, -%d($fp)\n", off, slot)
				}
			} else {
				e.gnvlcode(w, scope.Level, declLevel)
				if isRef {
					fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tlw $t0, 0($t0)\n\tsw $t0, -%d($fp)\n", off, slot)
				} else {
					fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tsw $t0, -%d($fp)\n", off, slot)
				}
			}
		}
	case "RET":
		scope := e.scopeOf[q.Label]
		if ent, declLevel, ok := symtab.Lookup(scope, q.Arg1); ok {
			off := offsetOf(ent)
			if declLevel == scope.Level {
				fmt.Fprintf(w, "\taddi $t0, $sp, -%d\n\tsw $t0, -8($fp)\n", off)
			} else {
				e.gnvlcode(w, scope.Level, declLevel)
				fmt.Fprintf(w, "\taddi $t0, $t0, -%d\n\tsw $t0, -8($fp)\n", off)
			}
		}
	}
	e.parBatch++
}

func (e *Emitter) emitCall(w *strings.Builder, q ir.Quad) {
	scope := e.scopeOf[q.Label]
	callee, ok := symtab.LookupFunction(scope, q.Arg1)
	target := 0
	if ok {
		target = callee.StartQuad
		if callee.Level == scope.Level {
			// same-level callee (a sibling subprogram): reuse the caller's own access link.
			w.WriteString("\tlw $t0, -4($sp)\n\tsw $t0, -4($fp)\n")
		} else {
			// callee nested one level deeper than the caller: the caller's own $sp is the link.
			w.WriteString("\tsw $sp, -4($fp)\n")
		}
	}
	framelen := scope.FrameLength()
	fmt.Fprintf(w, "\taddi $sp, $sp, -%d\n\tjal L_%d\n\taddi $sp, $sp, %d\n", framelen, target, framelen)
}
