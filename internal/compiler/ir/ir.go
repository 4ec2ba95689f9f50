/*
 * CiScal Compiler - Quadruple intermediate representation
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

// Package ir builds the quadruple intermediate representation: it appends
// quads, allocates temporaries, and implements jump-list back-patching. It
// has no notion of scopes or types; the parser drives it and the symbol
// table separately.
package ir

import "fmt"

// Op identifies a quadruple's operator.
type Op string

// Operators recognized by the quad stream.
const (
	OpAssign  Op = ":="
	OpAdd     Op = "+"
	OpSub     Op = "-"
	OpMul     Op = "*"
	OpDiv     Op = "/"
	OpEq      Op = "="
	OpNe      Op = "<>"
	OpLt      Op = "<"
	OpLe      Op = "<="
	OpGt      Op = ">"
	OpGe      Op = ">="
	OpJump    Op = "jump"
	OpPar     Op = "par"
	OpCall    Op = "call"
	OpRetv    Op = "retv"
	OpOut     Op = "out"
	OpBegin   Op = "begin_block"
	OpEnd     Op = "end_block"
	OpHalt    Op = "halt"
)

// Relational is the set of operators whose res field is a jump target
// requiring back-patching.
var Relational = map[Op]bool{
	OpEq: true, OpNe: true, OpLt: true, OpLe: true, OpGt: true, OpGe: true,
}

// Unused is the sentinel value occupying an operand position that a given
// operator does not use.
const Unused = "_"

// Quad is one quadruple instruction: label: (op, arg1, arg2, res).
type Quad struct {
	Label int
	Op    Op
	Arg1  string
	Arg2  string
	Res   string
}

func (q Quad) String() string {
	return fmt.Sprintf("%d: (%s, %s, %s, %s)", q.Label, q.Op, q.Arg1, q.Arg2, q.Res)
}

// List is a jump list: an ordered sequence of quad labels awaiting
// back-patching to a common target.
type List []int

// Make returns a new jump list containing only l.
func Make(l int) List { return List{l} }

// Merge concatenates a and b without de-duplication: each label is produced
// by exactly one emission site, so no label can legitimately appear twice.
func Merge(a, b List) List {
	out := make(List, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Builder accumulates the global quad array and the temporary-name counter.
// It has no notion of "current scope"; callers pass in where each new
// Temporary's offset bookkeeping lives via the symtab package.
type Builder struct {
	quads   []Quad
	tempNum int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NextQuad returns the label the next emitted quad will receive.
func (b *Builder) NextQuad() int {
	return len(b.quads)
}

// Gen appends a new quad with the given operator and operands (any of which
// may be Unused) and returns its label.
func (b *Builder) Gen(op Op, arg1, arg2, res string) int {
	if arg1 == "" {
		arg1 = Unused
	}
	if arg2 == "" {
		arg2 = Unused
	}
	if res == "" {
		res = Unused
	}
	label := b.NextQuad()
	b.quads = append(b.quads, Quad{Label: label, Op: op, Arg1: arg1, Arg2: arg2, Res: res})
	return label
}

// NewTempName returns a fresh T_<n> name; n is monotonically increasing for
// the lifetime of this Builder (i.e. process-wide within one compilation).
func (b *Builder) NewTempName() string {
	b.tempNum++
	return fmt.Sprintf("T_%d", b.tempNum)
}

// Backpatch sets Res on every quad whose label appears in list.
func (b *Builder) Backpatch(list List, target int) {
	for _, label := range list {
		b.quads[label].Res = fmt.Sprintf("%d", target)
	}
}

// Quads returns the accumulated quad array in emission order. The slice
// aliases the Builder's internal storage and must not be mutated by the
// caller outside of Backpatch.
func (b *Builder) Quads() []Quad {
	return b.quads
}

// Len reports how many quads have been emitted so far.
func (b *Builder) Len() int {
	return len(b.quads)
}
