/*
 * CiScal Compiler - Recursive-descent parser and semantic actions
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

// Package parser implements CiScal's recursive-descent grammar together
// with the semantic actions that drive IR generation (package ir) and
// symbol table population (package symtab). All parsing state lives on the
// Parser value; there is no package-level mutable state, so multiple
// Parsers can coexist in one process.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/csc-lang/ciscal/internal/compiler/cerr"
	"github.com/csc-lang/ciscal/internal/compiler/diag"
	"github.com/csc-lang/ciscal/internal/compiler/ir"
	"github.com/csc-lang/ciscal/internal/compiler/lexer"
	"github.com/csc-lang/ciscal/internal/compiler/symtab"
	"github.com/csc-lang/ciscal/internal/compiler/token"
)

// Block records the quad range and scope of one closed procedure/function/
// main body, handed to the code generators once parsing has finished.
type Block struct {
	Name      string
	Scope     *symtab.Scope
	StartQuad int
	EndQuad   int // inclusive label of the block's end_block quad
	IsMain    bool
}

// Parser holds all state for one compilation: the current token, the scope
// stack, the IR builder, and the control-flow bookkeeping the semantic
// actions need (in_function/have_return/in_dowhile/exit lists) as fields of
// a value rather than ambient globals. The actual parameters of a call are
// collected in a local list per call site, not on the Parser.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token

	IR     *ir.Builder
	scope  *symtab.Scope
	report diag.Reporter
	log    *slog.Logger

	Blocks []Block

	funcStack    []*symtab.Function // nil entry means "inside a procedure"
	haveReturn   []bool
	doWhileStack []*doWhileFrame

	hasSubprog bool
}

type doWhileFrame struct {
	exitList ir.List
}

type actualPar struct {
	mode  symtab.ParamMode
	value string // CV: the evaluated operand; REF: the identifier name
}

// New builds a Parser over source tokenized by lex, reporting diagnostics
// through report and operational trail through log (which may be
// logger.Discard() if the caller does not care).
func New(lex *lexer.Lexer, report diag.Reporter, log *slog.Logger) *Parser {
	return &Parser{
		lex:    lex,
		IR:     ir.NewBuilder(),
		scope:  symtab.NewRoot(),
		report: report,
		log:    log,
	}
}

// HasSubprograms reports whether the program declares any Function/Procedure
// at all, at any nesting depth — including one declared directly under the
// main program with no further nesting. The C emitter has no flat rendering
// of the static access-link chain a subprogram call needs, so the driver
// uses this as the trigger to skip ANSI-C emission entirely.
func (p *Parser) HasSubprograms() bool {
	return p.hasSubprog
}

func (p *Parser) advance() error {
	t, err := p.lex.Next()
	if err != nil {
		if lerr, ok := err.(*lexer.Error); ok {
			p.report.Report(diag.Error, lerr.Line, lerr.Col, lerr.Msg)
			return cerr.New(cerr.Lexical, "%s", lerr.Msg)
		}
		return cerr.New(cerr.Lexical, "%s", err.Error())
	}
	p.cur = t
	return nil
}

func (p *Parser) errorf(cat cerr.Category, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	p.report.Report(diag.Error, p.cur.Line, p.cur.Col, msg)
	return cerr.New(cat, "%s", msg)
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errorf(cerr.Syntax, "expected %s, found %s", k, p.cur.Kind)
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return t, nil
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

// Program parses 'program' IDENT block and returns the fully populated
// Parser state (p.IR, p.Blocks) or the first fatal error encountered.
func (p *Parser) Program() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(token.PROGRAM); err != nil {
		return err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return err
	}
	if err := p.block(nameTok.Lexeme, true); err != nil {
		return err
	}
	if p.cur.Kind != token.EOF {
		return p.errorf(cerr.Syntax, "unexpected token %s after program end", p.cur.Kind)
	}
	if unresolved := p.checkNoDanglingBackpatches(); unresolved != nil {
		return unresolved
	}
	return nil
}

func (p *Parser) checkNoDanglingBackpatches() error {
	for _, q := range p.IR.Quads() {
		needsTarget := q.Op == ir.OpJump || ir.Relational[q.Op]
		if needsTarget && q.Res == ir.Unused {
			return cerr.New(cerr.Internal, "quad %d (%s) left unresolved", q.Label, q.Op)
		}
	}
	return nil
}

// block := '{' declarations subprograms sequence '}'
func (p *Parser) block(name string, isMain bool) error {
	if _, err := p.expect(token.LBRACE); err != nil {
		return err
	}
	if err := p.declarations(); err != nil {
		return err
	}
	if err := p.subprograms(); err != nil {
		return err
	}

	startQuad := p.IR.Gen(ir.OpBegin, name, ir.Unused, ir.Unused)
	if !isMain {
		if fn, ok := symtab.LookupFunction(p.scope.Enclosing, name); ok {
			fn.StartQuad = startQuad
		}
	}

	if err := p.sequence(); err != nil {
		return err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return err
	}

	if isMain {
		p.IR.Gen(ir.OpHalt, ir.Unused, ir.Unused, ir.Unused)
	}
	endQuad := p.IR.Gen(ir.OpEnd, name, ir.Unused, ir.Unused)

	frame := p.scope.FrameLength()
	if !isMain {
		if fn, ok := symtab.LookupFunction(p.scope.Enclosing, name); ok {
			fn.FrameLength = frame
			fn.Level = p.scope.Level
		}
	}

	p.Blocks = append(p.Blocks, Block{Name: name, Scope: p.scope, StartQuad: startQuad, EndQuad: endQuad, IsMain: isMain})
	return nil
}

// declarations := ['declare' varlist 'enddeclare']
func (p *Parser) declarations() error {
	if !p.at(token.DECLARE) {
		return nil
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.varlist(); err != nil {
		return err
	}
	_, err := p.expect(token.ENDDECLARE)
	return err
}

func (p *Parser) varlist() error {
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return err
		}
		if _, err := p.scope.AddVariable(nameTok.Lexeme); err != nil {
			return p.scopeError(nameTok, err)
		}
		if !p.at(token.COMMA) {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

func (p *Parser) scopeError(at token.Token, err error) error {
	p.report.Report(diag.Error, at.Line, at.Col, err.Error())
	return cerr.New(cerr.Scope, "%s", err.Error())
}

// subprograms := (('procedure'|'function') IDENT formalpars block)*
func (p *Parser) subprograms() error {
	for p.at(token.PROCEDURE) || p.at(token.FUNCTION) {
		isFunc := p.at(token.FUNCTION)
		if err := p.advance(); err != nil {
			return err
		}
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return err
		}

		ret := symtab.Void
		if isFunc {
			ret = symtab.Int
		}
		fn, ferr := p.scope.AddFunction(nameTok.Lexeme, ret)
		if ferr != nil {
			return p.scopeError(nameTok, ferr)
		}

		p.hasSubprog = true

		childScope := p.scope.Push()
		p.scope = childScope
		p.funcStack = append(p.funcStack, funcOrNil(isFunc, fn))
		p.haveReturn = append(p.haveReturn, false)

		args, err := p.formalPars()
		if err != nil {
			return err
		}
		fn.Args = args

		if err := p.block(nameTok.Lexeme, false); err != nil {
			return err
		}

		if isFunc && !p.haveReturn[len(p.haveReturn)-1] {
			return p.errorf(cerr.Semantic, "function %q has no return statement", nameTok.Lexeme)
		}

		p.haveReturn = p.haveReturn[:len(p.haveReturn)-1]
		p.funcStack = p.funcStack[:len(p.funcStack)-1]
		p.scope = childScope.Enclosing
	}
	return nil
}

func funcOrNil(isFunc bool, fn *symtab.Function) *symtab.Function {
	if isFunc {
		return fn
	}
	return nil
}

// formalpars := '(' [formalparitem (',' formalparitem)*] ')'
func (p *Parser) formalPars() ([]symtab.Argument, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []symtab.Argument
	if !p.at(token.RPAREN) {
		for {
			arg, err := p.formalParItem()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.at(token.COMMA) {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// formalparitem := ('in'|'inout') IDENT
func (p *Parser) formalParItem() (symtab.Argument, error) {
	mode := symtab.CV
	switch {
	case p.at(token.IN):
		mode = symtab.CV
	case p.at(token.INOUT):
		mode = symtab.REF
	default:
		return symtab.Argument{}, p.errorf(cerr.Syntax, "expected 'in' or 'inout', found %s", p.cur.Kind)
	}
	if err := p.advance(); err != nil {
		return symtab.Argument{}, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return symtab.Argument{}, err
	}
	if _, err := p.scope.AddParameter(nameTok.Lexeme, mode); err != nil {
		return symtab.Argument{}, p.scopeError(nameTok, err)
	}
	return symtab.Argument{Mode: mode}, nil
}

// sequence := statement (';' statement)*
func (p *Parser) sequence() error {
	if err := p.statement(); err != nil {
		return err
	}
	for p.at(token.SEMI) {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

// brack_or_stat := '{' sequence '}' | statement ';'
func (p *Parser) brackOrStat() error {
	if p.at(token.LBRACE) {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.sequence(); err != nil {
			return err
		}
		_, err := p.expect(token.RBRACE)
		return err
	}
	if err := p.statement(); err != nil {
		return err
	}
	_, err := p.expect(token.SEMI)
	return err
}

// statement dispatches on the lookahead per the grammar in §4.4.
func (p *Parser) statement() error {
	switch p.cur.Kind {
	case token.IDENT:
		return p.assignmentStat()
	case token.IF:
		return p.ifStat()
	case token.WHILE:
		return p.whileStat()
	case token.DO:
		return p.doWhileStat()
	case token.SELECT:
		return p.selectStat()
	case token.EXIT:
		return p.exitStat()
	case token.RETURN:
		return p.returnStat()
	case token.PRINT:
		return p.printStat()
	case token.CALL:
		return p.callStat()
	default:
		return nil // empty statement (epsilon production)
	}
}

func (p *Parser) assignmentStat() error {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return err
	}
	val, err := p.expression()
	if err != nil {
		return err
	}
	if err := p.resolveName(nameTok); err != nil {
		return err
	}
	p.IR.Gen(ir.OpAssign, val, ir.Unused, nameTok.Lexeme)
	return nil
}

// resolveName checks that an identifier used as an lvalue/operand has been
// declared anywhere in the visible scope chain (error E7 otherwise).
func (p *Parser) resolveName(tok token.Token) error {
	if _, _, ok := symtab.Lookup(p.scope, tok.Lexeme); !ok {
		return p.nameError(tok)
	}
	return nil
}

func (p *Parser) nameError(tok token.Token) error {
	msg := fmt.Sprintf("undeclared identifier %q", tok.Lexeme)
	p.report.Report(diag.Error, tok.Line, tok.Col, msg)
	return cerr.New(cerr.NameOrCall, "%s", msg)
}

func (p *Parser) ifStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	trueList, falseList, err := p.condition()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	p.IR.Backpatch(trueList, p.IR.NextQuad())
	if err := p.brackOrStat(); err != nil {
		return err
	}
	skip := ir.Make(p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, ir.Unused))
	p.IR.Backpatch(falseList, p.IR.NextQuad())
	if p.at(token.ELSE) {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.brackOrStat(); err != nil {
			return err
		}
	}
	p.IR.Backpatch(skip, p.IR.NextQuad())
	return nil
}

func (p *Parser) whileStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	bQuad := p.IR.NextQuad()
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	trueList, falseList, err := p.condition()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	p.IR.Backpatch(trueList, p.IR.NextQuad())
	if err := p.brackOrStat(); err != nil {
		return err
	}
	p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, strconv.Itoa(bQuad))
	p.IR.Backpatch(falseList, p.IR.NextQuad())
	return nil
}

func (p *Parser) doWhileStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	sQuad := p.IR.NextQuad()
	p.doWhileStack = append(p.doWhileStack, &doWhileFrame{})
	if err := p.brackOrStat(); err != nil {
		return err
	}
	if _, err := p.expect(token.WHILE); err != nil {
		return err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	trueList, falseList, err := p.condition()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	p.IR.Backpatch(trueList, sQuad)
	post := p.IR.NextQuad()
	p.IR.Backpatch(falseList, post)

	frame := p.doWhileStack[len(p.doWhileStack)-1]
	p.doWhileStack = p.doWhileStack[:len(p.doWhileStack)-1]
	p.IR.Backpatch(frame.exitList, post)
	return nil
}

func (p *Parser) exitStat() error {
	tok := p.cur
	if err := p.advance(); err != nil {
		return err
	}
	if len(p.doWhileStack) == 0 {
		msg := "'exit' outside a do-while loop"
		p.report.Report(diag.Error, tok.Line, tok.Col, msg)
		return cerr.New(cerr.Semantic, "%s", msg)
	}
	frame := p.doWhileStack[len(p.doWhileStack)-1]
	label := p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, ir.Unused)
	frame.exitList = ir.Merge(frame.exitList, ir.Make(label))
	return nil
}

func (p *Parser) selectStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	idTok, err := p.expect(token.IDENT)
	if err != nil {
		return err
	}
	if err := p.resolveName(idTok); err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}

	var exitList ir.List
	expected := 1
	for p.at(token.NUMBER) {
		numTok := p.cur
		n, convErr := strconv.Atoi(numTok.Lexeme)
		if convErr != nil || n != expected {
			return p.errorf(cerr.Syntax, "select case constants must be 1,2,3,... in order; found %s", numTok.Lexeme)
		}
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		trueLabel := p.IR.Gen(ir.OpEq, idTok.Lexeme, numTok.Lexeme, ir.Unused)
		falseLabel := p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, ir.Unused)
		p.IR.Backpatch(ir.Make(trueLabel), p.IR.NextQuad())
		if err := p.brackOrStat(); err != nil {
			return err
		}
		exitList = ir.Merge(exitList, ir.Make(p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, ir.Unused)))
		p.IR.Backpatch(ir.Make(falseLabel), p.IR.NextQuad())
		expected++
	}
	if !p.at(token.DEFAULT) {
		return p.errorf(cerr.Syntax, "'select' requires a 'default' clause")
	}
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.brackOrStat(); err != nil {
		return err
	}
	p.IR.Backpatch(exitList, p.IR.NextQuad())
	return nil
}

func (p *Parser) returnStat() error {
	tok := p.cur
	if err := p.advance(); err != nil {
		return err
	}
	if len(p.funcStack) == 0 || p.funcStack[len(p.funcStack)-1] == nil {
		msg := "'return' outside a function body"
		p.report.Report(diag.Error, tok.Line, tok.Col, msg)
		return cerr.New(cerr.Semantic, "%s", msg)
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	val, err := p.expression()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	p.haveReturn[len(p.haveReturn)-1] = true
	p.IR.Gen(ir.OpRetv, val, ir.Unused, ir.Unused)
	return nil
}

func (p *Parser) printStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}
	val, err := p.expression()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	p.IR.Gen(ir.OpOut, val, ir.Unused, ir.Unused)
	return nil
}

func (p *Parser) callStat() error {
	if err := p.advance(); err != nil {
		return err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return err
	}
	fn, ok := symtab.LookupFunction(p.scope, nameTok.Lexeme)
	if !ok {
		return p.nameError(nameTok)
	}
	pars, err := p.actualParsList()
	if err != nil {
		return err
	}
	if _, err := p.emitCall(nameTok, fn, pars, false); err != nil {
		return err
	}
	return nil
}

// actualpars := '(' [actualparitem (',' actualparitem)*] ')'
func (p *Parser) actualParsList() ([]actualPar, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var pars []actualPar
	if !p.at(token.RPAREN) {
		for {
			par, err := p.actualParItem()
			if err != nil {
				return nil, err
			}
			pars = append(pars, par)
			if !p.at(token.COMMA) {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return pars, nil
}

// actualparitem := 'in' expression | 'inout' IDENT
func (p *Parser) actualParItem() (actualPar, error) {
	switch p.cur.Kind {
	case token.IN:
		if err := p.advance(); err != nil {
			return actualPar{}, err
		}
		val, err := p.expression()
		if err != nil {
			return actualPar{}, err
		}
		return actualPar{mode: symtab.CV, value: val}, nil
	case token.INOUT:
		if err := p.advance(); err != nil {
			return actualPar{}, err
		}
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return actualPar{}, err
		}
		if err := p.resolveName(nameTok); err != nil {
			return actualPar{}, err
		}
		return actualPar{mode: symtab.REF, value: nameTok.Lexeme}, nil
	default:
		return actualPar{}, p.errorf(cerr.Syntax, "expected 'in' or 'inout', found %s", p.cur.Kind)
	}
}

// emitCall validates pars against fn.Args (§4.6), emits the par/call quads,
// and, for an expression-position call (wantValue), returns the fresh
// temp holding the return value.
func (p *Parser) emitCall(nameTok token.Token, fn *symtab.Function, pars []actualPar, wantValue bool) (string, error) {
	if len(pars) != len(fn.Args) {
		msg := fmt.Sprintf("call to %q: expected %d argument(s), found %d", nameTok.Lexeme, len(fn.Args), len(pars))
		p.report.Report(diag.Error, nameTok.Line, nameTok.Col, msg)
		return "", cerr.New(cerr.NameOrCall, "%s", msg)
	}
	for i, par := range pars {
		if par.mode != fn.Args[i].Mode {
			msg := fmt.Sprintf("call to %q: argument %d passing mode mismatch (want %s, found %s)", nameTok.Lexeme, i+1, fn.Args[i].Mode, par.mode)
			p.report.Report(diag.Error, nameTok.Line, nameTok.Col, msg)
			return "", cerr.New(cerr.NameOrCall, "%s", msg)
		}
		if par.mode == symtab.CV {
			p.IR.Gen(ir.OpPar, par.value, "CV", ir.Unused)
		} else {
			p.IR.Gen(ir.OpPar, par.value, "REF", ir.Unused)
		}
	}
	var result string
	if wantValue {
		result = p.IR.NewTempName()
		p.scope.AddTemporary(result)
		p.IR.Gen(ir.OpPar, result, "RET", ir.Unused)
	}
	p.IR.Gen(ir.OpCall, nameTok.Lexeme, ir.Unused, ir.Unused)
	return result, nil
}

// condition := boolterm ('or' boolterm)*
func (p *Parser) condition() (ir.List, ir.List, error) {
	trueList, falseList, err := p.boolTerm()
	if err != nil {
		return nil, nil, err
	}
	for p.at(token.OR) {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		p.IR.Backpatch(falseList, p.IR.NextQuad())
		rt, rf, err := p.boolTerm()
		if err != nil {
			return nil, nil, err
		}
		trueList = ir.Merge(trueList, rt)
		falseList = rf
	}
	return trueList, falseList, nil
}

// boolterm := boolfactor ('and' boolfactor)*
func (p *Parser) boolTerm() (ir.List, ir.List, error) {
	trueList, falseList, err := p.boolFactor()
	if err != nil {
		return nil, nil, err
	}
	for p.at(token.AND) {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		p.IR.Backpatch(trueList, p.IR.NextQuad())
		rt, rf, err := p.boolFactor()
		if err != nil {
			return nil, nil, err
		}
		trueList = rt
		falseList = ir.Merge(falseList, rf)
	}
	return trueList, falseList, nil
}

// boolfactor := 'not' '[' condition ']' | '[' condition ']' | expression relop expression
func (p *Parser) boolFactor() (ir.List, ir.List, error) {
	if p.at(token.NOT) {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(token.LBRACKET); err != nil {
			return nil, nil, err
		}
		t, f, err := p.condition()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, nil, err
		}
		return f, t, nil
	}
	if p.at(token.LBRACKET) {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		t, f, err := p.condition()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, nil, err
		}
		return t, f, nil
	}
	a, err := p.expression()
	if err != nil {
		return nil, nil, err
	}
	op, err := p.relOper()
	if err != nil {
		return nil, nil, err
	}
	b, err := p.expression()
	if err != nil {
		return nil, nil, err
	}
	trueLabel := p.IR.Gen(op, a, b, ir.Unused)
	falseLabel := p.IR.Gen(ir.OpJump, ir.Unused, ir.Unused, ir.Unused)
	return ir.Make(trueLabel), ir.Make(falseLabel), nil
}

func (p *Parser) relOper() (ir.Op, error) {
	var op ir.Op
	switch p.cur.Kind {
	case token.EQ:
		op = ir.OpEq
	case token.NE:
		op = ir.OpNe
	case token.LT:
		op = ir.OpLt
	case token.LE:
		op = ir.OpLe
	case token.GT:
		op = ir.OpGt
	case token.GE:
		op = ir.OpGe
	default:
		return "", p.errorf(cerr.Syntax, "expected relational operator, found %s", p.cur.Kind)
	}
	return op, p.advance()
}

// expression := [sign] term (('+'|'-') term)*
func (p *Parser) expression() (string, error) {
	neg := false
	if p.at(token.PLUS) {
		if err := p.advance(); err != nil {
			return "", err
		}
	} else if p.at(token.MINUS) {
		neg = true
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	val, err := p.term()
	if err != nil {
		return "", err
	}
	if neg {
		t := p.IR.NewTempName()
		p.scope.AddTemporary(t)
		p.IR.Gen(ir.OpSub, "0", val, t)
		val = t
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := ir.OpAdd
		if p.at(token.MINUS) {
			op = ir.OpSub
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		rhs, err := p.term()
		if err != nil {
			return "", err
		}
		t := p.IR.NewTempName()
		p.scope.AddTemporary(t)
		p.IR.Gen(op, val, rhs, t)
		val = t
	}
	return val, nil
}

// term := factor (('*'|'/') factor)*
func (p *Parser) term() (string, error) {
	val, err := p.factor()
	if err != nil {
		return "", err
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := ir.OpMul
		if p.at(token.SLASH) {
			op = ir.OpDiv
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		rhs, err := p.factor()
		if err != nil {
			return "", err
		}
		t := p.IR.NewTempName()
		p.scope.AddTemporary(t)
		p.IR.Gen(op, val, rhs, t)
		val = t
	}
	return val, nil
}

// factor := NUMBER | '(' expression ')' | IDENT [actualpars]
func (p *Parser) factor() (string, error) {
	switch p.cur.Kind {
	case token.NUMBER:
		tok := p.cur
		if n, err := strconv.Atoi(tok.Lexeme); err != nil || n < -32768 || n > 32767 {
			return "", p.errorf(cerr.Syntax, "numeric literal %q out of 16-bit signed range", tok.Lexeme)
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		return tok.Lexeme, nil
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return "", err
		}
		val, err := p.expression()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return "", err
		}
		return val, nil
	case token.IDENT:
		nameTok := p.cur
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.at(token.LPAREN) {
			fn, ok := symtab.LookupFunction(p.scope, nameTok.Lexeme)
			if !ok {
				return "", p.nameError(nameTok)
			}
			pars, err := p.actualParsList()
			if err != nil {
				return "", err
			}
			return p.emitCall(nameTok, fn, pars, true)
		}
		if err := p.resolveName(nameTok); err != nil {
			return "", err
		}
		return nameTok.Lexeme, nil
	default:
		return "", p.errorf(cerr.Syntax, "expected number, '(' or identifier, found %s", p.cur.Kind)
	}
}
