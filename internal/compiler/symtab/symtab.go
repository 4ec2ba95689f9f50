/*
 * CiScal Compiler - Symbol table
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

// Package symtab implements the stack of lexically nested Scopes that hold
// CiScal's Variable, Parameter, Temporary and Function entities.
package symtab

import "fmt"

// ParamMode is the passing convention of a Parameter or call-site Argument.
type ParamMode int

const (
	CV  ParamMode = iota // call-by-value ("in")
	REF                  // call-by-reference ("inout")
)

func (m ParamMode) String() string {
	if m == REF {
		return "REF"
	}
	return "CV"
}

// RetType is a Function entity's declared return type.
type RetType int

const (
	Void RetType = iota
	Int
)

// Entity is the closed sum of symbol table records. The unexported method
// makes the set closed to this package; callers type-switch on the concrete
// types below.
type Entity interface {
	entityName() string
	isEntity()
}

// Variable is a simple scalar binding.
type Variable struct {
	Name   string
	Offset int
}

func (v *Variable) entityName() string { return v.Name }
func (*Variable) isEntity()            {}

// Parameter is a formal parameter, call-by-value or call-by-reference.
type Parameter struct {
	Name   string
	Mode   ParamMode
	Offset int
}

func (p *Parameter) entityName() string { return p.Name }
func (*Parameter) isEntity()            {}

// Temporary is a compiler-generated scratch slot, named T_<n>.
type Temporary struct {
	Name   string
	Offset int
}

func (t *Temporary) entityName() string { return t.Name }
func (*Temporary) isEntity()            {}

// Argument is one formal parameter's passing mode, recorded on the Function
// entity in declaration order so call sites can be validated positionally.
type Argument struct {
	Mode ParamMode
}

// Function is a procedure or function entity, declared into the scope
// enclosing its own body.
type Function struct {
	Name        string
	RetType     RetType
	StartQuad   int
	FrameLength int
	Level       int // nesting level of the subprogram's own body scope
	Args        []Argument
}

func (f *Function) entityName() string { return f.Name }
func (*Function) isEntity()            {}

// Scope is one lexically nested block: the main program is level 0.
type Scope struct {
	Level     int
	Enclosing *Scope
	entities  []Entity
	byName    map[string][]Entity // supports the same name under distinct kinds for the collision check
	TmpOffset int
}

// NewRoot creates the level-0 scope for the main program.
func NewRoot() *Scope {
	return &Scope{Level: 0, TmpOffset: 12, byName: map[string][]Entity{}}
}

// Push creates a new scope nested one level inside s.
func (s *Scope) Push() *Scope {
	return &Scope{Level: s.Level + 1, Enclosing: s, TmpOffset: 12, byName: map[string][]Entity{}}
}

// Error reports a symbol table violation (category E5).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func kindOf(e Entity) string {
	switch e.(type) {
	case *Variable:
		return "variable"
	case *Parameter:
		return "parameter"
	case *Temporary:
		return "temporary"
	case *Function:
		return "function"
	default:
		return "entity"
	}
}

// declare checks uniqueness, assigns an offset when applicable, and inserts
// e into s.
func (s *Scope) declare(name string, e Entity, takesOffset bool) (int, error) {
	for _, existing := range s.byName[name] {
		_, existingIsVar := existing.(*Variable)
		_, existingIsParam := existing.(*Parameter)
		_, newIsVar := e.(*Variable)
		_, newIsParam := e.(*Parameter)
		sameKind := kindOf(existing) == kindOf(e)
		crossCollision := (existingIsVar && newIsParam) || (existingIsParam && newIsVar)
		if sameKind || crossCollision {
			return 0, &Error{fmt.Sprintf("redefinition of %q (previously declared as %s)", name, kindOf(existing))}
		}
	}
	offset := 0
	if takesOffset {
		offset = s.TmpOffset
		s.TmpOffset += 4
	}
	s.entities = append(s.entities, e)
	s.byName[name] = append(s.byName[name], e)
	return offset, nil
}

// AddVariable declares a Variable in s.
func (s *Scope) AddVariable(name string) (*Variable, error) {
	v := &Variable{Name: name}
	off, err := s.declare(name, v, true)
	if err != nil {
		return nil, err
	}
	v.Offset = off
	return v, nil
}

// AddParameter declares a Parameter in s.
func (s *Scope) AddParameter(name string, mode ParamMode) (*Parameter, error) {
	p := &Parameter{Name: name, Mode: mode}
	off, err := s.declare(name, p, true)
	if err != nil {
		return nil, err
	}
	p.Offset = off
	return p, nil
}

// AddTemporary declares a compiler-generated Temporary in s, using a name
// already minted by the IR builder.
func (s *Scope) AddTemporary(name string) *Temporary {
	t := &Temporary{Name: name}
	off, _ := s.declare(name, t, true) // temporaries never collide: names are unique by construction
	t.Offset = off
	return t
}

// AddFunction declares a Function/Procedure entity in s (the scope
// enclosing the subprogram's own body, per the declaration placement rule).
func (s *Scope) AddFunction(name string, ret RetType) (*Function, error) {
	f := &Function{Name: name, RetType: ret}
	if _, err := s.declare(name, f, false); err != nil {
		return nil, err
	}
	return f, nil
}

// Entities returns the entities declared directly in s, in declaration
// order.
func (s *Scope) Entities() []Entity {
	return s.entities
}

// FrameLength returns the framelength law's value for the entities declared
// directly in s: 12 + 4 * (#Variable + #Parameter + #Temporary).
func (s *Scope) FrameLength() int {
	return s.TmpOffset
}

// Lookup walks from s outward through Enclosing links and returns the first
// entity bound to name, together with the nested level of the scope that
// bound it.
func Lookup(s *Scope, name string) (Entity, int, bool) {
	for cur := s; cur != nil; cur = cur.Enclosing {
		if ents, ok := cur.byName[name]; ok && len(ents) > 0 {
			return ents[0], cur.Level, true
		}
	}
	return nil, 0, false
}

// LookupFunction walks from s outward for a Function entity named name,
// skipping any non-Function binding of the same name (declare lets a
// Variable or Parameter share a scope with a same-named Function).
func LookupFunction(s *Scope, name string) (*Function, bool) {
	for cur := s; cur != nil; cur = cur.Enclosing {
		for _, e := range cur.byName[name] {
			if f, ok := e.(*Function); ok {
				return f, true
			}
		}
	}
	return nil, false
}
