// This file is part of python-sicp-chap5 - https://github.com/papamitra/python-sicp-chap5
//
// Copyright 2024 The python-sicp-chap5 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

// Assembly errors. Errors returned by Assemble wrap one of these values; use
// errors.Cause to retrieve it.
var (
	ErrInvalidInstruction = errors.New("invalid instruction")
	ErrUnknownExpression  = errors.New("unknown expression")
	ErrBadInstruction     = errors.New("bad instruction")
	ErrUnknownLabel       = errors.New("unknown label")
	ErrDuplicateLabel     = errors.New("duplicate label")
)

type labelUse struct {
	name string
	pc   int
}

type parser struct {
	prog *Program
	uses []labelUse
}

func newParser() *parser {
	return &parser{
		prog: &Program{Labels: make(map[string]int)},
	}
}

func (p *parser) errorf(cause error, text sexp.Value, format string, args ...interface{}) error {
	return errors.Wrapf(cause, "instruction %d: %s: "+format,
		append([]interface{}{len(p.prog.Instructions), sexp.Dump(text)}, args...)...)
}

func (p *parser) parse(text sexp.Value) error {
	l, ok := text.([]sexp.Value)
	if !ok {
		return errors.Wrapf(ErrInvalidInstruction, "controller text must be a list, got %s", sexp.Dump(text))
	}
	for _, e := range l {
		if name, ok := e.(sexp.Ident); ok {
			if pc, dup := p.prog.Labels[string(name)]; dup {
				return errors.Wrapf(ErrDuplicateLabel, "%s, previous definition at instruction %d", name, pc)
			}
			p.prog.Labels[string(name)] = len(p.prog.Instructions)
			continue
		}
		i, err := p.instruction(e)
		if err != nil {
			return err
		}
		p.prog.Instructions = append(p.prog.Instructions, i)
	}

	for _, u := range p.uses {
		if _, ok := p.prog.Labels[u.name]; !ok {
			return errors.Wrapf(ErrUnknownLabel, "label %s used at instruction %d: %s",
				u.name, u.pc, sexp.Dump(p.prog.Instructions[u.pc].Text))
		}
	}
	return nil
}

// name returns the name held by an identifier.
func name(v sexp.Value) (string, bool) {
	id, ok := v.(sexp.Ident)
	return string(id), ok
}

func (p *parser) instruction(text sexp.Value) (i Instruction, err error) {
	i.Text = text
	l, ok := text.([]sexp.Value)
	if !ok || len(l) == 0 {
		return i, p.errorf(ErrInvalidInstruction, text, "not an instruction")
	}
	mnemonic, _ := name(l[0])
	op, ok := opIndex[mnemonic]
	if !ok {
		return i, p.errorf(ErrInvalidInstruction, text, "unknown mnemonic %s", sexp.Dump(l[0]))
	}
	i.Op = op
	args := l[1:]

	switch op {
	case Assign:
		if len(args) < 2 {
			return i, p.errorf(ErrBadInstruction, text, "expected register and value")
		}
		if i.Reg, ok = name(args[0]); !ok {
			return i, p.errorf(ErrBadInstruction, text, "bad register name %s", sexp.Dump(args[0]))
		}
		if isOpCall(args[1]) {
			i.Value, err = p.opCall(text, args[1:])
			return i, err
		}
		if len(args) != 2 {
			return i, p.errorf(ErrBadInstruction, text, "expected a single value expression")
		}
		i.Value, err = p.primitive(text, args[1])
	case Test, Perform:
		if len(args) == 0 || !isOpCall(args[0]) {
			return i, p.errorf(ErrBadInstruction, text, "expected an operation call")
		}
		i.Value, err = p.opCall(text, args)
	case Branch, Goto:
		if len(args) != 1 {
			return i, p.errorf(ErrBadInstruction, text, "expected a single destination")
		}
		if i.Value, err = p.primitive(text, args[0]); err != nil {
			return i, err
		}
		if k := i.Value.Kind; k != Label && (op == Branch || k != Reg) {
			return i, p.errorf(ErrBadInstruction, text, "bad destination %s", sexp.Dump(args[0]))
		}
	case Save, Restore:
		if len(args) != 1 {
			return i, p.errorf(ErrBadInstruction, text, "expected a single register")
		}
		if i.Reg, ok = name(args[0]); !ok {
			return i, p.errorf(ErrBadInstruction, text, "bad register name %s", sexp.Dump(args[0]))
		}
	default:
		panic("unreachable")
	}
	return i, err
}

func isTagged(v sexp.Value, tag string) bool {
	l, ok := v.([]sexp.Value)
	if !ok || len(l) == 0 {
		return false
	}
	s, ok := name(l[0])
	return ok && s == tag
}

func isOpCall(v sexp.Value) bool {
	return isTagged(v, "op")
}

// opCall parses (op name) arg...
func (p *parser) opCall(text sexp.Value, forms []sexp.Value) (Expr, error) {
	head := forms[0].([]sexp.Value)
	var e Expr
	var ok bool
	if len(head) != 2 {
		return e, p.errorf(ErrBadInstruction, text, "bad operation %s", sexp.Dump(forms[0]))
	}
	if e.Name, ok = name(head[1]); !ok {
		return e, p.errorf(ErrBadInstruction, text, "bad operation name %s", sexp.Dump(head[1]))
	}
	e.Kind = OpCall
	e.Args = make([]Expr, 0, len(forms)-1)
	for _, f := range forms[1:] {
		a, err := p.primitive(text, f)
		if err != nil {
			return e, err
		}
		e.Args = append(e.Args, a)
	}
	return e, nil
}

func (p *parser) primitive(text, v sexp.Value) (e Expr, err error) {
	l, ok := v.([]sexp.Value)
	if !ok || len(l) != 2 {
		return e, p.errorf(ErrUnknownExpression, text, "%s", sexp.Dump(v))
	}
	tag, _ := name(l[0])
	switch tag {
	case "const":
		return Expr{Kind: Const, Value: l[1]}, nil
	case "reg":
		e.Kind = Reg
	case "label":
		e.Kind = Label
	default:
		return e, p.errorf(ErrUnknownExpression, text, "%s", sexp.Dump(v))
	}
	if e.Name, ok = name(l[1]); !ok {
		return e, p.errorf(ErrUnknownExpression, text, "bad %s name %s", tag, sexp.Dump(l[1]))
	}
	if e.Kind == Label {
		p.uses = append(p.uses, labelUse{e.Name, len(p.prog.Instructions)})
	}
	return e, nil
}
