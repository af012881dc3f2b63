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

package vm

import (
	"github.com/papamitra/python-sicp-chap5/asm"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

type valueProc func() (sexp.Value, error)

// compile builds the execution closure of every instruction.
func (m *Machine) compile() error {
	m.procs = make([]func() error, len(m.prog.Instructions))
	for pc := range m.prog.Instructions {
		i := &m.prog.Instructions[pc]
		proc, err := m.compileInstruction(i)
		if err != nil {
			return errors.Wrapf(err, "instruction %d: %s", pc, i)
		}
		m.procs[pc] = proc
	}
	return nil
}

func (m *Machine) compileInstruction(i *asm.Instruction) (func() error, error) {
	switch i.Op {
	case asm.Assign:
		target := m.register(i.Reg)
		value, err := m.valueProc(&i.Value)
		if err != nil {
			return nil, err
		}
		return func() error {
			v, err := value()
			if err != nil {
				return err
			}
			target.value = v
			m.pc++
			return nil
		}, nil

	case asm.Test:
		if i.Value.Kind != asm.OpCall {
			return nil, errors.Wrap(asm.ErrBadInstruction, "test requires an operation call")
		}
		cond, err := m.valueProc(&i.Value)
		if err != nil {
			return nil, err
		}
		return func() error {
			v, err := cond()
			if err != nil {
				return err
			}
			m.flag.value = v
			m.pc++
			return nil
		}, nil

	case asm.Branch:
		if i.Value.Kind != asm.Label {
			return nil, errors.Wrap(asm.ErrBadInstruction, "branch requires a label")
		}
		t, err := m.label(i.Value.Name)
		if err != nil {
			return nil, err
		}
		return func() error {
			if Truthy(m.flag.value) {
				m.pc = t.PC
			} else {
				m.pc++
			}
			return nil
		}, nil

	case asm.Goto:
		switch i.Value.Kind {
		case asm.Label:
			t, err := m.label(i.Value.Name)
			if err != nil {
				return nil, err
			}
			return func() error {
				m.pc = t.PC
				return nil
			}, nil
		case asm.Reg:
			r := m.register(i.Value.Name)
			return func() error {
				t, ok := r.value.(asm.Target)
				if !ok || t.PC < 0 || t.PC > len(m.procs) {
					return errors.Wrapf(ErrBadTarget, "%s", sexp.Dump(r.value))
				}
				m.pc = t.PC
				return nil
			}, nil
		}
		return nil, errors.Wrap(asm.ErrBadInstruction, "goto requires a label or a register")

	case asm.Save:
		r := m.register(i.Reg)
		return func() error {
			m.stack.Push(r.value)
			m.pc++
			return nil
		}, nil

	case asm.Restore:
		r := m.register(i.Reg)
		return func() error {
			v, err := m.stack.Pop()
			if err != nil {
				return err
			}
			r.value = v
			m.pc++
			return nil
		}, nil

	case asm.Perform:
		if i.Value.Kind != asm.OpCall {
			return nil, errors.Wrap(asm.ErrBadInstruction, "perform requires an operation call")
		}
		action, err := m.valueProc(&i.Value)
		if err != nil {
			return nil, err
		}
		return func() error {
			if _, err := action(); err != nil {
				return err
			}
			m.pc++
			return nil
		}, nil
	}
	return nil, errors.Wrapf(asm.ErrInvalidInstruction, "%v", i.Op)
}

func (m *Machine) label(name string) (asm.Target, error) {
	t, ok := m.prog.Label(name)
	if !ok {
		return t, errors.Wrap(asm.ErrUnknownLabel, name)
	}
	return t, nil
}

func (m *Machine) valueProc(e *asm.Expr) (valueProc, error) {
	switch e.Kind {
	case asm.Const:
		v := e.Value
		return func() (sexp.Value, error) { return v, nil }, nil
	case asm.Reg:
		r := m.register(e.Name)
		return func() (sexp.Value, error) { return r.value, nil }, nil
	case asm.Label:
		t, err := m.label(e.Name)
		if err != nil {
			return nil, err
		}
		return func() (sexp.Value, error) { return t, nil }, nil
	case asm.OpCall:
		return m.opProc(e)
	}
	return nil, errors.Wrapf(asm.ErrUnknownExpression, "%v", e.Kind)
}

func (m *Machine) opProc(e *asm.Expr) (valueProc, error) {
	op, ok := m.ops[e.Name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownOperation, e.Name)
	}
	aprocs := make([]valueProc, len(e.Args))
	for n := range e.Args {
		a := &e.Args[n]
		if a.Kind == asm.OpCall {
			return nil, errors.Wrapf(asm.ErrUnknownExpression, "nested operation %s", a.Name)
		}
		p, err := m.valueProc(a)
		if err != nil {
			return nil, err
		}
		aprocs[n] = p
	}
	name := e.Name
	return func() (sexp.Value, error) {
		args := make([]sexp.Value, len(aprocs))
		for n, p := range aprocs {
			// operands are never operation calls and cannot fail
			args[n], _ = p()
		}
		v, err := op(args)
		return v, errors.Wrapf(err, "(op %s)", name)
	}, nil
}
