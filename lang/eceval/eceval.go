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

// Package eceval implements the explicit-control evaluator of SICP section
// 5.4 on top of package vm.
//
// The evaluator is a register machine controller (Controller) together with
// the operations it uses (Ops). Expressions are read with Reader, where 'x
// stands for (quote x). Supported special forms are quote, set!, define, if,
// cond, let, lambda and begin.
//
// Each Evaluator owns its global environment; evaluators never share state.
package eceval

import (
	"io"

	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
)

// Reader reads evaluator input. The quote character is the quote shorthand,
// and quoted atoms use the "#:" prefix.
var Reader = sexp.NewReader(sexp.WithSymbolMarker("#:"))

// Evaluator evaluates expressions in a global environment.
type Evaluator struct {
	m      *vm.Machine
	global *Env
}

// New returns a new Evaluator with a fresh global environment. Output of
// display, newline and user-print goes to w. Options are passed to the
// underlying machine.
func New(w io.Writer, opts ...vm.Option) (*Evaluator, error) {
	global := NewGlobalEnv(w)
	m, err := vm.New(Controller, append([]vm.Option{
		vm.Registers(Registers...),
		vm.Operations(Ops(global, w)),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Evaluator{m: m, global: global}, nil
}

// Global returns the global environment.
func (e *Evaluator) Global() *Env { return e.global }

// Machine returns the machine running the evaluator.
func (e *Evaluator) Machine() *vm.Machine { return e.m }

// Eval evaluates expr in the global environment.
func (e *Evaluator) Eval(expr sexp.Value) (sexp.Value, error) {
	for _, r := range Registers {
		e.m.Set(r, nil)
	}
	e.m.Set("exp", expr)
	e.m.Set("env", e.global)
	if err := e.m.Start(); err != nil {
		return nil, err
	}
	return e.m.Get("val"), nil
}

// EvalString reads and evaluates all expressions in src and returns the value
// of the last one.
func (e *Evaluator) EvalString(src string) (v sexp.Value, err error) {
	exprs, err := Reader.Read(src)
	if err != nil {
		return nil, err
	}
	for _, x := range exprs {
		if v, err = e.Eval(x); err != nil {
			return nil, err
		}
	}
	return v, nil
}
