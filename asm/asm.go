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
	"io"
	"sort"
	"strconv"

	"github.com/papamitra/python-sicp-chap5/internal/ewriter"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

// Op is an instruction mnemonic.
type Op int

// Instruction mnemonics.
const (
	Assign Op = iota
	Test
	Branch
	Goto
	Save
	Restore
	Perform
	opCount
)

var mnemonics = [...]string{
	Assign:  "assign",
	Test:    "test",
	Branch:  "branch",
	Goto:    "goto",
	Save:    "save",
	Restore: "restore",
	Perform: "perform",
}

var opIndex = func() map[string]Op {
	m := make(map[string]Op, len(mnemonics))
	for i, s := range mnemonics {
		m[s] = Op(i)
	}
	return m
}()

func (o Op) String() string {
	if o < 0 || o >= opCount {
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
	return mnemonics[o]
}

// ExprKind is the kind of an operand expression.
type ExprKind int

// Operand expression kinds.
const (
	Const ExprKind = iota
	Reg
	Label
	OpCall
)

var exprTags = [...]string{
	Const:  "const",
	Reg:    "reg",
	Label:  "label",
	OpCall: "op",
}

func (k ExprKind) String() string {
	if k < 0 || int(k) >= len(exprTags) {
		return "expr(" + strconv.Itoa(int(k)) + ")"
	}
	return exprTags[k]
}

// Expr is an operand expression.
type Expr struct {
	Kind  ExprKind
	Value sexp.Value // Const only
	Name  string     // register, label or operation name
	Args  []Expr     // OpCall only. Args are never OpCalls.
}

// forms returns the controller text for e. An OpCall spans several forms.
func (e *Expr) forms() []sexp.Value {
	switch e.Kind {
	case Const:
		return []sexp.Value{[]sexp.Value{sexp.Ident("const"), e.Value}}
	case OpCall:
		fs := make([]sexp.Value, 0, len(e.Args)+1)
		fs = append(fs, []sexp.Value{sexp.Ident("op"), sexp.Ident(e.Name)})
		for i := range e.Args {
			fs = append(fs, e.Args[i].forms()...)
		}
		return fs
	}
	return []sexp.Value{[]sexp.Value{sexp.Ident(e.Kind.String()), sexp.Ident(e.Name)}}
}

// Instruction is an assembled instruction.
type Instruction struct {
	Op Op
	// Reg is the target register of Assign, Save and Restore.
	Reg string
	// Value is the value expression of Assign, the OpCall of Test and
	// Perform and the destination of Branch and Goto.
	Value Expr
	// Text is the source form the instruction was assembled from.
	Text sexp.Value
}

// Sexp returns the controller text for the instruction.
func (i *Instruction) Sexp() sexp.Value {
	l := []sexp.Value{sexp.Ident(i.Op.String())}
	switch i.Op {
	case Assign, Save, Restore:
		l = append(l, sexp.Ident(i.Reg))
	}
	if i.Op != Save && i.Op != Restore {
		l = append(l, i.Value.forms()...)
	}
	return l
}

func (i *Instruction) String() string {
	return sexp.Dump(i.Sexp())
}

// Program is an assembled controller.
type Program struct {
	Instructions []Instruction
	// Labels maps label names to instruction indices. A label at the end of
	// the program maps to len(Instructions).
	Labels map[string]int
}

// Label returns the jump target for the given label name.
func (p *Program) Label(name string) (Target, bool) {
	pc, ok := p.Labels[name]
	return Target{name, pc}, ok
}

// Target is the value of a (label name) expression: a position in a program
// that can be held in a register and used as a goto destination.
type Target struct {
	Name string
	PC   int
}

func (t Target) String() string {
	return "#<label " + t.Name + ">"
}

// Assemble assembles a controller read by sexp.Read. The returned error, if
// any, wraps one of the Err* values in this package.
func Assemble(text sexp.Value) (*Program, error) {
	p := newParser()
	if err := p.parse(text); err != nil {
		return nil, err
	}
	return p.prog, nil
}

// AssembleString reads and assembles controller text.
func AssembleString(src string) (*Program, error) {
	text, err := sexp.ReadOne(src)
	if err != nil {
		return nil, err
	}
	return Assemble(text)
}

// Disassemble writes p to w as controller text that assembles back to the
// same program.
func Disassemble(w io.Writer, p *Program) error {
	ew := ewriter.New(w)
	at := make(map[int][]string)
	for name, pc := range p.Labels {
		at[pc] = append(at[pc], name)
	}
	labels := func(pc int) {
		names := at[pc]
		sort.Strings(names)
		for _, n := range names {
			ew.WriteString(n)
			ew.WriteByte('\n')
		}
	}

	ew.WriteString("(\n")
	for pc := range p.Instructions {
		labels(pc)
		ew.WriteString("  ")
		ew.WriteString(p.Instructions[pc].String())
		ew.WriteByte('\n')
	}
	labels(len(p.Instructions))
	ew.WriteString(")\n")
	return errors.Wrap(ew.Err, "disassemble")
}
