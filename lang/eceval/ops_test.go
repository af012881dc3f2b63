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

package eceval_test

import (
	"bytes"
	"testing"

	"github.com/papamitra/python-sicp-chap5/lang/eceval"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
)

func machine(t *testing.T, controller string, global *eceval.Env, w *bytes.Buffer) *vm.Machine {
	t.Helper()
	m, err := vm.New(controller,
		vm.Registers(eceval.Registers...),
		vm.Operations(eceval.Ops(global, w)))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if err = m.Start(); err != nil {
		t.Fatalf("%+v", err)
	}
	return m
}

func TestOps_arglist(t *testing.T) {
	var w bytes.Buffer
	m := machine(t, `(
		(assign argl (op empty-arglist))
		(assign argl (op adjoin-arg) (const 1) (reg argl))
		(save argl)
		(assign argl (op adjoin-arg) (const 2) (reg argl))
		(assign unev (op rest-operands) (reg argl))
		(restore val))`, eceval.NewGlobalEnv(&w), &w)
	if v := m.Get("argl"); !sexp.Equal(v, V{int64(1), int64(2)}) {
		t.Fatalf("bad argl %s", sexp.Dump(v))
	}
	if v := m.Get("unev"); !sexp.Equal(v, V{int64(2)}) {
		t.Fatalf("bad rest operands %s", sexp.Dump(v))
	}
	// the saved list is not modified by later adjoin-arg
	if v := m.Get("val"); !sexp.Equal(v, V{int64(1)}) {
		t.Fatalf("saved list changed to %s", sexp.Dump(v))
	}
}

func TestOps_environment(t *testing.T) {
	var w bytes.Buffer
	global := eceval.NewGlobalEnv(&w)
	m := machine(t, `(
		(assign env (op get-global-environment))
		(assign proc (op make-procedure) (const (x y z)) (const ((+ x y z))) (reg env))
		(assign argl (const (1 2 3)))
		(assign unev (op procedure-parameters) (reg proc))
		(assign env (op procedure-environment) (reg proc))
		(assign env (op extend-environment) (reg unev) (reg argl) (reg env))
		(perform (op set-variable-value!) (const y) (const -1) (reg env))
		(perform (op define-variable!) (const w) (const 4) (reg env))
		(assign val (op lookup-variable-value) (const y) (reg env))
		(test (op compound-procedure?) (reg proc)))`, global, &w)

	if v := m.Get("val"); v != int64(-1) {
		t.Fatalf("bad y %v", v)
	}
	if m.Get(vm.FlagRegister) != true {
		t.Fatal("proc is not a compound procedure")
	}
	env := m.Get("env").(*eceval.Env)
	if env.Parent() != global {
		t.Fatal("extended environment does not extend the global one")
	}
	for n, exp := range map[sexp.Ident]sexp.Value{"x": int64(1), "y": int64(-1), "z": int64(3), "w": int64(4)} {
		if v, err := env.Lookup(n); err != nil || v != exp {
			t.Errorf("%s: expected %v, got %v (%v)", n, exp, v, err)
		}
	}
	if _, err := global.Lookup("w"); errors.Cause(err) != eceval.ErrUnbound {
		t.Fatal("define-variable! should bind in the first frame")
	}
}

func TestOps_primitives(t *testing.T) {
	var w bytes.Buffer
	m := machine(t, `(
		(assign env (op get-global-environment))
		(assign proc (op lookup-variable-value) (const +) (reg env))
		(assign argl (const (1 2 3 4)))
		(test (op primitive-procedure?) (reg proc))
		(assign val (op apply-primitive-procedure) (reg proc) (reg argl))
		(perform (op user-print) (reg val))
		(perform (op user-print) (const (a "b" 1.5))))`, eceval.NewGlobalEnv(&w), &w)
	if v := m.Get("val"); v != int64(10) {
		t.Fatalf("bad sum %v", v)
	}
	if m.Get(vm.FlagRegister) != true {
		t.Fatal("+ is not a primitive procedure")
	}
	if s := w.String(); s != "10\n(a \"b\" 1.5)\n" {
		t.Fatalf("bad output %q", s)
	}
}

func TestOps_syntax(t *testing.T) {
	ops := eceval.Ops(eceval.NewEnv(nil), nil)
	var tests = [...]struct {
		op, exp string
		res     sexp.Value
	}{
		{"self-evaluating?", "3", true},
		{"self-evaluating?", `"test"`, true},
		{"self-evaluating?", "a", false},
		{"variable?", "a", true},
		{"quoted?", "'(1 2 3)", true},
		{"assignment?", "(set! a 1)", true},
		{"definition?", "(define (f a b) (+ a b))", true},
		{"if?", "(if (eq? 1 1) #t #f)", true},
		{"lambda?", "(lambda (a b) (+ a b))", true},
		{"begin?", "(begin (+ 1 2) (+ 3 4))", true},
		{"application?", "'a", true},
		{"application?", "a", false},
		{"application?", "(+ a b)", true},
		{"text-of-quotation", "'(1 2 3)", V{int64(1), int64(2), int64(3)}},
		{"first-operand", "(a b c)", sexp.Ident("a")},
		{"last-operand?", "(a b c)", false},
		{"last-operand?", "(a)", true},
		{"definition-variable", "(define (f a b) (+ a b))", sexp.Ident("f")},
		{"definition-variable", "(define x 1)", sexp.Ident("x")},
		{"if-alternative", "(if a b)", false},
		{"if-alternative", "(if a b c)", sexp.Ident("c")},
		{"cond->if", "(cond (a 1) (else 2))", V{sexp.Ident("if"), sexp.Ident("a"), int64(1), int64(2)}},
	}
	for _, test := range tests {
		exp, err := eceval.Reader.ReadOne(test.exp)
		if err != nil {
			t.Fatal(err)
		}
		v, err := ops[test.op]([]sexp.Value{exp})
		if err != nil {
			t.Errorf("(%s %s): %v", test.op, test.exp, err)
			continue
		}
		if !sexp.Equal(v, test.res) {
			t.Errorf("(%s %s): expected %s, got %s", test.op, test.exp, sexp.Dump(test.res), sexp.Dump(v))
		}
	}

	// (define (f a b) body) defines f as (lambda (a b) body)
	exp, _ := eceval.Reader.ReadOne("(define (f a b) (+ a b))")
	v, err := ops["definition-value"]([]sexp.Value{exp})
	if err != nil {
		t.Fatal(err)
	}
	if s := sexp.Dump(v); s != "(lambda (a b) (+ a b))" {
		t.Fatalf("bad definition value %s", s)
	}
}
