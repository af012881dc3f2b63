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

package sicp_test

import (
	"math"
	"testing"

	"github.com/papamitra/python-sicp-chap5/lang/sicp"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
)

func TestFib(t *testing.T) {
	m, err := sicp.NewFib()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	// the same machine is reused across runs
	for _, test := range [...]struct{ n, val int64 }{{5, 5}, {6, 8}, {0, 0}, {1, 1}, {10, 55}} {
		m.Set("n", test.n)
		if err = m.Start(); err != nil {
			t.Fatalf("%+v", err)
		}
		if v := m.Get("val"); v != test.val {
			t.Errorf("fib(%d): expected %d, got %v", test.n, test.val, v)
		}
		if d := m.Stack().Depth(); d != 0 {
			t.Errorf("fib(%d): stack depth %d after run", test.n, d)
		}
	}
}

func TestGCD(t *testing.T) {
	m, err := sicp.NewGCD()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	m.Set("a", int64(35))
	m.Set("b", int64(49))
	if err = m.Start(); err != nil {
		t.Fatalf("%+v", err)
	}
	if v := m.Get("a"); v != int64(7) {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestFactorial(t *testing.T) {
	m, err := sicp.NewFactorial()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	m.Set("n", int64(10))
	if err = m.Start(); err != nil {
		t.Fatalf("%+v", err)
	}
	if v := m.Get("val"); v != int64(3628800) {
		t.Fatalf("expected 3628800, got %v", v)
	}
	// 2(n-1) pushes, n-1 frames of 2 values
	if p, d := m.Stack().Pushes(), m.Stack().MaxDepth(); p != 18 || d != 18 {
		t.Fatalf("bad stack statistics: %d pushes, depth %d", p, d)
	}
}

func TestArith(t *testing.T) {
	ops := sicp.Arith()
	var tests = [...]struct {
		op   string
		args []sexp.Value
		res  sexp.Value
	}{
		{"+", nil, int64(0)},
		{"+", []sexp.Value{int64(1), int64(2), int64(3)}, int64(6)},
		{"+", []sexp.Value{int64(1), 0.5}, 1.5},
		{"*", []sexp.Value{int64(4), int64(5)}, int64(20)},
		{"*", []sexp.Value{2.0, int64(5)}, 10.0},
		{"-", []sexp.Value{int64(7)}, int64(-7)},
		{"-", []sexp.Value{1.5}, -1.5},
		{"-", []sexp.Value{int64(10), int64(3), int64(2)}, int64(5)},
		{"/", []sexp.Value{int64(10), int64(2)}, int64(5)},
		{"/", []sexp.Value{int64(1), int64(4)}, .25},
		{"/", []sexp.Value{3.0, int64(2)}, 1.5},
		{"rem", []sexp.Value{int64(49), int64(35)}, int64(14)},
		{"=", []sexp.Value{int64(2), 2.0}, true},
		{"=", []sexp.Value{int64(2), int64(3)}, false},
		{"<", []sexp.Value{int64(1), int64(2), int64(3)}, true},
		{"<", []sexp.Value{int64(1), int64(3), int64(2)}, false},
		{">", []sexp.Value{2.5, int64(2)}, true},
		{"<=", []sexp.Value{int64(2), int64(2)}, true},
		{">=", []sexp.Value{int64(1), int64(2)}, false},
		{"not", []sexp.Value{false}, true},
		{"not", []sexp.Value{nil}, true},
		{"not", []sexp.Value{int64(0)}, false},
	}
	for _, test := range tests {
		v, err := ops[test.op](test.args)
		if err != nil {
			t.Errorf("(%s %s): %v", test.op, sexp.DumpAll(test.args), err)
			continue
		}
		if !sexp.Equal(v, test.res) {
			t.Errorf("(%s %s): expected %v, got %v", test.op, sexp.DumpAll(test.args), test.res, v)
		}
	}
}

func TestArith_errors(t *testing.T) {
	ops := sicp.Arith()
	var tests = [...]struct {
		op    string
		args  []sexp.Value
		cause error
	}{
		{"+", []sexp.Value{int64(1), "2"}, sicp.ErrNotANumber},
		{"<", []sexp.Value{sexp.Ident("a"), int64(2)}, sicp.ErrNotANumber},
		{"rem", []sexp.Value{1.5, int64(2)}, sicp.ErrNotANumber},
		{"/", []sexp.Value{int64(1), int64(0)}, sicp.ErrDivisionByZero},
		{"/", []sexp.Value{1.0, 0.0}, sicp.ErrDivisionByZero},
		{"rem", []sexp.Value{int64(1), int64(0)}, sicp.ErrDivisionByZero},
	}
	for _, test := range tests {
		_, err := ops[test.op](test.args)
		if errors.Cause(err) != test.cause {
			t.Errorf("(%s %s): expected %v, got %v", test.op, sexp.DumpAll(test.args), test.cause, err)
		}
	}
	if _, err := ops["<"]([]sexp.Value{int64(1)}); err == nil {
		t.Error("< with one argument should fail")
	}
	if _, err := ops["-"](nil); err == nil {
		t.Error("- without arguments should fail")
	}
}

func TestArith_inMachine(t *testing.T) {
	m, err := vm.New(`((assign x (op /) (reg a) (const 2.0)) (test (op >) (reg x) (const 1)))`,
		vm.Operations(sicp.Arith()))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	m.Set("a", int64(3))
	if err = m.Start(); err != nil {
		t.Fatalf("%+v", err)
	}
	if x := m.Get("x").(float64); math.Abs(x-1.5) > 1e-12 {
		t.Fatalf("bad x %v", x)
	}
	if m.Get(vm.FlagRegister) != true {
		t.Fatal("flag should be true")
	}
}
