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

// Package sicp provides the operations and classic example machines of
// chapter 5 of Structure and Interpretation of Computer Programs.
package sicp

import (
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
)

// ErrNotANumber is returned by arithmetic operations given non numeric
// operands.
var ErrNotANumber = errors.New("not a number")

// ErrDivisionByZero is returned by / and rem.
var ErrDivisionByZero = errors.New("division by zero")

// number is an int64 or a float64.
type number struct {
	i     int64
	f     float64
	float bool
}

func toNumber(v sexp.Value) (number, error) {
	switch v := v.(type) {
	case int64:
		return number{i: v}, nil
	case int:
		return number{i: int64(v)}, nil
	case float64:
		return number{f: v, float: true}, nil
	}
	return number{}, errors.Wrap(ErrNotANumber, sexp.Dump(v))
}

func (n number) float64() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

func (n number) value() sexp.Value {
	if n.float {
		return n.f
	}
	return n.i
}

func numbers(args []sexp.Value) ([]number, error) {
	ns := make([]number, len(args))
	for i, a := range args {
		n, err := toNumber(a)
		if err != nil {
			return nil, err
		}
		ns[i] = n
	}
	return ns, nil
}

// fold returns an operation that combines its operands from left to right,
// starting with unit. Integer operands stay integers until a float is met.
func fold(unit int64, fi func(a, b int64) int64, ff func(a, b float64) float64) vm.Operation {
	return func(args []sexp.Value) (sexp.Value, error) {
		ns, err := numbers(args)
		if err != nil {
			return nil, err
		}
		acc := number{i: unit}
		for _, n := range ns {
			if acc.float || n.float {
				acc = number{f: ff(acc.float64(), n.float64()), float: true}
			} else {
				acc.i = fi(acc.i, n.i)
			}
		}
		return acc.value(), nil
	}
}

func sub(args []sexp.Value) (sexp.Value, error) {
	ns, err := numbers(args)
	if err != nil {
		return nil, err
	}
	switch len(ns) {
	case 0:
		return nil, errors.New("-: expected at least 1 argument")
	case 1:
		if ns[0].float {
			return -ns[0].f, nil
		}
		return -ns[0].i, nil
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		if acc.float || n.float {
			acc = number{f: acc.float64() - n.float64(), float: true}
		} else {
			acc.i -= n.i
		}
	}
	return acc.value(), nil
}

// div returns an integer when the division is exact.
func div(args []sexp.Value) (sexp.Value, error) {
	ns, err := numbers(args)
	if err != nil {
		return nil, err
	}
	if len(ns) != 2 {
		return nil, errors.Errorf("/: expected 2 arguments, got %d", len(ns))
	}
	a, b := ns[0], ns[1]
	if !a.float && !b.float {
		if b.i == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
		if a.i%b.i == 0 {
			return a.i / b.i, nil
		}
	}
	if b.float64() == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}
	return a.float64() / b.float64(), nil
}

func rem(args []sexp.Value) (sexp.Value, error) {
	if len(args) != 2 {
		return nil, errors.Errorf("rem: expected 2 arguments, got %d", len(args))
	}
	a, ok := args[0].(int64)
	b, ok2 := args[1].(int64)
	if !ok || !ok2 {
		return nil, errors.Wrapf(ErrNotANumber, "rem: integers expected, got %s", sexp.DumpAll(args))
	}
	if b == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}
	return a % b, nil
}

// compare returns an operation that is true when cmp holds for every pair of
// adjacent operands.
func compare(name string, ci func(a, b int64) bool, cf func(a, b float64) bool) vm.Operation {
	return func(args []sexp.Value) (sexp.Value, error) {
		if len(args) < 2 {
			return nil, errors.Errorf("%s: expected at least 2 arguments, got %d", name, len(args))
		}
		ns, err := numbers(args)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(ns); i++ {
			a, b := ns[i-1], ns[i]
			var ok bool
			if a.float || b.float {
				ok = cf(a.float64(), b.float64())
			} else {
				ok = ci(a.i, b.i)
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

func not(args []sexp.Value) (sexp.Value, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("not: expected 1 argument, got %d", len(args))
	}
	return !vm.Truthy(args[0]), nil
}

// Arith returns a new table of arithmetic operations:
//
//	+ - * /		integer or float arithmetic, / is exact on integers when possible
//	rem		integer remainder
//	= < > <= >=	numeric comparisons
//	not		logical negation
func Arith() vm.OpTable {
	return vm.OpTable{
		"+": fold(0,
			func(a, b int64) int64 { return a + b },
			func(a, b float64) float64 { return a + b }),
		"*": fold(1,
			func(a, b int64) int64 { return a * b },
			func(a, b float64) float64 { return a * b }),
		"-":   sub,
		"/":   div,
		"rem": rem,
		"=": compare("=",
			func(a, b int64) bool { return a == b },
			func(a, b float64) bool { return a == b }),
		"<": compare("<",
			func(a, b int64) bool { return a < b },
			func(a, b float64) bool { return a < b }),
		">": compare(">",
			func(a, b int64) bool { return a > b },
			func(a, b float64) bool { return a > b }),
		"<=": compare("<=",
			func(a, b int64) bool { return a <= b },
			func(a, b float64) bool { return a <= b }),
		">=": compare(">=",
			func(a, b int64) bool { return a >= b },
			func(a, b float64) bool { return a >= b }),
		"not": not,
	}
}
