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

package eceval

import (
	"io"

	"github.com/papamitra/python-sicp-chap5/internal/ewriter"
	"github.com/papamitra/python-sicp-chap5/lang/sicp"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
)

func car(a sexp.Value) (sexp.Value, error) {
	switch a := a.(type) {
	case []sexp.Value:
		if len(a) > 0 {
			return a[0], nil
		}
	case sexp.Pair:
		return a.Car, nil
	}
	return nil, errors.Errorf("car: not a pair: %s", sexp.Dump(a))
}

func cdr(a sexp.Value) (sexp.Value, error) {
	switch a := a.(type) {
	case []sexp.Value:
		if len(a) > 0 {
			return a[1:], nil
		}
	case sexp.Pair:
		return a.Cdr, nil
	}
	return nil, errors.Errorf("cdr: not a pair: %s", sexp.Dump(a))
}

func cons(args []sexp.Value) (sexp.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrapf(ErrArity, "cons: expected 2 arguments, got %d", len(args))
	}
	if l, ok := args[1].([]sexp.Value); ok {
		return append([]sexp.Value{args[0]}, l...), nil
	}
	return sexp.Pair{Car: args[0], Cdr: args[1]}, nil
}

func isNull(a sexp.Value) bool {
	l, ok := a.([]sexp.Value)
	return a == nil || ok && len(l) == 0
}

func isPair(a sexp.Value) bool {
	switch a := a.(type) {
	case []sexp.Value:
		return len(a) > 0
	case sexp.Pair:
		return true
	}
	return false
}

func binary(name string, fn func(a, b sexp.Value) sexp.Value) vm.Operation {
	return func(args []sexp.Value) (sexp.Value, error) {
		if len(args) != 2 {
			return nil, errors.Wrapf(ErrArity, "%s: expected 2 arguments, got %d", name, len(args))
		}
		return fn(args[0], args[1]), nil
	}
}

// Primitives returns the primitive procedures of the global environment.
// display and newline write to w.
func Primitives(w io.Writer) map[string]vm.Operation {
	ew := ewriter.New(w)
	prims := map[string]vm.Operation{
		"car":     unary("car", car),
		"cdr":     unary("cdr", cdr),
		"cons":    cons,
		"list":    func(args []sexp.Value) (sexp.Value, error) { return append([]sexp.Value{}, args...), nil },
		"null?":   predicate("null?", isNull),
		"pair?":   predicate("pair?", isPair),
		"number?": predicate("number?", isNumber),
		"symbol?": predicate("symbol?", func(a sexp.Value) bool {
			_, ok := a.(sexp.Ident)
			return ok
		}),
		"eq?":    binary("eq?", func(a, b sexp.Value) sexp.Value { return sexp.Equal(a, b) }),
		"equal?": binary("equal?", func(a, b sexp.Value) sexp.Value { return sexp.Equal(a, b) }),
		"display": unary("display", func(a sexp.Value) (sexp.Value, error) {
			if s, ok := a.(string); ok {
				ew.WriteString(s)
			} else {
				ew.WriteString(sexp.Dump(a))
			}
			return nil, errors.Wrap(ew.Err, "display")
		}),
		"newline": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 0 {
				return nil, errors.Wrapf(ErrArity, "newline: expected 0 arguments, got %d", len(args))
			}
			ew.WriteByte('\n')
			return nil, errors.Wrap(ew.Err, "newline")
		},
	}
	for n, op := range sicp.Arith() {
		prims[n] = op
	}
	return prims
}

func isNumber(a sexp.Value) bool {
	switch a.(type) {
	case int64, float64, int:
		return true
	}
	return false
}

// NewGlobalEnv returns a new global environment holding the primitive
// procedures and the true and false variables.
func NewGlobalEnv(w io.Writer) *Env {
	e := NewEnv(nil)
	for n, fn := range Primitives(w) {
		e.Define(sexp.Ident(n), &Primitive{Name: n, Fn: fn})
	}
	e.Define("true", true)
	e.Define("false", false)
	return e
}
