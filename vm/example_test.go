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

package vm_test

import (
	"fmt"

	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
)

// A machine computing the factorial of n with a loop.
func ExampleMachine_Start() {
	ops := vm.OpTable{
		">": func(args []sexp.Value) (sexp.Value, error) {
			return args[0].(int64) > args[1].(int64), nil
		},
		"*": func(args []sexp.Value) (sexp.Value, error) {
			return args[0].(int64) * args[1].(int64), nil
		},
		"+": func(args []sexp.Value) (sexp.Value, error) {
			return args[0].(int64) + args[1].(int64), nil
		},
	}
	m, err := vm.New(`(
		(assign product (const 1))
		(assign counter (const 1))
	 test-counter
		(test (op >) (reg counter) (reg n))
		(branch (label fact-done))
		(assign product (op *) (reg counter) (reg product))
		(assign counter (op +) (reg counter) (const 1))
		(goto (label test-counter))
	 fact-done)`,
		vm.Registers("n", "product", "counter"),
		vm.Operations(ops))
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, n := range []int64{5, 10} {
		m.Set("n", n)
		if err = m.Start(); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(n, m.Get("product"), m.InstructionCount())
	}

	// Output:
	// 5 120 29
	// 10 3628800 54
}
