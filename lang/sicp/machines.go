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

package sicp

import (
	"github.com/papamitra/python-sicp-chap5/vm"
)

// FibController computes Fibonacci(n) in register val, recursively, using
// the stack to save n, val and the continue register.
const FibController = `(
   (assign continue (label fib-done))
 fib-loop
   (test (op <) (reg n) (const 2))
   (branch (label immediate-answer))
   ;; set up to compute Fib(n-1)
   (save continue)
   (assign continue (label afterfib-n-1))
   (save n)
   (assign n (op -) (reg n) (const 1))
   (goto (label fib-loop))
 afterfib-n-1
   (restore n)
   (restore continue)
   ;; set up to compute Fib(n-2)
   (assign n (op -) (reg n) (const 2))
   (save continue)
   (assign continue (label afterfib-n-2))
   (save val)
   (goto (label fib-loop))
 afterfib-n-2
   (assign n (reg val))
   (restore val)
   (restore continue)
   (assign val (op +) (reg val) (reg n))
   (goto (reg continue))
 immediate-answer
   (assign val (reg n))
   (goto (reg continue))
 fib-done)`

// GCDController computes the greatest common divisor of registers a and b in
// register a.
const GCDController = `(
 test-b
   (test (op =) (reg b) (const 0))
   (branch (label gcd-done))
   (assign t (op rem) (reg a) (reg b))
   (assign a (reg b))
   (assign b (reg t))
   (goto (label test-b))
 gcd-done)`

// FactorialController computes n! in register val, recursively.
const FactorialController = `(
   (assign continue (label fact-done))
 fact-loop
   (test (op =) (reg n) (const 1))
   (branch (label base-case))
   (save continue)
   (save n)
   (assign n (op -) (reg n) (const 1))
   (assign continue (label after-fact))
   (goto (label fact-loop))
 after-fact
   (restore n)
   (restore continue)
   (assign val (op *) (reg n) (reg val))
   (goto (reg continue))
 base-case
   (assign val (const 1))
   (goto (reg continue))
 fact-done)`

// Machines maps example names to their controller and registers.
var Machines = map[string]struct {
	Controller string
	Registers  []string
}{
	"fib":       {FibController, []string{"continue", "n", "val"}},
	"gcd":       {GCDController, []string{"a", "b", "t"}},
	"factorial": {FactorialController, []string{"continue", "n", "val"}},
}

func newMachine(name string, opts []vm.Option) (*vm.Machine, error) {
	d := Machines[name]
	return vm.New(d.Controller, append([]vm.Option{
		vm.Registers(d.Registers...),
		vm.Operations(Arith()),
	}, opts...)...)
}

// NewFib returns a machine running FibController. Set register n, start the
// machine and read the result from register val.
func NewFib(opts ...vm.Option) (*vm.Machine, error) {
	return newMachine("fib", opts)
}

// NewGCD returns a machine running GCDController. Set registers a and b, start
// the machine and read the result from register a.
func NewGCD(opts ...vm.Option) (*vm.Machine, error) {
	return newMachine("gcd", opts)
}

// NewFactorial returns a machine running FactorialController.
func NewFactorial(opts ...vm.Option) (*vm.Machine, error) {
	return newMachine("factorial", opts)
}
