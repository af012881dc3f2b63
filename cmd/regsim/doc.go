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

// The regsim command runs register machines and the explicit-control
// evaluator built on top of package github.com/papamitra/python-sicp-chap5/vm.
//
// Usage:
//
//	regsim [flags] [controller-file]
//
// The controller is read from the named file, from the machine description
// given with -config, or is one of the built-in example machines selected
// with -machine (fib, gcd or factorial). Registers are initialized with -reg
// and printed with -print once the machine has stopped:
//
//	regsim -machine gcd -reg a=206 -reg b=40 -print a
//	a = 2
//
// Register values are s-expression literals:
//
//	regsim -ops none -reg 'x=(1 2 3)' -print x prog.scm
//
// The -ops flag selects the operation table available to the controller:
// "arith" (the default) for arithmetic and comparison, "eceval" for the
// evaluator operations or "none".
//
// With -repl, regsim starts a read-eval-print loop running the explicit-control
// evaluator. When standard input is a terminal, lines are edited with history
// and incomplete expressions continue on the next line. Otherwise, all
// expressions are read from standard input and the value of each is printed.
//
//	$ echo "(define (sq x) (* x x)) (sq 12)" | regsim -repl
//	ok
//	144
//
// Other flags:
//
//	-disasm   print the assembled controller and exit
//	-stats    print stack statistics after the run
//	-trace    log executed instructions (needs -v 2 or more)
//	-v n      log verbosity
//	-log file log to file instead of stderr
//	-debug    print errors with stack traces
package main
