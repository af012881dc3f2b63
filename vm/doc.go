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

// Package vm implements a register machine.
//
// A Machine runs a controller assembled by package asm. It owns a set of named
// registers, a stack used by save and restore, a flag register set by test and
// a table of host operations called by (op name) expressions.
//
// Each instruction is compiled once, when the machine is built, into a closure
// that performs one step and moves the program counter. Start then simply
// calls the closure at the program counter until the program counter reaches
// the end of the program, either by falling off the last instruction or by
// jumping to a label placed after it. There is no instruction limit: a
// controller that never reaches its end runs forever.
//
// Registers are allocated on first use, so a controller may use registers
// that were never declared. Declaring the same register twice is an error.
//
// The register named "flag" always exists and holds the result of the last
// test instruction. Values other than false and nil are considered true by
// branch.
//
// Two operations are always available, unless overridden by the host:
//
//	initialize-stack	empties the stack
//	print-stack-statistics	logs and returns the stack statistics as
//				(total-pushes = N maximum-depth = D)
//
// A Machine is not safe for concurrent use. Start may be called several times
// in a row: the stack is reset on each run while register contents are kept.
package vm
