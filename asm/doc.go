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

// Package asm assembles register machine controller text.
//
// A controller is a single parenthesized list whose elements are either
// labels (bare identifiers) or instructions:
//
//	(assign <reg> <value-expr>)
//	(test <op-call>)
//	(branch <label-expr>)
//	(goto <label-expr-or-reg-expr>)
//	(save <reg>)
//	(restore <reg>)
//	(perform <op-call>)
//
// where <value-expr> is either an <op-call> or a single primitive
// expression, <op-call> is (op <name>) followed by zero or more primitive
// expressions, and a primitive expression is one of:
//
//	(const <literal>)	any s-expression value, used as is
//	(reg <name>)		the current content of a register
//	(label <name>)		a jump target that can be stored in a register
//
// For example, the classic GCD machine:
//
//	(test-b
//	   (test (op =) (reg b) (const 0))
//	   (branch (label gcd-done))
//	   (assign t (op rem) (reg a) (reg b))
//	   (assign a (reg b))
//	   (assign b (reg t))
//	   (goto (label test-b))
//	 gcd-done)
//
// Labels:
//
// A label names the position of the instruction that follows it. Several
// labels may name the same position, and a label placed after the last
// instruction names the end of the program: jumping there halts the machine.
// Forward references are allowed. Defining the same label twice is an error,
// so is referencing a label that is never defined.
//
// Instructions are stored in a single slice, and labels map to indices in
// that slice. Falling through to the instruction following a label and
// jumping to that label therefore reach the very same instruction.
//
// Comments start with a semicolon and run to the end of the line.
package asm
