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

// Package sexp reads and writes symbolic expressions.
//
// The reader turns text into values of the following Go types:
//
//	s-expression		Go value
//	------------		--------
//	42 -7 0x2a 052 42l	int64
//	3.14 .5 10. 1e-3	float64
//	"text"			string
//	true false #t #f	bool (through the default binding table)
//	nil			nil (through the default binding table)
//	()			[]Value{} (empty sequence)
//	(a b c)			[]Value
//	(a . b)			Pair
//	(dict ((k . v) ...))	*Map
//	foo			Ident
//	'foo			Symbol
//	'(a b)			[]Value{Ident("quote"), []Value{Ident("a"), Ident("b")}}
//
// Comments start with a semicolon and run to the end of the line. Round
// parentheses and square brackets are both accepted, but an opening bracket
// must be closed with the same style.
//
// Dotted pairs whose tail is itself a sequence are merged into a single
// sequence, so that (1 . (2 . (3 . ()))) reads as (1 2 3), while (1 . 2) and
// (1 . (2 . 3)) stay pairs.
//
// Bare words are looked up in a binding table before becoming identifiers. The
// default table binds true, #t, false, #f, nil and dict. The last one maps to
// the reserved identifier alist->hash-table which, at the head of a list,
// converts an association list into a Map.
//
// The Dumper performs the reverse operation: reading the output of Dump yields
// a value equal to the original one.
//
// Errors returned by the reader are *Error values. They carry the byte offset
// of the problem in the source and a rendered excerpt of the surrounding lines.
package sexp
