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
	"strings"

	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
)

// Primitive is a procedure implemented by the host.
type Primitive struct {
	Name string
	Fn   vm.Operation
}

func (p *Primitive) String() string {
	return "#<primitive " + p.Name + ">"
}

// Compound is a procedure built by lambda.
type Compound struct {
	Params []sexp.Ident
	Rest   sexp.Ident // variadic parameter, if any
	Body   []sexp.Value
	Env    *Env
}

func (p *Compound) String() string {
	var b strings.Builder
	b.WriteString("#<compound-procedure ")
	if p.Rest != "" && len(p.Params) == 0 {
		b.WriteString(string(p.Rest))
	} else {
		b.WriteByte('(')
		for i, n := range p.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(string(n))
		}
		if p.Rest != "" {
			b.WriteString(" . ")
			b.WriteString(string(p.Rest))
		}
		b.WriteByte(')')
	}
	b.WriteByte('>')
	return b.String()
}
