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
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

// Env is an environment: a frame of variable bindings and the environment it
// extends.
type Env struct {
	vars   map[sexp.Ident]sexp.Value
	parent *Env
}

// NewEnv returns an empty environment extending parent. The parent may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[sexp.Ident]sexp.Value), parent: parent}
}

func (e *Env) String() string { return "#<environment>" }

// Parent returns the environment e extends.
func (e *Env) Parent() *Env { return e.parent }

// Lookup returns the value of the given variable in the nearest frame that
// binds it.
func (e *Env) Lookup(name sexp.Ident) (sexp.Value, error) {
	for ; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, nil
		}
	}
	return nil, errors.Wrap(ErrUnbound, string(name))
}

// Set changes the value of the given variable in the nearest frame that binds
// it.
func (e *Env) Set(name sexp.Ident, v sexp.Value) error {
	for ; e != nil; e = e.parent {
		if _, ok := e.vars[name]; ok {
			e.vars[name] = v
			return nil
		}
	}
	return errors.Wrapf(ErrUnbound, "set! %s", name)
}

// Define binds name to v in the first frame of e.
func (e *Env) Define(name sexp.Ident, v sexp.Value) {
	e.vars[name] = v
}

// Extend returns a new environment extending e, with params bound to args.
// If rest is not empty, it is bound to the list of remaining arguments.
func (e *Env) Extend(params []sexp.Ident, rest sexp.Ident, args []sexp.Value) (*Env, error) {
	if len(args) < len(params) || rest == "" && len(args) > len(params) {
		return nil, errors.Wrapf(ErrArity, "expected %d arguments, got %d", len(params), len(args))
	}
	x := NewEnv(e)
	for i, p := range params {
		x.vars[p] = args[i]
	}
	if rest != "" {
		x.vars[rest] = append([]sexp.Value{}, args[len(params):]...)
	}
	return x, nil
}
