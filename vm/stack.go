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

package vm

import (
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

// Stack is the stack used by save and restore. It keeps track of the number
// of pushes and of the maximum depth since the last call to Initialize.
type Stack struct {
	data     []sexp.Value
	pushes   int
	maxDepth int
}

// Push pushes v on top of the stack.
func (s *Stack) Push(v sexp.Value) {
	s.data = append(s.data, v)
	s.pushes++
	if len(s.data) > s.maxDepth {
		s.maxDepth = len(s.data)
	}
}

// Pop pops the value on top of the stack and returns it.
func (s *Stack) Pop() (sexp.Value, error) {
	sp := len(s.data) - 1
	if sp < 0 {
		return nil, errors.WithStack(ErrStackUnderflow)
	}
	v := s.data[sp]
	s.data[sp] = nil
	s.data = s.data[:sp]
	return v, nil
}

// Initialize empties the stack and resets statistics.
func (s *Stack) Initialize() {
	for i := range s.data {
		s.data[i] = nil
	}
	s.data = s.data[:0]
	s.pushes = 0
	s.maxDepth = 0
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int { return len(s.data) }

// Pushes returns the number of pushes since the last Initialize.
func (s *Stack) Pushes() int { return s.pushes }

// MaxDepth returns the maximum depth reached since the last Initialize.
func (s *Stack) MaxDepth() int { return s.maxDepth }

// Statistics returns the stack statistics as a list:
//
//	(total-pushes = N maximum-depth = D)
func (s *Stack) Statistics() sexp.Value {
	eq := sexp.Ident("=")
	return []sexp.Value{
		sexp.Ident("total-pushes"), eq, int64(s.pushes),
		sexp.Ident("maximum-depth"), eq, int64(s.maxDepth),
	}
}
