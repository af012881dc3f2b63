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

package sexp

import (
	"math"
	"reflect"
)

// Value is any value produced by the reader or accepted by the dumper.
type Value interface{}

// Ident is an unquoted symbolic name.
type Ident string

// Symbol is a quoted atom, written with the symbol marker prefix ('foo). Unlike
// an Ident, a Symbol is never resolved against a binding table.
type Symbol string

// Pair is a dotted pair whose tail is not a sequence.
type Pair struct {
	Car Value
	Cdr Value
}

// Reserved identifiers.
const (
	MapMarker Ident = "alist->hash-table"
	Dot       Ident = "."
	Quote     Ident = "quote"
)

// Binding maps bare words to the value they read as.
type Binding map[string]Value

// DefaultBinding returns a fresh copy of the default binding table.
func DefaultBinding() Binding {
	return Binding{
		"#t":    true,
		"true":  true,
		"#f":    false,
		"false": false,
		"nil":   nil,
		"dict":  MapMarker,
	}
}

// Map is an association built from the (dict (...)) literal. Keys keep the
// order in which they were first inserted.
type Map struct {
	keys []Value
	vals []Value
	idx  map[Value]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{idx: make(map[Value]int)}
}

func (m *Map) find(k Value) int {
	if isAtom(k) {
		if i, ok := m.idx[k]; ok {
			return i
		}
		return -1
	}
	for i, key := range m.keys {
		if Equal(key, k) {
			return i
		}
	}
	return -1
}

// Set associates v with k. If k is already present, its value is replaced
// and its position is kept.
func (m *Map) Set(k, v Value) {
	if m.idx == nil {
		m.idx = make(map[Value]int)
	}
	if i := m.find(k); i >= 0 {
		m.vals[i] = v
		return
	}
	if isAtom(k) {
		m.idx[k] = len(m.keys)
	}
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Get returns the value associated with k.
func (m *Map) Get(k Value) (Value, bool) {
	if m == nil {
		return nil, false
	}
	if i := m.find(k); i >= 0 {
		return m.vals[i], true
	}
	return nil, false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	return append([]Value(nil), m.keys...)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(k, v Value) bool) {
	for i := range m.keys {
		if !fn(m.keys[i], m.vals[i]) {
			return
		}
	}
}

// isAtom reports whether v can be used as a Go map key.
func isAtom(v Value) bool {
	switch v.(type) {
	case nil, bool, int64, float64, string, Ident, Symbol:
		return true
	}
	return false
}

// Equal reports whether a and b are structurally equal. Map equality does not
// depend on key order.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Pair:
		y, ok := b.(Pair)
		return ok && Equal(x.Car, y.Car) && Equal(x.Cdr, y.Cdr)
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		eq := true
		x.Range(func(k, v Value) bool {
			w, found := y.Get(k)
			eq = found && Equal(v, w)
			return eq
		})
		return eq
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || math.IsNaN(x) && math.IsNaN(y))
	}
	return reflect.DeepEqual(a, b)
}
