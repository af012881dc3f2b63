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
	"github.com/pkg/errors"
)

// config holds the settings shared by Reader and Dumper.
type config struct {
	binding Binding
	marker  string
	maps    bool
	rules   []rule
}

// Option configures a Reader or a Dumper.
type Option func(*config)

// WithBinding replaces the binding table used to resolve bare words. The
// Dumper uses the same table in reverse.
func WithBinding(b Binding) Option {
	return func(c *config) { c.binding = b }
}

// WithSymbolMarker sets the prefix of quoted atoms. The default is "'".
func WithSymbolMarker(marker string) Option {
	return func(c *config) {
		if marker != "" {
			c.marker = marker
		}
	}
}

// WithoutMaps disables the association list to Map conversion. Map literals
// are then read as plain lists.
func WithoutMaps() Option {
	return func(c *config) { c.maps = false }
}

func newConfig(opts []Option) *config {
	c := &config{
		binding: DefaultBinding(),
		marker:  "'",
		maps:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rules = newRules(c.marker)
	return c
}

// Reader reads s-expressions. A Reader holds no per-read state and can be
// reused.
type Reader struct {
	cfg *config
}

// NewReader returns a new Reader configured with the given options.
func NewReader(opts ...Option) *Reader {
	return &Reader{newConfig(opts)}
}

var defaultReader = NewReader()

// Read reads all top-level expressions in src with the default settings.
func Read(src string) ([]Value, error) {
	return defaultReader.Read(src)
}

// ReadOne reads src, which must contain exactly one expression, with the
// default settings.
func ReadOne(src string) (Value, error) {
	return defaultReader.ReadOne(src)
}

// ReadOne reads src, which must contain exactly one expression.
func (r *Reader) ReadOne(src string) (Value, error) {
	vs, err := r.Read(src)
	if err != nil {
		return nil, err
	}
	if len(vs) != 1 {
		return nil, errors.Errorf("expected exactly one expression, got %d", len(vs))
	}
	return vs[0], nil
}

// Read reads all top-level expressions in src. On error, no value is
// returned and the error is an *Error.
func (r *Reader) Read(src string) ([]Value, error) {
	toks, err := lex(r.cfg, src)
	if err != nil {
		return nil, err
	}
	nodes, err := buildTree(src, toks)
	if err != nil {
		return nil, err
	}
	vs := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := r.value(src, n)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// A node is either an atom token or a list of nodes. For lists, tok is the
// opening token.
type node struct {
	tok    token
	list   []*node
	isList bool
}

// A frame is an open list or a pending quote on the nesting stack.
type frame struct {
	open byte
	n    *node
}

var closers = map[byte]byte{'(': ')', '[': ']'}

func buildTree(src string, toks []token) ([]*node, error) {
	var top []*node
	var stack []frame

	// emit appends n to the innermost frame and completes pending quotes.
	emit := func(n *node) {
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			f.n.list = append(f.n.list, n)
			if f.open != '\'' {
				return
			}
			stack = stack[:len(stack)-1]
			n = f.n
		}
		top = append(top, n)
	}

	for _, t := range toks {
		switch t.kind {
		case tokOpen:
			stack = append(stack, frame{t.text[0], &node{tok: t, isList: true}})
		case tokClose:
			if len(stack) == 0 {
				return nil, newError(src, MissingOpen, t.pos, "missing opening parenthesis")
			}
			f := stack[len(stack)-1]
			if f.open == '\'' {
				return nil, newError(src, DanglingQuote, f.n.tok.pos, "quote without expression")
			}
			if closers[f.open] != t.text[0] {
				return nil, newError(src, MissingClose, t.pos, "missing closing parenthesis for %q", f.open)
			}
			stack = stack[:len(stack)-1]
			emit(f.n)
		case tokQuote:
			q := &node{tok: t, isList: true}
			q.list = append(q.list, &node{tok: token{kind: tokIdent, text: string(Quote), val: Quote, pos: t.pos}})
			stack = append(stack, frame{'\'', q})
		default:
			emit(&node{tok: t})
		}
	}
	if len(stack) > 0 {
		f := stack[len(stack)-1]
		var err *Error
		if f.open == '\'' {
			err = newError(src, DanglingQuote, f.n.tok.pos, "quote without expression")
		} else {
			err = newError(src, MissingClose, f.n.tok.pos, "missing closing parenthesis")
		}
		err.EOF = true
		return nil, err
	}
	return top, nil
}

func isIdent(n *node, id Ident) bool {
	if n.isList {
		return false
	}
	v, ok := n.tok.val.(Ident)
	return ok && v == id
}

func isPair(n *node) bool {
	return n.isList && len(n.list) == 3 && isIdent(n.list[1], Dot)
}

// value converts a node to its semantic value.
func (r *Reader) value(src string, n *node) (Value, error) {
	if !n.isList {
		return n.tok.val, nil
	}
	l := n.list
	if len(l) == 0 {
		return []Value{}, nil
	}
	if r.cfg.maps && isIdent(l[0], MapMarker) {
		return r.mapValue(src, n)
	}
	for i, c := range l {
		if isIdent(c, Dot) && (len(l) != 3 || i != 1) {
			return nil, newError(src, IllegalDot, c.tok.pos, `illegal use of "."`)
		}
	}
	if isPair(n) {
		return r.pairValue(src, n)
	}
	seq := make([]Value, len(l))
	for i, c := range l {
		v, err := r.value(src, c)
		if err != nil {
			return nil, err
		}
		seq[i] = v
	}
	return seq, nil
}

// pairValue converts (a . b). A tail that reads as a sequence is merged into
// the result.
func (r *Reader) pairValue(src string, n *node) (Value, error) {
	car, err := r.value(src, n.list[0])
	if err != nil {
		return nil, err
	}
	cdr, err := r.value(src, n.list[2])
	if err != nil {
		return nil, err
	}
	if seq, ok := cdr.([]Value); ok && n.list[2].isList {
		return append([]Value{car}, seq...), nil
	}
	return Pair{car, cdr}, nil
}

func (r *Reader) mapValue(src string, n *node) (Value, error) {
	head := n.list[0]
	if len(n.list) != 2 {
		return nil, newError(src, MalformedMap, head.tok.pos,
			"%s: expected 1 arguments, got %d", MapMarker, len(n.list)-1)
	}
	alist := n.list[1]
	if !alist.isList {
		return nil, newError(src, MalformedMap, alist.tok.pos, "%s: arguments must be alist", MapMarker)
	}
	m := NewMap()
	for _, e := range alist.list {
		if !isPair(e) {
			return nil, newError(src, MalformedMap, e.tok.pos, "%s: arguments must be alist", MapMarker)
		}
		k, err := r.value(src, e.list[0])
		if err != nil {
			return nil, err
		}
		v, err := r.value(src, e.list[2])
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}
