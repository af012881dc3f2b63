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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/papamitra/python-sicp-chap5/internal/ewriter"
)

// Dumper writes values in the syntax understood by a Reader configured with the
// same options.
type Dumper struct {
	names  map[Value]string
	marker string
}

// NewDumper returns a new Dumper configured with the given options.
func NewDumper(opts ...Option) *Dumper {
	c := newConfig(opts)
	d := &Dumper{
		names:  make(map[Value]string),
		marker: c.marker,
	}
	// when several words bind the same value, the greatest one wins so that
	// the output does not depend on map iteration order.
	words := make([]string, 0, len(c.binding))
	for w := range c.binding {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		if v := c.binding[w]; isAtom(v) {
			d.names[v] = w
		}
	}
	return d
}

var defaultDumper = NewDumper()

// Dump returns the textual representation of v with the default settings.
func Dump(v Value) string {
	return defaultDumper.Dump(v)
}

// DumpAll returns the textual representation of a sequence of top-level
// expressions, separated by spaces.
func DumpAll(vs []Value) string {
	var b strings.Builder
	w := ewriter.New(&b)
	for i, v := range vs {
		if i > 0 {
			w.WriteByte(' ')
		}
		defaultDumper.write(w, v)
	}
	return b.String()
}

// Dump returns the textual representation of v.
func (d *Dumper) Dump(v Value) string {
	var b strings.Builder
	d.Encode(&b, v)
	return b.String()
}

// Encode writes the textual representation of v to w.
func (d *Dumper) Encode(w io.Writer, v Value) error {
	ew := ewriter.New(w)
	d.write(ew, v)
	return ew.Err
}

func (d *Dumper) write(w *ewriter.Writer, v Value) {
	switch x := v.(type) {
	case []Value:
		w.WriteByte('(')
		for i, e := range x {
			if i > 0 {
				w.WriteByte(' ')
			}
			d.write(w, e)
		}
		w.WriteByte(')')
		return
	case Pair:
		w.WriteByte('(')
		d.write(w, x.Car)
		w.WriteString(" . ")
		d.write(w, x.Cdr)
		w.WriteByte(')')
		return
	case *Map:
		w.WriteByte('(')
		d.write(w, MapMarker)
		w.WriteString(" (")
		i := 0
		x.Range(func(k, v Value) bool {
			if i > 0 {
				w.WriteByte(' ')
			}
			d.write(w, Pair{k, v})
			i++
			return true
		})
		w.WriteString("))")
		return
	}

	if isAtom(v) {
		if name, ok := d.names[v]; ok {
			w.WriteString(name)
			return
		}
	}
	switch x := v.(type) {
	case nil:
		w.WriteString("nil")
	case bool:
		w.WriteString(strconv.FormatBool(x))
	case Ident:
		w.WriteString(string(x))
	case Symbol:
		w.WriteString(d.marker)
		w.WriteString(string(x))
	case string:
		w.WriteString(strconv.Quote(x))
	case int64:
		w.WriteString(strconv.FormatInt(x, 10))
	case int:
		w.WriteString(strconv.Itoa(x))
	case float64:
		w.WriteString(formatFloat(x))
	case fmt.Stringer:
		w.WriteString(x.String())
	default:
		w.Printf("#<%T %v>", v, v)
	}
}

// formatFloat formats f so that it reads back as a float64.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
