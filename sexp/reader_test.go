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

package sexp_test

import (
	"strings"
	"testing"

	"github.com/papamitra/python-sicp-chap5/sexp"
)

type V = []sexp.Value

func mapOf(kv ...sexp.Value) *sexp.Map {
	m := sexp.NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

const sample = `
  ;comment
  (あああ hoge->fuga123 (1 . (2 . 3)) "hoge\"hoge" ;comment2
   foo "aaa" #t <= 'foo
"hogehoge
foo
" (5 . (6 .()))
  )
  (dict (
    ("いいい" .
      (alist->hash-table (
        ("a-1" . "vvv")
        ("a-2" . (
          hoge foo bar
        ))
      )))
  ))
  [10 1L -45 010 0x10 -10 -0x10 3.14 10. .001 1e100 3.14e-10 0e0]
  ; comment3 ()(`

var sampleValue = V{
	V{
		sexp.Ident("あああ"), sexp.Ident("hoge->fuga123"),
		sexp.Pair{int64(1), sexp.Pair{int64(2), int64(3)}},
		"hoge\"hoge", sexp.Ident("foo"), "aaa", true, sexp.Ident("<="), sexp.Symbol("foo"),
		"hogehoge\nfoo\n", V{int64(5), int64(6)},
	},
	mapOf("いいい", mapOf(
		"a-1", "vvv",
		"a-2", V{sexp.Ident("hoge"), sexp.Ident("foo"), sexp.Ident("bar")},
	)),
	V{
		int64(10), int64(1), int64(-45), int64(8), int64(16), int64(-10), int64(-16),
		3.14, 10.0, .001, 1e100, 3.14e-10, 0.0,
	},
}

func TestRead(t *testing.T) {
	vs, err := sexp.Read(sample)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !sexp.Equal(V(vs), sampleValue) {
		t.Fatalf("expected\n%s\ngot\n%s", sexp.DumpAll(sampleValue), sexp.DumpAll(vs))
	}
}

func TestRead_atoms(t *testing.T) {
	var tests = [...]struct {
		src string
		val sexp.Value
	}{
		{"42", int64(42)},
		{"+42", int64(42)},
		{"-7", int64(-7)},
		{"0", int64(0)},
		{"0X1f", int64(31)},
		{"017", int64(15)},
		{"5l", int64(5)},
		{"1.5", 1.5},
		{"-1.5", -1.5},
		{".5", .5},
		{"2.", 2.0},
		{"1E3", 1000.0},
		{"2.5e-1", .25},
		{`"a\tbé"`, "a\tbé"},
		{`""`, ""},
		{"#f", false},
		{"false", false},
		{"true", true},
		{"nil", nil},
		{"()", V{}},
		{"[]", V{}},
		{"'sym", sexp.Symbol("sym")},
		{"fib-loop", sexp.Ident("fib-loop")},
		{"n-1", sexp.Ident("n-1")},
		{"-", sexp.Ident("-")},
		{"alist->hash-table", sexp.MapMarker},
		{"dict", sexp.MapMarker},
	}
	for _, test := range tests {
		v, err := sexp.ReadOne(test.src)
		if err != nil {
			t.Errorf("%s: %v", test.src, err)
			continue
		}
		if !sexp.Equal(v, test.val) {
			t.Errorf("%s: expected %#v, got %#v", test.src, test.val, v)
		}
	}
}

func TestRead_lists(t *testing.T) {
	var tests = [...]struct {
		src string
		val sexp.Value
	}{
		{"(1 . 2)", sexp.Pair{int64(1), int64(2)}},
		{"(1 . ())", V{int64(1)}},
		{"(1 . (2 . (3 . ())))", V{int64(1), int64(2), int64(3)}},
		{"(1 . (2 3))", V{int64(1), int64(2), int64(3)}},
		{"((a b) . c)", sexp.Pair{V{sexp.Ident("a"), sexp.Ident("b")}, sexp.Ident("c")}},
		{"(a . (dict ()))", sexp.Pair{sexp.Ident("a"), mapOf()}},
		{"'(a b)", V{sexp.Quote, V{sexp.Ident("a"), sexp.Ident("b")}}},
		{"(f ' x)", V{sexp.Ident("f"), V{sexp.Quote, sexp.Ident("x")}}},
		{"(f '())", V{sexp.Ident("f"), V{sexp.Quote, V{}}}},
		{"[a (b [c])]", V{sexp.Ident("a"), V{sexp.Ident("b"), V{sexp.Ident("c")}}}},
		{"(dict ((1 . 2) (1 . 3)))", mapOf(int64(1), int64(3))},
		{"(dict (((a) . 1)))", mapOf(V{sexp.Ident("a")}, int64(1))},
		{"(a ; comment\n b)", V{sexp.Ident("a"), sexp.Ident("b")}},
	}
	for _, test := range tests {
		v, err := sexp.ReadOne(test.src)
		if err != nil {
			t.Errorf("%s: %v", test.src, err)
			continue
		}
		if !sexp.Equal(v, test.val) {
			t.Errorf("%s: expected %s, got %s", test.src, sexp.Dump(test.val), sexp.Dump(v))
		}
	}
}

func TestRead_mapOrder(t *testing.T) {
	v, err := sexp.ReadOne(`(dict (("z" . 1) ("a" . 2) ("m" . 3)))`)
	if err != nil {
		t.Fatal(err)
	}
	keys := v.(*sexp.Map).Keys()
	if !sexp.Equal(V(keys), V{"z", "a", "m"}) {
		t.Fatalf("bad key order: %v", keys)
	}
}

func TestReader_options(t *testing.T) {
	r := sexp.NewReader(sexp.WithBinding(sexp.Binding{"T": true}), sexp.WithSymbolMarker(":"))
	v, err := r.ReadOne("(T :hoge nil 'x)")
	if err != nil {
		t.Fatal(err)
	}
	exp := V{true, sexp.Symbol("hoge"), sexp.Ident("nil"), V{sexp.Quote, sexp.Ident("x")}}
	if !sexp.Equal(v, exp) {
		t.Fatalf("expected %s, got %s", sexp.Dump(exp), sexp.Dump(v))
	}

	// with a non-quote marker, quotes nest.
	v, err = r.ReadOne("''a")
	if err != nil {
		t.Fatal(err)
	}
	exp = V{sexp.Quote, V{sexp.Quote, sexp.Ident("a")}}
	if !sexp.Equal(v, exp) {
		t.Fatalf("expected %s, got %s", sexp.Dump(exp), sexp.Dump(v))
	}

	r = sexp.NewReader(sexp.WithoutMaps())
	v, err = r.ReadOne("(dict ((1 . 2) (3 . 4)))")
	if err != nil {
		t.Fatal(err)
	}
	exp = V{sexp.MapMarker, V{sexp.Pair{int64(1), int64(2)}, sexp.Pair{int64(3), int64(4)}}}
	if !sexp.Equal(v, exp) {
		t.Fatalf("expected %s, got %s", sexp.Dump(exp), sexp.Dump(v))
	}
}

func TestRead_errors(t *testing.T) {
	var tests = [...]struct {
		src  string
		kind sexp.ErrorKind
		msg  string
	}{
		{"(hoge () () (", sexp.MissingClose, "missing closing"},
		{"(", sexp.MissingClose, "missing closing"},
		{"(a]", sexp.MissingClose, "missing closing"},
		{"(hoge ) () )", sexp.MissingOpen, "missing opening"},
		{")", sexp.MissingOpen, "missing opening"},
		{`(hoge "hoge 123)`, sexp.UnterminatedString, "unterminated"},
		{`"\q"`, sexp.BadEscape, "invalid escape"},
		{"99999999999999999999", sexp.BadNumber, "out of range"},
		{"1e999", sexp.BadNumber, "out of range"},
		{"(dict (1 2 3) (4 5 6))", sexp.MalformedMap, "expected 1"},
		{"(dict ((1 . 2) 3 4))", sexp.MalformedMap, "must be alist"},
		{"(dict ((1 2 3)))", sexp.MalformedMap, "must be alist"},
		{"(dict x)", sexp.MalformedMap, "must be alist"},
		{"(1 . 3 4 5)", sexp.IllegalDot, "illegal use of"},
		{"(. a b)", sexp.IllegalDot, "illegal use of"},
		{"(a '", sexp.DanglingQuote, "quote"},
		{"(a ')", sexp.DanglingQuote, "quote"},
	}
	for _, test := range tests {
		vs, err := sexp.Read(test.src)
		if err == nil {
			t.Errorf("%s: expected error, got %s", test.src, sexp.DumpAll(vs))
			continue
		}
		e, ok := err.(*sexp.Error)
		if !ok {
			t.Errorf("%s: expected *sexp.Error, got %T", test.src, err)
			continue
		}
		if e.Kind != test.kind {
			t.Errorf("%s: expected %v, got %v", test.src, test.kind, e.Kind)
		}
		if !strings.Contains(e.Msg, test.msg) {
			t.Errorf("%s: message %q does not contain %q", test.src, e.Msg, test.msg)
		}
		if vs != nil {
			t.Errorf("%s: partial result returned", test.src)
		}
	}
}

func TestError_context(t *testing.T) {
	src := "(a\n b\n c))"
	_, err := sexp.Read(src)
	e, ok := err.(*sexp.Error)
	if !ok {
		t.Fatalf("expected *sexp.Error, got %v", err)
	}
	if e.Offset != 9 || e.Line != 3 || e.Col != 4 {
		t.Fatalf("bad location: offset %d, line %d, col %d", e.Offset, e.Line, e.Col)
	}
	if s := e.Error(); s != "line 3, col 4: missing opening parenthesis" {
		t.Fatalf("bad message: %s", s)
	}
	exp := "    1: (a\n    2:  b\n    3:  c))\n          ^\n"
	if e.Context != exp {
		t.Fatalf("expected context:\n%s\ngot:\n%s", exp, e.Context)
	}

	// wide runes take two columns
	_, err = sexp.Read("あ )")
	e = err.(*sexp.Error)
	if e.Col != 5 {
		t.Fatalf("expected byte column 5, got %d", e.Col)
	}
	if exp := "    1: あ )\n          ^\n"; e.Context != exp {
		t.Fatalf("expected context:\n%q\ngot:\n%q", exp, e.Context)
	}
}

func TestError_contextWindow(t *testing.T) {
	src := "(1\n2\n3\n4\n5\n6"
	_, err := sexp.Read(src + "\n\"x")
	e := err.(*sexp.Error)
	if e.Kind != sexp.UnterminatedString || e.Line != 7 {
		t.Fatalf("unexpected error %v", e)
	}
	if !strings.HasPrefix(e.Context, "    4: 4\n") {
		t.Fatalf("context should start 3 lines above the error:\n%s", e.Context)
	}
}

func TestIsIncomplete(t *testing.T) {
	var tests = [...]struct {
		src        string
		incomplete bool
	}{
		{"(a (b c)", true},
		{`(display "abc`, true},
		{"(a '", true},
		{"(a ')", false},
		{"(a]", false},
		{"a)", false},
		{"(a . b c)", false},
	}
	for _, test := range tests {
		_, err := sexp.Read(test.src)
		if err == nil {
			t.Errorf("%s: expected error", test.src)
			continue
		}
		if sexp.IsIncomplete(err) != test.incomplete {
			t.Errorf("%s: expected incomplete %v, got %v", test.src, test.incomplete, err)
		}
	}
	if sexp.IsIncomplete(nil) {
		t.Error("nil error is incomplete")
	}
}
