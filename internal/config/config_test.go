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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/papamitra/python-sicp-chap5/internal/config"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

const gcdController = `(
 test-b
   (test (op =) (reg b) (const 0))
   (branch (label gcd-done))
   (assign t (op rem) (reg a) (reg b))
   (assign a (reg b))
   (assign b (reg t))
   (goto (label test-b))
 gcd-done)
`

const gcdTOML = `
controller = "gcd.scm"
registers = ["a", "b", "t"]
ops = "arith"
print = ["a"]
trace = true

[init]
a = "206"
b = "40"
`

const gcdYAML = `
controller: gcd.scm
registers: [a, b, t]
ops: arith
print: [a]
trace: true
init:
  a: "206"
  b: "40"
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for n, data := range files {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func checkGCD(t *testing.T, m *config.Machine) {
	t.Helper()
	if m.Ops != config.OpsArith || !m.Trace {
		t.Errorf("bad machine settings: %+v", m)
	}
	if len(m.Registers) != 3 || m.Registers[2] != "t" {
		t.Errorf("bad registers: %v", m.Registers)
	}
	if len(m.Print) != 1 || m.Print[0] != "a" {
		t.Errorf("bad print list: %v", m.Print)
	}
	vs, err := m.Values()
	if err != nil {
		t.Fatal(err)
	}
	if vs["a"] != int64(206) || vs["b"] != int64(40) {
		t.Errorf("bad initial values: %v", vs)
	}
	if o := m.InitOrder(); len(o) != 2 || o[0] != "a" || o[1] != "b" {
		t.Errorf("bad init order: %v", o)
	}
	src, err := m.ControllerText()
	if err != nil {
		t.Fatal(err)
	}
	if src != gcdController {
		t.Errorf("bad controller text: %q", src)
	}
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"gcd.scm":  gcdController,
		"gcd.toml": gcdTOML,
		"gcd.yaml": gcdYAML,
		"gcd.yml":  gcdYAML,
	})
	for _, n := range []string{"gcd.toml", "gcd.yaml", "gcd.yml"} {
		m, err := config.Load(filepath.Join(dir, n))
		if err != nil {
			t.Fatalf("%s: %+v", n, err)
		}
		if m.Dir != dir {
			t.Errorf("%s: bad directory %s", n, m.Dir)
		}
		checkGCD(t, m)
	}
}

func TestParse_program(t *testing.T) {
	m, err := config.ParseYAML([]byte(`
program: |
  ((assign x (const (1 "two" 3.0))))
registers: [x]
print: [x]
`))
	if err != nil {
		t.Fatal(err)
	}
	src, err := m.ControllerText()
	if err != nil {
		t.Fatal(err)
	}
	v, err := sexp.ReadOne(src)
	if err != nil {
		t.Fatal(err)
	}
	if s := sexp.Dump(v); s != `((assign x (const (1 "two" 3.0))))` {
		t.Fatalf("bad program %s", s)
	}
}

func TestLoad_errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"m.json":      "{}",
		"ops.toml":    `ops = "lisp"`,
		"both.toml":   "controller = \"a.scm\"\nprogram = \"()\"",
		"init.yaml":   "init:\n  a: \"(1 2\"",
		"key.toml":    `registerz = ["a"]`,
		"key.yaml":    "registerz: [a]",
		"syntax.toml": "registers = [",
	})
	var tests = [...]struct {
		name  string
		cause error
	}{
		{"m.json", config.ErrFormat},
		{"ops.toml", config.ErrInvalid},
		{"both.toml", config.ErrInvalid},
		{"init.yaml", config.ErrInvalid},
		{"key.toml", config.ErrInvalid},
		{"key.yaml", nil},
		{"syntax.toml", nil},
		{"missing.toml", nil},
	}
	for _, test := range tests {
		_, err := config.Load(filepath.Join(dir, test.name))
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if test.cause != nil && errors.Cause(err) != test.cause {
			t.Errorf("%s: expected %v, got %v", test.name, test.cause, err)
		}
	}
}

func TestControllerText_missing(t *testing.T) {
	m := &config.Machine{Controller: "nope.scm", Dir: t.TempDir()}
	if _, err := m.ControllerText(); err == nil {
		t.Fatal("expected error")
	}
}
