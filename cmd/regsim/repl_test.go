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

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestEvalAll(t *testing.T) {
	var out bytes.Buffer
	err := evalAll(strings.NewReader(`
		(define (sq x) (* x x))
		(display "sq:")
		(sq 12)`), &out)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if s := out.String(); s != "ok\nsq:nil\n144\n" {
		t.Fatalf("bad output %q", s)
	}
}

func TestEvalAll_errors(t *testing.T) {
	for _, src := range []string{"(+ 1", "(car 1)", "x"} {
		var out bytes.Buffer
		if err := evalAll(strings.NewReader(src), &out); err == nil {
			t.Errorf("%s: expected error", src)
		}
	}
}
