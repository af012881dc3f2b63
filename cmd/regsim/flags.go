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
	"strings"

	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
)

type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(s string) error { *l = append(*l, s); return nil }
func (l *stringList) Get() interface{}   { return *l }

type regValue struct {
	name string
	val  sexp.Value
}

// regList collects name=literal register assignments.
type regList []regValue

func (l *regList) String() string {
	var b strings.Builder
	for i, r := range *l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.name)
		b.WriteByte('=')
		b.WriteString(sexp.Dump(r.val))
	}
	return b.String()
}

func (l *regList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return errors.Errorf("expected name=value, got %q", s)
	}
	v, err := sexp.ReadOne(s[i+1:])
	if err != nil {
		return errors.Wrapf(err, "register %s", s[:i])
	}
	*l = append(*l, regValue{s[:i], v})
	return nil
}

func (l *regList) Get() interface{} { return *l }
