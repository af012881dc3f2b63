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
	"strings"

	"golang.org/x/text/width"
)

// ErrorKind classifies reader errors.
type ErrorKind int

// Reader error kinds.
const (
	UnknownToken ErrorKind = iota + 1
	UnterminatedString
	BadEscape
	BadNumber
	MissingOpen
	MissingClose
	DanglingQuote
	IllegalDot
	MalformedMap
)

var kindNames = [...]string{
	UnknownToken:       "unknown token",
	UnterminatedString: "unterminated string",
	BadEscape:          "bad escape",
	BadNumber:          "bad number",
	MissingOpen:        "missing opening parenthesis",
	MissingClose:       "missing closing parenthesis",
	DanglingQuote:      "dangling quote",
	IllegalDot:         "illegal dot",
	MalformedMap:       "malformed map literal",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// contextLines is the number of lines shown above the offending one.
const contextLines = 3

// Error is a located reader error.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Offset  int // byte offset in the source
	Line    int // 1-based
	Col     int // 1-based, in bytes
	Context string
	// EOF is set when the input ended before the expression was complete.
	EOF bool
}

// IsIncomplete reports whether err is a reader error caused by truncated
// input, like an unclosed list or string.
func IsIncomplete(err error) bool {
	e, ok := err.(*Error)
	return ok && e.EOF
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// Format implements fmt.Formatter. The %+v verb prints the source excerpt
// before the message.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Context)
			io.WriteString(s, e.Error())
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func newError(src string, kind ErrorKind, pos int, format string, args ...interface{}) *Error {
	if pos > len(src) {
		pos = len(src)
	}
	if pos < 0 {
		pos = 0
	}
	e := &Error{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Offset: pos,
	}
	e.Line, e.Col, e.Context = excerpt(src, pos)
	return e
}

// excerpt renders the lines preceding pos, the line containing pos and a caret
// under the offending column.
func excerpt(src string, pos int) (line, col int, ctx string) {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	line = strings.Count(src[:pos], "\n") + 1
	col = pos - start + 1

	lines := strings.Split(src, "\n")
	first := line - contextLines
	if first < 1 {
		first = 1
	}
	var b strings.Builder
	for n := first; n <= line; n++ {
		fmt.Fprintf(&b, "% 5d: %s\n", n, lines[n-1])
	}
	b.WriteString("       ")
	for _, r := range src[start:pos] {
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteString("^\n")
	return line, col, b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
