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
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokString tokenKind = iota
	tokOpen
	tokClose
	tokNumber
	tokSymbol
	tokQuote
	tokIdent
)

// A token is a lexical element. val holds the decoded value of atoms.
type token struct {
	kind tokenKind
	text string
	val  Value
	pos  int
}

type lexer struct {
	src    string
	pos    int
	cfg    *config
	tokens []token
}

// A rule matches at the current position. Rules are tried in order and the
// first match wins, regardless of match length.
type rule struct {
	re     *regexp.Regexp
	action func(l *lexer, s string) error
}

// wordBody is what a bare word is made of: anything but brackets, white space
// and double quotes.
const wordBody = `[^()\[\]\s"]+`

func anchored(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)`)
}

var (
	reSpace      = anchored(`\s+`)
	reComment    = anchored(`;[^\n]*`)
	reString     = anchored(`(?s)"(?:[^"\\]|\\.)*"`)
	reOpen       = anchored(`[(\[]`)
	reClose      = anchored(`[)\]]`)
	reFloat      = anchored(`(?i)[+-]?(?:(?:\d+|\d*\.\d+|\d+\.)e[+-]?\d+|\d*\.\d+|\d+\.)`)
	reInt        = anchored(`(?i)[+-]?(?:0x[0-9a-f]+|0[0-7]+|[1-9]\d*|0)l?`)
	reQuote      = anchored(`'`)
	reIdent      = anchored(wordBody)
	reUntermStr  = anchored(`(?s)".*`)
	reUnknownTok = anchored(`(?s).+`)
)

func newRules(marker string) []rule {
	return []rule{
		{reSpace, (*lexer).skip},
		{reComment, (*lexer).skip},
		{reString, (*lexer).str},
		{reOpen, (*lexer).open},
		{reClose, (*lexer).close},
		{reFloat, (*lexer).float},
		{reInt, (*lexer).integer},
		{anchored(regexp.QuoteMeta(marker) + wordBody), (*lexer).symbol},
		{reQuote, (*lexer).quote},
		{reIdent, (*lexer).ident},
		{reUntermStr, (*lexer).untermString},
		{reUnknownTok, (*lexer).unknown},
	}
}

// lex splits src into tokens.
func lex(cfg *config, src string) ([]token, error) {
	l := &lexer{src: src, cfg: cfg}
	for l.pos < len(src) {
		rest := src[l.pos:]
		var s string
		var r *rule
		for i := range cfg.rules {
			if loc := cfg.rules[i].re.FindStringIndex(rest); loc != nil && loc[1] > 0 {
				s, r = rest[:loc[1]], &cfg.rules[i]
				break
			}
		}
		if r == nil {
			return nil, l.errorf(UnknownToken, "unknown token: %s", firstWord(rest))
		}
		if err := r.action(l, s); err != nil {
			return nil, err
		}
		l.pos += len(s)
	}
	return l.tokens, nil
}

func (l *lexer) errorf(kind ErrorKind, format string, args ...interface{}) error {
	return newError(l.src, kind, l.pos, format, args...)
}

func (l *lexer) emit(kind tokenKind, s string, v Value) {
	l.tokens = append(l.tokens, token{kind: kind, text: s, val: v, pos: l.pos})
}

func (l *lexer) skip(string) error { return nil }

func (l *lexer) str(s string) error {
	body := s[1 : len(s)-1]
	buf := make([]byte, 0, len(body))
	for len(body) > 0 {
		c, multibyte, tail, err := strconv.UnquoteChar(body, '"')
		if err != nil {
			return newError(l.src, BadEscape, l.pos+len(s)-1-len(body),
				"invalid escape sequence in string literal: %s", firstWord(body))
		}
		if c < utf8.RuneSelf || !multibyte {
			buf = append(buf, byte(c))
		} else {
			buf = utf8.AppendRune(buf, c)
		}
		body = tail
	}
	l.emit(tokString, s, string(buf))
	return nil
}

func (l *lexer) open(s string) error {
	l.emit(tokOpen, s, nil)
	return nil
}

func (l *lexer) close(s string) error {
	l.emit(tokClose, s, nil)
	return nil
}

func (l *lexer) float(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return l.errorf(BadNumber, "floating point literal out of range: %s", s)
	}
	l.emit(tokNumber, s, f)
	return nil
}

func (l *lexer) integer(s string) error {
	n, err := strconv.ParseInt(strings.TrimRight(s, "lL"), 0, 64)
	if err != nil {
		return l.errorf(BadNumber, "integer literal out of range: %s", s)
	}
	l.emit(tokNumber, s, n)
	return nil
}

func (l *lexer) symbol(s string) error {
	l.emit(tokSymbol, s, Symbol(s[len(l.cfg.marker):]))
	return nil
}

func (l *lexer) quote(s string) error {
	l.emit(tokQuote, s, Quote)
	return nil
}

func (l *lexer) ident(s string) error {
	if v, ok := l.cfg.binding[s]; ok {
		l.emit(tokIdent, s, v)
		return nil
	}
	l.emit(tokIdent, s, Ident(s))
	return nil
}

func (l *lexer) untermString(string) error {
	err := newError(l.src, UnterminatedString, l.pos, "unterminated string literal")
	err.EOF = true
	return err
}

func (l *lexer) unknown(s string) error {
	return l.errorf(UnknownToken, "unknown token: %s", firstWord(s))
}

// firstWord returns s up to the first white space.
func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
