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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/papamitra/python-sicp-chap5/lang/eceval"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

const (
	historyFile = ".regsim_history"
	promptMain  = ";;; EC-Eval input: "
	promptCont  = "... "
)

func newEvaluator(w io.Writer) (*eceval.Evaluator, error) {
	return eceval.New(w,
		vm.Logger(commonlog.GetLogger("regsim.eceval")),
		vm.Trace(trace))
}

func runREPL(in *os.File, out io.Writer) error {
	if !isTerminal(in) {
		return evalAll(in, out)
	}
	e, err := newEvaluator(out)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		exprs, src, err := readExprs(ln)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			printError(err)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		for _, x := range exprs {
			v, err := e.Eval(x)
			if err != nil {
				printError(err)
				break
			}
			fmt.Fprintf(out, ";;; EC-Eval value:\n%s\n", sexp.Dump(v))
		}
	}
}

// readExprs reads lines until they form complete expressions.
func readExprs(ln *liner.State) ([]sexp.Value, string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return nil, "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		exprs, err := eceval.Reader.Read(src)
		if sexp.IsIncomplete(err) {
			continue
		}
		return exprs, src, err
	}
}

// evalAll evaluates all expressions read from r and prints their values.
func evalAll(r io.Reader, w io.Writer) error {
	src, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	exprs, err := eceval.Reader.Read(string(src))
	if err != nil {
		return err
	}
	e, err := newEvaluator(w)
	if err != nil {
		return err
	}
	for _, x := range exprs {
		v, err := e.Eval(x)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintln(w, sexp.Dump(v)); err != nil {
			return errors.Wrap(err, "output")
		}
	}
	return nil
}

func printError(err error) {
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
}
