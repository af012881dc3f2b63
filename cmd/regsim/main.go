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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/papamitra/python-sicp-chap5/asm"
	"github.com/papamitra/python-sicp-chap5/internal/config"
	"github.com/papamitra/python-sicp-chap5/lang/eceval"
	"github.com/papamitra/python-sicp-chap5/lang/sicp"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	debug   bool
	log     = commonlog.GetLogger("regsim")
	regs    regList
	prints  stringList
	extra   stringList
	opsName string
	trace   bool
	stats   bool
	disasm  bool
	repl    bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

// opTable returns the named operation table and the registers it needs.
func opTable(name string, w io.Writer) (vm.OpTable, []string, error) {
	switch name {
	case "", config.OpsArith:
		return sicp.Arith(), nil, nil
	case config.OpsEceval:
		return eceval.Ops(eceval.NewGlobalEnv(w), w), eceval.Registers, nil
	case config.OpsNone:
		return nil, nil, nil
	}
	return nil, nil, errors.Errorf("unknown operation table %q", name)
}

// description merges the machine description file, the built-in machine and
// the command line into a single description.
func description(cfgFile, machine string, args []string) (*config.Machine, error) {
	var (
		m   = &config.Machine{}
		err error
	)
	if cfgFile != "" {
		if m, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}
	if machine != "" {
		d, ok := sicp.Machines[machine]
		if !ok {
			return nil, errors.Errorf("unknown machine %q", machine)
		}
		m.Controller = ""
		m.Program = d.Controller
		m.Registers = append(m.Registers, d.Registers...)
	}
	if len(args) > 0 {
		m.Controller, m.Program, m.Dir = args[0], "", ""
	}
	if opsName != "" {
		m.Ops = opsName
	}
	m.Registers = append(m.Registers, extra...)
	m.Print = append(m.Print, prints...)
	m.Trace = m.Trace || trace
	return m, m.Validate()
}

func runMachine(d *config.Machine, w io.Writer) error {
	src, err := d.ControllerText()
	if err != nil {
		return err
	}
	if src == "" {
		return errors.New("no controller")
	}
	p, err := asm.AssembleString(src)
	if err != nil {
		return err
	}
	if disasm {
		return asm.Disassemble(w, p)
	}

	ops, opRegs, err := opTable(d.Ops, w)
	if err != nil {
		return err
	}
	m, err := vm.NewProgram(p,
		vm.Operations(ops),
		vm.Logger(commonlog.GetLogger("regsim.vm")),
		vm.Trace(d.Trace))
	if err != nil {
		return err
	}
	for _, r := range append(opRegs, d.Registers...) {
		// duplicates in the description are harmless
		if err = m.AllocateRegister(r); err != nil && errors.Cause(err) != vm.ErrDuplicateRegister {
			return err
		}
	}
	vals, err := d.Values()
	if err != nil {
		return err
	}
	for _, r := range d.InitOrder() {
		m.Set(r, vals[r])
	}
	for _, r := range regs {
		m.Set(r.name, r.val)
	}

	log.Infof("running %d instructions", len(p.Instructions))
	if err = m.Start(); err != nil {
		return err
	}
	log.Infof("stopped after %d steps", m.InstructionCount())

	bw := bufio.NewWriter(w)
	for _, r := range d.Print {
		fmt.Fprintf(bw, "%s = %s\n", r, sexp.Dump(m.Get(r)))
	}
	if stats {
		fmt.Fprintf(bw, "%s\n", sexp.Dump(m.Stack().Statistics()))
	}
	return errors.Wrap(bw.Flush(), "output")
}

func main() {
	var err error
	defer func() { atExit(err) }()

	var (
		cfgFile   = flag.String("config", "", "load machine description from `file` (.toml, .yaml or .yml)")
		machine   = flag.String("machine", "", "run built-in machine `name` (fib, gcd or factorial)")
		verbosity = flag.Int("v", 0, "log verbosity")
		logFile   = flag.String("log", "", "log to `file`")
	)
	flag.StringVar(&opsName, "ops", "", "operation table: arith, eceval or none")
	flag.Var(&regs, "reg", "set register before running, as `name=value` (can be specified multiple times)")
	flag.Var(&extra, "alloc", "allocate register `name` (can be specified multiple times)")
	flag.Var(&prints, "print", "print register `name` after running (can be specified multiple times)")
	flag.BoolVar(&trace, "trace", false, "log executed instructions")
	flag.BoolVar(&stats, "stats", false, "print stack statistics after running")
	flag.BoolVar(&disasm, "disasm", false, "print the assembled controller and exit")
	flag.BoolVar(&repl, "repl", false, "run the explicit-control evaluator")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbosity, path)

	if repl {
		err = runREPL(os.Stdin, os.Stdout)
		return
	}
	d, err := description(*cfgFile, *machine, flag.Args())
	if err != nil {
		return
	}
	err = runMachine(d, os.Stdout)
}
