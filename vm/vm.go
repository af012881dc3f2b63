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

package vm

import (
	"github.com/papamitra/python-sicp-chap5/asm"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Machine errors. Errors returned by this package wrap one of these values or
// one of the asm.Err* values; use errors.Cause to retrieve it.
var (
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrDuplicateRegister = errors.New("duplicate register")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrBadTarget         = errors.New("bad jump target")
)

// FlagRegister is the name of the register set by test instructions.
const FlagRegister = "flag"

// Operation is a host function called by (op name) expressions. It receives
// the evaluated operands in order.
type Operation func(args []sexp.Value) (sexp.Value, error)

// OpTable maps operation names to host functions.
type OpTable map[string]Operation

type register struct {
	value sexp.Value
}

// Machine is a register machine instance.
type Machine struct {
	prog     *asm.Program
	procs    []func() error
	regs     map[string]*register
	flag     *register
	stack    Stack
	ops      OpTable
	pc       int
	insCount int64
	log      commonlog.Logger
	trace    bool
}

// Option is a Machine option.
type Option func(*Machine) error

// Registers declares the given registers. Declaring a register that already
// exists, including the flag register, fails with ErrDuplicateRegister.
func Registers(names ...string) Option {
	return func(m *Machine) error {
		for _, n := range names {
			if err := m.AllocateRegister(n); err != nil {
				return err
			}
		}
		return nil
	}
}

// Operations installs host operations. Operations with the same name as
// previously installed ones replace them.
func Operations(ops OpTable) Option {
	return func(m *Machine) error {
		for n, op := range ops {
			m.ops[n] = op
		}
		return nil
	}
}

// Logger sets the logger used for tracing and statistics. The default is the
// "regsim.vm" logger.
func Logger(log commonlog.Logger) Option {
	return func(m *Machine) error {
		m.log = log
		return nil
	}
}

// Trace enables or disables instruction tracing. Traced instructions are
// logged at debug level.
func Trace(enable bool) Option {
	return func(m *Machine) error {
		m.trace = enable
		return nil
	}
}

// New assembles the given controller text and returns a new Machine running
// it.
func New(controller string, opts ...Option) (*Machine, error) {
	p, err := asm.AssembleString(controller)
	if err != nil {
		return nil, err
	}
	return NewProgram(p, opts...)
}

// NewProgram returns a new Machine running the given program. Options are
// applied before the program is compiled, so that any operation used by the
// program must be installed by the Operations option.
func NewProgram(p *asm.Program, opts ...Option) (*Machine, error) {
	m := &Machine{
		prog: p,
		regs: make(map[string]*register),
		log:  commonlog.GetLogger("regsim.vm"),
	}
	m.flag = m.register(FlagRegister)
	m.ops = OpTable{
		"initialize-stack":       m.initializeStack,
		"print-stack-statistics": m.printStackStatistics,
	}
	if err := m.SetOptions(opts...); err != nil {
		return nil, err
	}
	if err := m.compile(); err != nil {
		return nil, err
	}
	return m, nil
}

// SetOptions sets the provided options. Operations installed once the machine
// is built are not seen by the program.
func (m *Machine) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return err
		}
	}
	return nil
}

// register returns the named register, allocating it if necessary.
func (m *Machine) register(name string) *register {
	r := m.regs[name]
	if r == nil {
		r = new(register)
		m.regs[name] = r
	}
	return r
}

// AllocateRegister declares a new register.
func (m *Machine) AllocateRegister(name string) error {
	if _, ok := m.regs[name]; ok {
		return errors.Wrap(ErrDuplicateRegister, name)
	}
	m.regs[name] = new(register)
	return nil
}

// Get returns the content of the named register. Unknown registers are
// allocated and hold nil.
func (m *Machine) Get(name string) sexp.Value {
	return m.register(name).value
}

// Set sets the content of the named register, allocating it if necessary.
func (m *Machine) Set(name string, v sexp.Value) {
	m.register(name).value = v
}

// Program returns the program run by m.
func (m *Machine) Program() *asm.Program {
	return m.prog
}

// Stack returns the machine's stack.
func (m *Machine) Stack() *Stack {
	return &m.stack
}

// PC returns the index of the next instruction to execute.
func (m *Machine) PC() int {
	return m.pc
}

// InstructionCount returns the number of instructions executed by the last
// run.
func (m *Machine) InstructionCount() int64 {
	return m.insCount
}

func (m *Machine) initializeStack([]sexp.Value) (sexp.Value, error) {
	m.stack.Initialize()
	return nil, nil
}

func (m *Machine) printStackStatistics([]sexp.Value) (sexp.Value, error) {
	s := m.stack.Statistics()
	m.log.Infof("%s", sexp.Dump(s))
	return s, nil
}

// Truthy reports whether v counts as true for branch. Only false and nil are
// false.
func Truthy(v sexp.Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}
