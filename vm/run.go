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
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Start runs the program from its first instruction until the program counter
// reaches the end of the program. The stack is emptied beforehand, registers
// keep their contents.
//
// If an instruction fails, Start returns the error wrapped with the faulting
// instruction and PC points to that instruction.
func (m *Machine) Start() (err error) {
	m.stack.Initialize()
	m.pc = 0
	m.insCount = 0
	trace := m.trace && m.log.AllowLevel(commonlog.Debug)

	defer func() {
		if e := recover(); e != nil {
			perr, ok := e.(error)
			if !ok {
				perr = errors.Errorf("%v", e)
			}
			err = m.fault(perr)
		}
	}()

	for m.pc < len(m.procs) {
		if trace {
			m.log.Debugf("%5d  %s", m.pc, &m.prog.Instructions[m.pc])
		}
		if err = m.procs[m.pc](); err != nil {
			return m.fault(err)
		}
		m.insCount++
	}
	return nil
}

func (m *Machine) fault(err error) error {
	if m.pc < 0 || m.pc >= len(m.prog.Instructions) {
		return errors.Wrapf(err, "pc %d", m.pc)
	}
	return errors.Wrapf(err, "instruction %d: %s", m.pc, &m.prog.Instructions[m.pc])
}
