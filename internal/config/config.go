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

// Package config loads machine descriptions.
//
// A machine description names a controller, the registers and operation
// table of the machine, the initial contents of registers and the registers
// to print once the machine has stopped. Descriptions are written in TOML or
// YAML, selected by file extension:
//
//	# gcd.toml
//	controller = "gcd.scm"
//	registers = ["a", "b", "t"]
//	ops = "arith"
//	print = ["a"]
//
//	[init]
//	a = "206"
//	b = "40"
//
// Initial values are s-expression literals.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Operation table names.
const (
	OpsNone   = "none"
	OpsArith  = "arith"
	OpsEceval = "eceval"
)

// Configuration errors.
var (
	ErrFormat  = errors.New("unsupported configuration format")
	ErrInvalid = errors.New("invalid machine description")
)

// Machine is a machine description.
type Machine struct {
	// Controller is the path of the controller text, relative to the
	// description file.
	Controller string `toml:"controller" yaml:"controller"`
	// Program is an inline controller text, exclusive with Controller.
	Program   string            `toml:"program" yaml:"program"`
	Registers []string          `toml:"registers" yaml:"registers"`
	Ops       string            `toml:"ops" yaml:"ops"`
	Init      map[string]string `toml:"init" yaml:"init"`
	Print     []string          `toml:"print" yaml:"print"`
	Trace     bool              `toml:"trace" yaml:"trace"`

	// Dir is the directory of the description file (set at load time).
	Dir string `toml:"-" yaml:"-"`
}

// Load reads the machine description in the named file.
func Load(name string) (*Machine, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	var m *Machine
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		m, err = ParseTOML(data)
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	default:
		return nil, errors.Wrapf(ErrFormat, "%s: extension %q", name, ext)
	}
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	m.Dir = filepath.Dir(name)
	return m, nil
}

// ParseTOML parses a TOML machine description. Unknown keys are rejected.
func ParseTOML(data []byte) (*Machine, error) {
	var m Machine
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(err, "parse TOML")
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, errors.Wrapf(ErrInvalid, "unknown key %s", u[0])
	}
	return &m, m.Validate()
}

// ParseYAML parses a YAML machine description. Unknown keys are rejected.
func ParseYAML(data []byte) (*Machine, error) {
	var m Machine
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse YAML")
	}
	return &m, m.Validate()
}

// Validate checks the consistency of m.
func (m *Machine) Validate() error {
	if m.Controller != "" && m.Program != "" {
		return errors.Wrap(ErrInvalid, "controller and program are mutually exclusive")
	}
	switch m.Ops {
	case "", OpsNone, OpsArith, OpsEceval:
	default:
		return errors.Wrapf(ErrInvalid, "unknown operation table %q", m.Ops)
	}
	if _, err := m.Values(); err != nil {
		return err
	}
	return nil
}

// ControllerText returns the controller text of the machine, or an empty
// string if the description has none.
func (m *Machine) ControllerText() (string, error) {
	if m.Controller == "" {
		return m.Program, nil
	}
	name := m.Controller
	if !filepath.IsAbs(name) {
		name = filepath.Join(m.Dir, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, "read controller")
	}
	return string(data), nil
}

// Values parses the initial register values.
func (m *Machine) Values() (map[string]sexp.Value, error) {
	vs := make(map[string]sexp.Value, len(m.Init))
	for r, lit := range m.Init {
		v, err := sexp.ReadOne(lit)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalid, "register %s: %v", r, err)
		}
		vs[r] = v
	}
	return vs, nil
}

// InitOrder returns the names of the initialized registers in lexical order.
func (m *Machine) InitOrder() []string {
	names := make([]string, 0, len(m.Init))
	for r := range m.Init {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}
