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

// Package ewriter provides an io.Writer wrapper that tracks write errors so
// that callers can issue a sequence of writes and check for failure once.
package ewriter

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Writer remembers the first write error. Once Err is set, all subsequent
// writes are no-ops returning Err.
type Writer struct {
	w   io.Writer
	Err error
}

// New returns a Writer writing to w. If w already is a *Writer, it is
// returned as is.
func New(w io.Writer) *Writer {
	if ew, ok := w.(*Writer); ok {
		return ew
	}
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteString implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	return io.WriteString(writerOnly{w}, s)
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(c byte) error {
	_, err := w.Write([]byte{c})
	return err
}

// Printf writes formatted output.
func (w *Writer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(writerOnly{w}, format, args...)
}

// writerOnly hides the WriteString method of *Writer so that io.WriteString
// does not recurse.
type writerOnly struct {
	io.Writer
}
