/*
 * errors.go, part of govasp.
 *
 * Copyright 2024 The govasp authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package outcar

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal errors of the package.
type Kind int

const (
	//FormatMismatch means that a required anchor is missing, or that a number could not be parsed.
	FormatMismatch Kind = iota + 1
	//CountMismatch means that a parsed count disagrees with a count declared earlier in the file.
	CountMismatch
)

func (K Kind) String() string {
	switch K {
	case FormatMismatch:
		return "format mismatch"
	case CountMismatch:
		return "count mismatch"
	}
	return "unknown"
}

// Sentinels for errors.Is. Every *Error unwraps to one of them.
var (
	ErrFormatMismatch = errors.New("format mismatch")
	ErrCountMismatch  = errors.New("count mismatch")
)

// Error is the error type for OUTCAR parsing. It fullfills vasp.Error and vasp.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if unknown.
	kind     Kind
	line     int //0-based index of the offending line, -1 if none.
	content  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	name := err.filename
	if name == "" {
		name = "(unnamed)"
	}
	s := fmt.Sprintf("outcar file %s %s: %s", name, err.kind, err.message)
	if err.line >= 0 {
		s += fmt.Sprintf(" (line %d: %q)", err.line+1, err.content)
	}
	return s
}

// Unwrap returns the sentinel error corresponding to the kind of the error.
func (err *Error) Unwrap() error {
	if err.kind == CountMismatch {
		return ErrCountMismatch
	}
	return ErrFormatMismatch
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Kind returns the kind of the error.
func (err *Error) Kind() Kind { return err.kind }

// Line returns the 0-based index of the offending line, or -1.
func (err *Error) Line() int { return err.line }

// Content returns the offending line.
func (err *Error) Content() string { return err.content }

// FileName returns the file to which the error is associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "outcar") associated to the error
func (err *Error) Format() string { return "outcar" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

// newError builds a critical error pointing at the line i of L. If i is out of range
// the error carries no line.
func newError(kind Kind, L Lines, i int, caller string, format string, args ...any) *Error {
	e := &Error{message: fmt.Sprintf(format, args...), kind: kind, line: -1, critical: true, deco: []string{caller}}
	if i >= 0 && i < len(L) {
		e.line = i
		e.content = L[i]
	}
	return e
}

// errDecorate decorates err with the caller's name if it is an *Error, and sets
// its file name if one is given and none was set. Other errors are returned unchanged.
func errDecorate(err error, caller string, filename ...string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		if len(filename) > 0 && e.filename == "" {
			e.filename = filename[0]
		}
	}
	return err
}

// lastFrameError implements vasp.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "outcar" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
