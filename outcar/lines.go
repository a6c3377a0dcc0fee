/*
 * lines.go, part of govasp.
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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Lines contains the lines of an OUTCAR, without the newline characters.
// It is created once and never modified; all the extractors take it by value and keep
// their own cursors.
type Lines []string

// Predicate tests a single line.
type Predicate func(string) bool

// NewLines splits data on newlines, removing carriage returns and trailing blank lines.
func NewLines(data []byte) Lines {
	out := strings.Split(string(data), "\n")
	for i, v := range out {
		out[i] = strings.TrimSuffix(v, "\r")
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return Lines(out)
}

// FindNext returns the index of the first line, starting from from, for which pred is true.
// The second return value is false if there is no such line.
func (L Lines) FindNext(from int, pred Predicate) (int, bool) {
	return L.FindIn(from, len(L), pred)
}

// FindIn is like FindNext, but only looks at the lines with index lower than to.
func (L Lines) FindIn(from, to int, pred Predicate) (int, bool) {
	if from < 0 {
		from = 0
	}
	if to > len(L) {
		to = len(L)
	}
	for i := from; i < to; i++ {
		if pred(L[i]) {
			return i, true
		}
	}
	return -1, false
}

// HasPrefix returns a predicate that is true for lines starting with prefix.
func HasPrefix(prefix string) Predicate {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}

// Contains returns a predicate that is true for lines containing substr.
func Contains(substr string) Predicate {
	return func(s string) bool { return strings.Contains(s, substr) }
}

// TrimmedPrefix returns a predicate true for lines starting with prefix, once the leading
// spaces are removed.
func TrimmedPrefix(prefix string) Predicate {
	return func(s string) bool { return strings.HasPrefix(trimLeft(s), prefix) }
}

func hasPrefix(s, prefix string) bool { return strings.HasPrefix(s, prefix) }

func trimLeft(s string) string { return strings.TrimLeft(s, " \t") }

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Read reads the whole content of r, decompressing it if it is a zstd or a gzip stream.
func Read(r io.Reader) (Lines, error) {
	b := bufio.NewReader(r)
	magic, _ := b.Peek(4) //a short file just means no compression.
	var in io.Reader = b
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(b)
		if err != nil {
			return nil, fmt.Errorf("outcar: can't open zstd stream: %w", err)
		}
		defer dec.Close()
		in = dec
	case bytes.HasPrefix(magic, gzipMagic):
		dec, err := gzip.NewReader(b)
		if err != nil {
			return nil, fmt.Errorf("outcar: can't open gzip stream: %w", err)
		}
		defer dec.Close()
		in = dec
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("outcar: can't read: %w", err)
	}
	return NewLines(data), nil
}

// ReadFile reads the file name, which can be plain text, or gzip or zstd compressed.
func ReadFile(name string) (Lines, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	L, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return L, nil
}
