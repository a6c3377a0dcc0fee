/*
 * elements.go, part of govasp.
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
	"strconv"
	"strings"
)

// ElementTable contains the chemical species of the system, in the order of the
// POTCAR, and the number of atoms of each.
type ElementTable struct {
	Symbols []string
	Counts  []int
	perAtom []string
}

// NewElementTable builds a table and its per-atom symbol lookup. It panics if
// symbols and counts don't have the same length.
func NewElementTable(symbols []string, counts []int) *ElementTable {
	if len(symbols) != len(counts) {
		panic("outcar: NewElementTable: symbols and counts must have the same length")
	}
	E := &ElementTable{Symbols: symbols, Counts: counts}
	E.perAtom = make([]string, 0, E.NIons())
	for i, s := range symbols {
		for j := 0; j < counts[i]; j++ {
			E.perAtom = append(E.perAtom, s)
		}
	}
	return E
}

// NIons returns the total number of atoms.
func (E *ElementTable) NIons() int {
	n := 0
	for _, v := range E.Counts {
		n += v
	}
	return n
}

// Symbol returns the element of the i-th (0-based) atom.
func (E *ElementTable) Symbol(i int) string {
	return E.perAtom[i]
}

// PerAtom returns the slice with the symbol of each atom. It is shared, and must not be modified.
func (E *ElementTable) PerAtom() []string {
	return E.perAtom
}

// ExtractElements reads the element symbols from the VRHFIN echo of each pseudopotential,
// and the number of atoms of each from the "ions per type" line.
func ExtractElements(L Lines) (*ElementTable, error) {
	ci, ok := L.FindNext(0, Contains(anchorIonsPerType))
	if !ok {
		return nil, newError(FormatMismatch, L, -1, "ExtractElements", "no %q line", anchorIonsPerType)
	}
	_, after, _ := strings.Cut(L[ci], anchorIonsPerType)
	var counts []int
	for _, f := range strings.Fields(after) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, newError(FormatMismatch, L, ci, "ExtractElements", "bad atom count %q", f)
		}
		counts = append(counts, n)
	}
	var symbols []string
	for i := 0; ; i++ {
		var ok bool
		i, ok = L.FindNext(i, HasPrefix(anchorVRHFIN))
		if !ok {
			break
		}
		_, after, _ := strings.Cut(L[i], "=")
		sym, _, _ := strings.Cut(after, ":")
		sym = strings.TrimSpace(sym)
		if sym == "" {
			return nil, newError(FormatMismatch, L, i, "ExtractElements", "no element symbol")
		}
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, newError(FormatMismatch, L, -1, "ExtractElements", "no %q lines", strings.TrimSpace(anchorVRHFIN))
	}
	if len(symbols) != len(counts) {
		return nil, newError(FormatMismatch, L, ci, "ExtractElements", "%d pseudopotentials but %d atom counts", len(symbols), len(counts))
	}
	return NewElementTable(symbols, counts), nil
}
