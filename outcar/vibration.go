/*
 * vibration.go, part of govasp.
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
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/rmera/govasp/v3"
)

// Mode is a normal mode from a finite differences (IBRION=5) calculation.
type Mode struct {
	THz       float64
	CM        float64 //cm^-1
	MeV       float64
	Imaginary bool //the frequency values are all positive, this flag gives the sign.
	//The displacement of each atom, NIONSx3.
	Displacements *v3.Matrix
}

// ExtractModes reads the normal modes printed after the diagonalization of the
// dynamical matrix. It returns nil and no error if IBRION in params is not 5.
func ExtractModes(L Lines, params Parameters, nions int) ([]Mode, error) {
	if params.IBRION.Or(-1) != 5 {
		return nil, nil
	}
	di, ok := L.FindNext(0, Contains(anchorDOF))
	if !ok {
		return nil, newError(FormatMismatch, L, -1, "ExtractModes", "no %q line", strings.TrimSpace(anchorDOF))
	}
	tok, _ := valueAfter(L[di], "DOF")
	dof, err := strconv.Atoi(tok)
	if err != nil || dof < 0 {
		return nil, newError(FormatMismatch, L, di, "ExtractModes", "bad degrees of freedom %q", tok)
	}
	ei, ok := L.FindNext(di, Contains(anchorEigenvectors))
	if !ok {
		return nil, newError(FormatMismatch, L, -1, "ExtractModes", "no %q line", strings.TrimSpace(anchorEigenvectors))
	}
	modes := make([]Mode, 0, dof)
	i := ei + 1
	for {
		for i < len(L) && isSeparator(L[i]) {
			i++
		}
		if i >= len(L) {
			break
		}
		m, ok, err := parseModeHeader(L[i])
		if !ok {
			break
		}
		if err != nil {
			return nil, newError(FormatMismatch, L, i, "ExtractModes", "%s", err)
		}
		//the header, then the "X Y Z dx dy dz" line.
		first := i + 2
		if first+nions > len(L) {
			return nil, newError(CountMismatch, L, len(L)-1, "ExtractModes", "mode %d has fewer than %d atoms", len(modes)+1, nions)
		}
		m.Displacements = v3.Zeros(nions)
		for k := 0; k < nions; k++ {
			v, err := floatsFrom(strings.Fields(L[first+k]), 6)
			if err != nil {
				return nil, newError(FormatMismatch, L, first+k, "ExtractModes", "bad mode line: %s", err)
			}
			m.Displacements.SetVec(k, [3]float64{v[3], v[4], v[5]})
		}
		modes = append(modes, m)
		i = first + nions
	}
	if len(modes) != dof {
		return nil, newError(CountMismatch, L, ei, "ExtractModes", "%d degrees of freedom declared, %d modes read", dof, len(modes))
	}
	return modes, nil
}

func isSeparator(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || strings.Trim(t, "-") == ""
}

// parseModeHeader reads a line like
//
//	"   1 f  =   95.122768 THz   597.667407 2PiTHz 3172.922348 cm-1   393.392263 meV"
//
// where "f/i=" marks an imaginary mode. ok is false if the line is not a mode header.
func parseModeHeader(line string) (m Mode, ok bool, err error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return m, false, nil
	}
	if _, err := strconv.Atoi(f[0]); err != nil || !strings.HasPrefix(f[1], "f") {
		return m, false, nil
	}
	m.Imaginary = strings.HasPrefix(f[1], "f/i")
	units := []struct {
		name string
		dst  *float64
	}{{"THz", &m.THz}, {"cm-1", &m.CM}, {"meV", &m.MeV}}
	for _, u := range units {
		found := false
		for j := 1; j < len(f); j++ {
			if f[j] != u.name {
				continue
			}
			*u.dst, err = strconv.ParseFloat(f[j-1], 64)
			if err != nil {
				return m, true, fmt.Errorf("bad %s value: %w", u.name, err)
			}
			found = true
			break
		}
		if !found {
			return m, true, fmt.Errorf("no %s value in mode header", u.name)
		}
	}
	return m, true, nil
}
