/*
 * vibration_test.go, part of govasp.
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
	"strings"
	"testing"
)

func vibrationRun() fakeRun {
	R := smallRun()
	R.ibrion = 5
	R.dof = 2
	R.modes = []fakeMode{
		{num: 1, thz: 95.122768, cm: 3172.922348, mev: 393.392263, disp: [][3]float64{{0, 0, -0.707107}, {0.1, 0.2, 0.3}, {0, 0, 0.707107}}},
		{num: 2, imaginary: true, thz: 0.704651, cm: 23.504863, mev: 2.914229, disp: [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
	}
	return R
}

func TestExtractModes(Te *testing.T) {
	O, err := parseRun(vibrationRun())
	if err != nil {
		Te.Fatal(err)
	}
	if len(O.Modes) != 2 {
		Te.Fatalf("expected 2 modes, got %d", len(O.Modes))
	}
	m := O.Modes[0]
	if m.THz != 95.122768 || m.CM != 3172.922348 || m.MeV != 393.392263 || m.Imaginary {
		Te.Errorf("bad first mode %+v", m)
	}
	if m.Displacements.NVecs() != 3 || m.Displacements.At(0, 2) != -0.707107 || m.Displacements.At(1, 1) != 0.2 {
		Te.Errorf("bad displacements %v", m.Displacements)
	}
	if !O.Modes[1].Imaginary || O.Modes[1].CM != 23.504863 {
		Te.Errorf("bad imaginary mode %+v", O.Modes[1])
	}
}

func TestModesCount(Te *testing.T) {
	R := vibrationRun()
	R.dof = 3
	if _, err := parseRun(R); !errors.Is(err, ErrCountMismatch) {
		Te.Errorf("3 degrees of freedom and 2 modes should be a count mismatch, got %v", err)
	}
	R = vibrationRun()
	R.ibrion = 2
	O, err := parseRun(R)
	if err != nil {
		Te.Fatal(err)
	}
	if O.Modes != nil {
		Te.Error("modes should only be read when IBRION=5")
	}
}

func TestBadDOF(Te *testing.T) {
	R := vibrationRun()
	R.dof = -6
	_, err := parseRun(R)
	var e *Error
	if !errors.As(err, &e) || e.Kind() != FormatMismatch {
		Te.Fatalf("a negative number of degrees of freedom should be a format mismatch, got %v", err)
	}
	if !strings.Contains(e.Content(), "DOF") {
		Te.Errorf("the error should point to the DOF line, not %q", e.Content())
	}
	text := strings.Replace(vibrationRun().String(), "Eigenvectors and eigenvalues", "Eigenvalues", 1)
	_, err = Parse(NewLines([]byte(text)))
	if !errors.As(err, &e) || e.Kind() != FormatMismatch || e.Line() != -1 {
		Te.Errorf("no eigenvector section should be a format mismatch with no line, got %v", err)
	}
}

func TestParseModeHeader(Te *testing.T) {
	m, ok, err := parseModeHeader("  12 f/i=    1.204651 THz     7.568987 2PiTHz   40.183013 cm-1     4.982091 meV")
	if !ok || err != nil || !m.Imaginary || m.THz != 1.204651 || m.MeV != 4.982091 {
		Te.Errorf("bad imaginary header: %+v %v %v", m, ok, err)
	}
	if _, ok, _ := parseModeHeader("             X         Y         Z           dx          dy          dz"); ok {
		Te.Error("a column header is not a mode header")
	}
	if _, ok, err := parseModeHeader("   3 f  =   95.122768 THz   597.667407 2PiTHz"); !ok || err == nil {
		Te.Error("a mode header without cm-1 should be an error")
	}
}
