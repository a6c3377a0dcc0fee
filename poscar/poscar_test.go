/*
 * poscar_test.go, part of govasp.
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

package poscar

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

const cuo = `Cu O slab
   1.0
     9.0750000000   -9.0750000000    0.0000000000
     9.0750000000    9.0750000000    0.0000000000
     0.0000000000    0.0000000000   29.0400000000
   Cu   O
    1    2
Selective dynamics
Direct
  0.0000000000  0.0000000000  0.0000000000   F   F   F
  0.5000000000  0.5000000000  0.1000000000   T   T   T
  0.2500000000  0.7500000000  0.2000000000   T   F   T
`

const vasp4 = `old style
  2.0
  1.0 0.0 0.0
  0.0 1.0 0.0
  0.0 0.0 1.0
  2
cartesian
  0.5 0.5 0.5
  0.0 0.0 0.25
`

func TestRead(Te *testing.T) {
	cases := []struct {
		name      string
		text      string
		nions     int
		symbols   string
		selective bool
		direct    bool
		a3z       float64
	}{
		{"vasp5 selective", cuo, 3, "Cu O", true, true, 29.04},
		{"vasp4 scaled", vasp4, 2, "", false, false, 2},
		{"negative scale is a volume", strings.Replace(vasp4, "  2.0\n", "  -27.0\n", 1), 2, "", false, false, 3},
	}
	for _, c := range cases {
		P, err := Read(strings.NewReader(c.text))
		if err != nil {
			Te.Errorf("%s: %v", c.name, err)
			continue
		}
		if P.NIons() != c.nions || strings.Join(P.Symbols, " ") != c.symbols {
			Te.Errorf("%s: got %d atoms, elements %v", c.name, P.NIons(), P.Symbols)
		}
		if P.Selective != c.selective || P.Direct != c.direct {
			Te.Errorf("%s: got selective %v direct %v", c.name, P.Selective, P.Direct)
		}
		if math.Abs(P.Lattice[2][2]-c.a3z) > 1e-9 {
			Te.Errorf("%s: expected A3z %f, got %f", c.name, c.a3z, P.Lattice[2][2])
		}
	}
}

func TestReadErrors(Te *testing.T) {
	cases := map[string]string{
		"bad scale":      strings.Replace(cuo, "   1.0\n", "   one\n", 1),
		"bad mode":       strings.Replace(cuo, "Direct", "Fractional", 1),
		"counts":         strings.Replace(cuo, "    1    2", "    1    2    3", 1),
		"bad flag":       strings.Replace(cuo, "T   F   T", "T   X   T", 1),
		"missing atoms":  strings.TrimSuffix(cuo, "  0.2500000000  0.7500000000  0.2000000000   T   F   T\n"),
		"zero count":     strings.Replace(cuo, "    1    2", "    0    2", 1),
		"short lattice":  strings.Replace(cuo, "    0.0000000000   29.0400000000", "", 1),
		"empty elements": strings.Replace(cuo, "   Cu   O", "", 1),
	}
	for name, text := range cases {
		if _, err := Read(strings.NewReader(text)); err == nil {
			Te.Errorf("%s: expected an error", name)
		}
	}
}

func TestMaskAndCartesian(Te *testing.T) {
	P, err := Read(strings.NewReader(cuo))
	if err != nil {
		Te.Fatal(err)
	}
	m := P.Mask()
	expected := [][3]float64{{0, 0, 0}, {1, 1, 1}, {1, 0, 1}}
	for i, e := range expected {
		if m.Vec(i) != e {
			Te.Errorf("mask row %d: expected %v, got %v", i, e, m.Vec(i))
		}
	}
	cart := P.Cartesian()
	//0.5*A1+0.5*A2+0.1*A3
	if v := cart.Vec(1); math.Abs(v[0]-9.075) > 1e-9 || math.Abs(v[1]) > 1e-9 || math.Abs(v[2]-2.904) > 1e-9 {
		Te.Errorf("bad cartesian coordinates %v", v)
	}
	P4, _ := Read(strings.NewReader(vasp4))
	if P4.Mask() != nil {
		Te.Error("no selective dynamics should give a nil mask")
	}
	if v := P4.Cartesian().Vec(0); v != [3]float64{1, 1, 1} {
		Te.Errorf("cartesian coordinates should be scaled: %v", v)
	}
}

func TestWriteRead(Te *testing.T) {
	P, err := Read(strings.NewReader(cuo))
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, P); err != nil {
		Te.Fatal(err)
	}
	P2, err := Read(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if P2.Lattice != P.Lattice || strings.Join(P2.Symbols, " ") != "Cu O" || !P2.Selective || P2.Free[2] != P.Free[2] {
		Te.Errorf("the written file differs: %+v", P2)
	}
	for i := 0; i < 3; i++ {
		if P2.Coords.Vec(i) != P.Coords.Vec(i) {
			Te.Errorf("atom %d: %v vs %v", i, P2.Coords.Vec(i), P.Coords.Vec(i))
		}
	}
}

func TestCheckElements(Te *testing.T) {
	P, _ := Read(strings.NewReader(cuo))
	P4, _ := Read(strings.NewReader(vasp4))
	cases := []struct {
		name string
		pos  *Poscar
		pot  []string
		ok   bool
	}{
		{"same", P, []string{"Cu", "O"}, true},
		{"case and suffix", P, []string{"cu_pv", "o"}, true},
		{"swapped", P, []string{"O", "Cu"}, false},
		{"too many", P, []string{"Cu", "O", "H"}, false},
		{"no tags", P4, []string{"Cu"}, false},
	}
	for _, c := range cases {
		err := CheckElements(c.pos, c.pot)
		if c.ok && err != nil {
			Te.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrElementMismatch) {
			Te.Errorf("%s: expected an element mismatch, got %v", c.name, err)
		}
	}
}
