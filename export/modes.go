/*
 * modes.go, part of govasp.
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

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rmera/govasp/outcar"
	v3 "github.com/rmera/govasp/v3"
)

// Bohr is the Bohr radius in A.
const Bohr = 0.529177

func modeGeometry(O *outcar.Outcar) (*v3.Matrix, error) {
	if len(O.Modes) == 0 {
		return nil, fmt.Errorf("export: no normal modes")
	}
	if len(O.Steps) == 0 {
		return nil, fmt.Errorf("export: no geometry for the normal modes")
	}
	return O.Steps[0].Positions, nil
}

// ModesXSF writes, for each normal mode of O, an XSF file with the cell, the geometry of
// the first step, and the displacements multiplied by scale. The files are named prefix_N.xsf,
// in dir, which is created if needed.
func ModesXSF(dir, prefix string, O *outcar.Outcar, scale float64) ([]string, error) {
	pos, err := modeGeometry(O)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	symbols := O.Elements.PerAtom()
	names := make([]string, 0, len(O.Modes))
	for i, m := range O.Modes {
		name := filepath.Join(dir, fmt.Sprintf("%s_%d.xsf", prefix, i+1))
		err := writeFile(name, func(f *os.File) error {
			return writeXSF(f, O.Lattice, symbols, pos, m, scale)
		})
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func writeXSF(w io.Writer, lat outcar.Lattice, symbols []string, pos *v3.Matrix, m outcar.Mode, scale float64) error {
	b := bufio.NewWriter(w)
	sign := ""
	if m.Imaginary {
		sign = "i"
	}
	fmt.Fprintf(b, "# %.6f%s cm-1  %.6f%s THz  %.6f%s meV\n", m.CM, sign, m.THz, sign, m.MeV, sign)
	b.WriteString("CRYSTAL\nPRIMVEC\n")
	for _, r := range lat {
		fmt.Fprintf(b, " %15.10f %15.10f %15.10f\n", r[0], r[1], r[2])
	}
	fmt.Fprintf(b, "PRIMCOORD\n%6d 1\n", pos.NVecs())
	for j := 0; j < pos.NVecs(); j++ {
		p, d := pos.Vec(j), m.Displacements.Vec(j)
		fmt.Fprintf(b, "%-3s %15.8f %15.8f %15.8f %12.6f %12.6f %12.6f\n", symbols[j], p[0], p[1], p[2], d[0]*scale, d[1]*scale, d[2]*scale)
	}
	return b.Flush()
}

// MoldenFreq writes all the normal modes of O in a single Molden file. Imaginary frequencies are
// written as negative numbers, the coordinates in bohr, and each displacement vector is normalized.
func MoldenFreq(w io.Writer, O *outcar.Outcar) error {
	pos, err := modeGeometry(O)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	b.WriteString("[Molden Format]\n[FREQ]\n")
	for _, m := range O.Modes {
		f := m.CM
		if m.Imaginary {
			f = -f
		}
		fmt.Fprintf(b, "%12.6f\n", f)
	}
	b.WriteString("[FR-COORD]\n")
	writeXYZ(b, O.Elements.PerAtom(), pos.Vec, pos.NVecs(), Bohr)
	b.WriteString("[FR-NORM-COORD]\n")
	unit := v3.Zeros(pos.NVecs())
	for i, m := range O.Modes {
		fmt.Fprintf(b, "vibration %d\n", i+1)
		unit.Unit(m.Displacements)
		for j := 0; j < unit.NVecs(); j++ {
			d := unit.Vec(j)
			fmt.Fprintf(b, "%12.6f %12.6f %12.6f\n", d[0], d[1], d[2])
		}
	}
	return b.Flush()
}
