/*
 * frames.go, part of govasp.
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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmera/govasp/outcar"
	"github.com/rmera/govasp/poscar"
)

// StepPoscar returns the structure of step i of O, in direct (fractional) coordinates if
// direct is true, or in cartesian ones otherwise.
func StepPoscar(O *outcar.Outcar, i int, direct bool) (*poscar.Poscar, error) {
	if i < 0 || i >= len(O.Steps) {
		return nil, fmt.Errorf("export: step %d out of range (%d steps)", i, len(O.Steps))
	}
	st := &O.Steps[i]
	P := &poscar.Poscar{
		Comment: fmt.Sprintf("%s step %d E = %.8f", O.FileName, i+1, st.TotalEnergy),
		Scale:   1,
		Lattice: st.Lattice,
		Symbols: O.Elements.Symbols,
		Counts:  O.Elements.Counts,
		Direct:  direct,
		Coords:  st.Positions,
	}
	if direct {
		frac, err := st.Lattice.ToFractional(st.Positions)
		if err != nil {
			return nil, fmt.Errorf("export: step %d: %w", i+1, err)
		}
		P.Coords = frac
	}
	return P, nil
}

// Frames writes one POSCAR per step of O in dir, which is created if needed. The files are
// named prefix_N, with N the 1-based step number. It returns the names of the files written.
func Frames(dir, prefix string, O *outcar.Outcar, direct bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(O.Steps))
	for i := range O.Steps {
		P, err := StepPoscar(O, i, direct)
		if err != nil {
			return names, err
		}
		name := filepath.Join(dir, fmt.Sprintf("%s_%d", prefix, i+1))
		if err := writeFile(name, func(f *os.File) error { return poscar.Write(f, P) }); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func writeFile(name string, fn func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("export: writing %s: %w", name, err)
	}
	return f.Close()
}
