/*
 * molden.go, part of govasp.
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

	"github.com/rmera/govasp/outcar"
)

// MoldenOptions control Molden.
type MoldenOptions struct {
	Skip   int  //Number of leading steps not written.
	Sigma0 bool //Use the sigma->0 energy instead of the energy without entropy.
}

// Molden writes the steps of O as a Molden geometry optimization: the energy, maximum force and
// average force of each step in the [GEOCONV] section, and the geometries in [GEOMETRIES] XYZ.
func Molden(w io.Writer, O *outcar.Outcar, opts MoldenOptions) error {
	steps := O.Steps
	if opts.Skip > 0 {
		if opts.Skip >= len(steps) {
			return fmt.Errorf("export: can't skip %d of %d steps", opts.Skip, len(steps))
		}
		steps = steps[opts.Skip:]
	}
	b := bufio.NewWriter(w)
	b.WriteString("[Molden Format]\n[GEOCONV]\nenergy\n")
	for i := range steps {
		fmt.Fprintf(b, "%.8f\n", steps[i].Energy(opts.Sigma0))
	}
	b.WriteString("max-force\n")
	for i := range steps {
		fmt.Fprintf(b, "%.6f\n", steps[i].MaxForce)
	}
	//Molden only knows rms-force, the average is written there.
	b.WriteString("rms-force\n")
	for i := range steps {
		fmt.Fprintf(b, "%.6f\n", steps[i].AverageForce)
	}
	b.WriteString("[GEOMETRIES] XYZ\n")
	symbols := O.Elements.PerAtom()
	for i := range steps {
		st := &steps[i]
		fmt.Fprintf(b, "%6d\n", st.Positions.NVecs())
		fmt.Fprintf(b, " step %d E = %.8f\n", st.Index+1, st.Energy(opts.Sigma0))
		writeXYZ(b, symbols, st.Positions.Vec, st.Positions.NVecs(), 1)
	}
	return b.Flush()
}

// writeXYZ writes n lines "Sym x y z", with the coordinates divided by unit.
func writeXYZ(w io.Writer, symbols []string, vec func(int) [3]float64, n int, unit float64) {
	for j := 0; j < n; j++ {
		v := vec(j)
		fmt.Fprintf(w, "%-3s %15.8f %15.8f %15.8f\n", symbols[j], v[0]/unit, v[1]/unit, v[2]/unit)
	}
}
