/*
 * report.go, part of govasp.
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
	"math"

	"github.com/rmera/govasp/outcar"
)

// ReportOptions control Report.
type ReportOptions struct {
	Clean  bool //A plain table with a '#' header, for plotting programs. Otherwise, labels in each line.
	Color  bool //Color the labels, if not Clean.
	Magmom bool
	Volume bool
	Sigma0 bool //Report the sigma->0 energy instead of the energy without entropy.
}

const (
	green = "\033[32m"
	reset = "\033[0m"
)

// Report writes one line per ionic step of O, with the energy, the log10 of the energy change,
// the number of SCF iterations, the maximum and average forces, the atom (1-based) with the largest
// force, its element and direction, and the cpu time in minutes.
func Report(w io.Writer, O *outcar.Outcar, opts ReportOptions) error {
	b := bufio.NewWriter(w)
	label := func(s string) string {
		if opts.Color {
			return green + s + reset
		}
		return s
	}
	if opts.Clean {
		line := "#nStep       TOTEN Lg|dE| nSCF Max|F| Avg|F| i_max|F|   Time"
		if opts.Magmom {
			line += "    Magmom"
		}
		if opts.Volume {
			line += "    Volume"
		}
		fmt.Fprintln(b, line)
	}
	for i := range O.Steps {
		st := &O.Steps[i]
		lgde := math.Log10(math.Abs(st.DeltaE))
		if opts.Clean {
			fmt.Fprintf(b, "  %4d %11.5f   %4.1f  %3d %6.3f %6.3f %3d %2s %c  %5.2f",
				i+1, st.Energy(opts.Sigma0), lgde, st.NSCF, st.MaxForce, st.AverageForce,
				st.MaxIndex+1, st.MaxSymbol, st.MaxAxis, st.CPUTime/60)
			if opts.Magmom {
				fmt.Fprintf(b, " %9.4f", st.Magmom.Or(math.NaN()))
			}
			if opts.Volume {
				fmt.Fprintf(b, " %9.4f", st.Volume)
			}
		} else {
			fmt.Fprintf(b, "%3d %s %11.5f  %s %4.1f  %s %3d  %s %6.3f  %s %6.3f  %s %3d%2s%c  %s %5.2f",
				i+1, label("TOTEN"), st.Energy(opts.Sigma0), label("Lg|dE|"), lgde, label("SCF"), st.NSCF,
				label("Max|F|"), st.MaxForce, label("Avg|F|"), st.AverageForce,
				label("AtomInd"), st.MaxIndex+1, st.MaxSymbol, st.MaxAxis, label("Time"), st.CPUTime/60)
			if opts.Magmom {
				fmt.Fprintf(b, " %s %9.4f", label("Magmom"), st.Magmom.Or(math.NaN()))
			}
			if opts.Volume {
				fmt.Fprintf(b, " %s %7.3f", label("Vol."), st.Volume)
			}
		}
		b.WriteString("\n")
	}
	return b.Flush()
}
