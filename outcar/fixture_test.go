/*
 * fixture_test.go, part of govasp.
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
	"strings"
)

//Builders for synthetic OUTCARs. They only write what the extractors read,
//plus some of the noise around it, in the columns VASP uses.

type fakeStep struct {
	nscf       int
	magmom     string   //printed after "magnetization"; empty for none.
	lattice    *Lattice //nil for no VOLUME and BASIS section.
	volume     float64
	positions  [][3]float64 //nil for no POSITION section.
	forces     [][3]float64
	energy     float64
	sigma0     float64
	cpu        string //as printed after "cpu time"
	wideBanner bool
}

type fakeMode struct {
	num       int
	imaginary bool
	thz, cm   float64
	mev       float64
	disp      [][3]float64
}

type fakeRun struct {
	symbols  []string
	counts   []int
	nions    int //0 means the sum of counts.
	ispin    int
	ibrion   int
	lattice  Lattice
	kpoints  int //declared
	kwritten int //lines actually written; -1 means kpoints.
	steps    []fakeStep
	dof      int
	modes    []fakeMode
	truncate bool //adds a last step with no LOOP+.
}

var testLattice = Lattice{{9.075, -9.075, 0}, {9.075, 9.075, 0}, {0, 0, 29.04}}

func (R fakeRun) nIons() int {
	if R.nions != 0 {
		return R.nions
	}
	n := 0
	for _, v := range R.counts {
		n += v
	}
	return n
}

func (R fakeRun) String() string {
	var b strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }
	w(" vasp.6.3.2 27Jun22 (build Aug 17 2022 10:55:01) complex")
	w(" ")
	for _, s := range R.symbols {
		w(" POTCAR:    PAW_PBE %s 06Sep2000", s)
	}
	for _, s := range R.symbols {
		w("   VRHFIN =%s: s1d10", s)
		w("   LEXCH  = PE")
	}
	w("")
	w(" Dimension of arrays:")
	w("   k-points           NKPTS = %6d   k-points in BZ     NKDIM = %6d   number of bands    NBANDS= %6d", R.kpoints, R.kpoints, 224)
	w("   number of dos      NEDOS =    301   number of ions     NIONS = %6d", R.nIons())
	w("   non local maximal  LDIM  =      6   non local SUM 2l+1 LMDIM =     18")
	counts := make([]string, len(R.counts))
	for i, c := range R.counts {
		counts[i] = fmt.Sprintf("%3d", c)
	}
	w("   ions per type =            %s", strings.Join(counts, " "))
	w("")
	w("   ENCUT  =  500.0 eV  36.75 Ry    6.06 a.u.  22.07 22.07 67.93*2*pi/ulx,y,z")
	w("   NELM   =     60;   NELMIN=  2; NELMDL= -5     # of ELM steps")
	w("   EDIFF  = 0.1E-04   stopping-criterion for ELM")
	w("   EDIFFG = -.1E-01   stopping-criterion for IOM")
	w("   NSW    =    500    number of steps for IOM")
	w("   IBRION = %6d    ionic relax: 0-MD 1-quasi-New 2-CG", R.ibrion)
	w("   ISIF   =      2    stress and relaxation")
	w("   ISPIN  = %6d    spin polarized calculation?", R.ispin)
	w("   LNONCOLLINEAR =      F non collinear calculations")
	w("   LSORBIT =      F    spin-orbit coupling")
	w("   LORBIT =      0    0 simple, 1 ext, 2 COOP (PROOUT), +10 PAW based schemes")
	w("")
	w(" Lattice vectors:")
	w("")
	for k, r := range R.lattice {
		w(" A%d = (%15.10f, %15.10f, %15.10f)", k+1, r[0], r[1], r[2])
	}
	w("")
	w(" k-points in reciprocal lattice and weights: KPOINTS created by Atomic Simulation Environment")
	kw := R.kwritten
	if kw < 0 {
		kw = R.kpoints
	}
	for i := 0; i < kw; i++ {
		w("  %12.8f %12.8f %12.8f       0.050", float64(i)/40, 0.0, 0.25)
	}
	w("")
	w(" position of ions in fractional coordinates (direct lattice)")
	w("")
	for _, s := range R.steps {
		R.writeStep(w, s, true)
	}
	if R.truncate && len(R.steps) > 0 {
		R.writeStep(w, R.steps[len(R.steps)-1], false)
	}
	if R.modes != nil {
		w("")
		w("   Degrees of freedom DOF   = %11d", R.dof)
		w("")
		w(" Eigenvectors and eigenvalues of the dynamical matrix")
		w(" ----------------------------------------------------")
		w("")
		for _, m := range R.modes {
			w("")
			sep := "f  ="
			if m.imaginary {
				sep = "f/i="
			}
			w("%4d %s %11.6f THz %12.6f 2PiTHz %11.6f cm-1 %12.6f meV", m.num, sep, m.thz, m.thz*6.283185, m.cm, m.mev)
			w("             X         Y         Z           dx          dy          dz")
			for _, d := range m.disp {
				w("      0.000000  0.000000  0.000000  %10.6f  %10.6f  %10.6f", d[0], d[1], d[2])
			}
		}
		w("")
		w(" Eigenvectors after division by SQRT(mass)")
	}
	return b.String()
}

func (R fakeRun) writeStep(w func(string, ...any), s fakeStep, finish bool) {
	dashes := "---------------------------------------"
	if s.wideBanner {
		dashes += "--"
	}
	for j := 0; j < s.nscf; j++ {
		w("%s Iteration    1(%4d)  ---------------------------------------", dashes, j+1)
		w("")
		w("    POTLOK:  cpu time    0.1234: real time    0.1240")
		if s.magmom != "" {
			w(" number of electron     208.0000000 magnetization %s", s.magmom)
		} else {
			w(" number of electron     208.0000000 magnetization")
		}
		w("      LOOP:  cpu time    4.1200: real time    4.1500")
	}
	if s.lattice != nil {
		w("  VOLUME and BASIS-vectors are now :")
		w(" -----------------------------------------------------------------------------")
		w("  energy-cutoff  :      500.00")
		w("  volume of cell : %12.2f", s.volume)
		w("      direct lattice vectors                 reciprocal lattice vectors")
		for _, r := range s.lattice {
			w("   %13.9f%13.9f%13.9f     %13.9f%13.9f%13.9f", r[0], r[1], r[2], 0.0, 0.0, 0.0)
		}
		w("")
	}
	if s.positions != nil {
		w(" POSITION                                       TOTAL-FORCE (eV/Angst)")
		w(" -----------------------------------------------------------------------------------")
		for i, p := range s.positions {
			f := s.forces[i]
			w(" %12.5f %12.5f %12.5f    %14.6f %13.6f %13.6f", p[0], p[1], p[2], f[0], f[1], f[2])
		}
		w(" -----------------------------------------------------------------------------------")
		w("    total drift:                                0.000000     -0.000000      0.000000")
	}
	w("")
	w("  FREE ENERGIE OF THE ION-ELECTRON SYSTEM (eV)")
	w("  ---------------------------------------------------")
	w("  free  energy   TOTEN  = %18.8f eV", s.energy-0.001)
	w("")
	w("  energy  without entropy= %18.8f  energy(sigma->0) = %18.8f", s.energy, s.sigma0)
	w("")
	if finish {
		w("      LOOP+:  cpu time %s: real time 2101.3456", s.cpu)
		w("")
	}
}

// grid returns n positions on a line, and n forces, the i-th being (i, 2i, 3i)/100.
func grid(n int) ([][3]float64, [][3]float64) {
	pos := make([][3]float64, n)
	forces := make([][3]float64, n)
	for i := range pos {
		x := float64(i)
		pos[i] = [3]float64{x * 0.5, x * 0.25, 1.0}
		forces[i] = [3]float64{x / 100, 2 * x / 100, 3 * x / 100}
	}
	return pos, forces
}

// smallRun is a 3-atom, 2-step relaxation where the second step prints no cell.
func smallRun() fakeRun {
	lat := testLattice
	pos, forces := grid(3)
	pos2, forces2 := grid(3)
	pos2[0][0] = 0.1
	forces2[1] = [3]float64{0.5, -0.1, 0.2}
	return fakeRun{
		symbols:  []string{"Cu", "O"},
		counts:   []int{1, 2},
		ispin:    1,
		ibrion:   2,
		lattice:  lat,
		kpoints:  4,
		kwritten: -1,
		steps: []fakeStep{
			{nscf: 12, lattice: &lat, volume: 4783.08, positions: pos, forces: forces, energy: -10.5, sigma0: -10.6, cpu: "  12.3456"},
			{nscf: 5, positions: pos2, forces: forces2, energy: -10.75, sigma0: -10.8, cpu: "  20.0000", wideBanner: true},
		},
	}
}

func parseRun(R fakeRun, opts ...IterationOptions) (*Outcar, error) {
	return Parse(NewLines([]byte(R.String())), opts...)
}
