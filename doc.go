/*
 * doc.go, part of govasp.
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

/*Package vasp is the root package of govasp. It holds the interfaces shared by the
readers and writers of the library: errors that can be decorated on their way up the call
stack, and trajectories that can be read frame by frame.

	**govasp Capabilities**

    Reads VASP OUTCAR run logs (plain, gzip or zstd compressed) and extracts the element
	table, the initial lattice, the run parameters and the k-point list.

    Extracts the full ionic trajectory: lattice, cartesian positions, forces, energies,
	SCF counts, cpu time and magnetic moment of every ionic step. Missing cell or position
	sections are carried forward from the previous step.

    Derives per-step force statistics: per-atom force magnitudes, average and maximum force,
	the atom (and its dominant axis) that carries the maximum force, and energy differences.

    Reads the normal modes of finite-difference (IBRION=5) vibrational analyses.

    Writes Molden multi-frame trajectories, POSCAR frames (direct or cartesian), XSF mode
	files, Molden frequency files, STF compressed trajectories, YAML summaries, SQLite step
	tables and convergence plots.

The coordinates of sets of atoms are represented with the v3.Matrix type, a row-major
Nx3 matrix based on gonum's Dense. Each row of a v3.Matrix is one point in space.*/
package vasp
