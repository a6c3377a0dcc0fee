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

//Package export writes the results read from an OUTCAR to other formats: Molden
//optimization trajectories, one POSCAR per ionic step, XSF and Molden files for the
//normal modes, a text report of the steps, a YAML summary, an SQLite database and a
//convergence plot. It also copies any trajectory to a trajectory writer.
package export
