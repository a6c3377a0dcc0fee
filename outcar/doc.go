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

//Package outcar reads the OUTCAR run log written by VASP during ionic relaxations,
//molecular dynamics and finite-difference vibrational analyses.
//
//The whole log is read once into an immutable Lines buffer. The header extractors
//(ExtractElements, ExtractLattice, ExtractParameters, ExtractKPoints) each scan it
//independently. ExtractIterations then walks the ionic steps with a forward-only state
//machine, carrying the cell and the positions forward when a step does not print them,
//and derives the force statistics of every step. ExtractModes reads the normal modes when
//IBRION=5. Parse and ParseFile run the whole pipeline.
//
//Fatal problems are reported as *Error, with the kind (FormatMismatch or CountMismatch),
//the index and the content of the offending line. They can be tested with errors.Is
//against ErrFormatMismatch and ErrCountMismatch.
package outcar
