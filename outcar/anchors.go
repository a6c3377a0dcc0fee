/*
 * anchors.go, part of govasp.
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

//Fixed strings in the OUTCAR that are used to find things. They have been stable
//for many VASP versions, and where they have not, both variants are listed.
const (
	anchorIonsPerType   = "ions per type ="
	anchorVRHFIN        = "   VRHFIN ="
	anchorDimensions    = " Dimension of arrays:"
	anchorNKPTS         = "NKPTS"
	anchorKPointsRecip  = " k-points in reciprocal lattice"
	anchorIteration     = "--------------------------------------- Iteration"   //VASP 6
	anchorIterationWide = "----------------------------------------- Iteration" //VASP 5
	anchorLoopPlus      = "LOOP+"
	anchorElectrons     = " number of electron"
	anchorVolumeBasis   = " VOLUME and BASIS"
	anchorVolumeOfCell  = "volume of cell"
	anchorPosition      = " POSITION"
	anchorNoEntropy     = "without entropy"
	anchorSigma0        = "energy(sigma->0)"
	anchorDOF           = " Degrees of freedom DOF"
	anchorEigenvectors  = " Eigenvectors and eigenvalues of the dynamical matrix"
)

//The basis vector echo lines, " A1 = (...)". VASP has printed them with one or
//more leading spaces, so they are matched after trimming.
var latticeAnchors = [3]string{"A1 = (", "A2 = (", "A3 = ("}

//Offsets from the " VOLUME and BASIS" line
const (
	volumeOffset  = 3
	latticeOffset = 5
)

// isBanner returns true if line opens an electronic iteration.
func isBanner(line string) bool {
	return hasPrefix(line, anchorIteration) || hasPrefix(line, anchorIterationWide)
}

// isLoopPlus returns true for the line that closes an ionic step.
func isLoopPlus(line string) bool {
	return hasPrefix(trimLeft(line), anchorLoopPlus)
}
