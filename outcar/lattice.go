/*
 * lattice.go, part of govasp.
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
	"math"
	"strconv"
	"strings"

	v3 "github.com/rmera/govasp/v3"
	"gonum.org/v1/gonum/mat"
)

// Lattice contains the three real-space cell vectors, as rows, in A.
type Lattice [3][3]float64

// Dense returns the lattice as a gonum 3x3 matrix.
func (L Lattice) Dense() *mat.Dense {
	return mat.NewDense(3, 3, L.Flat())
}

// Flat returns the 9 components of the lattice, row by row.
func (L Lattice) Flat() []float64 {
	ret := make([]float64, 0, 9)
	for _, r := range L {
		ret = append(ret, r[:]...)
	}
	return ret
}

// Volume returns the cell volume as the absolute value of the determinant.
func (L Lattice) Volume() float64 {
	return math.Abs(mat.Det(L.Dense()))
}

// Inverse returns the inverse of the lattice matrix.
func (L Lattice) Inverse() (*mat.Dense, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L.Dense()); err != nil {
		return nil, fmt.Errorf("outcar: singular lattice: %w", err)
	}
	return inv, nil
}

// ToFractional returns the fractional (direct) coordinates corresponding to the cartesian
// coordinates in cart.
func (L Lattice) ToFractional(cart *v3.Matrix) (*v3.Matrix, error) {
	inv, err := L.Inverse()
	if err != nil {
		return nil, err
	}
	frac := v3.Zeros(cart.NVecs())
	frac.Mul(cart, inv)
	return frac, nil
}

// ToCartesian returns the cartesian coordinates corresponding to fractional coordinates.
func (L Lattice) ToCartesian(frac *v3.Matrix) *v3.Matrix {
	cart := v3.Zeros(frac.NVecs())
	cart.Mul(frac, L.Dense())
	return cart
}

// ExtractLattice reads the initial lattice from the " A1 = ( x, y, z)" lines (the three must be
// consecutive).
func ExtractLattice(L Lines) (Lattice, error) {
	var lat Lattice
	i, ok := L.FindNext(0, TrimmedPrefix(latticeAnchors[0]))
	if !ok {
		return lat, newError(FormatMismatch, L, -1, "ExtractLattice", "no %q line", latticeAnchors[0])
	}
	for k := 0; k < 3; k++ {
		j := i + k
		if j >= len(L) || !strings.HasPrefix(trimLeft(L[j]), latticeAnchors[k]) {
			return lat, newError(FormatMismatch, L, j, "ExtractLattice", "expected a %q line", latticeAnchors[k])
		}
		row, err := parseBasisVector(L[j])
		if err != nil {
			return lat, newError(FormatMismatch, L, j, "ExtractLattice", "%s", err)
		}
		lat[k] = row
	}
	return lat, nil
}

// parseBasisVector parses "A1 = ( x, y, z)"
func parseBasisVector(line string) ([3]float64, error) {
	var ret [3]float64
	_, in, ok := strings.Cut(line, "(")
	if !ok {
		return ret, fmt.Errorf("no '('")
	}
	in, _, ok = strings.Cut(in, ")")
	if !ok {
		return ret, fmt.Errorf("no ')'")
	}
	f := strings.Split(in, ",")
	if len(f) != 3 {
		return ret, fmt.Errorf("expected 3 components, got %d", len(f))
	}
	for i, v := range f {
		var err error
		ret[i], err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}
