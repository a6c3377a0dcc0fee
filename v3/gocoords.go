/*
 * gocoords.go, part of govasp.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// VecNorms puts the euclidean norm of each vector of F in dst, which is
// allocated if nil, and returns it.
func (F *Matrix) VecNorms(dst []float64) []float64 {
	n := F.NVecs()
	if dst == nil {
		dst = make([]float64, n)
	}
	if len(dst) < n {
		panic(ErrNotEnoughElements)
	}
	for i := 0; i < n; i++ {
		dst[i] = floats.Norm(F.RawRowView(i), 2)
	}
	return dst[:n]
}

// MulElemVecs multiplies, element-wise, each element of A by the corresponding element of
// M, and puts the result in F.
func (F *Matrix) MulElemVecs(A, M *Matrix) {
	if A.NVecs() != M.NVecs() || F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	F.Dense.MulElem(A.Dense, M.Dense)
}

// Unit puts in F the matrix A normalized so the square root of the sum of the
// squares of all its elements is 1. A zero matrix is copied unchanged.
func (F *Matrix) Unit(A *Matrix) {
	norm := mat.Norm(A.Dense, 2)
	if F != A {
		F.Dense.Copy(A.Dense)
	}
	if norm == 0 {
		return
	}
	F.Dense.Scale(1/norm, F.Dense)
}

// String returns a neat string representation of a Matrix, one vector per line.
func (F *Matrix) String() string {
	if F == nil || F.Dense == nil {
		return "<nil>"
	}
	r := F.NVecs()
	lines := make([]string, 0, r+2)
	lines = append(lines, "[")
	for i := 0; i < r; i++ {
		v := F.RawRowView(i)
		lines = append(lines, fmt.Sprintf(" %12.6f %12.6f %12.6f", v[0], v[1], v[2]))
	}
	lines = append(lines, "]")
	return strings.Join(lines, "\n")
}
