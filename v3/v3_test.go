/*
 * v3_test.go, part of govasp.
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
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	_, err = NewMatrix([]float64{1, 2})
	e, ok := err.(*Error)
	if !ok || !e.Critical() {
		Te.Fatalf("a slice of 2 elements should not make a Matrix, got %v", err)
	}
	e.Decorate("TestNewMatrix")
	if d := e.Decorate(""); len(d) != 2 || d[1] != "TestNewMatrix" {
		Te.Errorf("the decoration should accumulate, got %v", d)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("changes in a view should be reflected in the matrix: %v", A)
	}
	fmt.Println("View\n", A, "\n", View)
}

func TestVecNorms(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		Te.Error(err)
	}
	norms := A.VecNorms(nil)
	want := []float64{math.Sqrt(14), math.Sqrt(77), math.Sqrt(194)}
	for i, v := range want {
		if math.Abs(norms[i]-v) > 1e-12 {
			Te.Errorf("norm %d: got %f, want %f", i, norms[i], v)
		}
	}
}

func TestMulElemVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	M, _ := NewMatrix([]float64{1, 0, 1, 0, 1, 0})
	F := Zeros(2)
	F.MulElemVecs(A, M)
	if F.Vec(0) != [3]float64{1, 0, 3} || F.Vec(1) != [3]float64{0, 5, 0} {
		Te.Errorf("wrong masked matrix %v", F)
	}
	if A.At(0, 1) != 2 {
		Te.Error("MulElemVecs modified its argument")
	}
}

func TestUnitAndClone(Te *testing.T) {
	A, _ := NewMatrix([]float64{3, 0, 0, 0, 4, 0})
	B := A.Clone()
	B.Unit(B)
	if math.Abs(B.At(0, 0)-0.6) > 1e-12 || math.Abs(B.At(1, 1)-0.8) > 1e-12 {
		Te.Errorf("wrong unit matrix %v", B)
	}
	if A.At(0, 0) != 3 {
		Te.Error("Clone shares data with the original")
	}
	Z := Zeros(2)
	Z.Unit(Z)
	if Z.At(0, 0) != 0 {
		Te.Error("a zero matrix should stay zero")
	}
}

func TestMulAliased(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 2, 0, 0, 0, 3})
	A.Mul(A, A)
	if A.At(2, 2) != 9 {
		Te.Errorf("aliased Mul failed: %v", A)
	}
}
