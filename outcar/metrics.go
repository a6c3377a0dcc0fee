/*
 * metrics.go, part of govasp.
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
	"runtime"

	v3 "github.com/rmera/govasp/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Two force magnitudes closer than this are considered equal.
const forceTolerance = 1e-5

// ForceStats are the statistics derived from the forces of one ionic step.
type ForceStats struct {
	Magnitudes   []float64 //norm of the force on each atom.
	AverageForce float64
	MaxForce     float64
	MaxIndex     int //0-based index of the first atom with the largest force.
	MaxSymbol    string
	MaxAxis      byte //'x', 'y' or 'z': the largest component of the force on MaxIndex.
}

// DeriveForceStats obtains the statistics for the forces, where symbols
// contains the element of each atom.
func DeriveForceStats(forces *v3.Matrix, symbols []string) (ForceStats, error) {
	var S ForceStats
	n := forces.NVecs()
	if n == 0 {
		return S, fmt.Errorf("outcar: DeriveForceStats: no forces")
	}
	if len(symbols) < n {
		return S, fmt.Errorf("outcar: DeriveForceStats: %d forces but only %d element symbols", n, len(symbols))
	}
	S.Magnitudes = forces.VecNorms(nil)
	S.AverageForce = stat.Mean(S.Magnitudes, nil)
	S.MaxForce = floats.Max(S.Magnitudes)
	for i, v := range S.Magnitudes {
		if S.MaxForce-v <= forceTolerance {
			S.MaxIndex = i
			break
		}
	}
	S.MaxSymbol = symbols[S.MaxIndex]
	S.MaxAxis = dominantAxis(forces.Vec(S.MaxIndex))
	return S, nil
}

// dominantAxis returns the axis of the first component of v whose absolute value is
// within forceTolerance of the largest absolute component.
func dominantAxis(v [3]float64) byte {
	largest := math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
	for k, c := range v {
		if largest-math.Abs(c) <= forceTolerance {
			return "xyz"[k]
		}
	}
	return 'x' //not reached unless v has NaNs.
}

// deriveMetrics fills the force statistics of every step. Each step depends only on its own
// forces, so they are processed concurrently, each goroutine writing only its step.
func deriveMetrics(steps []Iteration, symbols []string, mask *v3.Matrix) error {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range steps {
		it := &steps[i]
		g.Go(func() error {
			forces := it.Forces
			if mask != nil {
				forces = v3.Zeros(it.Forces.NVecs())
				forces.MulElemVecs(it.Forces, mask)
			}
			S, err := DeriveForceStats(forces, symbols)
			if err != nil {
				return fmt.Errorf("step %d: %w", it.Index, err)
			}
			it.ForceStats = S
			return nil
		})
	}
	return g.Wait()
}
