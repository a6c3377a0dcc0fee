/*
 * traj.go, part of govasp.
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
	vasp "github.com/rmera/govasp"
	v3 "github.com/rmera/govasp/v3"
)

var (
	_ vasp.Traj           = (*Traj)(nil)
	_ vasp.TrajError      = (*Error)(nil)
	_ vasp.LastFrameError = (*lastFrameError)(nil)
)

// Traj reads the positions of the ionic steps of an Outcar, one at a time.
// It implements vasp.Traj.
type Traj struct {
	o    *Outcar
	next int
}

// NewTraj returns a trajectory over the steps of O. Nothing is copied.
func NewTraj(O *Outcar) *Traj {
	return &Traj{o: O}
}

// Readable returns true if there are steps left to read.
func (T *Traj) Readable() bool {
	return T.next < len(T.o.Steps)
}

// Len returns the number of atoms per frame.
func (T *Traj) Len() int {
	return T.o.NIons()
}

// Next copies the positions of the next step into output. If output is nil, the step is skipped.
// If a box slice is given, the 9 components of the lattice of the step are copied there.
// After the last step, it returns a vasp.LastFrameError.
func (T *Traj) Next(output *v3.Matrix, box ...[]float64) error {
	if !T.Readable() {
		return newlastFrameError(T.o.FileName, "Next")
	}
	it := &T.o.Steps[T.next]
	T.next++
	if output == nil {
		return nil
	}
	if output.NVecs() != it.Positions.NVecs() {
		return &Error{message: "output matrix has the wrong number of atoms", filename: T.o.FileName, kind: CountMismatch, line: -1, deco: []string{"Next"}, critical: true}
	}
	output.Copy(it.Positions)
	if len(box) > 0 && len(box[0]) >= 9 {
		copy(box[0], it.Lattice.Flat())
	}
	return nil
}
