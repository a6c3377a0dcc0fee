/*
 * trajectory.go, part of govasp.
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

package export

import (
	"fmt"

	vasp "github.com/rmera/govasp"
	v3 "github.com/rmera/govasp/v3"
)

// Trajectory copies every frame of r, with its box, to w. It returns the number of frames
// copied. w is not closed.
func Trajectory(r vasp.Traj, w vasp.TrajWriter) (int, error) {
	if r.Len() != w.Len() {
		return 0, fmt.Errorf("export: the trajectory has %d atoms but the writer expects %d", r.Len(), w.Len())
	}
	coords := v3.Zeros(r.Len())
	box := make([]float64, 9)
	n := 0
	for {
		err := r.Next(coords, box)
		if err != nil {
			if _, ok := err.(vasp.LastFrameError); ok {
				return n, nil
			}
			return n, err
		}
		if err := w.WNext(coords, box); err != nil {
			return n, err
		}
		n++
	}
}
