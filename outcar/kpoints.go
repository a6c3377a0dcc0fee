/*
 * kpoints.go, part of govasp.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/govasp/v3"
)

// ExtractKPoints returns the k-points, in reciprocal lattice coordinates, as an NKPTSx3 matrix.
// The number of k-points is taken from the first NKPTS echo in the file.
func ExtractKPoints(L Lines) (*v3.Matrix, error) {
	ni, ok := L.FindNext(0, isNKPTSLine)
	if !ok {
		return nil, newError(FormatMismatch, L, -1, "ExtractKPoints", "no NKPTS line")
	}
	tok, _ := valueAfter(L[ni], anchorNKPTS)
	nkpts, err := strconv.Atoi(tok)
	if err != nil || nkpts <= 0 {
		return nil, newError(FormatMismatch, L, ni, "ExtractKPoints", "bad NKPTS value %q", tok)
	}
	mi, ok := L.FindNext(ni, HasPrefix(anchorKPointsRecip))
	if !ok {
		return nil, newError(FormatMismatch, L, -1, "ExtractKPoints", "no %q line", anchorKPointsRecip)
	}
	data := make([]float64, 0, 3*nkpts)
	for k := 0; k < nkpts; k++ {
		i := mi + 1 + k
		if i >= len(L) {
			return nil, newError(CountMismatch, L, len(L)-1, "ExtractKPoints", "%d k-points declared, the file ends after %d", nkpts, k)
		}
		row, err := floatsFrom(strings.Fields(L[i]), 3)
		if err != nil {
			return nil, newError(CountMismatch, L, i, "ExtractKPoints", "%d k-points declared, found %d", nkpts, k)
		}
		data = append(data, row...)
	}
	K, err := v3.NewMatrix(data)
	if err != nil {
		return nil, newError(FormatMismatch, L, mi, "ExtractKPoints", "%s", err)
	}
	return K, nil
}

func isNKPTSLine(s string) bool {
	_, ok := valueAfter(s, anchorNKPTS)
	return ok
}
