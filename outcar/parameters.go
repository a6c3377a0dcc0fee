/*
 * parameters.go, part of govasp.
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
)

// Parameters contains the run-control values echoed in the OUTCAR header.
// A value not found in the file is left unset.
type Parameters struct {
	EDIFF         Param[float64]
	EDIFFG        Param[float64]
	ENCUT         Param[float64]
	IBRION        Param[int]
	ISIF          Param[int]
	ISPIN         Param[int]
	LNONCOLLINEAR Param[bool]
	LORBIT        Param[int]
	LSORBIT       Param[bool]
	NBANDS        Param[int]
	NELMIN        Param[int]
	NIONS         Param[int]
	NSW           Param[int]
	NKPTS         Param[int]
}

// SpinPolarized returns true if ISPIN is set to 2.
func (P *Parameters) SpinPolarized() bool {
	return P.ISPIN.Or(1) == 2
}

type paramRule struct {
	key   string
	apply func(P *Parameters, tok string) error
}

func floatRule(key string, field func(*Parameters) *Param[float64]) paramRule {
	return paramRule{key, func(P *Parameters, tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return err
		}
		*field(P) = setParam(v)
		return nil
	}}
}

func intRule(key string, field func(*Parameters) *Param[int]) paramRule {
	return paramRule{key, func(P *Parameters, tok string) error {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return err
		}
		*field(P) = setParam(v)
		return nil
	}}
}

func boolRule(key string, field func(*Parameters) *Param[bool]) paramRule {
	return paramRule{key, func(P *Parameters, tok string) error {
		v, err := parseBool(tok)
		if err != nil {
			return err
		}
		*field(P) = setParam(v)
		return nil
	}}
}

var parameterRules = []paramRule{
	floatRule("EDIFF", func(P *Parameters) *Param[float64] { return &P.EDIFF }),
	floatRule("EDIFFG", func(P *Parameters) *Param[float64] { return &P.EDIFFG }),
	floatRule("ENCUT", func(P *Parameters) *Param[float64] { return &P.ENCUT }),
	intRule("IBRION", func(P *Parameters) *Param[int] { return &P.IBRION }),
	intRule("ISIF", func(P *Parameters) *Param[int] { return &P.ISIF }),
	intRule("ISPIN", func(P *Parameters) *Param[int] { return &P.ISPIN }),
	boolRule("LNONCOLLINEAR", func(P *Parameters) *Param[bool] { return &P.LNONCOLLINEAR }),
	intRule("LORBIT", func(P *Parameters) *Param[int] { return &P.LORBIT }),
	boolRule("LSORBIT", func(P *Parameters) *Param[bool] { return &P.LSORBIT }),
	intRule("NBANDS", func(P *Parameters) *Param[int] { return &P.NBANDS }),
	intRule("NELMIN", func(P *Parameters) *Param[int] { return &P.NELMIN }),
	intRule("NIONS", func(P *Parameters) *Param[int] { return &P.NIONS }),
	intRule("NSW", func(P *Parameters) *Param[int] { return &P.NSW }),
	intRule("NKPTS", func(P *Parameters) *Param[int] { return &P.NKPTS }),
}

// ExtractParameters reads the parameters from the region that starts at the
// " Dimension of arrays:" line and ends at the first electronic iteration (or at the end of the file).
// The first echo of each key wins. A missing key is not an error.
func ExtractParameters(L Lines) (Parameters, error) {
	var P Parameters
	start, ok := L.FindNext(0, HasPrefix(anchorDimensions))
	if !ok {
		return P, newError(FormatMismatch, L, -1, "ExtractParameters", "no %q line", anchorDimensions)
	}
	end, ok := L.FindNext(start, isBanner)
	if !ok {
		end = len(L)
	}
	done := make([]bool, len(parameterRules))
	for i := start; i < end; i++ {
		for j, r := range parameterRules {
			if done[j] {
				continue
			}
			tok, ok := valueAfter(L[i], r.key)
			if !ok {
				continue
			}
			if err := r.apply(&P, tok); err != nil {
				return P, newError(FormatMismatch, L, i, "ExtractParameters", "bad value for %s: %s", r.key, err)
			}
			done[j] = true
		}
	}
	return P, nil
}
