/*
 * param.go, part of govasp.
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

import "fmt"

// Param is a value echoed in the OUTCAR that may be absent. An unset Param has Set==false
// and the zero value of T, which should not be used as a default.
type Param[T int | float64 | bool] struct {
	Val T
	Set bool
}

func setParam[T int | float64 | bool](v T) Param[T] {
	return Param[T]{Val: v, Set: true}
}

// Get returns the value and whether it was set.
func (P Param[T]) Get() (T, bool) {
	return P.Val, P.Set
}

// Or returns the value if set, def otherwise.
func (P Param[T]) Or(def T) T {
	if !P.Set {
		return def
	}
	return P.Val
}

func (P Param[T]) String() string {
	if !P.Set {
		return "unset"
	}
	return fmt.Sprint(P.Val)
}
