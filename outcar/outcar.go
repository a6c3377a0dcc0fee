/*
 * outcar.go, part of govasp.
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

// Outcar contains everything read from an OUTCAR file.
type Outcar struct {
	FileName string
	Header
	Steps []Iteration
	Modes []Mode //nil unless IBRION=5
}

// ExtractHeader reads the element table, the initial lattice, the parameters and
// the k-points. It fails with CountMismatch if NIONS is given and is not the
// total number of atoms in the element table.
func ExtractHeader(L Lines) (*Header, error) {
	var err error
	H := new(Header)
	if H.Elements, err = ExtractElements(L); err != nil {
		return nil, errDecorate(err, "ExtractHeader")
	}
	if H.Lattice, err = ExtractLattice(L); err != nil {
		return nil, errDecorate(err, "ExtractHeader")
	}
	if H.Params, err = ExtractParameters(L); err != nil {
		return nil, errDecorate(err, "ExtractHeader")
	}
	if n, ok := H.Params.NIONS.Get(); ok && n != H.Elements.NIons() {
		i, _ := L.FindNext(0, Contains(anchorIonsPerType))
		return nil, newError(CountMismatch, L, i, "ExtractHeader", "NIONS is %d, but there are %d ions per type", n, H.Elements.NIons())
	}
	if H.KPoints, err = ExtractKPoints(L); err != nil {
		return nil, errDecorate(err, "ExtractHeader")
	}
	return H, nil
}

// Parse runs all the extractors on L. At most one IterationOptions is used.
func Parse(L Lines, opts ...IterationOptions) (*Outcar, error) {
	var opt IterationOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	H, err := ExtractHeader(L)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	O := &Outcar{Header: *H}
	if O.Steps, err = ExtractIterations(L, H, opt); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	if O.Modes, err = ExtractModes(L, H.Params, H.NIons()); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	return O, nil
}

// ParseFile reads and parses the (maybe compressed) OUTCAR file name.
func ParseFile(name string, opts ...IterationOptions) (*Outcar, error) {
	L, err := ReadFile(name)
	if err != nil {
		return nil, err
	}
	O, err := Parse(L, opts...)
	if err != nil {
		return nil, errDecorate(err, "ParseFile", name)
	}
	O.FileName = name
	return O, nil
}

// Final returns the last ionic step, or nil if there are none.
func (O *Outcar) Final() *Iteration {
	if len(O.Steps) == 0 {
		return nil
	}
	return &O.Steps[len(O.Steps)-1]
}
