/*
 * summary.go, part of govasp.
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
	"io"

	"github.com/rmera/govasp/outcar"
	"gopkg.in/yaml.v3"
)

// param is the YAML rendering of an outcar.Param: the value, or null if unset.
func param[T int | float64 | bool](p outcar.Param[T]) *T {
	if v, ok := p.Get(); ok {
		return &v
	}
	return nil
}

type summaryParams struct {
	EDIFF         *float64 `yaml:"ediff"`
	EDIFFG        *float64 `yaml:"ediffg"`
	ENCUT         *float64 `yaml:"encut"`
	IBRION        *int     `yaml:"ibrion"`
	ISIF          *int     `yaml:"isif"`
	ISPIN         *int     `yaml:"ispin"`
	LNONCOLLINEAR *bool    `yaml:"lnoncollinear"`
	LORBIT        *int     `yaml:"lorbit"`
	LSORBIT       *bool    `yaml:"lsorbit"`
	NBANDS        *int     `yaml:"nbands"`
	NELMIN        *int     `yaml:"nelmin"`
	NIONS         *int     `yaml:"nions"`
	NSW           *int     `yaml:"nsw"`
	NKPTS         *int     `yaml:"nkpts"`
}

// SummaryStep is the YAML record of one step.
type SummaryStep struct {
	Step         int      `yaml:"step"`
	Energy       float64  `yaml:"energy"`
	EnergySigma0 float64  `yaml:"energy_sigma0"`
	DeltaE       float64  `yaml:"delta_e"`
	NSCF         int      `yaml:"nscf"`
	MaxForce     float64  `yaml:"max_force"`
	AverageForce float64  `yaml:"average_force"`
	MaxAtom      int      `yaml:"max_atom"` //1-based
	MaxElement   string   `yaml:"max_element"`
	MaxAxis      string   `yaml:"max_axis"`
	CPUTime      float64  `yaml:"cpu_time"`
	Volume       float64  `yaml:"volume"`
	Magmom       *float64 `yaml:"magmom,omitempty"`
	Carried      []string `yaml:"carried,omitempty"`
}

// SummaryMode is the YAML record of a normal mode.
type SummaryMode struct {
	CM        float64 `yaml:"cm-1"`
	THz       float64 `yaml:"thz"`
	MeV       float64 `yaml:"mev"`
	Imaginary bool    `yaml:"imaginary,omitempty"`
}

// SummaryDoc is the document written by Summary.
type SummaryDoc struct {
	File       string        `yaml:"file,omitempty"`
	Elements   []string      `yaml:"elements"`
	Counts     []int         `yaml:"counts"`
	Lattice    [][]float64   `yaml:"lattice"`
	Parameters summaryParams `yaml:"parameters"`
	KPoints    int           `yaml:"kpoints"`
	Steps      []SummaryStep `yaml:"steps"`
	Modes      []SummaryMode `yaml:"modes,omitempty"`
}

// NewSummary builds the summary document of O.
func NewSummary(O *outcar.Outcar) *SummaryDoc {
	p := O.Params
	S := &SummaryDoc{
		File:     O.FileName,
		Elements: O.Elements.Symbols,
		Counts:   O.Elements.Counts,
		Parameters: summaryParams{
			EDIFF: param(p.EDIFF), EDIFFG: param(p.EDIFFG), ENCUT: param(p.ENCUT),
			IBRION: param(p.IBRION), ISIF: param(p.ISIF), ISPIN: param(p.ISPIN),
			LNONCOLLINEAR: param(p.LNONCOLLINEAR), LORBIT: param(p.LORBIT), LSORBIT: param(p.LSORBIT),
			NBANDS: param(p.NBANDS), NELMIN: param(p.NELMIN), NIONS: param(p.NIONS),
			NSW: param(p.NSW), NKPTS: param(p.NKPTS),
		},
	}
	for _, r := range O.Lattice {
		S.Lattice = append(S.Lattice, []float64{r[0], r[1], r[2]})
	}
	if O.KPoints != nil {
		S.KPoints = O.KPoints.NVecs()
	}
	for i := range O.Steps {
		st := &O.Steps[i]
		s := SummaryStep{
			Step:         st.Index + 1,
			Energy:       st.TotalEnergy,
			EnergySigma0: st.TotalEnergySigma0,
			DeltaE:       st.DeltaE,
			NSCF:         st.NSCF,
			MaxForce:     st.MaxForce,
			AverageForce: st.AverageForce,
			MaxAtom:      st.MaxIndex + 1,
			MaxElement:   st.MaxSymbol,
			MaxAxis:      string(st.MaxAxis),
			CPUTime:      st.CPUTime,
			Volume:       st.Volume,
			Magmom:       param(st.Magmom),
		}
		if st.LatticeCarried {
			s.Carried = append(s.Carried, "lattice")
		}
		if st.PositionsCarried {
			s.Carried = append(s.Carried, "positions")
		}
		S.Steps = append(S.Steps, s)
	}
	for _, m := range O.Modes {
		S.Modes = append(S.Modes, SummaryMode{CM: m.CM, THz: m.THz, MeV: m.MeV, Imaginary: m.Imaginary})
	}
	return S
}

// Summary writes a YAML document with the header information and the scalar values of each step of O.
func Summary(w io.Writer, O *outcar.Outcar) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSummary(O)); err != nil {
		return err
	}
	return enc.Close()
}
