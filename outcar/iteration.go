/*
 * iteration.go, part of govasp.
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
	"log"
	"strconv"
	"strings"

	v3 "github.com/rmera/govasp/v3"
)

// Iteration is one ionic step. It is not modified after ExtractIterations returns it.
type Iteration struct {
	Index             int     //0-based, equal to the position of the step in the sequence.
	NSCF              int     //number of electronic (SCF) iterations.
	TotalEnergy       float64 //"energy without entropy", eV.
	TotalEnergySigma0 float64 //"energy(sigma->0)", eV.
	CPUTime           float64 //seconds, from the LOOP+ line.
	Magmom            Param[float64]
	Volume            float64 //A^3
	Lattice           Lattice
	Positions         *v3.Matrix //cartesian, A
	Forces            *v3.Matrix //eV/A
	ForceStats
	DeltaE           float64 //TotalEnergy minus that of the previous step. For the first step, TotalEnergy.
	LatticeCarried   bool    //the step printed no cell, so it was taken from the previous one.
	PositionsCarried bool    //the step printed no positions, so they were taken from the previous one.
}

// Energy returns the sigma->0 energy if sigma0 is true, the energy without entropy otherwise.
func (I *Iteration) Energy(sigma0 bool) float64 {
	if sigma0 {
		return I.TotalEnergySigma0
	}
	return I.TotalEnergy
}

// Header is the fixed information from the beginning of the OUTCAR.
type Header struct {
	Elements *ElementTable
	Lattice  Lattice //The initial lattice.
	Params   Parameters
	KPoints  *v3.Matrix
}

// NIons returns NIONS if it was read, and the sum of the atoms of all elements otherwise.
func (H *Header) NIons() int {
	if n, ok := H.Params.NIONS.Get(); ok {
		return n
	}
	return H.Elements.NIons()
}

// IterationOptions modify the extraction of ionic steps. The zero value is the default.
type IterationOptions struct {
	//Selective dynamics multipliers (1 or 0 per component), NIONSx3. If not nil,
	//the force statistics are obtained from the forces multiplied by the mask.
	//The raw forces are kept.
	Mask *v3.Matrix
	//If true, a last block with no LOOP+ line (as in a killed run) is dropped,
	//instead of causing an error.
	AllowTruncated bool
}

//The sections of an ionic step, in the order VASP prints them. The LOOP+ line closes the step.
type scanState int

const (
	scfAccumulation scanState = iota
	latticeSection
	positionForceSection
	energySection
)

func (s scanState) String() string {
	return [...]string{"SCF", "VOLUME and BASIS", "POSITION", "energy"}[s]
}

//the last known cell, positions and energy, threaded from one step to the next.
type carry struct {
	lattice   Lattice
	volume    float64
	positions *v3.Matrix
	forces    *v3.Matrix
	energy    float64
}

type blockBounds struct {
	start, end int //both inclusive
}

// ExtractIterations returns the ionic steps in the OUTCAR, with their force statistics. H must
// contain at least the element table, the initial lattice and the parameters.
func ExtractIterations(L Lines, H *Header, opts IterationOptions) ([]Iteration, error) {
	nions := H.NIons()
	if nions <= 0 {
		return nil, newError(FormatMismatch, L, -1, "ExtractIterations", "no ions in the system")
	}
	if opts.Mask != nil && opts.Mask.NVecs() != nions {
		return nil, newError(CountMismatch, L, -1, "ExtractIterations", "selective dynamics mask for %d atoms, but NIONS is %d", opts.Mask.NVecs(), nions)
	}
	spin := H.Params.SpinPolarized()
	acc := carry{lattice: H.Lattice, volume: H.Lattice.Volume()}
	steps := make([]Iteration, 0, max(0, H.Params.NSW.Or(0))+1)
	for cursor := 0; ; {
		b, found, truncated, err := nextBlock(L, cursor)
		if truncated && opts.AllowTruncated {
			log.Printf("outcar: dropping unfinished ionic step starting at line %d", b.start+1)
			break
		}
		if err != nil {
			return nil, errDecorate(err, "ExtractIterations")
		}
		if !found {
			break
		}
		it, next, err := buildIteration(L, b, acc, nions, spin)
		if err != nil {
			return nil, errDecorate(err, "ExtractIterations")
		}
		it.Index = len(steps)
		steps = append(steps, it)
		acc = next
		cursor = b.end + 1
	}
	if err := deriveMetrics(steps, H.Elements.PerAtom(), opts.Mask); err != nil {
		return nil, errDecorate(err, "ExtractIterations")
	}
	return steps, nil
}

// nextBlock finds the next ionic step starting from from. found is false if there are no more.
// truncated is true if a step starts but never ends.
func nextBlock(L Lines, from int) (b blockBounds, found, truncated bool, err error) {
	i, ok := L.FindNext(from, func(s string) bool { return isBanner(s) || isLoopPlus(s) })
	if !ok {
		return b, false, false, nil
	}
	b.start = i
	if isLoopPlus(L[i]) {
		return b, false, false, newError(FormatMismatch, L, i, "nextBlock", "LOOP+ line with no Iteration banner before it")
	}
	end, ok := L.FindNext(i+1, isLoopPlus)
	if !ok {
		return b, false, true, newError(FormatMismatch, L, i, "nextBlock", "ionic step with no LOOP+ line")
	}
	b.end = end
	return b, true, false, nil
}

// buildIteration reads the block b. acc holds the values to use for the sections
// the block lacks. It returns the new step and the carry for the following one.
func buildIteration(L Lines, b blockBounds, acc carry, nions int, spin bool) (Iteration, carry, error) {
	var it Iteration
	var latticeSeen, positionsSeen, energySeen bool
	state := scfAccumulation
	for i := b.start; i <= b.end; i++ {
		line := L[i]
		switch {
		case strings.HasPrefix(line, anchorElectrons):
			it.NSCF++
			if spin {
				m, err := lastFloat(line)
				if err != nil {
					log.Printf("outcar: can't read the magnetization in line %d: %s", i+1, err)
					continue
				}
				it.Magmom = setParam(m)
			}
		case !latticeSeen && strings.Contains(line, anchorVolumeBasis):
			lat, vol, err := parseVolumeBasis(L, i, b.end)
			if err != nil {
				return it, acc, err
			}
			it.Lattice, it.Volume = lat, vol
			latticeSeen = true
			state = max(state, latticeSection)
			i += latticeOffset + 2
		case !positionsSeen && strings.HasPrefix(line, anchorPosition):
			pos, forces, err := parsePositionForce(L, i, b.end, nions)
			if err != nil {
				return it, acc, err
			}
			it.Positions, it.Forces = pos, forces
			positionsSeen = true
			state = max(state, positionForceSection)
			i += 1 + nions
		case strings.Contains(line, anchorNoEntropy) && strings.Contains(line, anchorSigma0):
			e, e0, err := parseEnergies(line)
			if err != nil {
				return it, acc, newError(FormatMismatch, L, i, "buildIteration", "%s", err)
			}
			it.TotalEnergy, it.TotalEnergySigma0 = e, e0
			energySeen = true
			state = max(state, energySection)
		case i == b.end:
			t, err := parseCPUTime(line)
			if err != nil {
				return it, acc, newError(FormatMismatch, L, i, "buildIteration", "%s", err)
			}
			it.CPUTime = t
		}
	}
	if !energySeen {
		return it, acc, newError(FormatMismatch, L, b.start, "buildIteration", "ionic step ending in line %d has no %q line (furthest section read: %s)", b.end+1, anchorNoEntropy, state)
	}
	if spin && !it.Magmom.Set {
		log.Printf("outcar: spin-polarized ionic step starting in line %d has no magnetization", b.start+1)
	}
	if !latticeSeen {
		it.Lattice, it.Volume = acc.lattice, acc.volume
		it.LatticeCarried = true
	}
	if !positionsSeen {
		if acc.positions == nil {
			return it, acc, newError(FormatMismatch, L, b.start, "buildIteration", "the first ionic step has no %q section", strings.TrimSpace(anchorPosition))
		}
		it.Positions, it.Forces = acc.positions, acc.forces
		it.PositionsCarried = true
	}
	it.DeltaE = it.TotalEnergy - acc.energy
	next := carry{
		lattice:   it.Lattice,
		volume:    it.Volume,
		positions: it.Positions,
		forces:    it.Forces,
		energy:    it.TotalEnergy,
	}
	return it, next, nil
}

// parseVolumeBasis reads the volume and the 3 direct lattice vectors that follow a
// " VOLUME and BASIS" line at index i.
func parseVolumeBasis(L Lines, i, end int) (Lattice, float64, error) {
	var lat Lattice
	last := i + latticeOffset + 2
	if last >= end {
		return lat, 0, newError(FormatMismatch, L, i, "parseVolumeBasis", "incomplete %q section", strings.TrimSpace(anchorVolumeBasis))
	}
	vl := i + volumeOffset
	if !strings.Contains(L[vl], anchorVolumeOfCell) {
		return lat, 0, newError(FormatMismatch, L, vl, "parseVolumeBasis", "expected a %q line", anchorVolumeOfCell)
	}
	vol, err := lastFloat(L[vl])
	if err != nil {
		return lat, 0, newError(FormatMismatch, L, vl, "parseVolumeBasis", "bad volume: %s", err)
	}
	for k := 0; k < 3; k++ {
		j := i + latticeOffset + k
		row, err := floatsFrom(strings.Fields(L[j]), 3)
		if err != nil {
			//negative numbers can leave no space between columns.
			row, err = fixedFloats(L[j], 3, 13, 3)
		}
		if err != nil {
			return lat, 0, newError(FormatMismatch, L, j, "parseVolumeBasis", "bad lattice vector: %s", err)
		}
		copy(lat[k][:], row)
	}
	return lat, vol, nil
}

// parsePositionForce reads the nions lines of positions and forces after the " POSITION" line
// and the dashed line that follows it.
func parsePositionForce(L Lines, i, end, nions int) (*v3.Matrix, *v3.Matrix, error) {
	if i+1+nions >= end {
		return nil, nil, newError(FormatMismatch, L, i, "parsePositionForce", "incomplete %q section for %d atoms", strings.TrimSpace(anchorPosition), nions)
	}
	pos := v3.Zeros(nions)
	forces := v3.Zeros(nions)
	for k := 0; k < nions; k++ {
		j := i + 2 + k
		v, err := floatsFrom(strings.Fields(L[j]), 6)
		if err != nil {
			return nil, nil, newError(FormatMismatch, L, j, "parsePositionForce", "bad position/force line: %s", err)
		}
		pos.SetVec(k, [3]float64{v[0], v[1], v[2]})
		forces.SetVec(k, [3]float64{v[3], v[4], v[5]})
	}
	return pos, forces, nil
}

// parseEnergies reads both values from an "energy without entropy= X energy(sigma->0) = Y" line.
func parseEnergies(line string) (float64, float64, error) {
	left, right, ok := strings.Cut(line, anchorSigma0)
	if !ok {
		return 0, 0, fmt.Errorf("no %q", anchorSigma0)
	}
	e, err := numberAfterEqual(left)
	if err != nil {
		return 0, 0, fmt.Errorf("bad energy without entropy: %w", err)
	}
	e0, err := numberAfterEqual(right)
	if err != nil {
		return 0, 0, fmt.Errorf("bad sigma->0 energy: %w", err)
	}
	return e, e0, nil
}

func numberAfterEqual(s string) (float64, error) {
	idx := strings.LastIndex(s, "=")
	if idx < 0 {
		return 0, fmt.Errorf("no '='")
	}
	f := strings.Fields(s[idx+1:])
	if len(f) == 0 {
		return 0, fmt.Errorf("no value after '='")
	}
	return strconv.ParseFloat(f[0], 64)
}

// parseCPUTime reads the value after "cpu time" in a LOOP+ line. Large values can be
// written with no space after "time".
func parseCPUTime(line string) (float64, error) {
	f := strings.Fields(line)
	for i := 0; i < len(f)-1; i++ {
		if !strings.EqualFold(f[i], "cpu") || !strings.HasPrefix(strings.ToLower(f[i+1]), "time") {
			continue
		}
		tok := f[i+1][len("time"):]
		if tok == "" {
			if i+2 >= len(f) {
				break
			}
			tok = f[i+2]
		}
		return strconv.ParseFloat(strings.TrimRight(tok, ":"), 64)
	}
	return 0, fmt.Errorf("no cpu time")
}
