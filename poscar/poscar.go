/*
 * poscar.go, part of govasp.
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

package poscar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/govasp/v3"
	"gonum.org/v1/gonum/mat"
)

// ErrElementMismatch is returned (wrapped) by CheckElements.
var ErrElementMismatch = errors.New("poscar: elements don't match the POTCAR")

// Poscar is a structure file.
type Poscar struct {
	Comment   string
	Scale     float64       //As given in the file. Negative values are the cell volume.
	Lattice   [3][3]float64 //Already multiplied by the scale.
	Symbols   []string      //nil if the file has no element line.
	Counts    []int
	Selective bool
	Free      [][3]bool //Selective dynamics flags; nil if Selective is false.
	Direct    bool
	Coords    *v3.Matrix //In the mode given by Direct.
}

// NIons returns the number of atoms.
func (P *Poscar) NIons() int {
	n := 0
	for _, v := range P.Counts {
		n += v
	}
	return n
}

// Mask returns a NIonsx3 matrix with 1 for each free coordinate and 0 for each fixed one,
// or nil if the file has no selective dynamics.
func (P *Poscar) Mask() *v3.Matrix {
	if !P.Selective {
		return nil
	}
	m := v3.Zeros(len(P.Free))
	for i, f := range P.Free {
		for j, free := range f {
			if free {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

// Cartesian returns the coordinates in A, converting them if the file is in direct mode.
func (P *Poscar) Cartesian() *v3.Matrix {
	if !P.Direct {
		return P.Coords.Clone()
	}
	cart := v3.Zeros(P.Coords.NVecs())
	cart.Mul(P.Coords, latticeDense(P.Lattice))
	return cart
}

func latticeDense(l [3][3]float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{l[0][0], l[0][1], l[0][2], l[1][0], l[1][1], l[1][2], l[2][0], l[2][1], l[2][2]})
}

type lineReader struct {
	s *bufio.Scanner
	n int
}

func (r *lineReader) next(what string) (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("poscar: file ends before the %s (line %d)", what, r.n+1)
	}
	r.n++
	return r.s.Text(), nil
}

func (r *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("poscar: line %d: %s", r.n, fmt.Sprintf(format, args...))
}

// Read reads a structure from r.
func Read(r io.Reader) (*Poscar, error) {
	P := new(Poscar)
	lr := &lineReader{s: bufio.NewScanner(r)}
	var err error
	if P.Comment, err = lr.next("comment"); err != nil {
		return nil, err
	}
	P.Comment = strings.TrimSpace(P.Comment)
	line, err := lr.next("scale")
	if err != nil {
		return nil, err
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil, lr.errorf("no scale")
	}
	if P.Scale, err = strconv.ParseFloat(f[0], 64); err != nil || P.Scale == 0 {
		return nil, lr.errorf("invalid scale %q", f[0])
	}
	for i := 0; i < 3; i++ {
		if line, err = lr.next("lattice"); err != nil {
			return nil, err
		}
		f = strings.Fields(line)
		if len(f) < 3 {
			return nil, lr.errorf("invalid cell vector %q", line)
		}
		for j := 0; j < 3; j++ {
			if P.Lattice[i][j], err = strconv.ParseFloat(f[j], 64); err != nil {
				return nil, lr.errorf("invalid cell vector %q", line)
			}
		}
	}
	scale := P.Scale
	if scale < 0 {
		vol := math.Abs(mat.Det(latticeDense(P.Lattice)))
		scale = math.Cbrt(-scale / vol)
	}
	for i := range P.Lattice {
		for j := range P.Lattice[i] {
			P.Lattice[i][j] *= scale
		}
	}
	if line, err = lr.next("element tags"); err != nil {
		return nil, err
	}
	f = strings.Fields(line)
	if len(f) == 0 {
		return nil, lr.errorf("empty element line")
	}
	if _, err := strconv.Atoi(f[0]); err != nil {
		//VASP 5 element line, the counts follow.
		P.Symbols = f
		if line, err = lr.next("atom counts"); err != nil {
			return nil, err
		}
		f = strings.Fields(line)
	}
	for _, v := range f {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, lr.errorf("invalid atom count %q", v)
		}
		P.Counts = append(P.Counts, n)
	}
	if P.Symbols != nil && len(P.Symbols) != len(P.Counts) {
		return nil, lr.errorf("%d element tags but %d atom counts", len(P.Symbols), len(P.Counts))
	}
	if line, err = lr.next("coordinate mode"); err != nil {
		return nil, err
	}
	if m := firstLetter(line); m == 's' {
		P.Selective = true
		if line, err = lr.next("coordinate mode"); err != nil {
			return nil, err
		}
	}
	switch firstLetter(line) {
	case 'd':
		P.Direct = true
	case 'c', 'k':
		P.Direct = false
	default:
		return nil, lr.errorf("invalid coordinate mode %q (neither Direct nor Cartesian)", line)
	}
	n := P.NIons()
	data := make([]float64, 0, 3*n)
	if P.Selective {
		P.Free = make([][3]bool, n)
	}
	for i := 0; i < n; i++ {
		if line, err = lr.next("coordinates"); err != nil {
			return nil, err
		}
		f = strings.Fields(line)
		if len(f) < 3 || (P.Selective && len(f) < 6) {
			return nil, lr.errorf("too few fields for atom %d: %q", i+1, line)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(f[j], 64)
			if err != nil {
				return nil, lr.errorf("invalid coordinate %q", f[j])
			}
			data = append(data, v)
		}
		if !P.Selective {
			continue
		}
		for j := 0; j < 3; j++ {
			switch strings.ToUpper(f[3+j]) {
			case "T":
				P.Free[i][j] = true
			case "F":
			default:
				return nil, lr.errorf("invalid selective dynamics flag %q", f[3+j])
			}
		}
	}
	if !P.Direct && scale != 1 {
		for i := range data {
			data[i] *= scale
		}
	}
	if P.Coords, err = v3.NewMatrix(data); err != nil {
		return nil, err
	}
	return P, nil
}

func firstLetter(s string) byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return c
}

// ReadFile reads the structure file name.
func ReadFile(name string) (*Poscar, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	P, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return P, nil
}

// Write writes P to w, with a scale of 1. Selective dynamics flags are written if P has them.
func Write(w io.Writer, P *Poscar) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "%s\n%19.14f\n", P.Comment, 1.0)
	for _, r := range P.Lattice {
		fmt.Fprintf(b, " %22.16f%22.16f%22.16f\n", r[0], r[1], r[2])
	}
	if P.Symbols != nil {
		for _, s := range P.Symbols {
			fmt.Fprintf(b, "%5s", s)
		}
		b.WriteString("\n")
	}
	for _, c := range P.Counts {
		fmt.Fprintf(b, "%6d", c)
	}
	b.WriteString("\n")
	if P.Selective {
		b.WriteString("Selective dynamics\n")
	}
	if P.Direct {
		b.WriteString("Direct\n")
	} else {
		b.WriteString("Cartesian\n")
	}
	tf := map[bool]string{true: "T", false: "F"}
	for i := 0; i < P.Coords.NVecs(); i++ {
		v := P.Coords.Vec(i)
		fmt.Fprintf(b, "%20.16f%20.16f%20.16f", v[0], v[1], v[2])
		if P.Selective && i < len(P.Free) {
			fr := P.Free[i]
			fmt.Fprintf(b, "   %s   %s   %s", tf[fr[0]], tf[fr[1]], tf[fr[2]])
		}
		b.WriteString("\n")
	}
	return b.Flush()
}

// CheckElements compares, ignoring case, the element tags of P with the symbols of
// the pseudopotentials (as read from the OUTCAR or the POTCAR).
func CheckElements(P *Poscar, potSymbols []string) error {
	if P.Symbols == nil {
		return fmt.Errorf("%w: the structure has no element tags", ErrElementMismatch)
	}
	if len(P.Symbols) != len(potSymbols) {
		return fmt.Errorf("%w: %d element tags but %d pseudopotentials", ErrElementMismatch, len(P.Symbols), len(potSymbols))
	}
	for i, s := range P.Symbols {
		//POTCAR titles can carry suffixes, as in "Mn_pv".
		pot, _, _ := strings.Cut(potSymbols[i], "_")
		if !strings.EqualFold(s, pot) {
			return fmt.Errorf("%w: element %d is %s in the structure but %s in the pseudopotentials", ErrElementMismatch, i+1, s, potSymbols[i])
		}
	}
	return nil
}
