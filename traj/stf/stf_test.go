/*
 * stf_test.go, part of govasp.
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

package stf

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	vasp "github.com/rmera/govasp"
	v3 "github.com/rmera/govasp/v3"
)

func frame(n int, shift float64) *v3.Matrix {
	m := v3.Zeros(n)
	for i := 0; i < n; i++ {
		m.SetVec(i, [3]float64{float64(i) + shift, -1.5 * float64(i), 0.333 + shift})
	}
	return m
}

// Writes and reads back 3 frames, for each of the compression formats.
func TestSTFWriteRead(Te *testing.T) {
	box := []float64{9.075, -9.075, 0, 9.075, 9.075, 0, 0, 0, 29.04}
	for _, ext := range []string{"stf", "stz", "stl", "str"} {
		name := filepath.Join(Te.TempDir(), "test."+ext)
		wtraj, err := NewWriter(name, 4, map[string]string{"prec": "3", "source": "OUTCAR"})
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			if i == 1 {
				err = wtraj.WNext(frame(4, float64(i)))
			} else {
				err = wtraj.WNext(frame(4, float64(i)), box)
			}
			if err != nil {
				Te.Fatal(err)
			}
		}
		if err := wtraj.Close(); err != nil {
			Te.Fatal(err)
		}
		rtraj, header, err := New(name)
		if err != nil {
			Te.Fatal(err)
		}
		if header["source"] != "OUTCAR" || header["prec"] != "3" {
			Te.Errorf("%s: bad header %v", ext, header)
		}
		mat := v3.Zeros(rtraj.Len())
		rbox := make([]float64, 9)
		i := 0
		for ; ; i++ {
			err := rtraj.Next(mat, rbox)
			if err != nil {
				if _, ok := err.(vasp.LastFrameError); ok {
					break
				}
				Te.Fatal(err)
			}
			orig := frame(4, float64(i))
			for j := 0; j < 4; j++ {
				o, r := orig.Vec(j), mat.Vec(j)
				for k := range o {
					if math.Abs(o[k]-r[k]) > 5e-4 {
						Te.Errorf("%s frame %d atom %d: wrote %v read %v", ext, i, j, o, r)
					}
				}
			}
			if i != 1 && rbox[8] != 29.04 {
				Te.Errorf("%s frame %d: bad box %v", ext, i, rbox)
			}
		}
		if i != 3 {
			Te.Errorf("%s: expected 3 frames, read %d", ext, i)
		}
		fmt.Println("Over! frames read:", i, ext)
		rtraj.Close()
	}
}

func TestSTFErrors(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "test.stf")
	wtraj, err := NewWriter(name, 2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := wtraj.WNext(v3.Zeros(3)); err == nil {
		Te.Error("writing a frame with the wrong number of atoms should fail")
	}
	if err := wtraj.WNext(nil); err == nil {
		Te.Error("writing nil coordinates should fail")
	}
	wtraj.Close()
	if err := wtraj.WNext(v3.Zeros(2)); err == nil {
		Te.Error("writing to a closed trajectory should fail")
	} else if e, ok := err.(vasp.TrajError); !ok || e.Format() != "stf" || !e.Critical() {
		Te.Errorf("unexpected error %v", err)
	}
	rtraj, header, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	if header["prec"] != "2" {
		Te.Errorf("the default precision should be in the header: %v", header)
	}
	//no frames
	if err := rtraj.Next(nil); err == nil {
		Te.Error("expected a last frame error")
	} else if _, ok := err.(vasp.LastFrameError); !ok {
		Te.Error(err)
	}
	if _, _, err := New(filepath.Join(Te.TempDir(), "nothere.stf")); err == nil {
		Te.Error("opening a missing file should fail")
	}
}

// The frames are buffered, so a full disk is only noticed when closing.
func TestSTFCloseError(Te *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		Te.Skip("no /dev/full in this system")
	}
	wtraj, err := NewWriter("/dev/full", 2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := wtraj.WNext(frame(2, float64(i))); err != nil {
			Te.Fatal(err)
		}
	}
	err = wtraj.Close()
	if err == nil {
		Te.Fatal("closing a trajectory on a full device should fail")
	}
	if e, ok := err.(vasp.TrajError); !ok || !e.Critical() || e.FileName() != "/dev/full" {
		Te.Errorf("unexpected error %v", err)
	}
	if err := wtraj.Close(); err != nil {
		Te.Errorf("a second Close should do nothing, got %v", err)
	}
}
