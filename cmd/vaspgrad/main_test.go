/*
 * main_test.go, part of govasp.
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

package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/govasp/outcar"
	"github.com/rmera/govasp/poscar"
	"github.com/rmera/govasp/traj/stf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	c, err := options(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)

	c, err = options([]string{"-e", "--magmom", "-o", "run/OUTCAR.gz", "-skip", "2", "-stf-prec", "3"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, c.STFPrec)
	assert.True(t, c.Sigma0)
	assert.True(t, c.Magmom)
	assert.Equal(t, "run/OUTCAR.gz", c.Outcar)
	assert.Equal(t, 2, c.Skip)
	assert.Equal(t, "animate.molden", c.MoldenFile)
}

func TestOptionsConfigFile(t *testing.T) {
	c, err := options([]string{"-config", "testdata/vaspgrad.toml", "-skip", "0", "-volume"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "testdata/OUTCAR", c.Outcar)
	assert.True(t, c.Clean)
	assert.True(t, c.Magmom)
	assert.True(t, c.Volume)
	assert.Equal(t, 0, c.Skip, "flags override the file")
	assert.Equal(t, "POSCAR_frame", c.Prefix, "defaults survive the file")
	assert.Equal(t, "testdata/vaspgrad.toml", c.ConfigFile)

	c, err = options([]string{"-config", "testdata/vaspgrad.toml"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Skip)
}

func TestOptionsErrors(t *testing.T) {
	_, err := options([]string{"-nosuchflag"}, io.Discard)
	assert.Error(t, err)
	_, err = options([]string{"OUTCAR"}, io.Discard)
	assert.Error(t, err)
	_, err = options([]string{"-config", "testdata/missing.toml"}, io.Discard)
	assert.Error(t, err)
	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("skip = \"two\"\n"), 0644))
	_, err = options([]string{"-config", bad}, io.Discard)
	assert.Error(t, err)
	_, err = options([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	c := defaultConfig()
	c.Outcar = "testdata/OUTCAR"
	c.PoscarFile = "testdata/POSCAR"
	c.Clean = true
	c.Magmom = true
	c.Molden = true
	c.MoldenFile = filepath.Join(dir, "animate.molden")
	c.Poscar = true
	c.Dir = filepath.Join(dir, "frames")
	c.Direct = true
	c.STF = filepath.Join(dir, "relax.stz")
	c.YAML = filepath.Join(dir, "summary.yaml")
	c.DB = filepath.Join(dir, "runs.db")
	c.Plot = filepath.Join(dir, "convergence.png")
	var out bytes.Buffer
	require.NoError(t, run(c, &out, true))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#nStep"))
	assert.NotContains(t, out.String(), "\033[")
	f := strings.Fields(lines[1])
	require.Len(t, f, 11)
	assert.Equal(t, "-10.50000", f[1])
	assert.Equal(t, "3", f[3])
	//The second atom is fixed, so the largest force is on the third one.
	assert.Equal(t, "0.173", f[4])
	assert.Equal(t, "3", f[6])
	assert.Equal(t, "O", f[7])
	assert.Equal(t, "x", f[8])
	assert.Equal(t, "1.00", f[9])
	assert.Equal(t, "1.0012", f[10])

	for _, name := range []string{c.MoldenFile, c.STF, c.YAML, c.DB, c.Plot, filepath.Join(c.Dir, "POSCAR_frame_2")} {
		st, err := os.Stat(name)
		if assert.NoError(t, err, name) {
			assert.NotZero(t, st.Size(), name)
		}
	}
	P, err := poscar.ReadFile(filepath.Join(c.Dir, "POSCAR_frame_1"))
	require.NoError(t, err)
	assert.True(t, P.Direct)
	assert.InDelta(t, 4.5, P.Cartesian().At(1, 0), 1e-6)
	r, header, err := stf.New(c.STF)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "5", header["prec"])
	assert.Equal(t, "testdata/OUTCAR", header["source"])
}

func TestRunSTFFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full in this system")
	}
	c := defaultConfig()
	c.Outcar = "testdata/OUTCAR"
	c.STF = "/dev/full"
	assert.Error(t, run(c, io.Discard, false))
}

func TestRunColor(t *testing.T) {
	c := defaultConfig()
	c.Outcar = "testdata/OUTCAR"
	c.Volume = true
	var out bytes.Buffer
	require.NoError(t, run(c, &out, true))
	assert.Contains(t, out.String(), "\033[32mTOTEN\033[0m")
	assert.Contains(t, out.String(), "Vol.")

	out.Reset()
	require.NoError(t, run(c, &out, false))
	assert.NotContains(t, out.String(), "\033[")
}

func TestRunErrors(t *testing.T) {
	c := defaultConfig()
	c.Outcar = "testdata/OUTCAR"
	c.PoscarFile = "testdata/POSCAR_Zn"
	err := run(c, io.Discard, false)
	assert.ErrorIs(t, err, poscar.ErrElementMismatch)

	c.PoscarFile = ""
	c.Outcar = "testdata/POSCAR"
	err = run(c, io.Discard, false)
	assert.ErrorIs(t, err, outcar.ErrFormatMismatch)

	c.Outcar = "testdata/nothere"
	assert.Error(t, run(c, io.Discard, false))
}

func TestRunNoModes(t *testing.T) {
	dir := t.TempDir()
	c := defaultConfig()
	c.Outcar = "testdata/OUTCAR"
	c.XSF = filepath.Join(dir, "modes")
	c.Freq = filepath.Join(dir, "freq.molden")
	require.NoError(t, run(c, io.Discard, false))
	_, err := os.Stat(c.XSF)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(c.Freq)
	assert.True(t, os.IsNotExist(err))
}
