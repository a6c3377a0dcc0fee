/*
 * main.go, part of govasp.
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

// vaspgrad reports the progress of a VASP geometry optimization from its
// OUTCAR file and exports the steps and normal modes in other formats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/rmera/govasp/export"
	"github.com/rmera/govasp/outcar"
	"github.com/rmera/govasp/poscar"
	"github.com/rmera/govasp/traj/stf"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	conf, err := options(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("vaspgrad: %v", err)
	}
	if err := run(conf, os.Stdout, isatty.IsTerminal(os.Stdout.Fd())); err != nil {
		log.Fatalf("vaspgrad: %v", err)
	}
}

// run parses the OUTCAR in c, prints the step report to out and writes
// every output requested in c.
func run(c Config, out io.Writer, color bool) error {
	opts := outcar.IterationOptions{AllowTruncated: c.AllowTruncated}
	var P *poscar.Poscar
	if c.PoscarFile != "" {
		var err error
		if P, err = poscar.ReadFile(c.PoscarFile); err != nil {
			return err
		}
		opts.Mask = P.Mask()
	}
	O, err := outcar.ParseFile(c.Outcar, opts)
	if err != nil {
		return err
	}
	if P != nil {
		if err := checkStructure(P, O); err != nil {
			return err
		}
	}
	err = export.Report(out, O, export.ReportOptions{
		Clean:  c.Clean,
		Color:  color && !c.Clean,
		Magmom: c.Magmom,
		Volume: c.Volume,
		Sigma0: c.Sigma0,
	})
	if err != nil {
		return err
	}
	return writeOutputs(c, O)
}

func checkStructure(P *poscar.Poscar, O *outcar.Outcar) error {
	if P.NIons() != O.NIons() {
		return fmt.Errorf("%s has %d atoms but %s has %d", P.Comment, P.NIons(), O.FileName, O.NIons())
	}
	if P.Symbols == nil {
		log.Printf("No element tags in the structure file, the elements of %s were not checked", O.FileName)
		return nil
	}
	return poscar.CheckElements(P, O.Elements.Symbols)
}

func writeOutputs(c Config, O *outcar.Outcar) error {
	if c.Molden {
		err := createAndWrite(c.MoldenFile, func(w io.Writer) error {
			return export.Molden(w, O, export.MoldenOptions{Skip: c.Skip, Sigma0: c.Sigma0})
		})
		if err != nil {
			return err
		}
	}
	if c.Poscar {
		if _, err := export.Frames(c.Dir, c.Prefix, O, c.Direct); err != nil {
			return err
		}
	}
	if (c.XSF != "" || c.Freq != "") && len(O.Modes) == 0 {
		log.Printf("%s has no normal modes, no mode files will be written", O.FileName)
	} else {
		if c.XSF != "" {
			if _, err := export.ModesXSF(c.XSF, c.Prefix, O, c.Scale); err != nil {
				return err
			}
		}
		if c.Freq != "" {
			if err := createAndWrite(c.Freq, func(w io.Writer) error { return export.MoldenFreq(w, O) }); err != nil {
				return err
			}
		}
	}
	if c.STF != "" {
		w, err := stf.NewWriter(c.STF, O.NIons(), map[string]string{"source": O.FileName, "prec": strconv.Itoa(c.STFPrec)})
		if err != nil {
			return err
		}
		_, err = export.Trajectory(outcar.NewTraj(O), w)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	if c.YAML != "" {
		if err := createAndWrite(c.YAML, func(w io.Writer) error { return export.Summary(w, O) }); err != nil {
			return err
		}
	}
	if c.DB != "" {
		id, err := export.SQLite(c.DB, O)
		if err != nil {
			return err
		}
		log.Printf("Run stored in %s with id %d", c.DB, id)
	}
	if c.Plot != "" {
		if err := export.PlotConvergence(c.Plot, O, c.Sigma0); err != nil {
			return err
		}
	}
	return nil
}

func createAndWrite(name string, fn func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
