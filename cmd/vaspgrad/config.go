/*
 * config.go, part of govasp.
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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every option of a vaspgrad run. Empty file names disable
// the corresponding output.
type Config struct {
	Outcar         string  `toml:"outcar"`
	PoscarFile     string  `toml:"poscar_file"` //Structure used for the mask and the element check.
	Magmom         bool    `toml:"magmom"`
	Volume         bool    `toml:"volume"`
	Sigma0         bool    `toml:"without_entropy"`
	Clean          bool    `toml:"clean"`
	AllowTruncated bool    `toml:"allow_truncated"`
	Poscar         bool    `toml:"poscar"`
	Prefix         string  `toml:"prefix"`
	Dir            string  `toml:"dir"`
	Direct         bool    `toml:"direct"`
	Molden         bool    `toml:"molden"`
	MoldenFile     string  `toml:"molden_file"`
	Skip           int     `toml:"skip"`
	XSF            string  `toml:"xsf"` //Directory for the normal mode files.
	Freq           string  `toml:"freq"`
	Scale          float64 `toml:"scale"`
	STF            string  `toml:"stf"`
	STFPrec        int     `toml:"stf_prec"`
	YAML           string  `toml:"yaml"`
	DB             string  `toml:"db"`
	Plot           string  `toml:"plot"`
	ConfigFile     string  `toml:"-"`
}

func defaultConfig() Config {
	return Config{
		Outcar:     "OUTCAR",
		Prefix:     "POSCAR_frame",
		Dir:        "poscar_frames",
		MoldenFile: "animate.molden",
		Scale:      1,
		STFPrec:    5,
	}
}

// LoadConfig reads a TOML file on top of the defaults.
func LoadConfig(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return Config{}, err
	}
	c := defaultConfig()
	if err = toml.Unmarshal(cont, &c); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", filename, err)
	}
	c.ConfigFile = filename
	return c, nil
}

func newFlagSet(c *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("vaspgrad", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.Outcar, "outcar", c.Outcar, "OUTCAR file to read, maybe gzip or zstd compressed")
	fs.StringVar(&c.Outcar, "o", c.Outcar, "short for -outcar")
	fs.StringVar(&c.PoscarFile, "poscar-file", c.PoscarFile, "POSCAR with the selective dynamics flags and element tags of the run")
	fs.BoolVar(&c.Magmom, "magmom", c.Magmom, "report the magnetization of each step")
	fs.BoolVar(&c.Volume, "volume", c.Volume, "report the cell volume of each step")
	fs.BoolVar(&c.Sigma0, "without-entropy", c.Sigma0, "use the energy(sigma->0) instead of the energy without entropy")
	fs.BoolVar(&c.Sigma0, "e", c.Sigma0, "short for -without-entropy")
	fs.BoolVar(&c.Clean, "clean", c.Clean, "plain report with a '#' header")
	fs.BoolVar(&c.Clean, "c", c.Clean, "short for -clean")
	fs.BoolVar(&c.AllowTruncated, "allow-truncated", c.AllowTruncated, "drop an unfinished last step instead of failing")
	fs.BoolVar(&c.Poscar, "poscar", c.Poscar, "write one POSCAR per step")
	fs.StringVar(&c.Prefix, "prefix", c.Prefix, "name prefix of the POSCAR frames and mode files")
	fs.StringVar(&c.Dir, "dir", c.Dir, "directory for the POSCAR frames")
	fs.BoolVar(&c.Direct, "direct", c.Direct, "write the POSCAR frames in fractional coordinates")
	fs.BoolVar(&c.Molden, "molden", c.Molden, "write the optimization as a Molden file")
	fs.StringVar(&c.MoldenFile, "molden-file", c.MoldenFile, "name of the Molden file")
	fs.IntVar(&c.Skip, "skip", c.Skip, "leading steps left out of the Molden file")
	fs.StringVar(&c.XSF, "xsf", c.XSF, "directory for one XSF file per normal mode")
	fs.StringVar(&c.Freq, "freq", c.Freq, "write the normal modes as a Molden frequency file")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "factor for the XSF mode displacements")
	fs.StringVar(&c.STF, "stf", c.STF, "write the steps as an STF trajectory")
	fs.IntVar(&c.STFPrec, "stf-prec", c.STFPrec, "decimal places kept in the STF trajectory")
	fs.StringVar(&c.YAML, "yaml", c.YAML, "write a YAML summary of the run")
	fs.StringVar(&c.DB, "db", c.DB, "add the run to an SQLite database")
	fs.StringVar(&c.Plot, "plot", c.Plot, "write a PNG with the energy and force convergence")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "TOML file with default options")
	return fs
}

// options parses args. Flags given explicitly take precedence over the
// values in the -config file, which take precedence over the defaults.
func options(args []string, output io.Writer) (Config, error) {
	c := defaultConfig()
	fs := newFlagSet(&c, output)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if c.ConfigFile == "" {
		return c, nil
	}
	fromFile, err := LoadConfig(c.ConfigFile)
	if err != nil {
		return Config{}, err
	}
	var set []string
	fs.Visit(func(f *flag.Flag) {
		set = append(set, "-"+f.Name+"="+f.Value.String())
	})
	if err := newFlagSet(&fromFile, output).Parse(set); err != nil {
		return Config{}, err
	}
	return fromFile, nil
}
