/*
 * plot.go, part of govasp.
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
	"fmt"
	"image/color"
	"os"

	"github.com/rmera/govasp/outcar"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotConvergence saves to filename a PNG image with two plots, side by side: the energy, and
// the maximum and average forces, versus the step number.
func PlotConvergence(filename string, O *outcar.Outcar, sigma0 bool) error {
	if len(O.Steps) == 0 {
		return fmt.Errorf("export: no steps to plot")
	}
	energy := make(plotter.XYs, len(O.Steps))
	maxf := make(plotter.XYs, len(O.Steps))
	avgf := make(plotter.XYs, len(O.Steps))
	for i := range O.Steps {
		st := &O.Steps[i]
		x := float64(i + 1)
		energy[i] = plotter.XY{X: x, Y: st.Energy(sigma0)}
		maxf[i] = plotter.XY{X: x, Y: st.MaxForce}
		avgf[i] = plotter.XY{X: x, Y: st.AverageForce}
	}
	pe := basicPlot("Energy", "E (eV)")
	if err := addLine(pe, energy, "energy", color.RGBA{B: 200, A: 255}); err != nil {
		return err
	}
	pf := basicPlot("Forces", "|F| (eV/A)")
	if err := addLine(pf, maxf, "max", color.RGBA{R: 200, A: 255}); err != nil {
		return err
	}
	if err := addLine(pf, avgf, "average", color.RGBA{G: 150, A: 255}); err != nil {
		return err
	}
	const w, h = 12 * vg.Centimeter, 9 * vg.Centimeter
	img := vgimg.New(2*w, h)
	dc := draw.New(img)
	t := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align([][]*plot.Plot{{pe, pf}}, t, dc)
	pe.Draw(canvases[0][0])
	pf.Draw(canvases[0][1])
	return writeFile(filename, func(f *os.File) error {
		png := vgimg.PngCanvas{Canvas: img}
		_, err := png.WriteTo(f)
		return err
	})
}

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Step"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, xys plotter.XYs, name string, c color.Color) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("export: can't plot %s: %w", name, err)
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}
