/*
 * plot.go, part of gordf.
 *
 * Copyright 2026 The gordf Authors
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

// Package rdfplot draws g(r) functions with gonum/plot.
package rdfplot

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/rmera/gordf/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicRDFPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "r"
	p.Y.Label.Text = "g(r)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

// Plot draws the g(r) in d, with a dashed line at g(r)=1, and saves it to filename.
// The format is taken from the extension of filename (png, svg, pdf, eps, jpg, tif).
// If there is no extension, ".png" is added.
func Plot(d *histo.Data, title, filename string) error {
	if d == nil || d.Len() == 0 {
		return fmt.Errorf("gordf/rdfplot.Plot: Nothing to plot")
	}
	p := basicRDFPlot(title)
	centers := d.Centers()
	g := d.View()
	pts := make(plotter.XYs, len(g))
	for i, v := range g {
		pts[i].X = centers[i]
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("gordf/rdfplot.Plot: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)

	dividers := d.CopyDividers()
	ideal, err := plotter.NewLine(plotter.XYs{{X: dividers[0], Y: 1}, {X: dividers[len(dividers)-1], Y: 1}})
	if err != nil {
		return fmt.Errorf("gordf/rdfplot.Plot: %w", err)
	}
	ideal.Color = color.Gray{Y: 120}
	ideal.Width = vg.Points(1)
	ideal.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(ideal, line)
	p.Legend.Add("g(r)", line)
	p.Legend.Top = true
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("gordf/rdfplot.Plot: Can't save %s: %w", filename, err)
	}
	return nil
}
