/*
Copyright © 2024 the phcalc authors.
This file is part of phcalc.

phcalc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

phcalc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with phcalc.  If not, see <http://www.gnu.org/licenses/>.
*/

package phutil

import (
	"fmt"

	"github.com/spatialmodel/phcalc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 4 * vg.Inch
)

// PlotCurve plots a titration curve to filename, whose extension
// determines the image format. eq, if not nil, is marked on the plot.
func PlotCurve(filename string, curve []phcalc.CurvePoint, eq *phcalc.CurvePoint) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("phutil: creating plot: %v", err)
	}
	p.Title.Text = "Titration curve"
	p.X.Label.Text = "Titrant volume"
	p.Y.Label.Text = "pH"
	p.Add(plotter.NewGrid())

	xy := make(plotter.XYs, len(curve))
	for i, c := range curve {
		xy[i].X = c.Volume
		xy[i].Y = c.PH
	}
	if err := plotutil.AddLinePoints(p, "pH", xy); err != nil {
		return fmt.Errorf("phutil: plotting curve: %v", err)
	}

	if eq != nil {
		s, err := plotter.NewScatter(plotter.XYs{{X: eq.Volume, Y: eq.PH}})
		if err != nil {
			return fmt.Errorf("phutil: plotting equivalence point: %v", err)
		}
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(5)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("equivalence point (pH %.2f)", eq.PH), s)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(figWidth, figHeight, filename); err != nil {
		return fmt.Errorf("phutil: saving plot: %v", err)
	}
	return nil
}
