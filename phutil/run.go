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
	"io"
	"strings"

	"github.com/spatialmodel/phcalc"
	"github.com/spatialmodel/phcalc/science/reagents"
)

// Solve calculates the pH of solution and writes it to w. If fractions is
// true, the distribution of each species among its protonation states is
// written as well.
func Solve(w io.Writer, solution []*phcalc.Species, solvent phcalc.Solvent, solver *phcalc.Solver, fractions bool) error {
	pH, err := solver.Solve(solution, solvent)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pH: %.4f\n", pH)
	if !fractions {
		return nil
	}
	for _, sp := range phcalc.Speciate(solution, pH) {
		f := make([]string, len(sp.Fractions))
		for i, v := range sp.Fractions {
			f[i] = fmt.Sprintf("%.4g", v)
		}
		fmt.Fprintf(w, "%s: %s\n", sp.Species, strings.Join(f, " "))
	}
	return nil
}

// Titrate calculates the titration curve at the given titrant volumes and
// writes it to w, followed by the estimated equivalence point. If plotFile
// is not empty, the curve is also plotted to that file.
func Titrate(w io.Writer, t *phcalc.Titration, volumes []float64, plotFile string) error {
	curve, err := t.Curve(volumes)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%12s %8s\n", "volume", "pH")
	for _, p := range curve {
		fmt.Fprintf(w, "%12.4g %8.4f\n", p.Volume, p.PH)
	}
	eq, ok := phcalc.EquivalencePoint(curve)
	if ok {
		fmt.Fprintf(w, "equivalence point: volume %.4g, pH %.2f\n", eq.Volume, eq.PH)
	}
	if plotFile == "" {
		return nil
	}
	var eqp *phcalc.CurvePoint
	if ok {
		eqp = &eq
	}
	return PlotCurve(plotFile, curve, eqp)
}

// ListReagents writes the table of available reagents to w.
func ListReagents(w io.Writer) error {
	for _, name := range reagents.Names() {
		r, err := reagents.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}
