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

package phcalc

import (
	"errors"
	"math"
	"testing"

	"github.com/kr/pretty"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// aceticTitration titrates 25 mL of 0.1 M acetic acid with 0.1 M
// sodium hydroxide.
func aceticTitration(t *testing.T) *Titration {
	s := DefaultSolver()
	s.Log, _ = logtest.NewNullLogger()
	return &Titration{
		Analyte: Stock{
			Volume:  25,
			Species: []*Species{mustSpecies(t, true, 0.1, 4.76)},
		},
		Titrant: []*Species{mustSpecies(t, false, 0.1, 17)},
		Solvent: Water(),
		Solver:  s,
		Workers: 4,
	}
}

func TestTitrationCurve(t *testing.T) {
	tt := aceticTitration(t)
	curve, err := tt.Curve(TitrantVolumes(50, 51))
	if err != nil {
		t.Fatal(err)
	}
	if len(curve) != 51 {
		t.Fatalf("have %d points, want 51", len(curve))
	}
	if different(curve[0].PH, 2.88, 0.02) {
		t.Errorf("initial pH: have %g, want 2.88", curve[0].PH)
	}
	// Half-equivalence point.
	if different(curve[12].Volume, 12, testTolerance) || different(curve[12].PH, 4.76-math.Log10(13./12), 0.01) {
		t.Errorf("half equivalence: have %+v", curve[12])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Volume <= curve[i-1].Volume {
			t.Errorf("volumes out of order at %d", i)
		}
		if curve[i].PH <= curve[i-1].PH {
			t.Errorf("pH decreased from %g to %g at %g mL", curve[i-1].PH, curve[i].PH, curve[i].Volume)
		}
	}

	eq, ok := EquivalencePoint(curve)
	if !ok {
		t.Fatal("no equivalence point")
	}
	if different(eq.Volume, 25, 1) {
		t.Errorf("equivalence volume: have %g, want 25", eq.Volume)
	}
	if eq.PH < 7 || eq.PH > 11 {
		t.Errorf("equivalence pH: have %g", eq.PH)
	}
}

func TestTitrationDuplicateVolumes(t *testing.T) {
	tt := aceticTitration(t)
	curve, err := tt.Curve([]float64{10, 0, 10, 10})
	if err != nil {
		t.Fatal(err)
	}
	if curve[0] != curve[2] || curve[0] != curve[3] {
		t.Errorf("repeated volumes gave different results: %v", curve)
	}
	// A second call is answered from the cache.
	again, err := tt.Curve([]float64{10, 0, 10, 10})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(curve, again); len(diff) != 0 {
		t.Errorf("cached curve differs: %v", diff)
	}
}

func TestTitrationNegativeVolume(t *testing.T) {
	tt := aceticTitration(t)
	_, err := tt.Curve([]float64{1, -1})
	if !errors.Is(err, ErrInvalidVolume) {
		t.Errorf("have %v, want %v", err, ErrInvalidVolume)
	}
}

func TestTitrantVolumes(t *testing.T) {
	if diff := pretty.Diff(TitrantVolumes(2, 5), []float64{0, 0.5, 1, 1.5, 2}); len(diff) != 0 {
		t.Error(diff)
	}
	if diff := pretty.Diff(TitrantVolumes(2, 1), []float64{2}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestEquivalencePoint(t *testing.T) {
	curve := []CurvePoint{
		{Volume: 2, PH: 5},
		{Volume: 0, PH: 3},
		{Volume: 1, PH: 3.5},
		{Volume: 3, PH: 5.2},
	}
	eq, ok := EquivalencePoint(curve)
	if !ok {
		t.Fatal("no equivalence point")
	}
	want := CurvePoint{Volume: 1.5, PH: 4.25}
	if eq != want {
		t.Errorf("have %+v, want %+v", eq, want)
	}
	if _, ok := EquivalencePoint(curve[:1]); ok {
		t.Error("a single point should not have an equivalence point")
	}
}
