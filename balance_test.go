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
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

const testTolerance = 1.e-10

func mustSpecies(t *testing.T, isAcid bool, conc float64, pK ...float64) *Species {
	t.Helper()
	s, err := NewSpecies("", isAcid, conc, pK)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFractionsMonoprotic(t *testing.T) {
	s := mustSpecies(t, true, 0.1, 4.76)
	f := s.Fractions(4.76)
	if len(f) != 2 {
		t.Fatalf("have %d fractions, want 2", len(f))
	}
	for i, v := range f {
		if different(v, 0.5, testTolerance) {
			t.Errorf("fraction %d: have %g, want 0.5", i, v)
		}
	}
}

func TestFractionsSum(t *testing.T) {
	species := []*Species{
		mustSpecies(t, true, 0.1, 2.12, 7.21, 12.67),
		mustSpecies(t, true, 0.1, 2.0, 2.7, 6.16, 10.26),
		mustSpecies(t, false, 0.1, 6.35, 10.33),
	}
	for _, s := range species {
		for _, pH := range []float64{-2, 0, 3.5, 7, 9.8, 14, 16} {
			t.Run(fmt.Sprintf("%v_%g", s, pH), func(t *testing.T) {
				f := s.Fractions(pH)
				if len(f) != s.Steps()+1 {
					t.Errorf("have %d fractions, want %d", len(f), s.Steps()+1)
				}
				if sum := floats.Sum(f); !floats.EqualWithinAbs(sum, 1, testTolerance) {
					t.Errorf("fractions sum to %g", sum)
				}
			})
		}
	}
}

func TestFractionsDiprotic(t *testing.T) {
	// Between the two pKa values, the intermediate form dominates.
	s := mustSpecies(t, true, 0.1, 6.35, 10.33)
	f := s.Fractions((6.35 + 10.33) / 2)
	if f[1] < f[0] || f[1] < f[2] {
		t.Errorf("intermediate fraction is not the largest: %v", f)
	}
	if different(f[0], f[2], 1e-8) {
		t.Errorf("outer fractions should be equal: %v", f)
	}
}

func TestProtonsExchangedLimits(t *testing.T) {
	var tests = []struct {
		s      *Species
		pH     float64
		want   float64
		reason string
	}{
		{s: mustSpecies(t, true, 1, 2.12, 7.21, 12.67), pH: -2, want: 0, reason: "acid at very low pH keeps its protons"},
		{s: mustSpecies(t, true, 1, 2.12, 7.21, 12.67), pH: 20, want: 3, reason: "acid at very high pH loses all protons"},
		{s: mustSpecies(t, false, 1, 6.35, 10.33), pH: -2, want: 2, reason: "base at very low pH takes up all protons"},
		{s: mustSpecies(t, false, 1, 6.35, 10.33), pH: 16, want: 0, reason: "base at very high pH takes up no protons"},
		{s: mustSpecies(t, false, 1, 9.24), pH: 9.24, want: 0.5, reason: "base at pH = pKa is half protonated"},
		{s: mustSpecies(t, true, 1, 4.76), pH: 4.76, want: 0.5, reason: "acid at pH = pKa is half dissociated"},
	}
	for _, test := range tests {
		t.Run(test.reason, func(t *testing.T) {
			have := test.s.ProtonsExchanged(test.pH)
			if math.Abs(have-test.want) > 1e-3 {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestProtonsExchangedDiproticBase(t *testing.T) {
	// Compare against the closed form for a diprotic base B:
	// N = ([H+]Ka1 + 2[H+]^2) / ([H+]^2 + [H+]Ka1 + Ka1Ka2).
	s := mustSpecies(t, false, 1, 10.33, 6.35)
	ka1, ka2 := math.Pow(10, -6.35), math.Pow(10, -10.33)
	for _, pH := range []float64{2, 6.35, 8, 10.33, 12} {
		h := math.Pow(10, -pH)
		want := (h*ka1 + 2*h*h) / (h*h + h*ka1 + ka1*ka2)
		if have := s.ProtonsExchanged(pH); different(have, want, 1e-9) {
			t.Errorf("pH %g: have %g, want %g", pH, have, want)
		}
	}
}

func TestProtonsExchangedTriproticAcid(t *testing.T) {
	s := mustSpecies(t, true, 1, 2.12, 7.21, 12.67)
	k1, k2, k3 := math.Pow(10, -2.12), math.Pow(10, -7.21), math.Pow(10, -12.67)
	for _, pH := range []float64{1, 4.5, 9.9, 13} {
		h := math.Pow(10, -pH)
		want := (h*h*k1 + 2*h*k1*k2 + 3*k1*k2*k3) / (h*h*h + h*h*k1 + h*k1*k2 + k1*k2*k3)
		if have := s.ProtonsExchanged(pH); different(have, want, 1e-9) {
			t.Errorf("pH %g: have %g, want %g", pH, have, want)
		}
	}
}

func TestContributionSign(t *testing.T) {
	a := mustSpecies(t, true, 0.1, 4.21)
	b := mustSpecies(t, false, 0.1, 4.21)
	if c := a.Contribution(4.21); different(c, 0.05, testTolerance) {
		t.Errorf("acid: have %g, want 0.05", c)
	}
	if c := b.Contribution(4.21); different(c, -0.05, testTolerance) {
		t.Errorf("base: have %g, want -0.05", c)
	}
}

func TestChargeImbalanceWater(t *testing.T) {
	if v := ChargeImbalance(nil, 14, 7); v != 0 {
		t.Errorf("have %g, want 0", v)
	}
	if v := ChargeImbalance(nil, 14, 6); v <= 0 {
		t.Errorf("imbalance should be positive below neutral pH: %g", v)
	}
	if v := ChargeImbalance(nil, 14, 8); v >= 0 {
		t.Errorf("imbalance should be negative above neutral pH: %g", v)
	}
}

func TestChargeImbalanceMonotone(t *testing.T) {
	solution := []*Species{
		mustSpecies(t, true, 0.02, 2.12, 7.21, 12.67),
		mustSpecies(t, false, 0.25, 9.24, 12.4, 13.3),
		mustSpecies(t, false, 0.05, 4.76),
	}
	pH := floats.Span(make([]float64, 181), -2, 16)
	prev := math.Inf(1)
	for _, p := range pH {
		v := ChargeImbalance(solution, 14, p)
		if v >= prev {
			t.Fatalf("imbalance increased at pH %g: %g >= %g", p, v, prev)
		}
		prev = v
	}
}

func TestSpeciate(t *testing.T) {
	solution := []*Species{
		mustSpecies(t, true, 0.1, 4.76),
		mustSpecies(t, false, 0.1, 9.24),
	}
	r := Speciate(solution, 7)
	if len(r) != 2 {
		t.Fatalf("have %d results, want 2", len(r))
	}
	for i, s := range r {
		if s.Species != solution[i] {
			t.Errorf("result %d: wrong species", i)
		}
		if len(s.Fractions) != 2 {
			t.Errorf("result %d: have %d fractions", i, len(s.Fractions))
		}
	}
	// Acetic acid is mostly dissociated and ammonia mostly protonated at pH 7.
	if r[0].Fractions[1] < 0.99 || r[1].Fractions[0] < 0.99 {
		t.Errorf("unexpected speciation: %v, %v", r[0].Fractions, r[1].Fractions)
	}
}

// Very strong acids must not overflow the state weights.
func TestExtremePK(t *testing.T) {
	s := mustSpecies(t, true, 0.1, -200, -200)
	for _, pH := range []float64{-2, 0, 7, 16} {
		if n := s.ProtonsExchanged(pH); different(n, 2, testTolerance) {
			t.Errorf("pH %g: have %g protons, want 2", pH, n)
		}
	}
	b := mustSpecies(t, false, 0.1, 250)
	if n := b.ProtonsExchanged(16); different(n, 1, testTolerance) {
		t.Errorf("base: have %g protons, want 1", n)
	}

	pH, err := SolvePH([]*Species{s}, Water())
	if err != nil {
		t.Fatal(err)
	}
	if want := -math.Log10(0.2); math.Abs(pH-want) > 1e-6 {
		t.Errorf("have %g, want %g", pH, want)
	}
}
