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
	"math"

	"gonum.org/v1/gonum/floats"
)

// stateWeights returns the equilibrium weight of each protonation state of
// s at the given pH, scaled so that the largest weight is 1. Element i
// corresponds to the state that has lost i protons relative to the fully
// protonated form:
//
//	w[i] ∝ [H+]^(n-i) · K_1 · … · K_i
//
// The weights are built as decimal logarithms, -pH·(n-i) - (pK_1 + … + pK_i),
// so that extreme pH or pK values do not overflow.
func (s *Species) stateWeights(pH float64) []float64 {
	n := len(s.pK)
	w := make([]float64, n+1)
	var sumPK float64
	for i := 0; i <= n; i++ {
		if i > 0 {
			sumPK += s.pK[i-1]
		}
		w[i] = -pH*float64(n-i) - sumPK
	}
	max := floats.Max(w)
	for i, v := range w {
		w[i] = math.Pow(10, v-max)
	}
	return w
}

// ProtonsExchanged returns the average number of protons that one
// molecule of s has released (acids) or taken up (bases) at the given pH.
//
// E.g. for a triprotic acid H3A:
//
//	     [H+]^2·Ka1 + 2[H+]·Ka1·Ka2 + 3Ka1·Ka2·Ka3
//	N = -------------------------------------------
//	    [H+]^3 + [H+]^2·Ka1 + [H+]·Ka1·Ka2 + Ka1·Ka2·Ka3
//
// and for a diprotic base B, where Ka1 and Ka2 belong to H2B(2+) and HB(+):
//
//	       [H+]·Ka1 + 2[H+]^2
//	N = --------------------------
//	    [H+]^2 + [H+]·Ka1 + Ka1·Ka2
func (s *Species) ProtonsExchanged(pH float64) float64 {
	w := s.stateWeights(pH)
	n := len(s.ka)
	var numer float64
	for i, wi := range w {
		if s.acid {
			numer += float64(i) * wi
		} else {
			numer += float64(n-i) * wi
		}
	}
	return numer / floats.Sum(w)
}

// Contribution returns the signed contribution of s to the right hand
// side of the charge balance at the given pH [mol/L]: positive for acids,
// negative for bases.
func (s *Species) Contribution(pH float64) float64 {
	if s.conc == 0 {
		return 0
	}
	c := s.conc * s.ProtonsExchanged(pH)
	if s.acid {
		return c
	}
	return -c
}

// Fractions returns the fraction of s that is present in each protonation
// state at the given pH, ordered from the fully protonated form to the fully
// deprotonated form. The fractions sum to 1.
func (s *Species) Fractions(pH float64) []float64 {
	w := s.stateWeights(pH)
	floats.Scale(1/floats.Sum(w), w)
	return w
}

// ChargeImbalance returns [H+] minus the right hand side of the charge
// balance of the solution at the given pH, where pKi is the self-ionization
// constant of the solvent:
//
//	[H+] - (Ki/[H+] + Σ Contribution)
//
// The result is zero at equilibrium, positive when pH is too low, and
// negative when pH is too high.
func ChargeImbalance(solution []*Species, pKi, pH float64) float64 {
	h := math.Pow(10, -pH)
	rhs := math.Pow(10, pH-pKi) // Ki/[H+]
	for _, s := range solution {
		rhs += s.Contribution(pH)
	}
	return h - rhs
}

// Speciation holds the distribution of one species among its protonation
// states.
type Speciation struct {
	Species *Species

	// Fractions are ordered from the fully protonated form to the fully
	// deprotonated form.
	Fractions []float64
}

// Speciate returns the distribution of every species in the solution at
// the given pH.
func Speciate(solution []*Species, pH float64) []Speciation {
	o := make([]Speciation, len(solution))
	for i, s := range solution {
		o[i] = Speciation{Species: s, Fractions: s.Fractions(pH)}
	}
	return o
}
