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
)

// Solvent holds the properties of the solvent that the species are
// dissolved in.
type Solvent struct {
	// pKi is the self-ionization constant of the solvent (14 for water).
	pKi float64

	// minPH and maxPH bound the pH values that the solution can take.
	// They are the search range of the solver and the values it returns
	// when the charge balance has no root inside the range.
	minPH, maxPH float64
}

// NewSolvent creates a new Solvent with self-ionization constant pKi and
// the admissible pH range [minPH, maxPH].
// It returns ErrInvalidSolventRange if minPH is not lower than maxPH or
// either bound is infinite.
func NewSolvent(pKi, minPH, maxPH float64) (Solvent, error) {
	if !(minPH < maxPH) || math.IsInf(minPH, 0) || math.IsInf(maxPH, 0) {
		return Solvent{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidSolventRange, minPH, maxPH)
	}
	if math.IsNaN(pKi) || math.IsInf(pKi, 0) {
		return Solvent{}, fmt.Errorf("%w: self-ionization constant %g", ErrInvalidPK, pKi)
	}
	return Solvent{pKi: pKi, minPH: minPH, maxPH: maxPH}, nil
}

// Water returns the properties of water at 25 °C.
func Water() Solvent {
	return Solvent{
		pKi:   14,
		minPH: -2,
		maxPH: 16,
	}
}

// PKi returns the self-ionization constant of the solvent.
func (s Solvent) PKi() float64 { return s.pKi }

// Ki returns the linear self-ionization constant, 10^-pKi.
func (s Solvent) Ki() float64 { return math.Pow(10, -s.pKi) }

// MinPH returns the lowest pH the solution can take.
func (s Solvent) MinPH() float64 { return s.minPH }

// MaxPH returns the highest pH the solution can take.
func (s Solvent) MaxPH() float64 { return s.maxPH }

// Neutral returns the pH of the pure solvent.
func (s Solvent) Neutral() float64 { return s.pKi / 2 }

func (s Solvent) String() string {
	return fmt.Sprintf("solvent (pKi %g, pH %g to %g)", s.pKi, s.minPH, s.maxPH)
}
