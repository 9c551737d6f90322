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
	"fmt"
)

// Errors returned when constructing species and solvents.
var (
	// ErrInvalidConcentration is returned when a species is given a
	// negative or non-finite concentration.
	ErrInvalidConcentration = errors.New("phcalc: concentration must be a non-negative number")

	// ErrMissingDissociationData is returned when a species is given no
	// pK values. Strong acids and bases should be given one extreme value
	// instead (pK = -3 is usually enough for a strong acid).
	ErrMissingDissociationData = errors.New("phcalc: at least one pK value must be supplied")

	// ErrInvalidPK is returned when a pK value is NaN or infinite.
	ErrInvalidPK = errors.New("phcalc: pK values must be finite")

	// ErrInvalidSolventRange is returned when the minimum pH of a
	// solvent is not lower than its maximum pH.
	ErrInvalidSolventRange = errors.New("phcalc: minimum pH must be lower than maximum pH")

	// ErrInvalidVolume is returned when mixing stocks with a negative
	// volume or a total volume of zero.
	ErrInvalidVolume = errors.New("phcalc: invalid volume")
)

// ErrInconsistentBracket is wrapped by *BracketError. It is returned when
// neither half of the bisection bracket is consistent with a single sign
// change of the charge balance, which means any result would be meaningless.
var ErrInconsistentBracket = errors.New("phcalc: inconsistent bisection bracket")

// BracketError holds the state of the bisection at the point where the
// charge balance stopped behaving monotonically.
type BracketError struct {
	// Lower and Upper are the bracket bounds [pH].
	Lower, Upper float64

	// Left, Center, and Right are the charge imbalances [mol/L] at the
	// lower bound, the midpoint, and the upper bound.
	Left, Center, Right float64
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%v: lower pH = %g (imbalance %g), center imbalance %g, upper pH = %g (imbalance %g)",
		ErrInconsistentBracket, e.Lower, e.Left, e.Center, e.Upper, e.Right)
}

// Unwrap returns ErrInconsistentBracket.
func (e *BracketError) Unwrap() error { return ErrInconsistentBracket }
