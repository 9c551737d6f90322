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

// Stock is a volume of a solution with known species concentrations.
type Stock struct {
	// Volume is the volume of the stock solution, in any unit as long as
	// all stocks that are mixed together use the same one.
	Volume float64

	// Species are the species in the stock solution, with their
	// concentrations before mixing.
	Species []*Species
}

// Mix combines the given stock solutions and returns the species of the
// resulting solution, each diluted to C·V/ΣV. The input species are not
// modified.
//
// A McIlvaine buffer, for example, is made by mixing 0.2 M disodium
// phosphate with 0.1 M citric acid in varying proportions.
func Mix(stocks ...Stock) ([]*Species, error) {
	var total float64
	for _, st := range stocks {
		if st.Volume < 0 || math.IsNaN(st.Volume) || math.IsInf(st.Volume, 0) {
			return nil, fmt.Errorf("%w: stock volume %g", ErrInvalidVolume, st.Volume)
		}
		total += st.Volume
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: total volume is zero", ErrInvalidVolume)
	}
	var o []*Species
	for _, st := range stocks {
		for _, s := range st.Species {
			d, err := s.WithConcentration(s.conc * st.Volume / total)
			if err != nil {
				return nil, err
			}
			o = append(o, d)
		}
	}
	return o, nil
}
