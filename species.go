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
	"sort"
	"strings"
)

// Species is an acid or base dissolved in a solution. A Species is
// immutable once created; use NewSpecies, NewAcid, or NewBase to create one.
type Species struct {
	// name is used only for display.
	name string

	// acid is true if the species releases protons with increasing pH,
	// false if it is a base that takes them up.
	acid bool

	// conc is the total analytical concentration [mol/L].
	conc float64

	// pK holds the pKa values of the acid (or of the conjugate acid of
	// the base), sorted in ascending order.
	pK []float64

	// ka holds 10^(-pK) for each value in pK, so it is sorted in
	// descending order and ka[i] is the constant of step i+1.
	ka []float64
}

// NewSpecies creates a new acid (isAcid == true) or base with the given
// display name (which may be empty), total concentration [mol/L], and pKa
// values. For bases, pK holds the pKa values of the conjugate acid.
// The pK values may be given in any order; pK itself is not modified.
func NewSpecies(name string, isAcid bool, conc float64, pK []float64) (*Species, error) {
	if conc < 0 || math.IsNaN(conc) || math.IsInf(conc, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidConcentration, conc)
	}
	if len(pK) == 0 {
		return nil, ErrMissingDissociationData
	}
	sorted := make([]float64, len(pK))
	for i, v := range pK {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %g", ErrInvalidPK, v)
		}
		sorted[i] = v
	}
	// Sort x in 10^-x, not the constants themselves.
	sort.Float64s(sorted)
	ka := make([]float64, len(sorted))
	for i, v := range sorted {
		ka[i] = math.Pow(10, -v)
	}
	return &Species{
		name: name,
		acid: isAcid,
		conc: conc,
		pK:   sorted,
		ka:   ka,
	}, nil
}

// NewAcid creates a new acid. It is shorthand for NewSpecies(name, true, conc, pK).
func NewAcid(name string, conc float64, pK ...float64) (*Species, error) {
	return NewSpecies(name, true, conc, pK)
}

// NewBase creates a new base, where pK are the pKa values of its
// conjugate acid. It is shorthand for NewSpecies(name, false, conc, pK).
func NewBase(name string, conc float64, pK ...float64) (*Species, error) {
	return NewSpecies(name, false, conc, pK)
}

// WithConcentration returns a copy of s with a different total concentration.
func (s *Species) WithConcentration(conc float64) (*Species, error) {
	return NewSpecies(s.name, s.acid, conc, s.pK)
}

// Name returns the display name of the species, which may be empty.
func (s *Species) Name() string { return s.name }

// IsAcid returns true if the species is an acid and false if it is a base.
func (s *Species) IsAcid() bool { return s.acid }

// Concentration returns the total concentration of the species [mol/L].
func (s *Species) Concentration() float64 { return s.conc }

// Steps returns the number of dissociation steps of the species.
func (s *Species) Steps() int { return len(s.ka) }

// PK returns the sorted pKa values of the species.
func (s *Species) PK() []float64 {
	return append([]float64(nil), s.pK...)
}

// Ka returns the linear dissociation constants of the species, one for
// each value returned by PK.
func (s *Species) Ka() []float64 {
	return append([]float64(nil), s.ka...)
}

func (s *Species) String() string {
	kind := "base"
	if s.acid {
		kind = "acid"
	}
	pk := make([]string, len(s.pK))
	for i, v := range s.pK {
		pk[i] = fmt.Sprint(v)
	}
	name := s.name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%s, %g mol/L, pKa %s)", name, kind, s.conc, strings.Join(pk, ", "))
}
