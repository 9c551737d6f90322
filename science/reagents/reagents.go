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

// Package reagents holds a table of common laboratory acids, bases and
// salts with literature dissociation constants (pKa, 25 °C) for use with
// phcalc.
package reagents

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spatialmodel/phcalc"
)

// ErrUnknownReagent is returned when a reagent is not in the table.
var ErrUnknownReagent = errors.New("unknown reagent")

// Reagent is a substance that can be dissolved in water.
type Reagent struct {
	// Name is the common name of the reagent.
	Name string

	// Aliases are other accepted names, such as the chemical formula.
	Aliases []string

	// Acid specifies whether the reagent donates (true) or accepts (false)
	// protons.
	Acid bool

	// PK holds the pKa values of the reagent. For bases these are the pKa
	// values of the conjugate acids.
	PK []float64

	// Donor holds the pKa values of the proton-donating half of an
	// ampholyte such as bicarbonate, which is treated as a base (PK) and
	// an acid (Donor) at the same concentration. It is empty for
	// most reagents.
	Donor []float64
}

// Species returns the species formed by dissolving the reagent at
// concentration conc [mol/L].
func (r Reagent) Species(conc float64) ([]*phcalc.Species, error) {
	s, err := phcalc.NewSpecies(r.Name, r.Acid, conc, r.PK)
	if err != nil {
		return nil, fmt.Errorf("reagents: %s: %w", r.Name, err)
	}
	o := []*phcalc.Species{s}
	if len(r.Donor) > 0 {
		d, err := phcalc.NewAcid(r.Name+" (donor)", conc, r.Donor...)
		if err != nil {
			return nil, fmt.Errorf("reagents: %s: %w", r.Name, err)
		}
		o = append(o, d)
	}
	return o, nil
}

func (r Reagent) String() string {
	kind := "base"
	if r.Acid {
		kind = "acid"
	}
	s := fmt.Sprintf("%s (%s, pKa %s)", r.Name, kind, formatPK(r.PK))
	if len(r.Donor) > 0 {
		s = fmt.Sprintf("%s (ampholyte, pKa %s / %s)", r.Name, formatPK(r.PK), formatPK(r.Donor))
	}
	return s
}

func formatPK(pK []float64) string {
	s := make([]string, len(pK))
	for i, v := range pK {
		s[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(s, ", ")
}

// table holds the available reagents.
var table = []Reagent{
	// Acids
	{Name: "hydrochloric acid", Aliases: []string{"HCl"}, Acid: true, PK: []float64{-6.3}},
	{Name: "nitric acid", Aliases: []string{"HNO3"}, Acid: true, PK: []float64{-1.4}},
	{Name: "sulfuric acid", Aliases: []string{"H2SO4"}, Acid: true, PK: []float64{-3, 1.99}},
	{Name: "phosphoric acid", Aliases: []string{"H3PO4"}, Acid: true, PK: []float64{2.12, 7.21, 12.67}},
	{Name: "acetic acid", Aliases: []string{"CH3COOH", "ethanoic acid"}, Acid: true, PK: []float64{4.76}},
	{Name: "formic acid", Aliases: []string{"HCOOH", "methanoic acid"}, Acid: true, PK: []float64{3.75}},
	{Name: "citric acid", Aliases: []string{"C6H8O7"}, Acid: true, PK: []float64{3.13, 4.76, 6.40}},
	{Name: "oxalic acid", Aliases: []string{"H2C2O4"}, Acid: true, PK: []float64{1.25, 4.27}},
	{Name: "carbonic acid", Aliases: []string{"H2CO3"}, Acid: true, PK: []float64{6.35, 10.33}},
	{Name: "boric acid", Aliases: []string{"H3BO3"}, Acid: true, PK: []float64{9.24}},

	// Bases
	{Name: "ammonia", Aliases: []string{"NH3"}, PK: []float64{9.25}},
	{Name: "sodium hydroxide", Aliases: []string{"NaOH", "lye"}, PK: []float64{15.7}}, // pKa of water
	{Name: "sodium acetate", Aliases: []string{"CH3COONa"}, PK: []float64{4.76}},
	{Name: "sodium carbonate", Aliases: []string{"Na2CO3", "soda ash"}, PK: []float64{6.35, 10.33}},
	{Name: "trisodium citrate", Aliases: []string{"Na3C6H5O7", "sodium citrate"}, PK: []float64{3.13, 4.76, 6.40}},

	// Ampholytes
	{Name: "sodium bicarbonate", Aliases: []string{"NaHCO3", "baking soda"}, PK: []float64{6.35}, Donor: []float64{10.33}},
	{Name: "disodium phosphate", Aliases: []string{"Na2HPO4"}, PK: []float64{2.12, 7.21}, Donor: []float64{12.67}},
}

var index map[string]int

func init() {
	index = make(map[string]int)
	for i, r := range table {
		index[normalize(r.Name)] = i
		for _, a := range r.Aliases {
			index[normalize(a)] = i
		}
	}
}

// normalize makes lookups insensitive to case and to the choice of
// space, underscore or hyphen as a separator.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}

// Lookup returns the reagent with the given name or alias.
func Lookup(name string) (Reagent, error) {
	i, ok := index[normalize(name)]
	if !ok {
		return Reagent{}, fmt.Errorf("reagents: %q: %w", name, ErrUnknownReagent)
	}
	return table[i], nil
}

// Names returns the names of all available reagents in alphabetical order.
func Names() []string {
	o := make([]string, len(table))
	for i, r := range table {
		o[i] = r.Name
	}
	sort.Strings(o)
	return o
}
