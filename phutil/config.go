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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/phcalc"
	"github.com/spatialmodel/phcalc/science/reagents"
	"github.com/spf13/cast"
)

// ErrInvalidSpecies is returned when a species specification cannot be parsed.
var ErrInvalidSpecies = errors.New("phutil: invalid species specification")

// ParseSpecies parses a species specification in one of the formats
//
//	acid:<concentration>:<pKa>[,<pKa>...][:<name>]
//	base:<concentration>:<pKa>[,<pKa>...][:<name>]
//	<reagent>=<concentration>
//
// Reagents that are ampholytes return more than one species.
func ParseSpecies(spec string) ([]*phcalc.Species, error) {
	spec = strings.TrimSpace(spec)
	lower := strings.ToLower(spec)
	explicit := strings.HasPrefix(lower, "acid:") || strings.HasPrefix(lower, "base:")
	if i := strings.LastIndex(spec, "="); i >= 0 && !explicit {
		r, err := reagents.Lookup(spec[:i])
		if err != nil {
			return nil, err
		}
		conc, err := cast.ToFloat64E(strings.TrimSpace(spec[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w %q: concentration: %v", ErrInvalidSpecies, spec, err)
		}
		return r.Species(conc)
	}

	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w %q: want kind:concentration:pKa[:name] or reagent=concentration", ErrInvalidSpecies, spec)
	}
	var isAcid bool
	switch strings.ToLower(parts[0]) {
	case "acid":
		isAcid = true
	case "base":
	default:
		return nil, fmt.Errorf("%w %q: kind must be acid or base", ErrInvalidSpecies, spec)
	}
	conc, err := cast.ToFloat64E(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w %q: concentration: %v", ErrInvalidSpecies, spec, err)
	}
	var pK []float64
	for _, v := range strings.Split(parts[2], ",") {
		if strings.TrimSpace(v) == "" {
			continue
		}
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w %q: pKa: %v", ErrInvalidSpecies, spec, err)
		}
		pK = append(pK, f)
	}
	var name string
	if len(parts) == 4 {
		name = parts[3]
	}
	s, err := phcalc.NewSpecies(name, isAcid, conc, pK)
	if err != nil {
		return nil, fmt.Errorf("phutil: %q: %w", spec, err)
	}
	return []*phcalc.Species{s}, nil
}

// SolutionFile is the format of a solution file.
type SolutionFile struct {
	// Solvent, if present, overrides the solvent configuration.
	Solvent *SolventConfig

	Species []SpeciesConfig
}

// SolventConfig holds the solvent properties.
type SolventConfig struct {
	PKi, MinPH, MaxPH float64
}

// SpeciesConfig describes one species in a solution file. Either
// Reagent or Acid and PK should be specified.
type SpeciesConfig struct {
	Name          string
	Reagent       string
	Acid          bool
	Concentration float64
	PK            []float64
}

// ReadSolutionFile reads a solution from a TOML file. The returned solvent
// is nil if the file does not specify one.
func ReadSolutionFile(filename string) ([]*phcalc.Species, *phcalc.Solvent, error) {
	var f SolutionFile
	md, err := toml.DecodeFile(os.ExpandEnv(filename), &f)
	if err != nil {
		return nil, nil, fmt.Errorf("phutil: reading solution file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, nil, fmt.Errorf("phutil: solution file %s: unknown keys %v", filename, undecoded)
	}

	var solution []*phcalc.Species
	for i, sc := range f.Species {
		var s []*phcalc.Species
		if sc.Reagent != "" {
			if len(sc.PK) > 0 {
				return nil, nil, fmt.Errorf("phutil: solution file %s: species %d: PK cannot be used with Reagent", filename, i)
			}
			r, err := reagents.Lookup(sc.Reagent)
			if err != nil {
				return nil, nil, err
			}
			s, err = r.Species(sc.Concentration)
			if err != nil {
				return nil, nil, err
			}
		} else {
			sp, err := phcalc.NewSpecies(sc.Name, sc.Acid, sc.Concentration, sc.PK)
			if err != nil {
				return nil, nil, fmt.Errorf("phutil: solution file %s: species %d: %w", filename, i, err)
			}
			s = []*phcalc.Species{sp}
		}
		solution = append(solution, s...)
	}

	if f.Solvent == nil {
		return solution, nil, nil
	}
	solvent, err := phcalc.NewSolvent(f.Solvent.PKi, f.Solvent.MinPH, f.Solvent.MaxPH)
	if err != nil {
		return nil, nil, fmt.Errorf("phutil: solution file %s: %w", filename, err)
	}
	return solution, &solvent, nil
}

// loadSolution collects the species given as arguments, in the species
// configuration variable, and in the solution file.
func loadSolution(args []string) ([]*phcalc.Species, phcalc.Solvent, error) {
	solvent, err := phcalc.NewSolvent(
		Cfg.GetFloat64("Solvent.PKi"),
		Cfg.GetFloat64("Solvent.MinPH"),
		Cfg.GetFloat64("Solvent.MaxPH"),
	)
	if err != nil {
		return nil, phcalc.Solvent{}, fmt.Errorf("phutil: %w", err)
	}

	specs, err := cast.ToStringSliceE(Cfg.Get("species"))
	if err != nil {
		return nil, phcalc.Solvent{}, fmt.Errorf("phutil: species: %v", err)
	}
	specs = append(specs, args...)

	var solution []*phcalc.Species
	for _, spec := range specs {
		s, err := ParseSpecies(spec)
		if err != nil {
			return nil, phcalc.Solvent{}, err
		}
		solution = append(solution, s...)
	}

	if filename := Cfg.GetString("SolutionFile"); filename != "" {
		s, fileSolvent, err := ReadSolutionFile(filename)
		if err != nil {
			return nil, phcalc.Solvent{}, err
		}
		solution = append(solution, s...)
		if fileSolvent != nil {
			solvent = *fileSolvent
		}
	}
	return solution, solvent, nil
}

// newSolver creates a solver from the configuration.
func newSolver(command string) (*phcalc.Solver, error) {
	tol := Cfg.GetFloat64("Tolerance")
	if !(tol > 0) {
		return nil, fmt.Errorf("phutil: Tolerance must be positive but is %g", tol)
	}
	maxIter := Cfg.GetInt("MaxIterations")
	if maxIter <= 0 {
		return nil, fmt.Errorf("phutil: MaxIterations must be positive but is %d", maxIter)
	}
	return &phcalc.Solver{
		Tolerance:     tol,
		MaxIterations: maxIter,
		Split:         Cfg.GetBool("Split"),
		Log:           logrus.StandardLogger().WithField("cmd", command),
	}, nil
}
