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
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTolerance is the default width [pH units] of the bisection
	// bracket at which the solver stops.
	DefaultTolerance = 1e-12

	// DefaultMaxIterations is the default maximum number of bisection
	// steps. 18 pH units / 2^1000 is far below machine precision, so the
	// tolerance is always reached first for realistic ranges.
	DefaultMaxIterations = 1000
)

// Solver finds the pH at which the charge balance of a solution holds.
// The zero value is ready to use and is equivalent to DefaultSolver().
type Solver struct {
	// Tolerance is the bracket width [pH units] below which the search
	// stops. If <= 0, DefaultTolerance is used.
	Tolerance float64

	// MaxIterations limits the number of bisection steps.
	// If <= 0, DefaultMaxIterations is used.
	MaxIterations int

	// Split specifies whether to split the search range at the neutral
	// pH of the solvent and search both halves concurrently.
	Split bool

	// Log receives debugging information. If nil, the logrus standard
	// logger is used.
	Log logrus.FieldLogger
}

// DefaultSolver returns a Solver with the default settings.
func DefaultSolver() *Solver {
	return &Solver{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Log:           logrus.StandardLogger(),
	}
}

// SolvePH returns the equilibrium pH of the given solution using the
// default solver settings.
func SolvePH(solution []*Species, solvent Solvent) (float64, error) {
	return DefaultSolver().Solve(solution, solvent)
}

func (s *Solver) tolerance() float64 {
	if s.Tolerance <= 0 {
		return DefaultTolerance
	}
	return s.Tolerance
}

func (s *Solver) maxIterations() int {
	if s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

func (s *Solver) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Solve returns the equilibrium pH of the given solution. If the charge
// balance does not change sign within the solvent's pH range, the nearest
// bound of the range is returned. A *BracketError is returned if the
// charge balance behaves inconsistently during the search.
// Neither solution nor its species are modified.
func (s *Solver) Solve(solution []*Species, solvent Solvent) (float64, error) {
	pivot := solvent.Neutral()
	if s.Split && pivot > solvent.minPH && pivot < solvent.maxPH {
		return s.solveSplit(solution, solvent, pivot)
	}
	return s.bisect(solution, solvent.pKi, solvent.minPH, solvent.maxPH)
}

// bisect searches [lower, upper] for the root of the charge balance.
func (s *Solver) bisect(solution []*Species, pKi, lower, upper float64) (float64, error) {
	tol, maxIter, log := s.tolerance(), s.maxIterations(), s.log()
	minPH, maxPH := lower, upper

	f := func(pH float64) float64 { return ChargeImbalance(solution, pKi, pH) }
	left, right := f(lower), f(upper)
	mean := (lower + upper) / 2

	var i int
	for i = 0; i < maxIter; i++ {
		center := f(mean)
		switch {
		case center == 0:
			return mean, nil
		case left == 0:
			return lower, nil
		case right == 0:
			return upper, nil
		case left > 0 && right > 0:
			log.WithFields(logrus.Fields{
				"pH":        maxPH,
				"imbalance": right,
			}).Debug("phcalc: charge balance is positive over the whole range; returning the maximum pH")
			return maxPH, nil
		case left < 0 && right < 0:
			log.WithFields(logrus.Fields{
				"pH":        minPH,
				"imbalance": left,
			}).Debug("phcalc: charge balance is negative over the whole range; returning the minimum pH")
			return minPH, nil
		case center*left >= 0:
			lower, left = mean, center
		case center*right >= 0:
			upper, right = mean, center
		default:
			err := &BracketError{
				Lower: lower, Upper: upper,
				Left: left, Center: center, Right: right,
			}
			log.WithFields(logrus.Fields{
				"iteration": i,
				"lower":     lower,
				"upper":     upper,
			}).Error(err)
			return math.NaN(), err
		}
		mean = (lower + upper) / 2
		if upper-lower < tol {
			i++ // count the final step
			break
		}
	}
	log.WithFields(logrus.Fields{
		"pH":         mean,
		"iterations": i,
		"width":      upper - lower,
	}).Debug("phcalc: bisection finished")
	return mean, nil
}

// solveSplit searches [minPH, pivot] and [pivot, maxPH] concurrently and
// returns the result with the smaller absolute charge imbalance.
func (s *Solver) solveSplit(solution []*Species, solvent Solvent, pivot float64) (float64, error) {
	type result struct {
		pH, imbalance float64
		err           error
	}
	bounds := [2][2]float64{
		{solvent.minPH, pivot},
		{pivot, solvent.maxPH},
	}
	var results [2]result

	var wg sync.WaitGroup
	wg.Add(len(bounds))
	for i := range bounds {
		go func(i int) {
			defer wg.Done()
			owned := append([]*Species(nil), solution...)
			pH, err := s.bisect(owned, solvent.pKi, bounds[i][0], bounds[i][1])
			results[i] = result{
				pH:        pH,
				imbalance: math.Abs(ChargeImbalance(owned, solvent.pKi, pH)),
				err:       err,
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return math.NaN(), r.err
		}
	}
	best, half := results[0], "lower"
	if results[1].imbalance < best.imbalance {
		best, half = results[1], "upper"
	}
	s.log().WithFields(logrus.Fields{
		"pH":    best.pH,
		"half":  half,
		"pivot": pivot,
	}).Debug("phcalc: split search finished")
	return best.pH, nil
}
