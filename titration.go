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
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/ctessum/requestcache"
	"gonum.org/v1/gonum/floats"
)

// Titration describes the stepwise addition of a titrant solution to an
// analyte solution. The fields should not be changed after Curve has
// been called.
type Titration struct {
	// Analyte is the solution being titrated.
	Analyte Stock

	// Titrant holds the species in the titrant solution, with their
	// concentrations before mixing.
	Titrant []*Species

	// Solvent is the solvent of both solutions.
	Solvent Solvent

	// Solver is used to calculate the pH after each addition.
	// If nil, DefaultSolver() is used.
	Solver *Solver

	// Workers is the number of points that are calculated concurrently.
	// If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	cacheOnce sync.Once
	cache     *requestcache.Cache
}

// CurvePoint is one point on a titration curve.
type CurvePoint struct {
	// Volume is the volume of titrant added, in the units of the
	// analyte volume.
	Volume float64

	// PH is the equilibrium pH after the addition.
	PH float64
}

// loadCache creates the cache of previously calculated points, which also
// limits the number of concurrent calculations.
func (t *Titration) loadCache() {
	t.cacheOnce.Do(func() {
		solver := t.Solver
		if solver == nil {
			solver = DefaultSolver()
		}
		workers := t.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		t.cache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			v := req.(float64)
			solution, err := Mix(t.Analyte, Stock{Volume: v, Species: t.Titrant})
			if err != nil {
				return nil, err
			}
			return solver.Solve(solution, t.Solvent)
		}, workers, requestcache.Deduplicate(), requestcache.Memory(1000))
	})
}

// Curve calculates the pH after adding each of the given volumes of
// titrant to the analyte. The points are returned in the order of volumes.
func (t *Titration) Curve(volumes []float64) ([]CurvePoint, error) {
	t.loadCache()
	o := make([]CurvePoint, len(volumes))
	errs := make([]error, len(volumes))

	var wg sync.WaitGroup
	wg.Add(len(volumes))
	for i, v := range volumes {
		go func(i int, v float64) {
			defer wg.Done()
			key := strconv.FormatFloat(v, 'g', -1, 64)
			r := t.cache.NewRequest(context.Background(), v, key)
			pH, err := r.Result()
			if err != nil {
				errs[i] = fmt.Errorf("phcalc: titrant volume %g: %w", v, err)
				return
			}
			o[i] = CurvePoint{Volume: v, PH: pH.(float64)}
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

// TitrantVolumes returns n evenly spaced volumes from 0 to max, inclusive.
func TitrantVolumes(max float64, n int) []float64 {
	if n < 2 {
		return []float64{max}
	}
	return floats.Span(make([]float64, n), 0, max)
}

// EquivalencePoint returns the point of the curve where the pH changes
// most steeply with added volume, which is the midpoint between the two
// curve points that bound the steepest segment. It returns false if the
// curve has fewer than two distinct volumes.
func EquivalencePoint(curve []CurvePoint) (CurvePoint, bool) {
	c := append([]CurvePoint(nil), curve...)
	sort.Slice(c, func(i, j int) bool { return c[i].Volume < c[j].Volume })

	var slopes []float64
	var segments []int
	for i := 1; i < len(c); i++ {
		dv := c[i].Volume - c[i-1].Volume
		if dv <= 0 {
			continue
		}
		slopes = append(slopes, math.Abs(c[i].PH-c[i-1].PH)/dv)
		segments = append(segments, i)
	}
	if len(slopes) == 0 {
		return CurvePoint{}, false
	}
	i := segments[floats.MaxIdx(slopes)]
	return CurvePoint{
		Volume: (c[i-1].Volume + c[i].Volume) / 2,
		PH:     (c[i-1].PH + c[i].PH) / 2,
	}, true
}
