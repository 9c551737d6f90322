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
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// CachedSolver remembers the results of previous calculations so that
// front ends recalculating an unchanged solution do not repeat the search.
// It is safe for concurrent use. Failed calculations are not cached.
type CachedSolver struct {
	solver *Solver

	mu    sync.Mutex
	cache *lru.Cache

	hits, misses int
}

// NewCachedSolver returns a CachedSolver that wraps s and keeps at most
// maxEntries results. If s is nil, DefaultSolver() is used.
func NewCachedSolver(s *Solver, maxEntries int) *CachedSolver {
	if s == nil {
		s = DefaultSolver()
	}
	return &CachedSolver{
		solver: s,
		cache:  lru.New(maxEntries),
	}
}

// Solve returns the equilibrium pH of the solution, using a stored result
// if the same solution has been solved before.
func (c *CachedSolver) Solve(solution []*Species, solvent Solvent) (float64, error) {
	key := fingerprint(solution, solvent)
	c.mu.Lock()
	if v, ok := c.cache.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		return v.(float64), nil
	}
	c.misses++
	c.mu.Unlock()

	pH, err := c.solver.Solve(solution, solvent)
	if err != nil {
		return pH, err
	}
	c.mu.Lock()
	c.cache.Add(key, pH)
	c.mu.Unlock()
	return pH, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedSolver) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// fingerprint returns a key that uniquely identifies the solution and
// solvent. Species order is kept because it affects the floating point
// summation order.
func fingerprint(solution []*Species, solvent Solvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%x:%x:%x", math.Float64bits(solvent.pKi),
		math.Float64bits(solvent.minPH), math.Float64bits(solvent.maxPH))
	for _, s := range solution {
		fmt.Fprintf(&b, "|%t:%x", s.acid, math.Float64bits(s.conc))
		for _, k := range s.ka {
			fmt.Fprintf(&b, ":%x", math.Float64bits(k))
		}
	}
	return b.String()
}
