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
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestCachedSolver(t *testing.T) {
	c := NewCachedSolver(nil, 10)
	solution := []*Species{mustSpecies(t, true, 0.1, 2.12, 7.21, 12.67)}
	want := solve(t, solution, Water())

	for i := 0; i < 3; i++ {
		pH, err := c.Solve(solution, Water())
		if err != nil {
			t.Fatal(err)
		}
		if pH != want {
			t.Errorf("have %g, want %g", pH, want)
		}
	}
	if hits, misses := c.Stats(); hits != 2 || misses != 1 {
		t.Errorf("have %d hits and %d misses, want 2 and 1", hits, misses)
	}

	// An equal but separately created solution shares the cached result.
	other := []*Species{mustSpecies(t, true, 0.1, 12.67, 7.21, 2.12)}
	if _, err := c.Solve(other, Water()); err != nil {
		t.Fatal(err)
	}
	if hits, _ := c.Stats(); hits != 3 {
		t.Errorf("have %d hits, want 3", hits)
	}
}

func TestCachedSolverErrors(t *testing.T) {
	s := DefaultSolver()
	s.Log, _ = logtest.NewNullLogger()
	c := NewCachedSolver(s, 10)
	solvent, err := NewSolvent(-800, -400, 400)
	if err != nil {
		t.Fatal(err)
	}
	solution := []*Species{mustSpecies(t, true, 0.1, 2, 7)}
	for i := 0; i < 2; i++ {
		if _, err := c.Solve(solution, solvent); !errors.Is(err, ErrInconsistentBracket) {
			t.Errorf("have %v, want %v", err, ErrInconsistentBracket)
		}
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 2 {
		t.Errorf("errors should not be cached: %d hits, %d misses", hits, misses)
	}
}

func TestCachedSolverConcurrent(t *testing.T) {
	c := NewCachedSolver(nil, 2)
	solutions := [][]*Species{
		{mustSpecies(t, true, 0.1, 4.76)},
		{mustSpecies(t, false, 0.1, 9.24)},
		{mustSpecies(t, true, 0.01, -3)},
	}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := c.Solve(solutions[i%len(solutions)], Water()); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	if hits, misses := c.Stats(); hits+misses != 30 {
		t.Errorf("have %d requests, want 30", hits+misses)
	}
}
