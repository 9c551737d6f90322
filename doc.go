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

// Package phcalc calculates the equilibrium pH of aqueous solutions
// containing arbitrary mixtures of (possibly polyprotic) acids and bases.
//
// A solution is described by a slice of *Species and a Solvent. The pH is
// the root of the solution's charge balance,
//
//	[H+] = Ki/[H+] + Σ acids C·N/D − Σ bases C·N/D,
//
// where N/D is the average number of protons a species has released
// (acids) or taken up (bases) at the given pH. The root is located by
// bracketed bisection over the solvent's admissible pH range; when no root
// lies inside the range the nearest bound is returned.
//
// Ideal dilute-solution behavior is assumed: there are no activity
// corrections, and equilibrium constants do not depend on temperature.
package phcalc

// Version gives the version number.
const Version = "0.1.0"
