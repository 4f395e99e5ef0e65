/*
Copyright © 2026 the neutronmc authors.
This file is part of neutronmc.

neutronmc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

neutronmc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with neutronmc.  If not, see <http://www.gnu.org/licenses/>.
*/

package neutronmc

import "sort"

// EnergyPoint is one row of a tabulated energy-dependent quantity, e.g.
// (energy, cross section) or (energy, nu-bar).
type EnergyPoint struct {
	Energy float64
	Value  float64
}

// WattPoint is one row of the tabulated Watt spectrum parameters.
type WattPoint struct {
	Energy float64
	A, B   float64
}

// interpolate performs linear interpolation of table (sorted ascending
// by Energy) at energy e via binary search for the bracketing interval.
// A table of length 0 returns 0. A table of length 1 returns its sole
// value (non-fissionable / no-data isotopes encode this way). Energies
// outside the table are clamped to the nearest endpoint; clamped is
// true when that happened.
func interpolate(table []EnergyPoint, e float64) (value float64, clamped bool) {
	switch len(table) {
	case 0:
		return 0, false
	case 1:
		return table[0].Value, false
	}
	if e <= table[0].Energy {
		return table[0].Value, e < table[0].Energy
	}
	last := table[len(table)-1]
	if e >= last.Energy {
		return last.Value, e > last.Energy
	}
	// binary search for the smallest index i such that table[i].Energy > e
	i := sort.Search(len(table), func(i int) bool {
		return table[i].Energy > e
	})
	lo, hi := table[i-1], table[i]
	frac := (e - lo.Energy) / (hi.Energy - lo.Energy)
	return lo.Value + frac*(hi.Value-lo.Value), false
}

// interpolateWatt performs linear interpolation of a and b simultaneously
// using the same energy bracket, per §4.1.
func interpolateWatt(table []WattPoint, e float64) (a, b float64, clamped bool) {
	switch len(table) {
	case 0:
		return 0, 0, false
	case 1:
		return table[0].A, table[0].B, false
	}
	if e <= table[0].Energy {
		return table[0].A, table[0].B, e < table[0].Energy
	}
	last := table[len(table)-1]
	if e >= last.Energy {
		return last.A, last.B, e > last.Energy
	}
	i := sort.Search(len(table), func(i int) bool {
		return table[i].Energy > e
	})
	lo, hi := table[i-1], table[i]
	frac := (e - lo.Energy) / (hi.Energy - lo.Energy)
	return lo.A + frac*(hi.A-lo.A), lo.B + frac*(hi.B-lo.B), false
}
