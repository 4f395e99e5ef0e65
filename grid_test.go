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

import (
	"math"
	"testing"
)

func TestGridDeltasAndCellVolume(t *testing.T) {
	g := NewGrid(Vec3{0, 0, 0}, 10, 20, 30, 10, 20, 30)
	dx, dy, dz := g.Deltas()
	if dx != 1 || dy != 1 || dz != 1 {
		t.Errorf("Deltas() = (%v, %v, %v), want (1, 1, 1)", dx, dy, dz)
	}
	if math.Abs(g.CellVolume()-1.0) > floatTolerance {
		t.Errorf("CellVolume() = %v, want 1", g.CellVolume())
	}
}

func TestGridSizeIncludesPadding(t *testing.T) {
	g := NewGrid(Vec3{}, 1, 1, 1, 2, 3, 4)
	want := (2 + 1) * (3 + 1) * (4 + 1)
	if g.Size() != want {
		t.Errorf("Size() = %d, want %d", g.Size(), want)
	}
}

func TestGridBinIndexInsideAndOutsideDomain(t *testing.T) {
	g := NewGrid(Vec3{0, 0, 0}, 10, 10, 10, 10, 10, 10)

	if _, ok := g.BinIndex(Vec3{0, 0, 0}); !ok {
		t.Errorf("center of the grid should be a valid bin")
	}
	if _, ok := g.BinIndex(Vec3{100, 100, 100}); ok {
		t.Errorf("far outside the grid should not be a valid bin")
	}
}

func TestGridCellCenterRoundTrip(t *testing.T) {
	g := NewGrid(Vec3{0, 0, 0}, 10, 10, 10, 10, 10, 10)
	x, y, z := g.CellCoords(Vec3{0.05, 0.05, 0.05})
	center := g.CellCenter(x, y, z)
	// The query point should fall back into the same cell its center
	// maps to.
	x2, y2, z2 := g.CellCoords(center)
	if x != x2 || y != y2 || z != z2 {
		t.Errorf("CellCenter is not self-consistent with CellCoords: (%d,%d,%d) vs (%d,%d,%d)", x, y, z, x2, y2, z2)
	}
}

func TestGridFlatIndexIsUniquePerCell(t *testing.T) {
	g := NewGrid(Vec3{}, 1, 1, 1, 3, 3, 3)
	seen := map[int]bool{}
	for x := 0; x <= g.LengthCount; x++ {
		for y := 0; y <= g.DepthCount; y++ {
			for z := 0; z <= g.HeightCount; z++ {
				idx := g.FlatIndex(x, y, z)
				if seen[idx] {
					t.Fatalf("FlatIndex(%d,%d,%d) = %d collides with a previous cell", x, y, z, idx)
				}
				seen[idx] = true
			}
		}
	}
}
