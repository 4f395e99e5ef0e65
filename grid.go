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

import "math"

// Grid is an axis-aligned binning box shared by the diagnostics tally,
// the geometry plot export and the heat diffusion solver (§3). It
// allocates one extra row/column/layer in each axis so that neighbor
// lookups near the domain boundary never go out of bounds.
type Grid struct {
	Center                               Vec3
	TotalLength, TotalDepth, TotalHeight  float64
	LengthCount, DepthCount, HeightCount  int
}

// NewGrid builds a Grid. Counts must be positive.
func NewGrid(center Vec3, length, depth, height float64, lengthCount, depthCount, heightCount int) Grid {
	return Grid{
		Center:      center,
		TotalLength: length, TotalDepth: depth, TotalHeight: height,
		LengthCount: lengthCount, DepthCount: depthCount, HeightCount: heightCount,
	}
}

// Deltas returns the cell size (dx, dy, dz).
func (g Grid) Deltas() (dx, dy, dz float64) {
	return g.TotalLength / float64(g.LengthCount),
		g.TotalDepth / float64(g.DepthCount),
		g.TotalHeight / float64(g.HeightCount)
}

// CellVolume returns the volume of one grid cell.
func (g Grid) CellVolume() float64 {
	dx, dy, dz := g.Deltas()
	return dx * dy * dz
}

// origin returns the grid's minimum corner (the position of cell
// (0,0,0)'s lower-left-front corner).
func (g Grid) origin() Vec3 {
	return g.Center.Sub(Vec3{g.TotalLength / 2, g.TotalDepth / 2, g.TotalHeight / 2})
}

// Size returns the number of cells backing a flat bin array, including
// the one-cell padding row/column/layer in each axis ((L+1)(D+1)(H+1)).
func (g Grid) Size() int {
	return (g.LengthCount + 1) * (g.DepthCount + 1) * (g.HeightCount + 1)
}

// FlatIndex computes the flat array index for integer cell coordinates
// (x,y,z), valid for 0 <= x <= L, 0 <= y <= D, 0 <= z <= H.
func (g Grid) FlatIndex(x, y, z int) int {
	return x + y*(g.LengthCount+1) + z*(g.LengthCount+1)*(g.DepthCount+1)
}

// CellCoords returns the integer cell coordinates containing p.
func (g Grid) CellCoords(p Vec3) (x, y, z int) {
	dx, dy, dz := g.Deltas()
	o := g.origin()
	return int(math.Floor((p.X - o.X) / dx)),
		int(math.Floor((p.Y - o.Y) / dy)),
		int(math.Floor((p.Z - o.Z) / dz))
}

// BinIndex converts a position to a flat bin index. ok is false if p
// falls outside the L x D x H domain of real cells (the padding
// row/column/layer is reserved for neighbor lookups, not for tallying
// or occupancy).
func (g Grid) BinIndex(p Vec3) (index int, ok bool) {
	x, y, z := g.CellCoords(p)
	if x < 0 || x >= g.LengthCount || y < 0 || y >= g.DepthCount || z < 0 || z >= g.HeightCount {
		return 0, false
	}
	return g.FlatIndex(x, y, z), true
}

// CellCenter returns the center position of cell (x,y,z).
func (g Grid) CellCenter(x, y, z int) Vec3 {
	dx, dy, dz := g.Deltas()
	o := g.origin()
	return Vec3{
		X: o.X + (float64(x)+0.5)*dx,
		Y: o.Y + (float64(y)+0.5)*dy,
		Z: o.Z + (float64(z)+0.5)*dz,
	}
}
