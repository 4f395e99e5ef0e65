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

// Package neutronmc implements a continuous-energy Monte Carlo neutron
// transport engine for criticality and reactor physics studies.
package neutronmc

import (
	"math"
	"math/rand"
)

// Vec3 is a three-component floating point vector used for neutron
// positions, directions, and geometry centers throughout the model.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm2 returns the squared Euclidean norm of v.
func (v Vec3) Norm2() float64 {
	return v.Dot(v)
}

// Norm returns the Euclidean norm of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// Min returns the componentwise minimum of v and w.
func (v Vec3) Min(w Vec3) Vec3 {
	return Vec3{math.Min(v.X, w.X), math.Min(v.Y, w.Y), math.Min(v.Z, w.Z)}
}

// Max returns the componentwise maximum of v and w.
func (v Vec3) Max(w Vec3) Vec3 {
	return Vec3{math.Max(v.X, w.X), math.Max(v.Y, w.Y), math.Max(v.Z, w.Z)}
}

// RandomUnitVec3 draws a uniformly distributed unit vector by sampling
// three components uniformly in [-1,1], normalizing, and rejecting the
// degenerate zero vector.
func RandomUnitVec3(rng *rand.Rand) Vec3 {
	for {
		v := Vec3{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		n2 := v.Norm2()
		if n2 > 1e-18 {
			return v.Scale(1 / math.Sqrt(n2))
		}
	}
}
