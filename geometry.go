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
	"fmt"
	"math"
	"math/rand"
)

// BoundingBox is an axis-aligned box used for fast rejection before a
// primitive's exact containment test runs (§4.2).
type BoundingBox struct {
	Min, Max Vec3
}

// Contains reports whether p lies within the box, inclusive of the
// boundary.
func (b BoundingBox) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Composition is one (isotope, atom fraction) pair in a part's
// material mixture.
type Composition struct {
	Isotope  IsotopeTag
	Fraction float64
}

// PartKind identifies which CSG primitive a Part holds.
type PartKind int

// The three primitive kinds (§3, §9 "tagged sum type").
const (
	SpherePart PartKind = iota
	CylinderPart
	CuboidPart
)

// Part is a tagged union of the three CSG primitives (sphere, cylinder,
// cuboid), each exposing the same capability set: IsInside,
// BoundingBox, Order and Composition (§9).
type Part struct {
	Kind PartKind

	Center Vec3

	// Sphere & cylinder.
	Radius float64

	// Cylinder only.
	Axis   Vec3 // unit vector
	Length float64

	// Cuboid only.
	Width, Depth, Height float64

	Order       int
	Composition []Composition

	bbox BoundingBox
}

// NewSpherePart builds a sphere primitive centered at center with
// radius r.
func NewSpherePart(center Vec3, r float64, order int, comp []Composition) Part {
	corner := Vec3{r, r, r}
	return Part{
		Kind:        SpherePart,
		Center:      center,
		Radius:      r,
		Order:       order,
		Composition: comp,
		bbox:        BoundingBox{Min: center.Sub(corner), Max: center.Add(corner)},
	}
}

// NewCylinderPart builds a cylinder primitive centered at center, with
// unit axis direction (normalized internally), length and radius r.
func NewCylinderPart(center, direction Vec3, length, r float64, order int, comp []Composition) Part {
	axis := direction.Scale(1 / direction.Norm())
	half := length / 2
	end1 := center.Add(axis.Scale(half))
	end2 := center.Add(axis.Scale(-half))
	corner := Vec3{r, r, r}
	return Part{
		Kind:        CylinderPart,
		Center:      center,
		Axis:        axis,
		Length:      length,
		Radius:      r,
		Order:       order,
		Composition: comp,
		bbox:        BoundingBox{Min: end1.Min(end2).Sub(corner), Max: end1.Max(end2).Add(corner)},
	}
}

// NewCuboidPart builds an axis-aligned cuboid primitive centered at
// center with the given width (x), depth (y) and height (z).
func NewCuboidPart(center Vec3, width, depth, height float64, order int, comp []Composition) Part {
	half := Vec3{width / 2, depth / 2, height / 2}
	return Part{
		Kind:        CuboidPart,
		Center:      center,
		Width:       width,
		Depth:       depth,
		Height:      height,
		Order:       order,
		Composition: comp,
		bbox:        BoundingBox{Min: center.Sub(half), Max: center.Add(half)},
	}
}

// BoundingBox returns the part's axis-aligned bounding box.
func (p Part) BoundingBox() BoundingBox { return p.bbox }

// IsInside reports whether p lies inside this primitive, after a fast
// bounding-box rejection (§4.2).
func (p Part) IsInside(pos Vec3) bool {
	if !p.bbox.Contains(pos) {
		return false
	}
	switch p.Kind {
	case SpherePart:
		return pos.Sub(p.Center).Norm2() <= p.Radius*p.Radius
	case CylinderPart:
		rel := pos.Sub(p.Center)
		a := rel.Dot(p.Axis)
		perp2 := rel.Norm2() - a*a
		return math.Abs(a) <= p.Length/2 && perp2 <= p.Radius*p.Radius
	case CuboidPart:
		return true // bounding-box test is exact for an axis-aligned cuboid
	default:
		return false
	}
}

// CompositionSum returns the sum of a part's composition fractions.
func CompositionSum(comp []Composition) float64 {
	sum := 0.0
	for _, c := range comp {
		sum += c.Fraction
	}
	return sum
}

// Geometry is the constructive solid geometry scene: an ordered set of
// parts plus the derived simulation range beyond which neutrons are
// declared Escaped (§4.2).
type Geometry struct {
	Parts           []Part
	simulationRange2 float64
}

// NewGeometry builds a Geometry from parts and computes its simulation
// range. It returns an error if any part's composition fractions do
// not sum to exactly 1.0 (§3, §7 — a fatal configuration error).
func NewGeometry(parts []Part) (*Geometry, error) {
	g := &Geometry{Parts: parts}
	if err := g.checkCompositions(); err != nil {
		return nil, err
	}
	g.computeSimulationRange()
	return g, nil
}

// checkCompositions validates that every part's composition fractions
// sum to exactly 1.0 (§8 item 2).
func (g *Geometry) checkCompositions() error {
	for i, p := range g.Parts {
		if sum := CompositionSum(p.Composition); sum != 1.0 {
			return fmt.Errorf("neutronmc: part %d (kind %v, order %d) has composition fractions summing to %v, not 1.0", i, p.Kind, p.Order, sum)
		}
	}
	return nil
}

// computeSimulationRange implements §4.2's simulation_range^2: parts
// with order <= -1 are excluded so they can serve as an unbounded
// background (e.g. a coolant pool) without inflating the escape
// radius.
func (g *Geometry) computeSimulationRange() {
	max := 0.0
	for _, p := range g.Parts {
		if p.Order <= -1 {
			continue
		}
		if n := p.bbox.Min.Norm2(); n > max {
			max = n
		}
		if n := p.bbox.Max.Norm2(); n > max {
			max = n
		}
	}
	g.simulationRange2 = max
}

// SimulationRange2 returns the squared escape radius computed from the
// geometry's non-background parts.
func (g *Geometry) SimulationRange2() float64 { return g.simulationRange2 }

// MaterialIndex resolves a position to a winning part (by largest
// Order; on equal Order the first part seen wins, since a later part
// needs a strictly greater Order to replace it), samples one isotope
// from its composition weighted by composition-fraction times total
// cross section, and returns that isotope plus the composition's total
// macroscopic cross section. If no part matches, or the composition's
// total cross section is zero, it returns (Void, 0) per §4.2 rule 4.
func (g *Geometry) MaterialIndex(rng *rand.Rand, cache *MaterialCache, pos Vec3) (IsotopeTag, float64) {
	maxOrder := math.MinInt64
	var winner []Composition
	found := false
	for _, p := range g.Parts {
		if p.IsInside(pos) && p.Order > maxOrder {
			maxOrder = p.Order
			winner = p.Composition
			found = true
		}
	}
	if !found {
		return Void, 0
	}

	sigmaComp := 0.0
	for _, c := range winner {
		sigmaComp += c.Fraction * cache.Get(c.Isotope).SigmaTotal()
	}
	if sigmaComp <= 0 {
		return Void, 0
	}

	xi := rng.Float64()
	cumulative := 0.0
	for _, c := range winner {
		share := c.Fraction * cache.Get(c.Isotope).SigmaTotal() / sigmaComp
		if xi >= cumulative && xi < cumulative+share {
			return c.Isotope, sigmaComp
		}
		cumulative += share
	}
	// Numerical residue: xi landed at or past 1-epsilon. Return the
	// last isotope in the composition rather than falling through to
	// Void, matching the "last bucket absorbs the residual" rule used
	// for the interaction-channel selection in Neutron.Interact (§4.3, §9
	// open question 3).
	if len(winner) > 0 {
		return winner[len(winner)-1].Isotope, sigmaComp
	}
	return Void, 0
}
