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
	"io/ioutil"

	"github.com/BurntSushi/toml"
)

// compositionEntry is one [[spheres.composition]]-style TOML table:
// an isotope name and its atom fraction.
type compositionEntry struct {
	Isotope  string
	Fraction float64
}

func (e compositionEntry) toComposition() (Composition, error) {
	tag, ok := isotopeTagByName(e.Isotope)
	if !ok {
		return Composition{}, fmt.Errorf("neutronmc: unknown isotope %q in geometry file", e.Isotope)
	}
	return Composition{Isotope: tag, Fraction: e.Fraction}, nil
}

type sphereSpec struct {
	CenterX, CenterY, CenterZ float64
	Radius                    float64
	Order                     int
	Composition               []compositionEntry
}

type cylinderSpec struct {
	CenterX, CenterY, CenterZ float64
	AxisX, AxisY, AxisZ       float64
	Length, Radius            float64
	Order                     int
	Composition               []compositionEntry
}

type cuboidSpec struct {
	CenterX, CenterY, CenterZ float64
	Width, Depth, Height      float64
	Order                     int
	Composition               []compositionEntry
}

// geometryFile is the top-level shape of a TOML geometry description
// (§3, §4.2, §6): an unordered bag of primitives, each carrying its own
// order and composition.
type geometryFile struct {
	Spheres   []sphereSpec
	Cylinders []cylinderSpec
	Cuboids   []cuboidSpec
}

func toComposition(entries []compositionEntry) ([]Composition, error) {
	comp := make([]Composition, len(entries))
	for i, e := range entries {
		c, err := e.toComposition()
		if err != nil {
			return nil, err
		}
		comp[i] = c
	}
	return comp, nil
}

// LoadGeometryFile reads a TOML geometry description from filename and
// builds the Geometry it describes (§4.2, §6). It returns an error if
// the file cannot be read or parsed, if any composition references an
// unknown isotope, or if NewGeometry's composition-sum validation
// fails.
func LoadGeometryFile(filename string) (*Geometry, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("neutronmc: could not read geometry file %q: %v", filename, err)
	}

	var gf geometryFile
	if _, err := toml.Decode(string(raw), &gf); err != nil {
		return nil, fmt.Errorf("neutronmc: could not parse geometry file %q: %v", filename, err)
	}

	var parts []Part
	for i, s := range gf.Spheres {
		comp, err := toComposition(s.Composition)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %v", i, err)
		}
		parts = append(parts, NewSpherePart(Vec3{s.CenterX, s.CenterY, s.CenterZ}, s.Radius, s.Order, comp))
	}
	for i, s := range gf.Cylinders {
		comp, err := toComposition(s.Composition)
		if err != nil {
			return nil, fmt.Errorf("cylinder %d: %v", i, err)
		}
		axis := Vec3{s.AxisX, s.AxisY, s.AxisZ}
		parts = append(parts, NewCylinderPart(Vec3{s.CenterX, s.CenterY, s.CenterZ}, axis, s.Length, s.Radius, s.Order, comp))
	}
	for i, s := range gf.Cuboids {
		comp, err := toComposition(s.Composition)
		if err != nil {
			return nil, fmt.Errorf("cuboid %d: %v", i, err)
		}
		parts = append(parts, NewCuboidPart(Vec3{s.CenterX, s.CenterY, s.CenterZ}, s.Width, s.Depth, s.Height, s.Order, comp))
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("neutronmc: geometry file %q defines no parts", filename)
	}
	return NewGeometry(parts)
}

func isotopeTagByName(name string) (IsotopeTag, bool) {
	for i := 0; i < int(numIsotopes); i++ {
		tag := indexToTag(i)
		if tag.String() == name {
			return tag, true
		}
	}
	return Void, false
}
