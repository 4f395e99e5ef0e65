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

// NewSphereGeometry builds a single sphere of the given
// composition, centered at the origin, as the lone non-background part
// (§3, §4.2).
func NewSphereGeometry(radius float64, comp []Composition, order int) (*Geometry, error) {
	return NewGeometry([]Part{
		NewSpherePart(Vec3{}, radius, order, comp),
	})
}

// NewDefaultSphereGeometry builds a pure U235 sphere of the given
// radius, useful for the infinite-medium / bare-critical-radius class
// of scenarios.
func NewDefaultSphereGeometry(radius float64) (*Geometry, error) {
	return NewSphereGeometry(radius, []Composition{{Isotope: U235, Fraction: 1.0}}, 1)
}

// godivaRadius and godivaComposition reproduce the Godiva bare-metal
// critical assembly benchmark (94% U235 / 6% U238 by atom fraction,
// critical near r = 0.087037 m), per Burgio et al. 2004.
const godivaRadius = 0.087037

var godivaComposition = []Composition{
	{Isotope: U238, Fraction: 0.06},
	{Isotope: U235, Fraction: 0.94},
}

// NewGodivaGeometry builds the Godiva reference critical sphere.
func NewGodivaGeometry() (*Geometry, error) {
	return NewSphereGeometry(godivaRadius, godivaComposition, 1)
}

var waterComposition = []Composition{
	{Isotope: H1, Fraction: 2.0 / 3.0},
	{Isotope: O16, Fraction: 1.0 / 3.0},
}

// NewWaterBodyGeometry builds a large pure-water sphere, used as a
// non-fissionable absorbing/moderating medium in escape-track and
// starvation scenarios.
func NewWaterBodyGeometry(radius float64) (*Geometry, error) {
	return NewSphereGeometry(radius, waterComposition, 1)
}

// PlateReactorConfig parameterizes NewPlateReactorGeometry.
type PlateReactorConfig struct {
	PlateThickness float64

	PlateWidth, PlateHeight float64
	PlateSeparation         float64
	PlateCount              int

	BackgroundWaterSize float64
}

// DefaultPlateReactorConfig returns the preset's original dimensions:
// five 0.50m x 0.50m uranium-fuel plates spaced 0.10m apart inside a
// 10m water reflector/moderator cube.
func DefaultPlateReactorConfig(plateThickness float64) PlateReactorConfig {
	return PlateReactorConfig{
		PlateThickness:      plateThickness,
		PlateWidth:          0.50,
		PlateHeight:         0.50,
		PlateSeparation:     0.10,
		PlateCount:          5,
		BackgroundWaterSize: 10.0,
	}
}

// uraniumFuelComposition is the plate reactor's fuel mixture (94% U235
// / 6% U238 by atom fraction, matching godivaComposition's ratio).
var uraniumFuelComposition = []Composition{
	{Isotope: U238, Fraction: 0.06},
	{Isotope: U235, Fraction: 0.94},
}

// NewPlateReactorGeometry builds a row of parallel uranium-fuel plates
// immersed in a background water cuboid acting as moderator and
// reflector (§3, §4.2). The water cuboid carries Order -1 so it is
// excluded from the escape-radius calculation and can extend well
// beyond the fuel without inflating SimulationRange2.
func NewPlateReactorGeometry(cfg PlateReactorConfig) (*Geometry, error) {
	origin := Vec3{}

	water := NewCuboidPart(origin, cfg.BackgroundWaterSize, cfg.BackgroundWaterSize, cfg.BackgroundWaterSize, -1, waterComposition)
	parts := []Part{water}

	for i := 0; i < cfg.PlateCount; i++ {
		x := float64(i) * (cfg.PlateThickness + cfg.PlateSeparation)
		center := Vec3{X: x, Y: origin.Y, Z: origin.Z}
		plate := NewCuboidPart(center, cfg.PlateThickness, cfg.PlateWidth, cfg.PlateHeight, 1, uraniumFuelComposition)
		parts = append(parts, plate)
	}

	return NewGeometry(parts)
}
