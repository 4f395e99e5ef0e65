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

import "log"

// barnToSquareMeter converts a microscopic cross section from barns to
// square meters (1 barn = 1e-28 m^2).
const barnToSquareMeter = 1e-28

// CachedMaterial is a per-isotope snapshot of macroscopic cross
// sections and other energy-dependent properties at the energy the
// MaterialCache was last refreshed at.
type CachedMaterial struct {
	Name        string
	Fissionable bool
	AtomicMass  float64

	SigmaFission    float64 // Sigma_f, m^-1
	SigmaScatter    float64 // Sigma_s, m^-1
	SigmaAbsorption float64 // Sigma_a, m^-1

	NuBar float64
	WattA float64
	WattB float64
}

// SigmaTotal returns Sigma_f + Sigma_s + Sigma_a for this isotope.
func (c CachedMaterial) SigmaTotal() float64 {
	return c.SigmaFission + c.SigmaScatter + c.SigmaAbsorption
}

// MaterialCache holds the linearly-interpolated macroscopic properties
// of every isotope in a MaterialStore at one neutron energy. Contract
// (§4.1): Refresh must be called before any transport step reads the
// cache, and the cache is only valid for the energy it was last
// refreshed at.
type MaterialCache struct {
	store       *MaterialStore
	cached      [numIsotopes]CachedMaterial
	initialized bool
	energy      float64

	boundaryWarned [numIsotopes]bool
}

// NewMaterialCache creates an uninitialized cache over store.
func NewMaterialCache(store *MaterialStore) *MaterialCache {
	return &MaterialCache{store: store}
}

// Initialized reports whether Refresh has been called at least once.
func (c *MaterialCache) Initialized() bool { return c.initialized }

// Energy returns the energy the cache was last refreshed at.
func (c *MaterialCache) Energy() float64 { return c.energy }

// Get returns the cached properties for tag. Callers must not read
// this before Initialized() is true.
func (c *MaterialCache) Get(tag IsotopeTag) CachedMaterial {
	return c.cached[tagToIndex(tag)]
}

// Refresh recomputes every isotope's macroscopic cross sections, nu-bar
// and Watt parameters by linear interpolation of its tables at energy
// e (eV), per §4.1. Out-of-range queries clamp to the nearest
// tabulated endpoint and log a one-time warning per isotope.
func (c *MaterialCache) Refresh(e float64) {
	for i := range c.store.Isotopes {
		iso := c.store.Isotopes[i]
		if iso == nil {
			continue
		}
		sf, clampF := interpolate(iso.Fission, e)
		ss, clampS := interpolate(iso.Scatter, e)
		sa, clampA := interpolate(iso.Absorb, e)
		nu, clampN := interpolate(iso.NuBar, e)
		a, b, clampW := interpolateWatt(iso.WattData, e)

		if (clampF || clampS || clampA || clampN || clampW) && !c.boundaryWarned[i] {
			c.boundaryWarned[i] = true
			log.Printf("neutronmc: energy %g eV is outside the tabulated range for isotope %s; clamping to the nearest tabulated value", e, iso.Tag)
		}

		c.cached[i] = CachedMaterial{
			Name:            iso.Tag.String(),
			Fissionable:     iso.Fissionable,
			AtomicMass:      iso.AtomicMass,
			SigmaFission:    sf * iso.NumberDensity * barnToSquareMeter,
			SigmaScatter:    ss * iso.NumberDensity * barnToSquareMeter,
			SigmaAbsorption: sa * iso.NumberDensity * barnToSquareMeter,
			NuBar:           nu,
			WattA:           a,
			WattB:           b,
		}
	}
	c.energy = e
	c.initialized = true
}
