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
	"math/rand"
)

// wattEnergyMaxMeV is the upper bound for the interval searched when
// rejection-sampling the Watt spectrum.
const wattEnergyMaxMeV = 15.0

// wattPDF evaluates the Watt fission spectrum probability density at
// energy (MeV) for spectrum parameters a (MeV) and b (1/MeV).
func wattPDF(a, b, energyMeV float64) float64 {
	if energyMeV < 0 {
		return 0
	}
	norm := 2 * math.Exp(-a*b/4) / math.Sqrt(math.Pi*a*a*a*b)
	return norm * math.Exp(-energyMeV/a) * math.Sinh(math.Sqrt(b*energyMeV))
}

// wattPDFMax estimates the maximum of wattPDF over [0, wattEnergyMaxMeV]
// by grid search, used as the rejection-sampling envelope height.
func wattPDFMax(a, b float64) float64 {
	const steps = 2000
	max := 0.0
	for i := 0; i <= steps; i++ {
		e := wattEnergyMaxMeV * float64(i) / steps
		if p := wattPDF(a, b, e); p > max {
			max = p
		}
	}
	return max * 1.02 // small safety margin against grid-search undershoot
}

// sampleWattMeV draws one sample from the Watt spectrum with parameters
// (a,b) via uniform-envelope rejection sampling, up to 1000 trials. It
// reports ok=false if no sample was accepted, in which case the caller
// must substitute 1 MeV and log the failure once (§4.3, §7).
func sampleWattMeV(rng *rand.Rand, a, b float64) (energyMeV float64, ok bool) {
	if a <= 0 || b <= 0 {
		return 1.0, false
	}
	pmax := wattPDFMax(a, b)
	if pmax <= 0 {
		return 1.0, false
	}
	const maxTrials = 1000
	for trial := 0; trial < maxTrials; trial++ {
		e := rng.Float64() * wattEnergyMaxMeV
		u := rng.Float64() * pmax
		if u <= wattPDF(a, b, e) {
			return e, true
		}
	}
	return 1.0, false
}
