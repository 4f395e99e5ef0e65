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

// Physical constants (§4.3).
const (
	neutronMass  = 1.67492749804e-27 // kg
	eVToJoule    = 1.60218e-19       // C, used to convert eV to Joules
	speedOfLight = 299792458.0       // m/s, display only
	distanceStep = 1e-3              // Delta-s, m, constant translation step
)

// InteractionOutcome is the result of one call to Neutron.Interact.
type InteractionOutcome int

const (
	None InteractionOutcome = iota
	Scattering
	Absorption
	Fission
	Escaped
)

func (o InteractionOutcome) String() string {
	switch o {
	case None:
		return "None"
	case Scattering:
		return "Scattering"
	case Absorption:
		return "Absorption"
	case Fission:
		return "Fission"
	case Escaped:
		return "Escaped"
	default:
		return "Unknown"
	}
}

// Neutron is one particle's transport state (§3). It is owned
// exclusively by the Scheduler while alive.
type Neutron struct {
	Energy   float64 // eV
	Speed    float64 // m/s
	Position Vec3
	Direction Vec3

	CreationTime float64
	CurrentTime  float64

	DistanceStep float64 // Delta-s, constant
	TimeStep     float64 // Delta-t = Delta-s / v, fixed at birth

	Generation int

	HasScattered bool
}

// NewNeutron creates a neutron at position, born in the given
// generation at creationTime, with its energy drawn from the Watt
// spectrum (a,b). ok is false if Watt rejection sampling was exhausted,
// in which case the neutron's energy was substituted with 1 MeV (§4.3,
// §7); the caller is responsible for logging that failure once.
func NewNeutron(position Vec3, generation int, creationTime, wattA, wattB float64, rng *rand.Rand) (Neutron, bool) {
	energyMeV, ok := sampleWattMeV(rng, wattA, wattB)
	energy := energyMeV * 1e6 // eV

	speed := math.Sqrt(2 * energy * eVToJoule / neutronMass)
	n := Neutron{
		Energy:       energy,
		Speed:        speed,
		Position:     position,
		Direction:    RandomUnitVec3(rng),
		CreationTime: creationTime,
		CurrentTime:  creationTime,
		DistanceStep: distanceStep,
		TimeStep:     distanceStep / speed,
		Generation:   generation,
	}
	return n, ok
}

// InitializeFromParent creates a child neutron inheriting parent's
// position and current time, one generation deeper (§4.3
// "initialize(parent, a, b, rng)").
func InitializeFromParent(parent Neutron, wattA, wattB float64, rng *rand.Rand) (Neutron, bool) {
	return NewNeutron(parent.Position, parent.Generation+1, parent.CurrentTime, wattA, wattB, rng)
}

// Translate advances the neutron's position by one distance step along
// its current direction (§4.3).
func (n *Neutron) Translate() {
	n.Position = n.Position.Add(n.Direction.Scale(n.DistanceStep))
}

// Scatter performs an isotropic elastic scatter off a nucleus of
// atomic mass A, updating direction and energy with correct
// center-of-mass-to-lab kinematics, and flags HasScattered if the
// fractional energy loss exceeded deltaEThreshold (cache staleness
// signal, §4.1/§4.3).
func (n *Neutron) Scatter(atomicMass float64, rng *rand.Rand, deltaEThreshold float64) {
	newDirection := RandomUnitVec3(rng)
	cosTheta := n.Direction.Dot(newDirection)

	ratio := (atomicMass*atomicMass + 1 + 2*atomicMass*cosTheta) / ((atomicMass + 1) * (atomicMass + 1))

	n.Direction = newDirection
	if (1.0 - ratio) > deltaEThreshold {
		n.HasScattered = true
	}
	n.Energy *= ratio
}

// FissionMultiplicity samples the number of neutrons produced by a
// fission event with mean multiplicity nuBar, via the standard
// floor-plus-fractional-probability scheme (§4.3).
func (n *Neutron) FissionMultiplicity(nuBar float64, rng *rand.Rand) int {
	floor := math.Floor(nuBar)
	frac := nuBar - floor
	if frac > 0 && rng.Float64() <= frac {
		return int(floor) + 1
	}
	return int(floor)
}

// Interact samples whether, and how, the neutron interacts during this
// step (§4.3). mat is the winning composition's per-isotope cached
// properties for the isotope select by Geometry.MaterialIndex at the
// neutron's current position, sigmaComp is that composition's total
// macroscopic cross section, and range2 is Geometry.SimulationRange2.
func (n *Neutron) Interact(mat CachedMaterial, sigmaComp, range2 float64, rng *rand.Rand) InteractionOutcome {
	if n.Position.Norm2() >= range2 {
		return Escaped
	}

	pInteract := 1 - math.Exp(-n.DistanceStep*sigmaComp)
	xi := rng.Float64()
	if xi > pInteract {
		return None
	}

	total := mat.SigmaTotal()
	if total <= 0 {
		// sigmaComp > 0 but this isotope carries no cross section of
		// its own: treat as a no-op interaction rather than divide by
		// zero (§4.3 "numerical edge cases").
		return None
	}

	eta := rng.Float64()
	piF := mat.SigmaFission / total
	piS := mat.SigmaScatter / total

	switch {
	case eta < piF:
		return Fission
	case eta < piF+piS:
		return Scattering
	default:
		// Any residual bucket — including eta landing at or past
		// 1-epsilon due to rounding — is Absorption (§9 open question
		// 3).
		return Absorption
	}
}
