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
	"testing"

	"github.com/GaryBoone/GoStats/stats"
)

func TestNewNeutronSetsKinematics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n, ok := NewNeutron(Vec3{1, 2, 3}, 0, 0, u235WattA, u235WattB, rng)
	if !ok {
		t.Fatalf("unexpected Watt sampling failure")
	}
	if n.Energy <= 0 {
		t.Errorf("Energy = %v, want positive", n.Energy)
	}
	if n.Speed <= 0 {
		t.Errorf("Speed = %v, want positive", n.Speed)
	}
	if n.TimeStep != n.DistanceStep/n.Speed {
		t.Errorf("TimeStep = %v, want DistanceStep/Speed = %v", n.TimeStep, n.DistanceStep/n.Speed)
	}
	if n.Position != (Vec3{1, 2, 3}) {
		t.Errorf("Position = %v, want (1,2,3)", n.Position)
	}
}

func TestInitializeFromParentAdvancesGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	parent, _ := NewNeutron(Vec3{0, 0, 0}, 3, 1.5, u235WattA, u235WattB, rng)
	parent.Position = Vec3{5, 5, 5}
	parent.CurrentTime = 9.0

	child, _ := InitializeFromParent(parent, u235WattA, u235WattB, rng)
	if child.Generation != parent.Generation+1 {
		t.Errorf("child.Generation = %d, want %d", child.Generation, parent.Generation+1)
	}
	if child.Position != parent.Position {
		t.Errorf("child.Position = %v, want %v", child.Position, parent.Position)
	}
	if child.CreationTime != parent.CurrentTime {
		t.Errorf("child.CreationTime = %v, want %v", child.CreationTime, parent.CurrentTime)
	}
}

func TestTranslateAdvancesByDistanceStep(t *testing.T) {
	n := Neutron{Position: Vec3{0, 0, 0}, Direction: Vec3{1, 0, 0}, DistanceStep: 1e-3}
	n.Translate()
	want := Vec3{1e-3, 0, 0}
	if n.Position != want {
		t.Errorf("Position after Translate = %v, want %v", n.Position, want)
	}
}

func TestScatterConservesEnergyBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const atomicMass = 1.0 // hydrogen: maximal possible energy loss per collision
	for i := 0; i < 1000; i++ {
		n := Neutron{Energy: 2e6, Direction: RandomUnitVec3(rng)}
		before := n.Energy
		n.Scatter(atomicMass, rng, 1e9) // threshold so high HasScattered never trips here
		if n.Energy < 0 || n.Energy > before {
			t.Fatalf("scattered energy %v out of [0, %v]", n.Energy, before)
		}
	}
}

func TestScatterFlagsHasScatteredOnLargeEnergyLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var flagged bool
	for i := 0; i < 1000 && !flagged; i++ {
		n := Neutron{Energy: 2e6, Direction: RandomUnitVec3(rng)}
		n.Scatter(1.0, rng, 0.0) // any loss at all trips the flag
		if n.HasScattered {
			flagged = true
		}
	}
	if !flagged {
		t.Errorf("expected HasScattered to trip at least once across 1000 scatters with threshold 0")
	}
}

func TestFissionMultiplicityMeanMatchesNuBar(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const nuBar = 2.42
	var s stats.Stats
	const trials = 1000000
	n := Neutron{}
	for i := 0; i < trials; i++ {
		s.Update(float64(n.FissionMultiplicity(nuBar, rng)))
	}
	if mean := s.Mean(); mean < nuBar-0.05 || mean > nuBar+0.05 {
		t.Errorf("mean fission multiplicity = %v, want close to %v", mean, nuBar)
	}
}

// TestFissionMultiplicityNPlusOneFraction asserts §8 item 6 directly:
// for nuBar's fractional part f, the fraction of trials returning
// floor(nuBar)+1 rather than floor(nuBar) must itself be within 0.01
// of f.
func TestFissionMultiplicityNPlusOneFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	const nuBar = 2.42
	const wantFraction = 0.42 // nuBar's fractional part
	const trials = 1000000
	n := Neutron{}
	nPlusOne := 0
	for i := 0; i < trials; i++ {
		if n.FissionMultiplicity(nuBar, rng) == 3 {
			nPlusOne++
		}
	}
	got := float64(nPlusOne) / float64(trials)
	if math.Abs(got-wantFraction) > 0.01 {
		t.Errorf("fraction of n+1 outcomes = %v, want within 0.01 of %v", got, wantFraction)
	}
}

func TestFissionMultiplicityIsNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := Neutron{}
	for i := 0; i < 1000; i++ {
		if m := n.FissionMultiplicity(2.42, rng); m < 0 {
			t.Fatalf("FissionMultiplicity returned %d, want >= 0", m)
		}
	}
}

func TestInteractEscapedBeyondRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := Neutron{Position: Vec3{100, 0, 0}}
	if got := n.Interact(CachedMaterial{}, 1.0, 1.0, rng); got != Escaped {
		t.Errorf("Interact = %v, want Escaped", got)
	}
}

func TestInteractZeroCrossSectionIsNone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := Neutron{Position: Vec3{0, 0, 0}}
	if got := n.Interact(CachedMaterial{}, 0, 100, rng); got != None {
		t.Errorf("Interact with zero sigmaComp = %v, want None", got)
	}
}

func TestInteractTotalZeroDoesNotPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := Neutron{Position: Vec3{0, 0, 0}}
	// sigmaComp positive (guarantees pInteract ~ 1) but this isotope's
	// own cross section total is zero: must not divide by zero.
	mat := CachedMaterial{SigmaFission: 0, SigmaScatter: 0, SigmaAbsorption: 0}
	for i := 0; i < 100; i++ {
		if got := n.Interact(mat, 1e9, 100, rng); got != None {
			t.Fatalf("Interact with zero-total isotope = %v, want None", got)
		}
	}
}

func TestInteractOutcomeDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	mat := CachedMaterial{SigmaFission: 1, SigmaScatter: 1, SigmaAbsorption: 1}
	counts := map[InteractionOutcome]int{}
	const trials = 20000
	for i := 0; i < trials; i++ {
		n := Neutron{Position: Vec3{0, 0, 0}}
		counts[n.Interact(mat, 1e9, 100, rng)]++
	}
	if counts[Fission] == 0 || counts[Scattering] == 0 || counts[Absorption] == 0 {
		t.Errorf("expected all three channels to occur with equal cross sections, got %v", counts)
	}
}

func TestInteractionOutcomeString(t *testing.T) {
	cases := map[InteractionOutcome]string{
		None: "None", Scattering: "Scattering", Absorption: "Absorption",
		Fission: "Fission", Escaped: "Escaped",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", o, got, want)
		}
	}
}
