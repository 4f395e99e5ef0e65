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
	"log"
	"math"
	"math/rand"
)

// SimulationConfig is everything one worker needs to run an independent
// transport simulation to completion (§3, §4.4, §4.5, §6).
type SimulationConfig struct {
	Geometry  *Geometry
	Materials *MaterialStore
	Grid      Grid

	InitialPopulation int
	TargetPopulation  int
	VarianceReduction bool

	MaxNeutrons    int64
	MaxGenerations int
	MaxFissions    int64

	HaltTime    float64
	HaltTimeSet bool

	// DeltaEThreshold is the fractional energy-loss threshold above
	// which a scatter marks the neutron stale for cache purposes
	// (§4.1/§4.3).
	DeltaEThreshold float64

	Diagnostics DiagnosticsConfig
}

// starvationFactor bounds how many rejection-sampling trials Setup will
// spend looking for a fissionable seed position before giving up, as a
// multiple of the requested initial population (§4.5, §7).
const starvationFactor = 1000

// seedInitialPopulation rejection-samples InitialPopulation positions
// uniformly within the geometry's bounding cube, keeping only positions
// that land on fissionable material, and adds them to the scheduler as
// generation-0 neutrons. It returns an error if it exhausts
// starvationFactor*InitialPopulation trials without finding enough
// positions (§4.5, §7 "non-fissionable starvation").
func seedInitialPopulation(cfg SimulationConfig, sched *Scheduler, cache *MaterialCache, diag *Diagnostics, rng *rand.Rand) error {
	if cfg.InitialPopulation <= 0 {
		return fmt.Errorf("neutronmc: initial population must be positive, got %d", cfg.InitialPopulation)
	}
	half := math.Sqrt(cfg.Geometry.SimulationRange2())
	if half <= 0 {
		return fmt.Errorf("neutronmc: geometry has zero simulation range; no fissionable region to seed from")
	}
	// MaterialIndex and the Watt parameters below read the cache, so fill
	// it once at a representative fast energy before the first sample.
	if !cache.Initialized() {
		cache.Refresh(1e6)
	}

	maxTrials := starvationFactor * cfg.InitialPopulation
	found := 0
	warned := false
	for trial := 0; found < cfg.InitialPopulation; trial++ {
		if trial >= maxTrials {
			return fmt.Errorf("neutronmc: could not find %d fissionable seed positions after %d trials; geometry may contain no fissionable material", cfg.InitialPopulation, maxTrials)
		}
		if trial > 0 && trial%cfg.InitialPopulation == 0 && !warned && trial >= cfg.InitialPopulation {
			warned = true
			log.Printf("neutronmc: still searching for fissionable seed positions after %d trials (%d/%d found)", trial, found, cfg.InitialPopulation)
		}

		pos := Vec3{
			X: (rng.Float64()*2 - 1) * half,
			Y: (rng.Float64()*2 - 1) * half,
			Z: (rng.Float64()*2 - 1) * half,
		}
		tag, _ := cfg.Geometry.MaterialIndex(rng, cache, pos)
		iso := cfg.Materials.Get(tag)
		if iso == nil || !iso.Fissionable {
			continue
		}

		n, ok := NewNeutron(pos, 0, 0, cache.Get(tag).WattA, cache.Get(tag).WattB, rng)
		if !ok {
			log.Printf("neutronmc: Watt spectrum rejection sampling exhausted while seeding; substituting 1 MeV")
		}
		sched.Add(n)
		diag.RecordNeutronCreated()
		found++
	}
	return nil
}

// RunSimulation seeds and drives one complete transport simulation
// (§4.5), returning the accumulated diagnostics. cfg.Geometry and
// cfg.Materials are read-only and may be shared across concurrently
// running simulations; rng must not be.
func RunSimulation(cfg SimulationConfig, rng *rand.Rand) (*Diagnostics, error) {
	cache := NewMaterialCache(cfg.Materials)
	sched := NewScheduler(cfg.TargetPopulation, cfg.VarianceReduction)
	diag := NewDiagnostics(cfg.Grid, cfg.Diagnostics)

	if err := seedInitialPopulation(cfg, sched, cache, diag, rng); err != nil {
		return nil, err
	}

	// Bring the seeded population into the current buffer as
	// generation 0, applying variance reduction if it overshoots or
	// undershoots the target population.
	gen0, _ := sched.FlipIfEmpty(rng)
	diag.RecordGeneration(int64(gen0))
	currentGeneration := 0
	fissionWarnedSpectrum := false

	// forceRefresh is true whenever the neutron about to be fetched as
	// the scheduler's head is not the one the previous iteration just
	// stepped — a brand new generation (after a flip) or a brand new
	// head brought in by a swap-remove (after Escaped/Absorption/
	// Fission popped the old one) — so the cache must be refreshed for
	// it unconditionally, per §4.5's "fetch head, refresh cache" order.
	forceRefresh := true

	for {
		if sched.CurrentLen() == 0 {
			genCount, flipped := sched.FlipIfEmpty(rng)
			if !flipped {
				// FlipIfEmpty flips whenever the current buffer is empty, so
				// this is not reached in practice; both buffers being empty
				// shows up as genCount == 0 below.
				diag.RecordHalt(NoNeutrons)
				break
			}
			currentGeneration++
			diag.RecordGeneration(int64(genCount))
			diag.UpdateConvergence(currentGeneration)
			forceRefresh = true

			if genCount == 0 {
				diag.RecordHalt(NoNeutrons)
				break
			}
			if cfg.MaxGenerations > 0 && currentGeneration >= cfg.MaxGenerations {
				diag.RecordHalt(HitGenerationCap)
				break
			}
			continue
		}

		n := sched.Head()
		n.Translate()
		n.CurrentTime += n.TimeStep
		diag.TallyPosition(currentGeneration, n.Position)

		if forceRefresh || n.HasScattered || !cache.Initialized() {
			cache.Refresh(n.Energy)
			n.HasScattered = false
		}
		forceRefresh = false

		tag, sigmaComp := cfg.Geometry.MaterialIndex(rng, cache, n.Position)
		mat := cache.Get(tag)
		outcome := n.Interact(mat, sigmaComp, cfg.Geometry.SimulationRange2(), rng)

		halted := false
		switch outcome {
		case None:
			sched.ReplaceHead(n)
		case Escaped:
			sched.PopCurrent()
			forceRefresh = true
		case Scattering:
			n.Scatter(mat.AtomicMass, rng, cfg.DeltaEThreshold)
			sched.ReplaceHead(n)
		case Absorption:
			sched.PopCurrent()
			forceRefresh = true
		case Fission:
			diag.TallyFission(currentGeneration, n.Position)
			mult := n.FissionMultiplicity(mat.NuBar, rng)
			for i := 0; i < mult; i++ {
				child, ok := InitializeFromParent(n, mat.WattA, mat.WattB, rng)
				if !ok && !fissionWarnedSpectrum {
					fissionWarnedSpectrum = true
					log.Printf("neutronmc: Watt spectrum rejection sampling exhausted for a fission child; substituting 1 MeV")
				}
				sched.Add(child)
				diag.RecordNeutronCreated()
			}
			sched.PopCurrent()
			forceRefresh = true
			if cfg.MaxFissions > 0 && diag.TotalFissions >= cfg.MaxFissions {
				diag.RecordHalt(HitFissionCap)
				halted = true
			}
		}
		if halted {
			break
		}

		if cfg.MaxNeutrons > 0 && diag.TotalNeutrons >= cfg.MaxNeutrons {
			diag.RecordHalt(HitNeutronCap)
			break
		}
	}

	kBar, _ := diag.EstimateK(cfg.Diagnostics.TrackFromGeneration)
	_ = kBar
	diag.ComputePower(cfg.HaltTime, cfg.HaltTimeSet)

	return diag, nil
}
