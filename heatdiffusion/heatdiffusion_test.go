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

package heatdiffusion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/spatialmodel/neutronmc"
)

func fuelInWaterGeometry(t *testing.T) *neutronmc.Geometry {
	t.Helper()
	water := neutronmc.NewCuboidPart(neutronmc.Vec3{}, 10, 10, 10, -1,
		[]neutronmc.Composition{{Isotope: neutronmc.H1, Fraction: 2.0 / 3.0}, {Isotope: neutronmc.O16, Fraction: 1.0 / 3.0}})
	fuel := neutronmc.NewCuboidPart(neutronmc.Vec3{}, 1, 1, 1, 1,
		[]neutronmc.Composition{{Isotope: neutronmc.U238, Fraction: 0.06}, {Isotope: neutronmc.U235, Fraction: 0.94}})
	geom, err := neutronmc.NewGeometry([]neutronmc.Part{water, fuel})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	return geom
}

func baseHeatConfig(t *testing.T) Config {
	return Config{
		Geometry:                          fuelInWaterGeometry(t),
		Materials:                         neutronmc.NewMaterialStore(),
		Grid:                              neutronmc.NewGrid(neutronmc.Vec3{}, 2, 2, 2, 6, 6, 6),
		FissionPositions:                  []neutronmc.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0.1, Y: 0, Z: 0}},
		HaltTime:                          1.0,
		NeutronMultiplier:                 1e15,
		TimeStep:                          1e-4,
		TotalTime:                         1e-2,
		MinRelevantIsotope:                neutronmc.U235,
		InitialInternalTemperature:        600,
		ExternalTemperature:               300,
		ConvectiveHeatTransferCoefficient: 1000,
		SnapshotEvery:                     2e-3,
	}
}

func TestNewSolverChecksCFL(t *testing.T) {
	cfg := baseHeatConfig(t)
	cfg.TimeStep = 1e6 // absurdly large, guaranteed to violate alpha*dt/dx^2 <= 1/6
	_, err := NewSolver(cfg, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatalf("expected a CFL stability error for an oversized time step")
	}
}

func TestNewSolverRejectsNonPositiveTimeStep(t *testing.T) {
	cfg := baseHeatConfig(t)
	cfg.TimeStep = 0
	if _, err := NewSolver(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("expected an error for a zero time step")
	}
}

func TestNewSolverRejectsNonPositiveHaltTime(t *testing.T) {
	cfg := baseHeatConfig(t)
	cfg.HaltTime = 0
	if _, err := NewSolver(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("expected an error for a zero halt time")
	}
}

func TestSolverRunProducesHistoryAndSnapshots(t *testing.T) {
	cfg := baseHeatConfig(t)
	solver, err := NewSolver(cfg, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	solver.Run()

	wantSteps := int(cfg.TotalTime / cfg.TimeStep)
	if len(solver.History) != wantSteps {
		t.Errorf("len(History) = %d, want %d", len(solver.History), wantSteps)
	}
	if len(solver.Snapshots) == 0 {
		t.Errorf("expected at least one snapshot over %v with SnapshotEvery %v", cfg.TotalTime, cfg.SnapshotEvery)
	}
	for _, h := range solver.History {
		if math.IsNaN(h.MeanTemperature) {
			t.Fatalf("MeanTemperature went NaN at t=%v", h.Time)
		}
	}
}

func TestSolverRunPanicsOnNaNTemperature(t *testing.T) {
	cfg := baseHeatConfig(t)
	solver, err := NewSolver(cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if len(solver.relevant) == 0 {
		t.Fatalf("expected at least one relevant cell to poison for this test to be meaningful")
	}
	c := solver.relevant[0]
	solver.temperature[solver.grid.FlatIndex(c.X, c.Y, c.Z)] = math.NaN()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Run to panic on a NaN temperature")
		}
	}()
	solver.Run()
}

// TestSolverRunHoldsSteadyStateWithNoFissionSource covers spec §8 item
// 12 / scenario E6: with a zero fission source and a uniform initial
// temperature equal to the external temperature everywhere, every
// relevant cell's temperature must stay within 1e-9 of that value
// across 1000 steps, since both the conductive and convective flux
// terms vanish when every neighbor is already at the same temperature.
func TestSolverRunHoldsSteadyStateWithNoFissionSource(t *testing.T) {
	cfg := baseHeatConfig(t)
	cfg.FissionPositions = nil
	cfg.InitialInternalTemperature = cfg.ExternalTemperature
	cfg.TotalTime = 1000 * cfg.TimeStep

	solver, err := NewSolver(cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	for i := range solver.temperature {
		solver.temperature[i] = cfg.ExternalTemperature
		solver.temperatureNew[i] = cfg.ExternalTemperature
	}

	solver.Run()

	if len(solver.History) != 1000 {
		t.Fatalf("len(History) = %d, want 1000 steps", len(solver.History))
	}
	for _, h := range solver.History {
		if math.Abs(h.MeanTemperature-cfg.ExternalTemperature) > 1e-9 {
			t.Errorf("at t=%v, MeanTemperature = %v, want within 1e-9 of %v", h.Time, h.MeanTemperature, cfg.ExternalTemperature)
		}
		if math.Abs(h.MaximumTemperature-cfg.ExternalTemperature) > 1e-9 {
			t.Errorf("at t=%v, MaximumTemperature = %v, want within 1e-9 of %v", h.Time, h.MaximumTemperature, cfg.ExternalTemperature)
		}
	}
}

func TestInterfaceFluxEastWestUseSymmetricDistance(t *testing.T) {
	cfg := baseHeatConfig(t)
	// An anisotropic grid spacing (dx != dy != dz) is required to tell
	// apart a West face that correctly uses dx from one that erroneously
	// reuses dy.
	cfg.Grid = neutronmc.NewGrid(neutronmc.Vec3{}, 6, 3, 3, 3, 3, 3)
	solver, err := NewSolver(cfg, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}

	// Pick an interior relevant cell and force both its east and west
	// neighbors to the same non-relevant (coolant) material and the
	// same neighbor temperature, so the two faces are geometrically and
	// thermally mirror images of one another.
	if len(solver.relevant) == 0 {
		t.Fatalf("expected at least one relevant cell")
	}
	c := solver.relevant[0]
	centerIdx := solver.grid.FlatIndex(c.X, c.Y, c.Z)
	eastIdx := solver.grid.FlatIndex(c.X+1, c.Y, c.Z)
	westIdx := solver.grid.FlatIndex(c.X-1, c.Y, c.Z)

	solver.temperature[centerIdx] = 500
	solver.temperature[eastIdx] = 300
	solver.temperature[westIdx] = 300
	solver.materialIndex[eastIdx] = neutronmc.H1
	solver.materialIndex[westIdx] = neutronmc.H1

	mat := solver.cfg.Materials.Get(solver.materialIndex[centerIdx])
	east := solver.interfaceFlux(east, c, mat)
	west := solver.interfaceFlux(west, c, mat)

	if math.Abs(east-west) > 1e-9 {
		t.Errorf("symmetric east/west faces produced different flux: east=%v, west=%v (west must use dx, not dy)", east, west)
	}
}
