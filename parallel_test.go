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
	"testing"
)

func TestAggregateSumsBinsAndCountsHaltCauses(t *testing.T) {
	grid := NewGrid(Vec3{}, 1, 1, 1, 2, 2, 2)
	results := make(chan workerResult, 2)

	d1 := NewDiagnostics(grid, DiagnosticsConfig{TrackBins: true})
	d1.Bins[0] = BinDatum{NeutronCount: 3, FissionCount: 1}
	d1.HaltCause = HitNeutronCap
	d1.KBar = 1.0
	d1.Power = 10

	d2 := NewDiagnostics(grid, DiagnosticsConfig{TrackBins: true})
	d2.Bins[0] = BinDatum{NeutronCount: 5, FissionCount: 2}
	d2.HaltCause = HitNeutronCap
	d2.KBar = 2.0
	d2.Power = 20

	results <- workerResult{index: 0, diag: d1}
	results <- workerResult{index: 1, diag: d2}
	close(results)

	agg := aggregate(grid, results)
	if agg.Runs != 2 || agg.FailedRuns != 0 {
		t.Fatalf("Runs/FailedRuns = %d/%d, want 2/0", agg.Runs, agg.FailedRuns)
	}
	if agg.Bins[0].NeutronCount != 8 || agg.Bins[0].FissionCount != 3 {
		t.Errorf("Bins[0] = %+v, want NeutronCount 8, FissionCount 3", agg.Bins[0])
	}
	if agg.HaltCauses[HitNeutronCap] != 2 {
		t.Errorf("HaltCauses[HitNeutronCap] = %d, want 2", agg.HaltCauses[HitNeutronCap])
	}
	if math.Abs(agg.KBar-1.5) > floatTolerance {
		t.Errorf("KBar = %v, want 1.5", agg.KBar)
	}
	if math.Abs(agg.MeanPower-15) > floatTolerance {
		t.Errorf("MeanPower = %v, want 15", agg.MeanPower)
	}
}

func TestAggregateExcludesFailedRuns(t *testing.T) {
	grid := NewGrid(Vec3{}, 1, 1, 1, 2, 2, 2)
	results := make(chan workerResult, 2)

	d1 := NewDiagnostics(grid, DiagnosticsConfig{})
	d1.HaltCause = NoNeutrons

	results <- workerResult{index: 0, diag: d1}
	results <- workerResult{index: 1, err: fmt.Errorf("boom")}
	close(results)

	agg := aggregate(grid, results)
	if agg.Runs != 1 || agg.FailedRuns != 1 {
		t.Errorf("Runs/FailedRuns = %d/%d, want 1/1", agg.Runs, agg.FailedRuns)
	}
}

func TestAggregatePanicIsolatedAsFailure(t *testing.T) {
	grid := NewGrid(Vec3{}, 1, 1, 1, 1, 1, 1)
	results := make(chan workerResult, 1)
	results <- workerResult{index: 0, err: panicError{v: "synthetic panic"}}
	close(results)

	agg := aggregate(grid, results)
	if agg.Runs != 0 || agg.FailedRuns != 1 {
		t.Errorf("Runs/FailedRuns = %d/%d, want 0/1", agg.Runs, agg.FailedRuns)
	}
}

func TestAggregateConvergenceMergedByGeneration(t *testing.T) {
	grid := NewGrid(Vec3{}, 1, 1, 1, 1, 1, 1)
	results := make(chan workerResult, 2)

	d1 := NewDiagnostics(grid, DiagnosticsConfig{})
	d1.Convergence = []ConvergenceSample{{Generation: 1, C: 0.2}, {Generation: 2, C: 0.1}}
	d2 := NewDiagnostics(grid, DiagnosticsConfig{})
	d2.Convergence = []ConvergenceSample{{Generation: 1, C: 0.4}}

	results <- workerResult{index: 0, diag: d1}
	results <- workerResult{index: 1, diag: d2}
	close(results)

	agg := aggregate(grid, results)
	if len(agg.Convergence) != 1 {
		t.Fatalf("Convergence length = %d, want 1 (generation 2 was only reached by one of two runs and must be excluded)", len(agg.Convergence))
	}
	if agg.Convergence[0].Generation != 1 {
		t.Errorf("Convergence[0].Generation = %d, want 1", agg.Convergence[0].Generation)
	}
	if math.Abs(agg.Convergence[0].C-0.3) > floatTolerance {
		t.Errorf("generation 1 convergence mean = %v, want 0.3 (averaged over both runs)", agg.Convergence[0].C)
	}
}

func TestRunParallelAggregatesGodivaRuns(t *testing.T) {
	geom, err := NewGodivaGeometry()
	if err != nil {
		t.Fatalf("NewGodivaGeometry: %v", err)
	}
	cfg := ParallelConfig{
		Sim: SimulationConfig{
			Geometry:          geom,
			Materials:         NewMaterialStore(),
			Grid:              NewGrid(Vec3{}, 1, 1, 1, 2, 2, 2),
			InitialPopulation: 50,
			TargetPopulation:  50,
			VarianceReduction: true,
			MaxNeutrons:       5000,
			MaxGenerations:    10,
			DeltaEThreshold:   0.1,
		},
		Runs: 4,
	}
	agg := RunParallel(cfg)
	if agg.Runs+agg.FailedRuns != cfg.Runs {
		t.Errorf("Runs+FailedRuns = %d, want %d", agg.Runs+agg.FailedRuns, cfg.Runs)
	}
	if agg.Runs == 0 {
		t.Fatalf("expected at least one successful run out of %d", cfg.Runs)
	}
}

func TestNewWorkerSeedProducesIndependentStreams(t *testing.T) {
	a := newWorkerSeed()
	b := newWorkerSeed()
	same := true
	for i := 0; i < 5; i++ {
		if a.Int63() != b.Int63() {
			same = false
			break
		}
	}
	if same {
		t.Errorf("two independently-seeded workers produced identical random streams across 5 draws")
	}
}
