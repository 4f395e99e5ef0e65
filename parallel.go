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
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// ParallelConfig bundles one SimulationConfig with the number of
// independent runs to execute and aggregate (§4.7, §5, §6
// Parallelization group).
type ParallelConfig struct {
	Sim  SimulationConfig
	Runs int
}

// AggregateResult is the elementwise sum/average of every successful
// worker's Diagnostics (§4.7). Bin tallies are summed; k and power are
// averaged across runs that produced a usable estimate; fission
// position lists and convergence series are concatenated/merged.
type AggregateResult struct {
	Runs        int // number of runs that completed successfully
	FailedRuns  int // number of worker goroutines that panicked or errored
	Grid        Grid
	Bins        []BinDatum
	FissionPositions []Vec3

	KBar      float64
	MeanPower float64

	// Convergence holds, for each generation present in every
	// successful run, the mean convergence metric across runs (§4.7
	// "convergence averaging").
	Convergence []ConvergenceSample

	HaltCauses map[HaltCause]int
}

// workerResult is what one goroutine reports back on the results
// channel: either a completed Diagnostics or the error/panic that
// aborted the run (§4.7 "worker-crash isolation").
type workerResult struct {
	index int
	diag  *Diagnostics
	err   error
}

// newWorkerSeed draws a fresh, independent *rand.Rand for one worker,
// seeded from OS entropy so that concurrently-running workers never
// share or derive from each other's random stream (§5, §9).
func newWorkerSeed() *rand.Rand {
	var seedBytes [8]byte
	if _, err := cryptorand.Read(seedBytes[:]); err != nil {
		// crypto/rand.Read practically never fails on a supported
		// platform; fall back to a fixed seed rather than leaving the
		// worker unseeded.
		logrus.WithError(err).Warn("neutronmc: falling back to a fixed worker seed; crypto/rand is unavailable")
		return rand.New(rand.NewSource(0))
	}
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

// RunParallel launches cfg.Runs independent simulations, one goroutine
// per run, and aggregates the results of every run that completes
// without panicking (§4.7, §5, §9 "shared-nothing except immutable
// config"). A worker that panics is recovered, logged, and excluded
// from the aggregate rather than bringing down the whole batch.
func RunParallel(cfg ParallelConfig) *AggregateResult {
	results := make(chan workerResult, cfg.Runs)
	var wg sync.WaitGroup
	wg.Add(cfg.Runs)

	for i := 0; i < cfg.Runs; i++ {
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logrus.WithFields(logrus.Fields{
						"run": i,
						"panic": r,
					}).Error("neutronmc: worker run panicked; excluding it from the aggregate")
					results <- workerResult{index: i, err: panicError{r}}
				}
			}()
			diag, err := RunSimulation(cfg.Sim, newWorkerSeed())
			if err != nil {
				logrus.WithFields(logrus.Fields{"run": i, "error": err}).Error("neutronmc: worker run failed")
				results <- workerResult{index: i, err: err}
				return
			}
			results <- workerResult{index: i, diag: diag}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return aggregate(cfg.Sim.Grid, results)
}

type panicError struct{ v interface{} }

func (p panicError) Error() string { return "panic in worker" }

// aggregate drains results and combines every successful Diagnostics
// into one AggregateResult (§4.7).
func aggregate(grid Grid, results <-chan workerResult) *AggregateResult {
	agg := &AggregateResult{
		Grid:       grid,
		HaltCauses: make(map[HaltCause]int),
	}

	var ks, powers []float64
	// convergenceSums/convergenceCounts accumulate across all runs, but
	// a generation only contributes to agg.Convergence below if every
	// successful run reached it (§4.7) — a run that halted earlier must
	// not silently drop out of later generations' averages and bias them
	// toward whichever runs happened to survive longest.
	convergenceSums := make(map[int]float64)
	convergenceCounts := make(map[int]int)

	for r := range results {
		if r.err != nil {
			agg.FailedRuns++
			continue
		}
		d := r.diag
		agg.Runs++
		agg.HaltCauses[d.HaltCause]++

		if agg.Bins == nil && len(d.Bins) > 0 {
			agg.Bins = make([]BinDatum, len(d.Bins))
		}
		for i, b := range d.Bins {
			agg.Bins[i].NeutronCount += b.NeutronCount
			agg.Bins[i].FissionCount += b.FissionCount
		}
		agg.FissionPositions = append(agg.FissionPositions, d.FissionPositions...)

		if d.KBar != 0 {
			ks = append(ks, d.KBar)
		}
		if d.Power != 0 {
			powers = append(powers, d.Power)
		}
		for _, c := range d.Convergence {
			convergenceSums[c.Generation] += c.C
			convergenceCounts[c.Generation]++
		}
	}

	if len(ks) > 0 {
		agg.KBar = floats.Sum(ks) / float64(len(ks))
	}
	if len(powers) > 0 {
		agg.MeanPower = floats.Sum(powers) / float64(len(powers))
	}

	for gen, sum := range convergenceSums {
		if convergenceCounts[gen] != agg.Runs {
			continue
		}
		agg.Convergence = append(agg.Convergence, ConvergenceSample{
			Generation: gen,
			C:          sum / float64(convergenceCounts[gen]),
		})
	}
	sortConvergenceByGeneration(agg.Convergence)

	return agg
}

func sortConvergenceByGeneration(s []ConvergenceSample) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Generation < s[j-1].Generation; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
