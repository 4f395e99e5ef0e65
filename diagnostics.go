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
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HaltCause records why a simulation stopped (§3, §4.4).
type HaltCause int

const (
	NotHalted HaltCause = iota
	HitNeutronCap
	HitGenerationCap
	NoNeutrons
	HitFissionCap
)

func (h HaltCause) String() string {
	switch h {
	case NotHalted:
		return "NotHalted"
	case HitNeutronCap:
		return "HitNeutronCap"
	case HitGenerationCap:
		return "HitGenerationCap"
	case NoNeutrons:
		return "NoNeutrons"
	case HitFissionCap:
		return "HitFissionCap"
	default:
		return "Unknown"
	}
}

// BinDatum is one spatial bin's accumulators (§3).
type BinDatum struct {
	NeutronCount int64
	FissionCount int64
}

// ConvergenceSample is one (generation, convergence metric) pair.
type ConvergenceSample struct {
	Generation int
	C          float64
}

// DiagnosticsConfig selects which diagnostics are collected, mirroring
// the tracking flags in §6.
type DiagnosticsConfig struct {
	EstimateK             bool
	TrackBins             bool
	TrackFissionPositions bool
	TrackFromGeneration   int
	CalculateConvergence  bool
}

// Diagnostics accumulates everything the simulation driver reports at
// the end of a run: spatial tallies, fission positions, per-generation
// population history, convergence samples, and the derived k-estimate
// and halt cause (§3, §4.6).
type Diagnostics struct {
	Grid Grid
	Cfg  DiagnosticsConfig

	Bins     []BinDatum
	prevBins []BinDatum

	FissionPositions []Vec3

	GenerationCounts []int64 // h[g], population born in generation g
	Convergence      []ConvergenceSample

	KBar      float64
	HaltCause HaltCause

	TotalFissions int64
	TotalNeutrons int64
	TotalEnergy   float64 // J
	Power         float64 // W
}

// NewDiagnostics creates a Diagnostics sink over grid with the given
// tracking configuration.
func NewDiagnostics(grid Grid, cfg DiagnosticsConfig) *Diagnostics {
	d := &Diagnostics{Grid: grid, Cfg: cfg}
	if cfg.TrackBins {
		d.Bins = make([]BinDatum, grid.Size())
		d.prevBins = make([]BinDatum, grid.Size())
	}
	return d
}

// TallyPosition records a neutron's position in generation g, if bin
// tracking is enabled and g is at or past the configured warm-up
// generation (§4.6).
func (d *Diagnostics) TallyPosition(g int, p Vec3) {
	if !d.Cfg.TrackBins || g < d.Cfg.TrackFromGeneration {
		return
	}
	if idx, ok := d.Grid.BinIndex(p); ok {
		d.Bins[idx].NeutronCount++
	}
}

// TallyFission records a fission event at p in generation g: it always
// increments the run-wide fission total (used for the fission cap and
// power estimate), and additionally bins/records the position per the
// tracking flags (§4.6). Tally conservation (§8 item 11): the fission
// position list only omits an event when TrackFissionPositions is
// disabled, while the bin grid omits events that fall outside the L x
// D x H domain — so bin totals are always <= len(FissionPositions)
// when both are tracked.
func (d *Diagnostics) TallyFission(g int, p Vec3) {
	d.TotalFissions++
	if d.Cfg.TrackBins {
		if idx, ok := d.Grid.BinIndex(p); ok {
			d.Bins[idx].FissionCount++
		}
	}
	if d.Cfg.TrackFissionPositions {
		d.FissionPositions = append(d.FissionPositions, p)
	}
}

// RecordNeutronCreated increments the run-wide neutron total, used for
// the neutron-count halt cap (§4.4).
func (d *Diagnostics) RecordNeutronCreated() {
	d.TotalNeutrons++
}

// RecordGeneration appends the raw (pre variance-reduction) population
// count for a completed generation to the population history used by
// the k-estimator (§4.4, §9 open question 4).
func (d *Diagnostics) RecordGeneration(count int64) {
	d.GenerationCounts = append(d.GenerationCounts, count)
}

// UpdateConvergence computes the L1 distance between the current and
// previous normalized spatial bin distributions and appends it to the
// convergence series (§4.6). It is a no-op if bin tracking or
// convergence calculation is disabled.
func (d *Diagnostics) UpdateConvergence(g int) {
	if !d.Cfg.TrackBins || !d.Cfg.CalculateConvergence {
		return
	}
	var currentTotal, prevTotal int64
	for i := range d.Bins {
		currentTotal += d.Bins[i].NeutronCount
		prevTotal += d.prevBins[i].NeutronCount
	}
	n := floatOrOne(currentTotal)
	nPrev := floatOrOne(prevTotal)

	c := 0.0
	for i := range d.Bins {
		c += math.Abs(float64(d.Bins[i].NeutronCount)/n - float64(d.prevBins[i].NeutronCount)/nPrev)
	}
	d.Convergence = append(d.Convergence, ConvergenceSample{Generation: g, C: c})
	copy(d.prevBins, d.Bins)
}

func floatOrOne(n int64) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}

// ConvergenceVariance reports the variance of the convergence metric
// over the last window samples (0 < window <= len(Convergence)),
// a supplementary stability diagnostic beyond the required convergence
// series (§4.6 adds nothing beyond the plain metric; this is additive).
func (d *Diagnostics) ConvergenceVariance(window int) float64 {
	if window <= 0 || window > len(d.Convergence) {
		window = len(d.Convergence)
	}
	if window == 0 {
		return 0
	}
	vals := make([]float64, window)
	for i, s := range d.Convergence[len(d.Convergence)-window:] {
		vals[i] = s.C
	}
	return stat.Variance(vals, nil)
}

// RecordHalt stores the halt cause for the run.
func (d *Diagnostics) RecordHalt(cause HaltCause) {
	d.HaltCause = cause
}

// EstimateK computes the k-estimator from the population history per
// §4.6: k_j = h[j+1]/h[j] for j in [trackFrom, len(h)-2], averaged.
// It warns and returns (0, h) if there isn't enough history past the
// warm-up generation to compute even one ratio, and warns (but still
// computes) if fewer than 4 samples are available.
func (d *Diagnostics) EstimateK(trackFrom int) (kBar float64, history []int64) {
	h := d.GenerationCounts
	if len(h) < trackFrom+2 {
		log.Printf("neutronmc: population history has only %d generations, too few to estimate k from generation %d onward", len(h), trackFrom)
		return 0, h
	}
	if len(h) < 4 {
		log.Printf("neutronmc: population history has only %d generations; the k estimate will be noisy", len(h))
	}

	var ratios []float64
	for j := trackFrom; j <= len(h)-2; j++ {
		if h[j] == 0 {
			continue
		}
		ratios = append(ratios, float64(h[j+1])/float64(h[j]))
	}
	if len(ratios) == 0 {
		return 0, h
	}
	kBar = floats.Sum(ratios) / float64(len(ratios))
	d.KBar = kBar
	return kBar, h
}

// fissionEnergyJoules is the energy released per fission event
// (193.41 MeV expressed in Joules), per §4.6.
const fissionEnergyJoules = 1.9341e8 * 1.60218e-19

// ComputePower derives total energy released and, if haltTime is set
// (haltTime > 0), the average power (§4.6).
func (d *Diagnostics) ComputePower(haltTime float64, haltTimeSet bool) {
	d.TotalEnergy = float64(d.TotalFissions) * fissionEnergyJoules
	if haltTimeSet && haltTime > 0 {
		d.Power = d.TotalEnergy / haltTime
	}
}
