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

// Package heatdiffusion solves the explicit finite-volume heat
// equation over a fission-power source built from a completed
// transport run (§4.8).
package heatdiffusion

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/spatialmodel/neutronmc"
)

// fissionEnergyJoules is the energy released per fission event, in
// Joules (193.41 MeV).
const fissionEnergyJoules = 1.9341e8 * 1.60218e-19

// direction identifies one of the six interface directions a cell
// exchanges heat across.
type direction int

const (
	north direction = iota
	south
	east
	west
	top
	bottom
)

var allDirections = [6]direction{north, south, east, west, top, bottom}

// Config parameterizes one heat diffusion solve (§4.8, §6).
type Config struct {
	Geometry *neutronmc.Geometry
	Materials *neutronmc.MaterialStore
	Grid      neutronmc.Grid

	FissionPositions []neutronmc.Vec3

	// HaltTime is the transport run's halt time, used to convert the
	// fission source's total energy per bin into a volumetric power
	// density.
	HaltTime float64

	// NeutronMultiplier scales the fission power source, e.g. to
	// represent a reactor operating above the simulated neutron
	// population's implied power level.
	NeutronMultiplier float64

	TimeStep  float64
	TotalTime float64

	// MinRelevantIsotope is the smallest IsotopeTag value considered
	// part of the solid/fuel region rather than the coolant/external
	// boundary (§4.8 "material_index >= min_relevant_index").
	MinRelevantIsotope neutronmc.IsotopeTag

	InitialInternalTemperature float64
	ExternalTemperature        float64

	ConvectiveHeatTransferCoefficient float64

	SnapshotEvery float64
}

// TemperatureSample is one recorded (t, mean T, max T) triple over the
// relevant cells (§4.8).
type TemperatureSample struct {
	Time               float64
	MeanTemperature    float64
	MaximumTemperature float64
}

// Snapshot is a full per-cell temperature field recorded at one point
// in time, emitted every cfg.SnapshotEvery (§5, §6).
type Snapshot struct {
	Time        float64
	Cells       []cellCoord
	Temperature []float64
}

type cellCoord struct{ X, Y, Z int }

// Solver holds the mutable state of one heat diffusion solve.
type Solver struct {
	cfg  Config
	grid neutronmc.Grid

	materialIndex []neutronmc.IsotopeTag
	fissionSource []float64

	temperature    []float64
	temperatureNew []float64

	relevant []cellCoord

	cellVolume          float64
	sourceTermConstant  float64

	History   []TemperatureSample
	Snapshots []Snapshot
}

// NewSolver builds a Solver from cfg: it samples the material at every
// cell center, builds the fission power source, sets the initial
// temperature field, and checks the CFL stability condition. It
// returns an error if the CFL number exceeds 1/6 for any relevant
// material (§4.8 "fatal").
func NewSolver(cfg Config, rng *rand.Rand) (*Solver, error) {
	if cfg.TimeStep <= 0 {
		return nil, fmt.Errorf("heatdiffusion: TimeStep must be positive")
	}
	if cfg.HaltTime <= 0 {
		return nil, fmt.Errorf("heatdiffusion: HaltTime must be positive to convert fission counts to a power density")
	}

	s := &Solver{cfg: cfg, grid: cfg.Grid}
	s.cellVolume = cfg.Grid.CellVolume()
	s.sourceTermConstant = 1.0 / s.cellVolume / cfg.HaltTime * cfg.NeutronMultiplier

	size := cfg.Grid.Size()
	s.materialIndex = make([]neutronmc.IsotopeTag, size)
	s.fissionSource = make([]float64, size)
	s.temperature = make([]float64, size)
	s.temperatureNew = make([]float64, size)

	s.buildMaterialIndex(rng)
	s.buildFissionSource()
	s.buildInitialTemperature()
	s.buildRelevantCells()

	if err := s.checkCFL(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Solver) interiorRanges() (xs, ys, zs []int) {
	g := s.grid
	for x := 1; x < g.LengthCount; x++ {
		xs = append(xs, x)
	}
	for y := 1; y < g.DepthCount; y++ {
		ys = append(ys, y)
	}
	for z := 1; z < g.HeightCount; z++ {
		zs = append(zs, z)
	}
	return
}

// buildMaterialIndex samples Geometry.MaterialIndex at every interior
// cell center, including the one-cell boundary ring so the flux
// calculation at the innermost relevant cells can read a neighbor
// (§4.8).
func (s *Solver) buildMaterialIndex(rng *rand.Rand) {
	g := s.grid
	cache := neutronmc.NewMaterialCache(s.cfg.Materials)
	cache.Refresh(1e6) // isotope thermal properties are energy-independent; refresh once at a representative fast energy.

	for x := 0; x <= g.LengthCount; x++ {
		for y := 0; y <= g.DepthCount; y++ {
			for z := 0; z <= g.HeightCount; z++ {
				idx := g.FlatIndex(x, y, z)
				center := g.CellCenter(x, y, z)
				tag, _ := s.cfg.Geometry.MaterialIndex(rng, cache, center)
				s.materialIndex[idx] = tag
			}
		}
	}
}

// buildFissionSource accumulates one fission event's energy into the
// bin containing it. Positions outside the grid's real domain are
// dropped, matching the diagnostics tally's own domain (§4.8).
func (s *Solver) buildFissionSource() {
	for _, p := range s.cfg.FissionPositions {
		idx, ok := s.grid.BinIndex(p)
		if !ok {
			continue
		}
		s.fissionSource[idx] += fissionEnergyJoules
	}
}

func (s *Solver) isRelevant(tag neutronmc.IsotopeTag) bool {
	return tag >= s.cfg.MinRelevantIsotope
}

func (s *Solver) buildInitialTemperature() {
	for i, tag := range s.materialIndex {
		if s.isRelevant(tag) {
			s.temperature[i] = s.cfg.InitialInternalTemperature
		} else {
			s.temperature[i] = s.cfg.ExternalTemperature
		}
	}
	copy(s.temperatureNew, s.temperature)
}

func (s *Solver) buildRelevantCells() {
	xs, ys, zs := s.interiorRanges()
	g := s.grid
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				idx := g.FlatIndex(x, y, z)
				if s.isRelevant(s.materialIndex[idx]) {
					s.relevant = append(s.relevant, cellCoord{x, y, z})
				}
			}
		}
	}
}

// checkCFL verifies that every relevant isotope's thermal diffusivity
// satisfies alpha*dt/dx^2 <= 1/6 against the smallest cell spacing
// (§4.8).
func (s *Solver) checkCFL() error {
	dx, dy, dz := s.grid.Deltas()
	minDelta2 := math.Min(dx*dx, math.Min(dy*dy, dz*dz))

	for _, iso := range s.cfg.Materials.Isotopes {
		if iso == nil || !s.isRelevant(iso.Tag) {
			continue
		}
		if iso.MassDensity <= 0 || iso.SpecificHeat <= 0 {
			continue
		}
		alpha := iso.ThermalConductivity / (iso.MassDensity * iso.SpecificHeat)
		cflNumber := alpha * s.cfg.TimeStep / minDelta2
		if cflNumber > 1.0/6.0 {
			return fmt.Errorf("heatdiffusion: CFL number %.4g exceeds the 1/6 stability bound for isotope %s (alpha=%.4g, dt=%.4g, min(dx^2,dy^2,dz^2)=%.4g)",
				cflNumber, iso.Tag, alpha, s.cfg.TimeStep, minDelta2)
		}
	}
	return nil
}

// Run advances the solver from t=0 to cfg.TotalTime in steps of
// cfg.TimeStep, recording a TemperatureSample every step and a full
// Snapshot every cfg.SnapshotEvery (§4.8, §5). It panics if any
// relevant cell's temperature becomes NaN, matching the fatal-abort
// contract in §4.8 ("Abort with diagnostic if any T becomes NaN").
func (s *Solver) Run() {
	steps := int(s.cfg.TotalTime / s.cfg.TimeStep)
	nextSnapshotAt := 0.0

	for step := 0; step < steps; step++ {
		t := float64(step) * s.cfg.TimeStep

		meanT := 0.0
		maxT := math.Inf(-1)

		for _, c := range s.relevant {
			idx := s.grid.FlatIndex(c.X, c.Y, c.Z)
			tCenter := s.temperature[idx]

			if math.IsNaN(tCenter) {
				panic(fmt.Sprintf("heatdiffusion: encountered NaN temperature at cell (%d,%d,%d), t=%g (step %d/%d)", c.X, c.Y, c.Z, t, step, steps))
			}

			meanT += tCenter
			if tCenter > maxT {
				maxT = tCenter
			}

			mat := s.cfg.Materials.Get(s.materialIndex[idx])
			flux := 0.0
			for _, d := range allDirections {
				flux += s.interfaceFlux(d, c, mat)
			}

			source := s.sourceTermConstant * s.fissionSource[idx]
			inertia := mat.MassDensity * mat.SpecificHeat * s.cellVolume
			dTdt := (flux + source*s.cellVolume) / inertia

			s.temperatureNew[idx] = tCenter + dTdt*s.cfg.TimeStep
		}

		if len(s.relevant) > 0 {
			meanT /= float64(len(s.relevant))
		}
		s.History = append(s.History, TemperatureSample{Time: t, MeanTemperature: meanT, MaximumTemperature: maxT})

		if t >= nextSnapshotAt {
			s.Snapshots = append(s.Snapshots, s.snapshotAt(t))
			nextSnapshotAt += s.cfg.SnapshotEvery
		}

		s.temperature, s.temperatureNew = s.temperatureNew, s.temperature
	}
}

func (s *Solver) snapshotAt(t float64) Snapshot {
	snap := Snapshot{Time: t}
	for _, c := range s.relevant {
		idx := s.grid.FlatIndex(c.X, c.Y, c.Z)
		snap.Cells = append(snap.Cells, c)
		snap.Temperature = append(snap.Temperature, s.temperature[idx])
	}
	return snap
}

// interfaceFlux computes q_face for the cell at c in direction d,
// applying the conductive (relevant neighbor) or convective
// (coolant/external neighbor) formula from §4.8. The West face's node
// distance uses dx, the same cell spacing used for the East face —
// an explicit fix versus an asymmetric dx/dy mismatch that would
// otherwise distort the conductive flux balance along that axis.
func (s *Solver) interfaceFlux(d direction, c cellCoord, center *neutronmc.IsotopeData) float64 {
	dx, dy, dz := s.grid.Deltas()
	g := s.grid

	var neighborIdx int
	var area, distance float64

	switch d {
	case north:
		neighborIdx = g.FlatIndex(c.X, c.Y+1, c.Z)
		area, distance = dx*dz, dy
	case south:
		neighborIdx = g.FlatIndex(c.X, c.Y-1, c.Z)
		area, distance = dx*dz, dy
	case east:
		neighborIdx = g.FlatIndex(c.X+1, c.Y, c.Z)
		area, distance = dy*dz, dx
	case west:
		neighborIdx = g.FlatIndex(c.X-1, c.Y, c.Z)
		area, distance = dy*dz, dx
	case top:
		neighborIdx = g.FlatIndex(c.X, c.Y, c.Z+1)
		area, distance = dx*dy, dz
	case bottom:
		neighborIdx = g.FlatIndex(c.X, c.Y, c.Z-1)
		area, distance = dx*dy, dz
	}

	centerIdx := g.FlatIndex(c.X, c.Y, c.Z)
	tCenter := s.temperature[centerIdx]
	tNeighbor := s.temperature[neighborIdx]
	neighborTag := s.materialIndex[neighborIdx]

	if s.isRelevant(neighborTag) {
		neighbor := s.cfg.Materials.Get(neighborTag)
		kBar := (center.ThermalConductivity + neighbor.ThermalConductivity) / 2
		return kBar * area * (tNeighbor - tCenter) / distance
	}

	h := s.cfg.ConvectiveHeatTransferCoefficient
	return h * area * (s.cfg.ExternalTemperature - tCenter) / distance
}
