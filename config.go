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
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GridSpec is the TOML representation of one Grid (§6).
type GridSpec struct {
	CenterX, CenterY, CenterZ          float64
	Length, Depth, Height              float64
	LengthCount, DepthCount, HeightCount int
}

// ToGrid converts a GridSpec into the runtime Grid it describes.
func (s GridSpec) ToGrid() Grid {
	return NewGrid(Vec3{s.CenterX, s.CenterY, s.CenterZ}, s.Length, s.Depth, s.Height, s.LengthCount, s.DepthCount, s.HeightCount)
}

// ConfigData is the root of a neutronmc TOML configuration file (§6).
type ConfigData struct {
	// GeometryFile is the path to the TOML geometry description
	// (geometryfile.go). Can include environment variables.
	GeometryFile string

	// IsotopeDataDir, if non-empty, is a directory of per-isotope CSV
	// tables (xsdata.go) that override the built-in cross-section data.
	// Can include environment variables.
	IsotopeDataDir string

	// ResultsDir is the parent directory under which each run's
	// timestamped output directory is created. Can include environment
	// variables.
	ResultsDir string

	// RunName labels the results directory for this configuration.
	RunName string

	Parallelization struct {
		Runs    int
		Threads int
	}

	Simulation struct {
		InitialPopulation int
		TargetPopulation  int
		VarianceReduction bool

		MaxNeutrons    int64
		MaxGenerations int
		MaxFissions    int64

		HaltTime    float64
		HaltTimeSet bool

		DeltaEThreshold float64

		EstimateK             bool
		TrackBins             bool
		TrackFissionPositions bool
		TrackFromGeneration   int
		CalculateConvergence  bool

		// PlotGeometry, if set, dumps the material sampled at every
		// GeometryPlotBins cell center to a CSV for a downstream
		// plotting tool to consume (§6 "plot_geometry").
		PlotGeometry bool

		Grid GridSpec
	}

	// GeometryPlotBins is the grid PlotGeometry samples onto, a separate
	// instance from Simulation.Grid and HeatDiffusion.Grid (§6 "three
	// separate instances").
	GeometryPlotBins GridSpec

	HeatDiffusion struct {
		Enabled bool

		TimeStep      float64
		TotalTime     float64
		SnapshotEvery float64

		MinRelevantIsotope int

		InitialInternalTemperature        float64
		ExternalTemperature               float64
		ConvectiveHeatTransferCoefficient float64
		NeutronMultiplier                 float64

		Grid GridSpec
	}
}

// ReadConfigFile reads and parses a TOML configuration file, expanding
// environment variables in every path field, mirroring the loader
// contract other InMAP-family tools use for their own TOML configs.
func ReadConfigFile(filename string) (*ConfigData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	bytes, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	config := new(ConfigData)
	if _, err := toml.Decode(string(bytes), config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.GeometryFile = os.ExpandEnv(config.GeometryFile)
	config.IsotopeDataDir = os.ExpandEnv(config.IsotopeDataDir)
	config.ResultsDir = os.ExpandEnv(config.ResultsDir)

	if config.GeometryFile == "" {
		return nil, fmt.Errorf("you need to specify a geometry file in the " +
			"configuration file (for example: GeometryFile = \"geometry.toml\")")
	}
	if config.ResultsDir == "" {
		config.ResultsDir = "results"
	}
	if config.Parallelization.Runs < 1 {
		config.Parallelization.Runs = 1
	}
	if config.Parallelization.Threads < 1 {
		config.Parallelization.Threads = config.Parallelization.Runs
	}
	if config.Simulation.InitialPopulation < 1 {
		return nil, fmt.Errorf("Simulation.InitialPopulation must be a positive integer")
	}
	if config.Simulation.TargetPopulation < 1 {
		config.Simulation.TargetPopulation = config.Simulation.InitialPopulation
	}

	if err := os.MkdirAll(config.ResultsDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("problem creating results directory: %v", err)
	}
	return config, nil
}

// BuildSimulationConfig builds the SimulationConfig described by the
// config file's Simulation group, given an already-resolved Geometry
// and MaterialStore.
func (c *ConfigData) BuildSimulationConfig(geom *Geometry, mats *MaterialStore) SimulationConfig {
	s := c.Simulation
	return SimulationConfig{
		Geometry:          geom,
		Materials:         mats,
		Grid:              s.Grid.ToGrid(),
		InitialPopulation: s.InitialPopulation,
		TargetPopulation:  s.TargetPopulation,
		VarianceReduction: s.VarianceReduction,
		MaxNeutrons:       s.MaxNeutrons,
		MaxGenerations:    s.MaxGenerations,
		MaxFissions:       s.MaxFissions,
		HaltTime:          s.HaltTime,
		HaltTimeSet:       s.HaltTimeSet,
		DeltaEThreshold:   s.DeltaEThreshold,
		Diagnostics: DiagnosticsConfig{
			EstimateK:             s.EstimateK,
			TrackBins:             s.TrackBins,
			TrackFissionPositions: s.TrackFissionPositions,
			TrackFromGeneration:   s.TrackFromGeneration,
			CalculateConvergence:  s.CalculateConvergence,
		},
	}
}

// ResultsDirName builds the timestamped results directory name for
// this configuration's run, "<RunName> - <timestamp>" (§6). timestamp
// is supplied by the caller so config.go stays independent of the wall
// clock.
func (c *ConfigData) ResultsDirName(timestamp string) string {
	name := c.RunName
	if name == "" {
		name = "run"
	}
	return filepath.Join(c.ResultsDir, fmt.Sprintf("%s - %s", name, timestamp))
}
