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

package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spatialmodel/neutronmc"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the transport simulation.",
	Long: "run loads the geometry and material data referenced by the configuration " +
		"file, executes the configured number of parallel transport runs, and writes " +
		"the aggregated report to the results directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(Run(config))
	},
}

// Run executes the parallel transport runs described by cfg and
// writes the aggregated report.
func Run(cfg *neutronmc.ConfigData) error {
	geom, err := neutronmc.LoadGeometryFile(cfg.GeometryFile)
	if err != nil {
		return err
	}

	mats, err := loadMaterials(cfg)
	if err != nil {
		return err
	}

	simCfg := cfg.BuildSimulationConfig(geom, mats)
	result := neutronmc.RunParallel(neutronmc.ParallelConfig{
		Sim:  simCfg,
		Runs: cfg.Parallelization.Runs,
	})

	fmt.Printf("completed %d/%d runs; k-bar = %g\n", result.Runs, result.Runs+result.FailedRuns, result.KBar)

	dir := cfg.ResultsDirName(time.Now().Format("2006-01-02T15-04-05"))
	if err := neutronmc.WriteReport(dir, result); err != nil {
		return err
	}

	if cfg.Simulation.PlotGeometry {
		plotGrid := cfg.GeometryPlotBins.ToGrid()
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := neutronmc.WriteGeometryPlot(filepath.Join(dir, "geometry_plot.csv"), geom, mats, plotGrid, rng); err != nil {
			return err
		}
	}
	return nil
}

// loadMaterials returns the built-in material store, or one with
// isotopes overridden from cfg.IsotopeDataDir if it is set.
func loadMaterials(cfg *neutronmc.ConfigData) (*neutronmc.MaterialStore, error) {
	store := neutronmc.NewMaterialStore()
	if cfg.IsotopeDataDir == "" {
		return store, nil
	}
	for i := range store.Isotopes {
		tag := store.Isotopes[i].Tag
		iso, err := neutronmc.LoadIsotope(cfg.IsotopeDataDir, tag)
		if err != nil {
			return nil, fmt.Errorf("overriding isotope %s: %v", tag, err)
		}
		store.Isotopes[i] = iso
	}
	return store, nil
}
