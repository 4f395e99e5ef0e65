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
	"time"

	"github.com/spatialmodel/neutronmc"
	"github.com/spatialmodel/neutronmc/heatdiffusion"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(heatCmd)
}

var heatCmd = &cobra.Command{
	Use:   "heat",
	Short: "Run the transport simulation and solve the resulting heat distribution.",
	Long: "heat runs one transport simulation to collect fission positions and halt " +
		"time, then solves the explicit finite-volume heat equation over the " +
		"configured heat-diffusion grid, writing per-step and per-snapshot CSVs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(Heat(config))
	},
}

// Heat runs the transport/heat-diffusion pipeline described by cfg.
func Heat(cfg *neutronmc.ConfigData) error {
	if !cfg.HeatDiffusion.Enabled {
		return fmt.Errorf("HeatDiffusion.Enabled is false in the configuration file")
	}
	if !cfg.Simulation.HaltTimeSet {
		return fmt.Errorf("Simulation.HaltTimeSet must be true to run heat diffusion")
	}

	geom, err := neutronmc.LoadGeometryFile(cfg.GeometryFile)
	if err != nil {
		return err
	}
	mats, err := loadMaterials(cfg)
	if err != nil {
		return err
	}

	simCfg := cfg.BuildSimulationConfig(geom, mats)
	simCfg.Diagnostics.TrackFissionPositions = true

	diag, err := neutronmc.RunSimulation(simCfg, rand.New(rand.NewSource(1)))
	if err != nil {
		return err
	}
	fmt.Printf("transport run halted: %s, %d fissions\n", diag.HaltCause, diag.TotalFissions)

	hd := cfg.HeatDiffusion
	heatCfg := heatdiffusion.Config{
		Geometry:                          geom,
		Materials:                         mats,
		Grid:                              hd.Grid.ToGrid(),
		FissionPositions:                  diag.FissionPositions,
		HaltTime:                          cfg.Simulation.HaltTime,
		NeutronMultiplier:                 hd.NeutronMultiplier,
		TimeStep:                          hd.TimeStep,
		TotalTime:                         hd.TotalTime,
		MinRelevantIsotope:                neutronmc.IsotopeTag(hd.MinRelevantIsotope),
		InitialInternalTemperature:        hd.InitialInternalTemperature,
		ExternalTemperature:               hd.ExternalTemperature,
		ConvectiveHeatTransferCoefficient: hd.ConvectiveHeatTransferCoefficient,
		SnapshotEvery:                     hd.SnapshotEvery,
	}

	solver, err := heatdiffusion.NewSolver(heatCfg, rand.New(rand.NewSource(2)))
	if err != nil {
		return err
	}
	solver.Run()

	dir := cfg.ResultsDirName(time.Now().Format("2006-01-02T15-04-05")) + "-heat"
	return solver.WriteReport(dir)
}
