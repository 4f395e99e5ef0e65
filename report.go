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
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
)

// WriteReport writes every output file for one aggregated parallel
// run into dir: a fixed-width summary, and CSVs for the bin tallies,
// fission positions, and convergence series (§6).
func WriteReport(dir string, agg *AggregateResult) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("neutronmc: could not create results directory %q: %v", dir, err)
	}

	if err := writeSummary(filepath.Join(dir, "simulation_report.dat"), agg); err != nil {
		return err
	}
	if len(agg.Bins) > 0 {
		if err := writeBinResults(filepath.Join(dir, "neutron_bin_results.csv"), agg); err != nil {
			return err
		}
		if err := writeNeutronPositions(filepath.Join(dir, "neutron_positions.csv"), agg); err != nil {
			return err
		}
	}
	if len(agg.FissionPositions) > 0 {
		if err := writeFissionPositions(filepath.Join(dir, "neutron_fission_results.csv"), agg.FissionPositions); err != nil {
			return err
		}
	}
	if len(agg.Convergence) > 0 {
		if err := writeConvergence(filepath.Join(dir, "convergence.csv"), agg.Convergence); err != nil {
			return err
		}
	}
	return nil
}

// writeSummary writes the fixed-width, tab-aligned simulation report.
func writeSummary(path string, agg *AggregateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := tabwriter.NewWriter(f, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "successful runs\t%d\n", agg.Runs)
	fmt.Fprintf(w, "failed runs\t%d\n", agg.FailedRuns)
	fmt.Fprintf(w, "k-bar\t%g\n", agg.KBar)
	fmt.Fprintf(w, "mean power (W)\t%g\n", agg.MeanPower)
	fmt.Fprintln(w, "halt causes:")
	for cause, count := range agg.HaltCauses {
		fmt.Fprintf(w, "  %s\t%d\n", cause, count)
	}
	return w.Flush()
}

// writeBinResults writes one row per flat bin index, including empty
// bins, so the file can be reloaded as a complete record of every cell
// in the grid (§6 "CSV of bin records (for reload)").
func writeBinResults(path string, agg *AggregateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"bin_index", "neutron_count", "fission_count"}); err != nil {
		return err
	}
	for idx, b := range agg.Bins {
		record := []string{
			strconv.Itoa(idx),
			strconv.FormatInt(b.NeutronCount, 10),
			strconv.FormatInt(b.FissionCount, 10),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// writeNeutronPositions writes the grid layout of non-empty bins
// labeled by the cell's integer coordinates (§6 "neutron_positions.csv
// (grid layout): x,y,z,neutron_count,fission_count").
func writeNeutronPositions(path string, agg *AggregateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "neutron_count", "fission_count"}); err != nil {
		return err
	}

	g := agg.Grid
	for x := 0; x < g.LengthCount; x++ {
		for y := 0; y < g.DepthCount; y++ {
			for z := 0; z < g.HeightCount; z++ {
				idx := g.FlatIndex(x, y, z)
				b := agg.Bins[idx]
				if b.NeutronCount == 0 && b.FissionCount == 0 {
					continue
				}
				record := []string{
					strconv.Itoa(x), strconv.Itoa(y), strconv.Itoa(z),
					strconv.FormatInt(b.NeutronCount, 10),
					strconv.FormatInt(b.FissionCount, 10),
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
	}
	return w.Error()
}

func writeFissionPositions(path string, positions []Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, p := range positions {
		record := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Z, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteGeometryPlot samples geom's material at every cell center of
// grid and writes the sampled isotope tag to a CSV — the data a
// downstream plotting tool would consume, not a rendered plot itself
// (§6 "plot_geometry"/"geometry_plot_bins"). Isotope selection within a
// composition is random, so the sample is taken with its own rng
// rather than one shared with a running simulation.
func WriteGeometryPlot(path string, geom *Geometry, mats *MaterialStore, grid Grid, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "material_index"}); err != nil {
		return err
	}

	cache := NewMaterialCache(mats)
	cache.Refresh(1e6) // isotope choice is weighted by Σ_total, so the mix is sampled at a representative fast energy.

	for x := 0; x < grid.LengthCount; x++ {
		for y := 0; y < grid.DepthCount; y++ {
			for z := 0; z < grid.HeightCount; z++ {
				center := grid.CellCenter(x, y, z)
				tag, _ := geom.MaterialIndex(rng, cache, center)
				record := []string{strconv.Itoa(x), strconv.Itoa(y), strconv.Itoa(z), strconv.Itoa(int(tag))}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
	}
	return w.Error()
}

func writeConvergence(path string, samples []ConvergenceSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neutronmc: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"generation", "convergence"}); err != nil {
		return err
	}
	for _, s := range samples {
		record := []string{strconv.Itoa(s.Generation), strconv.FormatFloat(s.C, 'g', -1, 64)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
