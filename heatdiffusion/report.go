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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// WriteReport writes the mean/max temperature history to
// "<dir>/temperature_data.csv" and dispatches one goroutine per
// recorded Snapshot to write "<dir>/<time>.csv", joining all of them
// before returning (§5, §6).
func (s *Solver) WriteReport(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("heatdiffusion: could not create results directory %q: %v", dir, err)
	}
	if err := writeTemperatureHistory(filepath.Join(dir, "temperature_data.csv"), s.History); err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(s.Snapshots))
	wg.Add(len(s.Snapshots))
	for _, snap := range s.Snapshots {
		go func(snap Snapshot) {
			defer wg.Done()
			path := filepath.Join(dir, fmt.Sprintf("%.5f.csv", snap.Time))
			if err := s.writeSnapshot(path, snap); err != nil {
				errs <- err
			}
		}(snap)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTemperatureHistory(path string, history []TemperatureSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heatdiffusion: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "mean_temperature", "maximum_temperature"}); err != nil {
		return err
	}
	for _, h := range history {
		record := []string{
			strconv.FormatFloat(h.Time, 'g', -1, 64),
			strconv.FormatFloat(h.MeanTemperature, 'g', -1, 64),
			strconv.FormatFloat(h.MaximumTemperature, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// writeSnapshot writes one snapshot's (x, y, z, T) rows to path, one
// row per relevant cell at the time the snapshot was taken.
func (s *Solver) writeSnapshot(path string, snap Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heatdiffusion: could not create %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "T"}); err != nil {
		return err
	}
	for i, c := range snap.Cells {
		center := s.grid.CellCenter(c.X, c.Y, c.Z)
		record := []string{
			strconv.FormatFloat(center.X, 'g', -1, 64),
			strconv.FormatFloat(center.Y, 'g', -1, 64),
			strconv.FormatFloat(center.Z, 'g', -1, 64),
			strconv.FormatFloat(snap.Temperature[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
