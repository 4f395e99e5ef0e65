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
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReportProducesHistoryAndSnapshotFiles(t *testing.T) {
	cfg := baseHeatConfig(t)
	solver, err := NewSolver(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	solver.Run()

	dir := t.TempDir()
	if err := solver.WriteReport(dir); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	historyPath := filepath.Join(dir, "temperature_data.csv")
	if _, err := os.Stat(historyPath); err != nil {
		t.Errorf("expected %q to exist: %v", historyPath, err)
	}
	if len(solver.Snapshots) == 0 {
		t.Fatalf("expected at least one snapshot to check")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) < 1+len(solver.Snapshots) {
		t.Errorf("expected the history file plus one file per snapshot, got %d entries for %d snapshots", len(entries), len(solver.Snapshots))
	}
}
