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
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// LoadCrossSectionTable reads a two-column (energy_eV, cross_section_barns)
// CSV file, skipping the first row as a header if it does not parse as
// numbers, and returns the rows in file order for interpolate (§4.1,
// §6). The rows are not sorted; the file's energies must already be
// ascending.
func LoadCrossSectionTable(filename string) ([]EnergyPoint, error) {
	rows, err := readNumericCSV(filename, 2)
	if err != nil {
		return nil, err
	}
	table := make([]EnergyPoint, len(rows))
	for i, r := range rows {
		table[i] = EnergyPoint{Energy: r[0], Value: r[1]}
	}
	return table, nil
}

// LoadNuBarTable reads a (energy_eV, nu_bar) CSV file (§4.1, §6).
func LoadNuBarTable(filename string) ([]EnergyPoint, error) {
	return LoadCrossSectionTable(filename)
}

// LoadWattTable reads a three-column (energy_eV, a_MeV, b_per_MeV) CSV
// file of Watt spectrum parameters (§4.1, §6).
func LoadWattTable(filename string) ([]WattPoint, error) {
	rows, err := readNumericCSV(filename, 3)
	if err != nil {
		return nil, err
	}
	table := make([]WattPoint, len(rows))
	for i, r := range rows {
		table[i] = WattPoint{Energy: r[0], A: r[1], B: r[2]}
	}
	return table, nil
}

// readNumericCSV reads a CSV file of exactly width float64 columns,
// dropping a leading header row if present.
func readNumericCSV(filename string, width int) ([][]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("neutronmc: could not open %q: %v", filename, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = width

	var rows [][]float64
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("neutronmc: error parsing %q: %v", filename, err)
		}
		values, ok := parseFloatRow(record)
		if !ok {
			if first {
				// header row: skip it.
				first = false
				continue
			}
			return nil, fmt.Errorf("neutronmc: non-numeric row in %q: %v", filename, record)
		}
		first = false
		rows = append(rows, values)
	}
	return rows, nil
}

func parseFloatRow(record []string) ([]float64, bool) {
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// isotopeFileMeta is the TOML sidecar (<isotope>.toml) describing an
// isotope's scalar properties alongside its tabulated CSV data (§6).
type isotopeFileMeta struct {
	AtomicMass          float64
	Fissionable         bool
	NumberDensity       float64
	ThermalConductivity float64
	MassDensity         float64
	SpecificHeat        float64
}

// LoadIsotope reads one isotope's full data set from dir: a
// "<name>.toml" metadata sidecar plus "<name>_fission.csv",
// "<name>_scatter.csv", "<name>_absorb.csv", "<name>_nubar.csv" and
// "<name>_watt.csv" tables (§6). Missing CSV files are treated as
// empty tables (e.g. Void and non-fissionable isotopes with no Watt
// data), not errors; a missing metadata sidecar is an error.
func LoadIsotope(dir string, tag IsotopeTag) (*IsotopeData, error) {
	name := tag.String()
	metaPath := filepath.Join(dir, name+".toml")

	var meta isotopeFileMeta
	if _, err := toml.DecodeFile(metaPath, &meta); err != nil {
		return nil, fmt.Errorf("neutronmc: could not load isotope metadata %q: %v", metaPath, err)
	}

	fission, err := loadOptionalEnergyTable(filepath.Join(dir, name+"_fission.csv"))
	if err != nil {
		return nil, err
	}
	scatter, err := loadOptionalEnergyTable(filepath.Join(dir, name+"_scatter.csv"))
	if err != nil {
		return nil, err
	}
	absorb, err := loadOptionalEnergyTable(filepath.Join(dir, name+"_absorb.csv"))
	if err != nil {
		return nil, err
	}
	nuBar, err := loadOptionalEnergyTable(filepath.Join(dir, name+"_nubar.csv"))
	if err != nil {
		return nil, err
	}
	wattPath := filepath.Join(dir, name+"_watt.csv")
	var watt []WattPoint
	if _, statErr := os.Stat(wattPath); statErr == nil {
		watt, err = LoadWattTable(wattPath)
		if err != nil {
			return nil, err
		}
	}

	return &IsotopeData{
		Tag:                 tag,
		Fission:             fission,
		Scatter:             scatter,
		Absorb:              absorb,
		NuBar:               nuBar,
		WattData:            watt,
		NumberDensity:       meta.NumberDensity,
		AtomicMass:          meta.AtomicMass,
		Fissionable:         meta.Fissionable,
		ThermalConductivity: meta.ThermalConductivity,
		MassDensity:         meta.MassDensity,
		SpecificHeat:        meta.SpecificHeat,
	}, nil
}

func loadOptionalEnergyTable(path string) ([]EnergyPoint, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return LoadCrossSectionTable(path)
}
