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

// builtinIsotopeData returns the compile-time default physics record
// for tag. These are coarse, few-point tabulations in the spirit of
// real continuous-energy evaluated data (energies in eV, cross
// sections in barns) — enough points to exercise interpolation
// correctly and to land in the right physical regime (thermal capture
// dominated for absorbers, fast-threshold fission for U238, etc.),
// not a substitute for a real ENDF-derived data file. Real runs should
// load isotopes from files with LoadIsotope instead.
func builtinIsotopeData(tag IsotopeTag) *IsotopeData {
	switch tag {
	case H1:
		return &IsotopeData{
			Tag:     H1,
			Fission: []EnergyPoint{{Energy: 0.0253, Value: 0}},
			Scatter: []EnergyPoint{
				{0.0253, 20.4}, {1, 20.4}, {1e3, 20.0}, {1e5, 11.0}, {1e6, 4.3}, {1.4e7, 0.7},
			},
			Absorb: []EnergyPoint{
				{0.0253, 0.332}, {1, 0.0524}, {1e3, 0.0016}, {1e5, 0.0002}, {1e6, 0.0001}, {1.4e7, 0.00003},
			},
			NuBar:               []EnergyPoint{{Energy: 0.0253, Value: 0}},
			WattData:            []WattPoint{{Energy: 0.0253, A: 0, B: 0}},
			NumberDensity:       6.7e28,
			AtomicMass:          1.0,
			Fissionable:         false,
			ThermalConductivity: 0.6,
			MassDensity:         1000,
			SpecificHeat:        4186,
		}
	case Be9:
		return &IsotopeData{
			Tag:     Be9,
			Fission: []EnergyPoint{{Energy: 0.0253, Value: 0}},
			Scatter: []EnergyPoint{
				{0.0253, 6.2}, {1, 6.2}, {1e3, 6.0}, {1e5, 5.0}, {1e6, 3.0}, {1.4e7, 1.5},
			},
			Absorb: []EnergyPoint{
				{0.0253, 0.0076}, {1e6, 0.003}, {1.4e7, 0.001},
			},
			NuBar:               []EnergyPoint{{Energy: 0.0253, Value: 0}},
			WattData:            []WattPoint{{Energy: 0.0253, A: 0, B: 0}},
			NumberDensity:       1.236e29,
			AtomicMass:          9.0,
			Fissionable:         false,
			ThermalConductivity: 200,
			MassDensity:         1850,
			SpecificHeat:        1825,
		}
	case O16:
		return &IsotopeData{
			Tag:     O16,
			Fission: []EnergyPoint{{Energy: 0.0253, Value: 0}},
			Scatter: []EnergyPoint{
				{0.0253, 3.9}, {1, 3.9}, {1e3, 3.8}, {1e5, 3.0}, {1e6, 2.0}, {1.4e7, 1.0},
			},
			Absorb: []EnergyPoint{
				{0.0253, 0.00019}, {1e6, 0.0001}, {1.4e7, 0.00005},
			},
			NuBar:               []EnergyPoint{{Energy: 0.0253, Value: 0}},
			WattData:            []WattPoint{{Energy: 0.0253, A: 0, B: 0}},
			NumberDensity:       3.35e28,
			AtomicMass:          16.0,
			Fissionable:         false,
			ThermalConductivity: 0.6,
			MassDensity:         1000,
			SpecificHeat:        4186,
		}
	case Fe54:
		return &IsotopeData{
			Tag:     Fe54,
			Fission: []EnergyPoint{{Energy: 0.0253, Value: 0}},
			Scatter: []EnergyPoint{
				{0.0253, 11.0}, {1, 11.0}, {1e3, 10.5}, {1e5, 7.0}, {1e6, 3.0}, {1.4e7, 1.8},
			},
			Absorb: []EnergyPoint{
				{0.0253, 2.2}, {1e3, 1.0}, {1e5, 0.3}, {1e6, 0.1}, {1.4e7, 0.05},
			},
			NuBar:               []EnergyPoint{{Energy: 0.0253, Value: 0}},
			WattData:            []WattPoint{{Energy: 0.0253, A: 0, B: 0}},
			NumberDensity:       8.77e28,
			AtomicMass:          54.0,
			Fissionable:         false,
			ThermalConductivity: 80,
			MassDensity:         7870,
			SpecificHeat:        449,
		}
	case U235:
		return &IsotopeData{
			Tag: U235,
			Fission: []EnergyPoint{
				{0.0253, 583.5}, {1, 283}, {10, 42}, {100, 8}, {1e3, 1.5}, {1e4, 1.2}, {1e5, 1.2}, {1e6, 1.2}, {2e6, 1.3}, {4e6, 1.3}, {1.4e7, 2.0},
			},
			Scatter: []EnergyPoint{
				{0.0253, 15.0}, {1, 15.0}, {1e3, 11}, {1e5, 9}, {1e6, 5.5}, {1.4e7, 2.5},
			},
			Absorb: []EnergyPoint{
				{0.0253, 99}, {1, 30}, {10, 15}, {100, 3}, {1e3, 0.8}, {1e5, 0.3}, {1e6, 0.1}, {1.4e7, 0.08},
			},
			NuBar: []EnergyPoint{
				{0.0253, 2.42}, {1e6, 2.50}, {2e6, 2.60}, {1.4e7, 4.20},
			},
			WattData: []WattPoint{
				{Energy: 0.0253, A: 0.988, B: 2.249}, {Energy: 1.4e7, A: 0.988, B: 2.249},
			},
			NumberDensity:       4.795e28,
			AtomicMass:          235.0,
			Fissionable:         true,
			ThermalConductivity: 27.5,
			MassDensity:         18710,
			SpecificHeat:        116,
		}
	case U238:
		return &IsotopeData{
			Tag: U238,
			Fission: []EnergyPoint{
				{0.0253, 0}, {1e6, 0}, {1.1e6, 0}, {1.5e6, 0.5}, {3e6, 0.9}, {6e6, 1.2}, {1.4e7, 2.0},
			},
			Scatter: []EnergyPoint{
				{0.0253, 9.0}, {1, 9.0}, {1e3, 10}, {1e5, 9}, {1e6, 5.0}, {1.4e7, 2.2},
			},
			Absorb: []EnergyPoint{
				{0.0253, 2.7}, {1, 6}, {6.67, 7200}, {100, 20}, {1e3, 3}, {1e5, 0.5}, {1e6, 0.25}, {1.4e7, 0.1},
			},
			NuBar: []EnergyPoint{
				{1e6, 2.45}, {2e6, 2.55}, {1.4e7, 4.10},
			},
			WattData: []WattPoint{
				{Energy: 0.0253, A: 0.88, B: 3.80}, {Energy: 1.4e7, A: 0.88, B: 3.80},
			},
			NumberDensity:       4.83e28,
			AtomicMass:          238.0,
			Fissionable:         true,
			ThermalConductivity: 27,
			MassDensity:         19100,
			SpecificHeat:        116,
		}
	case B10:
		return &IsotopeData{
			Tag:     B10,
			Fission: []EnergyPoint{{Energy: 0.0253, Value: 0}},
			Scatter: []EnergyPoint{
				{0.0253, 2.1}, {1, 2.1}, {1e3, 2.0}, {1e5, 2.0}, {1e6, 1.7}, {1.4e7, 1.2},
			},
			Absorb: []EnergyPoint{
				{0.0253, 3837}, {1, 600}, {10, 190}, {100, 60}, {1e3, 19}, {1e5, 2}, {1e6, 0.5}, {1.4e7, 0.1},
			},
			NuBar:               []EnergyPoint{{Energy: 0.0253, Value: 0}},
			WattData:            []WattPoint{{Energy: 0.0253, A: 0, B: 0}},
			NumberDensity:       1.30e29,
			AtomicMass:          10.0,
			Fissionable:         false,
			ThermalConductivity: 27,
			MassDensity:         2370,
			SpecificHeat:        1026,
		}
	default: // Void
		return &IsotopeData{
			Tag:                 Void,
			NumberDensity:       0,
			AtomicMass:          0,
			Fissionable:         false,
			ThermalConductivity: 0,
			MassDensity:         0,
			SpecificHeat:        0,
		}
	}
}
