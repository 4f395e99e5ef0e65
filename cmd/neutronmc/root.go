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

// Package main contains the neutronmc command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/neutronmc"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	configFile string

	// config holds the configuration for the current invocation, read
	// by RootCmd's PersistentPreRunE before any subcommand runs.
	config *neutronmc.ConfigData
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "neutronmc",
	Short: "A continuous-energy Monte Carlo neutron transport engine.",
	Long: `neutronmc simulates neutron transport through user-defined geometries
of fissionable and moderating material, estimating criticality (k) and,
optionally, the resulting heat distribution.
Use the subcommands specified below to access the model functionality.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(startup(configFile))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		completedMessage()
	},
}

func startup(configFile string) error {
	var err error
	config, err = neutronmc.ReadConfigFile(configFile)
	if err != nil {
		return err
	}
	fmt.Println("\n" +
		"------------------------------------------------\n" +
		"                   neutronmc\n" +
		"     continuous-energy Monte Carlo transport\n" +
		"                version " + version + "\n" +
		"------------------------------------------------")
	return nil
}

func completedMessage() {
	fmt.Println("\n" +
		"------------------------------------\n" +
		"          run complete\n" +
		"------------------------------------")
}

func labelErr(err error) error {
	if err != nil {
		return fmt.Errorf("neutronmc: %v", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./neutronmc.toml", "configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neutronmc v%s\n", version)
	},
	PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRun:  func(cmd *cobra.Command, args []string) {},
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
