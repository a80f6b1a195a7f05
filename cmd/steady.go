/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notargets/gostp/steady_state"
)

// SteadyCmd represents the steady command
var SteadyCmd = &cobra.Command{
	Use:   "steady",
	Short: "Equilibrium receiver temperature at a constant mass flow",
	Long: `
Solves for the RAC temperature at which the absorbed power balances all
losses, with the receiver irradiated and a constant mass flow. The flow rate
defaults to the first mass flow segment of the input.

gostp steady -I input.yaml --rate 300e-6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		ip, err := processInput(icFile)
		if err != nil {
			return err
		}
		rate, _ := cmd.Flags().GetFloat64("rate")
		if rate < 0 && len(ip.MassFlow) != 0 {
			rate = ip.MassFlow[0].Rate
		}
		rate = max(rate, 0)
		cfg, err := ip.BuildConfig()
		if err != nil {
			return err
		}
		eq, err := steady_state.Solve(cfg, rate)
		if err != nil {
			return err
		}
		printEquilibrium(&eq, rate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(SteadyCmd)
	SteadyCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	SteadyCmd.Flags().Float64("rate", -1, "mass flow rate in kg/s, 0 for no flow")
}

func printEquilibrium(eq *steady_state.Equilibrium, rate float64) {
	fmt.Printf("%8.3g\t\t= Mass flow rate [kg/s]\n", rate)
	fmt.Printf("%8.2f\t\t= Equilibrium RAC temperature [K]\n", eq.Temperature)
	fmt.Printf("%8.2f\t\t= Propellant outlet temperature [K]\n", eq.Tpo)
	fmt.Printf("%8.3f\t\t= P1 outer convection [W]\n", eq.P1)
	fmt.Printf("%8.3f\t\t= P2 outer radiation [W]\n", eq.P2)
	fmt.Printf("%8.3f\t\t= P4 inner convection [W]\n", eq.P4)
	fmt.Printf("%8.3f\t\t= P5 inner radiation [W]\n", eq.P5)
	fmt.Printf("%8.3f\t\t= P6 propellant [W]\n", eq.P6)
	if rate > 0 {
		fmt.Printf("%8.4f\t\t= Thrust [N]\n", eq.Thrust)
		fmt.Printf("%8.2f\t\t= Isp [s]\n", eq.Isp)
	}
	fmt.Printf("%8.2g\t\t= Residual [W] after %d evaluations\n", eq.Residual, eq.Iterations)
}
