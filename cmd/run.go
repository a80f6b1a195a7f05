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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gostp/InputParameters"
	"github.com/notargets/gostp/metrics"
	"github.com/notargets/gostp/model_problems/RAC"
)

type RunOptions struct {
	ICFile   string
	CSVFile  string
	YAMLFile string
	Profile  string
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Transient run of a receiver described by a YAML input file",
	Long: `
Integrates the receiver energy balance over the run time and prints a
summary. Without an input file the 250 W nitrogen laboratory case is run.

gostp run -I input.yaml --csv history.csv`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ro := &RunOptions{
			ICFile:   viper.GetString("inputConditionsFile"),
			CSVFile:  viper.GetString("csv"),
			YAMLFile: viper.GetString("yaml"),
			Profile:  viper.GetString("profile"),
		}
		var ip *InputParameters.InputParameters
		if ip, err = processInput(ro.ICFile); err != nil {
			return
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return Run(ctx, ro, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- RAC geometry\n\t- propellant and mass flow schedule")
	RunCmd.Flags().Float64("runTime", 0, "run time in seconds, overrides the input file")
	RunCmd.Flags().Float64("timeStep", 0, "time step in seconds, overrides the input file")
	RunCmd.Flags().Int("logFrequency", -1, "steps between progress messages, overrides the input file")
	RunCmd.Flags().Bool("parallel", false, "solve the per step heat losses concurrently")
	RunCmd.Flags().String("csv", "", "write the step history to this CSV file")
	RunCmd.Flags().String("yaml", "", "write the step history to this YAML file")
	RunCmd.Flags().String("profile", "", "profile the run: cpu or mem")
	for _, name := range []string{"inputConditionsFile", "runTime", "timeStep", "logFrequency",
		"parallel", "csv", "yaml", "profile"} {
		_ = viper.BindPFlag(name, RunCmd.Flags().Lookup(name))
	}
}

const exampleFile = `
########################################
Title: "Test Case"
RAC:
  Type: cylinder         # or cone, with Phi in degrees
  ChannelLayout: spiral  # or straight
  LcavC: 28              # mm
  LcavI: 34
  LcavA: 38
  DinnerM: 11.8
  DouterM: 19
  DmeanM: 12.4
  Dap: 4
  Dh: 0.6
  NCh: 12
  Pitch: 19.2
  AbsorptivityIC: 0.7
Propellant: nitrogen     # water, ammonia, hydrogen
Material: copper
Insulation: none         # saffil, mli
Irradiation: {Power: 250, Efficiency: 1, Start: 0, End: 3600}
MassFlow:
  - {Rate: 300.e-6, Start: 0, End: 3600}
NozzleQuality: 0.96
PeMin: 100
Tamb: 298.15
Pamb: 101325
InitialTemperature: 298.15
InletTemperature: 298.15
FeedPressure: 816000
RunTime: 3600
TimeStep: 1
########################################
`

// processInput reads the input file, falling back to the built in case, and
// layers the command line and environment overrides on top.
func processInput(icFile string) (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.Default()
	if len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		ip = &InputParameters.InputParameters{}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w\nExample File:%s", icFile, err, exampleFile)
		}
	} else {
		log.Info("no input file given (-I, --inputConditionsFile), running the built in case")
	}
	if v := viper.GetFloat64("runTime"); v > 0 {
		ip.RunTime = v
	}
	if v := viper.GetFloat64("timeStep"); v > 0 {
		ip.TimeStep = v
	}
	if v := viper.GetInt("logFrequency"); v >= 0 && viper.IsSet("logFrequency") {
		ip.LogFrequency = v
	}
	if viper.GetBool("parallel") {
		ip.ParallelSubSolves = true
	}
	if len(ip.LogLevel) != 0 && !viper.GetBool("verbose") {
		if err = setLogLevel(ip.LogLevel, false); err != nil {
			return
		}
	}
	return
}

func Run(ctx context.Context, ro *RunOptions, ip *InputParameters.InputParameters) (err error) {
	switch ro.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, use cpu or mem", ro.Profile)
	}
	ip.Print()
	var cfg *RAC.Config
	if cfg, err = ip.BuildConfig(); err != nil {
		return
	}
	cfg.OnStep = metrics.UpdateStep
	h, runErr := RAC.Simulate(ctx, cfg)
	if h == nil {
		return runErr
	}
	metrics.SetStatus(h.Status)
	h.Summary(ip.PIn, ip.Irradiation.Power).Print()
	if len(ro.CSVFile) != 0 {
		if err = WriteCSV(ro.CSVFile, h); err != nil {
			return
		}
		log.Infof("wrote %d steps to %s", h.Len(), ro.CSVFile)
	}
	if len(ro.YAMLFile) != 0 {
		if err = WriteYAML(ro.YAMLFile, h); err != nil {
			return
		}
		log.Infof("wrote %d steps to %s", h.Len(), ro.YAMLFile)
	}
	return runErr
}
