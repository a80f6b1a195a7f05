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
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gostp/server"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve transient runs over HTTP",
	Long: `
Starts an HTTP server around the transient solver:

	POST   /run      start a run, the body may override the input file (YAML or JSON)
	DELETE /run      stop the current run
	GET    /history  steps of the last run
	GET    /summary  summary of the last run
	GET    /ws       websocket stream of steps
	GET    /metrics  prometheus metrics

gostp serve -I input.yaml --addr :8086`,
	RunE: func(cmd *cobra.Command, args []string) error {
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		ip, err := processInput(icFile)
		if err != nil {
			return err
		}
		if err = ip.Validate(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return server.NewServer(ctx, viper.GetString("addr"), ip).Serve()
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the base input parameters")
	ServeCmd.Flags().String("addr", ":8086", "listen address")
	_ = viper.BindPFlag("addr", ServeCmd.Flags().Lookup("addr"))
}
