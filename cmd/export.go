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
	"encoding/csv"
	"os"
	"strconv"

	"github.com/ghodss/yaml"

	"github.com/notargets/gostp/model_problems/RAC"
)

var csvHeader = []string{
	"step", "time_s", "Pin_W", "P1_W", "P2_W", "P3_W", "P4_W", "P5_W", "P6_W", "P7_W",
	"TRAC_K", "Tinsu_K", "Tpo_K", "Tb_K", "pc_Pa", "F_N", "Isp_s", "ReD", "PrP", "ReT", "Cd",
	"At_m2", "Ae_m2", "v_vmax", "flow", "not_choked", "fallback",
}

func csvRow(sr *RAC.StepResult) []string {
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
	return []string{
		strconv.Itoa(sr.Step), g(sr.Time), g(sr.Pin),
		g(sr.P1), g(sr.P2), g(sr.P3), g(sr.P4), g(sr.P5), g(sr.P6), g(sr.P7),
		g(sr.Temperature), g(sr.Tinsu), g(sr.Tpo), g(sr.Tb), g(sr.Pc), g(sr.Thrust), g(sr.Isp),
		g(sr.ReD), g(sr.PrP), g(sr.ReT), g(sr.Cd), g(sr.At), g(sr.Ae),
		sr.VelocityRatioString(), sr.Flow.String(),
		strconv.FormatBool(sr.NotChoked), strconv.FormatBool(sr.FallbackUsed),
	}
}

func WriteCSV(fileName string, h *RAC.History) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(f)
	if err = w.Write(csvHeader); err != nil {
		return
	}
	for i := range h.Steps {
		if err = w.Write(csvRow(&h.Steps[i])); err != nil {
			return
		}
	}
	w.Flush()
	return w.Error()
}

func WriteYAML(fileName string, h *RAC.History) (err error) {
	var data []byte
	if data, err = yaml.Marshal(h); err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}
