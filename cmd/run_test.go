package cmd

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/model_problems/RAC"
)

func TestProcessInput(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
RAC:
  Type: cylinder
  ChannelLayout: straight
  LcavC: 28
  LcavI: 34
  LcavA: 38
  DinnerM: 11.8
  DouterM: 19
  DmeanM: 12.4
  Dap: 4
  Dh: 0.6
  NCh: 12
  AbsorptivityIC: 0.7
Propellant: ammonia
Material: molybdenum
Irradiation: {Power: 250, Efficiency: 0.9, Start: 0, End: 600}
MassFlow:
  - {Rate: 200.e-6, Start: 60, End: 600}
NozzleQuality: 0.96
PeMin: 100
Tamb: 298.15
Pamb: 0
InitialTemperature: 298.15
InletTemperature: 298.15
FeedPressure: 5.e+5
RunTime: 600
TimeStep: 0.5
`)
	fileName := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(fileName, fileInput, 0644))
	ip, err := processInput(fileName)
	require.NoError(t, err)
	assert.Equal(t, "ammonia", ip.Propellant)
	assert.Equal(t, 0.5, ip.TimeStep)
	assert.Equal(t, 600., ip.RunTime)
	require.NoError(t, ip.Validate())

	viper.Set("runTime", 30.)
	t.Cleanup(func() { viper.Set("runTime", 0.) })
	ip, err = processInput(fileName)
	require.NoError(t, err)
	assert.Equal(t, 30., ip.RunTime)

	// No file gives the built in case
	ip, err = processInput("")
	require.NoError(t, err)
	assert.Equal(t, "nitrogen", ip.Propellant)

	require.NoError(t, os.WriteFile(fileName, []byte("RAC: [1, 2\n"), 0644))
	_, err = processInput(fileName)
	assert.Error(t, err)
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	ro := &RunOptions{
		CSVFile:  filepath.Join(dir, "history.csv"),
		YAMLFile: filepath.Join(dir, "history.yaml"),
	}
	ip, err := processInput("")
	require.NoError(t, err)
	ip.RunTime, ip.LogFrequency = 20, 0
	require.NoError(t, Run(context.Background(), ro, ip))
	{
		f, err := os.Open(ro.CSVFile)
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 21)
		assert.Equal(t, csvHeader, rows[0])
		assert.Equal(t, "0", rows[1][0])
		assert.Equal(t, "Flowing", rows[1][24])
		T, err := strconv.ParseFloat(rows[1][10], 64)
		require.NoError(t, err)
		assert.InDelta(t, 313.22509, T, 1.e-5)
	}
	{
		data, err := os.ReadFile(ro.YAMLFile)
		require.NoError(t, err)
		var h RAC.History
		require.NoError(t, yaml.Unmarshal(data, &h))
		assert.Equal(t, RAC.Completed, h.Status)
		assert.Equal(t, 20, h.Len())
		assert.Equal(t, 19, h.HaltStep)
		assert.InDelta(t, 313.22509, h.Steps[0].Temperature, 1.e-5)
	}
	ro.Profile = "gpu"
	assert.Error(t, Run(context.Background(), ro, ip))
}

func TestCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"run", "serve", "steady"} {
		assert.True(t, names[name], name)
	}
	assert.NoError(t, setLogLevel("warn", false))
	assert.Error(t, setLogLevel("loud", false))
	assert.NoError(t, setLogLevel("info", false))
}
