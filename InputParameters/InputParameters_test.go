package InputParameters

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/types"
)

func TestParse(t *testing.T) {
	data, err := os.ReadFile("pdt_nitrogen.yaml")
	require.NoError(t, err)
	ip := &InputParameters{}
	require.NoError(t, ip.Parse(data))
	assert.Equal(t, Default(), ip)
	ip.Print()
}

func TestBuildConfig(t *testing.T) {
	{
		cfg, err := Default().BuildConfig()
		require.NoError(t, err)
		g := cfg.Geometry
		assert.Equal(t, types.RAC_Cylinder, g.RACType)
		assert.Equal(t, types.Layout_Spiral, g.Layout)
		assert.Equal(t, 0.0429, g.MRAC)
		assert.Equal(t, 0.0023929, g.Aheat)
		assert.Equal(t, 12, g.NCh)
		assert.InDelta(t, 0.0006, g.Dh, 1.e-15)
		assert.Equal(t, types.Prop_Nitrogen, cfg.Propellant.Type)
		assert.Equal(t, types.Mat_Copper, cfg.Material.Type)
		assert.False(t, cfg.Insulation.Present())
		require.Len(t, cfg.Schedule.Segments, 1)
		assert.Equal(t, 300e-6, cfg.Schedule.Segments[0].Rate)
		assert.Equal(t, 3600., cfg.RunTime)
		assert.Equal(t, 0.96, cfg.Nozzle.Quality)
		assert.InDelta(t, 249.041725, g.AbsorbedPower(cfg.Irradiation.Power, cfg.Irradiation.Efficiency), 1.e-5)
	}
	{
		// Cone geometry in degrees
		ip := Default()
		ip.RAC.Type, ip.RAC.PhiDeg, ip.RAC.Overrides = "cone", 20, nil
		cfg, err := ip.BuildConfig()
		require.NoError(t, err)
		assert.Equal(t, types.RAC_Cone, cfg.Geometry.RACType)
		assert.InDelta(t, 0.0251680156594, cfg.Geometry.MRAC, 1.e-11)
	}
	{
		ip := Default()
		ip.Insulation = "saffil"
		_, err := ip.BuildConfig()
		assert.True(t, errors.Is(err, ErrConfiguration))
		ip.RAC.InsulationThickness = 40
		cfg, err := ip.BuildConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Insulation.Present())
		assert.InDelta(t, 0.019+0.08, cfg.Geometry.DouterA, 1.e-12)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	for _, mod := range []func(ip *InputParameters){
		func(ip *InputParameters) { ip.RAC.Type = "sphere" },
		func(ip *InputParameters) { ip.RAC.ChannelLayout = "zigzag" },
		func(ip *InputParameters) { ip.Propellant = "xenon" },
		func(ip *InputParameters) { ip.Material = "unobtainium" },
		func(ip *InputParameters) { ip.Insulation = "foam" },
		func(ip *InputParameters) { ip.TimeStep = 0 },
		func(ip *InputParameters) { ip.RunTime = -1 },
		func(ip *InputParameters) { ip.PIn = 0 },
		func(ip *InputParameters) { ip.NozzleQuality = 1.2 },
		func(ip *InputParameters) { ip.Irradiation.Efficiency = 2 },
		func(ip *InputParameters) { ip.Irradiation.End = -1 },
		func(ip *InputParameters) { ip.LogLevel = "loud" },
		func(ip *InputParameters) {
			ip.MassFlow = []FlowSegment{{Rate: 1.e-4, Start: 0, End: 60}, {Rate: 1.e-4, Start: 30, End: 90}}
		},
	} {
		ip := Default()
		mod(ip)
		err := ip.Validate()
		assert.True(t, errors.Is(err, ErrConfiguration), "%v", err)
		_, err = ip.BuildConfig()
		assert.Error(t, err)
	}
	{
		// Geometry errors surface from BuildConfig
		ip := Default()
		ip.RAC.Dap = 20
		assert.NoError(t, ip.Validate())
		_, err := ip.BuildConfig()
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
}

func TestMaterialCatalog(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "materials.ini")
	require.NoError(t, os.WriteFile(fileName, []byte(`
[Molybdenum Grey]
Base         = molybdenum
Emissivity   = 0.45
Absorptivity = 0.70
`), 0644))
	ip := Default()
	ip.MaterialCatalog = fileName
	ip.Material = "molybdenum grey"
	cfg, err := ip.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.45, cfg.Material.Emissivity)
	assert.Equal(t, "Molybdenum Grey", cfg.Material.Name())
	// Built in materials stay reachable
	ip.Material = "tungsten"
	cfg, err = ip.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, types.Mat_Tungsten, cfg.Material.Type)
	ip.Material = "pewter"
	_, err = ip.BuildConfig()
	assert.True(t, errors.Is(err, ErrConfiguration))
}
