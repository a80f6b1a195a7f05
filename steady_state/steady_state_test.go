package steady_state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/geometry"
	"github.com/notargets/gostp/model_problems/RAC"
	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
)

func pdtConfig(t *testing.T) *RAC.Config {
	prop, err := properties.LookupPropellant(types.Prop_Nitrogen)
	require.NoError(t, err)
	mat, err := properties.LookupMaterial(types.Mat_Copper)
	require.NoError(t, err)
	ins, err := properties.LookupInsulation(types.Insu_None)
	require.NoError(t, err)
	g, err := geometry.NewParameters(geometry.Design{
		RACType:        types.RAC_Cylinder,
		Layout:         types.Layout_Spiral,
		LcavC:          0.028,
		LcavI:          0.034,
		LcavA:          0.038,
		DinnerM:        0.0118,
		DouterM:        0.019,
		DmeanM:         0.0124,
		Dap:            0.004,
		Dh:             0.0006,
		NCh:            12,
		Pitch:          0.0016 * 12,
		AbsorptivityIC: 0.70,
	}, mat.Density, &geometry.Overrides{ARACi: 0.00121, ARACo: 0.00274, MRAC: 0.0429, Aheat: 0.0023929})
	require.NoError(t, err)
	return &RAC.Config{
		Geometry:    g,
		Propellant:  prop,
		Material:    mat,
		Insulation:  ins,
		Nozzle:      RAC.Nozzle{Quality: 0.96, PeMin: 100},
		Irradiation: RAC.IrradiationWindow{Power: 250, Efficiency: 1},
		Tamb:        298.15,
		Pamb:        1.01325e5,
		TRAC0:       298.15,
		Tpi:         298.15,
		PIn:         8.16e5,
		TimeStep:    1,
	}
}

func TestSolve(t *testing.T) {
	{
		// The plateau of the 250 W nitrogen run
		eq, err := Solve(pdtConfig(t), 300e-6)
		require.NoError(t, err)
		assert.InDelta(t, 847.1004, eq.Temperature, 1.e-2)
		assert.InDelta(t, 176.9915, eq.P6, 1.e-2)
		assert.InDelta(t, 84.8358, eq.Isp, 1.e-2)
		assert.InDelta(t, 0., eq.Residual, 0.025)
		assert.Greater(t, eq.Iterations, 1)
	}
	{
		// Matches the end of a long transient
		cfg := pdtConfig(t)
		cfg.RunTime = 900
		cfg.Schedule = RAC.MassFlowSchedule{Segments: []RAC.FlowSegment{{Rate: 300e-6, End: 900}}}
		cfg.Irradiation.End = 900
		h, err := RAC.Simulate(context.Background(), cfg)
		require.NoError(t, err)
		last, _ := h.Last()
		eq, err := Solve(cfg, 300e-6)
		require.NoError(t, err)
		assert.InDelta(t, last.Temperature, eq.Temperature, 1.e-2)
		// Solve works on a copy
		assert.Equal(t, 900., cfg.RunTime)
	}
	{
		// No flow runs hotter and is bounded below by the transient value
		eq, err := Solve(pdtConfig(t), 0)
		require.NoError(t, err)
		assert.Greater(t, eq.Temperature, 1086.6)
		assert.Equal(t, 0., eq.P6)
		assert.Equal(t, RAC.FlowIdle, eq.Flow)
	}
	{
		cfg := pdtConfig(t)
		cfg.Irradiation.Power = 0
		eq, err := Solve(cfg, 0)
		require.NoError(t, err)
		assert.Equal(t, cfg.Tamb, eq.Temperature)
		assert.Equal(t, 0., eq.P7)
	}
	{
		// More power, hotter receiver
		cfg := pdtConfig(t)
		cfg.Irradiation.Power = 300
		eq, err := Solve(cfg, 300e-6)
		require.NoError(t, err)
		assert.Greater(t, eq.Temperature, 847.2)
	}
}
