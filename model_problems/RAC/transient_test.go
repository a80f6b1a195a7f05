package RAC

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/geometry"
	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
)

func TestReferenceScenario(t *testing.T) {
	cfg := pdtConfig(t, 600)
	h, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, Completed, h.Status)
	require.Equal(t, 600, h.Len())
	assert.Equal(t, 599, h.HaltStep)
	{
		// Inlet and wall start at ambient: no channel heat, cold gas thrust
		sr := h.Steps[0]
		assert.Equal(t, 0., sr.P1)
		assert.Equal(t, 0., sr.P6)
		assert.InDelta(t, 249.04173, sr.Pin, 1.e-5)
		assert.InDelta(t, 313.22509, sr.Temperature, 1.e-5)
		assert.InDelta(t, 806615.633, sr.Pc, 1.e-2)
		assert.InDelta(t, 0.14875, sr.Thrust, 1.e-5)
		assert.InDelta(t, 50.54205, sr.Isp, 1.e-4)
		assert.InDelta(t, 2997.214, sr.ReD, 1.e-2)
		assert.Equal(t, FlowFlowing, sr.Flow)
	}
	{
		sr := h.Steps[1]
		assert.InDelta(t, 4.69321, sr.P6, 1.e-3)
		assert.InDelta(t, 327.91462, sr.Temperature, 1.e-3)
		assert.InDelta(t, 313.19534, sr.Tpo, 1.e-3)
	}
	{
		sr := h.Steps[60]
		assert.InDelta(t, 760.23998, sr.Temperature, 1.e-2)
		assert.InDelta(t, 146.76364, sr.P6, 1.e-2)
	}
	{
		// Plateau
		sr := h.Steps[599]
		assert.InDelta(t, 847.10039, sr.Temperature, 1.e-2)
		assert.InDelta(t, 846.86046, sr.Tpo, 1.e-2)
		assert.InDelta(t, 19.52477, sr.P1, 1.e-3)
		assert.InDelta(t, 51.20002, sr.P2, 1.e-3)
		assert.InDelta(t, 1.04979, sr.P4, 1.e-4)
		assert.InDelta(t, 0.27568, sr.P5, 1.e-4)
		assert.InDelta(t, 176.99147, sr.P6, 1.e-2)
		assert.InDelta(t, 0., sr.P7, 1.e-2)
		assert.InDelta(t, 791468.0, sr.Pc, 2.)
		assert.InDelta(t, 0.24967, sr.Thrust, 1.e-4)
		assert.InDelta(t, 84.83576, sr.Isp, 1.e-2)
		assert.InDelta(t, 1881.742, sr.ReD, 0.1)
		assert.InDelta(t, 0.72617, sr.PrP, 1.e-4)
		assert.False(t, sr.NotChoked)
		assert.False(t, sr.FallbackUsed)
		assert.False(t, math.IsNaN(sr.VelocityRatio))
	}
	// Heating from ambient never reverses
	for i := 1; i < h.Len(); i++ {
		assert.GreaterOrEqual(t, h.Steps[i].Temperature, h.Steps[i-1].Temperature-1.e-9)
	}
	// Energy closure of every update
	{
		T := cfg.TRAC0
		for _, sr := range h.Steps {
			cp, err := cfg.Material.SpecificHeat(T)
			require.NoError(t, err)
			assert.InDelta(t, sr.P7*cfg.TimeStep, (sr.Temperature-T)*cp*cfg.Geometry.MRAC, 1.e-9)
			assert.InDelta(t, sr.Pin-(sr.P1+sr.P2+sr.P4+sr.P5+sr.P6), sr.P7, 1.e-12)
			T = sr.Temperature
		}
	}
	{
		s := h.Summary(cfg.PIn, cfg.Irradiation.Power)
		assert.Equal(t, Completed, s.Status)
		assert.InDelta(t, 847.10039, s.MaxTemperature, 1.e-2)
		assert.InDelta(t, 84.83576, s.MaxIsp, 1.e-2)
		assert.InDelta(t, 176.99147/250, s.ThermalEfficiency, 1.e-4)
		assert.InDelta(t, 8.16e5-791468.0, s.MaxPressureLoss, 2.)
		assert.Greater(t, s.ExitDiameter, s.ThroatDiameter)
		assert.Less(t, s.MinReD, s.MaxReD)
		assert.Equal(t, 0, s.FallbackStepsCount)
	}
}

func TestOverTemperatureHalt(t *testing.T) {
	cfg := pdtConfig(t, 600)
	cfg.Material.TMax = 500
	h, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, OverTemperature, h.Status)
	require.Equal(t, 17, h.Len())
	assert.Equal(t, 16, h.HaltStep)
	assert.InDelta(t, 498.0, h.Steps[15].Temperature, 0.05)
	assert.InDelta(t, 507.96, h.Steps[16].Temperature, 0.05)
	for _, sr := range h.Steps[:16] {
		assert.LessOrEqual(t, sr.Temperature, 500.)
	}
}

func TestZeroFlow(t *testing.T) {
	// Ambient start without input or flow stays put
	{
		cfg := pdtConfig(t, 100)
		cfg.Schedule = MassFlowSchedule{}
		cfg.Irradiation.End = 0
		h, err := Simulate(context.Background(), cfg)
		require.NoError(t, err)
		for _, sr := range h.Steps {
			assert.Equal(t, cfg.TRAC0, sr.Temperature)
			assert.Equal(t, 0., sr.P7)
		}
	}
	// Heated without flow
	{
		cfg := pdtConfig(t, 1800)
		cfg.Schedule = MassFlowSchedule{}
		h, err := Simulate(context.Background(), cfg)
		require.NoError(t, err)
		for _, sr := range h.Steps {
			assert.Equal(t, 0., sr.P6)
			assert.Equal(t, 0., sr.Thrust)
			assert.Equal(t, 0., sr.Isp)
			assert.Equal(t, cfg.Tpi, sr.Tpo)
			assert.Equal(t, cfg.PIn, sr.Pc)
			assert.Equal(t, FlowIdle, sr.Flow)
			assert.True(t, math.IsNaN(sr.VelocityRatio))
			assert.Equal(t, "n/a", sr.VelocityRatioString())
		}
		last, ok := h.Last()
		require.True(t, ok)
		assert.InDelta(t, 1086.6, last.Temperature, 0.5)
		s := h.Summary(cfg.PIn, 250)
		assert.Equal(t, 0., s.MaxIsp)
		assert.True(t, math.IsNaN(s.MaxVelocityRatio))
	}
	// A zero rate segment is treated as no flow
	{
		cfg := pdtConfig(t, 10)
		cfg.Schedule.Segments[0].Rate = 0
		h, err := Simulate(context.Background(), cfg)
		require.NoError(t, err)
		for _, sr := range h.Steps {
			assert.Equal(t, FlowIdle, sr.Flow)
		}
	}
}

func TestMonotonicCooling(t *testing.T) {
	cfg := pdtConfig(t, 1800)
	cfg.Schedule = MassFlowSchedule{}
	cfg.Irradiation.End = 0
	cfg.TRAC0 = 800
	h, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	prev := cfg.TRAC0
	for _, sr := range h.Steps {
		assert.Less(t, sr.Temperature, prev)
		assert.Greater(t, sr.Temperature, cfg.Tamb)
		assert.Equal(t, 0., sr.Pin)
		prev = sr.Temperature
	}
	assert.InDelta(t, 304.5, prev, 0.1)
}

func TestSegmentsAndWindow(t *testing.T) {
	cfg := pdtConfig(t, 120)
	cfg.Schedule = MassFlowSchedule{Segments: []FlowSegment{
		{Rate: 300e-6, Start: 10, End: 40},
		{Rate: 150e-6, Start: 40, End: 60},
		{Rate: 300e-6, Start: 90, End: 100},
	}}
	cfg.Irradiation.Start, cfg.Irradiation.End = 5, 110
	h, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 120, h.Len())
	for _, sr := range h.Steps {
		flowing := (sr.Time >= 10 && sr.Time < 60) || (sr.Time >= 90 && sr.Time < 100)
		if flowing {
			assert.Equal(t, FlowFlowing, sr.Flow, "t = %g", sr.Time)
			assert.Greater(t, sr.Thrust, 0.)
		} else {
			assert.Equal(t, FlowIdle, sr.Flow, "t = %g", sr.Time)
		}
		lit := sr.Time >= 5 && sr.Time < 110
		assert.Equal(t, lit, sr.Pin > 0, "t = %g", sr.Time)
	}
	// Half the flow, less thrust
	assert.Less(t, h.Steps[45].Thrust, h.Steps[35].Thrust)
}

func TestParallelSubSolves(t *testing.T) {
	serial := pdtConfig(t, 60)
	hs, err := Simulate(context.Background(), serial)
	require.NoError(t, err)
	parallel := pdtConfig(t, 60)
	parallel.ParallelSubSolves = true
	hp, err := Simulate(context.Background(), parallel)
	require.NoError(t, err)
	require.Equal(t, hs.Len(), hp.Len())
	for i := range hs.Steps {
		assert.Equal(t, hs.Steps[i].Temperature, hp.Steps[i].Temperature)
		assert.Equal(t, hs.Steps[i].P6, hp.Steps[i].P6)
	}
}

func TestStepErrors(t *testing.T) {
	{
		cfg := pdtConfig(t, 10)
		cfg.Schedule.Segments[0].Rate = 0.024
		cfg.TRAC0 = 300
		var seen int
		cfg.OnStep = func(sr StepResult) { seen++ }
		sim, err := NewSimulation(cfg)
		require.NoError(t, err)
		h, err := sim.Run(context.Background())
		require.Error(t, err)
		var se *StepError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, StageChannel, se.Stage)
		assert.Equal(t, 0, se.Step)
		assert.True(t, errors.Is(err, ErrRegime))
		assert.Equal(t, Failed, h.Status)
		assert.Equal(t, 0, h.Len())
		assert.Equal(t, -1, h.HaltStep)
		assert.Equal(t, 0, seen)
	}
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h, err := Simulate(ctx, pdtConfig(t, 10))
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, Failed, h.Status)
	}
	{
		cfg := pdtConfig(t, 10)
		cfg.TimeStep = 0
		_, err := NewSimulation(cfg)
		assert.Error(t, err)
	}
}

func TestInsulatedAndConeRuns(t *testing.T) {
	prop, _ := properties.LookupPropellant(types.Prop_Nitrogen)
	mat, _ := properties.LookupMaterial(types.Mat_Copper)
	{
		var final [3]float64
		for i, it := range []types.InsulationType{types.Insu_None, types.Insu_Saffil, types.Insu_MLI} {
			ins, _ := properties.LookupInsulation(it)
			d := pdtDesign()
			if ins.Present() {
				d.InsulationThickness = 0.04
			}
			g, err := geometry.NewParameters(d, mat.Density, nil)
			require.NoError(t, err)
			cfg := pdtConfig(t, 600)
			cfg.Geometry, cfg.Propellant, cfg.Material, cfg.Insulation = g, prop, mat, ins
			h, err := Simulate(context.Background(), cfg)
			require.NoError(t, err)
			last, _ := h.Last()
			final[i] = last.Temperature
			if ins.Present() {
				assert.Greater(t, last.P3, 0.)
				assert.Less(t, last.Tinsu, last.Temperature)
			} else {
				assert.Equal(t, 0., last.P3)
				assert.Equal(t, h.Steps[h.Len()-2].Temperature, last.Tinsu)
			}
		}
		// Insulation keeps the receiver hotter, MLI more so
		assert.Greater(t, final[1], final[0])
		assert.Greater(t, final[2], final[1])
	}
	{
		d := pdtDesign()
		d.RACType = types.RAC_Cone
		d.Phi = 20 * math.Pi / 180
		g, err := geometry.NewParameters(d, mat.Density, nil)
		require.NoError(t, err)
		cfg := pdtConfig(t, 300)
		cfg.Geometry = g
		h, err := Simulate(context.Background(), cfg)
		require.NoError(t, err)
		last, _ := h.Last()
		assert.Greater(t, last.Temperature, 600.)
		assert.Greater(t, last.Isp, 70.)
	}
}
