package RAC

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/geometry"
	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
)

func pdtDesign() geometry.Design {
	return geometry.Design{
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
	}
}

var pdtOverrides = &geometry.Overrides{ARACi: 0.00121, ARACo: 0.00274, MRAC: 0.0429, Aheat: 0.0023929}

// pdtConfig is the 250 W copper cylinder with a spiral nitrogen channel,
// flowing and irradiated for the whole run.
func pdtConfig(t *testing.T, runTime float64) *Config {
	prop, err := properties.LookupPropellant(types.Prop_Nitrogen)
	require.NoError(t, err)
	mat, err := properties.LookupMaterial(types.Mat_Copper)
	require.NoError(t, err)
	ins, err := properties.LookupInsulation(types.Insu_None)
	require.NoError(t, err)
	g, err := geometry.NewParameters(pdtDesign(), mat.Density, pdtOverrides)
	require.NoError(t, err)
	return &Config{
		Geometry:   g,
		Propellant: prop,
		Material:   mat,
		Insulation: ins,
		Nozzle:     Nozzle{Quality: 0.96, PeMin: 100},
		Schedule: MassFlowSchedule{Segments: []FlowSegment{
			{Rate: 300e-6, Start: 0, End: runTime},
		}},
		Irradiation: IrradiationWindow{Start: 0, End: runTime, Power: 250, Efficiency: 1},
		Tamb:        298.15,
		Pamb:        1.01325e5,
		TRAC0:       298.15,
		Tpi:         298.15,
		PIn:         8.16e5,
		RunTime:     runTime,
		TimeStep:    1,
	}
}

func pdtChannel(t *testing.T, pt types.PropellantType, layout types.ChannelLayout) *ChannelModel {
	prop, err := properties.LookupPropellant(pt)
	require.NoError(t, err)
	d := pdtDesign()
	d.Layout = layout
	g, err := geometry.NewParameters(d, 8900, pdtOverrides)
	require.NoError(t, err)
	return &ChannelModel{
		Layout:     layout,
		Dh:         g.Dh,
		DmeanM:     g.DmeanM,
		Lch:        g.Lch,
		Aheat:      g.Aheat,
		Acs:        g.Acs,
		Propellant: prop,
	}
}
