package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gostp/types"
)

func pdtDesign() Design {
	return Design{
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

func TestCylinderParameters(t *testing.T) {
	{
		p, err := NewParameters(pdtDesign(), 8900, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.0010810220321, p.ARACi, 1.e-12)
		assert.InDelta(t, 0.0028227209993, p.ARACo, 1.e-12)
		assert.InDelta(t, 0.0737811410182, p.MRAC, 1.e-11)
		assert.InDelta(t, 0.0699627778836, p.Lch, 1.e-12)
		assert.InDelta(t, 0.301142, p.LsI, 1.e-12)
		assert.InDelta(t, 0.0038330987507, p.RlossA, 1.e-12)
		assert.InDelta(t, 0.0121928354810, p.RlossE, 1.e-12)
		assert.InDelta(t, 0.25*math.Pi*0.0006*0.0006, p.Acs, 1.e-18)
		assert.InDelta(t, p.Lch*math.Pi*0.0006*12, p.Aheat, 1.e-15)
		assert.Equal(t, p.DouterM, p.DouterA)
		assert.InDelta(t, 249.0417, p.AbsorbedPower(250, 1), 1.e-4)
	}
	{
		ov := &Overrides{ARACi: 0.00121, ARACo: 0.00274, MRAC: 0.0429, Aheat: 0.0023929}
		p, err := NewParameters(pdtDesign(), 8900, ov)
		require.NoError(t, err)
		assert.Equal(t, 0.00121, p.ARACi)
		assert.Equal(t, 0.00274, p.ARACo)
		assert.Equal(t, 0.0429, p.MRAC)
		assert.Equal(t, 0.0023929, p.Aheat)
		// Overrides leave the remaining values alone
		assert.InDelta(t, 0.301142, p.LsI, 1.e-12)
	}
	{
		d := pdtDesign()
		d.InsulationThickness = 0.04
		p, err := NewParameters(d, 8900, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.099, p.DouterA, 1.e-15)
		assert.InDelta(t, 0.118, p.LcavA, 1.e-15)
		bare, _ := NewParameters(pdtDesign(), 8900, nil)
		assert.Equal(t, bare.MRAC, p.MRAC)
		assert.Equal(t, bare.ARACi, p.ARACi)
		assert.Greater(t, p.ARACo, bare.ARACo)
	}
	{
		d := pdtDesign()
		d.Layout = types.Layout_Straight
		p, err := NewParameters(d, 8900, nil)
		require.NoError(t, err)
		assert.Equal(t, d.LcavC, p.Lch)
	}
}

func TestConeParameters(t *testing.T) {
	d := pdtDesign()
	d.RACType = types.RAC_Cone
	d.Phi = 20 * math.Pi / 180
	p, err := NewParameters(d, 8900, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0005476905192, p.ARACi, 1.e-12)
	assert.InDelta(t, 0.0014399812969, p.ARACo, 1.e-12)
	assert.InDelta(t, 0.0251680156594, p.MRAC, 1.e-11)
	assert.InDelta(t, 0.0427256342496, p.Lch, 1.e-10)
	assert.InDelta(t, 0.1970931427937, p.LsI, 1.e-12)
	assert.InDelta(t, 0.0079899531718, p.RlossA, 1.e-12)
	assert.InDelta(t, 0.0253035836335, p.RlossE, 1.e-12)

	d.Layout = types.Layout_Straight
	p, err = NewParameters(d, 8900, nil)
	require.NoError(t, err)
	assert.InDelta(t, d.LcavC/math.Cos(d.Phi), p.Lch, 1.e-15)
	assert.GreaterOrEqual(t, p.Lch, d.LcavC)
}

func TestLossFractions(t *testing.T) {
	{
		lossA, lossE, F13 := ConeLossFractions(0.0059, 0.002, 0.034, 0.7)
		assert.InDelta(t, 0.0196465701455, F13, 1.e-12)
		assert.True(t, lossA > 0 && lossA < 1)
		assert.True(t, lossE > 0 && lossE < 1)
	}
	{
		// Aperture as wide as the cavity
		lossA, lossE := CylinderLossFractions(0.0059, 0.0059, 0.034, 0.7)
		assert.InDelta(t, 0.0330572583862, lossA, 1.e-12)
		assert.InDelta(t, 0.1101908612873, lossE, 1.e-12)
	}
	{
		// Losses fall as the cavity gets blacker and deeper
		a1, _ := CylinderLossFractions(0.0059, 0.002, 0.034, 0.5)
		a2, _ := CylinderLossFractions(0.0059, 0.002, 0.034, 0.9)
		a3, _ := CylinderLossFractions(0.0059, 0.002, 0.068, 0.9)
		assert.Greater(t, a1, a2)
		assert.Greater(t, a2, a3)
		// A perfect absorber reflects nothing
		a4, e4 := CylinderLossFractions(0.0059, 0.002, 0.034, 1)
		assert.Equal(t, 0., a4)
		assert.Greater(t, e4, 0.)
	}
}

func TestSpiralLength(t *testing.T) {
	{
		// One turn of a helix unrolls into the hypotenuse
		L := SpiralLength(types.RAC_Cylinder, 0.01, 0.02, 0.01)
		assert.InDelta(t, math.Hypot(math.Pi*0.02, 0.01), L, 1.e-15)
	}
	{
		L := SpiralLength(types.RAC_Cone, 0.028, 0.0124, 0.0192)
		assert.Greater(t, L, 0.028)
		// Finer pitch gives a longer channel
		assert.Greater(t, SpiralLength(types.RAC_Cone, 0.028, 0.0124, 0.0096), L)
	}
}

func TestDesignValidation(t *testing.T) {
	for _, mod := range []func(d *Design){
		func(d *Design) { d.Dh = 0 },
		func(d *Design) { d.NCh = 0 },
		func(d *Design) { d.Pitch = 0 },
		func(d *Design) { d.DouterM = d.DinnerM },
		func(d *Design) { d.Dap = 0.02 },
		func(d *Design) { d.AbsorptivityIC = 0 },
		func(d *Design) { d.RACType = types.RAC_Cone },
		func(d *Design) { d.InsulationThickness = -1 },
		func(d *Design) { d.LcavI = math.NaN() },
	} {
		d := pdtDesign()
		mod(&d)
		_, err := NewParameters(d, 8900, nil)
		assert.Error(t, err)
	}
	_, err := NewParameters(pdtDesign(), 0, nil)
	assert.Error(t, err)
}
