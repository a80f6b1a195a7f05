package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{
		labels := []string{"Cone", "conical", "CYLINDER", "cylindrical"}
		want := []RACType{RAC_Cone, RAC_Cone, RAC_Cylinder, RAC_Cylinder}
		for i, label := range labels {
			rt, err := NewRACType(label)
			require.NoError(t, err)
			assert.Equal(t, want[i], rt)
		}
		_, err := NewRACType("sphere")
		assert.Error(t, err)
		assert.Equal(t, "Cylinder", RAC_Cylinder.String())
	}
	{
		cl, err := NewChannelLayout("Spiral")
		require.NoError(t, err)
		assert.Equal(t, Layout_Spiral, cl)
		cl, err = NewChannelLayout("linear")
		require.NoError(t, err)
		assert.Equal(t, Layout_Straight, cl)
		_, err = NewChannelLayout("zigzag")
		assert.Error(t, err)
	}
	{
		for label, pt := range map[string]PropellantType{
			"N2": Prop_Nitrogen, "water": Prop_Water, "NH3": Prop_Ammonia, "Hydrogen": Prop_Hydrogen,
		} {
			got, err := NewPropellantType(label)
			require.NoError(t, err)
			assert.Equal(t, pt, got)
		}
		_, err := NewPropellantType("xenon")
		assert.ErrorContains(t, err, "[ammonia h2 h2o hydrogen n2 nh3 nitrogen water]")
	}
	{
		mt, err := NewMaterialType("Molybdenum Black")
		require.NoError(t, err)
		assert.Equal(t, Mat_MolybdenumBlack, mt)
		assert.Equal(t, "Molybdenum with black paint coating", mt.String())
		_, err = NewMaterialType("pewter")
		assert.Error(t, err)
		assert.Panics(t, func() { _ = MaterialType(99).String() })
	}
	{
		it, err := NewInsulationType("")
		require.NoError(t, err)
		assert.Equal(t, Insu_None, it)
		it, err = NewInsulationType("MLI")
		require.NoError(t, err)
		assert.Equal(t, Insu_MLI, it)
		assert.Equal(t, "Saffil M-Fil", Insu_Saffil.String())
	}
}
