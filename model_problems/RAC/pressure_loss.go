package RAC

import (
	"math"

	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
)

// FrictionTurbulent is the Bergman smooth pipe Darcy friction factor
func FrictionTurbulent(Re float64) float64 {
	d := 0.790*math.Log(Re) - 1.64
	return 1 / (d * d)
}

// FrictionFactor returns the Darcy friction factor for the channel layout.
// Dd is the ratio of channel diameter to spiral centreline diameter.
func FrictionFactor(layout types.ChannelLayout, Re, Dd float64) (f float64) {
	switch layout {
	case types.Layout_Spiral:
		if Re < 2300 {
			f = math.Pow(1+0.14*math.Pow(Dd, 0.97)*Re, 1-0.644*math.Pow(Dd, 0.312)) * 64 / Re
		} else {
			f = 1.216*math.Pow(Re, -0.25) + 0.116*math.Sqrt(Dd)
		}
	default:
		if Re < 2300 {
			f = 64 / Re
		} else {
			f = FrictionTurbulent(Re)
		}
	}
	return
}

// ChamberPressure applies the channel friction loss to the feed pressure pIn
func (cm *ChannelModel) ChamberPressure(ReD, Tb, mdotch, pIn float64) (pc float64) {
	var (
		f    = FrictionFactor(cm.Layout, ReD, cm.Dh/cm.DmeanM)
		d5   = math.Pow(cm.Dh, 5)
		loss = f * 8 * cm.Lch * properties.RU * Tb * mdotch * mdotch /
			(math.Pi * math.Pi * pIn * cm.Propellant.MolarMass() * d5)
	)
	return pIn - loss
}
