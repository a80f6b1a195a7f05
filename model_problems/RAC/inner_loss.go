package RAC

import (
	"math"

	"github.com/notargets/gostp/properties"
)

// InnerLossModel covers free convection out of the aperture (P4) and the
// share of inner wall emission leaving through the aperture (P5).
type InnerLossModel struct {
	LsI        float64 // m
	Area       float64 // m2, inner surface
	Emissivity float64 // RAC material
	RlossE     float64
	Tamb, Pamb float64
}

type InnerLoss struct {
	P4, H4 float64
	P5     float64
}

func (im *InnerLossModel) Solve(TRAC float64) (il InnerLoss) {
	var (
		Tf  = 0.5 * (TRAC + im.Tamb)
		air = properties.NewAir(im.Pamb)
	)
	if !inVacuum(im.Pamb) {
		Ra := math.Abs(air.Rayleigh(Tf, TRAC, im.Tamb, im.LsI))
		Nu := 0.00324 * math.Pow(Ra, 0.447)
		il.H4 = Nu * air.Conductivity(Tf) / im.LsI
		il.P4 = il.H4 * im.Area * (TRAC - im.Tamb)
	}
	T4, Ta4 := TRAC*TRAC*TRAC*TRAC, im.Tamb*im.Tamb*im.Tamb*im.Tamb
	il.P5 = im.Emissivity * properties.Sigma * im.Area * (T4 - Ta4) * im.RlossE
	return
}
