package geometry

import (
	"math"

	"github.com/notargets/gostp/types"
)

const coneSpiralSamples = 10000

// SpiralLength returns the arc length of a channel wound at pitch around a
// cavity of length Lcav and centreline diameter D. The conical spiral is
// integrated numerically, the cylindrical helix is closed form.
func SpiralLength(rt types.RACType, Lcav, D, pitch float64) (arcL float64) {
	switch rt {
	case types.RAC_Cone:
		var (
			side       = math.Sqrt(Lcav*Lcav + 0.25*D*D)
			turns      = side / pitch
			omega      = turns * 2 * math.Pi / Lcav
			px, py, pz float64
		)
		for i := 0; i < coneSpiralSamples; i++ {
			z := Lcav * float64(i) / coneSpiralSamples
			r := (Lcav - z) / Lcav * 0.5 * D
			x, y := r*math.Cos(omega*z), r*math.Sin(omega*z)
			if i > 0 {
				dx, dy, dz := x-px, y-py, z-pz
				arcL += math.Sqrt(dx*dx + dy*dy + dz*dz)
			}
			px, py, pz = x, y, z
		}
	case types.RAC_Cylinder:
		turns := Lcav / pitch
		arcL = math.Sqrt(4*math.Pi*math.Pi*0.25*D*D+Lcav*Lcav) * turns
	}
	return
}
