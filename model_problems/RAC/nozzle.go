package RAC

import (
	"fmt"
	"math"

	"github.com/notargets/gostp/properties"
)

// Discharge coefficient fit of Johnson (1998), Cd = cdA/sqrt(Re_t) + cdB
var (
	cdA = (0.937 - 0.968) / (0.016 - 0.008)
	cdB = 0.968 - cdA*0.008
)

// Nozzle is an ideal expansion nozzle with an empirical quality factor
type Nozzle struct {
	Quality float64 // xi, thrust and Isp efficiency
	PeMin   float64 // Pa, lower bound on exit pressure
}

type NozzleResult struct {
	Thrust    float64 // N
	Isp       float64 // s
	ReT       float64 // throat Reynolds number
	Cd        float64
	At, Ae    float64 // m2
	Gamma     float64
	NotChoked bool
}

// Solve sizes the nozzle for chamber pressure pc and stagnation temperature
// Tpo and returns its performance.
func (nz *Nozzle) Solve(prop *properties.Propellant, pc, mdot, Tpo, pamb float64) (nr NozzleResult, err error) {
	var cp float64
	if cp, err = prop.SpecificHeat(Tpo); err != nil {
		return nr, fmt.Errorf("nozzle cp at %g K: %w", Tpo, err)
	}
	var (
		Rs    = prop.GasConstant()
		mu    = prop.Viscosity(Tpo)
		g     = cp / (cp - Rs)
		Gamma = math.Sqrt(g) * math.Pow(2/(g+1), (g+1)/(2*(g-1)))
		pe    = math.Max(pamb, nz.PeMin)
		crit  = math.Pow(2/(g+1), g/(g-1))
		pr    = pe / pc
		expn  = 1 - math.Pow(pr, (g-1)/g)
	)
	nr.Gamma = g
	if pamb > crit*pc {
		nr.NotChoked = true
	}
	nr.At = mdot * math.Sqrt(Rs*Tpo) / (Gamma * pc)
	nr.Ae = nr.At * Gamma / math.Sqrt(2*g/(g-1)*math.Pow(pr, 2/g)*expn)
	Ue := math.Sqrt(2 * g / (g - 1) * Rs * Tpo * expn)
	Ueq := Ue + (pe-pamb)/mdot*nr.Ae
	nr.ReT = 4 * mdot / (math.Pi * math.Sqrt(4*nr.At/math.Pi) * mu)
	nr.Cd = cdA/math.Sqrt(nr.ReT) + cdB
	nr.Thrust = mdot * Ueq * nz.Quality * nr.Cd
	nr.Isp = Ueq / properties.G0 * nz.Quality * nr.Cd
	return
}
