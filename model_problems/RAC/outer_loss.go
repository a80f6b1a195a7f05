package RAC

import (
	"fmt"
	"math"

	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
	"github.com/notargets/gostp/utils"
)

// Below this ambient pressure the receiver is taken to be in vacuum and all
// convective losses vanish.
const VacuumPressure = 0.5 // Pa

func inVacuum(pamb float64) bool { return pamb < VacuumPressure }

// OuterLossModel is the outer wall free convection, radiation and
// insulation conduction problem, frozen except for T_RAC.
type OuterLossModel struct {
	RACType    types.RACType
	DouterA    float64 // m, outer diameter over any insulation
	DouterM    float64 // m, bare wall outer diameter
	Length     float64 // m, overall length over any insulation
	Area       float64 // m2
	Emissivity float64 // of the outermost surface
	Insulation *properties.Insulation
	Tamb, Pamb float64
}

type OuterLoss struct {
	P1    float64 // W, convection
	P2    float64 // W, radiation
	P3    float64 // W, conduction through the insulation
	Tinsu float64 // K, outer surface temperature
	H     float64 // W/m2/K
}

func (om *OuterLossModel) nusselt(air properties.Air, Tf, Tsurf, TRAC float64) float64 {
	Ra := math.Abs(air.Rayleigh(Tf, Tsurf, om.Tamb, om.DouterA))
	switch om.RACType {
	case types.RAC_Cone:
		return 0.7 + 0.35*math.Pow(Ra, 0.125) + 0.51*math.Pow(Ra, 0.25)
	default:
		if TRAC == om.Tamb {
			return 0
		}
		Pr := air.Prandtl(Tf)
		lam := 0.518 * math.Pow(Ra, 0.25) * math.Pow(1+math.Pow(0.559/Pr, 0.6), -5./12.)
		turb := 0.1 * math.Pow(Ra, 1./3.)
		return 2 / math.Log(1+2/math.Pow(math.Pow(lam, 15)+math.Pow(turb, 15), 1./15.))
	}
}

// balance evaluates the outer losses for film temperature Tf
func (om *OuterLossModel) balance(TRAC, Tf float64) (ol OuterLoss) {
	var (
		air       = properties.NewAir(om.Pamb)
		insulated = om.Insulation.Present()
	)
	ol.Tinsu = TRAC
	if insulated {
		ol.Tinsu = 2*Tf - om.Tamb
	}
	if !inVacuum(om.Pamb) {
		ol.H = om.nusselt(air, Tf, ol.Tinsu, TRAC) * air.Conductivity(Tf) / om.DouterA
		ol.P1 = ol.H * om.Area * (ol.Tinsu - om.Tamb)
	}
	T4, Ta4 := ol.Tinsu*ol.Tinsu*ol.Tinsu*ol.Tinsu, om.Tamb*om.Tamb*om.Tamb*om.Tamb
	ol.P2 = om.Emissivity * properties.Sigma * om.Area * (T4 - Ta4)
	if insulated {
		k := om.Insulation.ConductivityAt(0.5 * (TRAC + ol.Tinsu))
		ol.P3 = k * 2 * math.Pi * om.Length / math.Log(om.DouterA/om.DouterM) * (TRAC - ol.Tinsu)
	}
	return
}

// Solve returns the outer losses at T_RAC. With insulation the film
// temperature is found from the conduction = convection + radiation balance.
func (om *OuterLossModel) Solve(TRAC float64) (ol OuterLoss, err error) {
	if !om.Insulation.Present() {
		return om.balance(TRAC, 0.5*(TRAC+om.Tamb)), nil
	}
	residual := func(Tf float64) float64 {
		b := om.balance(TRAC, Tf)
		return b.P3 - b.P1 - b.P2
	}
	var Tf float64
	if Tf, err = utils.Secant(residual, TRAC, nil); err != nil {
		return ol, fmt.Errorf("insulation surface balance at T_RAC = %g K: %w", TRAC, err)
	}
	ol = om.balance(TRAC, Tf)
	return
}
