package RAC

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
	"github.com/notargets/gostp/utils"
)

const (
	// Channel outlet temperatures from the two closures must agree to this
	// tolerance, K, or the enthalpy fallback is used.
	channelMismatchLimit = 1.0
	fallbackOffset       = 0.001 // K
)

var channelMinimizer = &utils.SolverSettings{Tol: 1.e-5, MaxIter: 100}

// ChannelModel is forced convection from the RAC wall into the propellant
// channels.
type ChannelModel struct {
	Layout     types.ChannelLayout
	Dh         float64 // m
	DmeanM     float64 // m, spiral centreline diameter
	Lch        float64 // m
	Aheat      float64 // m2, all channels
	Acs        float64 // m2, one channel
	Propellant *properties.Propellant
}

type ChannelResult struct {
	Tpo          float64 // K, outlet
	P6           float64 // W
	ReD, PrP     float64 // at the bulk temperature
	Tb           float64 // K, bulk
	FallbackUsed bool
}

// nusseltFunc is a correlation closed over the channel geometry
type nusseltFunc func(Re, Pr float64) float64

// correlation selects the Nusselt correlation for the inlet Reynolds number
func (cm *ChannelModel) correlation(Rei float64) (nu nusseltFunc, err error) {
	var (
		DL = cm.Dh / cm.Lch
		Dd = cm.Dh / cm.DmeanM
	)
	switch cm.Layout {
	case types.Layout_Straight:
		switch {
		case Rei < 2300:
			// Stephan
			nu = func(Re, Pr float64) float64 {
				return 3.657 + 0.0677*math.Pow(Re*Pr*DL, 1.33)/(1+0.1*Pr*math.Pow(Re*DL, 0.3))
			}
		case Rei < 5.e6:
			// Gnielinski, with the Bergman friction factor
			nu = func(Re, Pr float64) float64 {
				f := FrictionTurbulent(Re)
				return f / 8 * (Re - 1000) * Pr /
					(1 + 12.7*math.Sqrt(f/8)*(math.Pow(Pr, 2./3.)-1)) *
					(1 + math.Pow(DL, 2./3.))
			}
		}
	case types.Layout_Spiral:
		switch {
		case Rei < 1.e4:
			// Kalb & Seader
			nu = func(Re, Pr float64) float64 {
				return 0.913 * math.Pow(Re*math.Sqrt(Dd), 0.476) * math.Pow(Pr, 0.2)
			}
		case Rei < 1.e5:
			// Seban & McLaughlin
			nu = func(Re, Pr float64) float64 {
				return 0.023 * math.Pow(Re, 0.85) * math.Pow(Pr, 0.4) * math.Pow(Dd, 0.1)
			}
		}
	}
	if nu == nil {
		err = fmt.Errorf("%w: %s channel with inlet Re = %g", ErrRegime, cm.Layout, Rei)
	}
	return
}

func (cm *ChannelModel) reynolds(mdotch, T float64) float64 {
	return mdotch * cm.Dh / (cm.Acs * cm.Propellant.Viscosity(T))
}

/*
Solve finds the channel bulk temperature at which the outlet temperature
from the log-mean wall heat transfer matches the outlet temperature from the
propellant enthalpy rise. mdot is the total flow, mdotch the flow per
channel.
*/
func (cm *ChannelModel) Solve(mdot, mdotch, Tpi, TRAC float64) (cr ChannelResult, err error) {
	var (
		prop = cm.Propellant
		fit  = prop.Fit()
		nu   nusseltFunc
	)
	if Tpi == TRAC {
		cr.Tb, cr.Tpo = Tpi, Tpi
		cr.ReD = cm.reynolds(mdotch, Tpi)
		cr.PrP, err = prop.Prandtl(Tpi)
		return
	}
	if nu, err = cm.correlation(cm.reynolds(mdotch, Tpi)); err != nil {
		return
	}
	tpoThermal := func(Tb float64) float64 { return 2*Tb - Tpi }
	heat := func(Tb float64) (P6 float64, err error) {
		var Pr float64
		if Pr, err = prop.Prandtl(Tb); err != nil {
			return
		}
		h := nu(cm.reynolds(mdotch, Tb), Pr) * prop.Conductivity(Tb) / cm.Dh
		Tpo := tpoThermal(Tb)
		P6 = h * cm.Aheat * (Tpo - Tpi) / math.Log((TRAC-Tpi)/(TRAC-Tpo))
		return
	}
	mismatch := func(Tb float64) (r float64, err error) {
		var P6, Tpo float64
		if P6, err = heat(Tb); err != nil {
			return
		}
		if Tpo, err = fit.EnthalpyToTemperature(P6/mdot, Tpi, TRAC); err != nil {
			return
		}
		return math.Abs(Tpo - tpoThermal(Tb)), nil
	}
	lo, hi := Tpi, 0.5*(Tpi+TRAC)
	heating := Tpi <= TRAC
	if !heating {
		lo, hi = hi, lo
	}
	var Tb float64
	if Tb, _, err = utils.BoundedMinimize(mismatch, lo, hi, channelMinimizer); err != nil {
		if !heating {
			return cr, fmt.Errorf("channel bulk temperature, cooling branch: %w", err)
		}
		log.Warnf("channel bulk temperature solve failed (%v), using enthalpy fallback", err)
		Tb, err = 0.5*(TRAC+Tpi)-fallbackOffset, nil
		cr.FallbackUsed = true
	}
	var r float64
	cr.P6, err = heat(Tb)
	if err == nil {
		r, err = mismatch(Tb)
	}
	if err != nil || r > channelMismatchLimit {
		if !cr.FallbackUsed {
			log.Warnf("channel outlet temperatures differ by %.3g K at T_RAC = %.2f K, using enthalpy fallback",
				r, TRAC)
		}
		Tb = 0.5*(TRAC+Tpi) - fallbackOffset
		var dH float64
		if dH, err = fit.TemperatureToEnthalpy(TRAC-fallbackOffset, Tpi); err != nil {
			return cr, fmt.Errorf("channel enthalpy fallback: %w", err)
		}
		cr.P6 = dH * mdot
		cr.FallbackUsed = true
	}
	cr.Tb = Tb
	cr.Tpo = tpoThermal(Tb)
	cr.ReD = cm.reynolds(mdotch, Tb)
	if cr.PrP, err = prop.Prandtl(Tb); err != nil {
		return cr, fmt.Errorf("channel Prandtl number: %w", err)
	}
	return
}
