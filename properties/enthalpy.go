package properties

import (
	"fmt"

	"github.com/notargets/gostp/utils"
)

// TemperatureToEnthalpy returns h(T) - h(Tref) in J/kg. Segments for T and
// Tref are selected independently.
func (sf *ShomateFit) TemperatureToEnthalpy(T, Tref float64) (dH float64, err error) {
	var h, hRef float64
	if h, err = sf.Enthalpy(T); err != nil {
		return
	}
	if hRef, err = sf.Enthalpy(Tref); err != nil {
		return
	}
	dH = h - hRef
	return
}

// enthalpySegment selects the segment holding absolute enthalpy h by
// comparing against the enthalpy at each breakpoint.
func (sf *ShomateFit) enthalpySegment(h float64) (seg int, err error) {
	switch {
	case h < sf.enthalpySeg(0, sf.Breakpoints[0]):
		seg = 0
	case len(sf.Coeffs) < 2 || h < sf.enthalpySeg(1, sf.Breakpoints[1]):
		seg = 1
	default:
		seg = 2
	}
	if seg >= len(sf.Coeffs) {
		err = fmt.Errorf("%w: enthalpy %g J/kg selects segment %d of %d",
			ErrPropertyDomain, h, seg, len(sf.Coeffs))
	}
	return
}

// EnthalpyToTemperature inverts TemperatureToEnthalpy: it returns T such
// that h(T) - h(Tref) = dH. The root finder is seeded midway between Tref
// and Trac. A failed solve is returned as utils.ErrNoConvergence and is not
// retried.
func (sf *ShomateFit) EnthalpyToTemperature(dH, Tref, Trac float64) (T float64, err error) {
	var (
		hRef, target float64
		seg          int
	)
	if hRef, err = sf.Enthalpy(Tref); err != nil {
		return
	}
	target = dH + hRef
	if seg, err = sf.enthalpySegment(target); err != nil {
		return
	}
	residual := func(T float64) float64 {
		return sf.enthalpySeg(seg, T) - target
	}
	if T, err = utils.Newton(residual, 0.5*(Tref+Trac), nil); err != nil {
		err = fmt.Errorf("enthalpy inversion of %g J/kg from %g K: %w", dH, Tref, err)
	}
	return
}
