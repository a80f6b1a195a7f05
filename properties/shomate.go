package properties

import (
	"fmt"
)

// ShomateFit holds NIST Shomate coefficients for up to three temperature
// segments. Each row is A, B, C, D, E, F, H with t = T/1000:
//
//	cp(T) = (A + B t + C t^2 + D t^3 + E/t^2) / M                       [J/kg/K]
//	h(T)  = (A t + B t^2/2 + C t^3/3 + D t^4/4 - E/t + F - H) 1000 / M  [J/kg]
type ShomateFit struct {
	Coeffs      [][7]float64
	Breakpoints [2]float64 // K, segment 0 below the first, segment 2 at or above the second
	MolarMass   float64    // kg/mol
}

func (sf *ShomateFit) NumSegments() int { return len(sf.Coeffs) }

// Segment returns the coefficient row index for temperature T
func (sf *ShomateFit) Segment(T float64) (seg int, err error) {
	switch {
	case T < sf.Breakpoints[0]:
		seg = 0
	case T < sf.Breakpoints[1]:
		seg = 1
	default:
		seg = 2
	}
	if T <= 0 || seg >= len(sf.Coeffs) {
		err = fmt.Errorf("%w: T = %g K selects segment %d of %d",
			ErrPropertyDomain, T, seg, len(sf.Coeffs))
	}
	return
}

func (sf *ShomateFit) SpecificHeat(T float64) (cp float64, err error) {
	var seg int
	if seg, err = sf.Segment(T); err != nil {
		return
	}
	cp = sf.specificHeatSeg(seg, T)
	return
}

func (sf *ShomateFit) specificHeatSeg(seg int, T float64) float64 {
	var (
		c = sf.Coeffs[seg]
		t = T / 1000.
	)
	return (c[0] + c[1]*t + c[2]*t*t + c[3]*t*t*t + c[4]/(t*t)) / sf.MolarMass
}

// enthalpySeg is the absolute specific enthalpy of segment seg at T, J/kg
func (sf *ShomateFit) enthalpySeg(seg int, T float64) float64 {
	var (
		c  = sf.Coeffs[seg]
		t  = T / 1000.
		t2 = t * t
	)
	return (c[0]*t + c[1]*t2/2 + c[2]*t2*t/3 + c[3]*t2*t2/4 - c[4]/t + c[5] - c[6]) *
		1000. / sf.MolarMass
}

// Enthalpy returns the absolute specific enthalpy at T using the segment
// selected by T.
func (sf *ShomateFit) Enthalpy(T float64) (h float64, err error) {
	var seg int
	if seg, err = sf.Segment(T); err != nil {
		return
	}
	h = sf.enthalpySeg(seg, T)
	return
}
