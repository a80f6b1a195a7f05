package geometry

import (
	"fmt"
	"math"

	"github.com/notargets/gostp/types"
)

// Design is the as-drawn receiver: cavity, channel and insulation dimensions
// in metres and radians.
type Design struct {
	RACType types.RACType
	Layout  types.ChannelLayout
	LcavC   float64 // channel length along the cavity centreline
	LcavI   float64 // cavity inner length, used for inner convection and view factors
	LcavA   float64 // overall RAC length, without insulation
	DinnerM float64 // cavity base inner diameter
	DouterM float64 // cavity base outer diameter, without insulation
	DmeanM  float64 // channel centreline diameter
	Dap     float64 // aperture diameter
	Phi     float64 // cone half angle, ignored for a cylinder
	// Insulation thickness, zero for a bare receiver
	InsulationThickness float64
	Dh                  float64 // channel diameter
	NCh                 int
	Pitch               float64 // spiral pitch
	AbsorptivityIC      float64 // absorptivity of the painted inner cavity
}

// Overrides replace computed values with measured ones. Zero fields are
// ignored.
type Overrides struct {
	ARACi, ARACo, MRAC, Aheat float64
}

func (o *Overrides) apply(p *Parameters) {
	if o == nil {
		return
	}
	if o.ARACi > 0 {
		p.ARACi = o.ARACi
	}
	if o.ARACo > 0 {
		p.ARACo = o.ARACo
	}
	if o.MRAC > 0 {
		p.MRAC = o.MRAC
	}
	if o.Aheat > 0 {
		p.Aheat = o.Aheat
	}
}

// Parameters are the derived, immutable receiver values used by every step
// of the transient solve.
type Parameters struct {
	RACType types.RACType
	Layout  types.ChannelLayout
	ARACi   float64 // m2, inner surface
	ARACo   float64 // m2, outer surface including insulation
	MRAC    float64 // kg
	Lch     float64 // m, single channel length
	Aheat   float64 // m2, heated channel wall, all channels
	Acs     float64 // m2, single channel cross section
	LsI     float64 // m, inner convection characteristic length
	RlossA  float64 // fraction of incoming radiation lost through the aperture
	RlossE  float64 // fraction of inner emission lost through the aperture
	DouterA float64 // m, outer diameter including insulation
	DouterM float64
	LcavA   float64 // m, overall length including insulation
	LcavC   float64
	DmeanM  float64
	Dh      float64
	NCh     int
}

// NewParameters derives the receiver parameters from a design and the RAC
// material density. Overrides may be nil.
func NewParameters(d Design, rhoM float64, ov *Overrides) (p *Parameters, err error) {
	if err = d.validate(); err != nil {
		return
	}
	if rhoM <= 0 {
		return nil, fmt.Errorf("material density must be positive, have %g", rhoM)
	}
	p = &Parameters{
		RACType: d.RACType,
		Layout:  d.Layout,
		DouterA: d.DouterM + 2*d.InsulationThickness,
		DouterM: d.DouterM,
		LcavA:   d.LcavA + 2*d.InsulationThickness,
		LcavC:   d.LcavC,
		DmeanM:  d.DmeanM,
		Dh:      d.Dh,
		NCh:     d.NCh,
	}
	var vol float64
	p.ARACi, p.ARACo, vol = areasAndVolume(d.RACType, d.DinnerM, d.DouterM, p.DouterA, d.Dap, d.LcavA, p.LcavA)
	p.MRAC = vol * rhoM
	switch d.Layout {
	case types.Layout_Straight:
		p.Lch = d.LcavC
		if d.RACType == types.RAC_Cone {
			p.Lch = d.LcavC / math.Cos(d.Phi)
		}
	case types.Layout_Spiral:
		p.Lch = SpiralLength(d.RACType, d.LcavC, d.DmeanM, d.Pitch)
	}
	p.Aheat = p.Lch * math.Pi * d.Dh * float64(d.NCh)
	p.Acs = 0.25 * math.Pi * d.Dh * d.Dh
	p.LsI = InnerConvectionLength(d.RACType, d.Phi, d.DinnerM, d.Dap, d.LcavI)
	switch d.RACType {
	case types.RAC_Cone:
		p.RlossA, p.RlossE, _ = ConeLossFractions(0.5*d.DinnerM, 0.5*d.Dap, d.LcavI, d.AbsorptivityIC)
	case types.RAC_Cylinder:
		p.RlossA, p.RlossE = CylinderLossFractions(0.5*d.DinnerM, 0.5*d.Dap, d.LcavI, d.AbsorptivityIC)
	}
	ov.apply(p)
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return
}

func (d Design) validate() (err error) {
	pos := []struct {
		name string
		val  float64
	}{
		{"LcavC", d.LcavC}, {"LcavI", d.LcavI}, {"LcavA", d.LcavA},
		{"DinnerM", d.DinnerM}, {"DouterM", d.DouterM}, {"DmeanM", d.DmeanM},
		{"Dap", d.Dap}, {"Dh", d.Dh},
	}
	for _, v := range pos {
		if !(v.val > 0) {
			return fmt.Errorf("%s must be positive, have %g", v.name, v.val)
		}
	}
	switch {
	case d.NCh < 1:
		err = fmt.Errorf("need at least one channel, have %d", d.NCh)
	case d.Layout == types.Layout_Spiral && !(d.Pitch > 0):
		err = fmt.Errorf("spiral pitch must be positive, have %g", d.Pitch)
	case d.DouterM <= d.DinnerM:
		err = fmt.Errorf("outer diameter %g must exceed inner diameter %g", d.DouterM, d.DinnerM)
	case d.Dap > d.DinnerM:
		err = fmt.Errorf("aperture %g larger than cavity diameter %g", d.Dap, d.DinnerM)
	case d.InsulationThickness < 0:
		err = fmt.Errorf("negative insulation thickness %g", d.InsulationThickness)
	case d.AbsorptivityIC <= 0 || d.AbsorptivityIC > 1:
		err = fmt.Errorf("inner cavity absorptivity %g outside (0,1]", d.AbsorptivityIC)
	case d.RACType == types.RAC_Cone && (d.Phi <= 0 || d.Phi >= 0.5*math.Pi):
		err = fmt.Errorf("cone half angle %g rad outside (0, pi/2)", d.Phi)
	}
	return
}

// Validate checks the derived values are physical
func (p *Parameters) Validate() error {
	for name, v := range map[string]float64{
		"ARACi": p.ARACi, "ARACo": p.ARACo, "MRAC": p.MRAC, "Lch": p.Lch,
		"Aheat": p.Aheat, "Acs": p.Acs, "LsI": p.LsI, "DouterA": p.DouterA,
		"LcavA": p.LcavA, "DmeanM": p.DmeanM,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("derived %s = %g is not positive", name, v)
		}
	}
	if p.RlossA < 0 || p.RlossA >= 1 || p.RlossE < 0 || p.RlossE >= 1 {
		return fmt.Errorf("radiation loss fractions %g, %g outside [0,1)", p.RlossA, p.RlossE)
	}
	if p.Lch < p.LcavC {
		return fmt.Errorf("channel length %g shorter than cavity length %g", p.Lch, p.LcavC)
	}
	return nil
}

// AbsorbedPower is the irradiance retained by the cavity
func (p *Parameters) AbsorbedPower(PR, efficiency float64) float64 {
	return PR * efficiency * (1 - p.RlossA)
}

// areasAndVolume returns inner area, outer area and wall volume. Lid and
// aperture plate are taken as 1 mm thick. L is the bare wall length and LA
// the length over the insulation.
func areasAndVolume(rt types.RACType, Di, Do, DA, Dap, L, LA float64) (Ai, Ao, V float64) {
	var (
		ri, ra, rA, ro = 0.5 * Di, 0.5 * Dap, 0.5 * DA, 0.5 * Do
		Li             = Di / Do * L // inner cavity length scales with the wall
		lid            = math.Pi * (ri*ri - ra*ra) * 1.e-3
	)
	switch rt {
	case types.RAC_Cone:
		Ai = math.Pi*(ri*ri-ra*ra) + math.Pi*ri*math.Sqrt(Li*Li+ri*ri)
		Ao = math.Pi*(rA*rA-ra*ra) + math.Pi*rA*math.Sqrt(LA*LA+rA*rA)
		V = math.Pi/3*(ro*ro*L-ri*ri*Li) + lid
	case types.RAC_Cylinder:
		Ai = 2*math.Pi*ri*ri - math.Pi*ra*ra + math.Pi*Di*Li
		Ao = 2*math.Pi*rA*rA - math.Pi*ra*ra + math.Pi*DA*LA
		V = math.Pi*ro*ro*L - math.Pi*ri*ri*Li + lid
	}
	return
}

// InnerConvectionLength is the characteristic length of the cavity free
// convection correlation as a function of the tilt of the cavity wall.
func InnerConvectionLength(rt types.RACType, phi, Di, Dap, Lcav float64) float64 {
	Dav := 0.5 * Di
	if rt == types.RAC_Cylinder {
		phi, Dav = 0, Di
	}
	c, s := math.Cos(phi), math.Sin(phi)
	return (4.79*math.Pow(c, 4.43)-0.37*math.Pow(s, 0.719))*Dav +
		(1.06*math.Pow(c, 3.24)-0.0462*math.Pow(s, 0.286))*Dap +
		(7.07*math.Pow(c, 5.31)+0.221*math.Pow(s, 2.43))*Lcav
}
