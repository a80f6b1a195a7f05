package properties

import (
	"fmt"
	"math"

	"github.com/notargets/gostp/types"
)

// Substance is the uniform lookup used by the solvers for anything with a
// Shomate specific heat fit.
type Substance interface {
	Name() string
	SpecificHeat(T float64) (float64, error)
	Fit() *ShomateFit
}

type Propellant struct {
	Type      types.PropellantType
	Shomate   ShomateFit
	Transport TransportFit
	Gamma     float64 // nominal specific heat ratio, informational
}

func (p *Propellant) Name() string                            { return p.Type.String() }
func (p *Propellant) SpecificHeat(T float64) (float64, error) { return p.Shomate.SpecificHeat(T) }
func (p *Propellant) Fit() *ShomateFit                        { return &p.Shomate }
func (p *Propellant) MolarMass() float64                      { return p.Shomate.MolarMass }

// GasConstant is the specific gas constant R/M, J/kg/K
func (p *Propellant) GasConstant() float64 { return RU / p.Shomate.MolarMass }

func (p *Propellant) Viscosity(T float64) float64    { return p.Transport.Viscosity(T) }
func (p *Propellant) Conductivity(T float64) float64 { return p.Transport.Conductivity(T) }

// Prandtl returns mu cp / k at T
func (p *Propellant) Prandtl(T float64) (Pr float64, err error) {
	var cp float64
	if cp, err = p.SpecificHeat(T); err != nil {
		return
	}
	Pr = p.Viscosity(T) * cp / p.Conductivity(T)
	return
}

type Material struct {
	Label        string
	Type         types.MaterialType
	Conductivity float64 // W/m/K
	Emissivity   float64
	Absorptivity float64
	TMax         float64 // K, maximum service temperature
	Density      float64 // kg/m3
	YieldStress  float64 // Pa
	Shomate      ShomateFit
}

func (m *Material) Name() string {
	if len(m.Label) != 0 {
		return m.Label
	}
	return m.Type.String()
}
func (m *Material) SpecificHeat(T float64) (float64, error) { return m.Shomate.SpecificHeat(T) }
func (m *Material) Fit() *ShomateFit                        { return &m.Shomate }

type Insulation struct {
	Type         types.InsulationType
	Conductivity float64 // W/m/K, used when no temperature law applies
	Emissivity   float64
	TMax         float64 // K
	SpecificHeat float64 // J/kg/K
	Density      float64 // kg/m3
}

func (ins *Insulation) Name() string { return ins.Type.String() }

func (ins *Insulation) Present() bool { return ins != nil && ins.Type != types.Insu_None }

// ConductivityAt returns the insulation conductivity at mean insulation
// temperature Tmean. Saffil follows an exponential law in Celsius.
func (ins *Insulation) ConductivityAt(Tmean float64) float64 {
	if ins.Type == types.Insu_Saffil {
		return 0.0665 * math.Exp(0.0015*(Tmean-273.15))
	}
	return ins.Conductivity
}

const celsiusToKelvin = 273.15

var propellants = map[types.PropellantType]*Propellant{
	types.Prop_Nitrogen: {
		Type: types.Prop_Nitrogen,
		Shomate: ShomateFit{
			Coeffs: [][7]float64{
				{28.98641, 1.853978, -9.647459, 16.63537, 0.000117, -8.671914, 0},
				{19.50583, 19.88705, -8.598535, 1.369784, 0.527601, -4.935202, 0},
				{35.51872, 1.128728, -0.196103, 0.014662, -4.553760, -18.97091, 0},
			},
			Breakpoints: [2]float64{500, 2000},
			MolarMass:   28.0134e-3,
		},
		Transport: TransportFit{
			Sutherland: &Sutherland{Mu0: 17.81e-6, C: 111, T0: 300.55},
			KSlope:     [2]float64{5.7326e-5, 5.7326e-5},
			KIntercept: [2]float64{0.0086744, 0.0086744},
		},
		Gamma: 1.40,
	},
	types.Prop_Water: {
		Type: types.Prop_Water,
		Shomate: ShomateFit{
			Coeffs: [][7]float64{
				{-203.6060, 1523.290, -3196.413, 2474.455, 3.855326, -256.5478, -285.8304},
				{30.09200, 6.832514, 6.793435, -2.534480, 0.082139, -250.8810, -241.8264},
				{41.96426, 8.622053, -1.499780, 0.098119, -11.15764, -272.1797, -241.8264},
			},
			Breakpoints: [2]float64{500, 1700},
			MolarMass:   18.0153e-3,
		},
		Transport: TransportFit{
			MuExpA: 0.014075241, MuExpB: -0.016737,
			MuLinC: 4.06056e-8, MuLinD: -3.00963e-6,
			Split:      393.36, // saturation at 2 bar
			KSlope:     [2]float64{7.9792e-4, 1.1479e-4},
			KIntercept: [2]float64{0.36934, -0.017661},
		},
		Gamma: 1.33,
	},
	types.Prop_Ammonia: {
		Type: types.Prop_Ammonia,
		Shomate: ShomateFit{
			Coeffs: [][7]float64{
				{19.99563, 49.77119, -15.37599, 1.921168, 0.189174, -53.30667, -45.89806},
				{52.02427, 18.48801, -3.765128, 0.248541, -12.45799, -85.53895, -45.89806},
			},
			Breakpoints: [2]float64{1400, 1.e10},
			MolarMass:   17.0305e-3,
		},
		Transport: TransportFit{
			Sutherland: &Sutherland{Mu0: 9.82e-6, C: 370, T0: 293.15},
			KSlope:     [2]float64{1.32783e-4, 1.32783e-4},
			KIntercept: [2]float64{-0.014539, -0.014539},
		},
		Gamma: 1.32,
	},
	types.Prop_Hydrogen: {
		Type: types.Prop_Hydrogen,
		Shomate: ShomateFit{
			Coeffs: [][7]float64{
				{33.066178, -11.363417, 11.432816, -2.772874, -0.158558, -9.980797, 0},
				{18.563083, 12.257357, -2.859786, 0.268238, 1.977990, -1.147438, 0},
				{43.413560, -4.293079, 1.272428, -0.096876, -20.533862, -38.515158, 0},
			},
			Breakpoints: [2]float64{1000, 2500},
			MolarMass:   2.01588e-3,
		},
		Transport: TransportFit{
			Sutherland: &Sutherland{Mu0: 8.76e-6, C: 72, T0: 293.85},
			KSlope:     [2]float64{4.8422e-4, 4.8422e-4},
			KIntercept: [2]float64{0.040601, 0.040601},
		},
		Gamma: 1.41,
	},
}

var (
	copperFit = ShomateFit{
		Coeffs:      [][7]float64{{17.72891, 28.09870, -31.25289, 13.97243, 0.068611, 0, 0}},
		Breakpoints: [2]float64{1358, 1.e10},
		MolarMass:   63.546e-3,
	}
	tungstenFit = ShomateFit{
		Coeffs: [][7]float64{
			{23.95930, 2.639680, 1.257750, -0.254642, -0.048407, 0, 0},
			{-22.57640, 90.27980, -44.27150, 7.176630, -24.09740, 0, 0},
		},
		Breakpoints: [2]float64{1900, 3680},
		MolarMass:   183.84e-3,
	}
	molybdenumFit = ShomateFit{
		Coeffs: [][7]float64{
			{24.72736, 3.960425, -1.270706, 1.153065, -0.170246, 0, 0},
			{1231.192, -963.4246, 283.7292, -28.04100, -712.2047, 0, 0},
		},
		Breakpoints: [2]float64{1900, 2896},
		MolarMass:   95.96e-3,
	}
)

func tungsten(mt types.MaterialType, em, abso float64) *Material {
	return &Material{
		Type: mt, Conductivity: 173, Emissivity: em, Absorptivity: abso,
		TMax: 3400 + celsiusToKelvin, Density: 19600, YieldStress: 550e6,
		Shomate: tungstenFit,
	}
}

func molybdenum(mt types.MaterialType, em, abso float64) *Material {
	return &Material{
		Type: mt, Conductivity: 140, Emissivity: em, Absorptivity: abso,
		TMax: 2620 + celsiusToKelvin, Density: 10188, YieldStress: 415e6,
		Shomate: molybdenumFit,
	}
}

var materials = map[types.MaterialType]*Material{
	types.Mat_Copper: {
		Type: types.Mat_Copper, Conductivity: 385, Emissivity: 0.65, Absorptivity: 0.98,
		TMax: 1084 + celsiusToKelvin, Density: 8900, YieldStress: 70e6,
		Shomate: copperFit,
	},
	types.Mat_Tungsten:        tungsten(types.Mat_Tungsten, 0.27, 0.60),
	types.Mat_Molybdenum:      molybdenum(types.Mat_Molybdenum, 0.18, 0.56),
	types.Mat_MolybdenumBlack: molybdenum(types.Mat_MolybdenumBlack, 0.86, 0.96),
	types.Mat_MolybdenumWhite: molybdenum(types.Mat_MolybdenumWhite, 0.88, 0.06),
	types.Mat_TungstenBlack:   tungsten(types.Mat_TungstenBlack, 0.86, 0.96),
	types.Mat_TungstenWhite:   tungsten(types.Mat_TungstenWhite, 0.88, 0.06),
}

var insulations = map[types.InsulationType]*Insulation{
	types.Insu_None: {Type: types.Insu_None},
	types.Insu_Saffil: {
		Type: types.Insu_Saffil, Conductivity: 0.22, Emissivity: 0.09,
		TMax: 2273.15, SpecificHeat: 1000, Density: 100,
	},
	types.Insu_MLI: {
		Type: types.Insu_MLI, Conductivity: 0.1e-3, Emissivity: 0.04,
		TMax: 5000 + celsiusToKelvin, SpecificHeat: 1009, Density: 0.75 + 0.17,
	},
}

// LookupPropellant returns a copy of the catalogue record for pt
func LookupPropellant(pt types.PropellantType) (p *Propellant, err error) {
	var (
		rec *Propellant
		ok  bool
	)
	if rec, ok = propellants[pt]; !ok {
		return nil, fmt.Errorf("no propellant record for selector %d", pt)
	}
	pc := *rec
	return &pc, nil
}

func LookupMaterial(mt types.MaterialType) (m *Material, err error) {
	var (
		rec *Material
		ok  bool
	)
	if rec, ok = materials[mt]; !ok {
		return nil, fmt.Errorf("no material record for selector %d", mt)
	}
	mc := *rec
	return &mc, nil
}

func LookupInsulation(it types.InsulationType) (ins *Insulation, err error) {
	var (
		rec *Insulation
		ok  bool
	)
	if rec, ok = insulations[it]; !ok {
		return nil, fmt.Errorf("no insulation record for selector %d", it)
	}
	ic := *rec
	return &ic, nil
}
