package properties

import "math"

const (
	G0    = 9.81     // m/s2, standard gravity
	RU    = 8.314    // J/K/mol, universal gas constant
	Sigma = 5.670e-8 // W/m2/K4, Stefan-Boltzmann constant

	MolarMassAir = 28.9647e-3 // kg/mol
)

// Sutherland holds the constants of Sutherland's viscosity law
type Sutherland struct {
	Mu0, C, T0 float64 // Pa s, K, K
}

func (s Sutherland) Viscosity(T float64) float64 {
	return s.Mu0 * (s.T0 + s.C) / (T + s.C) * math.Pow(T/s.T0, 1.5)
}

var airSutherland = Sutherland{Mu0: 18.27e-6, C: 120, T0: 291.15}

// Air evaluates dry air properties at a fixed pressure as a function of
// film temperature.
type Air struct {
	P float64 // Pa
}

func NewAir(p float64) Air { return Air{P: p} }

func (a Air) Viscosity(T float64) float64 { return airSutherland.Viscosity(T) }

func (a Air) SpecificHeat(T float64) float64 {
	return -8.0144e-08*T*T*T + 2.1079e-04*T*T + 2.0633e-02*T + 9.8367e+02
}

func (a Air) Conductivity(T float64) float64 { return 6.25216e-05*T + 7.51105e-03 }

func (a Air) Density(T float64) float64 { return a.P / (RU / MolarMassAir) / T }

// Expansion is the ideal gas volumetric expansion coefficient
func (a Air) Expansion(T float64) float64 { return 1. / T }

func (a Air) Prandtl(T float64) float64 {
	return a.Viscosity(T) * a.SpecificHeat(T) / a.Conductivity(T)
}

func (a Air) KinematicViscosity(T float64) float64 { return a.Viscosity(T) / a.Density(T) }

func (a Air) Diffusivity(T float64) float64 {
	return a.KinematicViscosity(T) / a.Prandtl(T)
}

// Rayleigh returns the Rayleigh number for a surface at Ts in ambient Tamb
// over length L, with properties evaluated at the film temperature Tf.
func (a Air) Rayleigh(Tf, Ts, Tamb, L float64) float64 {
	return G0 * a.Expansion(Tf) * (Ts - Tamb) * L * L * L /
		a.KinematicViscosity(Tf) / a.Diffusivity(Tf)
}
