package properties

import "math"

// TransportFit gives propellant viscosity and conductivity as functions of
// temperature. Piecewise fits switch at Split.
type TransportFit struct {
	Sutherland *Sutherland // nil selects the piecewise viscosity fit
	// Piecewise viscosity: A exp(B T) at or below Split, C T + D above
	MuExpA, MuExpB, MuLinC, MuLinD float64
	Split                          float64
	// Conductivity k = KSlope[i] T + KIntercept[i], i = 1 above Split
	KSlope, KIntercept [2]float64
}

func (tf *TransportFit) Viscosity(T float64) float64 {
	if tf.Sutherland != nil {
		return tf.Sutherland.Viscosity(T)
	}
	if T <= tf.Split {
		return tf.MuExpA * math.Exp(tf.MuExpB*T)
	}
	return tf.MuLinC*T + tf.MuLinD
}

func (tf *TransportFit) Conductivity(T float64) float64 {
	i := 0
	if tf.Split > 0 && T > tf.Split {
		i = 1
	}
	return tf.KSlope[i]*T + tf.KIntercept[i]
}
