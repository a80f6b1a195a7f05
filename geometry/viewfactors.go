package geometry

import "math"

// Number of diffuse reflections followed inside the cavity
const Reflections = 20

/*
ConeLossFractions returns the fraction of incoming radiation reflected out
through the aperture (lossA), the fraction of wall emission escaping through
the aperture (lossE) and the interior to aperture view factor F13.

Surfaces: 1 cone interior, 2 base annulus, 3 aperture. r1 is the base
radius, r3 the aperture radius and h the cone height.
*/
func ConeLossFractions(r1, r3, h, absorptivity float64) (lossA, lossE, F13 float64) {
	var (
		A1  = 2 * math.Pi * r1 * h
		A2  = math.Pi * (r1*r1 - r3*r3)
		H   = h / r1
		R   = r3 / r1
		F11 = 1 - 1/math.Sqrt(1+H*H)
		F21 = 1.
	)
	F13 = R * R / math.Sqrt(1+H*H)
	F12 := 1 - F11 - F13
	reflect := func(q1, q2 float64) (lost float64) {
		for i := 0; i < Reflections; i++ {
			lost += q1 * F13
			in1 := q1*F11 + q2*F21
			in2 := q1 * F12
			q1, q2 = in1*(1-absorptivity), in2*(1-absorptivity)
		}
		return
	}
	lossA = reflect(1-absorptivity, 0)
	lossE = reflect(A1/(A1+A2), A2/(A1+A2))
	return
}

/*
CylinderLossFractions is the cylindrical cavity counterpart of
ConeLossFractions. Surfaces: 1 bottom, 2 side wall, 3 top annulus,
4 aperture. r1 is the cylinder radius, r4 the aperture radius.
*/
func CylinderLossFractions(r1, r4, h, absorptivity float64) (lossA, lossE float64) {
	var (
		A1 = math.Pi * r1 * r1
		A2 = 2 * math.Pi * r1 * h
		A3 = math.Pi * (r1*r1 - r4*r4)
		H  = h / (2 * r1)
	)
	F12 := 2 * H * (math.Sqrt(1+H*H) - H)
	R1, R2 := r1/h, r4/h
	X := 1 + (1+R2*R2)/(R1*R1)
	F14 := 0.5 * (X - math.Sqrt(X*X-4*(R2/R1)*(R2/R1)))
	F22 := (1 + H) - math.Sqrt(1+H*H)
	F21 := 0.5 * (1 - F22)
	R, H2 := r1/r4, h/r4
	X2 := H2*H2 + R*R + 1
	F24 := 1 / (4 * R * H2) * (-H2*H2 - R*R + 1 + math.Sqrt(X2*X2-4*R*R))
	var F32 float64
	if r1 != r4 {
		F32 = 0.5 * (1 + 1/(R*R-1)*(H2*math.Sqrt(4*R*R+H2*H2)-
			math.Sqrt((1+R*R+H2*H2)*(1+R*R+H2*H2)-4*R*R)))
	}
	var (
		F13 = 1 - F14 - F12
		F23 = 1 - F21 - F22 - F24
		F31 = 1 - F32
	)
	reflect := func(q1, q2, q3 float64) (lost float64) {
		for i := 0; i < Reflections; i++ {
			lost += q1*F14 + q2*F24
			in1 := q2*F21 + q3*F31
			in2 := q1*F12 + q2*F22 + q3*F32
			in3 := q1*F13 + q2*F23
			q1, q2, q3 = in1*(1-absorptivity), in2*(1-absorptivity), in3*(1-absorptivity)
		}
		return
	}
	lossA = reflect(A1/(A1+A2)*(1-absorptivity), A2/(A1+A2)*(1-absorptivity), 0)
	At := A1 + A2 + A3
	lossE = reflect(A1/At, A2/At, A3/At)
	return
}
