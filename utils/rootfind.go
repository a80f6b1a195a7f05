package utils

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

var ErrNoConvergence = errors.New("solver did not converge")

// SolverSettings bounds an iterative scalar solve. A nil *SolverSettings
// selects the defaults below.
type SolverSettings struct {
	Tol     float64 // absolute tolerance on the iterate
	MaxIter int
}

const (
	DefaultRootTol     = 1.48e-8
	DefaultRootMaxIter = 50
	DefaultMinXTol     = 1.e-5
	DefaultMinMaxIter  = 100
)

func (s *SolverSettings) resolve(tol float64, maxIter int) (float64, int) {
	if s == nil {
		return tol, maxIter
	}
	if s.Tol > 0 {
		tol = s.Tol
	}
	if s.MaxIter > 0 {
		maxIter = s.MaxIter
	}
	return tol, maxIter
}

// Secant finds a root of f starting at x0, using a second starting point
// perturbed by 1e-4 relative and absolute.
func Secant(f func(x float64) float64, x0 float64, settings *SolverSettings) (x float64, err error) {
	var (
		tol, maxIter = settings.resolve(DefaultRootTol, DefaultRootMaxIter)
		eps          = 1.e-4
		p0, p1       = x0, x0 * (1 + eps)
	)
	if x0 >= 0 {
		p1 += eps
	} else {
		p1 -= eps
	}
	q0, q1 := f(p0), f(p1)
	if math.Abs(q1) < math.Abs(q0) {
		p0, p1, q0, q1 = p1, p0, q1, q0
	}
	for iter := 0; iter < maxIter; iter++ {
		if q1 == q0 {
			// Flat secant, the iterates have collapsed onto the root
			return 0.5 * (p1 + p0), nil
		}
		p := p1 - q1*(p1-p0)/(q1-q0)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return p1, fmt.Errorf("%w: secant iterate not finite after %d iterations",
				ErrNoConvergence, iter)
		}
		if math.Abs(p-p1) < tol {
			return p, nil
		}
		p0, q0 = p1, q1
		p1, q1 = p, f(p)
	}
	return p1, fmt.Errorf("%w: secant exceeded %d iterations, last x = %g",
		ErrNoConvergence, maxIter, p1)
}

// Newton finds a root of f starting at x0 with the derivative estimated by
// a central finite difference.
func Newton(f func(x float64) float64, x0 float64, settings *SolverSettings) (x float64, err error) {
	var (
		tol, maxIter = settings.resolve(DefaultRootTol, DefaultRootMaxIter)
		fdSettings   = &fd.Settings{Formula: fd.Central}
	)
	x = x0
	for iter := 0; iter < maxIter; iter++ {
		fx := f(x)
		if math.IsNaN(fx) {
			return x, fmt.Errorf("%w: residual is NaN at x = %g", ErrNoConvergence, x)
		}
		if fx == 0 {
			return x, nil
		}
		fdSettings.Step = 1.e-4 * math.Max(1, math.Abs(x))
		dfdx := fd.Derivative(f, x, fdSettings)
		if dfdx == 0 || math.IsNaN(dfdx) {
			return x, fmt.Errorf("%w: zero derivative at x = %g", ErrNoConvergence, x)
		}
		xNew := x - fx/dfdx
		if math.IsNaN(xNew) || math.IsInf(xNew, 0) {
			return x, fmt.Errorf("%w: newton iterate not finite", ErrNoConvergence)
		}
		if math.Abs(xNew-x) < tol {
			return xNew, nil
		}
		x = xNew
	}
	return x, fmt.Errorf("%w: newton exceeded %d iterations, last x = %g",
		ErrNoConvergence, maxIter, x)
}

// BoundedMinimize finds the minimum of f on [a, b] using Brent's method
// (golden section search with parabolic interpolation). An error returned
// by f aborts the search and is passed through.
func BoundedMinimize(f func(x float64) (float64, error), a, b float64,
	settings *SolverSettings) (xMin, fMin float64, err error) {
	var (
		xatol, maxFun = settings.resolve(DefaultMinXTol, DefaultMinMaxIter)
		sqrtEps       = math.Sqrt(2.2e-16)
		goldenMean    = 0.5 * (3. - math.Sqrt(5.))
		fulc          = a + goldenMean*(b-a)
		nfc, xf       = fulc, fulc
		rat, e        float64
		x             = xf
		fx, fu        float64
		num           = 1
	)
	if a > b {
		return 0, 0, fmt.Errorf("lower bound %g is above upper bound %g", a, b)
	}
	if fx, err = f(x); err != nil {
		return
	}
	ffulc, fnfc := fx, fx
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + xatol/3.
	tol2 := 2. * tol1
	for math.Abs(xf-xm) > (tol2 - 0.5*(b-a)) {
		golden := true
		if math.Abs(e) > tol1 {
			golden = false
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2. * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat
			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				// Parabolic step
				rat = p / q
				x = xf + rat
				if (x-a) < tol2 || (b-x) < tol2 {
					rat = tol1 * signOrOne(xm-xf)
				}
			} else {
				golden = true
			}
		}
		if golden {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}
		x = xf + signOrOne(rat)*math.Max(math.Abs(rat), tol1)
		if fu, err = f(x); err != nil {
			return xf, fx, err
		}
		num++
		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}
		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + xatol/3.
		tol2 = 2. * tol1
		if num >= maxFun {
			return xf, fx, fmt.Errorf("%w: bounded minimizer exceeded %d function evaluations",
				ErrNoConvergence, maxFun)
		}
	}
	return xf, fx, nil
}

func signOrOne(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
