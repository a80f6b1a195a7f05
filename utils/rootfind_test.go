package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecant(t *testing.T) {
	{
		x, err := Secant(func(x float64) float64 { return x*x - 2 }, 1, nil)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt2, x, 1.e-10)
	}
	{
		// Quartic radiation balance, typical of the outer wall solve
		f := func(T float64) float64 { return 5.67e-8*(T*T*T*T-300*300*300*300) - 100 }
		x, err := Secant(f, 800, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0., f(x), 1.e-6)
	}
	{
		_, err := Secant(func(x float64) float64 { return x*x - 2 }, 100, &SolverSettings{MaxIter: 2})
		assert.True(t, errors.Is(err, ErrNoConvergence))
	}
}

func TestNewton(t *testing.T) {
	{
		x, err := Newton(math.Cos, 1, nil)
		require.NoError(t, err)
		assert.InDelta(t, math.Pi/2, x, 1.e-10)
	}
	{
		_, err := Newton(func(x float64) float64 { return 1 }, 1, nil)
		assert.True(t, errors.Is(err, ErrNoConvergence))
	}
}

func TestBoundedMinimize(t *testing.T) {
	{
		f := func(x float64) (float64, error) { return (x - 1.3) * (x - 1.3), nil }
		x, fx, err := BoundedMinimize(f, 0, 3, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.3, x, 1.e-5)
		assert.InDelta(t, 0, fx, 1.e-9)
	}
	{
		// Minimum on the boundary is approached to within xatol
		f := func(x float64) (float64, error) { return math.Abs(x - 10), nil }
		x, _, err := BoundedMinimize(f, 0, 5, nil)
		require.NoError(t, err)
		assert.InDelta(t, 5, x, 1.e-4)
	}
	{
		sentinel := errors.New("bad evaluation")
		f := func(x float64) (float64, error) {
			if x > 1 {
				return 0, sentinel
			}
			return x, nil
		}
		_, _, err := BoundedMinimize(f, 0, 4, nil)
		assert.True(t, errors.Is(err, sentinel))
	}
	{
		f := func(x float64) (float64, error) { return math.Sin(x), nil }
		_, _, err := BoundedMinimize(f, 0, 10, &SolverSettings{MaxIter: 3})
		assert.True(t, errors.Is(err, ErrNoConvergence))
		_, _, err = BoundedMinimize(f, 2, 1, nil)
		assert.Error(t, err)
	}
}
