package steady_state

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/model_problems/RAC"
	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/utils"
)

// Upper limit for bracketing the equilibrium temperature, K
const bracketLimit = 5000.

// Equilibrium is the RAC state at which absorbed power balances every loss
type Equilibrium struct {
	RAC.StepResult
	Iterations int
	Residual   float64 // W, P_in less all losses at the returned temperature
}

/*
Solve finds the RAC temperature at which the absorbed power equals
P1+P2+P4+P5+P6 for the constant flow rate, with the receiver irradiated.
The schedule, irradiation window and time step of cfg are ignored. It is the
plateau that a long transient run approaches.
*/
func Solve(cfg *RAC.Config, rate float64) (eq Equilibrium, err error) {
	var (
		c   = *cfg
		sim *RAC.Simulation
	)
	c.Schedule, c.RunTime, c.OnStep = RAC.MassFlowSchedule{}, 0, nil
	if !(c.TimeStep > 0) {
		c.TimeStep = 1
	}
	if sim, err = RAC.NewSimulation(&c); err != nil {
		return
	}
	if sim.Pin == 0 {
		// Nothing absorbed, the receiver sits at ambient
		eq.StepResult, err = sim.Balance(c.Tamb, rate)
		return
	}
	lo := math.Max(c.Tamb, c.Tpi)
	var (
		nEval    int
		balErr   error
		residual = func(T float64) float64 {
			nEval++
			sr, e := sim.Balance(T, rate)
			if e != nil {
				if balErr == nil {
					balErr = e
				}
				return math.NaN()
			}
			return sr.P7
		}
	)
	hi := radiativeLimit(sim, &c)
	for residual(hi) > 0 {
		if balErr != nil {
			return eq, balErr
		}
		if hi *= 1.5; hi > bracketLimit {
			return eq, fmt.Errorf("%w: no equilibrium below %g K", utils.ErrNoConvergence, bracketLimit)
		}
	}
	if balErr != nil {
		return eq, balErr
	}
	log.Debugf("equilibrium bracket [%.2f, %.2f] K", lo, hi)
	absResidual := func(T float64) (float64, error) {
		r := residual(T)
		if balErr != nil {
			return 0, balErr
		}
		return math.Abs(r), nil
	}
	var T float64
	if T, _, err = utils.BoundedMinimize(absResidual, lo, hi, nil); err != nil {
		return
	}
	if eq.StepResult, err = sim.Balance(T, rate); err != nil {
		return
	}
	eq.Iterations, eq.Residual = nEval, eq.P7
	if math.Abs(eq.Residual) > 1.e-4*sim.Pin {
		err = fmt.Errorf("%w: equilibrium residual %g W at %g K", utils.ErrNoConvergence, eq.Residual, T)
	}
	return
}

// radiativeLimit is the temperature at which outer radiation alone would
// reject the absorbed power.
func radiativeLimit(sim *RAC.Simulation, cfg *RAC.Config) float64 {
	var (
		emA = sim.Outer.Emissivity * properties.Sigma * sim.Outer.Area
		Ta4 = math.Pow(cfg.Tamb, 4)
	)
	return math.Pow(sim.Pin/emA+Ta4, 0.25)
}
