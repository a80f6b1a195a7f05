package RAC

import (
	"context"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/geometry"
	"github.com/notargets/gostp/properties"
)

const maxPreallocatedSteps = 1 << 16

// Config is everything a transient run needs, already resolved and
// validated.
type Config struct {
	Geometry    *geometry.Parameters
	Propellant  *properties.Propellant
	Material    *properties.Material
	Insulation  *properties.Insulation
	Nozzle      Nozzle
	Schedule    MassFlowSchedule
	Irradiation IrradiationWindow
	Tamb, Pamb  float64 // K, Pa
	TRAC0       float64 // K, initial RAC temperature
	Tpi         float64 // K, propellant inlet temperature
	PIn         float64 // Pa, feed pressure
	RunTime     float64 // s
	TimeStep    float64 // s
	// Evaluate the outer, inner and channel solves concurrently
	ParallelSubSolves bool
	LogFrequency      int // steps between progress messages, 0 disables
	// OnStep, if set, is called with every recorded step
	OnStep func(sr StepResult)
}

// SimulationState is the mutable part of a run
type SimulationState struct {
	Step        int
	Temperature float64 // K
	Segment     int     // current mass flow segment
}

type Simulation struct {
	cfg     *Config
	State   SimulationState
	History *History
	Outer   *OuterLossModel
	Inner   *InnerLossModel
	Channel *ChannelModel
	Pin     float64 // W, absorbed power while irradiated
	NSteps  int
}

func NewSimulation(cfg *Config) (sim *Simulation, err error) {
	switch {
	case cfg.Geometry == nil || cfg.Propellant == nil || cfg.Material == nil:
		return nil, fmt.Errorf("geometry, propellant and material are required")
	case !(cfg.TimeStep > 0):
		return nil, fmt.Errorf("time step must be positive, have %g", cfg.TimeStep)
	case cfg.RunTime < 0:
		return nil, fmt.Errorf("run time must not be negative, have %g", cfg.RunTime)
	}
	if err = cfg.Schedule.Validate(); err != nil {
		return
	}
	if err = cfg.Geometry.Validate(); err != nil {
		return
	}
	var (
		g   = cfg.Geometry
		emO = cfg.Material.Emissivity
	)
	if cfg.Insulation.Present() {
		emO = cfg.Insulation.Emissivity
	}
	nSteps := int(math.Floor(cfg.RunTime/cfg.TimeStep + 1.e-9))
	sim = &Simulation{
		cfg:     cfg,
		State:   SimulationState{Temperature: cfg.TRAC0},
		History: NewHistory(min(nSteps, maxPreallocatedSteps)),
		Outer: &OuterLossModel{
			RACType:    g.RACType,
			DouterA:    g.DouterA,
			DouterM:    g.DouterM,
			Length:     g.LcavA,
			Area:       g.ARACo,
			Emissivity: emO,
			Insulation: cfg.Insulation,
			Tamb:       cfg.Tamb,
			Pamb:       cfg.Pamb,
		},
		Inner: &InnerLossModel{
			LsI:        g.LsI,
			Area:       g.ARACi,
			Emissivity: cfg.Material.Emissivity,
			RlossE:     g.RlossE,
			Tamb:       cfg.Tamb,
			Pamb:       cfg.Pamb,
		},
		Channel: &ChannelModel{
			Layout:     g.Layout,
			Dh:         g.Dh,
			DmeanM:     g.DmeanM,
			Lch:        g.Lch,
			Aheat:      g.Aheat,
			Acs:        g.Acs,
			Propellant: cfg.Propellant,
		},
		Pin:    g.AbsorbedPower(cfg.Irradiation.Power, cfg.Irradiation.Efficiency),
		NSteps: nSteps,
	}
	return
}

// subSolves holds the per-step results that depend only on T_RAC
type subSolves struct {
	outer    OuterLoss
	inner    InnerLoss
	channel  ChannelResult
	flowing  bool
	errStage Stage
	err      error
}

func (sim *Simulation) solveChannel(seg FlowSegment, TRAC float64) (ChannelResult, error) {
	mdotch := seg.Rate / float64(sim.cfg.Geometry.NCh)
	return sim.Channel.Solve(seg.Rate, mdotch, sim.cfg.Tpi, TRAC)
}

func (sim *Simulation) serialSubSolves(seg FlowSegment, flowing bool, TRAC float64) (ss subSolves) {
	ss.flowing = flowing
	if ss.outer, ss.err = sim.Outer.Solve(TRAC); ss.err != nil {
		ss.errStage = StageOuterLoss
		return
	}
	ss.inner = sim.Inner.Solve(TRAC)
	if flowing {
		if ss.channel, ss.err = sim.solveChannel(seg, TRAC); ss.err != nil {
			ss.errStage = StageChannel
		}
	}
	return
}

// parallelSubSolves runs the independent solves for one frozen T_RAC
// concurrently. Errors are reported in stage order.
func (sim *Simulation) parallelSubSolves(seg FlowSegment, flowing bool, TRAC float64) (ss subSolves) {
	var (
		wg                = sync.WaitGroup{}
		outerErr, chanErr error
	)
	ss.flowing = flowing
	wg.Add(2)
	go func() {
		ss.outer, outerErr = sim.Outer.Solve(TRAC)
		wg.Done()
	}()
	go func() {
		ss.inner = sim.Inner.Solve(TRAC)
		wg.Done()
	}()
	if flowing {
		wg.Add(1)
		go func() {
			ss.channel, chanErr = sim.solveChannel(seg, TRAC)
			wg.Done()
		}()
	}
	wg.Wait()
	switch {
	case outerErr != nil:
		ss.err, ss.errStage = outerErr, StageOuterLoss
	case chanErr != nil:
		ss.err, ss.errStage = chanErr, StageChannel
	}
	return
}

// balance evaluates every power term for a frozen T_RAC. The returned
// StepResult carries everything except the temperature update.
func (sim *Simulation) balance(seg FlowSegment, flow FlowState, TRAC float64, irradiated bool) (
	sr StepResult, stage Stage, err error) {
	var (
		cfg = sim.cfg
		ss  subSolves
	)
	if cfg.ParallelSubSolves {
		ss = sim.parallelSubSolves(seg, flow == FlowFlowing, TRAC)
	} else {
		ss = sim.serialSubSolves(seg, flow == FlowFlowing, TRAC)
	}
	if ss.err != nil {
		return sr, ss.errStage, ss.err
	}
	sr = StepResult{
		P1:    ss.outer.P1,
		P2:    ss.outer.P2,
		P3:    ss.outer.P3,
		Tinsu: ss.outer.Tinsu,
		P4:    ss.inner.P4,
		P5:    ss.inner.P5,
		Flow:  flow,
	}
	if ss.flowing {
		ch := ss.channel
		mdotch := seg.Rate / float64(cfg.Geometry.NCh)
		sr.P6, sr.Tpo, sr.Tb, sr.ReD, sr.PrP = ch.P6, ch.Tpo, ch.Tb, ch.ReD, ch.PrP
		sr.FallbackUsed = ch.FallbackUsed
		sr.Pc = sim.Channel.ChamberPressure(ch.ReD, ch.Tb, mdotch, cfg.PIn)
		if !(sr.Pc > 0) {
			return sr, StagePressureLoss,
				fmt.Errorf("channel pressure loss exceeds feed pressure, pc = %g Pa", sr.Pc)
		}
		var nr NozzleResult
		if nr, err = cfg.Nozzle.Solve(cfg.Propellant, sr.Pc, seg.Rate, ch.Tpo, cfg.Pamb); err != nil {
			return sr, StageNozzle, err
		}
		sr.Thrust, sr.Isp, sr.ReT, sr.Cd, sr.At, sr.Ae = nr.Thrust, nr.Isp, nr.ReT, nr.Cd, nr.At, nr.Ae
		sr.NotChoked = nr.NotChoked
		sr.VelocityRatio = sim.velocityRatio(mdotch)
	} else {
		sr.Tpo, sr.Tb, sr.Pc = cfg.Tpi, cfg.Tpi, cfg.PIn
		sr.VelocityRatio = math.NaN()
	}
	if irradiated {
		sr.Pin = sim.Pin
	}
	sr.P7 = sr.Pin - (sr.P1 + sr.P2 + sr.P4 + sr.P5 + sr.P6)
	return
}

// Balance evaluates the power terms at a fixed RAC temperature with a
// constant mass flow rate and the receiver irradiated. A zero rate means no
// flow. The temperature is left untouched.
func (sim *Simulation) Balance(TRAC, rate float64) (sr StepResult, err error) {
	var (
		flow  = FlowIdle
		stage Stage
	)
	if rate > 0 {
		flow = FlowFlowing
	}
	if sr, stage, err = sim.balance(FlowSegment{Rate: rate}, flow, TRAC, true); err != nil {
		return sr, fmt.Errorf("%s at T_RAC = %g K: %w", stage, TRAC, err)
	}
	sr.Temperature = TRAC
	return
}

// Step advances the RAC temperature by one time step. done is true when the
// run is over, either completed or halted.
func (sim *Simulation) Step() (sr StepResult, done bool, err error) {
	var (
		cfg   = sim.cfg
		st    = &sim.State
		t     = float64(st.Step) * cfg.TimeStep
		TRAC  = st.Temperature
		flow  FlowState
		stage Stage
	)
	if st.Step >= sim.NSteps {
		if sim.History.Status == Running {
			sim.History.Status = Completed
		}
		return sr, true, nil
	}
	fail := func(stage Stage, e error) (StepResult, bool, error) {
		sim.History.Status = Failed
		return sr, true, &StepError{Step: st.Step, Time: t, Stage: stage, Err: e}
	}
	st.Segment, flow = cfg.Schedule.Next(st.Segment, t)
	var seg FlowSegment
	if flow == FlowFlowing {
		seg = cfg.Schedule.Segments[st.Segment]
	}
	if sr, stage, err = sim.balance(seg, flow, TRAC, cfg.Irradiation.Active(t)); err != nil {
		return fail(stage, err)
	}
	sr.Step, sr.Time = st.Step, t
	if sr.NotChoked {
		log.Warnf("step %d: nozzle flow is not choked, pamb = %g Pa, pc = %g Pa", st.Step, cfg.Pamb, sr.Pc)
	}
	var cp float64
	if cp, err = cfg.Material.SpecificHeat(TRAC); err != nil {
		return fail(StageUpdate, err)
	}
	st.Temperature = TRAC + sr.P7*cfg.TimeStep/(cp*cfg.Geometry.MRAC)
	sr.Temperature = st.Temperature
	sim.History.append(sr)
	if cfg.OnStep != nil {
		cfg.OnStep(sr)
	}
	if cfg.LogFrequency > 0 && st.Step%cfg.LogFrequency == 0 {
		log.WithFields(log.Fields{
			"step": st.Step, "t": t, "T_RAC": fmt.Sprintf("%.2f", sr.Temperature),
			"P6": fmt.Sprintf("%.3f", sr.P6), "F": fmt.Sprintf("%.4f", sr.Thrust),
		}).Info("progress")
	}
	st.Step++
	switch {
	case st.Temperature > cfg.Material.TMax:
		log.Warnf("RAC temperature %.1f K exceeds the %s service limit %.1f K at t = %g s",
			st.Temperature, cfg.Material.Name(), cfg.Material.TMax, t)
		sim.History.Status = OverTemperature
		done = true
	case st.Step >= sim.NSteps:
		sim.History.Status = Completed
		done = true
	}
	return
}

// velocityRatio compares the inlet velocity with the erosion limit
func (sim *Simulation) velocityRatio(mdotch float64) float64 {
	var (
		cfg  = sim.cfg
		rho  = cfg.PIn / (cfg.Propellant.GasConstant() * cfg.Tpi)
		v    = mdotch / rho / cfg.Geometry.Acs
		vmax = 175 * math.Pow(1/rho, 0.43)
	)
	return v / vmax
}

// Run integrates until the run time is used up, the RAC overheats, a
// sub-solve fails or ctx is cancelled. The history so far is always
// returned.
func (sim *Simulation) Run(ctx context.Context) (h *History, err error) {
	h = sim.History
	if sim.NSteps == 0 {
		h.Status = Completed
		return
	}
	for done := false; !done; {
		select {
		case <-ctx.Done():
			h.Status = Failed
			return h, ctx.Err()
		default:
		}
		if _, done, err = sim.Step(); err != nil {
			log.Error(err)
			return
		}
	}
	log.Infof("run finished: %s after %d steps, T_RAC = %.2f K", h.Status, h.Len(), sim.State.Temperature)
	return
}

// Simulate builds and runs a simulation in one call
func Simulate(ctx context.Context, cfg *Config) (h *History, err error) {
	var sim *Simulation
	if sim, err = NewSimulation(cfg); err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}
