package RAC

import (
	"errors"
	"fmt"
)

// ErrRegime is returned when the channel inlet Reynolds number lies beyond
// every heat transfer correlation for the channel layout.
var ErrRegime = errors.New("channel Reynolds number outside correlation range")

type Stage string

const (
	StageOuterLoss    Stage = "outer-loss"
	StageInnerLoss    Stage = "inner-loss"
	StageChannel      Stage = "channel"
	StagePressureLoss Stage = "pressure-loss"
	StageNozzle       Stage = "nozzle"
	StageUpdate       Stage = "temperature-update"
)

// StepError locates a failed sub-solve within the transient run
type StepError struct {
	Step  int
	Time  float64 // s
	Stage Stage
	Err   error
}

func (se *StepError) Error() string {
	return fmt.Sprintf("step %d (t = %g s), %s: %v", se.Step, se.Time, se.Stage, se.Err)
}

func (se *StepError) Unwrap() error { return se.Err }
