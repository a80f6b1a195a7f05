package RAC

import (
	"fmt"
	"math"
)

// FlowSegment is a constant mass flow over [Start, End), seconds
type FlowSegment struct {
	Rate       float64 // kg/s
	Start, End float64
}

// MassFlowSchedule is an ordered, non-overlapping list of flow segments.
// Outside every segment there is no flow.
type MassFlowSchedule struct {
	Segments []FlowSegment
}

func (ms *MassFlowSchedule) Validate() error {
	prevEnd := math.Inf(-1)
	for i, seg := range ms.Segments {
		switch {
		case seg.Rate < 0:
			return fmt.Errorf("flow segment %d has negative rate %g", i, seg.Rate)
		case !(seg.End > seg.Start):
			return fmt.Errorf("flow segment %d ends (%g s) before it starts (%g s)", i, seg.End, seg.Start)
		case seg.Start < prevEnd:
			return fmt.Errorf("flow segment %d starts at %g s, before segment %d ends", i, seg.Start, i-1)
		}
		prevEnd = seg.End
	}
	return nil
}

type FlowState uint8

const (
	FlowIdle FlowState = iota
	FlowFlowing
	FlowAdvanceSegment
)

func (fs FlowState) String() string {
	switch fs {
	case FlowIdle:
		return "Idle"
	case FlowFlowing:
		return "Flowing"
	case FlowAdvanceSegment:
		return "AdvanceSegment"
	}
	panic(fmt.Sprintf("unknown flow state %d", fs))
}

func (fs FlowState) MarshalText() ([]byte, error) { return []byte(fs.String()), nil }

func (fs *FlowState) UnmarshalText(text []byte) error {
	for _, st := range []FlowState{FlowIdle, FlowFlowing, FlowAdvanceSegment} {
		if st.String() == string(text) {
			*fs = st
			return nil
		}
	}
	return fmt.Errorf("unknown flow state %q", text)
}

// Next evaluates the flow state at time t from the current segment index.
// The index only moves forward: once t reaches the end of the current
// segment the next one is taken up within the same step.
func (ms *MassFlowSchedule) Next(idx int, t float64) (next int, state FlowState) {
	next, state = idx, FlowAdvanceSegment
	for state == FlowAdvanceSegment {
		switch {
		case next >= len(ms.Segments):
			state = FlowIdle
		case t >= ms.Segments[next].Start && t < ms.Segments[next].End:
			state = FlowFlowing
		case t >= ms.Segments[next].End && next+1 < len(ms.Segments):
			next++
		default:
			state = FlowIdle
		}
	}
	if state == FlowFlowing && ms.Segments[next].Rate == 0 {
		state = FlowIdle
	}
	return
}

// IrradiationWindow is the interval [Start, End) during which the cavity
// receives Power at the given Efficiency.
type IrradiationWindow struct {
	Start, End float64 // s
	Power      float64 // W, incoming
	Efficiency float64
}

func (iw IrradiationWindow) Active(t float64) bool { return t >= iw.Start && t < iw.End }
