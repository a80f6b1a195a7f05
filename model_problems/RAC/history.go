package RAC

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type Status uint8

const (
	Running Status = iota
	Completed
	OverTemperature
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case OverTemperature:
		return "OverTemperature"
	case Failed:
		return "Failed"
	}
	panic(fmt.Sprintf("unknown status %d", s))
}

// MarshalText lets the status travel as a name in YAML and JSON
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Running, Completed, OverTemperature, Failed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// StepResult is the record of one integration step. Powers are in W and
// temperatures in K. Temperature is the RAC temperature after the update.
type StepResult struct {
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Pin         float64 `json:"pin"`
	P1          float64 `json:"p1"`
	P2          float64 `json:"p2"`
	P3          float64 `json:"p3"`
	P4          float64 `json:"p4"`
	P5          float64 `json:"p5"`
	P6          float64 `json:"p6"`
	P7          float64 `json:"p7"`
	Temperature float64 `json:"trac"`
	Tinsu       float64 `json:"tinsu"`
	Tpo         float64 `json:"tpo"`
	Tb          float64 `json:"tb"`
	Pc          float64 `json:"pc"`
	Thrust      float64 `json:"thrust"`
	Isp         float64 `json:"isp"`
	ReD         float64 `json:"red"`
	PrP         float64 `json:"prp"`
	ReT         float64 `json:"ret"`
	Cd          float64 `json:"cd"`
	At          float64 `json:"at"`
	Ae          float64 `json:"ae"`
	// Inlet velocity over the erosion limit, NaN without flow
	VelocityRatio float64   `json:"-"`
	Flow          FlowState `json:"flowing"`
	NotChoked     bool      `json:"notChoked"`
	FallbackUsed  bool      `json:"fallbackUsed"`
}

// VelocityRatioString renders the velocity ratio, "n/a" without flow
func (sr *StepResult) VelocityRatioString() string {
	if math.IsNaN(sr.VelocityRatio) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", sr.VelocityRatio)
}

// History is the append only record of a run
type History struct {
	Steps    []StepResult `json:"steps"`
	Status   Status       `json:"status"`
	HaltStep int          `json:"haltStep"` // index of the last recorded step, -1 if none
}

func NewHistory(capacity int) *History {
	return &History{Steps: make([]StepResult, 0, capacity), HaltStep: -1}
}

func (h *History) append(sr StepResult) {
	h.Steps = append(h.Steps, sr)
	h.HaltStep = len(h.Steps) - 1
}

func (h *History) Len() int { return len(h.Steps) }

func (h *History) Last() (sr StepResult, ok bool) {
	if len(h.Steps) == 0 {
		return
	}
	return h.Steps[len(h.Steps)-1], true
}

// Column extracts one field across all steps
func (h *History) Column(get func(sr *StepResult) float64) (col []float64) {
	col = make([]float64, len(h.Steps))
	for i := range h.Steps {
		col[i] = get(&h.Steps[i])
	}
	return
}

// Summary collects the headline figures of a run
type Summary struct {
	Status             Status  `json:"status"`
	Steps              int     `json:"steps"`
	MaxTemperature     float64 `json:"maxTemperature"`
	MaxPropellantTemp  float64 `json:"maxPropellantTemperature"`
	ThermalEfficiency  float64 `json:"thermalEfficiency"` // final P6 over incoming power
	MaxIsp             float64 `json:"maxIsp"`
	MaxThrust          float64 `json:"maxThrust"`
	MaxPressureLoss    float64 `json:"maxPressureLoss"`
	MaxVelocityRatio   float64 `json:"-"`
	MinReD             float64 `json:"minReD"`
	MaxReD             float64 `json:"maxReD"`
	MinPrP             float64 `json:"minPrP"`
	MaxPrP             float64 `json:"maxPrP"`
	ThroatDiameter     float64 `json:"throatDiameter"` // m, final flowing step
	ExitDiameter       float64 `json:"exitDiameter"`
	ThroatReynolds     float64 `json:"throatReynolds"`
	DischargeCoeff     float64 `json:"dischargeCoefficient"`
	FallbackStepsCount int     `json:"fallbackSteps"`
}

// Summary reduces the history. pIn is the feed pressure and PR the incoming
// irradiance power.
func (h *History) Summary(pIn, PR float64) (s Summary) {
	s.Status = h.Status
	s.Steps = len(h.Steps)
	if len(h.Steps) == 0 {
		return
	}
	s.MaxTemperature = floats.Max(h.Column(func(sr *StepResult) float64 { return sr.Temperature }))
	var flowing []*StepResult
	for i := range h.Steps {
		if h.Steps[i].Flow == FlowFlowing {
			flowing = append(flowing, &h.Steps[i])
		}
		if h.Steps[i].FallbackUsed {
			s.FallbackStepsCount++
		}
	}
	if len(flowing) == 0 {
		s.MaxVelocityRatio = math.NaN()
		return
	}
	col := func(get func(sr *StepResult) float64) (c []float64) {
		c = make([]float64, len(flowing))
		for i, sr := range flowing {
			c[i] = get(sr)
		}
		return
	}
	s.MaxPropellantTemp = floats.Max(col(func(sr *StepResult) float64 { return sr.Tpo }))
	s.MaxIsp = floats.Max(col(func(sr *StepResult) float64 { return sr.Isp }))
	s.MaxThrust = floats.Max(col(func(sr *StepResult) float64 { return sr.Thrust }))
	s.MaxPressureLoss = pIn - floats.Min(col(func(sr *StepResult) float64 { return sr.Pc }))
	s.MaxVelocityRatio = floats.Max(col(func(sr *StepResult) float64 { return sr.VelocityRatio }))
	re := col(func(sr *StepResult) float64 { return sr.ReD })
	s.MinReD, s.MaxReD = floats.Min(re), floats.Max(re)
	pr := col(func(sr *StepResult) float64 { return sr.PrP })
	s.MinPrP, s.MaxPrP = floats.Min(pr), floats.Max(pr)
	last := flowing[len(flowing)-1]
	if PR > 0 {
		s.ThermalEfficiency = last.P6 / PR
	}
	s.ThroatDiameter = math.Sqrt(4 * last.At / math.Pi)
	s.ExitDiameter = math.Sqrt(4 * last.Ae / math.Pi)
	s.ThroatReynolds = last.ReT
	s.DischargeCoeff = last.Cd
	return
}

func (s Summary) Print() {
	fmt.Printf("[%s]\t\t= Status after %d steps\n", s.Status, s.Steps)
	fmt.Printf("%8.1f\t\t= Max RAC temperature [K]\n", s.MaxTemperature)
	if s.MaxIsp == 0 {
		return
	}
	fmt.Printf("%8.1f\t\t= Max propellant temperature [K]\n", s.MaxPropellantTemp)
	fmt.Printf("%8.1f\t\t= Thermal efficiency [%%]\n", 100*s.ThermalEfficiency)
	fmt.Printf("%8.1f\t\t= Max Isp [s]\n", s.MaxIsp)
	fmt.Printf("%8.3f\t\t= Max thrust [N]\n", s.MaxThrust)
	fmt.Printf("%8.1f\t\t= Max pressure loss [Pa]\n", s.MaxPressureLoss)
	fmt.Printf("%8.3f\t\t= Max v/vmax\n", s.MaxVelocityRatio)
	fmt.Printf("%8.3f .. %.3f\t= Channel Pr range\n", s.MinPrP, s.MaxPrP)
	fmt.Printf("%8.1f .. %.1f\t= Channel Re range\n", s.MinReD, s.MaxReD)
	fmt.Printf("%8.1f\t\t= Nozzle throat Re, Cd = %.3f\n", s.ThroatReynolds, s.DischargeCoeff)
	fmt.Printf("%8.3f\t\t= Throat diameter [mm], exit %.3f mm\n", 1000*s.ThroatDiameter, 1000*s.ExitDiameter)
	if s.FallbackStepsCount > 0 {
		fmt.Printf("[%d]\t\t\t= Steps using the channel enthalpy fallback\n", s.FallbackStepsCount)
	}
}
