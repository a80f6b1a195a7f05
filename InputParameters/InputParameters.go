package InputParameters

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/geometry"
	"github.com/notargets/gostp/model_problems/RAC"
	"github.com/notargets/gostp/properties"
	"github.com/notargets/gostp/types"
)

var ErrConfiguration = errors.New("invalid configuration")

// Receiver dimensions in millimetres and degrees, as drawn
type RACDesign struct {
	Type                string  `json:"Type"`
	ChannelLayout       string  `json:"ChannelLayout"`
	LcavC               float64 `json:"LcavC"`
	LcavI               float64 `json:"LcavI"`
	LcavA               float64 `json:"LcavA"`
	DinnerM             float64 `json:"DinnerM"`
	DouterM             float64 `json:"DouterM"`
	DmeanM              float64 `json:"DmeanM"`
	Dap                 float64 `json:"Dap"`
	PhiDeg              float64 `json:"Phi"`
	InsulationThickness float64 `json:"InsulationThickness"`
	Dh                  float64 `json:"Dh"`
	NCh                 int     `json:"NCh"`
	Pitch               float64 `json:"Pitch"`
	AbsorptivityIC      float64 `json:"AbsorptivityIC"`
	// Measured values, SI units, replacing the computed ones
	Overrides *geometry.Overrides `json:"Overrides,omitempty"`
}

type Irradiation struct {
	Power      float64 `json:"Power"` // W
	Efficiency float64 `json:"Efficiency"`
	Start      float64 `json:"Start"` // s
	End        float64 `json:"End"`
}

type FlowSegment struct {
	Rate  float64 `json:"Rate"` // kg/s
	Start float64 `json:"Start"`
	End   float64 `json:"End"`
}

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title             string        `json:"Title"`
	RAC               RACDesign     `json:"RAC"`
	Propellant        string        `json:"Propellant"`
	Material          string        `json:"Material"`
	MaterialCatalog   string        `json:"MaterialCatalog,omitempty"` // INI file with custom materials
	Insulation        string        `json:"Insulation"`
	Irradiation       Irradiation   `json:"Irradiation"`
	MassFlow          []FlowSegment `json:"MassFlow"`
	NozzleQuality     float64       `json:"NozzleQuality"`
	PeMin             float64       `json:"PeMin"` // Pa, lowest exit pressure
	Tamb              float64       `json:"Tamb"`  // K
	Pamb              float64       `json:"Pamb"`  // Pa
	TRAC0             float64       `json:"InitialTemperature"`
	Tpi               float64       `json:"InletTemperature"`
	PIn               float64       `json:"FeedPressure"`
	RunTime           float64       `json:"RunTime"`
	TimeStep          float64       `json:"TimeStep"`
	ParallelSubSolves bool          `json:"ParallelSubSolves"`
	LogFrequency      int           `json:"LogFrequency"`
	LogLevel          string        `json:"LogLevel,omitempty"`
}

// Default is the 250 W laboratory receiver: a copper cylinder with twelve
// spiral nitrogen channels, flowing and irradiated for an hour.
func Default() *InputParameters {
	return &InputParameters{
		Title: "PDT copper cylinder, nitrogen",
		RAC: RACDesign{
			Type:           "cylinder",
			ChannelLayout:  "spiral",
			LcavC:          28,
			LcavI:          34,
			LcavA:          38,
			DinnerM:        11.8,
			DouterM:        19,
			DmeanM:         12.4,
			Dap:            4,
			Dh:             0.6,
			NCh:            12,
			Pitch:          1.6 * 12,
			AbsorptivityIC: 0.70,
			Overrides:      &geometry.Overrides{ARACi: 0.00121, ARACo: 0.00274, MRAC: 0.0429, Aheat: 0.0023929},
		},
		Propellant:    "nitrogen",
		Material:      "copper",
		Insulation:    "none",
		Irradiation:   Irradiation{Power: 250, Efficiency: 1, Start: 0, End: 3600},
		MassFlow:      []FlowSegment{{Rate: 300e-6, Start: 0, End: 3600}},
		NozzleQuality: 0.96,
		PeMin:         100,
		Tamb:          298.15,
		Pamb:          1.01325e5,
		TRAC0:         298.15,
		Tpi:           298.15,
		PIn:           8.16e5,
		RunTime:       3600,
		TimeStep:      1,
		LogFrequency:  600,
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate checks the values that can be checked without building the
// geometry. Every error wraps ErrConfiguration.
func (ip *InputParameters) Validate() (err error) {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
	}
	if _, err = types.NewRACType(ip.RAC.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if _, err = types.NewChannelLayout(ip.RAC.ChannelLayout); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if _, err = types.NewPropellantType(ip.Propellant); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if _, err = types.NewInsulationType(ip.Insulation); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if len(ip.MaterialCatalog) == 0 {
		if _, err = types.NewMaterialType(ip.Material); err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"TimeStep", ip.TimeStep}, {"Tamb", ip.Tamb}, {"InitialTemperature", ip.TRAC0},
		{"InletTemperature", ip.Tpi}, {"FeedPressure", ip.PIn}, {"NozzleQuality", ip.NozzleQuality},
	} {
		if !(v.val > 0) || math.IsInf(v.val, 0) {
			return bad("%s must be positive, have %g", v.name, v.val)
		}
	}
	switch {
	case ip.RunTime < 0:
		return bad("negative run time %g", ip.RunTime)
	case ip.Pamb < 0:
		return bad("negative ambient pressure %g", ip.Pamb)
	case ip.PeMin < 0:
		return bad("negative minimum exit pressure %g", ip.PeMin)
	case ip.NozzleQuality > 1:
		return bad("nozzle quality %g above 1", ip.NozzleQuality)
	case ip.Irradiation.Power < 0:
		return bad("negative irradiance power %g", ip.Irradiation.Power)
	case ip.Irradiation.Efficiency < 0 || ip.Irradiation.Efficiency > 1:
		return bad("irradiance efficiency %g outside [0,1]", ip.Irradiation.Efficiency)
	case ip.Irradiation.End < ip.Irradiation.Start:
		return bad("irradiation ends at %g s before it starts at %g s", ip.Irradiation.End, ip.Irradiation.Start)
	case ip.LogFrequency < 0:
		return bad("negative log frequency %d", ip.LogFrequency)
	}
	if len(ip.LogLevel) != 0 {
		if _, err = log.ParseLevel(ip.LogLevel); err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}
	if err = ip.schedule().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

func (ip *InputParameters) schedule() *RAC.MassFlowSchedule {
	ms := &RAC.MassFlowSchedule{Segments: make([]RAC.FlowSegment, len(ip.MassFlow))}
	for i, fs := range ip.MassFlow {
		ms.Segments[i] = RAC.FlowSegment{Rate: fs.Rate, Start: fs.Start, End: fs.End}
	}
	return ms
}

func (ip *InputParameters) material() (m *properties.Material, err error) {
	if len(ip.MaterialCatalog) != 0 {
		var mats map[string]*properties.Material
		if mats, err = properties.LoadMaterialCatalog(ip.MaterialCatalog); err != nil {
			return
		}
		var ok bool
		if m, ok = mats[strings.ToLower(ip.Material)]; ok {
			return
		}
	}
	var mt types.MaterialType
	if mt, err = types.NewMaterialType(ip.Material); err != nil {
		return
	}
	return properties.LookupMaterial(mt)
}

// Design converts the drawing dimensions to SI units
func (ip *InputParameters) Design() (d geometry.Design, err error) {
	const mm = 1.e-3
	r := ip.RAC
	d = geometry.Design{
		LcavC:               r.LcavC * mm,
		LcavI:               r.LcavI * mm,
		LcavA:               r.LcavA * mm,
		DinnerM:             r.DinnerM * mm,
		DouterM:             r.DouterM * mm,
		DmeanM:              r.DmeanM * mm,
		Dap:                 r.Dap * mm,
		Phi:                 r.PhiDeg * math.Pi / 180,
		InsulationThickness: r.InsulationThickness * mm,
		Dh:                  r.Dh * mm,
		NCh:                 r.NCh,
		Pitch:               r.Pitch * mm,
		AbsorptivityIC:      r.AbsorptivityIC,
	}
	if d.RACType, err = types.NewRACType(r.Type); err != nil {
		return
	}
	d.Layout, err = types.NewChannelLayout(r.ChannelLayout)
	return
}

// BuildConfig validates the input and resolves it into a transient run
// configuration.
func (ip *InputParameters) BuildConfig() (cfg *RAC.Config, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	cfg = &RAC.Config{
		Schedule:          *ip.schedule(),
		Nozzle:            RAC.Nozzle{Quality: ip.NozzleQuality, PeMin: ip.PeMin},
		Tamb:              ip.Tamb,
		Pamb:              ip.Pamb,
		TRAC0:             ip.TRAC0,
		Tpi:               ip.Tpi,
		PIn:               ip.PIn,
		RunTime:           ip.RunTime,
		TimeStep:          ip.TimeStep,
		ParallelSubSolves: ip.ParallelSubSolves,
		LogFrequency:      ip.LogFrequency,
		Irradiation: RAC.IrradiationWindow{
			Start:      ip.Irradiation.Start,
			End:        ip.Irradiation.End,
			Power:      ip.Irradiation.Power,
			Efficiency: ip.Irradiation.Efficiency,
		},
	}
	wrap := func(e error) error { return fmt.Errorf("%w: %v", ErrConfiguration, e) }
	pt, _ := types.NewPropellantType(ip.Propellant)
	if cfg.Propellant, err = properties.LookupPropellant(pt); err != nil {
		return nil, wrap(err)
	}
	if cfg.Material, err = ip.material(); err != nil {
		return nil, wrap(err)
	}
	it, _ := types.NewInsulationType(ip.Insulation)
	if cfg.Insulation, err = properties.LookupInsulation(it); err != nil {
		return nil, wrap(err)
	}
	var d geometry.Design
	if d, err = ip.Design(); err != nil {
		return nil, wrap(err)
	}
	if !cfg.Insulation.Present() {
		d.InsulationThickness = 0
	} else if !(d.InsulationThickness > 0) {
		return nil, wrap(fmt.Errorf("%s needs a positive insulation thickness", cfg.Insulation.Name()))
	}
	if cfg.Geometry, err = geometry.NewParameters(d, cfg.Material.Density, ip.RAC.Overrides); err != nil {
		return nil, wrap(err)
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s, %s]\t\t= RAC type, channel layout\n", ip.RAC.Type, ip.RAC.ChannelLayout)
	fmt.Printf("[%s]\t\t\t= Propellant\n", ip.Propellant)
	fmt.Printf("[%s]\t\t\t= Material\n", ip.Material)
	if len(ip.MaterialCatalog) != 0 {
		fmt.Printf("[%s]\t\t= Material catalogue\n", ip.MaterialCatalog)
	}
	fmt.Printf("[%s]\t\t\t= Insulation\n", ip.Insulation)
	fmt.Printf("%8.2f\t\t= Irradiance power [W], efficiency %.3f\n", ip.Irradiation.Power, ip.Irradiation.Efficiency)
	fmt.Printf("%8.1f .. %.1f\t= Irradiation window [s]\n", ip.Irradiation.Start, ip.Irradiation.End)
	for i, fs := range ip.MassFlow {
		fmt.Printf("MassFlow[%d] = %.3g kg/s, %.1f .. %.1f s\n", i, fs.Rate, fs.Start, fs.End)
	}
	fmt.Printf("%8.3g\t\t= Feed pressure [Pa]\n", ip.PIn)
	fmt.Printf("%8.2f\t\t= Ambient temperature [K], pressure %.4g Pa\n", ip.Tamb, ip.Pamb)
	fmt.Printf("%8.1f\t\t= Run time [s], step %g s\n", ip.RunTime, ip.TimeStep)
}
