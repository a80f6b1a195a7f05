package properties

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/notargets/gostp/types"
)

/*
LoadMaterialCatalog reads custom RAC materials from an INI source (a file
name or raw []byte). Each section defines one material. A section may name
a built in material as Base and override selected values:

	[Molybdenum Grey]
	Base         = molybdenum
	Emissivity   = 0.45
	Absorptivity = 0.70

or give a full definition:

	[OFHC]
	Conductivity = 391
	Emissivity   = 0.6
	Absorptivity = 0.95
	TMaxC        = 1083
	Density      = 8940
	YieldStress  = 69e6
	MolarMass    = 63.546e-3
	Breakpoints  = 1358, 1e10
	Segment0     = 17.72891, 28.09870, -31.25289, 13.97243, 0.068611
*/
func LoadMaterialCatalog(source interface{}) (mats map[string]*Material, err error) {
	var file *ini.File
	if file, err = ini.Load(source); err != nil {
		return nil, fmt.Errorf("reading material catalogue: %w", err)
	}
	mats = make(map[string]*Material)
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		var m *Material
		if m, err = materialFromSection(sec); err != nil {
			return nil, fmt.Errorf("material [%s]: %w", sec.Name(), err)
		}
		mats[strings.ToLower(sec.Name())] = m
	}
	return
}

func materialFromSection(sec *ini.Section) (m *Material, err error) {
	if sec.HasKey("Base") {
		var mt types.MaterialType
		if mt, err = types.NewMaterialType(sec.Key("Base").String()); err != nil {
			return
		}
		if m, err = LookupMaterial(mt); err != nil {
			return
		}
		m.Shomate.Coeffs = append([][7]float64{}, m.Shomate.Coeffs...)
	} else {
		m = &Material{Shomate: ShomateFit{Breakpoints: [2]float64{1.e10, 1.e10}}}
		if !sec.HasKey("Segment0") || !sec.HasKey("MolarMass") {
			return nil, fmt.Errorf("need either Base or MolarMass and Segment0")
		}
	}
	m.Label = sec.Name()
	m.Conductivity = sec.Key("Conductivity").MustFloat64(m.Conductivity)
	m.Emissivity = sec.Key("Emissivity").MustFloat64(m.Emissivity)
	m.Absorptivity = sec.Key("Absorptivity").MustFloat64(m.Absorptivity)
	m.Density = sec.Key("Density").MustFloat64(m.Density)
	m.YieldStress = sec.Key("YieldStress").MustFloat64(m.YieldStress)
	if sec.HasKey("TMaxC") {
		m.TMax = sec.Key("TMaxC").MustFloat64(0) + celsiusToKelvin
	}
	m.Shomate.MolarMass = sec.Key("MolarMass").MustFloat64(m.Shomate.MolarMass)
	if sec.HasKey("Breakpoints") {
		bp := sec.Key("Breakpoints").Float64s(",")
		if len(bp) != 2 {
			return nil, fmt.Errorf("Breakpoints needs 2 values, have %d", len(bp))
		}
		m.Shomate.Breakpoints = [2]float64{bp[0], bp[1]}
	}
	if sec.HasKey("Segment0") {
		m.Shomate.Coeffs = m.Shomate.Coeffs[:0]
		for i := 0; i < 3; i++ {
			key := fmt.Sprintf("Segment%d", i)
			if !sec.HasKey(key) {
				break
			}
			vals := sec.Key(key).Float64s(",")
			if len(vals) < 5 || len(vals) > 7 {
				return nil, fmt.Errorf("%s needs 5 to 7 coefficients, have %d", key, len(vals))
			}
			var row [7]float64
			copy(row[:], vals)
			m.Shomate.Coeffs = append(m.Shomate.Coeffs, row)
		}
	}
	switch {
	case m.Shomate.MolarMass <= 0:
		err = fmt.Errorf("MolarMass must be positive")
	case m.Density <= 0:
		err = fmt.Errorf("Density must be positive")
	case m.Emissivity <= 0 || m.Emissivity > 1:
		err = fmt.Errorf("Emissivity %g outside (0,1]", m.Emissivity)
	case m.Absorptivity <= 0 || m.Absorptivity > 1:
		err = fmt.Errorf("Absorptivity %g outside (0,1]", m.Absorptivity)
	case m.TMax <= 0:
		err = fmt.Errorf("TMaxC must be given")
	}
	return
}
