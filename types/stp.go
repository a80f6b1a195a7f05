package types

import (
	"fmt"
	"sort"
	"strings"
)

type RACType uint8

const (
	RAC_Cone RACType = iota
	RAC_Cylinder
)

var RACNameMap = map[string]RACType{
	"cone":        RAC_Cone,
	"conical":     RAC_Cone,
	"cylinder":    RAC_Cylinder,
	"cylindrical": RAC_Cylinder,
}

func (rt RACType) String() string {
	switch rt {
	case RAC_Cone:
		return "Cone"
	case RAC_Cylinder:
		return "Cylinder"
	}
	panic(fmt.Sprintf("unknown RAC type %d", rt))
}

func NewRACType(label string) (rt RACType, err error) {
	var ok bool
	if rt, ok = RACNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use RAC type named %q, must be one of %v",
			label, mapKeys(RACNameMap))
	}
	return
}

type ChannelLayout uint8

const (
	Layout_Straight ChannelLayout = iota
	Layout_Spiral
)

var LayoutNameMap = map[string]ChannelLayout{
	"straight": Layout_Straight,
	"linear":   Layout_Straight,
	"spiral":   Layout_Spiral,
}

func (cl ChannelLayout) String() string {
	switch cl {
	case Layout_Straight:
		return "Straight"
	case Layout_Spiral:
		return "Spiral"
	}
	panic(fmt.Sprintf("unknown channel layout %d", cl))
}

func NewChannelLayout(label string) (cl ChannelLayout, err error) {
	var ok bool
	if cl, ok = LayoutNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use channel layout named %q, must be one of %v",
			label, mapKeys(LayoutNameMap))
	}
	return
}

type PropellantType uint8

const (
	Prop_Nitrogen PropellantType = iota
	Prop_Water
	Prop_Ammonia
	Prop_Hydrogen
)

var PropellantNameMap = map[string]PropellantType{
	"nitrogen": Prop_Nitrogen,
	"n2":       Prop_Nitrogen,
	"water":    Prop_Water,
	"h2o":      Prop_Water,
	"ammonia":  Prop_Ammonia,
	"nh3":      Prop_Ammonia,
	"hydrogen": Prop_Hydrogen,
	"h2":       Prop_Hydrogen,
}

func (pt PropellantType) String() string {
	strings := []string{
		"Nitrogen",
		"Water",
		"Ammonia",
		"Hydrogen",
	}
	if int(pt) >= len(strings) {
		panic(fmt.Sprintf("unknown propellant %d", pt))
	}
	return strings[int(pt)]
}

func NewPropellantType(label string) (pt PropellantType, err error) {
	var ok bool
	if pt, ok = PropellantNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use propellant named %q, must be one of %v",
			label, mapKeys(PropellantNameMap))
	}
	return
}

type MaterialType uint8

const (
	Mat_Copper MaterialType = iota
	Mat_Tungsten
	Mat_Molybdenum
	Mat_MolybdenumBlack
	Mat_MolybdenumWhite
	Mat_TungstenBlack
	Mat_TungstenWhite
)

var MaterialNameMap = map[string]MaterialType{
	"copper":          Mat_Copper,
	"tungsten":        Mat_Tungsten,
	"molybdenum":      Mat_Molybdenum,
	"molybdenumblack": Mat_MolybdenumBlack,
	"molybdenumwhite": Mat_MolybdenumWhite,
	"tungstenblack":   Mat_TungstenBlack,
	"tungstenwhite":   Mat_TungstenWhite,
}

func (mt MaterialType) String() string {
	strings := []string{
		"Copper",
		"Tungsten",
		"Molybdenum",
		"Molybdenum with black paint coating",
		"Molybdenum with white paint coating",
		"Tungsten with black paint coating",
		"Tungsten with white paint coating",
	}
	if int(mt) >= len(strings) {
		panic(fmt.Sprintf("unknown material %d", mt))
	}
	return strings[int(mt)]
}

func NewMaterialType(label string) (mt MaterialType, err error) {
	var ok bool
	label = strings.ReplaceAll(strings.ToLower(label), " ", "")
	if mt, ok = MaterialNameMap[label]; !ok {
		err = fmt.Errorf("unable to use material named %q, must be one of %v",
			label, mapKeys(MaterialNameMap))
	}
	return
}

type InsulationType uint8

const (
	Insu_None InsulationType = iota
	Insu_Saffil
	Insu_MLI
)

var InsulationNameMap = map[string]InsulationType{
	"":       Insu_None,
	"none":   Insu_None,
	"saffil": Insu_Saffil,
	"mli":    Insu_MLI,
}

func (it InsulationType) String() string {
	switch it {
	case Insu_None:
		return "No insulation"
	case Insu_Saffil:
		return "Saffil M-Fil"
	case Insu_MLI:
		return "MLI"
	}
	panic(fmt.Sprintf("unknown insulation %d", it))
}

func NewInsulationType(label string) (it InsulationType, err error) {
	var ok bool
	if it, ok = InsulationNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use insulation named %q, must be one of %v",
			label, mapKeys(InsulationNameMap))
	}
	return
}

func mapKeys[T any](m map[string]T) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		if len(k) != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return
}
