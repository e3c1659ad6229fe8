package layermode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Group is a curated set of modes presented together in a mode picker.
type Group int

// Mode groups. The values index the columns of the translation table.
const (
	GroupDefault Group = iota
	GroupLinear
	GroupPerceptual
	GroupLegacy

	groupCount
)

var groupNames = [groupCount]modeName{
	GroupDefault:    {"default", "Default"},
	GroupLinear:     {"linear", "Linear light"},
	GroupPerceptual: {"perceptual", "Perceptual"},
	GroupLegacy:     {"legacy", "Legacy"},
}

// Valid reports whether g is a known group.
func (g Group) Valid() bool {
	return g >= 0 && g < groupCount
}

func (g Group) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Group(%d)", int(g))
	}
	return groupNames[g].key
}

// Label returns the human readable name of the group.
func (g Group) Label() string {
	if !g.Valid() {
		return g.String()
	}
	return groupNames[g].label
}

// ParseGroup returns the group with the given key name.
func ParseGroup(name string) (Group, error) {
	for i := range groupNames {
		if groupNames[i].key == name {
			return Group(i), nil
		}
	}
	return GroupDefault, errors.Wrapf(ErrUnknownGroup, "%q", name)
}

// Groups returns every group in column order.
func Groups() []Group {
	return []Group{GroupDefault, GroupLinear, GroupPerceptual, GroupLegacy}
}

var groupDefault = []Mode{
	Normal,
	Dissolve,
	LightenOnly,
	LuminanceLightenOnly,
	Screen,
	Dodge,
	Addition,
	DarkenOnly,
	LuminanceDarkenOnly,
	Multiply,
	Burn,
	Overlay,
	Softlight,
	Hardlight,
	VividLight,
	PinLight,
	LinearLight,
	HardMix,
	Difference,
	Subtract,
	GrainExtract,
	GrainMerge,
	Divide,
	LCHHue,
	LCHChroma,
	LCHColor,
	LCHLightness,
	Exclusion,
	LinearBurn,
}

var groupLinear = []Mode{
	NormalLinear,
	Dissolve,
	LightenOnly,
	LuminanceLightenOnly,
	ScreenLinear,
	DodgeLinear,
	AdditionLinear,
	DarkenOnly,
	LuminanceDarkenOnly,
	MultiplyLinear,
	BurnLinear,
	OverlayLinear,
	SoftlightLinear,
	HardlightLinear,
	VividLightLinear,
	PinLightLinear,
	LinearLightLinear,
	HardMixLinear,
	DifferenceLinear,
	SubtractLinear,
	GrainExtractLinear,
	GrainMergeLinear,
	DivideLinear,
	ExclusionLinear,
	LinearBurnLinear,
}

var groupPerceptual = []Mode{
	Normal,
	Dissolve,
	LightenOnly,
	LumaLightenOnly,
	Screen,
	Dodge,
	Addition,
	DarkenOnly,
	LumaDarkenOnly,
	Multiply,
	Burn,
	Overlay,
	Softlight,
	Hardlight,
	VividLight,
	PinLight,
	LinearLight,
	HardMix,
	Difference,
	Subtract,
	GrainExtract,
	GrainMerge,
	Divide,
	HSVHue,
	HSVSaturation,
	HSVColor,
	HSVValue,
	LCHHue,
	LCHChroma,
	LCHColor,
	LCHLightness,
	Exclusion,
	LinearBurn,
}

var groupLegacy = []Mode{
	Normal,
	Dissolve,
	LightenOnlyLegacy,
	ScreenLegacy,
	DodgeLegacy,
	AdditionLegacy,
	DarkenOnlyLegacy,
	MultiplyLegacy,
	BurnLegacy,
	SoftlightLegacy,
	HardlightLegacy,
	DifferenceLegacy,
	SubtractLegacy,
	GrainExtractLegacy,
	GrainMergeLegacy,
	DivideLegacy,
	HSVHueLegacy,
	HSVSaturationLegacy,
	HSVColorLegacy,
	HSVValueLegacy,
}

var groupModes = [groupCount][]Mode{
	GroupDefault:    groupDefault,
	GroupLinear:     groupLinear,
	GroupPerceptual: groupPerceptual,
	GroupLegacy:     groupLegacy,
}

// none marks a translation cell without an equivalent mode.
const none Mode = -1

// translations maps a family of equivalent modes to its member in each
// group, one column per Group.
var translations = [...][groupCount]Mode{
	{Normal, NormalLinear, Normal, Normal},
	{Dissolve, Dissolve, Dissolve, Dissolve},
	{Behind, BehindLinear, Behind, Behind},
	{Multiply, MultiplyLinear, Multiply, MultiplyLegacy},
	{Screen, ScreenLinear, Screen, ScreenLegacy},
	{Overlay, OverlayLinear, Overlay, none},
	{Difference, DifferenceLinear, Difference, DifferenceLegacy},
	{Addition, AdditionLinear, Addition, AdditionLegacy},
	{Subtract, SubtractLinear, Subtract, SubtractLegacy},
	{DarkenOnly, DarkenOnly, DarkenOnly, DarkenOnlyLegacy},
	{LightenOnly, LightenOnly, LightenOnly, LightenOnlyLegacy},
	{none, none, HSVHue, HSVHueLegacy},
	{none, none, HSVSaturation, HSVSaturationLegacy},
	{none, none, HSVColor, HSVColorLegacy},
	{none, none, HSVValue, HSVValueLegacy},
	{Divide, DivideLinear, Divide, DivideLegacy},
	{Dodge, DodgeLinear, Dodge, DodgeLegacy},
	{Burn, BurnLinear, Burn, BurnLegacy},
	{Hardlight, HardlightLinear, Hardlight, HardlightLegacy},
	{Softlight, SoftlightLinear, Softlight, SoftlightLegacy},
	{GrainExtract, GrainExtractLinear, GrainExtract, GrainExtractLegacy},
	{GrainMerge, GrainMergeLinear, GrainMerge, GrainMergeLegacy},
	{ColorErase, none, ColorErase, none},
	{VividLight, VividLightLinear, VividLight, none},
	{PinLight, PinLightLinear, PinLight, none},
	{LinearLight, LinearLightLinear, LinearLight, none},
	{HardMix, HardMixLinear, HardMix, none},
	{Exclusion, ExclusionLinear, Exclusion, none},
	{LinearBurn, LinearBurnLinear, LinearBurn, none},
	{LuminanceDarkenOnly, LuminanceDarkenOnly, LumaDarkenOnly, none},
	{LuminanceLightenOnly, LuminanceLightenOnly, LumaLightenOnly, none},
	{Erase, Erase, none, none},
	{Replace, Replace, none, none},
	{AntiErase, AntiErase, none, none},
}

func contains(modes []Mode, m Mode) bool {
	for _, mode := range modes {
		if mode == m {
			return true
		}
	}
	return false
}

// GroupOf returns the first group, in column order, whose list contains m.
// Modes that belong to no list report GroupDefault.
func GroupOf(m Mode) Group {
	for g := GroupDefault; g < groupCount; g++ {
		if contains(groupModes[g], m) {
			return g
		}
	}
	return GroupDefault
}

// GroupModes returns the modes of g in display order. The slice is a copy.
// An invalid group yields nil.
func GroupModes(g Group) []Mode {
	if !g.Valid() {
		return nil
	}
	return append([]Mode(nil), groupModes[g]...)
}

// ForGroup translates old into its equivalent in g. The second result is
// false when old belongs to no family or its family has no member in g; the
// caller decides what to keep in that case.
func ForGroup(old Mode, g Group) (Mode, bool) {
	if !old.Valid() || !g.Valid() {
		return none, false
	}
	for i := range translations {
		row := &translations[i]
		if !contains(row[:], old) {
			continue
		}
		if row[g] == none {
			return none, false
		}
		return row[g], true
	}
	return none, false
}
