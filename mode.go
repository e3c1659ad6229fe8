package layermode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode identifies a layer mode. Values are stable: they index the
// descriptor table and may be stored in documents.
type Mode int

// Layer modes, in table order.
const (
	Normal Mode = iota
	Dissolve
	Behind
	MultiplyLegacy
	ScreenLegacy
	OverlayLegacy
	DifferenceLegacy
	AdditionLegacy
	SubtractLegacy
	DarkenOnlyLegacy
	LightenOnlyLegacy
	HSVHueLegacy
	HSVSaturationLegacy
	HSVColorLegacy
	HSVValueLegacy
	DivideLegacy
	DodgeLegacy
	BurnLegacy
	HardlightLegacy
	SoftlightLegacy
	GrainExtractLegacy
	GrainMergeLegacy
	ColorErase
	Overlay
	LCHHue
	LCHChroma
	LCHColor
	LCHLightness
	NormalLinear
	BehindLinear
	Multiply
	MultiplyLinear
	Screen
	ScreenLinear
	OverlayLinear
	Difference
	DifferenceLinear
	Addition
	AdditionLinear
	Subtract
	SubtractLinear
	DarkenOnly
	LightenOnly
	HSVHue
	HSVSaturation
	HSVColor
	HSVValue
	Divide
	DivideLinear
	Dodge
	DodgeLinear
	Burn
	BurnLinear
	Hardlight
	HardlightLinear
	Softlight
	SoftlightLinear
	GrainExtract
	GrainExtractLinear
	GrainMerge
	GrainMergeLinear
	VividLight
	VividLightLinear
	PinLight
	PinLightLinear
	LinearLight
	LinearLightLinear
	HardMix
	HardMixLinear
	Exclusion
	ExclusionLinear
	LinearBurn
	LinearBurnLinear
	LumaDarkenOnly
	LuminanceDarkenOnly
	LumaLightenOnly
	LuminanceLightenOnly
	Erase
	Replace
	AntiErase

	// ModeCount is the number of layer modes.
	ModeCount int = iota
)

type modeName struct {
	key, label string
}

var modeNames = [ModeCount]modeName{
	Normal:               {"normal", "Normal"},
	Dissolve:             {"dissolve", "Dissolve"},
	Behind:               {"behind", "Behind"},
	MultiplyLegacy:       {"multiply-legacy", "Multiply (legacy)"},
	ScreenLegacy:         {"screen-legacy", "Screen (legacy)"},
	OverlayLegacy:        {"overlay-legacy", "Old broken Overlay"},
	DifferenceLegacy:     {"difference-legacy", "Difference (legacy)"},
	AdditionLegacy:       {"addition-legacy", "Addition (legacy)"},
	SubtractLegacy:       {"subtract-legacy", "Subtract (legacy)"},
	DarkenOnlyLegacy:     {"darken-only-legacy", "Darken only (legacy)"},
	LightenOnlyLegacy:    {"lighten-only-legacy", "Lighten only (legacy)"},
	HSVHueLegacy:         {"hsv-hue-legacy", "Hue (HSV) (legacy)"},
	HSVSaturationLegacy:  {"hsv-saturation-legacy", "Saturation (HSV) (legacy)"},
	HSVColorLegacy:       {"hsv-color-legacy", "Color (HSL) (legacy)"},
	HSVValueLegacy:       {"hsv-value-legacy", "Value (HSV) (legacy)"},
	DivideLegacy:         {"divide-legacy", "Divide (legacy)"},
	DodgeLegacy:          {"dodge-legacy", "Dodge (legacy)"},
	BurnLegacy:           {"burn-legacy", "Burn (legacy)"},
	HardlightLegacy:      {"hardlight-legacy", "Hard light (legacy)"},
	SoftlightLegacy:      {"softlight-legacy", "Soft light (legacy)"},
	GrainExtractLegacy:   {"grain-extract-legacy", "Grain extract (legacy)"},
	GrainMergeLegacy:     {"grain-merge-legacy", "Grain merge (legacy)"},
	ColorErase:           {"color-erase", "Color erase"},
	Overlay:              {"overlay", "Overlay"},
	LCHHue:               {"lch-hue", "Hue (LCH)"},
	LCHChroma:            {"lch-chroma", "Chroma (LCH)"},
	LCHColor:             {"lch-color", "Color (LCH)"},
	LCHLightness:         {"lch-lightness", "Lightness (LCH)"},
	NormalLinear:         {"normal-linear", "Normal (linear)"},
	BehindLinear:         {"behind-linear", "Behind (linear)"},
	Multiply:             {"multiply", "Multiply"},
	MultiplyLinear:       {"multiply-linear", "Multiply (linear)"},
	Screen:               {"screen", "Screen"},
	ScreenLinear:         {"screen-linear", "Screen (linear)"},
	OverlayLinear:        {"overlay-linear", "Overlay (linear)"},
	Difference:           {"difference", "Difference"},
	DifferenceLinear:     {"difference-linear", "Difference (linear)"},
	Addition:             {"addition", "Addition"},
	AdditionLinear:       {"addition-linear", "Addition (linear)"},
	Subtract:             {"subtract", "Subtract"},
	SubtractLinear:       {"subtract-linear", "Subtract (linear)"},
	DarkenOnly:           {"darken-only", "Darken only"},
	LightenOnly:          {"lighten-only", "Lighten only"},
	HSVHue:               {"hsv-hue", "Hue (HSV)"},
	HSVSaturation:        {"hsv-saturation", "Saturation (HSV)"},
	HSVColor:             {"hsv-color", "Color (HSL)"},
	HSVValue:             {"hsv-value", "Value (HSV)"},
	Divide:               {"divide", "Divide"},
	DivideLinear:         {"divide-linear", "Divide (linear)"},
	Dodge:                {"dodge", "Dodge"},
	DodgeLinear:          {"dodge-linear", "Dodge (linear)"},
	Burn:                 {"burn", "Burn"},
	BurnLinear:           {"burn-linear", "Burn (linear)"},
	Hardlight:            {"hardlight", "Hard light"},
	HardlightLinear:      {"hardlight-linear", "Hard light (linear)"},
	Softlight:            {"softlight", "Soft light"},
	SoftlightLinear:      {"softlight-linear", "Soft light (linear)"},
	GrainExtract:         {"grain-extract", "Grain extract"},
	GrainExtractLinear:   {"grain-extract-linear", "Grain extract (linear)"},
	GrainMerge:           {"grain-merge", "Grain merge"},
	GrainMergeLinear:     {"grain-merge-linear", "Grain merge (linear)"},
	VividLight:           {"vivid-light", "Vivid light"},
	VividLightLinear:     {"vivid-light-linear", "Vivid light (linear)"},
	PinLight:             {"pin-light", "Pin light"},
	PinLightLinear:       {"pin-light-linear", "Pin light (linear)"},
	LinearLight:          {"linear-light", "Linear light"},
	LinearLightLinear:    {"linear-light-linear", "Linear light (linear)"},
	HardMix:              {"hard-mix", "Hard mix"},
	HardMixLinear:        {"hard-mix-linear", "Hard mix (linear)"},
	Exclusion:            {"exclusion", "Exclusion"},
	ExclusionLinear:      {"exclusion-linear", "Exclusion (linear)"},
	LinearBurn:           {"linear-burn", "Linear burn"},
	LinearBurnLinear:     {"linear-burn-linear", "Linear burn (linear)"},
	LumaDarkenOnly:       {"luma-darken-only", "Luma darken only"},
	LuminanceDarkenOnly:  {"luminance-darken-only", "Luminance darken only"},
	LumaLightenOnly:      {"luma-lighten-only", "Luma lighten only"},
	LuminanceLightenOnly: {"luminance-lighten-only", "Luminance lighten only"},
	Erase:                {"erase", "Erase"},
	Replace:              {"replace", "Replace"},
	AntiErase:            {"anti-erase", "Anti erase"},
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < ModeCount
}

// String returns the key name of the mode, e.g. "multiply-legacy".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m].key
}

// Label returns the human readable name of the mode.
func (m Mode) Label() string {
	if !m.Valid() {
		return m.String()
	}
	return modeNames[m].label
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.Wrapf(ErrUnknownMode, "mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode returns the mode with the given key name.
func ParseMode(name string) (Mode, error) {
	for i := range modeNames {
		if modeNames[i].key == name {
			return Mode(i), nil
		}
	}
	return Normal, errors.Wrapf(ErrUnknownMode, "%q", name)
}

// Modes returns every mode in table order.
func Modes() []Mode {
	modes := make([]Mode, ModeCount)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}
