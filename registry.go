package layermode

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/layermode/internal/blend"
)

// Flags describe how a mode may be configured.
type Flags uint8

const (
	// FlagLegacy marks a mode that reproduces pre-linear-light results.
	FlagLegacy Flags = 1 << iota
	// FlagWantsLinearData marks a mode that expects linear input when its
	// composite space is left on auto.
	FlagWantsLinearData
	// FlagBlendSpaceImmutable forbids overriding the blend space.
	FlagBlendSpaceImmutable
	// FlagCompositeSpaceImmutable forbids overriding the composite space.
	FlagCompositeSpaceImmutable
	// FlagCompositeModeImmutable forbids overriding the composite mode.
	FlagCompositeModeImmutable
)

const legacyFlags = FlagLegacy | FlagBlendSpaceImmutable | FlagCompositeSpaceImmutable | FlagCompositeModeImmutable

// Kind is the processing strategy behind an operation.
type Kind uint8

// Operation kinds.
const (
	KindLayerMode Kind = iota // generic blend then composite
	KindNormal
	KindDissolve
	KindBehind
	KindErase
	KindReplace
	KindAntiErase
	KindColorErase
	KindLuminance
	KindLegacy
)

var kindNames = [...]string{
	KindLayerMode:  "layer-mode",
	KindNormal:     "normal",
	KindDissolve:   "dissolve",
	KindBehind:     "behind",
	KindErase:      "erase",
	KindReplace:    "replace",
	KindAntiErase:  "anti-erase",
	KindColorErase: "color-erase",
	KindLuminance:  "luminance",
	KindLegacy:     "legacy",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Info describes one layer mode.
type Info struct {
	Mode          Mode
	OperationName string
	Kind          Kind
	Flags         Flags

	// PaintCompositeMode applies when painting with the mode;
	// CompositeMode applies when compositing a layer.
	PaintCompositeMode CompositeMode
	CompositeMode      CompositeMode
	CompositeSpace     ColorSpace
	BlendSpace         ColorSpace

	// Function processes scanlines. Blend is the blend function handed to
	// the generic adapter and is nil for every other kind.
	Function ProcessFunc
	Blend    BlendFunc
}

// generic describes a mode served by the generic adapter.
func generic(m Mode, f BlendFunc, flags Flags, blendSpace ColorSpace) Info {
	return Info{
		Mode:               m,
		OperationName:      OpLayerMode,
		Kind:               KindLayerMode,
		Flags:              FlagWantsLinearData | flags,
		PaintCompositeMode: CompositeSrcOver,
		CompositeMode:      CompositeSrcAtop,
		CompositeSpace:     ColorSpaceRGBLinear,
		BlendSpace:         blendSpace,
		Function:           blend.ProcessLayerMode,
		Blend:              f,
	}
}

// legacy describes a mode with its own legacy adapter.
func legacy(m Mode, op string, f ProcessFunc) Info {
	return Info{
		Mode:               m,
		OperationName:      op,
		Kind:               KindLegacy,
		Flags:              legacyFlags,
		PaintCompositeMode: CompositeSrcAtop,
		CompositeMode:      CompositeSrcAtop,
		Function:           f,
	}
}

const (
	perceptual = ColorSpaceRGBPerceptual
	linear     = ColorSpaceRGBLinear
	lab        = ColorSpaceLAB
)

// infos is indexed by Mode. init verifies the indexing.
var infos = [ModeCount]Info{
	{
		Mode:               Normal,
		OperationName:      OpNormal,
		Kind:               KindNormal,
		Flags:              FlagBlendSpaceImmutable,
		PaintCompositeMode: CompositeSrcOver,
		CompositeMode:      CompositeSrcOver,
		Function:           blend.ProcessNormal,
	},
	{
		Mode:               Dissolve,
		OperationName:      OpDissolve,
		Kind:               KindDissolve,
		Flags:              FlagWantsLinearData | FlagBlendSpaceImmutable | FlagCompositeSpaceImmutable,
		PaintCompositeMode: CompositeSrcOver,
		CompositeMode:      CompositeSrcOver,
		Function:           blend.ProcessDissolve,
	},
	{
		Mode:               Behind,
		OperationName:      OpBehind,
		Kind:               KindBehind,
		Flags:              FlagBlendSpaceImmutable,
		PaintCompositeMode: CompositeDstAtop,
		CompositeMode:      CompositeDstAtop,
		Function:           blend.ProcessBehind,
	},
	legacy(MultiplyLegacy, "lm:multiply-legacy", blend.ProcessMultiplyLegacy),
	legacy(ScreenLegacy, "lm:screen-legacy", blend.ProcessScreenLegacy),
	legacy(OverlayLegacy, "lm:softlight-legacy", blend.ProcessSoftlightLegacy),
	legacy(DifferenceLegacy, "lm:difference-legacy", blend.ProcessDifferenceLegacy),
	legacy(AdditionLegacy, "lm:addition-legacy", blend.ProcessAdditionLegacy),
	legacy(SubtractLegacy, "lm:subtract-legacy", blend.ProcessSubtractLegacy),
	legacy(DarkenOnlyLegacy, "lm:darken-only-legacy", blend.ProcessDarkenOnlyLegacy),
	legacy(LightenOnlyLegacy, "lm:lighten-only-legacy", blend.ProcessLightenOnlyLegacy),
	legacy(HSVHueLegacy, "lm:hsv-hue-legacy", blend.ProcessHSVHueLegacy),
	legacy(HSVSaturationLegacy, "lm:hsv-saturation-legacy", blend.ProcessHSVSaturationLegacy),
	legacy(HSVColorLegacy, "lm:hsv-color-legacy", blend.ProcessHSVColorLegacy),
	legacy(HSVValueLegacy, "lm:hsv-value-legacy", blend.ProcessHSVValueLegacy),
	legacy(DivideLegacy, "lm:divide-legacy", blend.ProcessDivideLegacy),
	legacy(DodgeLegacy, "lm:dodge-legacy", blend.ProcessDodgeLegacy),
	legacy(BurnLegacy, "lm:burn-legacy", blend.ProcessBurnLegacy),
	legacy(HardlightLegacy, "lm:hardlight-legacy", blend.ProcessHardlightLegacy),
	legacy(SoftlightLegacy, "lm:softlight-legacy", blend.ProcessSoftlightLegacy),
	legacy(GrainExtractLegacy, "lm:grain-extract-legacy", blend.ProcessGrainExtractLegacy),
	legacy(GrainMergeLegacy, "lm:grain-merge-legacy", blend.ProcessGrainMergeLegacy),
	{
		Mode:               ColorErase,
		OperationName:      OpColorErase,
		Kind:               KindColorErase,
		PaintCompositeMode: CompositeSrcOver,
		CompositeMode:      CompositeSrcAtop,
		Function:           blend.ProcessColorErase,
	},
	generic(Overlay, blend.Overlay, 0, perceptual),
	generic(LCHHue, blend.LCHHue, FlagBlendSpaceImmutable, lab),
	generic(LCHChroma, blend.LCHChroma, FlagBlendSpaceImmutable, lab),
	generic(LCHColor, blend.LCHColor, FlagBlendSpaceImmutable, lab),
	generic(LCHLightness, blend.LCHLightness, FlagBlendSpaceImmutable, lab),
	{
		Mode:          NormalLinear,
		OperationName: OpNormal,
		Kind:          KindNormal,
		Flags:         FlagWantsLinearData | FlagBlendSpaceImmutable,
		Function:      blend.ProcessNormal,
	},
	{
		Mode:               BehindLinear,
		OperationName:      OpBehind,
		Kind:               KindBehind,
		Flags:              FlagWantsLinearData | FlagBlendSpaceImmutable,
		PaintCompositeMode: CompositeDstAtop,
		CompositeMode:      CompositeDstAtop,
		Function:           blend.ProcessBehind,
	},
	generic(Multiply, blend.Multiply, 0, perceptual),
	generic(MultiplyLinear, blend.Multiply, 0, linear),
	generic(Screen, blend.Screen, 0, perceptual),
	generic(ScreenLinear, blend.Screen, 0, linear),
	generic(OverlayLinear, blend.Overlay, 0, linear),
	generic(Difference, blend.Difference, 0, perceptual),
	generic(DifferenceLinear, blend.Difference, 0, linear),
	generic(Addition, blend.Addition, 0, perceptual),
	generic(AdditionLinear, blend.Addition, 0, linear),
	generic(Subtract, blend.Subtract, 0, perceptual),
	generic(SubtractLinear, blend.Subtract, 0, linear),
	generic(DarkenOnly, blend.DarkenOnly, FlagBlendSpaceImmutable, linear),
	generic(LightenOnly, blend.LightenOnly, FlagBlendSpaceImmutable, linear),
	generic(HSVHue, blend.HSVHue, FlagBlendSpaceImmutable, perceptual),
	generic(HSVSaturation, blend.HSVSaturation, FlagBlendSpaceImmutable, perceptual),
	generic(HSVColor, blend.HSVColor, FlagBlendSpaceImmutable, perceptual),
	generic(HSVValue, blend.HSVValue, FlagBlendSpaceImmutable, perceptual),
	generic(Divide, blend.Divide, 0, perceptual),
	generic(DivideLinear, blend.Divide, 0, linear),
	generic(Dodge, blend.Dodge, 0, perceptual),
	generic(DodgeLinear, blend.Dodge, 0, linear),
	generic(Burn, blend.Burn, 0, perceptual),
	generic(BurnLinear, blend.Burn, 0, linear),
	generic(Hardlight, blend.Hardlight, 0, perceptual),
	generic(HardlightLinear, blend.Hardlight, 0, linear),
	generic(Softlight, blend.Softlight, 0, perceptual),
	generic(SoftlightLinear, blend.Softlight, 0, linear),
	generic(GrainExtract, blend.GrainExtract, 0, perceptual),
	generic(GrainExtractLinear, blend.GrainExtract, 0, linear),
	generic(GrainMerge, blend.GrainMerge, 0, perceptual),
	generic(GrainMergeLinear, blend.GrainMerge, 0, linear),
	generic(VividLight, blend.VividLight, 0, perceptual),
	generic(VividLightLinear, blend.VividLight, 0, linear),
	generic(PinLight, blend.PinLight, 0, perceptual),
	generic(PinLightLinear, blend.PinLight, 0, linear),
	generic(LinearLight, blend.LinearLight, 0, perceptual),
	generic(LinearLightLinear, blend.LinearLight, 0, linear),
	generic(HardMix, blend.HardMix, 0, perceptual),
	generic(HardMixLinear, blend.HardMix, 0, linear),
	generic(Exclusion, blend.Exclusion, 0, perceptual),
	generic(ExclusionLinear, blend.Exclusion, 0, linear),
	generic(LinearBurn, blend.LinearBurn, 0, perceptual),
	generic(LinearBurnLinear, blend.LinearBurn, 0, linear),
	generic(LumaDarkenOnly, blend.LuminanceDarkenOnly, 0, perceptual),
	generic(LuminanceDarkenOnly, blend.LuminanceDarkenOnly, 0, linear),
	generic(LumaLightenOnly, blend.LuminanceLightenOnly, 0, perceptual),
	generic(LuminanceLightenOnly, blend.LuminanceLightenOnly, 0, linear),
	{
		Mode:               Erase,
		OperationName:      OpErase,
		Kind:               KindErase,
		Flags:              FlagWantsLinearData | FlagBlendSpaceImmutable,
		PaintCompositeMode: CompositeSrcAtop,
		CompositeMode:      CompositeSrcAtop,
		Function:           blend.ProcessErase,
	},
	{
		Mode:               Replace,
		OperationName:      OpReplace,
		Kind:               KindReplace,
		Flags:              FlagWantsLinearData | FlagBlendSpaceImmutable,
		PaintCompositeMode: CompositeSrcOver,
		CompositeMode:      CompositeSrcOver,
		Function:           blend.ProcessReplace,
	},
	{
		Mode:               AntiErase,
		OperationName:      OpAntiErase,
		Kind:               KindAntiErase,
		Flags:              FlagWantsLinearData | FlagBlendSpaceImmutable | FlagCompositeSpaceImmutable,
		PaintCompositeMode: CompositeSrcAtop,
		CompositeMode:      CompositeSrcAtop,
		Function:           blend.ProcessAntiErase,
	},
}

func init() {
	if err := checkTable(infos[:]); err != nil {
		panic(err)
	}
}

// checkTable verifies that every entry sits at the index of its mode and
// carries a processing function.
func checkTable(table []Info) error {
	if len(table) != ModeCount {
		return errors.Errorf("layermode: table has %d entries, want %d", len(table), ModeCount)
	}
	for i := range table {
		if table[i].Mode != Mode(i) {
			return errors.Errorf("layermode: table entry %d describes mode %v", i, table[i].Mode)
		}
		if table[i].Function == nil {
			return errors.Errorf("layermode: mode %v has no processing function", table[i].Mode)
		}
		if (table[i].Kind == KindLayerMode) != (table[i].Blend != nil) {
			return errors.Errorf("layermode: mode %v: blend function does not match kind %v", table[i].Mode, table[i].Kind)
		}
	}
	return nil
}

// Lookup returns the descriptor of m. For a value outside the table it
// returns the descriptor of Normal together with ErrUnknownMode, so callers
// that ignore the error still get a usable descriptor.
func Lookup(m Mode) (Info, error) {
	if !m.Valid() {
		return infos[0], errors.Wrapf(ErrUnknownMode, "mode %d", int(m))
	}
	return infos[m], nil
}

// info is Lookup for the accessors: the fallback is logged instead of
// returned.
func info(m Mode) *Info {
	if !m.Valid() {
		Logger().Warn("layermode: unknown layer mode, using normal", "mode", int(m))
		return &infos[0]
	}
	return &infos[m]
}

// Has reports whether all bits of f are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// IsLegacy reports whether m reproduces legacy results.
func IsLegacy(m Mode) bool {
	return info(m).Flags&FlagLegacy != 0
}

// WantsLinearData reports whether m prefers linear-light input.
func WantsLinearData(m Mode) bool {
	return info(m).Flags&FlagWantsLinearData != 0
}

// IsBlendSpaceMutable reports whether the blend space of m may be overridden.
func IsBlendSpaceMutable(m Mode) bool {
	return info(m).Flags&FlagBlendSpaceImmutable == 0
}

// IsCompositeSpaceMutable reports whether the composite space of m may be
// overridden.
func IsCompositeSpaceMutable(m Mode) bool {
	return info(m).Flags&FlagCompositeSpaceImmutable == 0
}

// IsCompositeModeMutable reports whether the composite mode of m may be
// overridden.
func IsCompositeModeMutable(m Mode) bool {
	return info(m).Flags&FlagCompositeModeImmutable == 0
}

// BlendSpace returns the default blend space of m, possibly auto.
func BlendSpace(m Mode) ColorSpace {
	return info(m).BlendSpace
}

// CompositeSpace returns the default composite space of m, possibly auto.
func CompositeSpace(m Mode) ColorSpace {
	return info(m).CompositeSpace
}

// CompositeModeOf returns the default composite mode of m for layers.
func CompositeModeOf(m Mode) CompositeMode {
	return info(m).CompositeMode
}

// PaintCompositeMode returns the composite mode of m for painting.
func PaintCompositeMode(m Mode) CompositeMode {
	return info(m).PaintCompositeMode
}

// OperationName returns the name of the operation implementing m.
func OperationName(m Mode) string {
	return info(m).OperationName
}

// Function returns the scanline function of m.
func Function(m Mode) ProcessFunc {
	return info(m).Function
}

// BlendFunction returns the blend function of m, or nil when m is not
// served by the generic adapter.
func BlendFunction(m Mode) BlendFunc {
	return info(m).Blend
}
