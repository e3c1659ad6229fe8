// Package color converts samples between the colour spaces layer modes blend
// and composite in: linear-light RGB, perceptual (sRGB-encoded) RGB and CIE
// LAB.
package color

import "fmt"

// Space identifies the encoding of the colour channels of a sample.
// Alpha is always linear and never touched by a conversion.
type Space uint8

const (
	// SpaceAuto defers the choice to the layer mode.
	SpaceAuto Space = iota
	// SpaceRGBLinear is linear-light RGB with sRGB primaries.
	SpaceRGBLinear
	// SpaceRGBPerceptual is RGB encoded with the sRGB transfer curve.
	SpaceRGBPerceptual
	// SpaceLAB is CIE L*a*b* (D65), L in [0,100].
	SpaceLAB
)

var spaceNames = [...]string{
	SpaceAuto:          "auto",
	SpaceRGBLinear:     "rgb-linear",
	SpaceRGBPerceptual: "rgb-perceptual",
	SpaceLAB:           "lab",
}

// String returns the key name of the space.
func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return fmt.Sprintf("Space(%d)", s)
}

// ParseSpace returns the space with the given key name.
func ParseSpace(name string) (Space, bool) {
	for i, n := range spaceNames {
		if n == name {
			return Space(i), true
		}
	}
	return SpaceAuto, false
}

// Resolve replaces SpaceAuto with the RGB space a mode works in.
func (s Space) Resolve(wantsLinear bool) Space {
	if s != SpaceAuto {
		return s
	}
	if wantsLinear {
		return SpaceRGBLinear
	}
	return SpaceRGBPerceptual
}

// Rec. 709 luminance coefficients.
const (
	LumaRed   = 0.2126
	LumaGreen = 0.7152
	LumaBlue  = 0.0722
)

// Luminance returns the weighted sum of r, g and b. On linear data this is
// relative luminance, on perceptual data it is luma.
func Luminance(r, g, b float32) float32 {
	return r*LumaRed + g*LumaGreen + b*LumaBlue
}
